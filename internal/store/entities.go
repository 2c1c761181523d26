package store

import "pgdesk/internal/core"

// Rooms

// AddRoom assigns an id and appends the room.
func (s *Store) AddRoom(r core.Room) (core.Room, error) {
	r.Amenities = core.NormalizeAmenities(r.Amenities)
	out, err := s.rooms.add(r, s.newID)
	if err == nil {
		s.bump()
	}
	return out, err
}

// UpdateRoom applies the patch to the room with id.
func (s *Store) UpdateRoom(id string, p core.RoomPatch) (core.Room, error) {
	out, err := s.rooms.update(id, p.Apply)
	if err == nil {
		s.bump()
	}
	return out, err
}

// RemoveRoom deletes the room with id and returns it.
func (s *Store) RemoveRoom(id string) (core.Room, error) {
	out, err := s.rooms.remove(id)
	if err == nil {
		s.bump()
	}
	return out, err
}

// Room returns the room with id.
func (s *Store) Room(id string) (core.Room, error) { return s.rooms.get(id) }

// Rooms lists rooms in insertion order.
func (s *Store) Rooms() []core.Room { return s.rooms.list() }

// Tenants

// AddTenant assigns an id and appends the tenant.
func (s *Store) AddTenant(t core.Tenant) (core.Tenant, error) {
	out, err := s.tenants.add(t, s.newID)
	if err == nil {
		s.bump()
	}
	return out, err
}

// UpdateTenant applies the patch to the tenant with id.
func (s *Store) UpdateTenant(id string, p core.TenantPatch) (core.Tenant, error) {
	out, err := s.tenants.update(id, p.Apply)
	if err == nil {
		s.bump()
	}
	return out, err
}

// RemoveTenant deletes the tenant with id and returns it.
func (s *Store) RemoveTenant(id string) (core.Tenant, error) {
	out, err := s.tenants.remove(id)
	if err == nil {
		s.bump()
	}
	return out, err
}

// Tenant returns the tenant with id.
func (s *Store) Tenant(id string) (core.Tenant, error) { return s.tenants.get(id) }

// Tenants lists tenants in insertion order.
func (s *Store) Tenants() []core.Tenant { return s.tenants.list() }

// Payments

// AddPayment assigns an id and appends the payment.
func (s *Store) AddPayment(p core.Payment) (core.Payment, error) {
	out, err := s.payments.add(p, s.newID)
	if err == nil {
		s.bump()
	}
	return out, err
}

// UpdatePayment applies the patch to the payment with id.
func (s *Store) UpdatePayment(id string, p core.PaymentPatch) (core.Payment, error) {
	out, err := s.payments.update(id, p.Apply)
	if err == nil {
		s.bump()
	}
	return out, err
}

// UpdatePaymentFunc applies fn to the stored payment under the collection
// lock, so read-modify-write transitions see the latest state.
func (s *Store) UpdatePaymentFunc(id string, fn func(core.Payment) core.Payment) (core.Payment, error) {
	out, err := s.payments.update(id, fn)
	if err == nil {
		s.bump()
	}
	return out, err
}

// UpdatePaymentIf is UpdatePaymentFunc where fn reports whether to write.
// The revision only moves when a write happens.
func (s *Store) UpdatePaymentIf(id string, fn func(core.Payment) (core.Payment, bool)) (core.Payment, bool, error) {
	out, changed, err := s.payments.updateIf(id, fn)
	if changed {
		s.bump()
	}
	return out, changed, err
}

// RemovePayment deletes the payment with id and returns it.
func (s *Store) RemovePayment(id string) (core.Payment, error) {
	out, err := s.payments.remove(id)
	if err == nil {
		s.bump()
	}
	return out, err
}

// Payment returns the payment with id.
func (s *Store) Payment(id string) (core.Payment, error) { return s.payments.get(id) }

// Payments lists payments in insertion order.
func (s *Store) Payments() []core.Payment { return s.payments.list() }

// Expenses

// AddExpense assigns an id and appends the expense.
func (s *Store) AddExpense(e core.Expense) (core.Expense, error) {
	out, err := s.expenses.add(e, s.newID)
	if err == nil {
		s.bump()
	}
	return out, err
}

// UpdateExpense applies the patch to the expense with id.
func (s *Store) UpdateExpense(id string, p core.ExpensePatch) (core.Expense, error) {
	out, err := s.expenses.update(id, p.Apply)
	if err == nil {
		s.bump()
	}
	return out, err
}

// RemoveExpense deletes the expense with id and returns it.
func (s *Store) RemoveExpense(id string) (core.Expense, error) {
	out, err := s.expenses.remove(id)
	if err == nil {
		s.bump()
	}
	return out, err
}

// Expense returns the expense with id.
func (s *Store) Expense(id string) (core.Expense, error) { return s.expenses.get(id) }

// Expenses lists expenses in insertion order.
func (s *Store) Expenses() []core.Expense { return s.expenses.list() }

// Maintenance requests

// AddMaintenance assigns an id and appends the maintenance request.
func (s *Store) AddMaintenance(m core.MaintenanceRequest) (core.MaintenanceRequest, error) {
	out, err := s.maintenance.add(m, s.newID)
	if err == nil {
		s.bump()
	}
	return out, err
}

// UpdateMaintenance applies the patch to the maintenance request with id.
func (s *Store) UpdateMaintenance(id string, p core.MaintenancePatch) (core.MaintenanceRequest, error) {
	out, err := s.maintenance.update(id, p.Apply)
	if err == nil {
		s.bump()
	}
	return out, err
}

// UpdateMaintenanceFunc applies fn to the stored request under the
// collection lock.
func (s *Store) UpdateMaintenanceFunc(id string, fn func(core.MaintenanceRequest) core.MaintenanceRequest) (core.MaintenanceRequest, error) {
	out, err := s.maintenance.update(id, fn)
	if err == nil {
		s.bump()
	}
	return out, err
}

// RemoveMaintenance deletes the maintenance request with id and returns it.
func (s *Store) RemoveMaintenance(id string) (core.MaintenanceRequest, error) {
	out, err := s.maintenance.remove(id)
	if err == nil {
		s.bump()
	}
	return out, err
}

// Maintenance returns the maintenance request with id.
func (s *Store) Maintenance(id string) (core.MaintenanceRequest, error) {
	return s.maintenance.get(id)
}

// MaintenanceRequests lists requests in insertion order.
func (s *Store) MaintenanceRequests() []core.MaintenanceRequest { return s.maintenance.list() }
