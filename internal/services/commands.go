package services

import (
	"context"
	"fmt"

	"pgdesk/internal/amqp"
	"pgdesk/internal/core"
	"pgdesk/internal/log"
)

// DefaultPaymentMethod is used for expenses recorded without one.
const DefaultPaymentMethod = "Cash"

// Rooms

// AddRoom validates and stores a new room, then records and announces it.
func (c *Console) AddRoom(ctx context.Context, r core.Room) (core.Room, error) {
	out, err := c.store.AddRoom(r)
	if err != nil {
		return core.Room{}, c.rejected(ctx, log.OpCreate, core.KindRoom, "", err)
	}
	c.committed(ctx, log.OpCreate, amqp.OpCreated, core.KindRoom, out.ID,
		fmt.Sprintf("%s added on floor %d", roomLabel(out.Number), out.Floor), ToneInfo)
	return out, nil
}

// UpdateRoom applies the patch to the room with id; an invalid result changes nothing.
func (c *Console) UpdateRoom(ctx context.Context, id string, p core.RoomPatch) (core.Room, error) {
	out, err := c.store.UpdateRoom(id, p)
	if err != nil {
		return core.Room{}, c.rejected(ctx, log.OpUpdate, core.KindRoom, id, err)
	}
	c.committed(ctx, log.OpUpdate, amqp.OpUpdated, core.KindRoom, id,
		fmt.Sprintf("%s updated - %s", roomLabel(out.Number), out.Status), ToneInfo)
	return out, nil
}

// DeleteRoom removes the room with id and returns it.
func (c *Console) DeleteRoom(ctx context.Context, id string) (core.Room, error) {
	out, err := c.store.RemoveRoom(id)
	if err != nil {
		return core.Room{}, c.rejected(ctx, log.OpDelete, core.KindRoom, id, err)
	}
	c.committed(ctx, log.OpDelete, amqp.OpDeleted, core.KindRoom, id,
		fmt.Sprintf("%s removed", roomLabel(out.Number)), ToneWarning)
	return out, nil
}

// Tenants

// AddTenant validates and stores a new tenant, then records and announces it.
func (c *Console) AddTenant(ctx context.Context, t core.Tenant) (core.Tenant, error) {
	out, err := c.store.AddTenant(t)
	if err != nil {
		return core.Tenant{}, c.rejected(ctx, log.OpCreate, core.KindTenant, "", err)
	}
	c.committed(ctx, log.OpCreate, amqp.OpCreated, core.KindTenant, out.ID,
		fmt.Sprintf("New tenant %s checked in - %s", out.Name, roomLabel(out.RoomNumber)), ToneInfo)
	return out, nil
}

// UpdateTenant applies the patch to the tenant with id; an invalid result changes nothing.
func (c *Console) UpdateTenant(ctx context.Context, id string, p core.TenantPatch) (core.Tenant, error) {
	out, err := c.store.UpdateTenant(id, p)
	if err != nil {
		return core.Tenant{}, c.rejected(ctx, log.OpUpdate, core.KindTenant, id, err)
	}
	c.committed(ctx, log.OpUpdate, amqp.OpUpdated, core.KindTenant, id,
		fmt.Sprintf("Tenant %s updated - %s", out.Name, roomLabel(out.RoomNumber)), ToneInfo)
	return out, nil
}

// DeleteTenant removes the tenant with id and returns it.
func (c *Console) DeleteTenant(ctx context.Context, id string) (core.Tenant, error) {
	out, err := c.store.RemoveTenant(id)
	if err != nil {
		return core.Tenant{}, c.rejected(ctx, log.OpDelete, core.KindTenant, id, err)
	}
	c.committed(ctx, log.OpDelete, amqp.OpDeleted, core.KindTenant, id,
		fmt.Sprintf("Tenant %s checked out - %s", out.Name, roomLabel(out.RoomNumber)), ToneWarning)
	return out, nil
}

// Payments

// settlePayment keeps paidDate consistent with status: set (today by
// default) when paid, cleared otherwise.
func (c *Console) settlePayment(p core.Payment) core.Payment {
	if p.Status == core.PaymentPaid {
		if p.PaidDate.IsEmpty() {
			p.PaidDate = c.Today()
		}
	} else {
		p.PaidDate = core.Date{}
	}
	return p
}

// AddPayment validates and stores a new payment, then records and announces it.
func (c *Console) AddPayment(ctx context.Context, p core.Payment) (core.Payment, error) {
	out, err := c.store.AddPayment(c.settlePayment(p))
	if err != nil {
		return core.Payment{}, c.rejected(ctx, log.OpCreate, core.KindPayment, "", err)
	}
	c.committed(ctx, log.OpCreate, amqp.OpCreated, core.KindPayment, out.ID, paymentMessage(out), paymentTone(out))
	return out, nil
}

// UpdatePayment applies the patch to the payment with id; an invalid result changes nothing.
func (c *Console) UpdatePayment(ctx context.Context, id string, p core.PaymentPatch) (core.Payment, error) {
	out, err := c.store.UpdatePaymentFunc(id, func(cur core.Payment) core.Payment {
		return c.settlePayment(p.Apply(cur))
	})
	if err != nil {
		return core.Payment{}, c.rejected(ctx, log.OpUpdate, core.KindPayment, id, err)
	}
	c.committed(ctx, log.OpUpdate, amqp.OpUpdated, core.KindPayment, id, paymentMessage(out), paymentTone(out))
	return out, nil
}

// DeletePayment removes the payment with id and returns it.
func (c *Console) DeletePayment(ctx context.Context, id string) (core.Payment, error) {
	out, err := c.store.RemovePayment(id)
	if err != nil {
		return core.Payment{}, c.rejected(ctx, log.OpDelete, core.KindPayment, id, err)
	}
	c.committed(ctx, log.OpDelete, amqp.OpDeleted, core.KindPayment, id,
		fmt.Sprintf("Payment record removed for %s - %s", out.TenantName, roomLabel(out.RoomNumber)), ToneWarning)
	return out, nil
}

// MarkPaymentPaid sets the payment to paid with today's paid date.
func (c *Console) MarkPaymentPaid(ctx context.Context, id string) (core.Payment, error) {
	today := c.Today()
	out, err := c.store.UpdatePaymentFunc(id, func(p core.Payment) core.Payment {
		p.Status = core.PaymentPaid
		p.PaidDate = today
		return p
	})
	if err != nil {
		return core.Payment{}, c.rejected(ctx, log.OpMarkPaid, core.KindPayment, id, err)
	}
	c.committed(ctx, log.OpMarkPaid, amqp.OpPaid, core.KindPayment, id, paymentMessage(out), ToneSuccess)
	return out, nil
}

func paymentMessage(p core.Payment) string {
	switch p.Status {
	case core.PaymentPaid:
		return fmt.Sprintf("Payment received from %s - %s", p.TenantName, roomLabel(p.RoomNumber))
	case core.PaymentOverdue:
		return fmt.Sprintf("Payment overdue for %s - %s", roomLabel(p.RoomNumber), p.TenantName)
	}
	return fmt.Sprintf("Payment due from %s - %s on %s", p.TenantName, roomLabel(p.RoomNumber), p.DueDate)
}

func paymentTone(p core.Payment) string {
	switch p.Status {
	case core.PaymentPaid:
		return ToneSuccess
	case core.PaymentOverdue:
		return ToneWarning
	}
	return TonePending
}

// Expenses

// AddExpense validates and stores a new expense, then records and announces it.
func (c *Console) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.PaymentMethod == "" {
		e.PaymentMethod = DefaultPaymentMethod
	}
	out, err := c.store.AddExpense(e)
	if err != nil {
		return core.Expense{}, c.rejected(ctx, log.OpCreate, core.KindExpense, "", err)
	}
	c.committed(ctx, log.OpCreate, amqp.OpCreated, core.KindExpense, out.ID,
		fmt.Sprintf("Expense recorded - %s (%s)", out.Title, out.Category), ToneInfo)
	return out, nil
}

// UpdateExpense applies the patch to the expense with id; an invalid result changes nothing.
func (c *Console) UpdateExpense(ctx context.Context, id string, p core.ExpensePatch) (core.Expense, error) {
	out, err := c.store.UpdateExpense(id, p)
	if err != nil {
		return core.Expense{}, c.rejected(ctx, log.OpUpdate, core.KindExpense, id, err)
	}
	c.committed(ctx, log.OpUpdate, amqp.OpUpdated, core.KindExpense, id,
		fmt.Sprintf("Expense updated - %s", out.Title), ToneInfo)
	return out, nil
}

// DeleteExpense removes the expense with id and returns it.
func (c *Console) DeleteExpense(ctx context.Context, id string) (core.Expense, error) {
	out, err := c.store.RemoveExpense(id)
	if err != nil {
		return core.Expense{}, c.rejected(ctx, log.OpDelete, core.KindExpense, id, err)
	}
	c.committed(ctx, log.OpDelete, amqp.OpDeleted, core.KindExpense, id,
		fmt.Sprintf("Expense removed - %s", out.Title), ToneWarning)
	return out, nil
}

// Maintenance requests

// settleRequest keeps completedDate consistent with status: set (today by
// default) when completed, cleared otherwise.
func (c *Console) settleRequest(m core.MaintenanceRequest) core.MaintenanceRequest {
	if m.Status == core.RequestCompleted {
		if m.CompletedDate.IsEmpty() {
			m.CompletedDate = c.Today()
		}
	} else {
		m.CompletedDate = core.Date{}
	}
	return m
}

// AddMaintenance validates and stores a new maintenance request, then records and announces it.
func (c *Console) AddMaintenance(ctx context.Context, m core.MaintenanceRequest) (core.MaintenanceRequest, error) {
	if m.CreatedDate.IsEmpty() {
		m.CreatedDate = c.Today()
	}
	out, err := c.store.AddMaintenance(c.settleRequest(m))
	if err != nil {
		return core.MaintenanceRequest{}, c.rejected(ctx, log.OpCreate, core.KindMaintenance, "", err)
	}
	c.committed(ctx, log.OpCreate, amqp.OpCreated, core.KindMaintenance, out.ID, requestMessage(out), requestTone(out))
	return out, nil
}

// UpdateMaintenance applies the patch to the maintenance request with id; an invalid result changes nothing.
func (c *Console) UpdateMaintenance(ctx context.Context, id string, p core.MaintenancePatch) (core.MaintenanceRequest, error) {
	out, err := c.store.UpdateMaintenanceFunc(id, func(cur core.MaintenanceRequest) core.MaintenanceRequest {
		return c.settleRequest(p.Apply(cur))
	})
	if err != nil {
		return core.MaintenanceRequest{}, c.rejected(ctx, log.OpUpdate, core.KindMaintenance, id, err)
	}
	c.committed(ctx, log.OpUpdate, amqp.OpUpdated, core.KindMaintenance, id, requestMessage(out), requestTone(out))
	return out, nil
}

// DeleteMaintenance removes the maintenance request with id and returns it.
func (c *Console) DeleteMaintenance(ctx context.Context, id string) (core.MaintenanceRequest, error) {
	out, err := c.store.RemoveMaintenance(id)
	if err != nil {
		return core.MaintenanceRequest{}, c.rejected(ctx, log.OpDelete, core.KindMaintenance, id, err)
	}
	c.committed(ctx, log.OpDelete, amqp.OpDeleted, core.KindMaintenance, id,
		fmt.Sprintf("Maintenance request removed for %s - %s", roomLabel(out.RoomNumber), out.Title), ToneWarning)
	return out, nil
}

// SetMaintenanceStatus moves a request to status. completedDate becomes
// today when the new status is completed and is cleared for any other status.
func (c *Console) SetMaintenanceStatus(ctx context.Context, id string, status core.RequestStatus) (core.MaintenanceRequest, error) {
	if !status.Valid() {
		return core.MaintenanceRequest{}, c.rejected(ctx, log.OpSetStatus, core.KindMaintenance, id,
			core.Invalid(core.KindMaintenance, "status", "must be one of pending, in-progress, completed, cancelled"))
	}
	today := c.Today()
	out, err := c.store.UpdateMaintenanceFunc(id, func(m core.MaintenanceRequest) core.MaintenanceRequest {
		m.Status = status
		m.CompletedDate = core.Date{}
		if status == core.RequestCompleted {
			m.CompletedDate = today
		}
		return m
	})
	if err != nil {
		return core.MaintenanceRequest{}, c.rejected(ctx, log.OpSetStatus, core.KindMaintenance, id, err)
	}
	c.committed(ctx, log.OpSetStatus, amqp.OpStatusChanged, core.KindMaintenance, id, requestMessage(out), requestTone(out))
	return out, nil
}

func requestMessage(m core.MaintenanceRequest) string {
	switch m.Status {
	case core.RequestCompleted:
		return fmt.Sprintf("Maintenance completed for %s - %s", roomLabel(m.RoomNumber), m.Title)
	case core.RequestInProgress:
		return fmt.Sprintf("Maintenance in progress for %s - %s", roomLabel(m.RoomNumber), m.Title)
	case core.RequestCancelled:
		return fmt.Sprintf("Maintenance cancelled for %s - %s", roomLabel(m.RoomNumber), m.Title)
	}
	return fmt.Sprintf("Maintenance request for %s - %s", roomLabel(m.RoomNumber), m.Title)
}

func requestTone(m core.MaintenanceRequest) string {
	switch m.Status {
	case core.RequestCompleted:
		return ToneSuccess
	case core.RequestCancelled:
		return ToneInfo
	}
	if m.Priority == core.PriorityUrgent {
		return ToneWarning
	}
	return TonePending
}
