package core

import (
	"strings"
)

const maxTextLen = 500

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func requireText(kind Kind, field, value string) error {
	if blank(value) {
		return Invalid(kind, field, "is required")
	}
	if len(value) > maxTextLen {
		return Invalid(kind, field, "is too long")
	}
	return nil
}

func requireDate(kind Kind, field string, d Date) error {
	if d.IsEmpty() {
		return Invalid(kind, field, "is required")
	}
	if err := d.Validate(); err != nil {
		return Invalid(kind, field, err.Error())
	}
	return nil
}

func requirePositive(kind Kind, field string, m Money) error {
	if m.Validate() != nil {
		return Invalid(kind, field, "must be greater than zero")
	}
	return nil
}

func requireNonNegative(kind Kind, field string, m Money) error {
	if m.Minor < 0 {
		return Invalid(kind, field, "must not be negative")
	}
	return nil
}

func (r Room) Validate() error {
	if err := requireText(KindRoom, "number", r.Number); err != nil {
		return err
	}
	if err := requirePositive(KindRoom, "monthlyRent", r.MonthlyRent); err != nil {
		return err
	}
	if err := requireNonNegative(KindRoom, "deposit", r.Deposit); err != nil {
		return err
	}
	if !r.Status.Valid() {
		return Invalid(KindRoom, "status", "must be one of occupied, vacant, maintenance")
	}
	if r.Floor < 0 {
		return Invalid(KindRoom, "floor", "must not be negative")
	}
	return nil
}

func (t Tenant) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", t.Name},
		{"email", t.Email},
		{"phone", t.Phone},
		{"roomNumber", t.RoomNumber},
	} {
		if err := requireText(KindTenant, f.name, f.value); err != nil {
			return err
		}
	}
	if !strings.Contains(t.Email, "@") {
		return Invalid(KindTenant, "email", "must be an email address")
	}
	if err := requireDate(KindTenant, "checkInDate", t.CheckInDate); err != nil {
		return err
	}
	if err := requirePositive(KindTenant, "monthlyRent", t.MonthlyRent); err != nil {
		return err
	}
	if err := requireNonNegative(KindTenant, "deposit", t.Deposit); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return Invalid(KindTenant, "status", "must be one of active, inactive, pending")
	}
	return nil
}

func (p Payment) Validate() error {
	if err := requireText(KindPayment, "tenantName", p.TenantName); err != nil {
		return err
	}
	if err := requireText(KindPayment, "roomNumber", p.RoomNumber); err != nil {
		return err
	}
	if err := requirePositive(KindPayment, "amount", p.Amount); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return Invalid(KindPayment, "type", "must be one of rent, deposit, maintenance, electricity, other")
	}
	if !p.Status.Valid() {
		return Invalid(KindPayment, "status", "must be one of paid, pending, overdue")
	}
	if err := requireDate(KindPayment, "dueDate", p.DueDate); err != nil {
		return err
	}
	if p.Status == PaymentPaid && p.PaidDate.IsEmpty() {
		return Invalid(KindPayment, "paidDate", "is required for paid payments")
	}
	return nil
}

func (e Expense) Validate() error {
	if err := requireText(KindExpense, "title", e.Title); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return Invalid(KindExpense, "category", "is not a known category")
	}
	if err := requirePositive(KindExpense, "amount", e.Amount); err != nil {
		return err
	}
	if err := requireDate(KindExpense, "date", e.Date); err != nil {
		return err
	}
	if blank(e.PaymentMethod) {
		return Invalid(KindExpense, "paymentMethod", "is required")
	}
	return nil
}

func (m MaintenanceRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"tenantName", m.TenantName},
		{"roomNumber", m.RoomNumber},
		{"title", m.Title},
		{"description", m.Description},
	} {
		if err := requireText(KindMaintenance, f.name, f.value); err != nil {
			return err
		}
	}
	if !m.Category.Valid() {
		return Invalid(KindMaintenance, "category", "is not a known category")
	}
	if !m.Priority.Valid() {
		return Invalid(KindMaintenance, "priority", "must be one of low, medium, high, urgent")
	}
	if !m.Status.Valid() {
		return Invalid(KindMaintenance, "status", "must be one of pending, in-progress, completed, cancelled")
	}
	if err := requireDate(KindMaintenance, "createdDate", m.CreatedDate); err != nil {
		return err
	}
	if m.EstimatedCost != nil {
		if err := requireNonNegative(KindMaintenance, "estimatedCost", *m.EstimatedCost); err != nil {
			return err
		}
	}
	if m.ActualCost != nil {
		if err := requireNonNegative(KindMaintenance, "actualCost", *m.ActualCost); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeAmenities trims, drops blanks and deduplicates while keeping the
// order of first appearance.
func NormalizeAmenities(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
