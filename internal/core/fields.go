package core

import "strconv"

// Record is what the query engine needs from an entity: its identifier, the
// text fields free-text search looks at, and named categorical fields.
type Record interface {
	RecordID() string
	SearchFields() []string
	FieldValue(name string) (string, bool)
}

var (
	_ Record = Room{}
	_ Record = Tenant{}
	_ Record = Payment{}
	_ Record = Expense{}
	_ Record = MaintenanceRequest{}
)

func (r Room) RecordID() string { return r.ID }

func (r Room) SearchFields() []string { return []string{r.Number, r.OccupantName} }

func (r Room) FieldValue(name string) (string, bool) {
	switch name {
	case "status":
		return string(r.Status), true
	case "type":
		return r.Type, true
	case "floor":
		return strconv.Itoa(r.Floor), true
	}
	return "", false
}

func (t Tenant) RecordID() string { return t.ID }

func (t Tenant) SearchFields() []string { return []string{t.Name, t.Email, t.RoomNumber} }

func (t Tenant) FieldValue(name string) (string, bool) {
	switch name {
	case "status":
		return string(t.Status), true
	case "roomNumber":
		return t.RoomNumber, true
	}
	return "", false
}

func (p Payment) RecordID() string { return p.ID }

func (p Payment) SearchFields() []string { return []string{p.TenantName, p.RoomNumber} }

func (p Payment) FieldValue(name string) (string, bool) {
	switch name {
	case "status":
		return string(p.Status), true
	case "type":
		return string(p.Type), true
	}
	return "", false
}

func (e Expense) RecordID() string { return e.ID }

func (e Expense) SearchFields() []string { return []string{e.Title, e.Vendor} }

func (e Expense) FieldValue(name string) (string, bool) {
	switch name {
	case "category":
		return string(e.Category), true
	case "paymentMethod":
		return e.PaymentMethod, true
	}
	return "", false
}

func (m MaintenanceRequest) RecordID() string { return m.ID }

func (m MaintenanceRequest) SearchFields() []string {
	return []string{m.TenantName, m.RoomNumber, m.Title}
}

func (m MaintenanceRequest) FieldValue(name string) (string, bool) {
	switch name {
	case "status":
		return string(m.Status), true
	case "priority":
		return string(m.Priority), true
	case "category":
		return string(m.Category), true
	}
	return "", false
}

// FilterableFields lists the categorical fields each kind accepts.
func FilterableFields(kind Kind) []string {
	switch kind {
	case KindRoom:
		return []string{"status", "type", "floor"}
	case KindTenant:
		return []string{"status", "roomNumber"}
	case KindPayment:
		return []string{"status", "type"}
	case KindExpense:
		return []string{"category", "paymentMethod"}
	case KindMaintenance:
		return []string{"status", "priority", "category"}
	}
	return nil
}
