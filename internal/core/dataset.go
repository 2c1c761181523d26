package core

// Dataset is a point-in-time copy of all five collections. It is also the
// on-disk seed format.
type Dataset struct {
	Rooms       []Room               `json:"rooms"`
	Tenants     []Tenant             `json:"tenants"`
	Payments    []Payment            `json:"payments"`
	Expenses    []Expense            `json:"expenses"`
	Maintenance []MaintenanceRequest `json:"maintenance"`
}

// Count returns the number of records of one kind.
func (d Dataset) Count(kind Kind) int {
	switch kind {
	case KindRoom:
		return len(d.Rooms)
	case KindTenant:
		return len(d.Tenants)
	case KindPayment:
		return len(d.Payments)
	case KindExpense:
		return len(d.Expenses)
	case KindMaintenance:
		return len(d.Maintenance)
	}
	return 0
}
