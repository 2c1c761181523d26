package analytics

import (
	"strings"

	"pgdesk/internal/core"
)

// TenantLedger is one tenant with the payments and requests that refer to it.
type TenantLedger struct {
	Tenant      core.Tenant               `json:"tenant"`
	Room        *core.Room                `json:"room,omitempty"`
	Payments    []core.Payment            `json:"payments"`
	Requests    []core.MaintenanceRequest `json:"requests"`
	Totals      core.StatusTotals         `json:"totals"`
	Outstanding core.Money                `json:"outstanding"`
}

// Ledger joins a tenant with its room, payments and maintenance requests.
// References resolve by identifier when one is recorded and fall back to the
// denormalized name or room number otherwise.
func Ledger(ds core.Dataset, tenant core.Tenant) TenantLedger {
	l := TenantLedger{
		Tenant:   tenant,
		Room:     ResolveRoom(ds.Rooms, tenant),
		Payments: []core.Payment{},
		Requests: []core.MaintenanceRequest{},
	}
	for _, p := range ds.Payments {
		if refersTo(p.TenantID, p.TenantName, tenant) {
			l.Payments = append(l.Payments, p)
		}
	}
	for _, m := range ds.Maintenance {
		if refersTo(m.TenantID, m.TenantName, tenant) {
			l.Requests = append(l.Requests, m)
		}
	}
	l.Totals = PaymentStatusTotals(l.Payments)
	l.Outstanding = l.Totals.Pending.Add(l.Totals.Overdue)
	return l
}

// ResolveRoom finds the tenant's room by RoomID, then by room number.
func ResolveRoom(rooms []core.Room, t core.Tenant) *core.Room {
	if t.RoomID != "" {
		for i := range rooms {
			if rooms[i].ID == t.RoomID {
				r := rooms[i]
				return &r
			}
		}
		return nil
	}
	for i := range rooms {
		if strings.EqualFold(strings.TrimSpace(rooms[i].Number), strings.TrimSpace(t.RoomNumber)) {
			r := rooms[i]
			return &r
		}
	}
	return nil
}

func refersTo(id, name string, t core.Tenant) bool {
	if id != "" {
		return id == t.ID
	}
	return strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(t.Name))
}
