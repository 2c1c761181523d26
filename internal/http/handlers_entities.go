package http

import (
	"net/http"

	"pgdesk/internal/core"
	"pgdesk/internal/log"
)

// ListResponse wraps a filtered collection.
type ListResponse[T any] struct {
	Kind  core.Kind `json:"kind"`
	Count int       `json:"count"`
	Items []T       `json:"items"`
}

func newList[T any](kind core.Kind, items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Kind: kind, Count: len(items), Items: items}
}

// handleList serves GET /api/{collection}?q=...&field=value.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseCollection(r)
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	result, err := s.console.ListFiltered(r.Context(), kind, ParseFilter(r.URL.Query()))
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}

	var body any
	switch items := result.(type) {
	case []core.Room:
		body = newList(kind, items)
	case []core.Tenant:
		body = newList(kind, items)
	case []core.Payment:
		body = newList(kind, items)
	case []core.Expense:
		body = newList(kind, items)
	case []core.MaintenanceRequest:
		body = newList(kind, items)
	}
	writeJSON(w, http.StatusOK, body)
}

// handleGet serves GET /api/{collection}/{id}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseCollection(r)
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	record, err := s.console.Get(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleCreate serves POST /api/{collection}. Identifiers in the body are
// ignored; the store assigns them.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseCollection(r)
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}

	ctx := r.Context()
	var created any
	var id string
	switch kind {
	case core.KindRoom:
		var in core.Room
		if err = DecodeJSON(r, kind, &in); err == nil {
			var out core.Room
			out, err = s.console.AddRoom(ctx, in)
			created, id = out, out.ID
		}
	case core.KindTenant:
		var in core.Tenant
		if err = DecodeJSON(r, kind, &in); err == nil {
			var out core.Tenant
			out, err = s.console.AddTenant(ctx, in)
			created, id = out, out.ID
		}
	case core.KindPayment:
		var in core.Payment
		if err = DecodeJSON(r, kind, &in); err == nil {
			var out core.Payment
			out, err = s.console.AddPayment(ctx, in)
			created, id = out, out.ID
		}
	case core.KindExpense:
		var in core.Expense
		if err = DecodeJSON(r, kind, &in); err == nil {
			var out core.Expense
			out, err = s.console.AddExpense(ctx, in)
			created, id = out, out.ID
		}
	case core.KindMaintenance:
		var in core.MaintenanceRequest
		if err = DecodeJSON(r, kind, &in); err == nil {
			var out core.MaintenanceRequest
			out, err = s.console.AddMaintenance(ctx, in)
			created, id = out, out.ID
		}
	}
	if err != nil {
		writeError(w, r, log.OpCreate, err)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", r.URL.Path+"/"+id).
		Data(created).
		Write(w)
}

// handleUpdate serves PATCH /api/{collection}/{id}. Absent fields keep
// their stored value.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseCollection(r)
	if err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}

	ctx, id := r.Context(), r.PathValue("id")
	var updated any
	switch kind {
	case core.KindRoom:
		var p core.RoomPatch
		if err = DecodeJSON(r, kind, &p); err == nil {
			updated, err = s.console.UpdateRoom(ctx, id, p)
		}
	case core.KindTenant:
		var p core.TenantPatch
		if err = DecodeJSON(r, kind, &p); err == nil {
			updated, err = s.console.UpdateTenant(ctx, id, p)
		}
	case core.KindPayment:
		var p core.PaymentPatch
		if err = DecodeJSON(r, kind, &p); err == nil {
			updated, err = s.console.UpdatePayment(ctx, id, p)
		}
	case core.KindExpense:
		var p core.ExpensePatch
		if err = DecodeJSON(r, kind, &p); err == nil {
			updated, err = s.console.UpdateExpense(ctx, id, p)
		}
	case core.KindMaintenance:
		var p core.MaintenancePatch
		if err = DecodeJSON(r, kind, &p); err == nil {
			updated, err = s.console.UpdateMaintenance(ctx, id, p)
		}
	}
	if err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDelete serves DELETE /api/{collection}/{id} and returns the
// removed record.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseCollection(r)
	if err != nil {
		writeError(w, r, log.OpDelete, err)
		return
	}

	ctx, id := r.Context(), r.PathValue("id")
	var removed any
	switch kind {
	case core.KindRoom:
		removed, err = s.console.DeleteRoom(ctx, id)
	case core.KindTenant:
		removed, err = s.console.DeleteTenant(ctx, id)
	case core.KindPayment:
		removed, err = s.console.DeletePayment(ctx, id)
	case core.KindExpense:
		removed, err = s.console.DeleteExpense(ctx, id)
	case core.KindMaintenance:
		removed, err = s.console.DeleteMaintenance(ctx, id)
	}
	if err != nil {
		writeError(w, r, log.OpDelete, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}
