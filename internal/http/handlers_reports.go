package http

import (
	"net/http"
	"strconv"

	"pgdesk/internal/core"
	"pgdesk/internal/log"
	"pgdesk/internal/services"
)

// cachedView serves a derived view through the view cache.
func (s *Server) cachedView(compute func() (any, error), parts ...string) (any, error) {
	key := cacheKey(s.console.Store().Revision(), s.console.Today().String(), parts...)
	return s.views.GetOrCompute(key, compute)
}

// handleAggregate serves GET /api/aggregate/{collection}/{aggregation}.
// List filters apply before aggregating.
func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseCollection(r)
	if err != nil {
		writeError(w, r, log.OpAggregate, err)
		return
	}
	values := r.URL.Query()
	months, err := ParseMonths(values)
	if err != nil {
		writeError(w, r, log.OpAggregate, err)
		return
	}
	aggregation := r.PathValue("aggregation")
	params := services.AggregateParams{Filter: ParseFilter(values), Months: months}

	view, err := s.cachedView(func() (any, error) {
		return s.console.Aggregate(r.Context(), kind, aggregation, params)
	}, "aggregate", string(kind), aggregation, values.Encode())
	if err != nil {
		writeError(w, r, log.OpAggregate, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleDashboard serves GET /api/dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := s.cachedView(func() (any, error) {
		return s.console.Dashboard(r.Context()), nil
	}, "dashboard")
	if err != nil {
		writeError(w, r, log.OpAggregate, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleFinancialReport serves GET /api/reports/financial?months=N.
func (s *Server) handleFinancialReport(w http.ResponseWriter, r *http.Request) {
	months, err := ParseMonths(r.URL.Query())
	if err != nil {
		writeError(w, r, log.OpAggregate, err)
		return
	}
	view, err := s.cachedView(func() (any, error) {
		return s.console.FinancialReport(r.Context(), months)
	}, "report", strconv.Itoa(months))
	if err != nil {
		writeError(w, r, log.OpAggregate, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleTenantLedger serves GET /api/tenants/{id}/ledger.
func (s *Server) handleTenantLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.console.TenantLedger(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

// MetaResponse describes what the API accepts.
type MetaResponse struct {
	Collections  []string                   `json:"collections"`
	Enums        map[string][]core.EnumMeta `json:"enums"`
	Filters      map[core.Kind][]string     `json:"filters"`
	Aggregations []string                   `json:"aggregations"`
	Currency     string                     `json:"currency,omitempty"`
}

// handleMeta serves GET /api/meta.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	filters := make(map[core.Kind][]string, len(core.Kinds()))
	for _, k := range core.Kinds() {
		filters[k] = core.FilterableFields(k)
	}
	writeJSON(w, http.StatusOK, MetaResponse{
		Collections:  []string{"rooms", "tenants", "payments", "expenses", "maintenance"},
		Enums:        core.MetaTable(),
		Filters:      filters,
		Aggregations: services.AggregationKinds(),
		Currency:     s.currency,
	})
}

// handleActivity serves GET /api/activity?limit=N, newest first.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := ParseLimit(r.URL.Query())
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	items := s.console.Activity(limit)
	if items == nil {
		items = []services.Activity{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(items), "items": items})
}
