package http

import (
	"net/http"

	"pgdesk/internal/core"
	"pgdesk/internal/log"
)

// handleMarkPaid serves POST /api/payments/{id}/paid.
func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	p, err := s.console.MarkPaymentPaid(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, log.OpMarkPaid, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type statusRequest struct {
	Status core.RequestStatus `json:"status"`
}

// handleSetMaintenanceStatus serves POST /api/maintenance/{id}/status with
// body {"status":"completed"}.
func (s *Server) handleSetMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := DecodeJSON(r, core.KindMaintenance, &req); err != nil {
		writeError(w, r, log.OpSetStatus, err)
		return
	}
	m, err := s.console.SetMaintenanceStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, r, log.OpSetStatus, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// SweepResponse reports an overdue sweep.
type SweepResponse struct {
	AsOf    core.Date `json:"asOf"`
	Updated int       `json:"updated"`
}

// handleSweepOverdue serves POST /api/payments/sweep.
func (s *Server) handleSweepOverdue(w http.ResponseWriter, r *http.Request) {
	n, err := s.console.SweepOverdue(r.Context())
	if err != nil {
		writeError(w, r, log.OpSweep, err)
		return
	}
	writeJSON(w, http.StatusOK, SweepResponse{AsOf: s.console.Today(), Updated: n})
}
