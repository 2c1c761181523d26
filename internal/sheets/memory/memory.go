package memory

import (
	"context"
	"fmt"
	"sync"

	"pgdesk/internal/core"
	"pgdesk/internal/log"
	ports "pgdesk/internal/sheets"
)

var _ ports.Sink = (*Store)(nil)

// Store keeps exported reports and activity rows in memory and logs each
// write. It backs EXPORT_BACKEND=memory and tests.
type Store struct {
	mu       sync.Mutex
	logger   *log.Logger
	reports  []ports.Report
	activity []ports.ActivityRow
}

func New(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Nop()
	}
	return &Store{logger: logger.WithComponent(log.ComponentSheets)}
}

// WriteReport stores r and returns a synthetic reference.
func (s *Store) WriteReport(ctx context.Context, r ports.Report) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := r
	cp.Points = append([]core.FinancialPoint(nil), r.Points...)
	s.reports = append(s.reports, cp)
	ref := fmt.Sprintf("mem:report:%d", len(s.reports))

	s.logger.InfoContext(ctx, "Report exported",
		log.FieldOperation, log.OpExport,
		log.FieldMonths, len(r.Points),
		"as_of", r.AsOf.String(),
		"net_profit", r.NetProfit.Format(r.Currency),
		log.FieldSheetsRef, ref)
	return ref, nil
}

// AppendActivity stores row and returns a synthetic reference.
func (s *Store) AppendActivity(ctx context.Context, row ports.ActivityRow) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = append(s.activity, row)
	ref := fmt.Sprintf("mem:activity:%d", len(s.activity))
	s.logger.DebugContext(ctx, "Activity mirrored",
		log.FieldEntityKind, string(row.Kind),
		log.FieldEntityID, row.EntityID,
		log.FieldSheetsRef, ref)
	return ref, nil
}

// Reports returns every report written so far, oldest first.
func (s *Store) Reports() []ports.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.Report(nil), s.reports...)
}

// Activity returns every mirrored row, oldest first.
func (s *Store) Activity() []ports.ActivityRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.ActivityRow(nil), s.activity...)
}
