package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"pgdesk/internal/amqp"
	"pgdesk/internal/sheets"
)

// ActivityMirror copies entity events from the broker into an activity sink
// so the export spreadsheet carries an audit trail of console commands.
type ActivityMirror struct {
	sink sheets.ActivityWriter

	// Redeliveries after a reconnect repeat event ids; seen keeps the most
	// recent ones so a row is written once.
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSeen int

	mirrored int
	skipped  int
}

func NewActivityMirror(sink sheets.ActivityWriter) *ActivityMirror {
	return &ActivityMirror{
		sink:    sink,
		seen:    make(map[string]struct{}),
		maxSeen: 1024,
	}
}

// HandleEvent processes a single entity event from AMQP.
func (w *ActivityMirror) HandleEvent(ctx context.Context, ev *amqp.EntityEvent) error {
	slog.InfoContext(ctx, "Processing entity event",
		"event_id", ev.EventID,
		"entity_kind", string(ev.Kind),
		"entity_id", ev.EntityID,
		"operation", ev.Operation)

	if w.alreadySeen(ev.EventID) {
		slog.DebugContext(ctx, "Skipping duplicate event", "event_id", ev.EventID)
		w.mu.Lock()
		w.skipped++
		w.mu.Unlock()
		return nil
	}

	ref, err := w.sink.AppendActivity(ctx, sheets.ActivityRow{
		At:        ev.Timestamp,
		Kind:      ev.Kind,
		EntityID:  ev.EntityID,
		Operation: ev.Operation,
		Summary:   ev.Summary,
	})
	if err != nil {
		w.forget(ev.EventID)
		return fmt.Errorf("append activity: %w", err)
	}

	w.mu.Lock()
	w.mirrored++
	w.mu.Unlock()

	slog.InfoContext(ctx, "Successfully mirrored event",
		"event_id", ev.EventID,
		"sheets_ref", ref)
	return nil
}

// Stats returns how many events were written and how many were duplicates.
func (w *ActivityMirror) Stats() (mirrored, skipped int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mirrored, w.skipped
}

func (w *ActivityMirror) alreadySeen(id string) bool {
	if id == "" {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.seen[id]; ok {
		return true
	}
	w.seen[id] = struct{}{}
	w.order = append(w.order, id)
	if len(w.order) > w.maxSeen {
		delete(w.seen, w.order[0])
		w.order = w.order[1:]
	}
	return false
}

// forget lets a failed event be retried on redelivery.
func (w *ActivityMirror) forget(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.seen, id)
}
