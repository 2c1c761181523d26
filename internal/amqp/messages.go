package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pgdesk/internal/core"
)

// Operations carried by entity events.
const (
	OpCreated       = "created"
	OpUpdated       = "updated"
	OpDeleted       = "deleted"
	OpPaid          = "paid"
	OpStatusChanged = "status_changed"
	OpOverdue       = "overdue"
)

// EntityEvent announces a successful command on one record. Summary is the
// human readable line shown in the activity feed.
type EntityEvent struct {
	EventID   string    `json:"eventId"`
	Kind      core.Kind `json:"kind"`
	EntityID  string    `json:"entityId"`
	Operation string    `json:"operation"`
	Summary   string    `json:"summary"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntityEvent stamps a new event with a random id and the given time.
func NewEntityEvent(kind core.Kind, entityID, op, summary string, at time.Time) *EntityEvent {
	return &EntityEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		EntityID:  entityID,
		Operation: op,
		Summary:   summary,
		Timestamp: at,
	}
}

// Validate rejects events a consumer cannot act on.
func (e *EntityEvent) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("unknown entity kind %q", e.Kind)
	}
	if e.EntityID == "" {
		return fmt.Errorf("missing entity id")
	}
	if e.Operation == "" {
		return fmt.Errorf("missing operation")
	}
	return nil
}

// RoutingKey is "<kind>.<operation>".
func (e *EntityEvent) RoutingKey() string {
	return string(e.Kind) + "." + e.Operation
}

// ToJSON converts the event to JSON bytes
func (e *EntityEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EntityEventFromJSON decodes and validates an event.
func EntityEventFromJSON(data []byte) (*EntityEvent, error) {
	var e EntityEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
