// Package services is the command and query boundary in front of the entity
// store. Every state change goes through Console so it is validated, logged,
// recorded in the activity feed and announced as an event.
package services

import (
	"context"
	"fmt"
	"time"

	"pgdesk/internal/amqp"
	"pgdesk/internal/analytics"
	"pgdesk/internal/core"
	"pgdesk/internal/log"
	"pgdesk/internal/store"
)

// Clock returns the evaluation time.
type Clock func() time.Time

// EventPublisher announces entity events. Implemented by *amqp.Client.
type EventPublisher interface {
	Publish(ctx context.Context, event *amqp.EntityEvent) error
}

// Console serves the commands and queries of the operator console.
type Console struct {
	store     *store.Store
	clock     Clock
	publisher EventPublisher
	activity  *ActivityFeed
	logger    *log.Logger
	audit     *log.StructuredLogger
	months    int
}

// Option configures a Console.
type Option func(*Console)

func WithClock(clock Clock) Option {
	return func(c *Console) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithPublisher enables event publication. A nil publisher disables it.
func WithPublisher(p EventPublisher) Option {
	return func(c *Console) { c.publisher = p }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithActivityFeed(f *ActivityFeed) Option {
	return func(c *Console) {
		if f != nil {
			c.activity = f
		}
	}
}

// WithTrailingMonths sets the default window of series aggregations.
func WithTrailingMonths(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.months = n
		}
	}
}

// NewConsole wraps st. The store is owned by the caller and may be shared
// with other readers.
func NewConsole(st *store.Store, opts ...Option) *Console {
	c := &Console{
		store:    st,
		clock:    time.Now,
		activity: NewActivityFeed(DefaultActivityLimit),
		logger:   log.Nop(),
		months:   analytics.DefaultTrailingMonths,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent(log.ComponentConsole)
	c.audit = log.NewStructuredLogger(c.logger)
	return c
}

// Store exposes the underlying store for read-only consumers.
func (c *Console) Store() *store.Store { return c.store }

// Today is the evaluation date.
func (c *Console) Today() core.Date { return core.DateOf(c.clock()) }

// TrailingMonths is the default series window.
func (c *Console) TrailingMonths() int { return c.months }

// Activity returns up to n recent activities, newest first.
func (c *Console) Activity(n int) []Activity { return c.activity.Recent(n) }

// committed logs, records and publishes a successful command.
func (c *Console) committed(ctx context.Context, op, eventOp string, kind core.Kind, id, message, tone string) {
	c.audit.LogCommand(ctx, op, kind, id, nil)

	now := c.clock()
	c.activity.Record(Activity{
		Kind:      kind,
		EntityID:  id,
		Operation: eventOp,
		Message:   message,
		Tone:      tone,
		At:        now,
	})

	if c.publisher == nil {
		return
	}
	event := amqp.NewEntityEvent(kind, id, eventOp, message, now)
	event.Status = tone
	if err := c.publisher.Publish(ctx, event); err != nil {
		// publication failures never fail the command
		c.logger.WarnContext(ctx, "Failed to publish entity event",
			log.NewFields().
				WithOperation(log.OpPublish).
				WithEntity(kind, id).
				WithError(err).
				ToSlice()...)
	}
}

func (c *Console) rejected(ctx context.Context, op string, kind core.Kind, id string, err error) error {
	c.audit.LogCommand(ctx, op, kind, id, err)
	return err
}

func roomLabel(number string) string {
	if number == "" {
		return "unassigned room"
	}
	return fmt.Sprintf("Room %s", number)
}
