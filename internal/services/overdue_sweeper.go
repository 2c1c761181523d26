package services

import (
	"context"
	"time"

	"pgdesk/internal/amqp"
	"pgdesk/internal/core"
	"pgdesk/internal/log"
)

// SweepOverdue marks every pending payment whose due date is before today as
// overdue and returns how many changed. A payment that is settled between
// the scan and the update is left alone.
func (c *Console) SweepOverdue(ctx context.Context) (int, error) {
	today := c.Today()
	candidates := c.store.Payments()

	c.logger.DebugContext(ctx, "Sweeping overdue payments",
		log.FieldCount, len(candidates),
		"as_of", today.String())

	changed := 0
	for _, p := range candidates {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		if !isOverdue(p, today) {
			continue
		}

		out, flipped, err := c.store.UpdatePaymentIf(p.ID, func(cur core.Payment) (core.Payment, bool) {
			if !isOverdue(cur, today) {
				return cur, false
			}
			cur.Status = core.PaymentOverdue
			return cur, true
		})
		if err != nil {
			if core.IsNotFound(err) {
				continue // deleted since the scan
			}
			c.logger.ErrorContext(ctx, "Failed to mark payment overdue",
				log.NewFields().WithEntity(core.KindPayment, p.ID).WithError(err).ToSlice()...)
			continue
		}
		if !flipped {
			continue
		}

		changed++
		c.committed(ctx, log.OpSweep, amqp.OpOverdue, core.KindPayment, out.ID, paymentMessage(out), ToneWarning)
	}

	if changed > 0 {
		c.logger.InfoContext(ctx, "Overdue sweep complete",
			log.FieldCount, changed,
			"checked", len(candidates))
	}
	return changed, nil
}

func isOverdue(p core.Payment, today core.Date) bool {
	return p.Status == core.PaymentPending && !p.DueDate.IsEmpty() && p.DueDate.Before(today)
}

// RunOverdueSweeper sweeps immediately and then every interval until ctx is
// done.
func (c *Console) RunOverdueSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}
	logger := c.logger.WithComponent(log.ComponentSweeper)
	logger.InfoContext(ctx, "Overdue sweeper started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := c.SweepOverdue(ctx); err != nil && ctx.Err() == nil {
			logger.ErrorContext(ctx, "Overdue sweep failed", log.FieldError, err)
		}
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "Overdue sweeper stopped")
			return nil
		case <-ticker.C:
		}
	}
}
