package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgdesk/internal/amqp"
	"pgdesk/internal/core"
	"pgdesk/internal/sheets"
	"pgdesk/internal/sheets/memory"
)

type failingSink struct{ calls int }

func (f *failingSink) AppendActivity(context.Context, sheets.ActivityRow) (string, error) {
	f.calls++
	return "", errors.New("sheets unavailable")
}

func testEvent(id string) *amqp.EntityEvent {
	ev := amqp.NewEntityEvent(core.KindPayment, "pay-1", amqp.OpPaid,
		"Payment received from John Doe - Room 101",
		time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC))
	ev.EventID = id
	return ev
}

func TestActivityMirror_WritesRow(t *testing.T) {
	sink := memory.New(nil)
	m := NewActivityMirror(sink)

	require.NoError(t, m.HandleEvent(context.Background(), testEvent("ev-1")))

	rows := sink.Activity()
	require.Len(t, rows, 1)
	assert.Equal(t, core.KindPayment, rows[0].Kind)
	assert.Equal(t, "pay-1", rows[0].EntityID)
	assert.Equal(t, amqp.OpPaid, rows[0].Operation)
	assert.Equal(t, "Payment received from John Doe - Room 101", rows[0].Summary)
}

func TestActivityMirror_SkipsRedelivery(t *testing.T) {
	sink := memory.New(nil)
	m := NewActivityMirror(sink)
	ctx := context.Background()

	require.NoError(t, m.HandleEvent(ctx, testEvent("ev-1")))
	require.NoError(t, m.HandleEvent(ctx, testEvent("ev-1")))
	require.NoError(t, m.HandleEvent(ctx, testEvent("ev-2")))

	assert.Len(t, sink.Activity(), 2)
	mirrored, skipped := m.Stats()
	assert.Equal(t, 2, mirrored)
	assert.Equal(t, 1, skipped)
}

func TestActivityMirror_FailureAllowsRetry(t *testing.T) {
	sink := &failingSink{}
	m := NewActivityMirror(sink)
	ctx := context.Background()

	assert.Error(t, m.HandleEvent(ctx, testEvent("ev-1")))
	assert.Error(t, m.HandleEvent(ctx, testEvent("ev-1")))
	assert.Equal(t, 2, sink.calls, "failed events must not be remembered as seen")
}

func TestActivityMirror_BoundedMemory(t *testing.T) {
	m := NewActivityMirror(memory.New(nil))
	m.maxSeen = 2
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.HandleEvent(ctx, testEvent(id)))
	}
	// "a" fell out of the window and is written again.
	require.NoError(t, m.HandleEvent(ctx, testEvent("a")))
	mirrored, skipped := m.Stats()
	assert.Equal(t, 4, mirrored)
	assert.Equal(t, 0, skipped)
}
