package services

import (
	"sync"
	"time"

	"pgdesk/internal/core"
)

// DefaultActivityLimit bounds the activity feed.
const DefaultActivityLimit = 50

// Activity tones, used by the presentation layer for badges.
const (
	ToneSuccess = "success"
	TonePending = "pending"
	ToneInfo    = "info"
	ToneWarning = "warning"
)

// Activity is one line of the recent-activity feed.
type Activity struct {
	Kind      core.Kind `json:"type"`
	EntityID  string    `json:"entityId"`
	Operation string    `json:"operation"`
	Message   string    `json:"message"`
	Tone      string    `json:"status"`
	At        time.Time `json:"at"`
}

// ActivityFeed keeps the most recent activities, newest first.
type ActivityFeed struct {
	mu    sync.RWMutex
	limit int
	items []Activity
}

func NewActivityFeed(limit int) *ActivityFeed {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return &ActivityFeed{limit: limit}
}

// Record prepends a and drops the oldest entry once the feed is full.
func (f *ActivityFeed) Record(a Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]Activity{a}, f.items...)
	if len(f.items) > f.limit {
		f.items = f.items[:f.limit]
	}
}

// Recent returns up to n activities, newest first. n <= 0 returns all.
func (f *ActivityFeed) Recent(n int) []Activity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if n <= 0 || n > len(f.items) {
		n = len(f.items)
	}
	out := make([]Activity, n)
	copy(out, f.items[:n])
	return out
}
