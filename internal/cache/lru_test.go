package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	_, ok := c.Get("a") // a is now most recent
	require.True(t, ok)
	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestLRUExpiry(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](10, time.Minute).WithClock(clk.now)
	c.Set("k", "v")
	c.Set("j", "w")

	clk.advance(30 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clk.advance(31 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.CleanExpired())
	assert.Zero(t, c.Size())
}

func TestGetOrCompute(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("answer", compute)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	_, err := c.GetOrCompute("broken", func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	_, ok := c.Get("broken")
	assert.False(t, ok, "errors are not cached")

	st := c.Stats()
	assert.Equal(t, uint64(2), st.Hits)
}

func TestJanitorSweep(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	a := NewLRUCache[int](4, time.Second).WithClock(clk.now)
	b := NewLRUCache[int](4, time.Hour).WithClock(clk.now)
	a.Set("x", 1)
	b.Set("y", 2)

	j := NewJanitor(nil, a)
	j.Register(b)
	clk.advance(2 * time.Second)
	assert.Equal(t, 1, j.Sweep())
	assert.Equal(t, 1, b.Size())
}

func TestJanitorRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, NewJanitor(nil).Run(ctx, time.Millisecond))
}
