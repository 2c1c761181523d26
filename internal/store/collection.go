package store

import (
	"fmt"
	"sync"

	"pgdesk/internal/core"
)

// entity is what a collection needs from a record type.
type entity interface {
	core.Record
	Validate() error
}

// collection is an insertion-ordered set of records keyed by ID. Every
// mutation holds the write lock for its whole duration, so a rejected call
// never leaves a partial change behind.
type collection[T entity] struct {
	mu    sync.RWMutex
	kind  core.Kind
	items []T
	index map[string]int

	withID func(T, string) T
	clone  func(T) T
}

func newCollection[T entity](kind core.Kind, withID func(T, string) T, clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{
		kind:   kind,
		index:  make(map[string]int),
		withID: withID,
		clone:  clone,
	}
}

const maxIDAttempts = 8

// add assigns a fresh identifier from newID and appends the record.
func (c *collection[T]) add(v T, newID func() string) (T, error) {
	var zero T
	if err := v.Validate(); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := ""
	for i := 0; i < maxIDAttempts; i++ {
		candidate := newID()
		if _, taken := c.index[candidate]; candidate != "" && !taken {
			id = candidate
			break
		}
	}
	if id == "" {
		return zero, fmt.Errorf("%s: could not allocate a unique id", c.kind)
	}

	v = c.withID(c.clone(v), id)
	c.index[id] = len(c.items)
	c.items = append(c.items, v)
	return c.clone(v), nil
}

// insert appends a record that already carries an identifier (seed loading).
func (c *collection[T]) insert(v T) error {
	if err := v.Validate(); err != nil {
		return err
	}
	id := v.RecordID()
	if id == "" {
		return core.Invalid(c.kind, "id", "is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, taken := c.index[id]; taken {
		return core.Invalid(c.kind, "id", fmt.Sprintf("%q is duplicated", id))
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, c.clone(v))
	return nil
}

// update replaces the record with apply's result once it validates.
func (c *collection[T]) update(id string, apply func(T) T) (T, error) {
	out, _, err := c.updateIf(id, func(v T) (T, bool) { return apply(v), true })
	return out, err
}

// updateIf is update where apply may decline the write by returning false.
// A declined write returns the stored record unchanged.
func (c *collection[T]) updateIf(id string, apply func(T) (T, bool)) (T, bool, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[id]
	if !ok {
		return zero, false, core.NotFound(c.kind, id)
	}
	merged, write := apply(c.clone(c.items[pos]))
	if !write {
		return c.clone(c.items[pos]), false, nil
	}
	merged = c.withID(merged, id)
	if err := merged.Validate(); err != nil {
		return zero, false, err
	}
	c.items[pos] = merged
	return c.clone(merged), true, nil
}

func (c *collection[T]) remove(id string) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[id]
	if !ok {
		return zero, core.NotFound(c.kind, id)
	}
	removed := c.items[pos]
	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].RecordID()] = i
	}
	return removed, nil
}

func (c *collection[T]) get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pos, ok := c.index[id]
	if !ok {
		var zero T
		return zero, core.NotFound(c.kind, id)
	}
	return c.clone(c.items[pos]), nil
}

// list returns a copy of the records in insertion order.
func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	for i, v := range c.items {
		out[i] = c.clone(v)
	}
	return out
}

func (c *collection[T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
