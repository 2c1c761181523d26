// Package store holds the five entity collections in process memory.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/google/uuid"

	"pgdesk/internal/core"
)

// IDGenerator returns a fresh identifier for a new record.
type IDGenerator func() string

// Store owns the Room, Tenant, Payment, Expense and MaintenanceRequest
// collections. It is safe for concurrent use; mutations are serialized per
// collection.
type Store struct {
	newID    IDGenerator
	revision atomic.Uint64

	rooms       *collection[core.Room]
	tenants     *collection[core.Tenant]
	payments    *collection[core.Payment]
	expenses    *collection[core.Expense]
	maintenance *collection[core.MaintenanceRequest]
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		newID: func() string { return uuid.NewString() },
		rooms: newCollection(core.KindRoom,
			func(r core.Room, id string) core.Room { r.ID = id; return r },
			cloneRoom),
		tenants: newCollection(core.KindTenant,
			func(t core.Tenant, id string) core.Tenant { t.ID = id; return t },
			nil),
		payments: newCollection(core.KindPayment,
			func(p core.Payment, id string) core.Payment { p.ID = id; return p },
			nil),
		expenses: newCollection(core.KindExpense,
			func(e core.Expense, id string) core.Expense { e.ID = id; return e },
			nil),
		maintenance: newCollection(core.KindMaintenance,
			func(m core.MaintenanceRequest, id string) core.MaintenanceRequest { m.ID = id; return m },
			cloneRequest),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromDataset returns a store pre-filled with ds. Records keep their
// identifiers; records without one get a generated identifier.
func NewFromDataset(ds core.Dataset, opts ...Option) (*Store, error) {
	s := New(opts...)
	if err := s.load(ds); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromFile loads a JSON dataset from path. An empty path yields an empty store.
func NewFromFile(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return New(opts...), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	ds, err := DecodeDataset(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return NewFromDataset(ds, opts...)
}

// DecodeDataset reads a JSON dataset, rejecting unknown fields.
func DecodeDataset(r io.Reader) (core.Dataset, error) {
	var ds core.Dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return core.Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// WriteDataset writes the current contents as indented JSON.
func (s *Store) WriteDataset(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Snapshot())
}

func (s *Store) load(ds core.Dataset) error {
	for _, r := range ds.Rooms {
		r.Amenities = core.NormalizeAmenities(r.Amenities)
		if err := loadOne(s.rooms, r, s.newID); err != nil {
			return err
		}
	}
	for _, t := range ds.Tenants {
		if err := loadOne(s.tenants, t, s.newID); err != nil {
			return err
		}
	}
	for _, p := range ds.Payments {
		if err := loadOne(s.payments, p, s.newID); err != nil {
			return err
		}
	}
	for _, e := range ds.Expenses {
		if err := loadOne(s.expenses, e, s.newID); err != nil {
			return err
		}
	}
	for _, m := range ds.Maintenance {
		if err := loadOne(s.maintenance, m, s.newID); err != nil {
			return err
		}
	}
	s.bump()
	return nil
}

func loadOne[T entity](c *collection[T], v T, newID IDGenerator) error {
	if v.RecordID() == "" {
		_, err := c.add(v, newID)
		return err
	}
	return c.insert(v)
}

// Revision increases on every successful mutation. Readers use it to key
// derived results.
func (s *Store) Revision() uint64 {
	return s.revision.Load()
}

func (s *Store) bump() {
	s.revision.Add(1)
}

// Snapshot copies every collection.
func (s *Store) Snapshot() core.Dataset {
	return core.Dataset{
		Rooms:       s.rooms.list(),
		Tenants:     s.tenants.list(),
		Payments:    s.payments.list(),
		Expenses:    s.expenses.list(),
		Maintenance: s.maintenance.list(),
	}
}

// Count returns the size of one collection.
func (s *Store) Count(kind core.Kind) int {
	switch kind {
	case core.KindRoom:
		return s.rooms.size()
	case core.KindTenant:
		return s.tenants.size()
	case core.KindPayment:
		return s.payments.size()
	case core.KindExpense:
		return s.expenses.size()
	case core.KindMaintenance:
		return s.maintenance.size()
	}
	return 0
}

func cloneRoom(r core.Room) core.Room {
	if r.Amenities != nil {
		r.Amenities = append([]string(nil), r.Amenities...)
	}
	return r
}

func cloneRequest(m core.MaintenanceRequest) core.MaintenanceRequest {
	if m.EstimatedCost != nil {
		v := *m.EstimatedCost
		m.EstimatedCost = &v
	}
	if m.ActualCost != nil {
		v := *m.ActualCost
		m.ActualCost = &v
	}
	return m
}
