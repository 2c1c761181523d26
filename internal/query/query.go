// Package query filters snapshots of entity collections. Every function is a
// stable filter: the result keeps the input's relative order.
package query

import (
	"slices"
	"strings"

	"pgdesk/internal/core"
)

// All disables a field filter.
const All = "all"

// Search keeps records whose search fields contain term, ignoring case.
// The term is trimmed first, so an empty or blank term matches everything.
func Search[T core.Record](records []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clip(records)
	}
	return keep(records, func(r T) bool {
		for _, f := range r.SearchFields() {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	})
}

// FilterByField keeps records whose field equals value exactly. The value
// "all" (any case) or an empty value disables the filter. Records that do not
// expose field never match.
func FilterByField[T core.Record](records []T, field, value string) []T {
	if disabled(value) {
		return clip(records)
	}
	return keep(records, func(r T) bool {
		v, ok := r.FieldValue(field)
		return ok && v == value
	})
}

// Filter is a search term plus categorical field filters, combined with AND.
type Filter struct {
	Term   string            `json:"q,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Validate checks field names against the filterable fields of kind.
func (f Filter) Validate(kind core.Kind) error {
	allowed := core.FilterableFields(kind)
	for name := range f.Fields {
		if !slices.Contains(allowed, name) {
			return core.Invalid(kind, name, "is not a filterable field")
		}
	}
	return nil
}

// Active reports whether any predicate would drop records.
func (f Filter) Active() bool {
	if strings.TrimSpace(f.Term) != "" {
		return true
	}
	for _, v := range f.Fields {
		if !disabled(v) {
			return true
		}
	}
	return false
}

// Apply runs the search and every field filter. Predicates are independent,
// so the order they run in does not change the result.
func Apply[T core.Record](records []T, f Filter) []T {
	out := Search(records, f.Term)
	for _, name := range sortedKeys(f.Fields) {
		out = FilterByField(out, name, f.Fields[name])
	}
	return out
}

func disabled(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, All)
}

func keep[T any](records []T, pred func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func clip[T any](records []T) []T {
	return append(make([]T, 0, len(records)), records...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
