// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data:
// strict JSON bodies, collection names, list filters and window sizes.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pgdesk/internal/core"
	"pgdesk/internal/query"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// errMalformedBody marks bodies that are not a single valid JSON object.
var errMalformedBody = errors.New("malformed request body")

// collections maps URL collection names to entity kinds.
var collections = map[string]core.Kind{
	"rooms":       core.KindRoom,
	"tenants":     core.KindTenant,
	"payments":    core.KindPayment,
	"expenses":    core.KindExpense,
	"maintenance": core.KindMaintenance,
}

// reservedParams are list query parameters that are not field filters.
var reservedParams = map[string]bool{"q": true, "months": true, "limit": true}

// ParseCollection resolves the {collection} path value.
func ParseCollection(r *http.Request) (core.Kind, error) {
	name := strings.ToLower(r.PathValue("collection"))
	kind, ok := collections[name]
	if !ok {
		return "", core.NotFound("collection", name)
	}
	return kind, nil
}

// DecodeJSON reads one JSON object from r into dst. Unknown fields and
// trailing data are rejected. A well-formed body with an unparseable amount
// or date is a validation failure, not a malformed body.
func DecodeJSON(r *http.Request, kind core.Kind, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidAmount):
			return core.Invalid(kind, "amount", "must be a positive decimal number")
		case errors.Is(err, core.ErrInvalidDate):
			return core.Invalid(kind, "date", "must be formatted as YYYY-MM-DD")
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errMalformedBody)
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", errMalformedBody)
	}
	return nil
}

// ParseFilter builds a query filter from ?q= and the remaining query
// parameters, each read as a field filter.
func ParseFilter(values url.Values) query.Filter {
	f := query.Filter{Term: sanitizeInput(values.Get("q"))}
	for name, vals := range values {
		if reservedParams[name] || len(vals) == 0 {
			continue
		}
		if f.Fields == nil {
			f.Fields = make(map[string]string)
		}
		f.Fields[name] = sanitizeInput(vals[0])
	}
	return f
}

// ParseMonths reads ?months=. Absent means 0, the console default.
func ParseMonths(values url.Values) (int, error) {
	return parseIntParam(values, "months")
}

// ParseLimit reads ?limit=. Absent means 0, no limit.
func ParseLimit(values url.Values) (int, error) {
	return parseIntParam(values, "limit")
}

func parseIntParam(values url.Values, name string) (int, error) {
	v := strings.TrimSpace(values.Get(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, core.Invalid("", name, "must be a non-negative integer")
	}
	return n, nil
}
