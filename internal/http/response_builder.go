// Package http provides HTTP server and handler implementations.
//
// This file implements a small builder for JSON responses and the mapping
// from domain errors to status codes.

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"pgdesk/internal/core"
	"pgdesk/internal/log"
)

// Error codes carried in error bodies.
const (
	codeValidation  = "validation_error"
	codeNotFound    = "not_found"
	codeBadRequest  = "bad_request"
	codeInternal    = "internal_error"
	codeRateLimited = "rate_limited"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	data       any
	headers    map[string]string
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Data sets the value encoded as the body.
func (b *JSONResponseBuilder) Data(v any) *JSONResponseBuilder {
	b.data = v
	return b
}

// Write sends the built response. 204 responses carry no body.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if b.statusCode == http.StatusNoContent {
		w.WriteHeader(b.statusCode)
		return
	}

	body, err := json.Marshal(b.data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"failed to encode response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(b.statusCode)
	_, _ = w.Write(append(body, '\n'))
}

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
	ID      string `json:"id,omitempty"`
}

// ErrorResponse creates a standard error response.
func ErrorResponse(statusCode int, code, message string) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(statusCode).
		Data(ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, codeBadRequest, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, codeInternal, "internal server error")
}

// ErrorFor maps err to a response: validation failures are 422, missing
// records 404, and anything else 500 without leaking the cause.
func ErrorFor(err error) *JSONResponseBuilder {
	var verr *core.ValidationError
	var nerr *core.NotFoundError
	switch {
	case errors.As(err, &verr):
		return NewJSONResponse().
			Status(http.StatusUnprocessableEntity).
			Data(ErrorBody{Error: ErrorDetail{
				Code:    codeValidation,
				Message: verr.Error(),
				Kind:    string(verr.Kind),
				Field:   verr.Field,
			}})
	case errors.As(err, &nerr):
		return NewJSONResponse().
			Status(http.StatusNotFound).
			Data(ErrorBody{Error: ErrorDetail{
				Code:    codeNotFound,
				Message: nerr.Error(),
				Kind:    string(nerr.Kind),
				ID:      nerr.ID,
			}})
	case errors.Is(err, errMalformedBody):
		return BadRequestError(err.Error())
	}
	return InternalServerError()
}

// writeError logs and writes err. Only unexpected failures are logged at
// error level; the console already logged rejected commands.
func writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if !core.IsValidation(err) && !core.IsNotFound(err) && !errors.Is(err, errMalformedBody) {
		log.NewStructuredLogger(log.FromContext(r.Context())).
			LogError(r.Context(), "Request failed", err, log.ComponentHTTP, operation, nil)
	}
	ErrorFor(err).Write(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	NewJSONResponse().Status(status).Data(v).Write(w)
}
