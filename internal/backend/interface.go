package backend

import (
	"context"

	"pgdesk/internal/amqp"
	"pgdesk/internal/services"
	"pgdesk/internal/sheets"
	"pgdesk/internal/store"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult carries everything a process needs to serve the console.
type BackendResult struct {
	Store   *store.Store
	Console *services.Console
	Sink    sheets.Sink
	// Events is nil when AMQP is not configured or unreachable at startup.
	Events  *amqp.Client
	Cleanup CleanupFunc
}

// Close runs the cleanup function if any.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend builds the store, console, export sink and optional
	// event publisher.
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)

	// CreateSink builds only the export sink.
	CreateSink(ctx context.Context, config Config) (sheets.Sink, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Export sink type
	Type BackendType

	// Store
	SeedFile       string
	TrailingMonths int

	// Entity events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleReportSheet   string
	GoogleActivitySheet string
	CredentialsJSON     []byte
}

// BackendType represents the type of export sink
type BackendType string

const (
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
