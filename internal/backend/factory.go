package backend

import (
	"context"
	"fmt"
	"time"

	"pgdesk/internal/amqp"
	"pgdesk/internal/core"
	"pgdesk/internal/log"
	"pgdesk/internal/services"
	"pgdesk/internal/sheets"
	gsheet "pgdesk/internal/sheets/google"
	"pgdesk/internal/sheets/memory"
	"pgdesk/internal/store"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
	clock  services.Clock
}

// NewFactory creates a new backend factory. A nil clock means time.Now.
func NewFactory(logger *log.Logger, clock services.Clock) Factory {
	if logger == nil {
		logger = log.Nop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
		clock:  clock,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	st, err := store.NewFromFile(config.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	f.logger.Info("Initialized entity store",
		"seed_file", config.SeedFile,
		"rooms", st.Count(core.KindRoom),
		"tenants", st.Count(core.KindTenant),
		"payments", st.Count(core.KindPayment))

	sink, err := f.CreateSink(ctx, config)
	if err != nil {
		return nil, err
	}

	opts := []services.Option{
		services.WithClock(f.clock),
		services.WithLogger(f.logger),
		services.WithTrailingMonths(config.TrailingMonths),
	}

	// Initialize AMQP client (optional)
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events", log.FieldError, err.Error())
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			opts = append(opts, services.WithPublisher(amqpClient))
		}
	}

	console := services.NewConsole(st, opts...)

	result := &BackendResult{
		Store:   st,
		Console: console,
		Sink:    sink,
		Events:  amqpClient,
	}
	if amqpClient != nil {
		result.Cleanup = amqpClient.Close
	}

	f.logger.Info("Initialized backend",
		"export_backend", config.Type.String(),
		"events_enabled", amqpClient != nil)
	return result, nil
}

// CreateSink implements Factory.CreateSink
func (f *DefaultFactory) CreateSink(ctx context.Context, config Config) (sheets.Sink, error) {
	switch config.Type {
	case SheetsBackend:
		return f.createSheetsSink(ctx, config)
	case MemoryBackend:
		f.logger.Info("Initialized memory export sink")
		return memory.New(f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSheetsSink(ctx context.Context, config Config) (sheets.Sink, error) {
	cli, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		ReportSheet:     config.GoogleReportSheet,
		ActivitySheet:   config.GoogleActivitySheet,
		CredentialsJSON: config.CredentialsJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets export sink",
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"report_sheet", config.GoogleReportSheet)
	return cli, nil
}
