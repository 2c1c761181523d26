package sheets

import (
	"context"
	"time"

	"pgdesk/internal/core"
)

// Report is the trailing financial report as exported to a sink.
type Report struct {
	AsOf          core.Date
	Currency      string
	Points        []core.FinancialPoint
	TotalRevenue  core.Money
	TotalExpenses core.Money
	NetProfit     core.Money
	ProfitMargin  float64
}

// ActivityRow is one mirrored activity line.
type ActivityRow struct {
	At        time.Time
	Kind      core.Kind
	EntityID  string
	Operation string
	Summary   string
}

// Ports for outbound adapters.
type (
	ReportWriter interface {
		// WriteReport replaces the exported report and returns a reference
		// to the written range.
		WriteReport(ctx context.Context, r Report) (ref string, err error)
	}

	ActivityWriter interface {
		AppendActivity(ctx context.Context, row ActivityRow) (ref string, err error)
	}

	// Sink is what an export backend provides.
	Sink interface {
		ReportWriter
		ActivityWriter
	}
)

// ReportHeader is the header row written above report rows.
var ReportHeader = []string{"Month", "Label", "Revenue", "Expenses", "Profit"}

// ActivityHeader is the header row of the activity sheet.
var ActivityHeader = []string{"Timestamp", "Kind", "Entity", "Operation", "Summary"}
