package google

import (
	"math"
	"time"

	ports "pgdesk/internal/sheets"
)

// reportRows lays out a report as a values matrix: header, one row per
// month, a blank spacer, then totals and margin.
func reportRows(r ports.Report) [][]any {
	rows := make([][]any, 0, len(r.Points)+5)
	rows = append(rows, stringsToRow(ports.ReportHeader))
	for _, p := range r.Points {
		rows = append(rows, []any{p.Month, p.Label, p.Revenue.Major(), p.Expenses.Major(), p.Profit.Major()})
	}
	rows = append(rows,
		[]any{},
		[]any{"Total", "", r.TotalRevenue.Major(), r.TotalExpenses.Major(), r.NetProfit.Major()},
		[]any{"Margin %", "", round1(r.ProfitMargin)},
		[]any{"As of", r.AsOf.String(), r.Currency},
	)
	return rows
}

func activityRow(row ports.ActivityRow) []any {
	return []any{
		row.At.UTC().Format(time.RFC3339),
		string(row.Kind),
		row.EntityID,
		row.Operation,
		row.Summary,
	}
}

func stringsToRow(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
