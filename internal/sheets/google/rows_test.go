package google

import (
	"testing"
	"time"

	"pgdesk/internal/core"
	ports "pgdesk/internal/sheets"
)

func TestReportRows_Layout(t *testing.T) {
	rows := reportRows(ports.Report{
		AsOf:     core.NewDate(2024, 1, 20),
		Currency: "₹",
		Points: []core.FinancialPoint{
			{Month: "2024-01", Label: "Jan 2024", Revenue: core.Money{Minor: 1550050}, Expenses: core.Money{Minor: 50000}, Profit: core.Money{Minor: 1500050}},
		},
		ProfitMargin: 96.77,
	})

	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if rows[0][0] != "Month" || rows[0][4] != "Profit" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != 15500.5 {
		t.Errorf("revenue in major units: got %v", rows[1][2])
	}
	if len(rows[2]) != 0 {
		t.Errorf("expected spacer row, got %v", rows[2])
	}
	if rows[4][2] != 96.8 {
		t.Errorf("margin rounded to one decimal: got %v", rows[4][2])
	}
	if rows[5][1] != "2024-01-20" {
		t.Errorf("as-of date: got %v", rows[5][1])
	}
}

func TestActivityRow_UsesUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	row := activityRow(ports.ActivityRow{
		At:        time.Date(2024, 1, 20, 16, 0, 0, 0, ist),
		Kind:      core.KindMaintenance,
		EntityID:  "m1",
		Operation: "status_changed",
		Summary:   "AC repair marked completed",
	})
	if row[0] != "2024-01-20T10:30:00Z" {
		t.Errorf("timestamp = %v", row[0])
	}
	if row[1] != "maintenance" || row[4] != "AC repair marked completed" {
		t.Errorf("unexpected row: %v", row)
	}
}
