package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"pgdesk/internal/core"
	ports "pgdesk/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type writeCall struct {
	Range  string
	Values [][]any
}

// fakeSheets emulates the three Values endpoints the client uses.
type fakeSheets struct {
	mu         sync.Mutex
	gets       int
	clears     int
	rows       map[string]int
	writes     []writeCall
	failUpdate bool
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := strings.Index(r.URL.Path, "/values/")
	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	rng := r.URL.Path[idx+len("/values/"):]
	sheet := rng
	if i := strings.Index(rng, "!"); i >= 0 {
		sheet = rng[:i]
	}
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(rng, ":clear"):
		f.clears++
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodGet:
		f.gets++
		values := make([][]string, f.rows[sheet])
		for i := range values {
			values[i] = []string{"x"}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"range": rng, "values": values})
	case r.Method == http.MethodPut:
		if f.failUpdate {
			http.Error(w, `{"error":{"code":400,"message":"boom"}}`, http.StatusBadRequest)
			return
		}
		var vr struct {
			Values [][]any `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&vr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.writes = append(f.writes, writeCall{Range: rng, Values: vr.Values})
		f.rows[sheet] += len(vr.Values)
		_, _ = w.Write([]byte(`{}`))
	default:
		http.Error(w, "unexpected request", http.StatusMethodNotAllowed)
	}
}

func newTestClient(t *testing.T) (*Client, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{rows: map[string]int{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	c, err := NewWithService(svc, Options{SpreadsheetID: "sheet-1", ReportSheet: "Reports", ActivitySheet: "Activity"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, fake
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), Options{SpreadsheetID: "x"})
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewWithService_MissingSpreadsheetID(t *testing.T) {
	_, err := NewWithService(nil, Options{})
	if err == nil || err.Error() != "missing spreadsheet ID" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewWithService_DefaultSheetNames(t *testing.T) {
	c, err := NewWithService(nil, Options{SpreadsheetID: "id"})
	if err != nil {
		t.Fatal(err)
	}
	if c.reportSheet != "Reports" || c.activityBase != "Activity" {
		t.Errorf("unexpected defaults: %q %q", c.reportSheet, c.activityBase)
	}
}

func TestClient_NilService(t *testing.T) {
	c := &Client{spreadsheetID: "test"}
	if _, err := c.WriteReport(context.Background(), ports.Report{}); err == nil {
		t.Error("expected error with nil service")
	}
	if _, err := c.AppendActivity(context.Background(), ports.ActivityRow{}); err == nil {
		t.Error("expected error with nil service")
	}
}

func TestWriteReport(t *testing.T) {
	c, fake := newTestClient(t)

	ref, err := c.WriteReport(context.Background(), ports.Report{
		AsOf:     core.NewDate(2024, 1, 20),
		Currency: "₹",
		Points: []core.FinancialPoint{
			{Month: "2023-12", Label: "Dec 2023", Revenue: core.Money{Minor: 1000000}, Expenses: core.Money{Minor: 250000}, Profit: core.Money{Minor: 750000}},
			{Month: "2024-01", Label: "Jan 2024", Revenue: core.Money{Minor: 1500000}},
		},
		TotalRevenue: core.Money{Minor: 2500000},
		NetProfit:    core.Money{Minor: 2250000},
		ProfitMargin: 90,
	})
	if err != nil {
		t.Fatalf("write report: %v", err)
	}
	// header + 2 months + spacer + total + margin + as-of
	if ref != "Reports!A1:E7" {
		t.Errorf("ref = %q", ref)
	}
	if fake.clears != 1 {
		t.Errorf("expected one clear, got %d", fake.clears)
	}
	if len(fake.writes) != 1 || len(fake.writes[0].Values) != 7 {
		t.Fatalf("unexpected writes: %+v", fake.writes)
	}
	row := fake.writes[0].Values[1]
	if row[0] != "2023-12" || row[2] != 10000.0 {
		t.Errorf("unexpected first month row: %v", row)
	}
}

func TestAppendActivity_WritesHeaderOnEmptySheet(t *testing.T) {
	c, fake := newTestClient(t)
	at := time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)

	ref, err := c.AppendActivity(context.Background(), ports.ActivityRow{
		At: at, Kind: core.KindPayment, EntityID: "p1", Operation: "paid", Summary: "Payment received",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "2024 Activity!A2:E2" {
		t.Errorf("ref = %q", ref)
	}
	if len(fake.writes) != 2 {
		t.Fatalf("expected header + row, got %d writes", len(fake.writes))
	}
	if fake.writes[0].Values[0][0] != "Timestamp" {
		t.Errorf("expected header first, got %v", fake.writes[0].Values)
	}
	if fake.writes[1].Values[0][0] != "2024-01-20T10:30:00Z" {
		t.Errorf("unexpected row: %v", fake.writes[1].Values)
	}
}

func TestAppendActivity_UsesRowCache(t *testing.T) {
	c, fake := newTestClient(t)
	fake.rows["2024 Activity"] = 5
	at := time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)

	for i, want := range []string{"2024 Activity!A6:E6", "2024 Activity!A7:E7", "2024 Activity!A8:E8"} {
		ref, err := c.AppendActivity(context.Background(), ports.ActivityRow{At: at, Kind: core.KindRoom, EntityID: "r1"})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if ref != want {
			t.Errorf("append %d ref = %q, want %q", i, ref, want)
		}
	}
	if fake.gets != 1 {
		t.Errorf("expected a single dimension read, got %d", fake.gets)
	}

	c.InvalidateRowCache()
	if _, err := c.AppendActivity(context.Background(), ports.ActivityRow{At: at, Kind: core.KindRoom, EntityID: "r1"}); err != nil {
		t.Fatal(err)
	}
	if fake.gets != 2 {
		t.Errorf("expected re-read after invalidation, got %d", fake.gets)
	}
}

func TestAppendActivity_RowCacheExpires(t *testing.T) {
	c, fake := newTestClient(t)
	now := time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.cacheValidDuration = time.Minute

	row := ports.ActivityRow{At: now, Kind: core.KindExpense, EntityID: "e1"}
	if _, err := c.AppendActivity(context.Background(), row); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := c.AppendActivity(context.Background(), row); err != nil {
		t.Fatal(err)
	}
	if fake.gets != 2 {
		t.Errorf("expected cache expiry to force a read, got %d reads", fake.gets)
	}
}

func TestAppendActivity_FailureInvalidatesCache(t *testing.T) {
	c, fake := newTestClient(t)
	fake.rows["2024 Activity"] = 3
	at := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	if _, err := c.AppendActivity(context.Background(), ports.ActivityRow{At: at}); err != nil {
		t.Fatal(err)
	}
	fake.failUpdate = true
	if _, err := c.AppendActivity(context.Background(), ports.ActivityRow{At: at}); err == nil {
		t.Fatal("expected failure")
	}
	c.mu.Lock()
	cached := c.cachedSheet
	c.mu.Unlock()
	if cached != "" {
		t.Errorf("cache should be invalidated after failure, got sheet %q", cached)
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		baseName string
		year     int
		expected string
	}{
		{"Activity", 2025, "2025 Activity"},
		{"Reports", 2024, "2024 Reports"},
		{"", 2023, ""},
		{"Test Sheet", 2022, "2022 Test Sheet"},
		{"2025 Already Prefixed", 2024, "2025 Already Prefixed"},
	}

	for _, tt := range tests {
		got := yearPrefixedName(tt.baseName, tt.year)
		if got != tt.expected {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q",
				tt.baseName, tt.year, got, tt.expected)
		}
	}
}
