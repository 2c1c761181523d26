package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	ports "pgdesk/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const defaultRowCacheTTL = 5 * time.Minute

// Options configures a Sheets export client.
type Options struct {
	SpreadsheetID string
	// ReportSheet is overwritten on every export.
	ReportSheet string
	// ActivitySheet is a base name; rows go to "<year> <base>".
	ActivitySheet   string
	CredentialsJSON []byte
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	reportSheet   string
	activityBase  string
	now           func() time.Time

	// mu serialises appends and guards the row cache, which remembers how
	// many rows the current activity sheet holds so appends skip a read.
	mu                 sync.Mutex
	cachedSheet        string
	cachedRowCount     int
	cacheExpiresAt     time.Time
	cacheValidDuration time.Duration
}

// Ensure interface conformance
var _ ports.Sink = (*Client)(nil)

// New creates a Sheets client authenticated with a service account key.
func New(ctx context.Context, o Options) (*Client, error) {
	if len(o.CredentialsJSON) == 0 {
		return nil, errors.New("missing service account credentials")
	}
	svc, err := newSheetsService(ctx, o.CredentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, o)
}

// NewWithService wraps an already configured Sheets service.
func NewWithService(svc *gsheet.Service, o Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(o.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	report := strings.TrimSpace(o.ReportSheet)
	if report == "" {
		report = "Reports"
	}
	activity := strings.TrimSpace(o.ActivitySheet)
	if activity == "" {
		activity = "Activity"
	}
	return &Client{
		svc:                svc,
		spreadsheetID:      spreadsheetID,
		reportSheet:        report,
		activityBase:       activity,
		now:                time.Now,
		cacheValidDuration: defaultRowCacheTTL,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, credentialsJSON []byte) (*gsheet.Service, error) {
	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// WriteReport clears the report sheet and writes the report from A1.
func (c *Client) WriteReport(ctx context.Context, r ports.Report) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	rows := reportRows(r)

	clearRng := fmt.Sprintf("%s!A:E", c.reportSheet)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", clearRng, err)
	}

	rng := fmt.Sprintf("%s!A1:E%d", c.reportSheet, len(rows))
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Report written to Google Sheets",
		"range", rng,
		"months", len(r.Points))
	return rng, nil
}

// AppendActivity writes row below the last used row of the activity sheet
// for the row's year, adding the header first when the sheet is empty.
func (c *Client) AppendActivity(ctx context.Context, row ports.ActivityRow) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	sheet := yearPrefixedName(c.activityBase, row.At.Year())

	c.mu.Lock()
	defer c.mu.Unlock()

	count, err := c.rowCount(ctx, sheet)
	if err != nil {
		return "", err
	}

	if count == 0 {
		hdr := fmt.Sprintf("%s!A1:E1", sheet)
		if err := c.update(ctx, hdr, [][]any{stringsToRow(ports.ActivityHeader)}); err != nil {
			c.invalidateLocked()
			return "", fmt.Errorf("failed to write header to %s: %w", sheet, err)
		}
		count = 1
	}

	next := count + 1
	rng := fmt.Sprintf("%s!A%d:E%d", sheet, next, next)
	if err := c.update(ctx, rng, [][]any{activityRow(row)}); err != nil {
		c.invalidateLocked()
		return "", fmt.Errorf("failed to append to %s: %w", sheet, err)
	}

	c.cachedSheet = sheet
	c.cachedRowCount = next
	c.cacheExpiresAt = c.now().Add(c.cacheValidDuration)
	return rng, nil
}

// InvalidateRowCache forces the next append to re-read the sheet size.
func (c *Client) InvalidateRowCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
}

func (c *Client) invalidateLocked() {
	c.cachedSheet = ""
	c.cachedRowCount = 0
	c.cacheExpiresAt = time.Time{}
}

// rowCount returns the number of used rows in sheet. Callers hold c.mu.
func (c *Client) rowCount(ctx context.Context, sheet string) (int, error) {
	if c.cachedSheet == sheet && c.now().Before(c.cacheExpiresAt) {
		return c.cachedRowCount, nil
	}
	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to get sheet dimensions for %s: %w", sheet, err)
	}
	return len(resp.Values), nil
}

func (c *Client) update(ctx context.Context, rng string, values [][]any) error {
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	return err
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
