package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgdesk/internal/core"
	"pgdesk/internal/middleware/ratelimit"
	"pgdesk/internal/services"
	"pgdesk/internal/store"
)

func fixedClock() time.Time { return time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC) }

func newTestServer(t *testing.T, opts ...Option) (*Server, *services.Console) {
	t.Helper()
	console := services.NewConsole(store.New(), services.WithClock(fixedClock))
	s := NewServer(":0", console, opts...)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, console
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const roomBody = `{"number":"101","type":"Single","monthlyRent":15000,"deposit":30000,
	"status":"vacant","amenities":["wifi","ac","wifi"],"floor":1,"description":"Corner room"}`

func TestCreateAndGetRoom(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/rooms", roomBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	room := decode[core.Room](t, rec)
	require.NotEmpty(t, room.ID)
	assert.Equal(t, "/api/rooms/"+room.ID, rec.Header().Get("Location"))
	assert.Equal(t, []string{"wifi", "ac"}, room.Amenities)
	assert.Equal(t, int64(1500000), room.MonthlyRent.Minor)

	rec = do(t, s, http.MethodGet, "/api/rooms/"+room.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, room, decode[core.Room](t, rec))
}

func TestListWithFilters(t *testing.T) {
	s, _ := newTestServer(t)
	for _, b := range []string{
		`{"number":"101","monthlyRent":15000,"deposit":0,"status":"vacant","floor":1}`,
		`{"number":"102","monthlyRent":15000,"deposit":0,"status":"occupied","occupantName":"John Doe","floor":1}`,
		`{"number":"201","monthlyRent":18000,"deposit":0,"status":"occupied","occupantName":"Jane Roe","floor":2}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/rooms", b).Code)
	}

	tests := []struct {
		name    string
		target  string
		numbers []string
	}{
		{"all", "/api/rooms", []string{"101", "102", "201"}},
		{"status", "/api/rooms?status=occupied", []string{"102", "201"}},
		{"all sentinel", "/api/rooms?status=ALL", []string{"101", "102", "201"}},
		{"search", "/api/rooms?q=john", []string{"102"}},
		{"search and filter", "/api/rooms?q=20&status=occupied", []string{"201"}},
		{"no match", "/api/rooms?floor=9", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			list := decode[ListResponse[core.Room]](t, rec)
			numbers := []string{}
			for _, r := range list.Items {
				numbers = append(numbers, r.Number)
			}
			assert.Equal(t, tt.numbers, numbers)
			assert.Equal(t, len(tt.numbers), list.Count)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"unknown collection", http.MethodGet, "/api/widgets", "", http.StatusNotFound, codeNotFound},
		{"missing record", http.MethodGet, "/api/tenants/nope", "", http.StatusNotFound, codeNotFound},
		{"unknown filter field", http.MethodGet, "/api/rooms?colour=red", "", http.StatusUnprocessableEntity, codeValidation},
		{"invalid room", http.MethodPost, "/api/rooms", `{"number":"","monthlyRent":100,"status":"vacant"}`, http.StatusUnprocessableEntity, codeValidation},
		{"bad amount", http.MethodPost, "/api/expenses", `{"title":"Soap","amount":"abc"}`, http.StatusUnprocessableEntity, codeValidation},
		{"malformed json", http.MethodPost, "/api/rooms", `{"number":`, http.StatusBadRequest, codeBadRequest},
		{"unknown field", http.MethodPost, "/api/rooms", `{"numbr":"101"}`, http.StatusBadRequest, codeBadRequest},
		{"trailing data", http.MethodPost, "/api/rooms", roomBody + `{}`, http.StatusBadRequest, codeBadRequest},
		{"empty body", http.MethodPatch, "/api/rooms/x", "", http.StatusBadRequest, codeBadRequest},
		{"bad months", http.MethodGet, "/api/reports/financial?months=abc", "", http.StatusUnprocessableEntity, codeValidation},
		{"months out of range", http.MethodGet, "/api/reports/financial?months=99", "", http.StatusUnprocessableEntity, codeValidation},
		{"unsupported aggregation", http.MethodGet, "/api/aggregate/rooms/monthOverMonth", "", http.StatusUnprocessableEntity, codeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.target, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decode[ErrorBody](t, rec)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s, _ := newTestServer(t)
	room := decode[core.Room](t, do(t, s, http.MethodPost, "/api/rooms", roomBody))

	rec := do(t, s, http.MethodPatch, "/api/rooms/"+room.ID, `{"status":"occupied","occupantName":"John Doe"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[core.Room](t, rec)
	assert.Equal(t, core.RoomOccupied, updated.Status)
	assert.Equal(t, "John Doe", updated.OccupantName)
	assert.Equal(t, room.MonthlyRent, updated.MonthlyRent, "absent fields are kept")

	rec = do(t, s, http.MethodPatch, "/api/rooms/"+room.ID, `{"monthlyRent":0}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	current := decode[core.Room](t, do(t, s, http.MethodGet, "/api/rooms/"+room.ID, ""))
	assert.Equal(t, updated, current, "a rejected update changes nothing")

	rec = do(t, s, http.MethodDelete, "/api/rooms/"+room.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, room.ID, decode[core.Room](t, rec).ID)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/rooms/"+room.ID, "").Code)
}

func TestMarkPaymentPaid(t *testing.T) {
	s, _ := newTestServer(t)
	p := decode[core.Payment](t, do(t, s, http.MethodPost, "/api/payments",
		`{"tenantName":"John Doe","roomNumber":"101","amount":15000,"type":"rent","status":"pending","dueDate":"2024-01-05"}`))

	rec := do(t, s, http.MethodPost, "/api/payments/"+p.ID+"/paid", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	paid := decode[core.Payment](t, rec)
	assert.Equal(t, core.PaymentPaid, paid.Status)
	assert.Equal(t, core.NewDate(2024, 1, 20), paid.PaidDate)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPost, "/api/payments/missing/paid", "").Code)
}

func TestSetMaintenanceStatus(t *testing.T) {
	s, _ := newTestServer(t)
	m := decode[core.MaintenanceRequest](t, do(t, s, http.MethodPost, "/api/maintenance",
		`{"tenantName":"John Doe","roomNumber":"101","title":"Leaking tap","description":"Bathroom tap drips",
		  "category":"plumbing","priority":"high","status":"pending","createdDate":"2024-01-18"}`))

	rec := do(t, s, http.MethodPost, "/api/maintenance/"+m.ID+"/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	done := decode[core.MaintenanceRequest](t, rec)
	assert.Equal(t, core.RequestCompleted, done.Status)
	assert.Equal(t, core.NewDate(2024, 1, 20), done.CompletedDate)

	rec = do(t, s, http.MethodPost, "/api/maintenance/"+m.ID+"/status", `{"status":"done"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSweepOverdue(t *testing.T) {
	s, _ := newTestServer(t)
	for _, due := range []string{"2024-01-05", "2024-01-25"} {
		body := `{"tenantName":"John Doe","roomNumber":"101","amount":15000,"type":"rent","status":"pending","dueDate":"` + due + `"}`
		require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/payments", body).Code)
	}

	rec := do(t, s, http.MethodPost, "/api/payments/sweep", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decode[SweepResponse](t, rec).Updated)

	list := decode[ListResponse[core.Payment]](t, do(t, s, http.MethodGet, "/api/payments?status=overdue", ""))
	assert.Equal(t, 1, list.Count)
}

func TestAggregateIsCachedPerRevision(t *testing.T) {
	s, _ := newTestServer(t)
	post := func(amount string) {
		body := `{"title":"Cleaning","category":"supplies","amount":` + amount + `,"date":"2024-01-10","paymentMethod":"Cash"}`
		require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/expenses", body).Code)
	}
	total := func() string {
		rec := do(t, s, http.MethodGet, "/api/aggregate/expenses/totalSum", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res struct {
			Value json.Number `json:"value"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		return res.Value.String()
	}

	post("500")
	assert.Equal(t, "500", total())
	assert.Equal(t, "500", total())
	assert.Equal(t, uint64(1), s.ViewCache().Stats().Hits)

	post("250.50")
	assert.Equal(t, "750.50", total(), "a mutation invalidates cached views")
}

func TestDashboardAndReport(t *testing.T) {
	s, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/rooms", roomBody).Code)

	rec := do(t, s, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"asOf":"2024-01-20"`)

	rec = do(t, s, http.MethodGet, "/api/reports/financial?months=3", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report struct {
		Months int               `json:"months"`
		Series []json.RawMessage `json:"series"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Months)
	assert.Len(t, report.Series, 3)
}

func TestActivityAndMeta(t *testing.T) {
	s, _ := newTestServer(t, WithCurrency("₹"))
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/rooms", roomBody).Code)

	rec := do(t, s, http.MethodGet, "/api/activity?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var feed struct {
		Count int                  `json:"count"`
		Items []services.Activity `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Equal(t, 1, feed.Count)
	assert.Equal(t, core.KindRoom, feed.Items[0].Kind)

	rec = do(t, s, http.MethodGet, "/api/meta", "")
	require.Equal(t, http.StatusOK, rec.Code)
	meta := decode[MetaResponse](t, rec)
	assert.Equal(t, "₹", meta.Currency)
	assert.Contains(t, meta.Aggregations, services.AggTrailingSeries)
	assert.Contains(t, meta.Filters[core.KindRoom], "status")
}

func TestHealthReadyMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", "").Code)

	rec := do(t, s, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)

	rec = do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `entity_records{kind="room"} 0`)
}

func TestMiddlewareChain(t *testing.T) {
	s, _ := newTestServer(t, WithRateLimit(ratelimit.Config{RequestsPerMinute: 1}))

	rec := do(t, s, http.MethodGet, "/api/rooms", "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/rooms", roomBody).Code)
	rec = do(t, s, http.MethodPost, "/api/rooms", roomBody)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, codeRateLimited, decode[ErrorBody](t, rec).Error.Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/rooms", "").Code, "reads are not limited")
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodPut, "/api/rooms/abc", "{}").Code)
}
