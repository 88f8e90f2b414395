package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/analytics"
	"salespulse/internal/annotations"
	"salespulse/internal/report"
	"salespulse/internal/store"
	"salespulse/pkg/contracts/domain"
)

func sale(date time.Time, product string, revenue float64) domain.Record {
	return domain.Record{
		Date:     date,
		Segments: map[string]string{"product": product, "region": "Europe"},
		Revenue:  revenue,
		Cost:     revenue * 0.4,
		Profit:   revenue * 0.6,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, records []domain.Record) *httptest.Server {
	t.Helper()
	st := store.New(records)
	engine := analytics.NewEngine(nil)
	service := report.NewService(nil, st, engine)
	handler := NewReportHandler(service, st, engine, annotations.NewLog(), nil)
	server := httptest.NewServer(NewRouter(handler, 1000, 1000))
	t.Cleanup(server.Close)
	return server
}

func fullHistory() []domain.Record {
	return []domain.Record{
		sale(day(2025, time.May, 5), "Enterprise", 1000),
		sale(day(2025, time.May, 12), "Starter", 100),
		sale(day(2025, time.June, 2), "Enterprise", 1200),
		sale(day(2025, time.June, 9), "Enterprise", 1500),
		sale(day(2025, time.June, 9), "Starter", 90),
	}
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, fullHistory())

	var body map[string]string
	resp := getJSON(t, server.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestGetOverview(t *testing.T) {
	server := newTestServer(t, fullHistory())

	var body struct {
		TotalRevenue float64 `json:"total_revenue"`
		RecordCount  int     `json:"record_count"`
	}
	resp := getJSON(t, server.URL+"/api/overview", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 3890, body.TotalRevenue, 1e-9)
	assert.Equal(t, 5, body.RecordCount)
}

func TestGetPerformance(t *testing.T) {
	server := newTestServer(t, fullHistory())

	var body struct {
		Comparison analytics.ComparisonResult `json:"comparison"`
		Insight    analytics.Insight          `json:"insight"`
	}
	resp := getJSON(t, server.URL+"/api/performance?dimension=product&granularity=weekly", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2025-W24", body.Comparison.CurrentBucket)
	assert.Equal(t, "2025-W23", body.Comparison.PreviousBucket)
	require.NotEmpty(t, body.Comparison.Rows)
	assert.Equal(t, "Enterprise", body.Comparison.Rows[0].Segment)
	assert.InDelta(t, 25, body.Comparison.Rows[0].ChangePercent, 1e-9)
}

func TestGetPerformanceInsufficientData(t *testing.T) {
	server := newTestServer(t, []domain.Record{
		sale(day(2025, time.June, 9), "Enterprise", 100),
	})

	var body errorResponse
	resp := getJSON(t, server.URL+"/api/performance", &body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_DATA", body.Code)
}

func TestGetPerformanceRejectsUnknownDimension(t *testing.T) {
	server := newTestServer(t, fullHistory())

	var body errorResponse
	resp := getJSON(t, server.URL+"/api/performance?dimension=salesperson", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CONFIG", body.Code)
}

func TestGetSegmentPerformance(t *testing.T) {
	server := newTestServer(t, fullHistory())

	var body report.SegmentPerformance
	resp := getJSON(t, server.URL+"/api/segments?dimension=product", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2025-W24", body.CurrentWeek)
	assert.Equal(t, "2025-06", body.CurrentMonth)
	assert.NotEmpty(t, body.Rows)
}

func TestExportCSV(t *testing.T) {
	server := newTestServer(t, fullHistory())

	resp, err := http.Get(server.URL + "/api/export?dataset=performance&format=csv&dimension=product&granularity=weekly")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "product_performance_")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	assert.Equal(t, `Segment,Current,Previous,Change (%)`, strings.TrimRight(lines[0], "\r"))
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Enterprise,"))
}

func TestExportRecordsXLSX(t *testing.T) {
	server := newTestServer(t, fullHistory())

	resp, err := http.Get(server.URL + "/api/export?dataset=records&format=xlsx")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
}

func TestCommentLifecycle(t *testing.T) {
	server := newTestServer(t, fullHistory())

	resp, err := http.Post(server.URL+"/api/comments", "application/json",
		strings.NewReader(`{"text":"numbers look great"}`))
	require.NoError(t, err)
	var created annotations.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ID)

	var listing struct {
		Comments []annotations.Comment `json:"comments"`
	}
	getJSON(t, server.URL+"/api/comments", &listing)
	require.Len(t, listing.Comments, 1)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/comments/"+created.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
}

func TestAddCommentValidation(t *testing.T) {
	server := newTestServer(t, fullHistory())

	resp, err := http.Post(server.URL+"/api/comments", "application/json",
		strings.NewReader(`{"text":""}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendEmailSimulated(t *testing.T) {
	server := newTestServer(t, fullHistory())

	resp, err := http.Post(server.URL+"/api/emails", "application/json",
		strings.NewReader(`{"recipient":"dimitrios@company.com","subject":"Sales Report"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var body struct {
		Simulated bool `json:"simulated"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Simulated)
}

func TestSendEmailRejectsBadRecipient(t *testing.T) {
	server := newTestServer(t, fullHistory())

	resp, err := http.Post(server.URL+"/api/emails", "application/json",
		strings.NewReader(`{"recipient":"not-an-address"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
