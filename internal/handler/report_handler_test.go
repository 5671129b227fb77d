package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"trendscope/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeReportStore struct {
	reports []model.Report
	total   int
	err     error
}

func (f *fakeReportStore) GetLatestReport() (*model.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.reports) == 0 {
		return nil, nil
	}
	return &f.reports[0], nil
}

func (f *fakeReportStore) GetReports(limit, offset int) ([]model.Report, error) {
	return f.reports, f.err
}

func (f *fakeReportStore) GetReportTotal() (int, error) {
	return f.total, f.err
}

func (f *fakeReportStore) GetAllReports() ([]model.Report, error) {
	return f.reports, f.err
}

func newTestRouter(store ReportStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReportHandler(store)
	r.GET("/reports/latest", h.GetLatestReport)
	r.GET("/reports", h.GetReports)
	r.GET("/stats", h.GetStats)
	r.GET("/health", h.GetHealth)
	return r
}

func sampleReports() []model.Report {
	stars := 2400
	today := 120
	return []model.Report{
		{
			Date:             "2026-08-29",
			GenerationTime:   "2026-08-29 06:00:00",
			Summary:          "Fresh report",
			Trends:           []string{"Agents"},
			ProjectSummaries: []string{"1. Tooling for agents."},
			Projects: []model.Project{
				{FullName: "a/one", Title: "one", URL: "https://github.com/a/one", Language: "Go", Author: "a", Stars: &stars, StarsToday: &today},
			},
		},
		{
			Date:           "2026-08-28",
			GenerationTime: "2026-08-28 06:00:00",
			Summary:        "Older report",
			Projects: []model.Project{
				{FullName: "b/two", Title: "two", URL: "https://github.com/b/two", Language: "Rust", Author: "b"},
			},
		},
	}
}

func TestGetLatestReport_DBError(t *testing.T) {
	r := newTestRouter(&fakeReportStore{err: errors.New("DB down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetLatestReport_Empty(t *testing.T) {
	r := newTestRouter(&fakeReportStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLatestReport_WithResult(t *testing.T) {
	r := newTestRouter(&fakeReportStore{reports: sampleReports(), total: 2})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ReportResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, "2026-08-29", res.Date)
	assert.Equal(t, 1, len(res.Projects))
	assert.Equal(t, "a/one", res.Projects[0].FullName)
	assert.Equal(t, "1. Tooling for agents.", res.Projects[0].Note)
}

func TestGetReports_WithResults(t *testing.T) {
	r := newTestRouter(&fakeReportStore{reports: sampleReports(), total: 2})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports?limit=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ReportsResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 2, len(res.Reports))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 5, res.Limit)
	assert.Equal(t, "Fresh report", res.Reports[0].Summary)
}

func TestGetReports_InvalidLimitUsesDefault(t *testing.T) {
	r := newTestRouter(&fakeReportStore{reports: []model.Report{}, total: 0})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports?limit=abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ReportsResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 10, res.Limit)
}

func TestGetStats(t *testing.T) {
	r := newTestRouter(&fakeReportStore{reports: sampleReports(), total: 2})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res model.AggregatedView
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 2, res.TotalReports)
	assert.Equal(t, 2, res.TotalProjects)
	assert.Equal(t, 120, res.TotalStarsToday)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeReportStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
