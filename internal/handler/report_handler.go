package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"trendscope/internal/model"
	"trendscope/internal/stats"

	"github.com/gin-gonic/gin"
)

type ReportStore interface {
	GetLatestReport() (*model.Report, error)
	GetReports(limit, offset int) ([]model.Report, error)
	GetReportTotal() (int, error)
	GetAllReports() ([]model.Report, error)
}

type ReportHandler struct {
	repository ReportStore
}

func NewReportHandler(repository ReportStore) *ReportHandler {
	return &ReportHandler{repository: repository}
}

func toReportResponse(r model.Report) ReportResponse {
	projects := make([]ProjectResponse, len(r.Projects))
	for i, p := range r.Projects {
		projects[i] = ProjectResponse{
			FullName:    p.FullName,
			Title:       p.Title,
			URL:         p.URL,
			Description: p.Description,
			Language:    p.Language,
			Author:      p.Author,
			Stars:       p.Stars,
			StarsToday:  p.StarsToday,
			Note:        r.NoteFor(i),
		}
	}

	return ReportResponse{
		Date:           r.Date,
		GenerationTime: r.GenerationTime,
		Summary:        r.Summary,
		Trends:         r.Trends,
		Projects:       projects,
	}
}

func (h *ReportHandler) GetLatestReport(c *gin.Context) {
	report, err := h.repository.GetLatestReport()
	if err != nil {
		slog.Error("error fetching latest report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report available"})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(*report))
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	limit := getQueryInt("limit", 10, c)
	offset := getQueryInt("offset", 0, c)

	reports, err := h.repository.GetReports(limit, offset)
	if err != nil {
		slog.Error("error fetching reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetReportTotal()
	if err != nil {
		slog.Error("error fetching report total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := ReportsResponse{
		Reports: []ReportResponse{},
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for _, r := range reports {
		res.Reports = append(res.Reports, toReportResponse(r))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReportHandler) GetStats(c *gin.Context) {
	reports, err := h.repository.GetAllReports()
	if err != nil {
		slog.Error("error fetching reports for stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, stats.Aggregate(reports))
}

func (h *ReportHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}
