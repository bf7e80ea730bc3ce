package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sshperkin/travel-agency/internal/service"
	"github.com/sshperkin/travel-agency/pkg/logger"
	"github.com/sshperkin/travel-agency/prometheus"
)

// ReportHandler exposes the aggregate report endpoint
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates the report handler
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate runs a report: GET /reports/:kind?from=YYYY-MM-DD&to=YYYY-MM-DD.
// The to-date is inclusive for the whole day.
func (h *ReportHandler) Generate(c echo.Context) error {
	log := logger.FromContext(c)

	kind := service.ReportKind(c.Param("kind"))

	var params service.ReportParams
	if from, err := time.Parse("2006-01-02", c.QueryParam("from")); err == nil {
		params.From = from
	}
	if to, err := time.Parse("2006-01-02", c.QueryParam("to")); err == nil {
		params.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	report, err := h.reports.Generate(kind, params)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordReport(string(kind))
	log.Info("Report generated",
		zap.String("kind", string(kind)),
		zap.Int("rows", len(report.Rows)))
	return c.JSON(http.StatusOK, report)
}
