package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholix-api/internal/dto"
	"github.com/noah-isme/scholix-api/internal/models"
	"github.com/noah-isme/scholix-api/internal/service"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
	"github.com/noah-isme/scholix-api/pkg/response"
)

type academicReporter interface {
	GradeReport(ctx context.Context, filter models.ReportFilter) (*service.GradeReport, error)
	PerformanceReport(ctx context.Context, filter models.ReportFilter) (*service.PerformanceReport, error)
}

// AcademicReportHandler exposes the grade and performance reports.
type AcademicReportHandler struct {
	reports academicReporter
}

// NewAcademicReportHandler constructs the handler.
func NewAcademicReportHandler(reports academicReporter) *AcademicReportHandler {
	return &AcademicReportHandler{reports: reports}
}

// Grades godoc
// @Summary Per-student per-subject grade report
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/grades [get]
func (h *AcademicReportHandler) Grades(c *gin.Context) {
	var query dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	filter, err := query.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.reports.GradeReport(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary := map[string]interface{}{
		"average_score": report.AverageScore,
	}
	response.Report(c, report.Rows, len(report.Rows), summary, filter)
}

// Performance godoc
// @Summary Ranked per-student performance report
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/performance [get]
func (h *AcademicReportHandler) Performance(c *gin.Context) {
	var query dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	filter, err := query.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.reports.PerformanceReport(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary := map[string]interface{}{
		"class_average": report.ClassAverage,
	}
	response.Report(c, report.Rows, len(report.Rows), summary, filter)
}
