package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholix-api/internal/dto"
	"github.com/noah-isme/scholix-api/internal/models"
	"github.com/noah-isme/scholix-api/internal/service"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
	"github.com/noah-isme/scholix-api/pkg/response"
)

type financeReporter interface {
	GroupedTransactions(ctx context.Context, filter models.ReportFilter, groupBy string, includeDetails bool) (*service.TransactionReport, error)
	OutstandingFees(ctx context.Context, filter models.ReportFilter) (*service.OutstandingReport, error)
	RevenueAnalysis(ctx context.Context, filter models.ReportFilter) (*service.RevenueReport, error)
}

type reportExporter interface {
	TransactionReport(ctx context.Context, filter models.ReportFilter, groupBy, format string) (*service.ExportResult, error)
}

// FinanceReportHandler exposes the financial report endpoints.
type FinanceReportHandler struct {
	reports  financeReporter
	exporter reportExporter
}

// NewFinanceReportHandler constructs the handler.
func NewFinanceReportHandler(reports financeReporter, exporter reportExporter) *FinanceReportHandler {
	return &FinanceReportHandler{reports: reports, exporter: exporter}
}

// Transactions godoc
// @Summary Grouped transaction report
// @Tags Reports
// @Produce json
// @Param groupBy query string false "Grouping dimension"
// @Param includeDetails query bool false "Attach underlying transactions"
// @Success 200 {object} response.Envelope
// @Router /reports/transactions [get]
func (h *FinanceReportHandler) Transactions(c *gin.Context) {
	var query dto.TransactionReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	filter, err := query.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.reports.GroupedTransactions(c.Request.Context(), filter, query.GroupBy, query.IncludeDetails)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary := map[string]interface{}{
		"group_by":          report.GroupBy,
		"transaction_count": report.TransactionCount,
		"total_amount":      report.TotalAmount,
	}
	data := gin.H{"groups": report.Groups}
	if report.Details != nil {
		data["details"] = report.Details
	}
	response.Report(c, data, len(report.Groups), summary, filter)
}

// TransactionsExport godoc
// @Summary Download the grouped transaction report
// @Tags Reports
// @Produce text/csv
// @Param format query string false "csv or pdf"
// @Router /reports/transactions/export [get]
func (h *FinanceReportHandler) TransactionsExport(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	filter, err := query.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exporter.TransactionReport(c.Request.Context(), filter, query.GroupBy, query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// Outstanding godoc
// @Summary Outstanding fee balances
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/outstanding [get]
func (h *FinanceReportHandler) Outstanding(c *gin.Context) {
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
	report, err := h.reports.OutstandingFees(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary := map[string]interface{}{
		"total_outstanding": report.TotalOutstanding,
	}
	response.Report(c, report.Rows, len(report.Rows), summary, filter)
}

// Revenue godoc
// @Summary Revenue analysis breakdowns
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/revenue [get]
func (h *FinanceReportHandler) Revenue(c *gin.Context) {
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
	report, err := h.reports.RevenueAnalysis(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary := map[string]interface{}{
		"grand_total":       report.GrandTotal,
		"transaction_count": report.TransactionCount,
	}
	response.Report(c, report.Breakdowns, len(report.Breakdowns.ByType), summary, filter)
}
