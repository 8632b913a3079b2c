package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholix-api/internal/models"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
	"github.com/noah-isme/scholix-api/pkg/export"
)

type transactionReportProvider interface {
	GroupedTransactions(ctx context.Context, filter models.ReportFilter, groupBy string, includeDetails bool) (*TransactionReport, error)
}

// ExportFormat values accepted by the export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportResult is a rendered report download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders the grouped transaction report into downloadable
// formats.
type ExportService struct {
	reports   transactionReportProvider
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs the service.
func NewExportService(reports transactionReportProvider, csv *export.CSVExporter, pdf *export.PDFExporter, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reports:   reports,
		csv:       csv,
		pdf:       pdf,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type exportRequest struct {
	Format string `validate:"omitempty,oneof=csv pdf"`
}

// TransactionReport computes the grouped report and renders it in the
// requested format.
func (s *ExportService) TransactionReport(ctx context.Context, filter models.ReportFilter, groupBy, format string) (*ExportResult, error) {
	if err := s.validator.Struct(exportRequest{Format: format}); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if format == "" {
		format = ExportFormatCSV
	}

	report, err := s.reports.GroupedTransactions(ctx, filter, groupBy, false)
	if err != nil {
		return nil, err
	}
	dataset := transactionDataset(report)
	stamp := s.now().Format("20060102-150405")

	switch format {
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, fmt.Sprintf("Transactions by %s", report.GroupBy))
		if err != nil {
			s.logger.Error("render pdf export failed", zap.String("group_by", report.GroupBy), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("transactions-%s-%s.pdf", report.GroupBy, stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		content, err := s.csv.Render(dataset)
		if err != nil {
			s.logger.Error("render csv export failed", zap.String("group_by", report.GroupBy), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("transactions-%s-%s.csv", report.GroupBy, stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	}
}

// transactionDataset flattens the report into a tabular dataset, keeping
// only the aggregate columns the active grouping populated.
func transactionDataset(report *TransactionReport) export.Dataset {
	headers := []string{"Group", "Transactions", "Total"}
	optional := []struct {
		header  string
		present func(models.TransactionGroup) bool
		value   func(models.TransactionGroup) string
	}{
		{"Paid", func(g models.TransactionGroup) bool { return g.PaidAmount != nil },
			func(g models.TransactionGroup) string { return g.PaidAmount.StringFixed(2) }},
		{"Pending", func(g models.TransactionGroup) bool { return g.PendingAmount != nil },
			func(g models.TransactionGroup) string { return g.PendingAmount.StringFixed(2) }},
		{"Average", func(g models.TransactionGroup) bool { return g.AverageAmount != nil },
			func(g models.TransactionGroup) string { return g.AverageAmount.StringFixed(2) }},
		{"Min", func(g models.TransactionGroup) bool { return g.MinAmount != nil },
			func(g models.TransactionGroup) string { return g.MinAmount.StringFixed(2) }},
		{"Max", func(g models.TransactionGroup) bool { return g.MaxAmount != nil },
			func(g models.TransactionGroup) string { return g.MaxAmount.StringFixed(2) }},
		{"Students", func(g models.TransactionGroup) bool { return g.StudentCount != nil },
			func(g models.TransactionGroup) string { return strconv.Itoa(*g.StudentCount) }},
	}
	active := make([]int, 0, len(optional))
	for i, col := range optional {
		for _, group := range report.Groups {
			if col.present(group) {
				active = append(active, i)
				headers = append(headers, col.header)
				break
			}
		}
	}

	rows := make([]map[string]string, 0, len(report.Groups))
	for _, group := range report.Groups {
		row := map[string]string{
			"Group":        group.GroupLabel,
			"Transactions": strconv.Itoa(group.TransactionCount),
			"Total":        group.TotalAmount.StringFixed(2),
		}
		for _, i := range active {
			if optional[i].present(group) {
				row[optional[i].header] = optional[i].value(group)
			}
		}
		rows = append(rows, row)
	}

	return export.Dataset{
		Headers: headers,
		Rows:    rows,
		Footer: map[string]string{
			"Group":        "TOTAL",
			"Transactions": strconv.Itoa(report.TransactionCount),
			"Total":        report.TotalAmount.StringFixed(2),
		},
	}
}
