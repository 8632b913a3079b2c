package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholix-api/internal/models"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
	"github.com/noah-isme/scholix-api/pkg/export"
)

type stubTransactionReports struct {
	report *TransactionReport
	err    error
}

func (s *stubTransactionReports) GroupedTransactions(_ context.Context, _ models.ReportFilter, _ string, _ bool) (*TransactionReport, error) {
	return s.report, s.err
}

func sampleTransactionReport() *TransactionReport {
	return &TransactionReport{
		GroupBy: "student",
		Groups: []models.TransactionGroup{
			{GroupKey: "s1", GroupLabel: "Alice", TransactionCount: 2, TotalAmount: dec("150.00"), PaidAmount: decPtr("100.00"), PendingAmount: decPtr("50.00")},
		},
		TransactionCount: 2,
		TotalAmount:      dec("150.00"),
	}
}

func TestExportDefaultsToCSV(t *testing.T) {
	svc := NewExportService(&stubTransactionReports{report: sampleTransactionReport()}, export.NewCSVExporter(), export.NewPDFExporter(), nil, nil)

	result, err := svc.TransactionReport(context.Background(), models.ReportFilter{}, "student", "")
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
	require.True(t, strings.HasPrefix(result.Filename, "transactions-student-"))
	require.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Content)
	require.Contains(t, body, "Group,Transactions,Total,Paid,Pending")
	require.Contains(t, body, "Alice,2,150.00,100.00,50.00")
	require.Contains(t, body, "TOTAL,2,150.00")
}

func TestExportRendersPDF(t *testing.T) {
	svc := NewExportService(&stubTransactionReports{report: sampleTransactionReport()}, export.NewCSVExporter(), export.NewPDFExporter(), nil, nil)

	result, err := svc.TransactionReport(context.Background(), models.ReportFilter{}, "student", "pdf")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	require.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubTransactionReports{report: sampleTransactionReport()}, export.NewCSVExporter(), export.NewPDFExporter(), nil, nil)

	_, err := svc.TransactionReport(context.Background(), models.ReportFilter{}, "student", "xlsx")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportPropagatesReportFailure(t *testing.T) {
	svc := NewExportService(&stubTransactionReports{err: appErrors.ErrReportQuery}, export.NewCSVExporter(), export.NewPDFExporter(), nil, nil)

	_, err := svc.TransactionReport(context.Background(), models.ReportFilter{}, "student", "csv")
	require.ErrorIs(t, err, appErrors.ErrReportQuery)
}

func TestTransactionDatasetSkipsAbsentColumns(t *testing.T) {
	report := &TransactionReport{
		GroupBy: "summary",
		Groups: []models.TransactionGroup{
			{GroupKey: "all", GroupLabel: "All Transactions", TransactionCount: 3, TotalAmount: dec("300.00"), AverageAmount: decPtr("100.00")},
		},
		TransactionCount: 3,
		TotalAmount:      dec("300.00"),
	}
	dataset := transactionDataset(report)
	require.Equal(t, []string{"Group", "Transactions", "Total", "Average"}, dataset.Headers)
	require.Equal(t, "All Transactions", dataset.Rows[0]["Group"])
	require.Equal(t, "100.00", dataset.Rows[0]["Average"])
	require.Equal(t, "TOTAL", dataset.Footer["Group"])
}
