package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholix-api/internal/models"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

type stubFinanceRepo struct {
	groups       []models.TransactionGroup
	groupBySeen  string
	details      []models.TransactionDetail
	detailsLimit int
	balances     []models.OutstandingBalance
	byType       []models.RevenueByType
	byMethod     []models.RevenueByMethod
	byMonth      []models.RevenueByMonth
	err          error
}

func (s *stubFinanceRepo) GroupedTransactions(_ context.Context, _ models.ReportFilter, groupBy string) ([]models.TransactionGroup, error) {
	s.groupBySeen = groupBy
	return s.groups, s.err
}

func (s *stubFinanceRepo) TransactionDetails(_ context.Context, _ models.ReportFilter, limit int) ([]models.TransactionDetail, error) {
	s.detailsLimit = limit
	return s.details, s.err
}

func (s *stubFinanceRepo) OutstandingBalances(_ context.Context, _ models.ReportFilter) ([]models.OutstandingBalance, error) {
	return s.balances, s.err
}

func (s *stubFinanceRepo) RevenueByType(_ context.Context, _ models.ReportFilter) ([]models.RevenueByType, error) {
	return s.byType, s.err
}

func (s *stubFinanceRepo) RevenueByMethod(_ context.Context, _ models.ReportFilter) ([]models.RevenueByMethod, error) {
	return s.byMethod, s.err
}

func (s *stubFinanceRepo) RevenueByMonth(_ context.Context, _ models.ReportFilter) ([]models.RevenueByMonth, error) {
	return s.byMonth, s.err
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestGroupedTransactionsSumsGroups(t *testing.T) {
	repo := &stubFinanceRepo{
		groups: []models.TransactionGroup{
			{GroupKey: "s1", GroupLabel: "Alice", TransactionCount: 2, TotalAmount: dec("150.00"), PaidAmount: decPtr("100.00"), PendingAmount: decPtr("50.00")},
			{GroupKey: "s2", GroupLabel: "Bob", TransactionCount: 1, TotalAmount: dec("75.00"), PaidAmount: decPtr("75.00"), PendingAmount: decPtr("0.00")},
		},
	}
	svc := NewFinanceReportService(repo, nil, nil, nil, FinanceReportServiceConfig{})

	report, err := svc.GroupedTransactions(context.Background(), models.ReportFilter{}, "student", false)
	require.NoError(t, err)
	require.Equal(t, "student", report.GroupBy)
	require.Equal(t, 3, report.TransactionCount)
	require.True(t, report.TotalAmount.Equal(dec("225.00")))
	require.Nil(t, report.Details)
}

func TestGroupedTransactionsUnknownKeyRunsAsSummary(t *testing.T) {
	repo := &stubFinanceRepo{
		groups: []models.TransactionGroup{
			{GroupKey: "all", GroupLabel: "All Transactions", TransactionCount: 5, TotalAmount: dec("500.00")},
		},
	}
	svc := NewFinanceReportService(repo, nil, nil, nil, FinanceReportServiceConfig{})

	report, err := svc.GroupedTransactions(context.Background(), models.ReportFilter{}, "teacher", false)
	require.NoError(t, err)
	require.Equal(t, "summary", report.GroupBy)
	require.Equal(t, "summary", repo.groupBySeen)
}

func TestGroupedTransactionsAttachesDetailsWithLimit(t *testing.T) {
	repo := &stubFinanceRepo{
		groups: []models.TransactionGroup{
			{GroupKey: "all", GroupLabel: "All Transactions", TransactionCount: 1, TotalAmount: dec("50.00")},
		},
		details: []models.TransactionDetail{
			{ID: "pay-1", ReceiptNumber: "RCP-001", Amount: dec("50.00")},
		},
	}
	svc := NewFinanceReportService(repo, nil, nil, nil, FinanceReportServiceConfig{DetailLimit: 250})

	report, err := svc.GroupedTransactions(context.Background(), models.ReportFilter{}, "summary", true)
	require.NoError(t, err)
	require.Len(t, report.Details, 1)
	require.Equal(t, 250, repo.detailsLimit)
}

func TestGroupedTransactionsDefaultDetailLimit(t *testing.T) {
	repo := &stubFinanceRepo{}
	svc := NewFinanceReportService(repo, nil, nil, nil, FinanceReportServiceConfig{})

	_, err := svc.GroupedTransactions(context.Background(), models.ReportFilter{}, "summary", true)
	require.NoError(t, err)
	require.Equal(t, 1000, repo.detailsLimit)
}

func TestOutstandingFeesClassifiesDueStatus(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubFinanceRepo{
		balances: []models.OutstandingBalance{
			{BillingID: "b1", DueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Outstanding: dec("100.00")},
			{BillingID: "b2", DueDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Outstanding: dec("200.00")},
			{BillingID: "b3", DueDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Outstanding: dec("50.00")},
		},
	}
	svc := NewFinanceReportService(repo, nil, nil, nil, FinanceReportServiceConfig{})
	svc.now = func() time.Time { return now }

	report, err := svc.OutstandingFees(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Equal(t, models.DueStatusOverdue, report.Rows[0].DueStatus)
	require.Equal(t, models.DueStatusDueToday, report.Rows[1].DueStatus)
	require.Equal(t, models.DueStatusPending, report.Rows[2].DueStatus)
	require.True(t, report.TotalOutstanding.Equal(dec("350.00")))
}

func TestOutstandingFeesEmptyResultIsSuccess(t *testing.T) {
	svc := NewFinanceReportService(&stubFinanceRepo{}, nil, nil, nil, FinanceReportServiceConfig{})

	report, err := svc.OutstandingFees(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Empty(t, report.Rows)
	require.True(t, report.TotalOutstanding.IsZero())
}

func TestRevenueAnalysisGrandTotalFromByTypeOnly(t *testing.T) {
	repo := &stubFinanceRepo{
		byType: []models.RevenueByType{
			{PaymentType: "Tuition", TransactionCount: 4, TotalAmount: dec("400.00")},
			{PaymentType: "Transport", TransactionCount: 2, TotalAmount: dec("100.00")},
		},
		byMethod: []models.RevenueByMethod{
			{MethodName: "Cash", TransactionCount: 6, TotalAmount: dec("9999.00")},
		},
		byMonth: []models.RevenueByMonth{
			{Month: "2025-03", TransactionCount: 6, TotalAmount: dec("9999.00")},
		},
	}
	svc := NewFinanceReportService(repo, nil, nil, nil, FinanceReportServiceConfig{})

	report, err := svc.RevenueAnalysis(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.True(t, report.GrandTotal.Equal(dec("500.00")))
	require.Equal(t, 6, report.TransactionCount)
	require.Len(t, report.Breakdowns.ByMethod, 1)
	require.Len(t, report.Breakdowns.ByMonth, 1)
}

func TestFinanceReportsWrapQueryFailures(t *testing.T) {
	repo := &stubFinanceRepo{err: context.DeadlineExceeded}
	svc := NewFinanceReportService(repo, nil, nil, nil, FinanceReportServiceConfig{})

	_, err := svc.GroupedTransactions(context.Background(), models.ReportFilter{}, "student", false)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrReportQuery.Code, appErrors.FromError(err).Code)

	_, err = svc.OutstandingFees(context.Background(), models.ReportFilter{})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrReportQuery.Code, appErrors.FromError(err).Code)

	_, err = svc.RevenueAnalysis(context.Background(), models.ReportFilter{})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrReportQuery.Code, appErrors.FromError(err).Code)
}

func TestReportCacheKeyEncodesDimensions(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := models.ReportFilter{AcademicYearID: "y1", TermID: "t1", ClassID: "c1", DateFrom: &from}
	key := reportCacheKey("transactions", filter, "student", "details=true")
	require.Equal(t, "report:transactions:y=y1:t=t1:c=c1:from=2025-01-01T00:00:00Z:g=student:details=true", key)
}
