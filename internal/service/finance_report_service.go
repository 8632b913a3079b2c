package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/scholix-api/internal/models"
	"github.com/noah-isme/scholix-api/internal/repository"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

type financeReportRepo interface {
	GroupedTransactions(ctx context.Context, filter models.ReportFilter, groupBy string) ([]models.TransactionGroup, error)
	TransactionDetails(ctx context.Context, filter models.ReportFilter, limit int) ([]models.TransactionDetail, error)
	OutstandingBalances(ctx context.Context, filter models.ReportFilter) ([]models.OutstandingBalance, error)
	RevenueByType(ctx context.Context, filter models.ReportFilter) ([]models.RevenueByType, error)
	RevenueByMethod(ctx context.Context, filter models.ReportFilter) ([]models.RevenueByMethod, error)
	RevenueByMonth(ctx context.Context, filter models.ReportFilter) ([]models.RevenueByMonth, error)
}

// TransactionReport is the grouped transaction report with an optional
// detail listing.
type TransactionReport struct {
	GroupBy          string                     `json:"group_by"`
	Groups           []models.TransactionGroup  `json:"groups"`
	Details          []models.TransactionDetail `json:"details,omitempty"`
	TransactionCount int                        `json:"transaction_count"`
	TotalAmount      decimal.Decimal            `json:"total_amount"`
}

// OutstandingReport lists unpaid balances with a running total.
type OutstandingReport struct {
	Rows             []models.OutstandingBalance `json:"rows"`
	TotalOutstanding decimal.Decimal             `json:"total_outstanding"`
}

// RevenueReport combines the three revenue breakdowns. GrandTotal is derived
// from the by-type breakdown only.
type RevenueReport struct {
	Breakdowns       models.RevenueAnalysis `json:"breakdowns"`
	GrandTotal       decimal.Decimal        `json:"grand_total"`
	TransactionCount int                    `json:"transaction_count"`
}

// FinanceReportServiceConfig tunes report behaviour.
type FinanceReportServiceConfig struct {
	DetailLimit int
	CacheTTL    time.Duration
}

// FinanceReportService computes the financial reports. Every report is a
// stateless read-only computation; a single query failure aborts the whole
// report and is never retried here.
type FinanceReportService struct {
	repo    financeReportRepo
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     FinanceReportServiceConfig
}

// NewFinanceReportService constructs the service.
func NewFinanceReportService(repo financeReportRepo, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg FinanceReportServiceConfig) *FinanceReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DetailLimit <= 0 {
		cfg.DetailLimit = 1000
	}
	return &FinanceReportService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		cfg:     cfg,
	}
}

// GroupedTransactions runs the grouping selected by groupBy and, when
// requested, attaches the most recent underlying transactions.
func (s *FinanceReportService) GroupedTransactions(ctx context.Context, filter models.ReportFilter, groupBy string, includeDetails bool) (*TransactionReport, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveReport("transactions", time.Since(start)) }()

	groupBy = repository.GroupingFor(groupBy).Key()
	cacheKey := reportCacheKey("transactions", filter, groupBy, fmt.Sprintf("details=%t", includeDetails))
	var cached TransactionReport
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	groups, err := s.repo.GroupedTransactions(ctx, filter, groupBy)
	if err != nil {
		return nil, s.queryFailed("grouped transactions", filter, groupBy, err)
	}
	report := &TransactionReport{GroupBy: groupBy, Groups: groups, TotalAmount: decimal.Zero}
	for _, group := range groups {
		report.TransactionCount += group.TransactionCount
		report.TotalAmount = report.TotalAmount.Add(group.TotalAmount)
	}
	if includeDetails {
		details, err := s.repo.TransactionDetails(ctx, filter, s.cfg.DetailLimit)
		if err != nil {
			return nil, s.queryFailed("transaction details", filter, groupBy, err)
		}
		report.Details = details
	}

	_ = s.cache.Set(ctx, cacheKey, report, s.cfg.CacheTTL)
	return report, nil
}

// OutstandingFees reconciles billed against paid amounts and classifies each
// unpaid row against the current date.
func (s *FinanceReportService) OutstandingFees(ctx context.Context, filter models.ReportFilter) (*OutstandingReport, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveReport("outstanding", time.Since(start)) }()

	rows, err := s.repo.OutstandingBalances(ctx, filter)
	if err != nil {
		return nil, s.queryFailed("outstanding balances", filter, "", err)
	}
	today := s.now().Truncate(24 * time.Hour)
	report := &OutstandingReport{Rows: rows, TotalOutstanding: decimal.Zero}
	for i := range report.Rows {
		due := report.Rows[i].DueDate.Truncate(24 * time.Hour)
		switch {
		case due.Before(today):
			report.Rows[i].DueStatus = models.DueStatusOverdue
		case due.Equal(today):
			report.Rows[i].DueStatus = models.DueStatusDueToday
		default:
			report.Rows[i].DueStatus = models.DueStatusPending
		}
		report.TotalOutstanding = report.TotalOutstanding.Add(report.Rows[i].Outstanding)
	}
	return report, nil
}

// RevenueAnalysis computes the three breakdowns under one shared filter. The
// breakdowns have no ordering dependency; they are issued sequentially and
// combined only here. The grand total is the sum of the by-type totals.
func (s *FinanceReportService) RevenueAnalysis(ctx context.Context, filter models.ReportFilter) (*RevenueReport, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveReport("revenue", time.Since(start)) }()

	cacheKey := reportCacheKey("revenue", filter, "", "")
	var cached RevenueReport
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	byType, err := s.repo.RevenueByType(ctx, filter)
	if err != nil {
		return nil, s.queryFailed("revenue by type", filter, "", err)
	}
	byMethod, err := s.repo.RevenueByMethod(ctx, filter)
	if err != nil {
		return nil, s.queryFailed("revenue by method", filter, "", err)
	}
	byMonth, err := s.repo.RevenueByMonth(ctx, filter)
	if err != nil {
		return nil, s.queryFailed("revenue by month", filter, "", err)
	}

	report := &RevenueReport{
		Breakdowns: models.RevenueAnalysis{ByType: byType, ByMethod: byMethod, ByMonth: byMonth},
		GrandTotal: decimal.Zero,
	}
	for _, row := range byType {
		report.GrandTotal = report.GrandTotal.Add(row.TotalAmount)
		report.TransactionCount += row.TransactionCount
	}

	_ = s.cache.Set(ctx, cacheKey, report, s.cfg.CacheTTL)
	return report, nil
}

func (s *FinanceReportService) queryFailed(what string, filter models.ReportFilter, groupBy string, err error) error {
	fields := []zap.Field{
		zap.String("query", what),
		zap.String("academic_year_id", filter.AcademicYearID),
		zap.String("term_id", filter.TermID),
		zap.String("class_id", filter.ClassID),
		zap.Error(err),
	}
	if groupBy != "" {
		fields = append(fields, zap.String("group_by", groupBy))
	}
	if filter.DateFrom != nil {
		fields = append(fields, zap.Time("date_from", *filter.DateFrom))
	}
	if filter.DateTo != nil {
		fields = append(fields, zap.Time("date_to", *filter.DateTo))
	}
	s.logger.Error("finance report query failed", fields...)
	return appErrors.Wrap(err, appErrors.ErrReportQuery.Code, appErrors.ErrReportQuery.Status, "failed to compute "+what)
}

// reportCacheKey builds a stable cache key from the filter dimensions.
func reportCacheKey(report string, filter models.ReportFilter, groupBy, extra string) string {
	parts := []string{
		"report", report,
		"y=" + filter.AcademicYearID,
		"t=" + filter.TermID,
		"c=" + filter.ClassID,
	}
	if filter.DateFrom != nil {
		parts = append(parts, "from="+filter.DateFrom.Format(time.RFC3339))
	}
	if filter.DateTo != nil {
		parts = append(parts, "to="+filter.DateTo.Format(time.RFC3339))
	}
	if groupBy != "" {
		parts = append(parts, "g="+groupBy)
	}
	if extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, ":")
}
