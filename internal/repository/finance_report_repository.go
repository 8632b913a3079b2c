package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scholix-api/internal/models"
)

// FinanceReportRepository exposes the read-only aggregation queries behind
// the financial reports. It never mutates the underlying records.
type FinanceReportRepository struct {
	db *sqlx.DB
}

// NewFinanceReportRepository instantiates the repository.
func NewFinanceReportRepository(db *sqlx.DB) *FinanceReportRepository {
	return &FinanceReportRepository{db: db}
}

// paymentFilterClause renders the shared report filter into a WHERE fragment
// over the payments/students join. Every constituent query of a report uses
// this one builder so the filters stay identical across breakdowns.
func paymentFilterClause(filter models.ReportFilter) (string, []interface{}) {
	var builder strings.Builder
	builder.WriteString("WHERE 1=1")
	var args []interface{}
	if filter.AcademicYearID != "" {
		args = append(args, filter.AcademicYearID)
		builder.WriteString(fmt.Sprintf(" AND p.academic_year_id = $%d", len(args)))
	}
	if filter.TermID != "" {
		args = append(args, filter.TermID)
		builder.WriteString(fmt.Sprintf(" AND p.term_id = $%d", len(args)))
	}
	if filter.ClassID != "" {
		args = append(args, filter.ClassID)
		builder.WriteString(fmt.Sprintf(" AND s.class_id = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		builder.WriteString(fmt.Sprintf(" AND p.payment_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		builder.WriteString(fmt.Sprintf(" AND p.payment_date <= $%d", len(args)))
	}
	return builder.String(), args
}

// GroupedTransactions runs the projection selected by groupBy under the
// given filter.
func (r *FinanceReportRepository) GroupedTransactions(ctx context.Context, filter models.ReportFilter, groupBy string) ([]models.TransactionGroup, error) {
	grouping := GroupingFor(groupBy)
	where, args := paymentFilterClause(filter)
	var groups []models.TransactionGroup
	if err := r.db.SelectContext(ctx, &groups, grouping.Query(where), args...); err != nil {
		return nil, fmt.Errorf("query grouped transactions (%s): %w", grouping.Key(), err)
	}
	return groups, nil
}

// TransactionDetails returns the most recent underlying payment rows for the
// filter, capped at limit.
func (r *FinanceReportRepository) TransactionDetails(ctx context.Context, filter models.ReportFilter, limit int) ([]models.TransactionDetail, error) {
	where, args := paymentFilterClause(filter)
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT p.id, p.receipt_number, p.student_id, s.full_name AS student_name,
        c.name AS class_name, p.payment_type, m.name AS method_name,
        p.amount, p.status, p.payment_date, p.description
        FROM payments p
        JOIN students s ON s.id = p.student_id
        LEFT JOIN classes c ON c.id = s.class_id
        LEFT JOIN payment_methods m ON m.id = p.payment_method_id
        %s
        ORDER BY p.payment_date DESC, p.created_at DESC
        LIMIT $%d`, where, len(args))
	var details []models.TransactionDetail
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, fmt.Errorf("query transaction details: %w", err)
	}
	return details, nil
}

// OutstandingBalances reconciles each billing row against the payments of the
// billed class's students sharing the billing's payment type, term and
// academic year. Fully paid and overpaid rows are excluded by the
// outstanding > 0 condition.
func (r *FinanceReportRepository) OutstandingBalances(ctx context.Context, filter models.ReportFilter) ([]models.OutstandingBalance, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT b.id AS billing_id, s.id AS student_id, s.full_name AS student_name,
        c.name AS class_name, b.payment_type, b.amount AS amount_due,
        COALESCE(pp.paid, 0) AS amount_paid,
        b.amount - COALESCE(pp.paid, 0) AS outstanding,
        b.due_date, b.term_id, b.academic_year_id
        FROM billings b
        JOIN classes c ON c.id = b.class_id
        JOIN students s ON s.class_id = b.class_id
        LEFT JOIN LATERAL (
            SELECT SUM(p.amount) AS paid
            FROM payments p
            WHERE p.student_id = s.id
              AND p.payment_type = b.payment_type
              AND p.term_id = b.term_id
              AND p.academic_year_id = b.academic_year_id
        ) pp ON TRUE
        WHERE 1=1`)
	var args []interface{}
	if filter.AcademicYearID != "" {
		args = append(args, filter.AcademicYearID)
		builder.WriteString(fmt.Sprintf(" AND b.academic_year_id = $%d", len(args)))
	}
	if filter.TermID != "" {
		args = append(args, filter.TermID)
		builder.WriteString(fmt.Sprintf(" AND b.term_id = $%d", len(args)))
	}
	if filter.ClassID != "" {
		args = append(args, filter.ClassID)
		builder.WriteString(fmt.Sprintf(" AND b.class_id = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		builder.WriteString(fmt.Sprintf(" AND b.due_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		builder.WriteString(fmt.Sprintf(" AND b.due_date <= $%d", len(args)))
	}
	builder.WriteString(` AND b.amount - COALESCE(pp.paid, 0) > 0
        ORDER BY b.due_date ASC, s.full_name ASC`)

	var balances []models.OutstandingBalance
	if err := r.db.SelectContext(ctx, &balances, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query outstanding balances: %w", err)
	}
	return balances, nil
}

// RevenueByType breaks revenue down per payment category.
func (r *FinanceReportRepository) RevenueByType(ctx context.Context, filter models.ReportFilter) ([]models.RevenueByType, error) {
	where, args := paymentFilterClause(filter)
	query := `SELECT p.payment_type,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount,
        AVG(p.amount) AS average_amount
        FROM payments p
        JOIN students s ON s.id = p.student_id
        ` + where + `
        GROUP BY p.payment_type
        ORDER BY total_amount DESC`
	var rows []models.RevenueByType
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query revenue by type: %w", err)
	}
	return rows, nil
}

// RevenueByMethod breaks revenue down per payment channel.
func (r *FinanceReportRepository) RevenueByMethod(ctx context.Context, filter models.ReportFilter) ([]models.RevenueByMethod, error) {
	where, args := paymentFilterClause(filter)
	query := `SELECT m.name AS method_name,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount
        FROM payments p
        JOIN students s ON s.id = p.student_id
        JOIN payment_methods m ON m.id = p.payment_method_id
        ` + where + `
        GROUP BY m.name
        ORDER BY total_amount DESC`
	var rows []models.RevenueByMethod
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query revenue by method: %w", err)
	}
	return rows, nil
}

// RevenueByMonth breaks revenue down per calendar month.
func (r *FinanceReportRepository) RevenueByMonth(ctx context.Context, filter models.ReportFilter) ([]models.RevenueByMonth, error) {
	where, args := paymentFilterClause(filter)
	query := `SELECT TO_CHAR(p.payment_date, 'YYYY-MM') AS month,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount
        FROM payments p
        JOIN students s ON s.id = p.student_id
        ` + where + `
        GROUP BY TO_CHAR(p.payment_date, 'YYYY-MM')
        ORDER BY month DESC`
	var rows []models.RevenueByMonth
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query revenue by month: %w", err)
	}
	return rows, nil
}
