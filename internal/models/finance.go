package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values recorded by the payment workflows.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

// Outstanding-balance due statuses relative to the current date.
const (
	DueStatusOverdue  = "Overdue"
	DueStatusDueToday = "Due Today"
	DueStatusPending  = "Pending"
)

// PaymentMethod represents a configured payment channel.
type PaymentMethod struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// TransactionGroup is one aggregated row of the grouped transaction report.
// Only the aggregate columns selected by the active grouping are populated;
// transaction count and total amount are always present.
type TransactionGroup struct {
	GroupKey         string           `db:"group_key" json:"group_key"`
	GroupLabel       string           `db:"group_label" json:"group_label"`
	TransactionCount int              `db:"transaction_count" json:"transaction_count"`
	TotalAmount      decimal.Decimal  `db:"total_amount" json:"total_amount"`
	PaidAmount       *decimal.Decimal `db:"paid_amount" json:"paid_amount,omitempty"`
	PendingAmount    *decimal.Decimal `db:"pending_amount" json:"pending_amount,omitempty"`
	AverageAmount    *decimal.Decimal `db:"average_amount" json:"average_amount,omitempty"`
	MinAmount        *decimal.Decimal `db:"min_amount" json:"min_amount,omitempty"`
	MaxAmount        *decimal.Decimal `db:"max_amount" json:"max_amount,omitempty"`
	StudentCount     *int             `db:"student_count" json:"student_count,omitempty"`
	PaymentTypeCount *int             `db:"payment_type_count" json:"payment_type_count,omitempty"`
	FirstPaymentAt   *time.Time       `db:"first_payment_at" json:"first_payment_at,omitempty"`
	LastPaymentAt    *time.Time       `db:"last_payment_at" json:"last_payment_at,omitempty"`
}

// TransactionDetail is one underlying payment row of the detail fetch.
type TransactionDetail struct {
	ID            string          `db:"id" json:"id"`
	ReceiptNumber string          `db:"receipt_number" json:"receipt_number"`
	StudentID     string          `db:"student_id" json:"student_id"`
	StudentName   string          `db:"student_name" json:"student_name"`
	ClassName     *string         `db:"class_name" json:"class_name,omitempty"`
	PaymentType   string          `db:"payment_type" json:"payment_type"`
	MethodName    *string         `db:"method_name" json:"method_name,omitempty"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Status        string          `db:"status" json:"status"`
	PaymentDate   time.Time       `db:"payment_date" json:"payment_date"`
	Description   *string         `db:"description" json:"description,omitempty"`
}

// OutstandingBalance reconciles one billing row against the payments matched
// to a single enrolled student. Only rows with a positive outstanding amount
// reach the report.
type OutstandingBalance struct {
	BillingID      string          `db:"billing_id" json:"billing_id"`
	StudentID      string          `db:"student_id" json:"student_id"`
	StudentName    string          `db:"student_name" json:"student_name"`
	ClassName      string          `db:"class_name" json:"class_name"`
	PaymentType    string          `db:"payment_type" json:"payment_type"`
	AmountDue      decimal.Decimal `db:"amount_due" json:"amount_due"`
	AmountPaid     decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	Outstanding    decimal.Decimal `db:"outstanding" json:"outstanding"`
	DueDate        time.Time       `db:"due_date" json:"due_date"`
	TermID         string          `db:"term_id" json:"term_id"`
	AcademicYearID string          `db:"academic_year_id" json:"academic_year_id"`
	DueStatus      string          `db:"-" json:"due_status"`
}

// RevenueByType aggregates revenue per payment category.
type RevenueByType struct {
	PaymentType      string          `db:"payment_type" json:"payment_type"`
	TransactionCount int             `db:"transaction_count" json:"transaction_count"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"total_amount"`
	AverageAmount    decimal.Decimal `db:"average_amount" json:"average_amount"`
}

// RevenueByMethod aggregates revenue per payment channel.
type RevenueByMethod struct {
	MethodName       string          `db:"method_name" json:"method_name"`
	TransactionCount int             `db:"transaction_count" json:"transaction_count"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"total_amount"`
}

// RevenueByMonth aggregates revenue per calendar month (YYYY-MM).
type RevenueByMonth struct {
	Month            string          `db:"month" json:"month"`
	TransactionCount int             `db:"transaction_count" json:"transaction_count"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"total_amount"`
}

// RevenueAnalysis combines the three revenue breakdowns computed under one
// shared filter. GrandTotal is the sum of the by-type totals; the other two
// breakdowns partition the same payments differently and are reported as-is.
type RevenueAnalysis struct {
	ByType   []RevenueByType   `json:"by_type"`
	ByMethod []RevenueByMethod `json:"by_method"`
	ByMonth  []RevenueByMonth  `json:"by_month"`
}
