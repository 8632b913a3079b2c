package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scholix-api/internal/models"
)

// Mark tables holding the three parallel categories.
const (
	midtermMarksTable = "midterm_marks"
	classMarksTable   = "class_marks"
	examMarksTable    = "exam_marks"
)

// MarksRepository reads the three parallel mark tables feeding the academic
// reports.
type MarksRepository struct {
	db *sqlx.DB
}

// NewMarksRepository instantiates the repository.
func NewMarksRepository(db *sqlx.DB) *MarksRepository {
	return &MarksRepository{db: db}
}

// ListMidterm returns midterm mark rows matching the filter.
func (r *MarksRepository) ListMidterm(ctx context.Context, filter models.ReportFilter) ([]models.MarkRow, error) {
	return r.list(ctx, midtermMarksTable, filter)
}

// ListClasswork returns class-score mark rows matching the filter.
func (r *MarksRepository) ListClasswork(ctx context.Context, filter models.ReportFilter) ([]models.MarkRow, error) {
	return r.list(ctx, classMarksTable, filter)
}

// ListExam returns exam-score mark rows matching the filter.
func (r *MarksRepository) ListExam(ctx context.Context, filter models.ReportFilter) ([]models.MarkRow, error) {
	return r.list(ctx, examMarksTable, filter)
}

// list queries one mark table. Mark rows carry no timestamps, so the
// date-range constraints of the filter do not apply here.
func (r *MarksRepository) list(ctx context.Context, table string, filter models.ReportFilter) ([]models.MarkRow, error) {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(`SELECT m.student_id, s.full_name AS student_name,
        m.subject_id, sub.name AS subject_name, m.total_marks
        FROM %s m
        JOIN students s ON s.id = m.student_id
        JOIN subjects sub ON sub.id = m.subject_id
        WHERE 1=1`, table))
	var args []interface{}
	if filter.AcademicYearID != "" {
		args = append(args, filter.AcademicYearID)
		builder.WriteString(fmt.Sprintf(" AND m.academic_year_id = $%d", len(args)))
	}
	if filter.TermID != "" {
		args = append(args, filter.TermID)
		builder.WriteString(fmt.Sprintf(" AND m.term_id = $%d", len(args)))
	}
	if filter.ClassID != "" {
		args = append(args, filter.ClassID)
		builder.WriteString(fmt.Sprintf(" AND m.class_id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY s.full_name ASC, sub.name ASC")

	var marks []models.MarkRow
	if err := r.db.SelectContext(ctx, &marks, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return marks, nil
}
