package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scholix-api/internal/models"
)

// DirectoryRepository serves the read-only lookups that feed the report
// filter controls: students, classes, terms and academic years.
type DirectoryRepository struct {
	db *sqlx.DB
}

// NewDirectoryRepository instantiates the repository.
func NewDirectoryRepository(db *sqlx.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// ListStudents returns students, optionally scoped to a class and/or
// academic year.
func (r *DirectoryRepository) ListStudents(ctx context.Context, classID, academicYearID string) ([]models.Student, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT s.id, s.full_name, s.gender, s.date_of_birth, s.class_id,
        c.name AS class_name, s.guardian_name, s.guardian_phone,
        s.enrollment_status, s.academic_year_id, s.created_at
        FROM students s
        LEFT JOIN classes c ON c.id = s.class_id
        WHERE 1=1`)
	var args []interface{}
	if classID != "" {
		args = append(args, classID)
		builder.WriteString(fmt.Sprintf(" AND s.class_id = $%d", len(args)))
	}
	if academicYearID != "" {
		args = append(args, academicYearID)
		builder.WriteString(fmt.Sprintf(" AND s.academic_year_id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY s.full_name ASC")

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListClasses returns all classes.
func (r *DirectoryRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, name, academic_year, teacher_id FROM classes ORDER BY name ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListTerms returns all terms.
func (r *DirectoryRepository) ListTerms(ctx context.Context) ([]models.Term, error) {
	const query = `SELECT id, name FROM terms ORDER BY id ASC`
	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// ListAcademicYears returns all academic years, current first.
func (r *DirectoryRepository) ListAcademicYears(ctx context.Context) ([]models.AcademicYear, error) {
	const query = `SELECT id, name, is_current FROM academic_years ORDER BY is_current DESC, name DESC`
	var years []models.AcademicYear
	if err := r.db.SelectContext(ctx, &years, query); err != nil {
		return nil, fmt.Errorf("list academic years: %w", err)
	}
	return years, nil
}
