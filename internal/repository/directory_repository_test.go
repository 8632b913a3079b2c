package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newDirectoryRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestListStudentsScopedByClassAndYear(t *testing.T) {
	db, mock, cleanup := newDirectoryRepoMock(t)
	defer cleanup()
	repo := NewDirectoryRepository(db)

	born := time.Date(2012, 6, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "full_name", "gender", "date_of_birth", "class_id", "class_name", "guardian_name", "guardian_phone", "enrollment_status", "academic_year_id", "created_at"}).
		AddRow("student-1", "Alice Example", "F", born, "class-1", "Grade 7A", "Bob Example", "0700000000", "Active", "year-1", created)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.full_name ASC")).
		WithArgs("class-1", "year-1").
		WillReturnRows(rows)

	students, err := repo.ListStudents(context.Background(), "class-1", "year-1")
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.NotNil(t, students[0].ClassName)
	require.Equal(t, "Grade 7A", *students[0].ClassName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAcademicYearsCurrentFirst(t *testing.T) {
	db, mock, cleanup := newDirectoryRepoMock(t)
	defer cleanup()
	repo := NewDirectoryRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "is_current"}).
		AddRow("year-2", "2025/2026", true).
		AddRow("year-1", "2024/2025", false)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY is_current DESC, name DESC")).
		WillReturnRows(rows)

	years, err := repo.ListAcademicYears(context.Background())
	require.NoError(t, err)
	require.Len(t, years, 2)
	require.True(t, years[0].IsCurrent)
	require.NoError(t, mock.ExpectationsWereMet())
}
