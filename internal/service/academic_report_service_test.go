package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholix-api/internal/models"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

type stubMarksRepo struct {
	midterm   []models.MarkRow
	classwork []models.MarkRow
	exam      []models.MarkRow
	err       error
}

func (s *stubMarksRepo) ListMidterm(_ context.Context, _ models.ReportFilter) ([]models.MarkRow, error) {
	return s.midterm, s.err
}

func (s *stubMarksRepo) ListClasswork(_ context.Context, _ models.ReportFilter) ([]models.MarkRow, error) {
	return s.classwork, s.err
}

func (s *stubMarksRepo) ListExam(_ context.Context, _ models.ReportFilter) ([]models.MarkRow, error) {
	return s.exam, s.err
}

type stubWeightsRepo struct {
	weights models.MarksWeights
	err     error
}

func (s *stubWeightsRepo) MarksWeights(_ context.Context) (models.MarksWeights, error) {
	return s.weights, s.err
}

func mark(studentID, studentName, subjectID, subjectName string, total float64) models.MarkRow {
	return models.MarkRow{
		StudentID:   studentID,
		StudentName: studentName,
		SubjectID:   subjectID,
		SubjectName: subjectName,
		TotalMarks:  total,
	}
}

func TestGradeReportMergesAndZeroFills(t *testing.T) {
	marks := &stubMarksRepo{
		midterm: []models.MarkRow{
			mark("s1", "Alice", "math", "Mathematics", 80),
		},
		classwork: []models.MarkRow{
			mark("s1", "Alice", "math", "Mathematics", 70),
		},
		// No exam record for Alice/math, and Bob only ever sat the exam.
		exam: []models.MarkRow{
			mark("s2", "Bob", "math", "Mathematics", 90),
		},
	}
	weights := &stubWeightsRepo{weights: models.MarksWeights{Midterm: 30, Class: 20, Exam: 50}}
	svc := NewAcademicReportService(marks, weights, nil, nil)

	report, err := svc.GradeReport(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)

	alice := report.Rows[0]
	require.Equal(t, "Alice", alice.StudentName)
	require.Equal(t, 0.0, alice.ExamMarks)
	require.InDelta(t, 38.0, alice.Score, 1e-9) // 80*0.3 + 70*0.2
	require.Equal(t, "F", alice.Grade)

	bob := report.Rows[1]
	require.Equal(t, "Bob", bob.StudentName)
	require.InDelta(t, 45.0, bob.Score, 1e-9) // 90*0.5
	require.Equal(t, "F", bob.Grade)

	require.InDelta(t, 41.5, report.AverageScore, 1e-9)
}

func TestGradeReportRejectsMisconfiguredWeights(t *testing.T) {
	marks := &stubMarksRepo{}
	weights := &stubWeightsRepo{weights: models.MarksWeights{Midterm: 40, Class: 40, Exam: 40}}
	svc := NewAcademicReportService(marks, weights, nil, nil)

	_, err := svc.GradeReport(context.Background(), models.ReportFilter{})
	require.ErrorIs(t, err, appErrors.ErrInvalidWeights)
}

func TestGradeReportEmptyInputIsNotAnError(t *testing.T) {
	svc := NewAcademicReportService(&stubMarksRepo{}, &stubWeightsRepo{weights: models.MarksWeights{Midterm: 30, Class: 20, Exam: 50}}, nil, nil)

	report, err := svc.GradeReport(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Empty(t, report.Rows)
	require.Zero(t, report.AverageScore)
}

func TestPerformanceReportRanksByAverage(t *testing.T) {
	marks := &stubMarksRepo{
		exam: []models.MarkRow{
			mark("s1", "Alice", "math", "Mathematics", 60),
			mark("s1", "Alice", "eng", "English", 80),
			mark("s2", "Bob", "math", "Mathematics", 90),
			mark("s2", "Bob", "eng", "English", 90),
			mark("s3", "Cara", "math", "Mathematics", 40),
		},
	}
	weights := &stubWeightsRepo{weights: models.MarksWeights{Exam: 100}}
	svc := NewAcademicReportService(marks, weights, nil, nil)

	report, err := svc.PerformanceReport(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 3)

	require.Equal(t, "Bob", report.Rows[0].StudentName)
	require.Equal(t, 1, report.Rows[0].Rank)
	require.InDelta(t, 90.0, report.Rows[0].AverageScore, 1e-9)
	require.Equal(t, 2, report.Rows[0].ACount)
	require.Equal(t, "Excellent", report.Rows[0].Status)

	require.Equal(t, "Alice", report.Rows[1].StudentName)
	require.Equal(t, 2, report.Rows[1].Rank)
	require.InDelta(t, 70.0, report.Rows[1].AverageScore, 1e-9)
	require.Equal(t, "Excellent", report.Rows[1].Status)

	require.Equal(t, "Cara", report.Rows[2].StudentName)
	require.Equal(t, 3, report.Rows[2].Rank)
	require.Equal(t, 1, report.Rows[2].FailCount)
	require.Equal(t, "Needs Improvement", report.Rows[2].Status)

	require.InDelta(t, (90.0+70.0+40.0)/3, report.ClassAverage, 1e-9)
}

func TestPerformanceReportTiedAveragesKeepInputOrder(t *testing.T) {
	marks := &stubMarksRepo{
		exam: []models.MarkRow{
			mark("s1", "Alice", "math", "Mathematics", 75),
			mark("s2", "Bob", "math", "Mathematics", 75),
		},
	}
	weights := &stubWeightsRepo{weights: models.MarksWeights{Exam: 100}}
	svc := NewAcademicReportService(marks, weights, nil, nil)

	report, err := svc.PerformanceReport(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	require.Equal(t, "Alice", report.Rows[0].StudentName)
	require.Equal(t, 1, report.Rows[0].Rank)
	require.Equal(t, "Bob", report.Rows[1].StudentName)
	require.Equal(t, 2, report.Rows[1].Rank)
}

func TestPerformanceReportWrapsQueryFailures(t *testing.T) {
	marks := &stubMarksRepo{err: context.DeadlineExceeded}
	weights := &stubWeightsRepo{weights: models.MarksWeights{Exam: 100}}
	svc := NewAcademicReportService(marks, weights, nil, nil)

	_, err := svc.PerformanceReport(context.Background(), models.ReportFilter{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrReportQuery.Code, appErr.Code)
}
