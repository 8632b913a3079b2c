package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scholix-api/internal/models"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

type marksReader interface {
	ListMidterm(ctx context.Context, filter models.ReportFilter) ([]models.MarkRow, error)
	ListClasswork(ctx context.Context, filter models.ReportFilter) ([]models.MarkRow, error)
	ListExam(ctx context.Context, filter models.ReportFilter) ([]models.MarkRow, error)
}

type weightsReader interface {
	MarksWeights(ctx context.Context) (models.MarksWeights, error)
}

// GradeReport is the flat per-student-per-subject score listing.
type GradeReport struct {
	Rows         []models.GradeReportRow
	AverageScore float64
}

// PerformanceReport aggregates composite scores per student and ranks them.
type PerformanceReport struct {
	Rows         []models.PerformanceRow
	ClassAverage float64
}

// AcademicReportService computes the grade and performance reports from the
// mark tables and the configured weights.
type AcademicReportService struct {
	marks   marksReader
	weights weightsReader
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAcademicReportService constructs the service.
func NewAcademicReportService(marks marksReader, weights weightsReader, metrics *MetricsService, logger *zap.Logger) *AcademicReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicReportService{marks: marks, weights: weights, metrics: metrics, logger: logger}
}

// GradeReport returns composite scores and letter grades for every
// student×subject matched by the filter.
func (s *AcademicReportService) GradeReport(ctx context.Context, filter models.ReportFilter) (*GradeReport, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveReport("grades", time.Since(start)) }()

	rows, err := s.scoredRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	report := &GradeReport{Rows: rows}
	if len(rows) > 0 {
		var sum float64
		for _, row := range rows {
			sum += row.Score
		}
		report.AverageScore = sum / float64(len(rows))
	}
	return report, nil
}

// PerformanceReport aggregates each student's composite scores across all
// subjects and assigns ranks by descending average. Tied averages keep the
// order the students entered the result in; no tie-break is invented.
func (s *AcademicReportService) PerformanceReport(ctx context.Context, filter models.ReportFilter) (*PerformanceReport, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveReport("performance", time.Since(start)) }()

	scored, err := s.scoredRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0)
	perStudent := make(map[string]*models.PerformanceRow)
	for _, row := range scored {
		agg, ok := perStudent[row.StudentID]
		if !ok {
			agg = &models.PerformanceRow{
				StudentID:    row.StudentID,
				StudentName:  row.StudentName,
				HighestScore: row.Score,
				LowestScore:  row.Score,
			}
			perStudent[row.StudentID] = agg
			order = append(order, row.StudentID)
		}
		agg.SubjectCount++
		agg.AverageScore += row.Score
		if row.Score > agg.HighestScore {
			agg.HighestScore = row.Score
		}
		if row.Score < agg.LowestScore {
			agg.LowestScore = row.Score
		}
		switch row.Grade {
		case "A":
			agg.ACount++
		case "B":
			agg.BCount++
		}
		if row.Score < 50 {
			agg.FailCount++
		}
	}

	rows := make([]models.PerformanceRow, 0, len(order))
	var classSum float64
	for _, id := range order {
		agg := perStudent[id]
		agg.AverageScore = agg.AverageScore / float64(agg.SubjectCount)
		agg.Status = PerformanceStatus(agg.AverageScore)
		classSum += agg.AverageScore
		rows = append(rows, *agg)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AverageScore > rows[j].AverageScore
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	report := &PerformanceReport{Rows: rows}
	if len(rows) > 0 {
		report.ClassAverage = classSum / float64(len(rows))
	}
	return report, nil
}

type markTriple struct {
	studentID   string
	studentName string
	subjectID   string
	subjectName string
	midterm     float64
	class       float64
	exam        float64
}

// scoredRows merges the three mark tables into one row per student×subject,
// zero-filling missing categories, and applies the weighted calculator.
func (s *AcademicReportService) scoredRows(ctx context.Context, filter models.ReportFilter) ([]models.GradeReportRow, error) {
	weights, err := s.weights.MarksWeights(ctx)
	if err != nil {
		s.logger.Error("load marks weights failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrReportQuery.Code, appErrors.ErrReportQuery.Status, "failed to load marks weights")
	}
	calc, err := NewScoreCalculator(weights)
	if err != nil {
		return nil, err
	}

	midterm, err := s.marks.ListMidterm(ctx, filter)
	if err != nil {
		return nil, s.queryFailed("midterm marks", filter, err)
	}
	classwork, err := s.marks.ListClasswork(ctx, filter)
	if err != nil {
		return nil, s.queryFailed("class marks", filter, err)
	}
	exam, err := s.marks.ListExam(ctx, filter)
	if err != nil {
		return nil, s.queryFailed("exam marks", filter, err)
	}

	order := make([]string, 0)
	merged := make(map[string]*markTriple)
	collect := func(rows []models.MarkRow, assign func(*markTriple, float64)) {
		for _, row := range rows {
			key := row.StudentID + "|" + row.SubjectID
			triple, ok := merged[key]
			if !ok {
				triple = &markTriple{
					studentID:   row.StudentID,
					studentName: row.StudentName,
					subjectID:   row.SubjectID,
					subjectName: row.SubjectName,
				}
				merged[key] = triple
				order = append(order, key)
			}
			assign(triple, row.TotalMarks)
		}
	}
	collect(midterm, func(t *markTriple, v float64) { t.midterm = v })
	collect(classwork, func(t *markTriple, v float64) { t.class = v })
	collect(exam, func(t *markTriple, v float64) { t.exam = v })

	rows := make([]models.GradeReportRow, 0, len(order))
	for _, key := range order {
		triple := merged[key]
		score := calc.Composite(triple.midterm, triple.class, triple.exam)
		rows = append(rows, models.GradeReportRow{
			StudentID:    triple.studentID,
			StudentName:  triple.studentName,
			SubjectID:    triple.subjectID,
			SubjectName:  triple.subjectName,
			MidtermMarks: triple.midterm,
			ClassMarks:   triple.class,
			ExamMarks:    triple.exam,
			Score:        score,
			Grade:        LetterGrade(score),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].StudentName != rows[j].StudentName {
			return rows[i].StudentName < rows[j].StudentName
		}
		return rows[i].SubjectName < rows[j].SubjectName
	})
	return rows, nil
}

func (s *AcademicReportService) queryFailed(what string, filter models.ReportFilter, err error) error {
	s.logger.Error("academic report query failed",
		zap.String("query", what),
		zap.String("academic_year_id", filter.AcademicYearID),
		zap.String("term_id", filter.TermID),
		zap.String("class_id", filter.ClassID),
		zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrReportQuery.Code, appErrors.ErrReportQuery.Status, "failed to load "+what)
}
