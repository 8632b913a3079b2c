package service

import (
	"github.com/noah-isme/scholix-api/internal/models"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

// ScoreCalculator combines the three mark categories into a composite score
// using configured weight percentages. It is a pure function of the weights
// and the marks; weights that do not sum to 100 are rejected at construction
// and never silently corrected.
type ScoreCalculator struct {
	weights models.MarksWeights
}

// NewScoreCalculator validates the weights and returns a calculator.
func NewScoreCalculator(weights models.MarksWeights) (*ScoreCalculator, error) {
	if weights.Midterm+weights.Class+weights.Exam != 100 {
		return nil, appErrors.ErrInvalidWeights
	}
	return &ScoreCalculator{weights: weights}, nil
}

// Composite computes the weighted score for one student/subject. Missing
// mark categories are passed in as zero by the caller.
func (c *ScoreCalculator) Composite(midterm, class, exam float64) float64 {
	return midterm*c.weights.Midterm/100 +
		class*c.weights.Class/100 +
		exam*c.weights.Exam/100
}

// LetterGrade classifies a composite score. Thresholds are half-open and
// evaluated highest first; the mapping depends on the score alone.
func LetterGrade(score float64) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// PerformanceStatus classifies a student's average score into a qualitative
// label. This ladder is independent of the letter-grade thresholds.
func PerformanceStatus(average float64) string {
	switch {
	case average >= 70:
		return "Excellent"
	case average >= 60:
		return "Good"
	case average >= 50:
		return "Average"
	default:
		return "Needs Improvement"
	}
}
