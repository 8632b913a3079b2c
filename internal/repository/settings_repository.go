package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scholix-api/internal/models"
)

// SettingsRepository reads process-wide grading configuration.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository instantiates the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// MarksWeights loads the configured weight percentages. The caller validates
// that they sum to 100; this repository only fetches them.
func (r *SettingsRepository) MarksWeights(ctx context.Context) (models.MarksWeights, error) {
	const query = `SELECT midterm_weight, class_weight, exam_weight FROM marks_weights LIMIT 1`
	var weights models.MarksWeights
	if err := r.db.GetContext(ctx, &weights, query); err != nil {
		return models.MarksWeights{}, fmt.Errorf("query marks weights: %w", err)
	}
	return weights, nil
}
