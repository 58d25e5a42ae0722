package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finhealth/pkg/models"
)

// ErrNotFound is returned when an assessment id has no record.
var ErrNotFound = errors.New("not found")

// AssessmentRepo persists assessments append-only. No UPDATE path exists on
// purpose: assessments are immutable after creation.
type AssessmentRepo struct{}

var _ AssessmentStore = (*AssessmentRepo)(nil)

func NewAssessmentRepo() *AssessmentRepo {
	return &AssessmentRepo{}
}

func (r *AssessmentRepo) SaveAssessment(ctx context.Context, a *models.Assessment) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	query := `
		INSERT INTO assessments (id, company_id, assessment_json, created_at)
		VALUES ($1, $2, $3, $4);
	`

	if _, err := pool.Exec(ctx, query, a.ID, a.CompanyID, jsonData, a.CreatedAt); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// AssessmentsByCompany returns the company's history newest-first.
func (r *AssessmentRepo) AssessmentsByCompany(ctx context.Context, companyID string) ([]models.Assessment, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT assessment_json FROM assessments WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var assessments []models.Assessment
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		var a models.Assessment
		if err := json.Unmarshal(jsonData, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
		}
		assessments = append(assessments, a)
	}

	return assessments, rows.Err()
}

func (r *AssessmentRepo) AssessmentByID(ctx context.Context, id string) (*models.Assessment, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT assessment_json FROM assessments WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("assessment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}

	var a models.Assessment
	if err := json.Unmarshal(jsonData, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
	}
	return &a, nil
}
