package store

import (
	"context"

	"finhealth/pkg/models"
)

// DocumentStore keeps normalized statements keyed by document id.
type DocumentStore interface {
	SaveStatement(ctx context.Context, st *models.NormalizedStatement) error
	StatementsByCompany(ctx context.Context, companyID string) ([]models.NormalizedStatement, error)
	DeleteStatement(ctx context.Context, documentID string) error
}

// AssessmentStore is append-only: assessments are never updated, new ones
// supersede old ones and history stays queryable newest-first.
type AssessmentStore interface {
	SaveAssessment(ctx context.Context, a *models.Assessment) error
	AssessmentsByCompany(ctx context.Context, companyID string) ([]models.Assessment, error)
	AssessmentByID(ctx context.Context, id string) (*models.Assessment, error)
}
