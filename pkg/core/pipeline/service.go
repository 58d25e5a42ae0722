// Package pipeline wires the end-to-end data flow: raw upload → normalizer →
// line items → metric engine → score → assessment synthesizer → store.
package pipeline

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"finhealth/pkg/core/metrics"
	"finhealth/pkg/core/normalize"
	"finhealth/pkg/core/scoring"
	"finhealth/pkg/core/store"
	"finhealth/pkg/core/synthesis"
	"finhealth/pkg/models"
)

// AssessmentService coordinates the core components. Normalization and
// metric computation are stateless and need no coordination; generation is
// limited to one in-flight run per company.
type AssessmentService struct {
	normalizer  *normalize.Normalizer
	engine      *metrics.Engine
	model       *scoring.Model
	synthesizer *synthesis.Synthesizer

	docs        store.DocumentStore
	assessments store.AssessmentStore

	mu       sync.Mutex
	inFlight map[string]struct{} // company ids with a running generation
}

func NewAssessmentService(
	normalizer *normalize.Normalizer,
	engine *metrics.Engine,
	model *scoring.Model,
	synthesizer *synthesis.Synthesizer,
	docs store.DocumentStore,
	assessments store.AssessmentStore,
) *AssessmentService {
	return &AssessmentService{
		normalizer:  normalizer,
		engine:      engine,
		model:       model,
		synthesizer: synthesizer,
		docs:        docs,
		assessments: assessments,
		inFlight:    make(map[string]struct{}),
	}
}

// IngestDocument normalizes an upload and persists the resulting statement.
// Normalization errors abort this document only and are reported per
// document, never silently dropped.
func (s *AssessmentService) IngestDocument(ctx context.Context, companyID string, fileBytes []byte, declaredType models.DocumentType) (*models.NormalizedStatement, error) {
	documentID := uuid.NewString()

	st, err := s.normalizer.Normalize(companyID, documentID, fileBytes, declaredType)
	if err != nil {
		log.Printf("[PIPELINE] normalization failed for company %s document %s: %v", companyID, documentID, err)
		return nil, err
	}

	if err := s.docs.SaveStatement(ctx, st); err != nil {
		return nil, err
	}

	log.Printf("[PIPELINE] normalized document %s for company %s: %d items, %d skipped",
		documentID, companyID, len(st.Items), st.SkippedRows)
	return st, nil
}

// DeleteDocument removes a stored statement. Metric history is derived, so
// no further cleanup is needed: the next computation simply no longer sees
// the document.
func (s *AssessmentService) DeleteDocument(ctx context.Context, documentID string) error {
	return s.docs.DeleteStatement(ctx, documentID)
}

// MetricsHistory computes the per-period metric sets over everything
// currently uploaded for the company.
func (s *AssessmentService) MetricsHistory(ctx context.Context, companyID string) ([]models.MetricSet, error) {
	merged, err := s.snapshotStatements(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.engine.Compute(merged)
}

// GenerateAssessment runs the full flow for one company. The statement
// state is snapshotted at the instant generation begins; concurrent uploads
// do not leak partial writes into a running generation. A duplicate request
// while one is in flight is rejected with DuplicateInFlight.
func (s *AssessmentService) GenerateAssessment(ctx context.Context, profile models.CompanyProfile, language string) (*models.Assessment, error) {
	if !s.acquire(profile.ID) {
		return nil, models.NewFault(models.FaultDuplicateInFlight,
			"an assessment generation for company %s is already in flight", profile.ID)
	}
	defer s.release(profile.ID)

	snapshot, err := s.snapshotStatements(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	metricSets, err := s.engine.Compute(snapshot)
	if err != nil {
		return nil, err
	}

	latest := metricSets[len(metricSets)-1]
	score := s.model.Score(latest)

	assessment, err := s.synthesizer.Synthesize(ctx, profile, latest, score, language)
	if err != nil {
		// Terminal for this attempt: no partial assessment is persisted.
		return nil, err
	}

	if err := s.assessments.SaveAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	log.Printf("[PIPELINE] assessment %s persisted for company %s (score %d, risk %s)",
		assessment.ID, profile.ID, score.FinancialHealthScore, score.RiskLevel)
	return assessment, nil
}

// AssessmentsFor lists a company's assessment history, newest first.
func (s *AssessmentService) AssessmentsFor(ctx context.Context, companyID string) ([]models.Assessment, error) {
	return s.assessments.AssessmentsByCompany(ctx, companyID)
}

// AssessmentByID fetches one assessment.
func (s *AssessmentService) AssessmentByID(ctx context.Context, id string) (*models.Assessment, error) {
	return s.assessments.AssessmentByID(ctx, id)
}

// snapshotStatements reads the company's statements once and merges their
// line items into a single chronological statement. A company with zero
// successfully normalized documents cannot produce metrics.
func (s *AssessmentService) snapshotStatements(ctx context.Context, companyID string) (*models.NormalizedStatement, error) {
	statements, err := s.docs.StatementsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(statements) == 0 {
		return nil, models.NewFault(models.FaultInsufficientData,
			"company %s has no successfully normalized documents", companyID)
	}

	merged := &models.NormalizedStatement{CompanyID: companyID}
	for _, st := range statements {
		merged.Items = append(merged.Items, st.Items...)
		merged.SkippedRows += st.SkippedRows
		merged.TotalRows += st.TotalRows
	}
	sort.SliceStable(merged.Items, func(i, j int) bool {
		return merged.Items[i].Date.Before(merged.Items[j].Date)
	})

	return merged, nil
}

func (s *AssessmentService) acquire(companyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[companyID]; busy {
		return false
	}
	s.inFlight[companyID] = struct{}{}
	return true
}

func (s *AssessmentService) release(companyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, companyID)
}
