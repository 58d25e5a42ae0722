package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"finhealth/pkg/models"
)

// MemoryStore is an in-process DocumentStore + AssessmentStore, used by
// tests and single-process runs without Postgres.
type MemoryStore struct {
	mu          sync.RWMutex
	statements  map[string]models.NormalizedStatement // by document id
	assessments map[string]models.Assessment          // by assessment id
}

var (
	_ DocumentStore   = (*MemoryStore)(nil)
	_ AssessmentStore = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		statements:  make(map[string]models.NormalizedStatement),
		assessments: make(map[string]models.Assessment),
	}
}

func (m *MemoryStore) SaveStatement(_ context.Context, st *models.NormalizedStatement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements[st.DocumentID] = *st
	return nil
}

func (m *MemoryStore) StatementsByCompany(_ context.Context, companyID string) ([]models.NormalizedStatement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.NormalizedStatement
	for _, st := range m.statements {
		if st.CompanyID == companyID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) DeleteStatement(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.statements, documentID)
	return nil
}

func (m *MemoryStore) SaveAssessment(_ context.Context, a *models.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.assessments[a.ID]; exists {
		return fmt.Errorf("assessment %s already exists", a.ID)
	}
	m.assessments[a.ID] = *a
	return nil
}

func (m *MemoryStore) AssessmentsByCompany(_ context.Context, companyID string) ([]models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Assessment
	for _, a := range m.assessments {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	// Newest first, matching the Postgres repo.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) AssessmentByID(_ context.Context, id string) (*models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assessments[id]
	if !ok {
		return nil, fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	return &a, nil
}
