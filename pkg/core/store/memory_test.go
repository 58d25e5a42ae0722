package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"finhealth/pkg/models"
)

func TestMemoryStoreStatements(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	older := &models.NormalizedStatement{
		CompanyID: "co-1", DocumentID: "doc-a",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &models.NormalizedStatement{
		CompanyID: "co-1", DocumentID: "doc-b",
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	other := &models.NormalizedStatement{CompanyID: "co-2", DocumentID: "doc-c"}

	for _, st := range []*models.NormalizedStatement{newer, older, other} {
		if err := m.SaveStatement(ctx, st); err != nil {
			t.Fatalf("SaveStatement failed: %v", err)
		}
	}

	got, err := m.StatementsByCompany(ctx, "co-1")
	if err != nil {
		t.Fatalf("StatementsByCompany failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(got))
	}
	if got[0].DocumentID != "doc-a" || got[1].DocumentID != "doc-b" {
		t.Errorf("statements not ordered oldest first: %s, %s", got[0].DocumentID, got[1].DocumentID)
	}

	// Re-saving the same document id replaces, not duplicates.
	older.TotalRows = 42
	if err := m.SaveStatement(ctx, older); err != nil {
		t.Fatal(err)
	}
	got, _ = m.StatementsByCompany(ctx, "co-1")
	if len(got) != 2 || got[0].TotalRows != 42 {
		t.Errorf("upsert semantics broken: %+v", got)
	}

	if err := m.DeleteStatement(ctx, "doc-a"); err != nil {
		t.Fatal(err)
	}
	got, _ = m.StatementsByCompany(ctx, "co-1")
	if len(got) != 1 {
		t.Errorf("expected 1 statement after delete, got %d", len(got))
	}
}

func TestMemoryStoreAssessments(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	first := &models.Assessment{
		ID: "a-1", CompanyID: "co-1",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	second := &models.Assessment{
		ID: "a-2", CompanyID: "co-1",
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := m.SaveAssessment(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveAssessment(ctx, second); err != nil {
		t.Fatal(err)
	}

	// Assessments are append-only.
	if err := m.SaveAssessment(ctx, first); err == nil {
		t.Error("re-saving an existing assessment id must fail")
	}

	list, err := m.AssessmentsByCompany(ctx, "co-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "a-2" {
		t.Errorf("expected newest first, got %+v", list)
	}

	got, err := m.AssessmentByID(ctx, "a-1")
	if err != nil || got.ID != "a-1" {
		t.Errorf("AssessmentByID failed: %v, %+v", err, got)
	}

	_, err = m.AssessmentByID(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
