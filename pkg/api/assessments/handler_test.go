package assessments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finhealth/pkg/core/config"
	"finhealth/pkg/core/llm"
	"finhealth/pkg/core/metrics"
	"finhealth/pkg/core/normalize"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/scoring"
	"finhealth/pkg/core/store"
	"finhealth/pkg/core/synthesis"
	"finhealth/pkg/models"
)

type stubProvider struct{}

func (stubProvider) Generate(context.Context, llm.Request) (string, error) {
	return `{"executive_summary": "The company is financially sound.", "strengths": ["Margins"]}`, nil
}

func setupService(t *testing.T) *pipeline.AssessmentService {
	t.Helper()
	tables := config.DefaultTables()
	mem := store.NewMemoryStore()
	svc := pipeline.NewAssessmentService(
		normalize.New(tables),
		metrics.NewEngine(),
		scoring.NewModel(tables),
		synthesis.New(stubProvider{}, tables, synthesis.Options{Timeout: time.Second, MaxAttempts: 1, BackoffBase: time.Millisecond}),
		mem,
		mem,
	)
	InitHandler(svc)

	csv := strings.Join([]string{
		"Date,Description,Amount",
		"2024-01-05,Product sales,10000.00",
		"2024-01-15,Office rent,(2000.00)",
	}, "\n")
	if _, err := svc.IngestDocument(context.Background(), "co-1", []byte(csv), models.DocTypeDelimited); err != nil {
		t.Fatalf("seeding upload failed: %v", err)
	}
	return svc
}

func generateBody(t *testing.T) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(GenerateRequest{CompanyID: "co-1", Name: "Acme", Industry: "Retail", Language: "en"})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(b)
}

func TestHandleGenerate(t *testing.T) {
	setupService(t)

	rec := httptest.NewRecorder()
	HandleGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/assessments/generate", generateBody(t)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var a models.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("unparseable response: %v", err)
	}
	if a.ID == "" || a.ExecutiveSummary == "" || a.CompanyID != "co-1" {
		t.Errorf("incomplete assessment: %+v", a)
	}
}

func TestHandleGenerateValidation(t *testing.T) {
	setupService(t)

	rec := httptest.NewRecorder()
	HandleGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/assessments/generate",
		strings.NewReader(`{"name": "no company id"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing company_id, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HandleGenerate(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/generate", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET, got %d", rec.Code)
	}
}

func TestHandleGenerateNoDocuments(t *testing.T) {
	setupService(t)

	body, _ := json.Marshal(GenerateRequest{CompanyID: "nobody-uploaded-anything"})
	rec := httptest.NewRecorder()
	HandleGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/assessments/generate", bytes.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleListAndGet(t *testing.T) {
	setupService(t)

	rec := httptest.NewRecorder()
	HandleGenerate(rec, httptest.NewRequest(http.MethodPost, "/api/assessments/generate", generateBody(t)))
	var created models.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	rec = httptest.NewRecorder()
	HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/list?company_id=co-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var list []models.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("unexpected list: %+v", list)
	}

	rec = httptest.NewRecorder()
	HandleGet(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/get?id="+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
}

func TestHandleMetrics(t *testing.T) {
	setupService(t)

	rec := httptest.NewRecorder()
	HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/api/metrics?company_id=co-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var history []models.MetricSet
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 period, got %d", len(history))
	}

	rec = httptest.NewRecorder()
	HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without company_id, got %d", rec.Code)
	}
}
