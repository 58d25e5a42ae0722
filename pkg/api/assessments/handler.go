// Package assessments exposes generation and history queries.
package assessments

import (
	"encoding/json"
	"net/http"

	"finhealth/pkg/api/respond"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/models"
)

var service *pipeline.AssessmentService

// InitHandler wires the shared assessment service.
func InitHandler(svc *pipeline.AssessmentService) {
	service = svc
}

// GenerateRequest identifies the company and the target language.
type GenerateRequest struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Language  string `json:"language"`
}

// HandleGenerate runs a full assessment generation for one company.
func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.CompanyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}

	profile := models.CompanyProfile{
		ID:       req.CompanyID,
		Name:     req.Name,
		Industry: req.Industry,
	}

	assessment, err := service.GenerateAssessment(r.Context(), profile, req.Language)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, assessment)
}

// HandleList returns a company's assessment history, newest first.
func HandleList(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}

	assessments, err := service.AssessmentsFor(r.Context(), companyID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, assessments)
}

// HandleGet returns one assessment by id.
func HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	assessment, err := service.AssessmentByID(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, assessment)
}

// HandleMetrics returns the derived metric history for a company.
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}

	history, err := service.MetricsHistory(r.Context(), companyID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, history)
}
