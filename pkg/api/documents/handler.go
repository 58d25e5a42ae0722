// Package documents exposes the upload-facing contract surface.
package documents

import (
	"encoding/json"
	"io"
	"net/http"

	"finhealth/pkg/api/respond"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/models"
)

// maxUploadBytes bounds a single document upload.
const maxUploadBytes = 20 << 20 // 20 MiB

var service *pipeline.AssessmentService

// InitHandler wires the shared assessment service.
func InitHandler(svc *pipeline.AssessmentService) {
	service = svc
}

// UploadResponse summarizes a successful normalization.
type UploadResponse struct {
	DocumentID  string `json:"document_id"`
	CompanyID   string `json:"company_id"`
	LineItems   int    `json:"line_items"`
	SkippedRows int    `json:"skipped_rows"`
	TotalRows   int    `json:"total_rows"`
}

// HandleUpload accepts a multipart upload: company_id, declared_type, file.
func HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	companyID := r.FormValue("company_id")
	if companyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}
	declaredType := models.DocumentType(r.FormValue("declared_type"))

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "could not read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	st, err := service.IngestDocument(r.Context(), companyID, fileBytes, declaredType)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, UploadResponse{
		DocumentID:  st.DocumentID,
		CompanyID:   st.CompanyID,
		LineItems:   len(st.Items),
		SkippedRows: st.SkippedRows,
		TotalRows:   st.TotalRows,
	})
}

// HandleDelete removes a stored document's statement.
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		DocumentID string `json:"document_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DocumentID == "" {
		http.Error(w, "document_id is required", http.StatusBadRequest)
		return
	}

	if err := service.DeleteDocument(r.Context(), req.DocumentID); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"deleted": req.DocumentID})
}
