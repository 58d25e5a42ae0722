// Package respond writes JSON responses and maps fault kinds onto HTTP
// status codes for the contract surface.
package respond

import (
	"encoding/json"
	"net/http"

	"finhealth/pkg/models"
)

// errorBody is the wire shape of every surfaced error: a stable kind plus a
// human-readable detail. No error kind is silently swallowed.
type errorBody struct {
	ErrorKind string `json:"error_kind"`
	Detail    string `json:"detail"`
}

// JSON writes a JSON payload with the given status.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error maps the error's fault kind to a status code and writes the error
// body. Errors without a fault kind surface as internal errors.
func Error(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	status := statusFor(kind)
	if kind == "" {
		kind = "Internal"
	}
	JSON(w, status, errorBody{
		ErrorKind: string(kind),
		Detail:    err.Error(),
	})
}

func statusFor(kind models.FaultKind) int {
	switch kind {
	case models.FaultUnsupportedFormat, models.FaultMalformedInput, models.FaultLowQualityInput:
		return http.StatusBadRequest
	case models.FaultInsufficientData:
		return http.StatusUnprocessableEntity
	case models.FaultDuplicateInFlight:
		return http.StatusConflict
	case models.FaultGenerationFailed, models.FaultSchemaViolation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
