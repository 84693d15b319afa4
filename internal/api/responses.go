package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the standard error body. ValidationErrors is populated
// only when the request exhausted its regeneration budget, so callers can
// see which checkers kept rejecting the content.
type ErrorResponse struct {
	Error            string                  `json:"error"`
	RequestID        string                  `json:"request_id,omitempty"`
	ValidationErrors domain.ValidationErrors `json:"validation_errors,omitempty"`
}

// respondWithJSON writes data as a JSON body with the given status.
func respondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode JSON response", "error", err)
	}
}

// respondWithError writes a sanitized error body, carrying the chi request
// ID for log correlation.
func respondWithError(w http.ResponseWriter, r *http.Request, status int, message string, verrs domain.ValidationErrors) {
	respondWithJSON(w, r, status, ErrorResponse{
		Error:            message,
		RequestID:        middleware.GetReqID(r.Context()),
		ValidationErrors: verrs,
	})
}
