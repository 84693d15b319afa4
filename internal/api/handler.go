package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/service"
)

// GenerationHandler handles article generation HTTP requests.
type GenerationHandler struct {
	service *service.GenerationService
	logger  *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(svc *service.GenerationService, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		service: svc,
		logger:  logger,
	}
}

// Generate handles POST /api/v1/generate requests. The request body is a
// GenerationRequest; the loop runs synchronously, so the response carries
// either the finished article or the terminal error.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	resp, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		status := mapErrorToStatusCode(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "generation request failed",
				"error", err,
				"status", status)
		} else {
			h.logger.WarnContext(r.Context(), "generation request rejected",
				"error", err,
				"status", status)
		}

		var verrs domain.ValidationErrors
		errors.As(err, &verrs)
		respondWithError(w, r, status, safeErrorMessage(err), verrs)
		return
	}

	respondWithJSON(w, r, http.StatusOK, resp)
}

// ClearCacheEntry handles POST /api/v1/cache/clear requests, evicting the
// cached result for one request fingerprint.
func (h *GenerationHandler) ClearCacheEntry(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	h.service.ClearCache(&req)
	respondWithJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}

// ClearCache handles DELETE /api/v1/cache requests, sweeping both the
// result and image caches.
func (h *GenerationHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.service.ClearAllCache()
	respondWithJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}

// SetProviderOverride handles PUT /api/v1/providers/{capability} requests,
// pinning a provider for the given capability on this instance.
type providerOverrideRequest struct {
	Provider string `json:"provider"`
}

func (h *GenerationHandler) SetProviderOverride(w http.ResponseWriter, r *http.Request) {
	capability := service.Capability(urlParam(r, "capability"))

	var req providerOverrideRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	if err := h.service.SetProviderOverride(capability, req.Provider); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "Unknown capability", nil)
		return
	}
	respondWithJSON(w, r, http.StatusOK, map[string]string{
		"capability": string(capability),
		"provider":   req.Provider,
	})
}
