package api

import (
	"errors"
	"net/http"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/service"
)

// mapErrorToStatusCode maps service errors to HTTP status codes so that
// internal error types never leak to clients.
func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrValidationExhausted):
		return http.StatusUnprocessableEntity

	case errors.Is(err, generation.ErrProviderExhausted):
		return http.StatusBadGateway

	case errors.Is(err, generation.ErrNoProvider):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// safeErrorMessage returns a client-facing message for the error.
func safeErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Invalid generation request: " + err.Error()

	case errors.Is(err, service.ErrValidationExhausted):
		return "Generated content failed validation after all attempts"

	case errors.Is(err, generation.ErrProviderExhausted):
		return "Content provider failed after all retries"

	case errors.Is(err, generation.ErrNoProvider):
		return "No content provider is currently available"

	default:
		return "An unexpected error occurred"
	}
}
