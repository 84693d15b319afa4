package generation

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the generation package
var (
	// ErrNoProvider is returned when neither the selected provider nor any
	// fallback is registered and available.
	ErrNoProvider = errors.New("no provider available")

	// ErrProviderExhausted is returned when a provider call still fails
	// after the configured maximum retry attempts.
	ErrProviderExhausted = errors.New("provider retry attempts exhausted")

	// ErrMalformedOutput is returned when provider output does not contain
	// the expected structured document.
	ErrMalformedOutput = errors.New("malformed provider output")

	// ErrInvalidConfig is returned when a provider configuration is invalid.
	ErrInvalidConfig = errors.New("invalid provider configuration")
)

// ErrorKind classifies a provider failure for retry decisions.
type ErrorKind string

// Provider failure classes
const (
	// KindAuth marks authentication failures. Never retried.
	KindAuth ErrorKind = "authentication"

	// KindRateLimited marks rate-limit rejections. Retried with backoff,
	// honoring a provider-suggested retry-after hint when present.
	KindRateLimited ErrorKind = "rate_limited"

	// KindUnavailable marks timeouts and transient upstream failures.
	// Retried with backoff.
	KindUnavailable ErrorKind = "unavailable"

	// KindClient marks malformed-request rejections. Never retried.
	KindClient ErrorKind = "client_error"
)

// ProviderError wraps a failure from a concrete provider with the
// classification the retrying invoker dispatches on.
type ProviderError struct {
	// Provider is the registry name of the provider that failed.
	Provider string

	// Kind is the failure class.
	Kind ErrorKind

	// RetryAfter is an optional provider-suggested delay before the next
	// attempt; only meaningful for KindRateLimited.
	RetryAfter time.Duration

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Kind)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure class permits another attempt.
func (e *ProviderError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindUnavailable
}

// NewProviderError builds a classified provider failure.
func NewProviderError(provider string, kind ErrorKind, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}
