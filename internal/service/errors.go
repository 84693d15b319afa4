package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors callers can check with errors.Is().
var (
	// ErrValidationExhausted is returned when generated content still
	// fails validation after the configured maximum regeneration
	// attempts. The wrapped error carries the last attempt's full
	// per-checker violation set.
	ErrValidationExhausted = errors.New("content validation failed after exhausting regeneration attempts")

	// ErrUnknownCapability is returned when a provider override names a
	// capability other than text or image.
	ErrUnknownCapability = errors.New("unknown provider capability")
)

// GenerationError is a custom error type for orchestration failures.
type GenerationError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for GenerationError.
func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("generation %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(operation, message string, err error) *GenerationError {
	return &GenerationError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
