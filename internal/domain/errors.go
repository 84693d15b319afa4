package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of all request validation errors. Every
// specific sentinel below wraps it, so callers can match the category
// with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

// Specific request validation failures.
var (
	// ErrEmptyFocusKeyword is returned when a request has no focus keyword.
	ErrEmptyFocusKeyword = fmt.Errorf("%w: focus keyword cannot be empty", ErrValidation)

	// ErrEmptyContactURL is returned when a request has no contact URL.
	ErrEmptyContactURL = fmt.Errorf("%w: contact URL cannot be empty", ErrValidation)

	// ErrInvalidWordCountRange is returned when the word count bounds are
	// missing or inverted.
	ErrInvalidWordCountRange = fmt.Errorf("%w: word count minimum must be positive and below the maximum", ErrValidation)

	// ErrInvalidSearchIntent is returned when a search intent tag is not valid.
	ErrInvalidSearchIntent = fmt.Errorf("%w: invalid search intent", ErrValidation)

	// ErrInvalidContentType is returned when a content type tag is not valid.
	ErrInvalidContentType = fmt.Errorf("%w: invalid content type", ErrValidation)

	// ErrEmptyAuthorName is returned when the author persona has no name.
	ErrEmptyAuthorName = fmt.Errorf("%w: author name cannot be empty", ErrValidation)
)
