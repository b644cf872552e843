package domain

import (
	"errors"
	"fmt"
)

// Common validation errors
var (
	// ErrValidation is the parent of every field validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is missing or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned for blank question, answer or title text.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidQuality is returned for ratings outside Again..Easy.
	ErrInvalidQuality = errors.New("invalid quality rating")

	// ErrInconsistentSRS is returned when interval, ease factor and repetitions
	// are not all set or all unset.
	ErrInconsistentSRS = errors.New("SRS fields must be all set or all unset")

	// ErrUnauthorized is returned when a user acts on data they do not own.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a failed check on a single field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// NewValidationError builds a ValidationError wrapping err, or ErrValidation when err is nil.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
