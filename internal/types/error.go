package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update or lookup target is missing.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable marks a degraded read: the backend failed or held unparseable data.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrConflict is returned when an optimistic write lost against a concurrent writer too many times.
	ErrConflict = errors.New("E_VERSION - concurrent modification")
)

// CustomError carries an HTTP status out of middleware to the error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Unavailable wraps a backend failure so callers can match ErrUnavailable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
