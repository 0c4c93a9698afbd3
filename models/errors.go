package models

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded = errors.New("no tables available for this time slot")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
)

// ValidationError names the offending field; errors.Is(err, ErrValidation) holds for it
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
