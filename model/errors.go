package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid matches every *ValidationError via errors.Is.
	ErrInvalid = errors.New("invalid value")

	// ErrImmutable is returned when assigning an attribute that may only be
	// set once.
	ErrImmutable = errors.New("attribute cannot be modified once set")
)

// ValidationError reports an attribute that failed its type, length or
// emptiness constraint.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalid) match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
