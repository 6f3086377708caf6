package app

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches an id or reference.
	ErrNotFound = errors.New("record not found")

	// ErrAmbiguousID is returned when an id prefix matches several records.
	ErrAmbiguousID = errors.New("ambiguous id prefix")

	// ErrEmptyText is returned when a todo text is blank.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyName is returned when a countdown or milestone name is blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyDate is returned when a date is required but blank.
	ErrEmptyDate = errors.New("date cannot be empty")

	// ErrInvalidDate is returned when a date is not a real YYYY-MM-DD day.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidStatus is returned for unknown milestone statuses.
	ErrInvalidStatus = errors.New("invalid status, expected pending, completed or cancelled")
)

// ValidationError reports a rejected field. Nothing is mutated when one is
// returned.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, value string, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}
