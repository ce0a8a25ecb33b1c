package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInvalidType        = errors.New("type must be one of income, expense, investment")
	ErrEmptyCategory      = errors.New("empty category")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyName          = errors.New("empty name")
	ErrInvalidTarget      = errors.New("target must be greater than zero")
	ErrInvalidPeriod      = errors.New("period must be a positive number of days")
	ErrInvalidDate        = errors.New("date cannot be zero")
	ErrFutureDate         = fmt.Errorf("%w or in the future", ErrInvalidDate)
)

// ValidationError reports malformed input for a single field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an operation referencing an unknown id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
