// Package common defines shared constants, sentinel errors and small helpers
// used across travelboard components. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrEmailInUse = errors.New("email already in use")

	// Service-level errors (generic/internal flow control).
	ErrorInternal       = errors.New("internal error")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Validation errors.
	ErrValidation = errors.New("validation error")

	// Credential errors.
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidEmailDomain   = errors.New("invalid email domain")
	ErrRegistrationDisabled = errors.New("registration disabled")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Media errors.
	ErrUploadFailed  = errors.New("upload failed")
	ErrEmptyMedia    = errors.New("empty media")
	ErrMediaDisabled = errors.New("media upload is not configured")

	ErrConfig      = errors.New("configuration error")
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError is a shorthand for &ValidationError{...}.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
