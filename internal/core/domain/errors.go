package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap exactly one of these so the transport
// layer can classify them with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrTeacherNotFound = fmt.Errorf("teacher %w", ErrNotFound)

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords.
	ErrInvalidCredentials = fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthorized)

	ErrEmailTaken           = fmt.Errorf("%w: email is already taken", ErrConflict)
	ErrAlreadyParticipating = fmt.Errorf("%w: user already participates in session", ErrConflict)

	// ErrConcurrentUpdate reports a lost compare-and-swap on a versioned
	// aggregate. Callers retry the whole read-modify-write.
	ErrConcurrentUpdate = errors.New("concurrent update")
)

// ValidationError carries a human readable reason and classifies as ErrValidation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
