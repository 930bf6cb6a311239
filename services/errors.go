package services

import "errors"

// Business-rule failures surfaced to callers as distinct 4xx responses.
// Anything else coming out of the service is an infrastructure failure and
// maps to a generic 500.
var (
	ErrProfileNotFound        = errors.New("service provider profile not found")
	ErrRequestNotFound        = errors.New("approval request not found")
	ErrDuplicateRequest       = errors.New("a pending approval request already exists for this category")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrAccessDenied           = errors.New("access denied")
)

// ValidationError reports a missing or malformed field in a caller payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
