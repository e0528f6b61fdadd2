package domain

import "errors"

// Error kinds the service layer wraps with %w. Handlers and the fiber
// ErrorHandler distinguish failures with errors.Is, never by message.
var (
	ErrValidation  = errors.New("validation failed")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("service unavailable")
)
