package model

import "errors"

// Error taxonomy shared by services and handlers. Wrap these with fmt.Errorf
// and %w so callers can classify with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid status")
	ErrInvalidSignature = errors.New("payment signature mismatch")
	ErrConflict         = errors.New("conflict")
	ErrTransient        = errors.New("temporary failure, please retry")
	// ErrNotification never reaches an API caller; the dispatcher logs and drops it.
	ErrNotification = errors.New("notification failed")
)
