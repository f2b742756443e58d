package booking

import "fmt"

// ConflictError signals that a selected slot was taken between preview and
// confirmation. The session stays on slot selection and the user may retry.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

// ValidationError marks a shop's booking data as unusable (e.g. a service
// duration that does not fit the slot grid). Booking is disabled rather
// than producing wrong slots.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// SessionNotFoundError is returned when a session has expired or never existed.
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("booking session %s not found or expired", e.SessionID)
}
