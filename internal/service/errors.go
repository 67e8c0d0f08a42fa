package service

import "errors"

var (
	ErrMissingID = errors.New("ID cannot be empty")
	ErrNotFound  = errors.New("Task do not exist")
)

// Reason classifies a validation failure.
type Reason string

const (
	ReasonEmpty   Reason = "empty"
	ReasonTooLong Reason = "too long"
	ReasonMissing Reason = "missing"
	ReasonFuture  Reason = "future"
)

// ValidationError reports the first invalid field of a task.
type ValidationError struct {
	Field   string
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
