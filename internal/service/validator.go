package service

import (
	"time"
	"unicode/utf8"

	"github.com/boygear/toDoListWithWebFlux/internal/dto"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// Validator checks task bodies before they reach storage.
type Validator struct {
	now func() time.Time
}

// NewValidator returns a Validator reading the clock from now; nil means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

// Validate returns the first failing rule as a *ValidationError, checked in
// order: title, description, creationDate, taskStatus. Lengths count characters.
func (v *Validator) Validate(t dto.TaskDto) error {
	if t.Title == nil || *t.Title == "" {
		return &ValidationError{Field: "title", Reason: ReasonEmpty, Message: "Title cannot be empty"}
	}
	if utf8.RuneCountInString(*t.Title) > MaxTitleLen {
		return &ValidationError{Field: "title", Reason: ReasonTooLong, Message: "Title cannot exceed 100 characters"}
	}
	if t.Description != nil && utf8.RuneCountInString(*t.Description) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Reason: ReasonTooLong, Message: "Description cannot exceed 500 characters"}
	}
	if t.CreationDate == nil {
		return &ValidationError{Field: "creationDate", Reason: ReasonMissing, Message: "Creation date is required"}
	}
	if t.CreationDate.After(v.now()) {
		return &ValidationError{Field: "creationDate", Reason: ReasonFuture, Message: "Creation date cannot be in the future"}
	}
	if t.TaskStatus == nil {
		return &ValidationError{Field: "taskStatus", Reason: ReasonMissing, Message: "Task status is required"}
	}
	return nil
}
