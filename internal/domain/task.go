package domain

import (
	"fmt"
	"time"
)

// TaskStatus is the lifecycle state of a task. The set of members is closed.
type TaskStatus string

const (
	StatusCreated    TaskStatus = "CREATED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusFinished   TaskStatus = "FINISHED"
)

// Statuses lists every valid TaskStatus.
var Statuses = []TaskStatus{StatusCreated, StatusInProgress, StatusFinished}

// ParseTaskStatus returns the status with the given member name.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

func (s TaskStatus) Valid() bool {
	_, err := ParseTaskStatus(string(s))
	return err == nil
}

func (s TaskStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown task status %q", string(s))
	}
	return []byte(s), nil
}

func (s *TaskStatus) UnmarshalText(b []byte) error {
	st, err := ParseTaskStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Task is the persisted to-do item. ID is assigned by the store on first save.
// Не зависит от Gin, Mongo, Postgres, Redis.
type Task struct {
	ID           string
	Title        *string
	Description  *string
	CreationDate *time.Time
	TaskStatus   *TaskStatus
}
