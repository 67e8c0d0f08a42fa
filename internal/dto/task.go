package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"
)

// Timestamp parses creationDate from JSON as RFC3339 or as a zone-less local
// date-time ("2006-01-02T15:04:05", optional fraction). Zone-less values are
// read in the server's local zone.
type Timestamp struct{ time.Time }

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("creationDate: %w", err)
	}
	s := strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range localLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("creationDate: use RFC3339 or 2006-01-02T15:04:05, got %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Ptr returns *time.Time for use in service/domain. Nil-safe.
func (t *Timestamp) Ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// NewTimestamp wraps tm; nil stays nil.
func NewTimestamp(tm *time.Time) *Timestamp {
	if tm == nil {
		return nil
	}
	return &Timestamp{Time: *tm}
}

// TaskDto is the wire form of a task. ID is read-only for callers: it is
// ignored on create and taken from the path on update.
type TaskDto struct {
	ID           string          `json:"id,omitempty"`
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	CreationDate *Timestamp      `json:"creationDate"`
	TaskStatus   *dom.TaskStatus `json:"taskStatus"`
}
