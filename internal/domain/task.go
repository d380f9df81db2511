package domain

import "errors"

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")
)

// Task represents a unit of work as delivered by the task source.
// The engine never mutates tasks; they are re-fetched on every poll.
type Task struct {
	// ID is the source-assigned identifier, stable across polls.
	ID string `json:"id"`

	// Name is the task's display name.
	Name string `json:"name"`

	// Status is the free-text status name reported by the source.
	// Tasks whose status is in the configured closed set are dropped
	// before classification.
	Status string `json:"status"`

	// Overdue is the source's authoritative overdue flag. When set,
	// classification skips due-date inspection entirely.
	Overdue bool `json:"overdue"`

	// Due is the raw due-date string as extracted from the source
	// payload. It may arrive in several encodings (ISO datetime,
	// DD-MM-YYYY, YYYY-MM-DD, DD.MM.YYYY, 2- or 4-digit years) or be
	// empty when the task has no due date.
	Due string `json:"due,omitempty"`

	// Assignees holds the display names of the task's assignees.
	Assignees []string `json:"assignees,omitempty"`
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrTaskIDEmpty
	}
	return nil
}
