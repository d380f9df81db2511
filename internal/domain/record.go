package domain

import (
	"errors"
	"time"
)

// Record-specific validation errors
var (
	// ErrRecordTaskIDEmpty is returned when a notification record has no task ID.
	ErrRecordTaskIDEmpty = errors.New("notification record task ID cannot be empty")

	// ErrRecordClosedAtZero is returned when a notification record has no closure time.
	ErrRecordClosedAtZero = errors.New("notification record closed time cannot be zero")
)

// NotificationRecord captures the outcome of the most recent closure of
// a task's notification. A record exists only after at least one
// notification for the task has been closed; it is removed when its
// snooze expires and a fresh decision is requested, by periodic sweep,
// or by a forced override.
type NotificationRecord struct {
	// TaskID is the tracked task, unique within the store.
	TaskID string `json:"task_id"`

	// ClosedAt is when the last notification for this task was closed.
	// The periodic sweep evicts records by this timestamp.
	ClosedAt time.Time `json:"closed_at"`

	// SnoozeUntil is the instant the task becomes eligible to remind
	// again. Nil means the task was marked done and never reshows
	// until forced.
	SnoozeUntil *time.Time `json:"snooze_until,omitempty"`

	// Category is the task's category at closure time, used to pick
	// the reshow interval for manual closes.
	Category Category `json:"category"`

	// AutoReshow is true when the closure was a plain manual close
	// rather than an explicit snooze or done mark.
	AutoReshow bool `json:"auto_reshow"`
}

// Validate checks if the NotificationRecord has valid data.
func (r *NotificationRecord) Validate() error {
	if r.TaskID == "" {
		return ErrRecordTaskIDEmpty
	}
	if r.ClosedAt.IsZero() {
		return ErrRecordClosedAtZero
	}
	return nil
}

// Snoozed reports whether the record is an active snooze at the given
// instant. Done records (nil SnoozeUntil) are never snoozed: they are
// suppressed unconditionally instead.
func (r *NotificationRecord) Snoozed(now time.Time) bool {
	return r.SnoozeUntil != nil && now.Before(*r.SnoozeUntil)
}

// Limits caps how many notifications may be visible at once. Limits are
// immutable for the duration of a poll cycle.
type Limits struct {
	// MaxTotalWindows caps simultaneously visible notifications overall.
	MaxTotalWindows int `json:"max_total_windows"`

	// MaxWindowsPerCategory caps simultaneously visible notifications
	// within a single category.
	MaxWindowsPerCategory int `json:"max_windows_per_category"`
}

// Notification is a display command for the presentation layer.
type Notification struct {
	TaskID   string   `json:"task_id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Category Category `json:"category"`
}
