package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

// Handle represents a currently visible notification. At most one
// handle exists per task at any time; registering a new one for the
// same task replaces the old token rather than duplicating it.
type Handle struct {
	ID       uuid.UUID       `json:"id"`
	TaskID   string          `json:"task_id"`
	Category domain.Category `json:"category"`
	ShownAt  time.Time       `json:"shown_at"`
}

// Stats is a point-in-time summary of tracked state, surfaced by the
// diagnostics endpoint.
type Stats struct {
	TrackedRecords      int `json:"tracked_records"`
	ActiveNotifications int `json:"active_notifications"`
	SnoozedTasks        int `json:"snoozed_tasks"`
	DoneTasks           int `json:"done_tasks"`
	AutoReshowTasks     int `json:"auto_reshow_tasks"`
	ExpiredSnoozeTasks  int `json:"expired_snooze_tasks"`
}

// ReminderStore holds and mutates notification records and active
// handles. Implementations must make every operation atomic with
// respect to the others: the polling cycle and the presentation
// layer's closure callbacks access the store concurrently.
type ReminderStore interface {
	// IsActive reports whether a notification is currently visible for
	// the task.
	IsActive(taskID string) bool

	// CountActive returns the number of currently visible notifications.
	CountActive() int

	// CountActiveInCategory returns the number of currently visible
	// notifications in the given category.
	CountActiveInCategory(category domain.Category) int

	// GetRecord returns the notification record for the task, or
	// ErrRecordNotFound.
	GetRecord(taskID string) (domain.NotificationRecord, error)

	// PutRecord stores the record, replacing any existing one for the
	// same task.
	PutRecord(record domain.NotificationRecord)

	// RemoveRecord deletes the task's record. Removing a missing
	// record is a no-op.
	RemoveRecord(taskID string)

	// AddHandle registers a visible notification for the task and
	// returns its handle. An existing handle for the task is replaced.
	AddHandle(taskID string, category domain.Category) Handle

	// GetHandle returns the active handle for the task, or
	// ErrHandleNotFound.
	GetHandle(taskID string) (Handle, error)

	// RemoveHandle deletes the task's active handle and returns it.
	// Returns ErrHandleNotFound when none exists.
	RemoveHandle(taskID string) (Handle, error)

	// SweepOlderThan deletes records whose closure time predates
	// now-maxAge and returns how many were removed. Active handles are
	// untouched.
	SweepOlderThan(maxAge time.Duration) int

	// Stats summarizes tracked state.
	Stats() Stats

	// Clear drops all records and handles. Emergency reset only.
	Clear()
}
