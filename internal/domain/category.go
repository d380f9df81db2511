package domain

// Category is the urgency bucket assigned to a task by classification.
type Category string

// Possible category values, from most to least urgent.
const (
	CategoryOverdue Category = "overdue"
	CategoryUrgent  Category = "urgent"
	CategoryCurrent Category = "current"
)

// Categories lists all categories in display order. Notifications are
// issued overdue-first within a poll cycle.
var Categories = []Category{CategoryOverdue, CategoryUrgent, CategoryCurrent}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryOverdue, CategoryUrgent, CategoryCurrent:
		return true
	}
	return false
}

// CloseReason describes how the user dismissed a notification.
type CloseReason string

// Close reasons reported by the presentation layer.
const (
	// CloseReasonManual is a plain window close; the task reminds again
	// after its category's reshow interval.
	CloseReasonManual CloseReason = "manual"

	// CloseReasonSnooze15Min suppresses the task for 15 minutes.
	CloseReasonSnooze15Min CloseReason = "snooze_15min"

	// CloseReasonSnooze1Hour suppresses the task for one hour.
	CloseReasonSnooze1Hour CloseReason = "snooze_1hour"

	// CloseReasonDone marks the task as handled; it never reminds again
	// unless force-shown.
	CloseReasonDone CloseReason = "done"
)
