package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

// EventType identifies the kind of user action an event carries.
type EventType string

// Event types produced by the presentation layer.
const (
	// EventNotificationClosed reports that the user dismissed a
	// notification, with the dismissal reason.
	EventNotificationClosed EventType = "notification.closed"

	// EventTaskOpened reports that the user opened the task from a
	// notification.
	EventTaskOpened EventType = "task.opened"
)

// NotificationEvent is a single user action on a notification.
type NotificationEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Type indicates the user action.
	Type EventType `json:"type"`

	// TaskID is the task whose notification was acted on.
	TaskID string `json:"task_id"`

	// Reason is the dismissal reason; set only for closure events.
	Reason domain.CloseReason `json:"reason,omitempty"`

	// OccurredAt is when the action happened.
	OccurredAt time.Time `json:"occurred_at"`
}

// NewNotificationClosedEvent creates a closure event for the task.
func NewNotificationClosedEvent(taskID string, reason domain.CloseReason) *NotificationEvent {
	return &NotificationEvent{
		ID:         uuid.New(),
		Type:       EventNotificationClosed,
		TaskID:     taskID,
		Reason:     reason,
		OccurredAt: time.Now(),
	}
}

// NewTaskOpenedEvent creates an open event for the task.
func NewTaskOpenedEvent(taskID string) *NotificationEvent {
	return &NotificationEvent{
		ID:         uuid.New(),
		Type:       EventTaskOpened,
		TaskID:     taskID,
		OccurredAt: time.Now(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *NotificationEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// The presentation layer publishes user actions through it without
// direct knowledge of the engine's handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *NotificationEvent) error
}
