package api

import (
	"github.com/lsoft/planfix-reminder/internal/store"
	"github.com/lsoft/planfix-reminder/internal/task"
)

// StatusResponse is the full diagnostics payload.
type StatusResponse struct {
	Engine task.Snapshot `json:"engine"`
	Store  store.Stats   `json:"store"`
}

// NotificationActionRequest is the body of a presentation-layer
// callback reporting a user action on a notification.
type NotificationActionRequest struct {
	TaskID string `json:"task_id" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,oneof=manual snooze_15min snooze_1hour done"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a control action.
type MessageResponse struct {
	Message string `json:"message"`
}
