package service

import (
	"context"
	"log/slog"

	"github.com/lsoft/planfix-reminder/internal/events"
)

// SchedulerEventHandler implements the events.EventHandler interface,
// applying presentation-layer user actions to the scheduler: closures
// advance the per-task state machine, opens are logged for diagnostics.
type SchedulerEventHandler struct {
	scheduler *ReminderScheduler
	logger    *slog.Logger
}

// NewSchedulerEventHandler creates an event handler that feeds user
// actions into the given scheduler.
func NewSchedulerEventHandler(scheduler *ReminderScheduler, logger *slog.Logger) *SchedulerEventHandler {
	return &SchedulerEventHandler{
		scheduler: scheduler,
		logger:    logger.With("component", "scheduler_event_handler"),
	}
}

// HandleEvent processes a notification event. It never returns an
// error for engine-side conditions: scheduler operations are total,
// and a lost UI action must not fail the presentation layer.
func (h *SchedulerEventHandler) HandleEvent(ctx context.Context, event *events.NotificationEvent) error {
	switch event.Type {
	case events.EventNotificationClosed:
		h.scheduler.RegisterClosed(event.TaskID, event.Reason)
	case events.EventTaskOpened:
		h.logger.Info("task opened from notification", "task_id", event.TaskID)
	default:
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
	}
	return nil
}
