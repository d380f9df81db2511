package service

import (
	"context"
	"log/slog"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

// LogNotifier is a presentation adapter that renders notifications as
// structured log entries. It stands in wherever no graphical frontend
// is attached: desktop frontends consume the same log stream or wrap
// the engine with their own adapter.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// Display renders one notification.
func (n *LogNotifier) Display(ctx context.Context, notification domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.Info("notification",
		"task_id", notification.TaskID,
		"category", notification.Category,
		"title", notification.Title,
		"body", notification.Body)
	return nil
}
