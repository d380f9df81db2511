package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lsoft/planfix-reminder/internal/domain"
	"github.com/lsoft/planfix-reminder/internal/store"
)

// Default reshow intervals for manually closed notifications, keyed by
// the category recorded at closure time.
var defaultReshowIntervals = map[domain.Category]time.Duration{
	domain.CategoryOverdue: 5 * time.Minute,
	domain.CategoryUrgent:  15 * time.Minute,
	domain.CategoryCurrent: 30 * time.Minute,
}

// Snooze durations for the explicit snooze close reasons.
const (
	snoozeShort = 15 * time.Minute
	snoozeLong  = time.Hour
)

// ReminderScheduler decides whether a task's notification should be
// shown now and advances per-task state as the presentation layer
// reports user actions. All state lives in the store; the scheduler's
// own mutex serializes its composite read-modify-write sequences so a
// concurrent closure callback cannot interleave with a poll-cycle
// decision.
type ReminderScheduler struct {
	mu        sync.Mutex
	store     store.ReminderStore
	logger    *slog.Logger
	intervals map[domain.Category]time.Duration
	now       func() time.Time
}

// NewReminderScheduler creates a scheduler backed by the given store.
func NewReminderScheduler(st store.ReminderStore, logger *slog.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		store:     st,
		logger:    logger.With("component", "reminder_scheduler"),
		intervals: defaultReshowIntervals,
		now:       time.Now,
	}
}

// ShouldShow reports whether a notification for the task should be
// displayed now. Decisions are evaluated against the store state
// current at the moment of the call, so tasks processed earlier in the
// same cycle count against the window limits seen by later ones.
func (s *ReminderScheduler) ShouldShow(taskID string, category domain.Category, limits domain.Limits) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if taskID == "" {
		// Fail open: a task we cannot track is better shown than lost.
		s.logger.Warn("show decision requested without task ID", "category", category)
		return true
	}

	if s.store.CountActive() >= limits.MaxTotalWindows {
		s.logger.Debug("suppressed by total window limit",
			"task_id", taskID,
			"active", s.store.CountActive(),
			"max_total", limits.MaxTotalWindows)
		return false
	}

	if s.store.CountActiveInCategory(category) >= limits.MaxWindowsPerCategory {
		s.logger.Debug("suppressed by category window limit",
			"task_id", taskID,
			"category", category,
			"max_per_category", limits.MaxWindowsPerCategory)
		return false
	}

	if s.store.IsActive(taskID) {
		s.logger.Debug("suppressed: notification already visible", "task_id", taskID)
		return false
	}

	rec, err := s.store.GetRecord(taskID)
	if err != nil {
		// First sighting: nothing recorded, show it.
		return true
	}

	now := s.now()
	switch {
	case rec.Snoozed(now):
		s.logger.Debug("suppressed: still snoozed",
			"task_id", taskID,
			"snooze_until", rec.SnoozeUntil)
		return false
	case rec.SnoozeUntil != nil:
		// Snooze expired: consume the record and show afresh.
		s.store.RemoveRecord(taskID)
		s.logger.Info("snooze expired, reshowing", "task_id", taskID)
		return true
	default:
		// Marked done: never reshow until forced.
		s.logger.Debug("suppressed: task marked done", "task_id", taskID)
		return false
	}
}

// RegisterShown records that a notification was displayed for the
// task. Safe against rapid repeated calls: an existing handle is
// replaced, never duplicated.
func (s *ReminderScheduler) RegisterShown(taskID string, category domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if taskID == "" {
		s.logger.Warn("shown registration without task ID", "category", category)
		return
	}

	h := s.store.AddHandle(taskID, category)
	s.logger.Info("notification shown",
		"task_id", taskID,
		"category", category,
		"handle_id", h.ID,
		"active", s.store.CountActive())
}

// RegisterClosed removes the task's active handle and records the
// closure outcome:
//
//   - snooze_15min / snooze_1hour set a fixed snooze deadline
//   - done suppresses the task until force-shown
//   - manual schedules a reshow after the category's interval
//     (overdue 5m, urgent 15m, current 30m)
//
// Unknown reasons are logged and leave no record beyond the handle
// removal. The category is resolved from the removed handle when
// available, falling back to the previous record, then to current.
func (s *ReminderScheduler) RegisterClosed(taskID string, reason domain.CloseReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if taskID == "" {
		s.logger.Warn("close registration without task ID", "reason", reason)
		return
	}

	category := s.resolveCategory(taskID)

	if _, err := s.store.RemoveHandle(taskID); err != nil {
		s.logger.Warn("no active notification found for closed task", "task_id", taskID)
	}

	now := s.now()
	rec := domain.NotificationRecord{
		TaskID:   taskID,
		ClosedAt: now,
		Category: category,
	}

	switch reason {
	case domain.CloseReasonSnooze15Min:
		until := now.Add(snoozeShort)
		rec.SnoozeUntil = &until
	case domain.CloseReasonSnooze1Hour:
		until := now.Add(snoozeLong)
		rec.SnoozeUntil = &until
	case domain.CloseReasonDone:
		// SnoozeUntil stays nil: sticky suppression.
	case domain.CloseReasonManual:
		interval, ok := s.intervals[category]
		if !ok {
			interval = s.intervals[domain.CategoryCurrent]
		}
		until := now.Add(interval)
		rec.SnoozeUntil = &until
		rec.AutoReshow = true
	default:
		s.logger.Warn("unknown close reason ignored",
			"task_id", taskID,
			"reason", reason)
		return
	}

	s.store.PutRecord(rec)
	s.logger.Info("notification closed",
		"task_id", taskID,
		"reason", reason,
		"category", category,
		"snooze_until", rec.SnoozeUntil)
}

// resolveCategory finds the task's last-seen category: the active
// handle when one exists, the previous record otherwise, current as
// the final fallback.
func (s *ReminderScheduler) resolveCategory(taskID string) domain.Category {
	if h, err := s.store.GetHandle(taskID); err == nil && h.Category.IsValid() {
		return h.Category
	}
	if rec, err := s.store.GetRecord(taskID); err == nil && rec.Category.IsValid() {
		return rec.Category
	}
	return domain.CategoryCurrent
}

// ForceShow unconditionally clears the task's record and any active
// handle so the next ShouldShow returns true regardless of prior
// state. Used by the user-triggered "check now" refresh.
func (s *ReminderScheduler) ForceShow(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.RemoveRecord(taskID)
	if _, err := s.store.RemoveHandle(taskID); err == nil {
		s.logger.Debug("force show dropped active handle", "task_id", taskID)
	}
	s.logger.Info("task cleared for forced show", "task_id", taskID)
}

// Cleanup sweeps notification records older than maxAge and returns
// how many were removed. Active handles are untouched.
func (s *ReminderScheduler) Cleanup(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.store.SweepOlderThan(maxAge)
	if removed > 0 {
		s.logger.Info("cleaned up stale notification records",
			"removed", removed,
			"max_age", maxAge)
	}
	return removed
}

// ClearAll wipes every record and handle. Emergency reset: every task
// becomes eligible for display on the next cycle.
func (s *ReminderScheduler) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Clear()
	s.logger.Warn("all tracking state cleared")
}

// Stats exposes the store's tracking statistics for diagnostics.
func (s *ReminderScheduler) Stats() store.Stats {
	return s.store.Stats()
}
