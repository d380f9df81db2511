package task

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lsoft/planfix-reminder/internal/domain"
	"github.com/lsoft/planfix-reminder/internal/domain/classify"
	"github.com/lsoft/planfix-reminder/internal/store"
)

// TaskSource fetches the current task set from the upstream service.
type TaskSource interface {
	FetchTasks(ctx context.Context) ([]domain.Task, error)
}

// Notifier displays a notification to the user. Implementations must
// return quickly; anything long-running belongs on the notifier's own
// loop.
type Notifier interface {
	Display(ctx context.Context, n domain.Notification) error
}

// Scheduler is the decision engine the coordinator consults before
// displaying anything.
type Scheduler interface {
	ShouldShow(taskID string, category domain.Category, limits domain.Limits) bool
	RegisterShown(taskID string, category domain.Category)
	ForceShow(taskID string)
	Cleanup(maxAge time.Duration) int
	Stats() store.Stats
}

// State describes what the coordinator's loop is currently doing.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateStopped State = "stopped"
)

// CoordinatorConfig holds the poll loop's settings.
type CoordinatorConfig struct {
	// PollInterval is the delay between successful poll cycles.
	PollInterval time.Duration

	// ErrorBackoff is the delay after a failed cycle.
	ErrorBackoff time.Duration

	// PauseTick is how often a paused loop re-checks its deadline.
	PauseTick time.Duration

	// FetchTimeout bounds a single source fetch.
	FetchTimeout time.Duration

	// CleanupEvery is the number of cycles between record sweeps.
	CleanupEvery int

	// CleanupMaxAge is the record age threshold passed to the sweep.
	CleanupMaxAge time.Duration

	// ClosedStatuses lists task statuses treated as closed and dropped
	// before classification.
	ClosedStatuses []string

	// Enabled switches notification display per category.
	Enabled map[domain.Category]bool

	// Limits caps concurrently visible notifications.
	Limits domain.Limits

	// DisplayGap is an optional delay between consecutive displays
	// within one cycle. Zero disables it.
	DisplayGap time.Duration
}

// DefaultCoordinatorConfig returns a CoordinatorConfig with reasonable defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		PollInterval:   3 * time.Minute,
		ErrorBackoff:   30 * time.Second,
		PauseTick:      time.Minute,
		FetchTimeout:   30 * time.Second,
		CleanupEvery:   10,
		CleanupMaxAge:  24 * time.Hour,
		ClosedStatuses: []string{"Completed", "Cancelled", "Closed", "Finished"},
		Enabled: map[domain.Category]bool{
			domain.CategoryOverdue: true,
			domain.CategoryUrgent:  true,
			domain.CategoryCurrent: true,
		},
		Limits: domain.Limits{MaxTotalWindows: 5, MaxWindowsPerCategory: 2},
	}
}

// Snapshot is a point-in-time view of the coordinator for diagnostics.
type Snapshot struct {
	State       State                   `json:"state"`
	PausedUntil *time.Time              `json:"paused_until,omitempty"`
	LastPoll    *time.Time              `json:"last_poll,omitempty"`
	LastError   string                  `json:"last_error,omitempty"`
	TotalTasks  int                     `json:"total_tasks"`
	Counts      map[domain.Category]int `json:"counts"`
}

// Coordinator drives the poll cycle. All mutable state is guarded by
// its mutex; the loop itself runs on the goroutine that calls Run.
type Coordinator struct {
	source    TaskSource
	notifier  Notifier
	scheduler Scheduler
	config    CoordinatorConfig
	logger    *slog.Logger

	mu          sync.Mutex
	state       State
	pausedUntil time.Time
	lastPoll    time.Time
	lastError   string
	totalTasks  int
	counts      map[domain.Category]int
	closedSet   map[string]struct{}

	now func() time.Time
}

// NewCoordinator creates a coordinator. Zero config fields are filled
// from DefaultCoordinatorConfig.
func NewCoordinator(source TaskSource, notifier Notifier, scheduler Scheduler, config CoordinatorConfig, logger *slog.Logger) *Coordinator {
	defaults := DefaultCoordinatorConfig()
	if config.PollInterval == 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.ErrorBackoff == 0 {
		config.ErrorBackoff = defaults.ErrorBackoff
	}
	if config.PauseTick == 0 {
		config.PauseTick = defaults.PauseTick
	}
	if config.FetchTimeout == 0 {
		config.FetchTimeout = defaults.FetchTimeout
	}
	if config.CleanupEvery == 0 {
		config.CleanupEvery = defaults.CleanupEvery
	}
	if config.CleanupMaxAge == 0 {
		config.CleanupMaxAge = defaults.CleanupMaxAge
	}
	if config.ClosedStatuses == nil {
		config.ClosedStatuses = defaults.ClosedStatuses
	}
	if config.Enabled == nil {
		config.Enabled = defaults.Enabled
	}
	if config.Limits == (domain.Limits{}) {
		config.Limits = defaults.Limits
	}

	closedSet := make(map[string]struct{}, len(config.ClosedStatuses))
	for _, s := range config.ClosedStatuses {
		closedSet[s] = struct{}{}
	}

	return &Coordinator{
		source:    source,
		notifier:  notifier,
		scheduler: scheduler,
		config:    config,
		logger:    logger.With("component", "poll_coordinator"),
		state:     StateIdle,
		counts:    make(map[domain.Category]int),
		closedSet: closedSet,
		now:       time.Now,
	}
}

// Run executes the poll loop until the context is canceled. It always
// returns nil: cancellation is the loop's normal way to stop.
func (c *Coordinator) Run(ctx context.Context) error {
	// A pause requested before the loop starts is honored.
	c.mu.Lock()
	if c.state != StatePaused {
		c.state = StateRunning
	}
	c.mu.Unlock()
	defer c.setState(StateStopped)

	c.logger.Info("poll loop started",
		"poll_interval", c.config.PollInterval,
		"error_backoff", c.config.ErrorBackoff)

	cycles := 0
	for {
		if ctx.Err() != nil {
			c.logger.Info("poll loop stopping")
			return nil
		}

		if c.stillPaused() {
			if !c.sleep(ctx, c.config.PauseTick) {
				return nil
			}
			continue
		}

		cycles++
		if cycles%c.config.CleanupEvery == 0 {
			c.scheduler.Cleanup(c.config.CleanupMaxAge)
		}

		delay := c.config.PollInterval
		if err := c.poll(ctx); err != nil {
			delay = c.config.ErrorBackoff
			c.logger.Error("poll cycle failed",
				"error", err,
				"retry_in", delay)
		}

		if !c.sleep(ctx, delay) {
			return nil
		}
	}
}

// poll runs one fetch-classify-display cycle.
func (c *Coordinator) poll(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, c.config.FetchTimeout)
	tasks, err := c.source.FetchTasks(fetchCtx)
	cancel()
	if err != nil {
		c.recordError(err)
		return err
	}

	active := c.dropClosed(tasks)
	groups := classify.Group(active, c.now())
	c.recordPoll(len(active), groups)

	shown := 0
	for _, category := range domain.Categories {
		if !c.config.Enabled[category] {
			continue
		}
		for _, t := range groups[category] {
			if ctx.Err() != nil {
				return nil
			}
			if !c.scheduler.ShouldShow(t.ID, category, c.config.Limits) {
				continue
			}
			if !c.display(ctx, t, category) {
				continue
			}
			shown++
			if c.config.DisplayGap > 0 && !c.sleep(ctx, c.config.DisplayGap) {
				return nil
			}
		}
	}

	c.logger.Info("poll cycle complete",
		"tasks", len(active),
		"shown", shown)
	return nil
}

// CheckNow runs one immediate cycle that bypasses the scheduler's
// suppression: every enabled task is cleared with ForceShow and
// displayed again. Used by the user-triggered refresh.
func (c *Coordinator) CheckNow(ctx context.Context) error {
	c.logger.Info("forced check requested")

	fetchCtx, cancel := context.WithTimeout(ctx, c.config.FetchTimeout)
	tasks, err := c.source.FetchTasks(fetchCtx)
	cancel()
	if err != nil {
		c.recordError(err)
		return err
	}

	active := c.dropClosed(tasks)
	groups := classify.Group(active, c.now())
	c.recordPoll(len(active), groups)

	shown := 0
	for _, category := range domain.Categories {
		if !c.config.Enabled[category] {
			continue
		}
		for _, t := range groups[category] {
			if ctx.Err() != nil {
				return nil
			}
			c.scheduler.ForceShow(t.ID)
			if !c.display(ctx, t, category) {
				continue
			}
			shown++
			if c.config.DisplayGap > 0 && !c.sleep(ctx, c.config.DisplayGap/2) {
				return nil
			}
		}
	}

	c.logger.Info("forced check complete", "shown", shown)
	return nil
}

// display hands one notification to the notifier and registers the
// display on success.
func (c *Coordinator) display(ctx context.Context, t domain.Task, category domain.Category) bool {
	title, body := classify.Summarize(t, category)
	n := domain.Notification{
		TaskID:   t.ID,
		Title:    title,
		Body:     body,
		Category: category,
	}
	if err := c.notifier.Display(ctx, n); err != nil {
		c.logger.Warn("failed to display notification",
			"task_id", t.ID,
			"category", category,
			"error", err)
		return false
	}
	c.scheduler.RegisterShown(t.ID, category)
	return true
}

// Pause suspends polling for the given duration. The loop resumes on
// its own once the deadline passes.
func (c *Coordinator) Pause(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pausedUntil = c.now().Add(d)
	c.state = StatePaused
	c.logger.Info("polling paused", "until", c.pausedUntil)
}

// Resume lifts a pause immediately.
func (c *Coordinator) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePaused {
		return
	}
	c.pausedUntil = time.Time{}
	c.state = StateRunning
	c.logger.Info("polling resumed")
}

// Status returns a snapshot of the coordinator's state for diagnostics.
func (c *Coordinator) Status() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:      c.state,
		LastError:  c.lastError,
		TotalTasks: c.totalTasks,
		Counts:     make(map[domain.Category]int, len(c.counts)),
	}
	for k, v := range c.counts {
		snap.Counts[k] = v
	}
	if !c.pausedUntil.IsZero() {
		until := c.pausedUntil
		snap.PausedUntil = &until
	}
	if !c.lastPoll.IsZero() {
		last := c.lastPoll
		snap.LastPoll = &last
	}
	return snap
}

// stillPaused reports whether the loop should keep waiting, resuming
// automatically when the pause deadline has passed.
func (c *Coordinator) stillPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePaused {
		return false
	}
	if !c.pausedUntil.IsZero() && !c.now().Before(c.pausedUntil) {
		c.pausedUntil = time.Time{}
		c.state = StateRunning
		c.logger.Info("pause expired, polling resumed")
		return false
	}
	return true
}

// dropClosed filters out tasks whose status marks them closed.
func (c *Coordinator) dropClosed(tasks []domain.Task) []domain.Task {
	active := make([]domain.Task, 0, len(tasks))
	dropped := 0
	for _, t := range tasks {
		if _, closed := c.closedSet[t.Status]; closed {
			dropped++
			continue
		}
		active = append(active, t)
	}
	if dropped > 0 {
		c.logger.Debug("dropped closed tasks", "count", dropped)
	}
	return active
}

func (c *Coordinator) recordPoll(total int, groups map[domain.Category][]domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastPoll = c.now()
	c.lastError = ""
	c.totalTasks = total
	for _, category := range domain.Categories {
		c.counts[category] = len(groups[category])
	}
}

func (c *Coordinator) recordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = err.Error()
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// sleep waits for d or until the context is canceled, reporting false
// on cancellation.
func (c *Coordinator) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
