// Package main implements the entry point for the Planfix reminder
// engine: it polls the task service, decides which reminders to
// surface, and exposes an HTTP surface for diagnostics, runtime
// control and presentation callbacks.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lsoft/planfix-reminder/internal/api"
	"github.com/lsoft/planfix-reminder/internal/config"
	"github.com/lsoft/planfix-reminder/internal/domain"
	"github.com/lsoft/planfix-reminder/internal/events"
	"github.com/lsoft/planfix-reminder/internal/platform/logger"
	"github.com/lsoft/planfix-reminder/internal/platform/planfix"
	"github.com/lsoft/planfix-reminder/internal/service"
	"github.com/lsoft/planfix-reminder/internal/store"
	"github.com/lsoft/planfix-reminder/internal/task"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("reminder engine failed: %v", err)
	}
}

// run wires the application together and blocks until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Settings.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"account", cfg.Planfix.AccountURL,
		"filter_id", cfg.Planfix.FilterID,
		"check_interval", cfg.Settings.CheckInterval,
		"port", cfg.Server.Port,
		"log_level", cfg.Settings.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := planfix.NewClient(cfg.Planfix, cfg.Roles, appLogger)
	if err := client.TestConnection(ctx); err != nil {
		return fmt.Errorf("task source unreachable: %w", err)
	}

	reminderStore := store.NewMemoryStore()
	scheduler := service.NewReminderScheduler(reminderStore, appLogger)

	emitter := events.NewInMemoryEventEmitter(appLogger)
	emitter.RegisterHandler(service.NewSchedulerEventHandler(scheduler, appLogger))

	notifier := service.NewLogNotifier(appLogger)

	coordinator := task.NewCoordinator(client, notifier, scheduler, task.CoordinatorConfig{
		PollInterval:   cfg.Settings.CheckInterval,
		ErrorBackoff:   cfg.Settings.ErrorBackoff,
		FetchTimeout:   cfg.Settings.FetchTimeout,
		CleanupEvery:   cfg.Settings.CleanupEvery,
		CleanupMaxAge:  cfg.Settings.CleanupMaxAge,
		ClosedStatuses: cfg.Settings.ClosedStatuses,
		Enabled: map[domain.Category]bool{
			domain.CategoryOverdue: cfg.Settings.NotifyOverdue,
			domain.CategoryUrgent:  cfg.Settings.NotifyUrgent,
			domain.CategoryCurrent: cfg.Settings.NotifyCurrent,
		},
		Limits: domain.Limits{
			MaxTotalWindows:       cfg.Settings.MaxTotalWindows,
			MaxWindowsPerCategory: cfg.Settings.MaxWindowsPerCategory,
		},
		DisplayGap: cfg.Settings.DisplayGap,
	}, appLogger)

	handler := api.NewHandler(coordinator, scheduler, emitter, appLogger)
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = coordinator.Run(ctx)
	}()

	select {
	case err := <-serverErr:
		stop()
		<-loopDone
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		appLogger.Info("shutdown signal received")
	}

	<-loopDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
		return err
	}

	appLogger.Info("shutdown complete")
	return nil
}
