package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Planfix  PlanfixConfig  `mapstructure:"planfix" validate:"required"`
	Settings SettingsConfig `mapstructure:"settings" validate:"required"`
	Roles    RolesConfig    `mapstructure:"roles"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
}

// PlanfixConfig contains credentials and selection filters for the
// task service.
type PlanfixConfig struct {
	APIToken   string `mapstructure:"api_token" validate:"required"`
	AccountURL string `mapstructure:"account_url" validate:"required,url"`
	UserID     int    `mapstructure:"user_id" validate:"required_without=FilterID,omitempty,gt=0"`
	// FilterID selects a saved server-side filter. When set it takes
	// precedence over the role-based selection.
	FilterID int `mapstructure:"filter_id" validate:"omitempty,gt=0"`
	PageSize int `mapstructure:"page_size" validate:"gt=0,lte=100"`
}

// SettingsConfig contains the reminder engine's behavior settings.
type SettingsConfig struct {
	CheckInterval         time.Duration `mapstructure:"check_interval" validate:"required,min=1s"`
	ErrorBackoff          time.Duration `mapstructure:"error_backoff" validate:"required,min=1s"`
	FetchTimeout          time.Duration `mapstructure:"fetch_timeout" validate:"required,min=1s"`
	MaxTotalWindows       int           `mapstructure:"max_total_windows" validate:"required,gt=0"`
	MaxWindowsPerCategory int           `mapstructure:"max_windows_per_category" validate:"required,gt=0"`
	NotifyOverdue         bool          `mapstructure:"notify_overdue"`
	NotifyUrgent          bool          `mapstructure:"notify_urgent"`
	NotifyCurrent         bool          `mapstructure:"notify_current"`
	// DisplayGap is an optional delay between consecutive displays in
	// one cycle; zero disables it.
	DisplayGap     time.Duration `mapstructure:"display_gap" validate:"min=0"`
	CleanupMaxAge  time.Duration `mapstructure:"cleanup_max_age" validate:"required,min=1m"`
	CleanupEvery   int           `mapstructure:"cleanup_every" validate:"required,gt=0"`
	ClosedStatuses []string      `mapstructure:"closed_statuses"`
	LogLevel       string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// RolesConfig selects which task roles to poll when no saved filter is
// configured. At least one role should be enabled for role-based
// selection to return anything.
type RolesConfig struct {
	IncludeAssignee bool `mapstructure:"include_assignee"`
	IncludeAssigner bool `mapstructure:"include_assigner"`
	IncludeAuditor  bool `mapstructure:"include_auditor"`
}

// ServerConfig contains the diagnostics and control HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,gt=0,lt=65536"`
}
