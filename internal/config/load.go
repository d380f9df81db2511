package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// A missing config file is fine: environment variables and defaults
	// can carry the whole configuration.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("REMINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so
	// bind every key the Config struct defines.
	for _, key := range []string{
		"planfix.api_token",
		"planfix.account_url",
		"planfix.user_id",
		"planfix.filter_id",
		"planfix.page_size",
		"settings.check_interval",
		"settings.error_backoff",
		"settings.fetch_timeout",
		"settings.max_total_windows",
		"settings.max_windows_per_category",
		"settings.notify_overdue",
		"settings.notify_urgent",
		"settings.notify_current",
		"settings.display_gap",
		"settings.cleanup_max_age",
		"settings.cleanup_every",
		"settings.closed_statuses",
		"settings.log_level",
		"roles.include_assignee",
		"roles.include_assigner",
		"roles.include_auditor",
		"server.port",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the defaults for every optional setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("planfix.page_size", 100)

	v.SetDefault("settings.check_interval", "3m")
	v.SetDefault("settings.error_backoff", "30s")
	v.SetDefault("settings.fetch_timeout", "30s")
	v.SetDefault("settings.max_total_windows", 5)
	v.SetDefault("settings.max_windows_per_category", 2)
	v.SetDefault("settings.notify_overdue", true)
	v.SetDefault("settings.notify_urgent", true)
	v.SetDefault("settings.notify_current", true)
	v.SetDefault("settings.display_gap", "0s")
	v.SetDefault("settings.cleanup_max_age", "24h")
	v.SetDefault("settings.cleanup_every", 10)
	v.SetDefault("settings.closed_statuses", []string{"Completed", "Cancelled", "Closed", "Finished"})
	v.SetDefault("settings.log_level", "info")

	v.SetDefault("roles.include_assignee", true)
	v.SetDefault("roles.include_assigner", false)
	v.SetDefault("roles.include_auditor", false)

	v.SetDefault("server.port", 8722)
}
