// Package config loads and validates bulkhead configuration via viper.
// Values come from, in order of precedence: explicit flags, BULKHEAD_*
// environment variables, the config file, and built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/bulkhead/internal/errors"
	"github.com/Iron-Ham/bulkhead/internal/logging"
)

// Config represents the complete bulkhead configuration
type Config struct {
	Fallback FallbackConfig `mapstructure:"fallback"`
	Retry    RetryConfig    `mapstructure:"retry"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	TUI      TUIConfig      `mapstructure:"tui"`
}

// FallbackConfig controls the substitute view shown for a failed boundary
type FallbackConfig struct {
	// Title is the heading shown above the failure message
	Title string `mapstructure:"title"`
	// Message is the user-facing explanation text
	Message string `mapstructure:"message"`
	// ShowDetail reveals the panic message, provenance, and stack.
	// An explicit setting, not an environment sniff.
	ShowDetail bool `mapstructure:"show_detail"`
}

// RetryConfig controls the optional auto-retry policy
type RetryConfig struct {
	// Auto enables policy-driven retry of transient failures.
	// Manual retry always works regardless of this setting.
	Auto bool `mapstructure:"auto"`
	// MaxAttempts is the auto-retry budget per failure run
	MaxAttempts int `mapstructure:"max_attempts"`
	// DelayMs is the base delay before an auto-retry, in milliseconds
	DelayMs int `mapstructure:"delay_ms"`
	// Backoff doubles the delay for each subsequent attempt
	Backoff bool `mapstructure:"backoff"`
}

// Delay returns the configured base delay as a duration.
func (r RetryConfig) Delay() time.Duration {
	return time.Duration(r.DelayMs) * time.Millisecond
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
}

// TUIConfig controls the demo TUI
type TUIConfig struct {
	// Theme is the color theme ("default" or "mono")
	Theme string `mapstructure:"theme"`
	// TickMs is the demo clock tick interval in milliseconds
	TickMs int `mapstructure:"tick_ms"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Fallback: FallbackConfig{
			Title:      "Something went wrong",
			Message:    "This panel hit an error. The rest of the app is unaffected.",
			ShowDetail: false,
		},
		Retry: RetryConfig{
			Auto:        false,
			MaxAttempts: 3,
			DelayMs:     1000,
			Backoff:     true,
		},
		Logging: LoggingConfig{
			Level: logging.LevelInfo,
			File:  "",
		},
		TUI: TUIConfig{
			Theme:  "default",
			TickMs: 1000,
		},
	}
}

// SetDefaults registers the default values with viper so they apply even
// when no config file exists.
func SetDefaults() {
	d := Default()

	viper.SetDefault("fallback.title", d.Fallback.Title)
	viper.SetDefault("fallback.message", d.Fallback.Message)
	viper.SetDefault("fallback.show_detail", d.Fallback.ShowDetail)

	viper.SetDefault("retry.auto", d.Retry.Auto)
	viper.SetDefault("retry.max_attempts", d.Retry.MaxAttempts)
	viper.SetDefault("retry.delay_ms", d.Retry.DelayMs)
	viper.SetDefault("retry.backoff", d.Retry.Backoff)

	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.file", d.Logging.File)

	viper.SetDefault("tui.theme", d.TUI.Theme)
	viper.SetDefault("tui.tick_ms", d.TUI.TickMs)
}

// Load unmarshals the effective configuration and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Retry.MaxAttempts < 0 {
		return errors.NewConfigError("must be non-negative").
			WithKey("retry.max_attempts").WithValue(c.Retry.MaxAttempts)
	}
	if c.Retry.DelayMs < 0 {
		return errors.NewConfigError("must be non-negative").
			WithKey("retry.delay_ms").WithValue(c.Retry.DelayMs)
	}
	if c.TUI.TickMs <= 0 {
		return errors.NewConfigError("must be positive").
			WithKey("tui.tick_ms").WithValue(c.TUI.TickMs)
	}

	valid := false
	for _, level := range logging.ValidLevels() {
		if strings.EqualFold(c.Logging.Level, level) {
			valid = true
			break
		}
	}
	if !valid {
		return errors.NewConfigError("unknown log level").
			WithKey("logging.level").WithValue(c.Logging.Level)
	}

	if c.TUI.Theme != "default" && c.TUI.Theme != "mono" {
		return errors.NewConfigError("unknown theme").
			WithKey("tui.theme").WithValue(c.TUI.Theme)
	}
	return nil
}

// ConfigDir returns the directory holding the config file.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "bulkhead")
}

// ConfigFile returns the full path of the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
