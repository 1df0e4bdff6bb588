// Package config loads taskmill configuration through viper, merging
// file, environment, and flag sources.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/taskmill/internal/task"
)

// Config represents the complete taskmill configuration.
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Board    BoardConfig    `mapstructure:"board"`
}

// StoreConfig controls where the task snapshot lives.
type StoreConfig struct {
	// Path is the snapshot file. Relative paths resolve against the
	// working directory; ~ expands to the home directory.
	Path string `mapstructure:"path"`
	// LockTimeout bounds how long commands wait for the snapshot's file
	// lock before failing. Zero waits indefinitely.
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

// DefaultsConfig controls values applied when a command omits them.
type DefaultsConfig struct {
	// Priority is assigned to new tasks created without --priority.
	Priority string `mapstructure:"priority"`
	// Subtasks caps how many subtask drafts expand generates when the
	// complexity recommendation is not used.
	Subtasks int `mapstructure:"subtasks"`
}

// LoggingConfig controls debug logging behavior.
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Dir is where log files are written; empty logs to stderr.
	Dir string `mapstructure:"dir"`
}

// BoardConfig controls the interactive board.
type BoardConfig struct {
	// Watch reloads the board when the snapshot file changes on disk.
	Watch bool `mapstructure:"watch"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path:        filepath.Join(".taskmill", "tasks.json"),
			LockTimeout: 5 * time.Second,
		},
		Defaults: DefaultsConfig{
			Priority: string(task.PriorityMedium),
			Subtasks: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
		Board: BoardConfig{
			Watch: true,
		},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("store.path", defaults.Store.Path)
	viper.SetDefault("store.lock_timeout", defaults.Store.LockTimeout)
	viper.SetDefault("defaults.priority", defaults.Defaults.Priority)
	viper.SetDefault("defaults.subtasks", defaults.Defaults.Subtasks)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("board.watch", defaults.Board.Watch)
}

// Load reads the configuration from viper into a Config struct and
// validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// unmarshaling fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ResolveStorePath returns the snapshot path with ~ expanded.
func (c *Config) ResolveStorePath() string {
	path := c.Store.Path
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}
	return path
}

// DefaultPriority returns the configured default priority as a typed
// value, falling back to medium when the configured string is invalid.
func (c *Config) DefaultPriority() task.Priority {
	p := task.Priority(strings.ToLower(c.Defaults.Priority))
	if !p.IsValid() {
		return task.PriorityMedium
	}
	return p
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskmill")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskmill"
	}
	return filepath.Join(home, ".config", "taskmill")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config field path (e.g., "defaults.priority")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all
// validation errors found.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Store.Path) == "" {
		errors = append(errors, ValidationError{
			Field:   "store.path",
			Value:   c.Store.Path,
			Message: "must not be empty",
		})
	}

	if c.Store.LockTimeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "store.lock_timeout",
			Value:   c.Store.LockTimeout,
			Message: "must not be negative",
		})
	}

	if p := task.Priority(strings.ToLower(c.Defaults.Priority)); !p.IsValid() {
		errors = append(errors, ValidationError{
			Field:   "defaults.priority",
			Value:   c.Defaults.Priority,
			Message: "must be one of: high, medium, low",
		})
	}

	if c.Defaults.Subtasks < 1 || c.Defaults.Subtasks > 10 {
		errors = append(errors, ValidationError{
			Field:   "defaults.subtasks",
			Value:   c.Defaults.Subtasks,
			Message: "must be between 1 and 10",
		})
	}

	validLevel := false
	for _, level := range ValidLogLevels() {
		if c.Logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
