package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/1broseidon/winstate/internal/winstate"
)

// Config is the winstate configuration file.
type Config struct {
	DefaultWidth  int `yaml:"default_width"`
	DefaultHeight int `yaml:"default_height"`
	// Path is the directory holding the state file (default: ~/.local/share/winstate)
	Path string `yaml:"path,omitempty"`
	File string `yaml:"file"`
	// Maximize re-applies a saved maximized state when a window is managed.
	// Default: true
	Maximize *bool `yaml:"maximize,omitempty"`
	// FullScreen re-applies a saved full-screen state when a window is managed.
	// Default: true
	FullScreen *bool  `yaml:"full_screen,omitempty"`
	DebounceMS int    `yaml:"debounce_ms"`
	LogLevel   string `yaml:"log_level"`
	// MetricsAddr serves Prometheus metrics during watch when non-empty.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// ValidationError reports an invalid config value.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func DefaultConfig() *Config {
	return &Config{
		DefaultWidth:  winstate.DefaultWidth,
		DefaultHeight: winstate.DefaultHeight,
		File:          winstate.DefaultFile,
		DebounceMS:    int(winstate.DefaultDebounceDelay / time.Millisecond),
		LogLevel:      "info",
	}
}

func (c *Config) GetMaximize() bool {
	if c.Maximize == nil {
		return true
	}
	return *c.Maximize
}

func (c *Config) GetFullScreen() bool {
	if c.FullScreen == nil {
		return true
	}
	return *c.FullScreen
}

// DebounceDelay returns debounce_ms as a duration.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// StoreOptions converts the config into winstate.Options.
func (c *Config) StoreOptions() winstate.Options {
	return winstate.Options{
		DefaultWidth:  c.DefaultWidth,
		DefaultHeight: c.DefaultHeight,
		Path:          c.Path,
		File:          c.File,
		Maximize:      winstate.Bool(c.GetMaximize()),
		FullScreen:    winstate.Bool(c.GetFullScreen()),
	}
}

// SlogLevel maps log_level onto a slog level. Unknown values read as info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.DefaultWidth <= 0 {
		return &ValidationError{Path: "default_width", Err: fmt.Errorf("default_width must be > 0")}
	}
	if c.DefaultHeight <= 0 {
		return &ValidationError{Path: "default_height", Err: fmt.Errorf("default_height must be > 0")}
	}
	if strings.TrimSpace(c.File) == "" {
		return &ValidationError{Path: "file", Err: fmt.Errorf("file is required")}
	}
	if strings.ContainsRune(c.File, '/') {
		return &ValidationError{Path: "file", Err: fmt.Errorf("file must be a bare file name; use path for the directory")}
	}
	if c.DebounceMS <= 0 {
		return &ValidationError{Path: "debounce_ms", Err: fmt.Errorf("debounce_ms must be > 0")}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	return nil
}
