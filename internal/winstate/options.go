package winstate

import (
	"io"
	"log/slog"
	"time"
)

// Defaults applied to unset Options fields.
const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultDebounceDelay = 100 * time.Millisecond
)

// Options configures a Store. Zero values fall back to the defaults above;
// Path falls back to the user data directory.
type Options struct {
	DefaultWidth  int
	DefaultHeight int
	Path          string
	File          string
	// Maximize and FullScreen control whether Manage re-applies the saved
	// flags. nil means true.
	Maximize   *bool
	FullScreen *bool
}

// Bool returns a pointer to v, for the optional Options flags.
func Bool(v bool) *bool {
	return &v
}

// resolved returns a fresh copy of o with defaults filled in.
func (o Options) resolved(dataDir func() (string, error)) Options {
	out := o
	if out.DefaultWidth <= 0 {
		out.DefaultWidth = DefaultWidth
	}
	if out.DefaultHeight <= 0 {
		out.DefaultHeight = DefaultHeight
	}
	if out.File == "" {
		out.File = DefaultFile
	}
	if out.Path == "" {
		if dir, err := dataDir(); err == nil {
			out.Path = dir
		} else {
			out.Path = "."
		}
	}
	out.Maximize = Bool(o.Maximize == nil || *o.Maximize)
	out.FullScreen = Bool(o.FullScreen == nil || *o.FullScreen)
	return out
}

// timer is the part of *time.Timer the Store uses.
type timer interface {
	Stop() bool
}

type afterFuncFn func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// Option customizes Store internals.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithStorage replaces the file storage derived from Options.Path/File.
func WithStorage(storage Storage) Option {
	return func(s *Store) {
		if storage != nil {
			s.storage = storage
		}
	}
}

// WithDebounceDelay overrides the quiet period before a resize or move is
// recorded.
func WithDebounceDelay(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.delay = d
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
