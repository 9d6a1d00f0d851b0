package winstate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/winstate/internal/datapath"
	"github.com/1broseidon/winstate/internal/platform"
)

// Store keeps the geometry of one window in sync with a persisted record.
//
// Public methods never fail: load, query and write errors degrade to
// defaults or to keeping the last known values.
type Store struct {
	opts      Options
	displays  platform.DisplayService
	storage   Storage
	logger    *slog.Logger
	metrics   *Metrics
	delay     time.Duration
	afterFunc afterFuncFn

	mu      sync.Mutex
	rec     Record
	win     platform.Window
	unsubs  []func()
	pending timer
	// gen invalidates debounce callbacks that fire after Unmanage.
	gen uint64
}

// New loads the persisted record, validates it against displays and returns
// a Store ready to manage a window. displays may be nil when no display
// information is available; clamping is then skipped.
func New(opts Options, displays platform.DisplayService, options ...Option) *Store {
	s := &Store{
		opts:      opts.resolved(datapath.DataDir),
		displays:  displays,
		logger:    discardLogger(),
		delay:     DefaultDebounceDelay,
		afterFunc: realAfterFunc,
	}
	s.storage = NewFileStorage(s.opts.Path, s.opts.File)
	for _, opt := range options {
		opt(s)
	}

	s.rec = s.load()
	return s
}

func (s *Store) load() Record {
	rec, ok := s.readRecord()
	if ok {
		var repair Repair
		rec, repair, ok = Validate(rec, s.displays)
		s.metrics.repaired(repair)
		if repair.Discarded {
			s.logger.Debug("discarding window state without bounds", "location", s.storage.Location())
		}
		if repair.Clamped() {
			s.logger.Debug("window state clamped to smaller display",
				"reset_x", repair.ResetX,
				"clamp_width", repair.ClampWidth,
				"reset_y", repair.ResetY,
				"clamp_height", repair.ClampHeight,
			)
		}
	}
	if !ok {
		rec = Record{}
	}

	if rec.Width == nil {
		rec.Width = ptr(s.opts.DefaultWidth)
	}
	if rec.Height == nil {
		rec.Height = ptr(s.opts.DefaultHeight)
	}
	return rec
}

func (s *Store) readRecord() (Record, bool) {
	data, err := s.storage.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.metrics.load("missing")
		} else {
			s.metrics.load("error")
			s.logger.Debug("failed to load window state", "error", err)
		}
		return Record{}, false
	}

	rec, err := DecodeRecord(data)
	if err != nil {
		s.metrics.load("malformed")
		s.logger.Debug("ignoring window state", "location", s.storage.Location(), "error", err)
		return Record{}, false
	}
	s.metrics.load("ok")
	return rec, true
}

// Location returns where the record is persisted.
func (s *Store) Location() string {
	return s.storage.Location()
}

// X returns the saved left edge.
func (s *Store) X() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deref(s.rec.X)
}

// Y returns the saved top edge.
func (s *Store) Y() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deref(s.rec.Y)
}

// Width returns the saved width.
func (s *Store) Width() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deref(s.rec.Width)
}

// Height returns the saved height.
func (s *Store) Height() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deref(s.rec.Height)
}

// IsMaximized reports whether the window was maximized when last recorded.
func (s *Store) IsMaximized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Maximized()
}

// IsFullScreen reports whether the window was full-screen when last recorded.
func (s *Store) IsFullScreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.FullScreen()
}

// DisplayBounds returns the bounds of the display the window was last on.
func (s *Store) DisplayBounds() (platform.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec.DisplayBounds == nil {
		return platform.Rect{}, false
	}
	return *s.rec.DisplayBounds, true
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

func deref(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Manage starts tracking win. Saved maximize and full-screen flags are
// re-applied when enabled in Options. A previously managed window is
// unmanaged first.
func (s *Store) Manage(win platform.Window) {
	if win == nil {
		return
	}
	s.Unmanage()

	s.mu.Lock()
	maximize := *s.opts.Maximize && s.rec.Maximized()
	fullScreen := *s.opts.FullScreen && s.rec.FullScreen()
	s.mu.Unlock()

	if maximize {
		if err := win.Maximize(); err != nil {
			s.logger.Debug("failed to maximize window", "error", err)
		}
	}
	if fullScreen {
		if err := win.SetFullScreen(true); err != nil {
			s.logger.Debug("failed to set window full-screen", "error", err)
		}
	}

	unsubs := []func(){
		win.Subscribe(platform.EventResize, s.scheduleUpdate),
		win.Subscribe(platform.EventMove, s.scheduleUpdate),
		win.Subscribe(platform.EventClose, s.onClose),
		win.Subscribe(platform.EventClosed, s.onClosed),
	}

	s.mu.Lock()
	s.win = win
	s.unsubs = unsubs
	s.mu.Unlock()
}

// Unmanage removes every listener added by Manage and drops any pending
// debounced update. It is safe to call when nothing is managed.
func (s *Store) Unmanage() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.win = nil
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

// Managed reports whether a window is currently tracked.
func (s *Store) Managed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.win != nil
}

func (s *Store) scheduleUpdate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.win == nil {
		return
	}
	if s.pending != nil {
		s.pending.Stop()
	}
	gen := s.gen
	s.pending = s.afterFunc(s.delay, func() {
		s.mu.Lock()
		if s.gen != gen || s.win == nil {
			s.mu.Unlock()
			return
		}
		s.pending = nil
		win := s.win
		s.mu.Unlock()

		s.update(win)
	})
}

func (s *Store) onClose() {
	s.mu.Lock()
	win := s.win
	s.mu.Unlock()
	if win != nil {
		s.update(win)
	}
}

func (s *Store) onClosed() {
	s.Unmanage()
	s.SaveState(nil)
}

// SaveState refreshes the record from win when win is non-nil, then writes
// it to storage. Failures are logged at debug level and otherwise ignored.
func (s *Store) SaveState(win platform.Window) {
	_ = s.Save(win)
}

// Save is SaveState that reports the write error.
func (s *Store) Save(win platform.Window) error {
	if win != nil {
		s.update(win)
	}

	data, err := EncodeRecord(s.Snapshot())
	if err == nil {
		err = s.storage.Save(data)
	}
	s.metrics.save(err)
	if err != nil {
		s.logger.Debug("failed to save window state", "location", s.storage.Location(), "error", err)
		return fmt.Errorf("save window state: %w", err)
	}
	s.logger.Debug("window state saved", "location", s.storage.Location())
	return nil
}

// ResetToDefault replaces the record with the default size at the origin of
// the primary display.
func (s *Store) ResetToDefault() {
	rec := Record{
		X:      ptr(0),
		Y:      ptr(0),
		Width:  ptr(s.opts.DefaultWidth),
		Height: ptr(s.opts.DefaultHeight),
	}
	if s.displays != nil {
		if primary, err := s.displays.PrimaryDisplay(); err == nil {
			db := primary.Bounds
			rec.DisplayBounds = &db
		}
	}

	s.mu.Lock()
	s.rec = rec
	s.mu.Unlock()
}

// update copies the live window state into the record. Bounds are only
// taken while the window is in its normal state.
func (s *Store) update(win platform.Window) {
	applied := false
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("window state update panicked", "error", r)
			applied = false
		}
		s.metrics.update(applied)
	}()

	snap, err := readWindow(win, s.displays)
	if err != nil {
		s.logger.Debug("skipping window state update", "error", err)
		return
	}

	s.mu.Lock()
	if snap.normal {
		s.rec.X = ptr(snap.bounds.X)
		s.rec.Y = ptr(snap.bounds.Y)
		s.rec.Width = ptr(snap.bounds.Width)
		s.rec.Height = ptr(snap.bounds.Height)
	}
	s.rec.IsMaximized = ptr(snap.maximized)
	s.rec.IsFullScreen = ptr(snap.fullScreen)
	if snap.display != nil {
		s.rec.DisplayBounds = snap.display
	}
	s.mu.Unlock()
	applied = true
}

type windowSnapshot struct {
	bounds     platform.Rect
	maximized  bool
	fullScreen bool
	normal     bool
	display    *platform.Rect
}

func readWindow(win platform.Window, displays platform.DisplayService) (windowSnapshot, error) {
	var snap windowSnapshot
	var err error

	if snap.bounds, err = win.Bounds(); err != nil {
		return snap, fmt.Errorf("read bounds: %w", err)
	}
	if snap.maximized, err = win.IsMaximized(); err != nil {
		return snap, fmt.Errorf("read maximized: %w", err)
	}
	minimized, err := win.IsMinimized()
	if err != nil {
		return snap, fmt.Errorf("read minimized: %w", err)
	}
	if snap.fullScreen, err = win.IsFullScreen(); err != nil {
		return snap, fmt.Errorf("read full-screen: %w", err)
	}
	snap.normal = !snap.maximized && !minimized && !snap.fullScreen

	if displays != nil {
		if d, err := displays.DisplayMatching(snap.bounds); err == nil {
			db := d.Bounds
			snap.display = &db
		}
	}
	return snap, nil
}
