package winstate

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/1broseidon/winstate/internal/platform"
)

var errWindowGone = errors.New("window destroyed")

type fakeWindow struct {
	listeners platform.Listeners

	bounds     platform.Rect
	maximized  bool
	minimized  bool
	fullScreen bool
	destroyed  bool
	panicky    bool

	maximizeCalls   int
	fullScreenCalls []bool
}

var _ platform.Window = (*fakeWindow)(nil)

func (w *fakeWindow) check() error {
	if w.panicky {
		panic("adapter bug")
	}
	if w.destroyed {
		return errWindowGone
	}
	return nil
}

func (w *fakeWindow) Bounds() (platform.Rect, error) {
	if err := w.check(); err != nil {
		return platform.Rect{}, err
	}
	return w.bounds, nil
}

func (w *fakeWindow) IsMaximized() (bool, error) {
	return w.maximized, w.check()
}

func (w *fakeWindow) IsMinimized() (bool, error) {
	return w.minimized, w.check()
}

func (w *fakeWindow) IsFullScreen() (bool, error) {
	return w.fullScreen, w.check()
}

func (w *fakeWindow) Maximize() error {
	w.maximizeCalls++
	w.maximized = true
	return nil
}

func (w *fakeWindow) SetFullScreen(v bool) error {
	w.fullScreenCalls = append(w.fullScreenCalls, v)
	w.fullScreen = v
	return nil
}

func (w *fakeWindow) Subscribe(event platform.Event, fn func()) func() {
	return w.listeners.Add(event, fn)
}

func (w *fakeWindow) emit(event platform.Event) {
	w.listeners.Emit(event)
}

type fakeDisplays struct {
	displays []platform.Display
	err      error
}

func singleDisplay(width, height int) *fakeDisplays {
	return &fakeDisplays{displays: []platform.Display{{
		ID:      0,
		Name:    "DP-1",
		Bounds:  platform.Rect{Width: width, Height: height},
		Primary: true,
	}}}
}

func (d *fakeDisplays) Displays() ([]platform.Display, error) {
	return d.displays, d.err
}

func (d *fakeDisplays) PrimaryDisplay() (platform.Display, error) {
	if d.err != nil {
		return platform.Display{}, d.err
	}
	return platform.PrimaryOf(d.displays)
}

func (d *fakeDisplays) DisplayMatching(r platform.Rect) (platform.Display, error) {
	if d.err != nil {
		return platform.Display{}, d.err
	}
	return platform.MatchDisplay(d.displays, r)
}

type memStorage struct {
	data    []byte
	saveErr error
	saves   int
}

func (m *memStorage) Load() ([]byte, error) {
	if m.data == nil {
		return nil, fmt.Errorf("read: %w", fs.ErrNotExist)
	}
	return m.data, nil
}

func (m *memStorage) Save(data []byte) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memStorage) Location() string {
	return "memory"
}

// manualClock records scheduled callbacks and fires them on demand.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func (c *manualClock) afterFunc(d time.Duration, f func()) timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// fireAll runs every timer that is neither stopped nor fired.
func (c *manualClock) fireAll() int {
	c.mu.Lock()
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}

func (c *manualClock) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func withAfterFunc(fn afterFuncFn) Option {
	return func(s *Store) {
		s.afterFunc = fn
	}
}
