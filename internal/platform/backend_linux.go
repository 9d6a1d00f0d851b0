//go:build linux

package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/1broseidon/winstate/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform interfaces.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ DisplayService = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// PrimaryDisplay returns the XRandR primary display, or the first display
// when no primary output is configured.
func (b *LinuxBackend) PrimaryDisplay() (Display, error) {
	displays, err := b.Displays()
	if err != nil {
		return Display{}, err
	}
	return PrimaryOf(displays)
}

// DisplayMatching returns the display that overlaps rect the most.
func (b *LinuxBackend) DisplayMatching(rect Rect) (Display, error) {
	displays, err := b.Displays()
	if err != nil {
		return Display{}, err
	}
	return MatchDisplay(displays, rect)
}

// ActiveWindow returns the currently focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// FindWindowByTitle returns the first client whose title contains substring.
func (b *LinuxBackend) FindWindowByTitle(substring string) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.FindWindowByTitle(substring)
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// Window returns a trackable handle for an existing X11 window.
func (b *LinuxBackend) Window(id WindowID) (*X11Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	if _, err := conn.WindowGeometry(xproto.Window(id)); err != nil {
		return nil, err
	}
	return &X11Window{
		conn: conn,
		id:   xproto.Window(id),
	}, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	bounds := Rect{
		X:      m.X,
		Y:      m.Y,
		Width:  m.Width,
		Height: m.Height,
	}
	return Display{
		ID:      m.ID,
		Name:    m.Name,
		Bounds:  bounds,
		Primary: m.Primary,
	}
}

// X11Window adapts an X11 client window to the Window interface.
//
// ConfigureNotify is classified against the last seen bounds: a size change
// is a resize, a position-only change is a move. An unmap that is not an
// iconify is reported as close, and DestroyNotify as closed.
type X11Window struct {
	conn      *x11.Connection
	id        xproto.Window
	listeners Listeners

	mu       sync.Mutex
	watching bool
	last     Rect
}

var _ Window = (*X11Window)(nil)

// ID returns the X11 window id.
func (w *X11Window) ID() WindowID {
	return WindowID(w.id)
}

// Bounds returns the frame origin and the client size.
func (w *X11Window) Bounds() (Rect, error) {
	g, err := w.conn.WindowGeometry(w.id)
	if err != nil {
		return Rect{}, err
	}
	left, _, top, _, err := w.conn.GetFrameExtents(w.id)
	if err != nil {
		return Rect{}, err
	}
	client := Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
	return frameOrigin(client, left, top), nil
}

func (w *X11Window) IsMaximized() (bool, error) {
	states, err := w.conn.WindowStates(w.id)
	if err != nil {
		return false, err
	}
	return states[x11.StateMaximizedHorz] && states[x11.StateMaximizedVert], nil
}

func (w *X11Window) IsMinimized() (bool, error) {
	states, err := w.conn.WindowStates(w.id)
	if err != nil {
		return false, err
	}
	return states[x11.StateHidden] || w.conn.IsIconic(w.id), nil
}

func (w *X11Window) IsFullScreen() (bool, error) {
	states, err := w.conn.WindowStates(w.id)
	if err != nil {
		return false, err
	}
	return states[x11.StateFullscreen], nil
}

func (w *X11Window) Maximize() error {
	return w.conn.RequestState(w.id, x11.StateActionAdd, x11.StateMaximizedHorz, x11.StateMaximizedVert)
}

func (w *X11Window) SetFullScreen(fullScreen bool) error {
	action := x11.StateActionRemove
	if fullScreen {
		action = x11.StateActionAdd
	}
	return w.conn.RequestState(w.id, action, x11.StateFullscreen, "")
}

// MoveResize places the window frame at bounds.X/Y and sizes the client to
// bounds.Width/Height, matching what Bounds reports.
func (w *X11Window) MoveResize(bounds Rect) error {
	return w.conn.MoveResizeWindow(w.id, bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

// Subscribe registers fn for event. X11 callbacks are attached on the first
// subscription and detached when the last one is removed.
func (w *X11Window) Subscribe(event Event, fn func()) func() {
	w.mu.Lock()
	if !w.watching {
		if last, err := w.Bounds(); err == nil {
			w.last = last
		}
		err := w.conn.WatchStructure(w.id, x11.StructureHandlers{
			Configure: w.onConfigure,
			Unmap:     w.onUnmap,
			Destroy:   w.onDestroy,
		})
		w.watching = err == nil
	}
	w.mu.Unlock()

	remove := w.listeners.Add(event, fn)
	return func() {
		remove()
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.listeners.Len() == 0 && w.watching {
			w.conn.UnwatchStructure(w.id)
			w.watching = false
		}
	}
}

func (w *X11Window) onConfigure() {
	bounds, err := w.Bounds()
	if err != nil {
		return
	}

	w.mu.Lock()
	prev := w.last
	w.last = bounds
	w.mu.Unlock()

	if event, ok := classifyConfigure(prev, bounds); ok {
		w.listeners.Emit(event)
	}
}

func (w *X11Window) onUnmap() {
	if event, ok := classifyUnmap(w.conn.IsIconic(w.id)); ok {
		w.listeners.Emit(event)
	}
}

func (w *X11Window) onDestroy() {
	w.listeners.Emit(EventClosed)
}
