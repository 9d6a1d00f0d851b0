package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns width*height, or 0 for empty rects.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Center returns the center point of the rect.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Intersect returns the overlapping region of r and o. The result is the
// zero Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Display describes a physical display.
type Display struct {
	ID      int
	Name    string
	Bounds  Rect
	Primary bool
}

// Event names a window lifecycle notification.
type Event string

const (
	EventResize Event = "resize"
	EventMove   Event = "move"
	EventClose  Event = "close"
	EventClosed Event = "closed"
)

// Window is a live top-level window whose geometry can be tracked.
//
// Query methods return an error once the underlying window is gone.
// Subscribe returns a function that removes the listener; calling it more
// than once is harmless.
type Window interface {
	Bounds() (Rect, error)
	IsMaximized() (bool, error)
	IsMinimized() (bool, error)
	IsFullScreen() (bool, error)
	Maximize() error
	SetFullScreen(fullScreen bool) error
	Subscribe(event Event, fn func()) (unsubscribe func())
}

// DisplayService abstracts display enumeration across platforms.
type DisplayService interface {
	Displays() ([]Display, error)
	PrimaryDisplay() (Display, error)
	DisplayMatching(rect Rect) (Display, error)
}
