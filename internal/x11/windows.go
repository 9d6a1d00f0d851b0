package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EWMH state atoms consulted when tracking a window.
const (
	StateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	StateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	StateFullscreen    = "_NET_WM_STATE_FULLSCREEN"
	StateHidden        = "_NET_WM_STATE_HIDDEN"
)

// _NET_WM_STATE client message actions.
const (
	StateActionRemove = 0
	StateActionAdd    = 1
)

// Geometry is a window rectangle in root coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// WindowGeometry returns the window's size and its origin translated to root
// coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (Geometry, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get geometry of window 0x%x: %w", uint32(windowID), err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to translate coordinates of window 0x%x: %w", uint32(windowID), err)
	}

	return Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// WindowStates returns the window's _NET_WM_STATE atoms as a set.
// A window without the property has no states.
func (c *Connection) WindowStates(windowID xproto.Window) (map[string]bool, error) {
	// GetGeometry fails for destroyed windows, unlike a missing property.
	if _, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply(); err != nil {
		return nil, fmt.Errorf("window 0x%x is gone: %w", uint32(windowID), err)
	}

	out := make(map[string]bool)
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return out, nil
	}
	for _, state := range states {
		out[state] = true
	}
	return out, nil
}

// GetFrameExtents returns the window decoration sizes. A window manager that
// does not set _NET_FRAME_EXTENTS yields zeros.
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int, err error) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return 0, 0, 0, 0, nil
	}
	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom), nil
}

// IsIconic reports whether the window is in ICCCM IconicState.
func (c *Connection) IsIconic(windowID xproto.Window) bool {
	const iconicState = 3
	st, err := icccm.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	return st.State == iconicState
}

// RequestState asks the window manager to add or remove up to two
// _NET_WM_STATE atoms. second may be empty.
func (c *Connection) RequestState(windowID xproto.Window, action int, first, second string) error {
	stateAtom, err := c.internAtom("_NET_WM_STATE")
	if err != nil {
		return err
	}
	firstAtom, err := c.internAtom(first)
	if err != nil {
		return err
	}
	var secondAtom xproto.Atom
	if second != "" {
		if secondAtom, err = c.internAtom(second); err != nil {
			return err
		}
	}

	const sourceIndication = 2 // pager/direct action
	return c.sendRootMessage(windowID, stateAtom, []uint32{
		uint32(action), uint32(firstAtom), uint32(secondAtom), sourceIndication, 0,
	})
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height)
	if err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// FindWindowByTitle searches the EWMH client list for a window whose
// _NET_WM_NAME contains the given substring. Returns the first match.
func (c *Connection) FindWindowByTitle(substring string) (xproto.Window, error) {
	if substring == "" {
		return 0, fmt.Errorf("title substring is required")
	}
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get client list: %w", err)
	}
	for _, win := range clients {
		name, err := ewmh.WmNameGet(c.XUtil, win)
		if err != nil {
			continue
		}
		if strings.Contains(name, substring) {
			return win, nil
		}
	}
	return 0, fmt.Errorf("no window found with title containing %q", substring)
}

// GetActiveWindow returns the focused window.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

func (c *Connection) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

// sendRootMessage sends an EWMH client message to the root window.
// We build the message manually because the xgbutil ewmh request helpers
// panic on this library version (uint vs int type assertion).
func (c *Connection) sendRootMessage(windowID xproto.Window, msgType xproto.Atom, data []uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   msgType,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
