package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// StructureHandlers receives structure notifications for one window.
// Nil handlers are skipped.
type StructureHandlers struct {
	Configure func()
	Unmap     func()
	Destroy   func()
}

// WatchStructure selects StructureNotify on windowID and connects the given
// handlers. Handlers run on the EventLoop goroutine.
func (c *Connection) WatchStructure(windowID xproto.Window, h StructureHandlers) error {
	if err := xwindow.New(c.XUtil, windowID).Listen(xproto.EventMaskStructureNotify); err != nil {
		return fmt.Errorf("failed to listen on window 0x%x: %w", uint32(windowID), err)
	}

	if h.Configure != nil {
		xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
			h.Configure()
		}).Connect(c.XUtil, windowID)
	}
	if h.Unmap != nil {
		xevent.UnmapNotifyFun(func(_ *xgbutil.XUtil, _ xevent.UnmapNotifyEvent) {
			h.Unmap()
		}).Connect(c.XUtil, windowID)
	}
	if h.Destroy != nil {
		xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, _ xevent.DestroyNotifyEvent) {
			h.Destroy()
		}).Connect(c.XUtil, windowID)
	}
	return nil
}

// UnwatchStructure detaches every callback connected to windowID.
func (c *Connection) UnwatchStructure(windowID xproto.Window) {
	xevent.Detach(c.XUtil, windowID)
}
