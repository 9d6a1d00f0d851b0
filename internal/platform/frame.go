package platform

// frameOrigin moves a client rectangle to the top-left corner of its window
// manager frame. The size stays the client size, which is what
// _NET_MOVERESIZE_WINDOW applies, so reading and restoring is stable.
func frameOrigin(client Rect, left, top int) Rect {
	return Rect{
		X:      client.X - left,
		Y:      client.Y - top,
		Width:  client.Width,
		Height: client.Height,
	}
}

// classifyConfigure maps a ConfigureNotify to a window event. A size change
// wins over a position change; a configure that changes neither (stacking,
// border) reports nothing.
func classifyConfigure(prev, cur Rect) (Event, bool) {
	switch {
	case cur.Width != prev.Width || cur.Height != prev.Height:
		return EventResize, true
	case cur.X != prev.X || cur.Y != prev.Y:
		return EventMove, true
	default:
		return "", false
	}
}

// classifyUnmap maps an UnmapNotify to a window event. Iconifying also
// unmaps the window and is not a close.
func classifyUnmap(iconic bool) (Event, bool) {
	if iconic {
		return "", false
	}
	return EventClose, true
}
