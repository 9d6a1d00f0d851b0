package winstate

import "github.com/1broseidon/winstate/internal/platform"

// Repair describes what validation did to a loaded record.
type Repair struct {
	Discarded   bool
	ResetX      bool
	ClampWidth  bool
	ResetY      bool
	ClampHeight bool
}

// Clamped reports whether any geometry field was changed.
func (r Repair) Clamped() bool {
	return r.ResetX || r.ClampWidth || r.ResetY || r.ClampHeight
}

// Validate checks a loaded record against the current display layout.
//
// A record without complete bounds that is neither maximized nor full-screen
// is discarded (ok is false). When bounds and displayBounds are present and
// the matching display is now smaller than the recorded one, the offending
// axis is pulled back on-screen and the size clamped to the display.
// displays may be nil, in which case no clamping happens.
func Validate(rec Record, displays platform.DisplayService) (out Record, repair Repair, ok bool) {
	if !rec.HasBounds() && !rec.Maximized() && !rec.FullScreen() {
		return Record{}, Repair{Discarded: true}, false
	}

	out = rec.Clone()
	bounds, hasBounds := out.Bounds()
	if !hasBounds || out.DisplayBounds == nil || displays == nil {
		return out, repair, true
	}

	current, err := displays.DisplayMatching(bounds)
	if err != nil {
		return out, repair, true
	}
	saved := *out.DisplayBounds
	if current.Bounds == saved {
		return out, repair, true
	}

	if current.Bounds.Width < saved.Width {
		if *out.X > current.Bounds.Width {
			*out.X = 0
			repair.ResetX = true
		}
		if *out.Width > current.Bounds.Width {
			*out.Width = current.Bounds.Width
			repair.ClampWidth = true
		}
	}

	if current.Bounds.Height < saved.Height {
		if *out.Y > current.Bounds.Height {
			*out.Y = 0
			repair.ResetY = true
		}
		if *out.Height > current.Bounds.Height {
			*out.Height = current.Bounds.Height
			repair.ClampHeight = true
		}
	}

	return out, repair, true
}
