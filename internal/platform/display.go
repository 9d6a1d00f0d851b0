package platform

import "fmt"

// MatchDisplay returns the display whose bounds overlap rect the most.
// Ties go to the display listed first. When rect overlaps no display, the
// display nearest to the rect's center is returned.
func MatchDisplay(displays []Display, rect Rect) (Display, error) {
	if len(displays) == 0 {
		return Display{}, fmt.Errorf("no displays found")
	}

	best := -1
	bestArea := 0
	for i := range displays {
		area := displays[i].Bounds.Intersect(rect).Area()
		if area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best >= 0 {
		return displays[best], nil
	}

	cx, cy := rect.Center()
	best = 0
	bestDist := -1
	for i := range displays {
		d := distanceSq(displays[i].Bounds, cx, cy)
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return displays[best], nil
}

// PrimaryOf returns the display flagged primary, falling back to the first.
func PrimaryOf(displays []Display) (Display, error) {
	if len(displays) == 0 {
		return Display{}, fmt.Errorf("no displays found")
	}
	for _, d := range displays {
		if d.Primary {
			return d, nil
		}
	}
	return displays[0], nil
}

// distanceSq is the squared distance from (x, y) to the closest point of r.
func distanceSq(r Rect, x, y int) int {
	dx := 0
	if x < r.X {
		dx = r.X - x
	} else if x >= r.X+r.Width {
		dx = x - (r.X + r.Width - 1)
	}
	dy := 0
	if y < r.Y {
		dy = r.Y - y
	} else if y >= r.Y+r.Height {
		dy = y - (r.Y + r.Height - 1)
	}
	return dx*dx + dy*dy
}
