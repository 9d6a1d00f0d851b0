package platform

import "testing"

func dualDisplays() []Display {
	return []Display{
		{ID: 0, Name: "eDP-1", Bounds: Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{ID: 1, Name: "HDMI-1", Bounds: Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}, Primary: true},
	}
}

func TestMatchDisplay_LargestOverlapWins(t *testing.T) {
	displays := dualDisplays()

	cases := []struct {
		name string
		rect Rect
		want int
	}{
		{name: "fully on first", rect: Rect{X: 100, Y: 100, Width: 800, Height: 600}, want: 0},
		{name: "fully on second", rect: Rect{X: 2000, Y: 100, Width: 800, Height: 600}, want: 1},
		{name: "straddling mostly second", rect: Rect{X: 1800, Y: 100, Width: 800, Height: 600}, want: 1},
		{name: "straddling mostly first", rect: Rect{X: 1500, Y: 100, Width: 600, Height: 600}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MatchDisplay(displays, tc.rect)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tc.want {
				t.Fatalf("MatchDisplay() = display %d, want %d", got.ID, tc.want)
			}
		})
	}
}

func TestMatchDisplay_TieGoesToFirst(t *testing.T) {
	got, err := MatchDisplay(dualDisplays(), Rect{X: 1820, Y: 0, Width: 200, Height: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 0 {
		t.Fatalf("expected tie to resolve to first display, got %d", got.ID)
	}
}

func TestMatchDisplay_NearestWhenOffScreen(t *testing.T) {
	displays := dualDisplays()

	got, err := MatchDisplay(displays, Rect{X: 5000, Y: 200, Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("expected nearest display 1, got %d", got.ID)
	}

	got, err = MatchDisplay(displays, Rect{X: -900, Y: -900, Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 0 {
		t.Fatalf("expected nearest display 0, got %d", got.ID)
	}
}

func TestMatchDisplay_NoDisplays(t *testing.T) {
	if _, err := MatchDisplay(nil, Rect{Width: 1, Height: 1}); err == nil {
		t.Fatalf("expected error without displays")
	}
}

func TestPrimaryOf(t *testing.T) {
	got, err := PrimaryOf(dualDisplays())
	if err != nil || got.ID != 1 {
		t.Fatalf("PrimaryOf() = %d, %v; want display 1", got.ID, err)
	}

	noPrimary := dualDisplays()
	noPrimary[1].Primary = false
	got, err = PrimaryOf(noPrimary)
	if err != nil || got.ID != 0 {
		t.Fatalf("PrimaryOf() = %d, %v; want fallback display 0", got.ID, err)
	}

	if _, err := PrimaryOf(nil); err == nil {
		t.Fatalf("expected error without displays")
	}
}

func TestRect_Intersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if got := a.Intersect(Rect{X: 50, Y: 50, Width: 100, Height: 100}); got != (Rect{X: 50, Y: 50, Width: 50, Height: 50}) {
		t.Fatalf("Intersect() = %+v", got)
	}
	if got := a.Intersect(Rect{X: 100, Y: 0, Width: 10, Height: 10}); !got.Empty() || got.Area() != 0 {
		t.Fatalf("expected touching rects not to intersect, got %+v", got)
	}
}
