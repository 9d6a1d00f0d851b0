package winstate

import (
	"errors"
	"testing"

	"github.com/1broseidon/winstate/internal/platform"
)

func boundsRecord(x, y, w, h int, display *platform.Rect) Record {
	return Record{X: ptr(x), Y: ptr(y), Width: ptr(w), Height: ptr(h), DisplayBounds: display}
}

func TestValidate_Clamping(t *testing.T) {
	fullHD := &platform.Rect{Width: 1920, Height: 1080}

	cases := []struct {
		name       string
		rec        Record
		current    *fakeDisplays
		want       platform.Rect
		wantRepair Repair
	}{
		{
			name:       "off-screen x is reset and width clamped",
			rec:        boundsRecord(1100, 10, 1500, 500, fullHD),
			current:    singleDisplay(1024, 768),
			want:       platform.Rect{X: 0, Y: 10, Width: 1024, Height: 500},
			wantRepair: Repair{ResetX: true, ClampWidth: true},
		},
		{
			name:       "x within the new width is kept",
			rec:        boundsRecord(1000, 10, 500, 500, fullHD),
			current:    singleDisplay(1024, 768),
			want:       platform.Rect{X: 1000, Y: 10, Width: 500, Height: 500},
			wantRepair: Repair{},
		},
		{
			name:       "vertical axis is clamped independently",
			rec:        boundsRecord(10, 900, 400, 1000, fullHD),
			current:    singleDisplay(1920, 768),
			want:       platform.Rect{X: 10, Y: 0, Width: 400, Height: 768},
			wantRepair: Repair{ResetY: true, ClampHeight: true},
		},
		{
			name:       "both axes",
			rec:        boundsRecord(1900, 1000, 1920, 1080, fullHD),
			current:    singleDisplay(1280, 800),
			want:       platform.Rect{X: 0, Y: 0, Width: 1280, Height: 800},
			wantRepair: Repair{ResetX: true, ClampWidth: true, ResetY: true, ClampHeight: true},
		},
		{
			name:    "larger display leaves bounds alone",
			rec:     boundsRecord(3000, 2000, 1920, 1080, fullHD),
			current: singleDisplay(3840, 2160),
			want:    platform.Rect{X: 3000, Y: 2000, Width: 1920, Height: 1080},
		},
		{
			name:    "same display leaves bounds alone",
			rec:     boundsRecord(5000, 10, 5000, 10, fullHD),
			current: singleDisplay(1920, 1080),
			want:    platform.Rect{X: 5000, Y: 10, Width: 5000, Height: 10},
		},
		{
			name:    "no display bounds recorded",
			rec:     boundsRecord(5000, 5000, 5000, 5000, nil),
			current: singleDisplay(1024, 768),
			want:    platform.Rect{X: 5000, Y: 5000, Width: 5000, Height: 5000},
		},
		{
			name:    "display lookup failure skips clamping",
			rec:     boundsRecord(5000, 5000, 5000, 5000, fullHD),
			current: &fakeDisplays{err: errors.New("no randr")},
			want:    platform.Rect{X: 5000, Y: 5000, Width: 5000, Height: 5000},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, repair, ok := Validate(tc.rec, tc.current)
			if !ok {
				t.Fatalf("expected record to be valid")
			}
			got, _ := out.Bounds()
			if got != tc.want {
				t.Fatalf("bounds = %+v, want %+v", got, tc.want)
			}
			if repair != tc.wantRepair {
				t.Fatalf("repair = %+v, want %+v", repair, tc.wantRepair)
			}
		})
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	rec := boundsRecord(1100, 10, 1500, 500, &platform.Rect{Width: 1920, Height: 1080})
	if _, _, ok := Validate(rec, singleDisplay(1024, 768)); !ok {
		t.Fatalf("expected valid record")
	}
	if *rec.X != 1100 || *rec.Width != 1500 {
		t.Fatalf("input record was modified: x=%d width=%d", *rec.X, *rec.Width)
	}
}

func TestValidate_Acceptance(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
		want bool
	}{
		{name: "bounds", rec: boundsRecord(0, 0, 10, 10, nil), want: true},
		{name: "maximized only", rec: Record{IsMaximized: ptr(true)}, want: true},
		{name: "full-screen only", rec: Record{IsFullScreen: ptr(true)}, want: true},
		{name: "width only", rec: Record{Width: ptr(300)}},
		{name: "flags false", rec: Record{IsMaximized: ptr(false), IsFullScreen: ptr(false)}},
		{name: "zero size", rec: boundsRecord(0, 0, 0, 0, nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, repair, ok := Validate(tc.rec, nil)
			if ok != tc.want {
				t.Fatalf("ok = %v, want %v", ok, tc.want)
			}
			if repair.Discarded == tc.want {
				t.Fatalf("Discarded = %v, want %v", repair.Discarded, !tc.want)
			}
		})
	}
}
