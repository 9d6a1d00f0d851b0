package winstate

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/1broseidon/winstate/internal/platform"
	"github.com/tidwall/gjson"
)

// ErrMalformedRecord is returned when persisted state is not a JSON object.
var ErrMalformedRecord = errors.New("malformed window state record")

// Record is the persisted window geometry. Nil fields were never saved.
type Record struct {
	X             *int           `json:"x,omitempty"`
	Y             *int           `json:"y,omitempty"`
	Width         *int           `json:"width,omitempty"`
	Height        *int           `json:"height,omitempty"`
	IsMaximized   *bool          `json:"isMaximized,omitempty"`
	IsFullScreen  *bool          `json:"isFullScreen,omitempty"`
	DisplayBounds *platform.Rect `json:"displayBounds,omitempty"`
}

// HasBounds reports whether x, y, width and height are all present and the
// size is positive.
func (r Record) HasBounds() bool {
	return r.X != nil && r.Y != nil &&
		r.Width != nil && *r.Width > 0 &&
		r.Height != nil && *r.Height > 0
}

// Bounds returns the recorded geometry. ok is false unless HasBounds.
func (r Record) Bounds() (platform.Rect, bool) {
	if !r.HasBounds() {
		return platform.Rect{}, false
	}
	return platform.Rect{X: *r.X, Y: *r.Y, Width: *r.Width, Height: *r.Height}, true
}

// Maximized returns the maximized flag, false when absent.
func (r Record) Maximized() bool {
	return r.IsMaximized != nil && *r.IsMaximized
}

// FullScreen returns the full-screen flag, false when absent.
func (r Record) FullScreen() bool {
	return r.IsFullScreen != nil && *r.IsFullScreen
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := Record{
		X:            cloneVal(r.X),
		Y:            cloneVal(r.Y),
		Width:        cloneVal(r.Width),
		Height:       cloneVal(r.Height),
		IsMaximized:  cloneVal(r.IsMaximized),
		IsFullScreen: cloneVal(r.IsFullScreen),
	}
	if r.DisplayBounds != nil {
		db := *r.DisplayBounds
		out.DisplayBounds = &db
	}
	return out
}

func cloneVal[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T {
	return &v
}

// DecodeRecord parses persisted state. Fields of the wrong JSON type, or
// numbers that are not integers, are left absent instead of failing the
// whole record. Unknown fields are ignored.
func DecodeRecord(data []byte) (Record, error) {
	if !gjson.ValidBytes(data) {
		return Record{}, ErrMalformedRecord
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Record{}, ErrMalformedRecord
	}

	rec := Record{
		X:            intField(root.Get("x")),
		Y:            intField(root.Get("y")),
		Width:        intField(root.Get("width")),
		Height:       intField(root.Get("height")),
		IsMaximized:  boolField(root.Get("isMaximized")),
		IsFullScreen: boolField(root.Get("isFullScreen")),
	}
	if db, ok := rectField(root.Get("displayBounds")); ok {
		rec.DisplayBounds = &db
	}
	return rec, nil
}

// EncodeRecord renders rec the way it is written to disk.
func EncodeRecord(rec Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func intField(res gjson.Result) *int {
	if res.Type != gjson.Number {
		return nil
	}
	f := res.Float()
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	return ptr(int(f))
}

func boolField(res gjson.Result) *bool {
	switch res.Type {
	case gjson.True:
		return ptr(true)
	case gjson.False:
		return ptr(false)
	default:
		return nil
	}
}

// rectField accepts both {x,y,width,height} and the reduced {width,height}
// form; missing x/y read as 0.
func rectField(res gjson.Result) (platform.Rect, bool) {
	if !res.IsObject() {
		return platform.Rect{}, false
	}
	w := intField(res.Get("width"))
	h := intField(res.Get("height"))
	if w == nil || h == nil {
		return platform.Rect{}, false
	}
	r := platform.Rect{Width: *w, Height: *h}
	if x := intField(res.Get("x")); x != nil {
		r.X = *x
	}
	if y := intField(res.Get("y")); y != nil {
		r.Y = *y
	}
	return r, true
}
