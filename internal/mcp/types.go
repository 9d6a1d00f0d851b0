package mcp

// StateInput selects a state file.
type StateInput struct {
	File string `json:"file,omitempty" jsonschema:"State file name inside the state directory (default: the configured file, usually window-state.json)"`
}

// Rect mirrors platform.Rect for tool output.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowStateOutput is the output for the get_window_state tool.
type WindowStateOutput struct {
	Location      string `json:"location"`
	X             *int   `json:"x,omitempty"`
	Y             *int   `json:"y,omitempty"`
	Width         *int   `json:"width,omitempty"`
	Height        *int   `json:"height,omitempty"`
	IsMaximized   bool   `json:"is_maximized"`
	IsFullScreen  bool   `json:"is_full_screen"`
	DisplayBounds *Rect  `json:"display_bounds,omitempty"`
}

// ResetStateOutput is the output for the reset_window_state tool.
type ResetStateOutput struct {
	Location string            `json:"location"`
	State    WindowStateOutput `json:"state"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayInfo describes one attached display.
type DisplayInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Bounds  Rect   `json:"bounds"`
	Primary bool   `json:"primary"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}
