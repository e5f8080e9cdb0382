package types

// Display describes one attached screen as reported by the window server.
// WorkArea is the usable rectangle excluding menu bar and dock; when the
// server omits it, it defaults to Bounds.
type Display struct {
	ID             string `json:"id"`
	IsPrimary      bool   `json:"isPrimary"`
	DeviceName     string `json:"deviceName"`
	ManufacturerID string `json:"manufacturerId"`
	Bounds         Rect   `json:"bounds"`
	WorkArea       Rect   `json:"workArea"`
}

// AppFields is the untyped application descriptor attached to a window.
// The upstream enumeration source is inconsistent about field names, so the
// bag is kept raw and probed through ordered candidate-field tables.
type AppFields map[string]interface{}

// Window describes one window as reported by the window server.
// Visible and OnScreen are tri-state: nil means the server did not report
// the flag, which is not the same as an explicit false.
type Window struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Bounds    Rect      `json:"bounds"`
	Minimized bool      `json:"isMinimized,omitempty"`
	Hidden    bool      `json:"isHidden,omitempty"`
	Visible   *bool     `json:"isVisible,omitempty"`
	OnScreen  *bool     `json:"isOnScreen,omitempty"`
	App       AppFields `json:"application"`
}

// AppSummary is one aggregated per-application group. Derived on every
// refresh, never persisted.
type AppSummary struct {
	AppKey       string   `json:"appKey"`
	AppName      string   `json:"appName"`
	AppPath      string   `json:"appPath"`
	Windows      []Window `json:"windows"`
	WindowCount  int      `json:"windowCount"`
	DisplayBadge string   `json:"displayBadge"`
	ScreenIDs    []string `json:"screenIds"`
}

// MoveFailure records one window whose bounds-setter call failed.
type MoveFailure struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

// MoveSummary is the outcome of one move batch. Moved+Failed == Total.
type MoveSummary struct {
	Total    int           `json:"total"`
	Moved    int           `json:"moved"`
	Failed   int           `json:"failed"`
	Failures []MoveFailure `json:"failures"`
}

// Direction is the closed move-target enum. Left resolves to the built-in
// display, right to the external one.
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// ParseDirection converts a string to Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	default:
		return "", false
	}
}
