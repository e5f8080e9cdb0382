package backend

import (
	"fmt"
	"strconv"

	"github.com/pshkrh/window-controls/internal/types"
)

// The window server reports screens and windows as loosely typed JSON. The
// parsers below normalize that into descriptors, tolerating both frame
// encodings the server has shipped ({x,y,width,height} objects and
// [[x,y],[w,h]] pairs) and numeric-or-string identifiers.

// ParseDisplays converts the raw screens payload into display descriptors.
func ParseDisplays(raw interface{}) []types.Display {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	var displays []types.Display
	for _, d := range arr {
		obj, ok := d.(map[string]interface{})
		if !ok {
			continue
		}

		display := types.Display{
			ID:             toID(obj["id"]),
			IsPrimary:      toBool(obj["isPrimary"]),
			DeviceName:     toString(obj["deviceName"]),
			ManufacturerID: toID(obj["manufacturerId"]),
		}
		if display.ID == "" {
			continue
		}

		if rect, ok := parseFrame(obj["bounds"]); ok {
			display.Bounds = rect
		}
		if rect, ok := parseFrame(obj["workArea"]); ok {
			display.WorkArea = rect
		} else {
			display.WorkArea = display.Bounds
		}

		displays = append(displays, display)
	}

	return displays
}

// ParseWindows converts the raw windows payload into window descriptors.
// The application bag is kept untyped; appid probes it by field table.
func ParseWindows(raw interface{}) []types.Window {
	var windows []types.Window

	appendWindow := func(w interface{}) {
		if win := parseWindow(w); win != nil {
			windows = append(windows, *win)
		}
	}

	switch v := raw.(type) {
	case []interface{}:
		for _, w := range v {
			appendWindow(w)
		}
	case map[string]interface{}:
		for _, w := range v {
			appendWindow(w)
		}
	}

	return windows
}

func parseWindow(w interface{}) *types.Window {
	obj, ok := w.(map[string]interface{})
	if !ok {
		return nil
	}

	window := types.Window{
		ID:        toID(obj["id"]),
		Title:     toString(obj["title"]),
		Minimized: toBool(obj["isMinimized"]),
		Hidden:    toBool(obj["isHidden"]),
		Visible:   toOptBool(obj["isVisible"]),
		OnScreen:  toOptBool(obj["isOnScreen"]),
	}

	if app, ok := obj["application"].(map[string]interface{}); ok {
		window.App = types.AppFields(app)
	}

	if rect, ok := parseFrame(obj["bounds"]); ok {
		window.Bounds = rect
	}

	return &window
}

// parseFrame handles both object format {x,y,width,height} and array format [[x,y],[w,h]]
func parseFrame(frame interface{}) (types.Rect, bool) {
	if frame == nil {
		return types.Rect{}, false
	}

	// Try object format: {x, y, width, height}
	if obj, ok := frame.(map[string]interface{}); ok {
		return types.Rect{
			X:      toFloat64(obj["x"]),
			Y:      toFloat64(obj["y"]),
			Width:  toFloat64(obj["width"]),
			Height: toFloat64(obj["height"]),
		}, true
	}

	// Try array format: [[x, y], [width, height]]
	if arr, ok := frame.([]interface{}); ok && len(arr) == 2 {
		origin, okOrigin := arr[0].([]interface{})
		size, okSize := arr[1].([]interface{})

		if okOrigin && okSize && len(origin) >= 2 && len(size) >= 2 {
			return types.Rect{
				X:      toFloat64(origin[0]),
				Y:      toFloat64(origin[1]),
				Width:  toFloat64(size[0]),
				Height: toFloat64(size[1]),
			}, true
		}
	}

	return types.Rect{}, false
}

// Type conversion helpers

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	default:
		return 0
	}
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// toID normalizes identifiers the server sends as either strings or numbers.
func toID(v interface{}) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatInt(int64(n), 10)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

func toOptBool(v interface{}) *bool {
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}
