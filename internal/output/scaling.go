package output

import (
	"github.com/pshkrh/window-controls/internal/types"
)

// ScalingContext handles coordinate transformation from one display's pixel
// space to terminal character space.
type ScalingContext struct {
	// Display bounds in pixels (global coordinates)
	MinX, MinY float64

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	// Scale factors
	ScaleX float64
	ScaleY float64

	// Aspect ratio correction (terminal characters are roughly 2:1 height:width)
	AspectRatio float64
}

// NewScalingContext creates a scaling context for one display.
func NewScalingContext(display types.Display, termWidth, termHeight int) *ScalingContext {
	pixelWidth := display.Bounds.Width
	pixelHeight := display.Bounds.Height
	if pixelWidth <= 0 || pixelHeight <= 0 {
		pixelWidth = 1920
		pixelHeight = 1080
	}

	// Reserve space for the display border (2 characters on each side)
	availWidth := termWidth - 4
	availHeight := termHeight - 4

	if availWidth < 10 {
		availWidth = 10
	}
	if availHeight < 5 {
		availHeight = 5
	}

	return &ScalingContext{
		MinX:        display.Bounds.X,
		MinY:        display.Bounds.Y,
		TermWidth:   termWidth,
		TermHeight:  termHeight,
		ScaleX:      float64(availWidth) / pixelWidth,
		ScaleY:      float64(availHeight) / pixelHeight,
		AspectRatio: 2.0,
	}
}

// PixelToTerminal converts pixel coordinates to terminal coordinates
func (sc *ScalingContext) PixelToTerminal(x, y float64) (int, int) {
	// Offset from minimum bounds
	relX := x - sc.MinX
	relY := y - sc.MinY

	// Scale to terminal space
	termX := int(relX * sc.ScaleX)
	termY := int(relY * sc.ScaleY / sc.AspectRatio)

	// Add offset for border (2 characters)
	termX += 2
	termY += 2

	return termX, termY
}

// ScaleSize converts pixel dimensions to terminal character dimensions
func (sc *ScalingContext) ScaleSize(w, h float64) (int, int) {
	termW := int(w * sc.ScaleX)
	termH := int(h * sc.ScaleY / sc.AspectRatio)

	// Minimum size of 3x2 for visibility
	if termW < 3 {
		termW = 3
	}
	if termH < 2 {
		termH = 2
	}

	return termW, termH
}

// ClampToCanvas ensures coordinates are within canvas bounds
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	// Clamp position
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	// Clamp size
	if x+w >= sc.TermWidth {
		w = sc.TermWidth - x - 1
	}
	if y+h >= sc.TermHeight {
		h = sc.TermHeight - y - 1
	}

	// Ensure minimum size
	if w < 3 {
		w = 3
	}
	if h < 2 {
		h = 2
	}

	return x, y, w, h
}
