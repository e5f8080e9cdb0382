package move

import (
	"math"

	"github.com/pshkrh/window-controls/internal/types"
)

const (
	// Defaults substituted for windows that report non-finite dimensions.
	defaultWidth  = 800.0
	defaultHeight = 600.0

	// Floor for computed target sizes; anything smaller is not a usable
	// window.
	minTargetWidth  = 200.0
	minTargetHeight = 120.0

	// A window always keeps at least this fraction of the work area when
	// scaled proportionally.
	minSizeFraction = 0.05
)

// relativeBounds expresses window bounds relative to a work area's origin,
// substituting defaults for non-finite dimensions and clamping the result so
// it lies fully inside the area.
func relativeBounds(win types.Rect, area types.Rect) types.Rect {
	w := win.Width
	h := win.Height
	if !isFinite(w) || !isFinite(h) {
		w = defaultWidth
		h = defaultHeight
	}

	x := win.X - area.X
	y := win.Y - area.Y
	if !isFinite(x) {
		x = 0
	}
	if !isFinite(y) {
		y = 0
	}

	return clampRelative(types.Rect{X: x, Y: y, Width: w, Height: h}, area)
}

// clampRelative fits an area-relative rectangle into the area's extents.
func clampRelative(rel types.Rect, area types.Rect) types.Rect {
	w := min(rel.Width, area.Width)
	h := min(rel.Height, area.Height)

	x := clamp(rel.X, 0, area.Width-w)
	y := clamp(rel.Y, 0, area.Height-h)

	return types.Rect{X: x, Y: y, Width: w, Height: h}
}

// absolute converts an area-relative rectangle back to global coordinates.
func absolute(rel types.Rect, area types.Rect) types.Rect {
	return types.Rect{
		X:      area.X + rel.X,
		Y:      area.Y + rel.Y,
		Width:  rel.Width,
		Height: rel.Height,
	}
}

// targetBounds computes fresh placement for a window moving from the source
// work area to the target work area.
//
// Size: the absolute size is kept when it fits the target; otherwise the
// window's size fraction of the source area (clamped to [5%, 100%]) is
// applied to the target area, preserving relative coverage. Either way the
// result is clamped to 200x120 minimums and the target's extents. Position:
// the window's position fraction of the source area, scaled by the target's
// remaining slack, rounded to integer pixels.
func targetBounds(win types.Rect, source types.Rect, target types.Rect) types.Rect {
	srcW := win.Width
	srcH := win.Height
	if !isFinite(srcW) || !isFinite(srcH) {
		srcW = defaultWidth
		srcH = defaultHeight
	}

	w := srcW
	h := srcH
	if w > target.Width || h > target.Height {
		fw := clamp(srcW/source.Width, minSizeFraction, 1.0)
		fh := clamp(srcH/source.Height, minSizeFraction, 1.0)
		w = fw * target.Width
		h = fh * target.Height
	}

	w = clamp(w, minTargetWidth, target.Width)
	h = clamp(h, minTargetHeight, target.Height)

	srcRel := relativeBounds(win, source)
	fx := positionFraction(srcRel.X, source.Width-srcRel.Width)
	fy := positionFraction(srcRel.Y, source.Height-srcRel.Height)

	x := target.X + math.Round(fx*(target.Width-w))
	y := target.Y + math.Round(fy*(target.Height-h))

	return types.Rect{X: x, Y: y, Width: math.Round(w), Height: math.Round(h)}
}

// positionFraction maps an offset within the available slack to [0, 1].
func positionFraction(offset, slack float64) float64 {
	if slack <= 0 {
		return 0
	}
	return clamp(offset/slack, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
