package move

import (
	"math"
	"testing"

	"github.com/pshkrh/window-controls/internal/types"
)

func TestRelativeBounds(t *testing.T) {
	area := types.Rect{X: 1470, Y: 0, Width: 2560, Height: 1409}

	tests := []struct {
		name string
		win  types.Rect
		want types.Rect
	}{
		{
			name: "offset subtracted",
			win:  types.Rect{X: 1600, Y: 100, Width: 1200, Height: 800},
			want: types.Rect{X: 130, Y: 100, Width: 1200, Height: 800},
		},
		{
			name: "negative offset clamped to origin",
			win:  types.Rect{X: 1000, Y: -50, Width: 800, Height: 600},
			want: types.Rect{X: 0, Y: 0, Width: 800, Height: 600},
		},
		{
			name: "overhang clamped to extents",
			win:  types.Rect{X: 3800, Y: 1200, Width: 800, Height: 600},
			want: types.Rect{X: 1760, Y: 809, Width: 800, Height: 600},
		},
		{
			name: "oversize shrunk to area",
			win:  types.Rect{X: 1470, Y: 0, Width: 4000, Height: 2000},
			want: types.Rect{X: 0, Y: 0, Width: 2560, Height: 1409},
		},
		{
			name: "non-finite size replaced by defaults",
			win:  types.Rect{X: 1600, Y: 100, Width: math.NaN(), Height: 800},
			want: types.Rect{X: 130, Y: 100, Width: 800, Height: 600},
		},
		{
			name: "non-finite origin zeroed",
			win:  types.Rect{X: math.Inf(1), Y: 100, Width: 1200, Height: 800},
			want: types.Rect{X: 0, Y: 100, Width: 1200, Height: 800},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := relativeBounds(tt.win, area)
			if got != tt.want {
				t.Errorf("relativeBounds(%v) = %v, want %v", tt.win, got, tt.want)
			}
		})
	}
}

func TestClampRelative(t *testing.T) {
	area := types.Rect{X: 0, Y: 0, Width: 1470, Height: 922}

	tests := []struct {
		name string
		rel  types.Rect
		want types.Rect
	}{
		{
			name: "fits untouched",
			rel:  types.Rect{X: 100, Y: 50, Width: 800, Height: 600},
			want: types.Rect{X: 100, Y: 50, Width: 800, Height: 600},
		},
		{
			name: "pushed back inside",
			rel:  types.Rect{X: 1000, Y: 500, Width: 800, Height: 600},
			want: types.Rect{X: 670, Y: 322, Width: 800, Height: 600},
		},
		{
			name: "larger than area",
			rel:  types.Rect{X: 50, Y: 50, Width: 2000, Height: 1200},
			want: types.Rect{X: 0, Y: 0, Width: 1470, Height: 922},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampRelative(tt.rel, area)
			if got != tt.want {
				t.Errorf("clampRelative(%v) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestTargetBounds(t *testing.T) {
	tests := []struct {
		name   string
		win    types.Rect
		source types.Rect
		target types.Rect
		want   types.Rect
	}{
		{
			name:   "absolute size kept when it fits",
			win:    types.Rect{X: 1600, Y: 100, Width: 1200, Height: 800},
			source: types.Rect{X: 1470, Y: 0, Width: 2560, Height: 1409},
			target: types.Rect{X: 0, Y: 0, Width: 1470, Height: 922},
			want:   types.Rect{X: 26, Y: 20, Width: 1200, Height: 800},
		},
		{
			name:   "oversize scaled by source fraction",
			win:    types.Rect{X: 0, Y: 0, Width: 800, Height: 800},
			source: types.Rect{X: 0, Y: 0, Width: 1000, Height: 1000},
			target: types.Rect{X: 0, Y: 0, Width: 500, Height: 500},
			want:   types.Rect{X: 0, Y: 0, Width: 400, Height: 400},
		},
		{
			name:   "tiny window grows to minimum size",
			win:    types.Rect{X: 900, Y: 950, Width: 100, Height: 50},
			source: types.Rect{X: 0, Y: 0, Width: 1000, Height: 1000},
			target: types.Rect{X: 0, Y: 0, Width: 500, Height: 500},
			want:   types.Rect{X: 300, Y: 380, Width: 200, Height: 120},
		},
		{
			name:   "non-finite size uses defaults",
			win:    types.Rect{X: 0, Y: 0, Width: math.NaN(), Height: math.Inf(1)},
			source: types.Rect{X: 0, Y: 0, Width: 1000, Height: 1000},
			target: types.Rect{X: 0, Y: 0, Width: 1470, Height: 922},
			want:   types.Rect{X: 0, Y: 0, Width: 800, Height: 600},
		},
		{
			name:   "target offset applied",
			win:    types.Rect{X: 0, Y: 0, Width: 800, Height: 600},
			source: types.Rect{X: 0, Y: 0, Width: 1470, Height: 922},
			target: types.Rect{X: 1470, Y: 0, Width: 2560, Height: 1409},
			want:   types.Rect{X: 1470, Y: 0, Width: 800, Height: 600},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := targetBounds(tt.win, tt.source, tt.target)
			if got != tt.want {
				t.Errorf("targetBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetBoundsNeverExceedsTarget(t *testing.T) {
	source := types.Rect{X: 1470, Y: 0, Width: 2560, Height: 1409}
	target := types.Rect{X: 0, Y: 0, Width: 1470, Height: 922}

	wins := []types.Rect{
		{X: 1470, Y: 0, Width: 2560, Height: 1409},
		{X: 2000, Y: 500, Width: 2400, Height: 1300},
		{X: 1470, Y: 0, Width: 10, Height: 10},
	}

	for _, win := range wins {
		got := targetBounds(win, source, target)
		if got.Width > target.Width || got.Height > target.Height {
			t.Errorf("targetBounds(%v) size %vx%v exceeds target %vx%v",
				win, got.Width, got.Height, target.Width, target.Height)
		}
		if got.Width < minTargetWidth || got.Height < minTargetHeight {
			t.Errorf("targetBounds(%v) size %vx%v under minimum", win, got.Width, got.Height)
		}
		if got.X < target.X || got.Y < target.Y ||
			got.X+got.Width > target.X+target.Width ||
			got.Y+got.Height > target.Y+target.Height {
			t.Errorf("targetBounds(%v) = %v lies outside target %v", win, got, target)
		}
	}
}

func TestPositionFraction(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		slack  float64
		want   float64
	}{
		{"zero slack", 100, 0, 0},
		{"negative slack", 100, -50, 0},
		{"midpoint", 50, 100, 0.5},
		{"clamped high", 200, 100, 1},
		{"clamped low", -20, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := positionFraction(tt.offset, tt.slack); got != tt.want {
				t.Errorf("positionFraction(%v, %v) = %v, want %v", tt.offset, tt.slack, got, tt.want)
			}
		})
	}
}
