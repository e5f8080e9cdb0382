package backend

import (
	"context"

	"github.com/pshkrh/window-controls/internal/types"
)

// Backend is the window-management collaborator the core drives: display
// inventory, window inventory, and the bounds-setter. Implemented by the
// native window server client below; tests substitute fakes.
type Backend interface {
	// Screens returns all attached displays.
	Screens(ctx context.Context) ([]types.Display, error)

	// Windows returns all windows the server currently reports.
	Windows(ctx context.Context) ([]types.Window, error)

	// SetWindowBounds moves a window onto the given screen with the given
	// bounds. Errors are per-window; the caller decides whether they are
	// fatal.
	SetWindowBounds(ctx context.Context, win types.Window, screenID string, bounds types.Rect) error
}
