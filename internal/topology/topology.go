package topology

import (
	"github.com/pshkrh/window-controls/internal/logging"
	"github.com/pshkrh/window-controls/internal/types"
)

// Badge labels for the two display roles.
const (
	BadgeBuiltIn  = "1"
	BadgeExternal = "2"
	BadgeBoth     = "1+2"
)

// Topology is a read-only classification of one display inventory. Build a
// fresh one on every refresh; it is never mutated after construction.
type Topology struct {
	displays []types.Display
	roles    Roles
}

// New classifies the given displays. A nil classifier uses the default
// heuristic. An empty display list yields a topology whose every query
// returns nil or "".
func New(displays []types.Display, classifier Classifier) *Topology {
	if classifier == nil {
		classifier = HeuristicClassifier{}
	}
	roles := classifier.Classify(displays)

	if roles.BuiltIn != nil && roles.External != nil {
		logging.Debug().
			Str("builtIn", roles.BuiltIn.ID).
			Str("external", roles.External.ID).
			Int("displays", len(displays)).
			Msg("classified displays")
	}

	return &Topology{displays: displays, roles: roles}
}

// Displays returns the display inventory this topology was built from.
func (t *Topology) Displays() []types.Display {
	return t.displays
}

// BuiltIn returns the display holding the built-in role, or nil.
func (t *Topology) BuiltIn() *types.Display {
	return t.roles.BuiltIn
}

// External returns the display holding the external role, or nil.
func (t *Topology) External() *types.Display {
	return t.roles.External
}

// ResolveTargetScreen maps a move direction to its target display: left is
// the built-in display, right the external one. Any other direction is nil.
func (t *Topology) ResolveTargetScreen(dir types.Direction) *types.Display {
	switch dir {
	case types.DirLeft:
		return t.roles.BuiltIn
	case types.DirRight:
		return t.roles.External
	default:
		return nil
	}
}

// FindScreenForBounds returns the display a rectangle belongs to: the first
// display (input order) whose work area contains the rectangle's center,
// else the display with the largest work-area overlap, first max winning
// ties. Nil only when the display list is empty.
func (t *Topology) FindScreenForBounds(rect types.Rect) *types.Display {
	if len(t.displays) == 0 {
		return nil
	}

	center := rect.Center()
	for i := range t.displays {
		if t.displays[i].WorkArea.Contains(center) {
			return &t.displays[i]
		}
	}

	best := 0
	bestArea := t.displays[0].WorkArea.Overlap(rect)
	for i := 1; i < len(t.displays); i++ {
		if area := t.displays[i].WorkArea.Overlap(rect); area > bestArea {
			best = i
			bestArea = area
		}
	}
	return &t.displays[best]
}

// BadgeForScreenID returns the role badge for a screen id: "1" for the
// built-in display, "2" for the external one, "1+2" when one display holds
// both roles, "" for anything else.
func (t *Topology) BadgeForScreenID(id string) string {
	isBuiltIn := t.roles.BuiltIn != nil && t.roles.BuiltIn.ID == id
	isExternal := t.roles.External != nil && t.roles.External.ID == id

	switch {
	case isBuiltIn && isExternal:
		return BadgeBoth
	case isBuiltIn:
		return BadgeBuiltIn
	case isExternal:
		return BadgeExternal
	default:
		return ""
	}
}
