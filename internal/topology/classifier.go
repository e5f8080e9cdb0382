package topology

import (
	"regexp"
	"sort"

	"github.com/pshkrh/window-controls/internal/types"
)

// Roles is the binary built-in/external assignment over the current display
// set. With a single display both roles point at the same descriptor.
type Roles struct {
	BuiltIn  *types.Display
	External *types.Display
}

// Classifier decides which display plays which role. The default heuristic
// can be swapped for a config-pinned strategy without touching aggregation
// or move logic.
type Classifier interface {
	Classify(displays []types.Display) Roles
}

const (
	// appleVendorID is the manufacturer code internal panels report.
	appleVendorID = "610"

	// externalSentinelID is the screen id the window server hands the
	// first attached external display.
	externalSentinelID = "2"
)

var builtinNamePattern = regexp.MustCompile(`(?i)built-in|retina`)

// HeuristicClassifier picks roles from display metadata.
//
// Built-in, first match wins: device name matching built-in/retina, then the
// vendor code, then the primary flag, then input order. External: the
// sentinel screen id among the remaining displays, else the
// lexicographically first device name; a single-display setup degenerates to
// the built-in display holding both roles.
type HeuristicClassifier struct{}

var _ Classifier = HeuristicClassifier{}

func (HeuristicClassifier) Classify(displays []types.Display) Roles {
	if len(displays) == 0 {
		return Roles{}
	}

	builtIn := pickBuiltIn(displays)

	var rest []types.Display
	for _, d := range displays {
		if d.ID != builtIn.ID {
			rest = append(rest, d)
		}
	}

	external := pickExternal(rest)
	if external == nil {
		external = builtIn
	}

	return Roles{BuiltIn: builtIn, External: external}
}

func pickBuiltIn(displays []types.Display) *types.Display {
	for i := range displays {
		if builtinNamePattern.MatchString(displays[i].DeviceName) {
			return &displays[i]
		}
	}
	for i := range displays {
		if displays[i].ManufacturerID == appleVendorID {
			return &displays[i]
		}
	}
	for i := range displays {
		if displays[i].IsPrimary {
			return &displays[i]
		}
	}
	return &displays[0]
}

func pickExternal(candidates []types.Display) *types.Display {
	if len(candidates) == 0 {
		return nil
	}

	for i := range candidates {
		if candidates[i].ID == externalSentinelID {
			return &candidates[i]
		}
	}

	sorted := make([]types.Display, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DeviceName < sorted[j].DeviceName
	})
	return &sorted[0]
}

// PinnedClassifier honors configured display ids and falls back to the
// heuristic for anything not pinned or not currently attached.
type PinnedClassifier struct {
	BuiltInID  string
	ExternalID string
	Fallback   Classifier
}

var _ Classifier = PinnedClassifier{}

func (p PinnedClassifier) Classify(displays []types.Display) Roles {
	fallback := p.Fallback
	if fallback == nil {
		fallback = HeuristicClassifier{}
	}
	roles := fallback.Classify(displays)

	if d := findByID(displays, p.BuiltInID); d != nil {
		roles.BuiltIn = d
	}
	if d := findByID(displays, p.ExternalID); d != nil {
		roles.External = d
	}
	return roles
}

func findByID(displays []types.Display, id string) *types.Display {
	if id == "" {
		return nil
	}
	for i := range displays {
		if displays[i].ID == id {
			return &displays[i]
		}
	}
	return nil
}
