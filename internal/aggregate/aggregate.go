package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pshkrh/window-controls/internal/appid"
	"github.com/pshkrh/window-controls/internal/logging"
	"github.com/pshkrh/window-controls/internal/topology"
	"github.com/pshkrh/window-controls/internal/types"
)

// Windows smaller than this are treated as non-windows (popovers, tooltips,
// status items) and excluded from aggregation.
const (
	minIncludeWidth  = 120.0
	minIncludeHeight = 80.0
)

// dedupQuantum collapses window reports whose bounds differ only by
// sub-pixel or rounding jitter between repeated server queries.
const dedupQuantum = 8.0

// Aggregator groups raw window descriptors into per-application summaries.
// It is a pure transformation over its inputs and a read-only topology; the
// resolver's lookup cache is the only state it touches.
type Aggregator struct {
	resolver *appid.Resolver
}

// New creates an aggregator over the given identity resolver.
func New(resolver *appid.Resolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// Apps filters, deduplicates, and groups windows into summaries annotated
// with the display badge of every screen the app's windows touch. Output is
// sorted by case-insensitive app name, ties broken by app path.
func (a *Aggregator) Apps(windows []types.Window, topo *topology.Topology) []types.AppSummary {
	type group struct {
		summary types.AppSummary
		has1    bool
		has2    bool
		screens map[string]bool
	}

	groups := make(map[string]*group)
	var order []string
	seen := make(map[string]bool)

	for _, w := range windows {
		path := a.resolver.ResolvePath(w.App)
		name := a.resolver.ResolveName(w.App, path)

		if !includeWindow(w, path, name, a.resolver.UnknownLabel()) {
			continue
		}

		sig := signature(path, name, w.Bounds)
		if seen[sig] {
			continue
		}
		seen[sig] = true

		key := appKey(path, name)
		g, ok := groups[key]
		if !ok {
			g = &group{
				summary: types.AppSummary{
					AppKey:  key,
					AppName: name,
					AppPath: path,
				},
				screens: make(map[string]bool),
			}
			groups[key] = g
			order = append(order, key)
		}

		g.summary.Windows = append(g.summary.Windows, w)

		if screen := topo.FindScreenForBounds(w.Bounds); screen != nil {
			if !g.screens[screen.ID] {
				g.screens[screen.ID] = true
				g.summary.ScreenIDs = append(g.summary.ScreenIDs, screen.ID)
			}
			badge := topo.BadgeForScreenID(screen.ID)
			if strings.Contains(badge, "1") {
				g.has1 = true
			}
			if strings.Contains(badge, "2") {
				g.has2 = true
			}
		}
	}

	summaries := make([]types.AppSummary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.summary.WindowCount = len(g.summary.Windows)
		g.summary.DisplayBadge = badgeFor(g.has1, g.has2)
		summaries = append(summaries, g.summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		ni := strings.ToLower(summaries[i].AppName)
		nj := strings.ToLower(summaries[j].AppName)
		if ni != nj {
			return ni < nj
		}
		return summaries[i].AppPath < summaries[j].AppPath
	})

	logging.Debug().
		Int("windows", len(windows)).
		Int("apps", len(summaries)).
		Msg("aggregated windows")

	return summaries
}

// includeWindow applies the inclusion filter: unknown identity, minimized,
// hidden, explicitly invisible or off-screen, and sub-minimum or non-finite
// bounds are all dropped.
func includeWindow(w types.Window, path, name, unknownLabel string) bool {
	if path == "" && name == unknownLabel {
		return false
	}
	if w.Minimized || w.Hidden {
		return false
	}
	if w.Visible != nil && !*w.Visible {
		return false
	}
	if w.OnScreen != nil && !*w.OnScreen {
		return false
	}
	if !w.Bounds.IsFinite() {
		return false
	}
	if w.Bounds.Width < minIncludeWidth || w.Bounds.Height < minIncludeHeight {
		return false
	}
	return true
}

// signature is the quantized dedup fingerprint. First occurrence wins;
// later duplicates are dropped, not merged.
func signature(path, name string, b types.Rect) string {
	return fmt.Sprintf("%s|%s|%d,%d,%d,%d",
		path, name,
		quantize(b.X), quantize(b.Y), quantize(b.Width), quantize(b.Height))
}

func quantize(v float64) int {
	return int(math.Round(v / dedupQuantum))
}

// appKey prefers the path-based key; name keys only exist for apps whose
// bundle path never resolved.
func appKey(path, name string) string {
	if path != "" {
		return "path:" + path
	}
	return "name:" + name
}

func badgeFor(has1, has2 bool) string {
	switch {
	case has1 && has2:
		return topology.BadgeBoth
	case has1:
		return topology.BadgeBuiltIn
	case has2:
		return topology.BadgeExternal
	default:
		return ""
	}
}
