package move

import (
	"context"
	"fmt"
	"sync"

	"github.com/pshkrh/window-controls/internal/appid"
	"github.com/pshkrh/window-controls/internal/backend"
	"github.com/pshkrh/window-controls/internal/logging"
	"github.com/pshkrh/window-controls/internal/topology"
	"github.com/pshkrh/window-controls/internal/types"
)

// Engine moves windows between the two display roles and owns the
// remembered-bounds cache that restores prior placement on a return visit.
// The cache lives as long as the engine; discard the engine to forget all
// layouts. Entries are keyed by window, then display id, and store bounds
// relative to that display's work area.
type Engine struct {
	backend    backend.Backend
	classifier topology.Classifier
	resolver   *appid.Resolver

	// Per-window move tasks run on their own goroutines; the map itself
	// needs the lock even though entries are partitioned by key.
	mu         sync.Mutex
	remembered map[string]map[string]types.Rect
}

// NewEngine creates a move engine. A nil classifier uses the default
// heuristic.
func NewEngine(b backend.Backend, classifier topology.Classifier, resolver *appid.Resolver) *Engine {
	return &Engine{
		backend:    b,
		classifier: classifier,
		resolver:   resolver,
		remembered: make(map[string]map[string]types.Rect),
	}
}

// MoveWindow moves a single window to the display in the given direction.
func (e *Engine) MoveWindow(ctx context.Context, win types.Window, dir types.Direction) (*types.MoveSummary, error) {
	return e.moveBatch(ctx, []types.Window{win}, dir)
}

// MoveAppWindows moves every window of one application to the display in the
// given direction. The live window list is fetched from the backend and
// filtered by resolved app path, falling back to resolved name for windows
// whose path never resolved.
func (e *Engine) MoveAppWindows(ctx context.Context, appPath, appName string, dir types.Direction) (*types.MoveSummary, error) {
	windows, err := e.backend.Windows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch windows: %w", err)
	}

	var batch []types.Window
	for _, w := range windows {
		path := e.resolver.ResolvePath(w.App)
		if path != "" && appPath != "" {
			if path == appPath {
				batch = append(batch, w)
			}
			continue
		}
		if appName != "" && e.resolver.ResolveName(w.App, path) == appName {
			batch = append(batch, w)
		}
	}

	return e.moveBatch(ctx, batch, dir)
}

// moveResult is one window task's settled outcome.
type moveResult struct {
	title string
	err   error
}

// moveBatch resolves the target display once, then fans the batch out to
// one task per window. Fetch and target-resolution errors are fatal;
// per-window setter errors are captured into the summary and never abort
// sibling tasks.
func (e *Engine) moveBatch(ctx context.Context, windows []types.Window, dir types.Direction) (*types.MoveSummary, error) {
	displays, err := e.backend.Screens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch displays: %w", err)
	}

	topo := topology.New(displays, e.classifier)
	target := topo.ResolveTargetScreen(dir)
	if target == nil {
		return nil, fmt.Errorf("unable to resolve target display for direction %q", dir)
	}

	results := make(chan moveResult, len(windows))
	var wg sync.WaitGroup
	for i, w := range windows {
		wg.Add(1)
		go func(idx int, win types.Window) {
			defer wg.Done()
			results <- moveResult{
				title: win.Title,
				err:   e.moveOne(ctx, topo, *target, win, idx),
			}
		}(i, w)
	}
	wg.Wait()
	close(results)

	summary := &types.MoveSummary{Total: len(windows)}
	for res := range results {
		if res.err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, types.MoveFailure{
				Title: res.title,
				Error: res.err.Error(),
			})
		} else {
			summary.Moved++
		}
	}

	logging.Info().
		Str("direction", string(dir)).
		Str("target", target.ID).
		Int("total", summary.Total).
		Int("moved", summary.Moved).
		Int("failed", summary.Failed).
		Msg("move batch complete")

	return summary, nil
}

// moveOne computes and applies one window's placement on the target display.
func (e *Engine) moveOne(ctx context.Context, topo *topology.Topology, target types.Display, win types.Window, idx int) error {
	key := e.windowKey(win, idx)

	source := topo.FindScreenForBounds(win.Bounds)
	if source == nil {
		source = &target
	}

	// Remember where the window sits on its source display so a later
	// move back restores this exact layout.
	srcRel := relativeBounds(win.Bounds, source.WorkArea)
	e.remember(key, source.ID, srcRel)

	var bounds types.Rect
	if rel, ok := e.recall(key, target.ID); ok {
		bounds = absolute(clampRelative(rel, target.WorkArea), target.WorkArea)
	} else {
		bounds = targetBounds(win.Bounds, source.WorkArea, target.WorkArea)
	}

	if err := e.backend.SetWindowBounds(ctx, win, target.ID, bounds); err != nil {
		logging.Warn().
			Str("window", key).
			Str("target", target.ID).
			Err(err).
			Msg("failed to set window bounds")
		return err
	}

	e.remember(key, target.ID, relativeBounds(bounds, target.WorkArea))

	logging.Debug().
		Str("window", key).
		Str("source", source.ID).
		Str("target", target.ID).
		Float64("x", bounds.X).
		Float64("y", bounds.Y).
		Float64("width", bounds.Width).
		Float64("height", bounds.Height).
		Msg("moved window")

	return nil
}

// windowKey identifies a window across refreshes: the server id when
// present, else a composite of resolved path, title, and batch position.
func (e *Engine) windowKey(win types.Window, idx int) string {
	if win.ID != "" {
		return win.ID
	}
	path := e.resolver.ResolvePath(win.App)
	return fmt.Sprintf("%s|%s|%d", path, win.Title, idx)
}

func (e *Engine) remember(key, displayID string, rel types.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()

	byDisplay, ok := e.remembered[key]
	if !ok {
		byDisplay = make(map[string]types.Rect)
		e.remembered[key] = byDisplay
	}
	byDisplay[displayID] = rel
}

func (e *Engine) recall(key, displayID string) (types.Rect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rel, ok := e.remembered[key][displayID]
	return rel, ok
}
