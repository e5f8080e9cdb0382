package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/pshkrh/window-controls/internal/topology"
	"github.com/pshkrh/window-controls/internal/types"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	if height > 24 {
		height = 24
	}
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		MaxWidth:   width,
		MaxHeight:  height,
	}
}

// VisualizeLayout renders every display with the aggregated app windows it
// holds, one display block per role badge.
func VisualizeLayout(topo *topology.Topology, summaries []types.AppSummary, opts VisualizationOptions) string {
	displays := topo.Displays()
	if len(displays) == 0 {
		return "No displays found\n"
	}

	var result strings.Builder
	for i, d := range displays {
		result.WriteString(visualizeDisplay(topo, d, summaries, opts))
		if i < len(displays)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// visualizeDisplay renders one display's windows as boxes labeled with the
// owning app's name.
func visualizeDisplay(topo *topology.Topology, display types.Display, summaries []types.AppSummary, opts VisualizationOptions) string {
	type labeled struct {
		window  types.Window
		appName string
	}

	var windows []labeled
	for _, s := range summaries {
		for _, w := range s.Windows {
			screen := topo.FindScreenForBounds(w.Bounds)
			if screen != nil && screen.ID == display.ID {
				windows = append(windows, labeled{window: w, appName: s.AppName})
			}
		}
	}

	badge := topo.BadgeForScreenID(display.ID)
	header := fmt.Sprintf("Display %s [%s] %s (%.0fx%.0f)\n",
		display.ID, badge, display.DeviceName, display.Bounds.Width, display.Bounds.Height)

	if len(windows) == 0 {
		return header + "(no windows)\n"
	}

	sc := NewScalingContext(display, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(opts.MaxWidth, opts.MaxHeight, opts.UseUnicode)

	// Draw display boundary
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	// Draw each window
	for _, lw := range windows {
		x, y := sc.PixelToTerminal(lw.window.Bounds.X, lw.window.Bounds.Y)
		w, h := sc.ScaleSize(lw.window.Bounds.Width, lw.window.Bounds.Height)
		x, y, w, h = sc.ClampToCanvas(x, y, w, h)

		if w < 3 || h < 2 {
			continue
		}

		canvas.DrawBox(x, y, w, h)

		label := windowLabel(lw.appName, lw.window)
		if len(label) <= w-2 && h >= 2 {
			canvas.DrawText(x+1, y+1, truncate(label, w-2))
		}
	}

	return header + canvas.String() + fmt.Sprintf("\nTotal: %d windows\n", len(windows))
}

// PrintVisualization prints a colored layout visualization to stdout
func PrintVisualization(topo *topology.Topology, summaries []types.AppSummary, opts VisualizationOptions) {
	result := VisualizeLayout(topo, summaries, opts)

	if color.NoColor {
		fmt.Print(result)
	} else {
		cyan := color.New(color.FgCyan)
		cyan.Print(result)
	}
}

func windowLabel(appName string, w types.Window) string {
	if appName == "" {
		appName = "Unknown"
	}
	size := fmt.Sprintf("%.0fx%.0f", w.Bounds.Width, w.Bounds.Height)
	return fmt.Sprintf("%s (%s)", appName, size)
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}
