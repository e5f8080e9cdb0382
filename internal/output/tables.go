package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pshkrh/window-controls/internal/topology"
	"github.com/pshkrh/window-controls/internal/types"
)

// PrintAppsTable prints aggregated application summaries in a table format
func PrintAppsTable(summaries []types.AppSummary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("App", "Windows", "Display", "Screens", "Path")

	for _, s := range summaries {
		table.Append(
			truncate(s.AppName, 25),
			fmt.Sprintf("%d", s.WindowCount),
			s.DisplayBadge,
			strings.Join(s.ScreenIDs, ", "),
			truncate(s.AppPath, 40),
		)
	}

	table.Render()
}

// PrintDisplaysTable prints displays with their classified roles
func PrintDisplaysTable(topo *topology.Topology) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Badge", "Primary", "Bounds", "Work Area")

	for _, d := range topo.Displays() {
		primary := ""
		if d.IsPrimary {
			primary = "★"
		}

		table.Append(
			d.ID,
			truncate(d.DeviceName, 25),
			topo.BadgeForScreenID(d.ID),
			primary,
			formatRect(d.Bounds),
			formatRect(d.WorkArea),
		)
	}

	table.Render()
}

// PrintWindowsTable prints windows in a table format
func PrintWindowsTable(windows []types.Window, topo *topology.Topology) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Title", "Screen", "Bounds", "Minimized")

	for _, w := range windows {
		screenID := ""
		if screen := topo.FindScreenForBounds(w.Bounds); screen != nil {
			screenID = screen.ID
		}

		minimized := ""
		if w.Minimized {
			minimized = "✓"
		}

		table.Append(
			w.ID,
			truncate(w.Title, 30),
			screenID,
			formatRect(w.Bounds),
			minimized,
		)
	}

	table.Render()
}

// PrintMoveSummary prints the outcome of a move batch
func PrintMoveSummary(summary *types.MoveSummary) {
	fmt.Printf("Moved %d of %d window(s)\n", summary.Moved, summary.Total)
	for _, f := range summary.Failures {
		title := f.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("  failed: %s: %s\n", title, f.Error)
	}
}

func formatRect(r types.Rect) string {
	return fmt.Sprintf("%.0f,%.0f %.0fx%.0f", r.X, r.Y, r.Width, r.Height)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
