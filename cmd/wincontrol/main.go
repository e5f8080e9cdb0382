package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pshkrh/window-controls/internal/aggregate"
	"github.com/pshkrh/window-controls/internal/appid"
	"github.com/pshkrh/window-controls/internal/backend"
	"github.com/pshkrh/window-controls/internal/config"
	"github.com/pshkrh/window-controls/internal/logging"
	"github.com/pshkrh/window-controls/internal/move"
	"github.com/pshkrh/window-controls/internal/output"
	"github.com/pshkrh/window-controls/internal/topology"
	"github.com/pshkrh/window-controls/internal/types"
)

var (
	configPath string
	socketPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "wincontrol",
	Short: "Two-display window placement controller",
	Long: `wincontrol places application windows onto one of two displays and
remembers per-window layout so moving a window back restores its prior
placement.

Displays are classified into a built-in ("1", the left target) and an
external ("2", the right target) role; applications are listed with a badge
showing which display(s) their windows occupy.`,
	Version: "0.1.0",
}

// pingCmd tests server connectivity
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to the window server",
	Long:  `Sends a ping request to the window server to test connectivity and response time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		start := time.Now()
		result, err := c.Ping(context.Background())
		elapsed := time.Since(start)

		if err != nil {
			printError(fmt.Sprintf("Ping failed: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}

		successColor.Println("✓ Pong received")
		fmt.Printf("Response time: %v\n", elapsed)
		return nil
	},
}

// listCmd is the parent command for list subcommands
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications, displays, or windows",
	Long:  `Lists aggregated applications, classified displays, or filtered windows in a table format.`,
}

// listAppsCmd lists aggregated per-application summaries
var listAppsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List applications with display badges",
	Long: `Aggregates the current window inventory into per-application groups.

Each application shows its window count and a display badge: "1" for the
built-in display, "2" for the external one, "1+2" for both.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cfg, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		summaries, _, err := fetchSummaries(context.Background(), c, cfg)
		if err != nil {
			printError(err.Error())
			return err
		}

		if jsonOutput {
			return printJSON(summaries)
		}

		if len(summaries) == 0 {
			fmt.Println("No applications found")
			return nil
		}
		output.PrintAppsTable(summaries)
		return nil
	},
}

// listDisplaysCmd lists displays with their classified roles
var listDisplaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List displays with their classified roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cfg, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		topo, err := fetchTopology(context.Background(), c, cfg)
		if err != nil {
			printError(err.Error())
			return err
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"displays": topo.Displays(),
				"builtIn":  topo.BuiltIn(),
				"external": topo.External(),
			})
		}

		if len(topo.Displays()) == 0 {
			fmt.Println("No displays found")
			return nil
		}
		output.PrintDisplaysTable(topo)
		return nil
	},
}

// listWindowsCmd lists the raw window inventory
var listWindowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cfg, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		ctx := context.Background()
		topo, err := fetchTopology(ctx, c, cfg)
		if err != nil {
			printError(err.Error())
			return err
		}

		windows, err := c.Windows(ctx)
		if err != nil {
			printError(fmt.Sprintf("Failed to fetch windows: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(windows)
		}

		if len(windows) == 0 {
			fmt.Println("No windows found")
			return nil
		}
		output.PrintWindowsTable(windows, topo)
		return nil
	},
}

// moveCmd is the parent command for move subcommands
var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move windows between displays",
	Long: `Moves one window or all of an application's windows to the display in
the given direction ("left" = built-in, "right" = external).

A window moved back to a display it previously occupied is restored to the
bounds it last had there.`,
}

// moveAppCmd moves all windows of an application
var moveAppCmd = &cobra.Command{
	Use:   "app <name-or-path> <left|right>",
	Short: "Move all of an application's windows",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, ok := types.ParseDirection(args[1])
		if !ok {
			printError(fmt.Sprintf("Invalid direction %q (want left or right)", args[1]))
			return fmt.Errorf("invalid direction: %s", args[1])
		}

		c, cfg, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		engine := newEngine(c, cfg)

		appPath := ""
		appName := args[0]
		if strings.HasPrefix(args[0], "/") {
			appPath = args[0]
			appName = ""
		}

		summary, err := engine.MoveAppWindows(context.Background(), appPath, appName, dir)
		if err != nil {
			printError(err.Error())
			return err
		}

		return printMoveResult(summary)
	},
}

// moveWindowCmd moves a single window by its server id
var moveWindowCmd = &cobra.Command{
	Use:   "window <id> <left|right>",
	Short: "Move a single window",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, ok := types.ParseDirection(args[1])
		if !ok {
			printError(fmt.Sprintf("Invalid direction %q (want left or right)", args[1]))
			return fmt.Errorf("invalid direction: %s", args[1])
		}

		c, cfg, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		ctx := context.Background()
		windows, err := c.Windows(ctx)
		if err != nil {
			printError(fmt.Sprintf("Failed to fetch windows: %v", err))
			return err
		}

		var target *types.Window
		for i := range windows {
			if windows[i].ID == args[0] {
				target = &windows[i]
				break
			}
		}
		if target == nil {
			printError(fmt.Sprintf("No window with id %s", args[0]))
			return fmt.Errorf("window %s not found", args[0])
		}

		engine := newEngine(c, cfg)
		summary, err := engine.MoveWindow(ctx, *target, dir)
		if err != nil {
			printError(err.Error())
			return err
		}

		return printMoveResult(summary)
	},
}

// showCmd is the parent command for visualization subcommands
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Visualize window layouts",
}

var (
	showASCII  bool
	showWidth  int
	showHeight int
)

// showLayoutCmd visualizes all displays with their windows
var showLayoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show all displays with their windows",
	Long: `Displays a spatial ASCII/Unicode representation of every display with its
windows. Display headers carry the role badge; window boxes carry the owning
application's name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cfg, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		summaries, topo, err := fetchSummaries(context.Background(), c, cfg)
		if err != nil {
			printError(err.Error())
			return err
		}

		opts := output.DefaultVisualizationOptions()
		if showASCII {
			opts.UseUnicode = false
		}
		if showWidth > 0 {
			opts.MaxWidth = showWidth
		}
		if showHeight > 0 {
			opts.MaxHeight = showHeight
		}

		output.PrintVisualization(topo, summaries, opts)
		return nil
	},
}

// newClient loads configuration and creates a window server client.
func newClient() (*backend.Client, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		printError(fmt.Sprintf("Failed to load config: %v", err))
		return nil, nil, err
	}

	socket := cfg.Server.Socket
	if socketPath != "" {
		socket = socketPath
	}
	t := cfg.Timeout()
	if timeout > 0 {
		t = timeout
	}

	return backend.NewClient(socket, t), cfg, nil
}

// newResolver builds the app identity resolver from config.
func newResolver(cfg *config.Config) *appid.Resolver {
	return appid.NewResolver(appid.SpotlightIndex{}, appid.WithUnknownLabel(cfg.UnknownAppLabel))
}

// newClassifier builds the display classifier, honoring pinned ids.
func newClassifier(cfg *config.Config) topology.Classifier {
	if cfg.Displays.BuiltInID != "" || cfg.Displays.ExternalID != "" {
		return topology.PinnedClassifier{
			BuiltInID:  cfg.Displays.BuiltInID,
			ExternalID: cfg.Displays.ExternalID,
		}
	}
	return topology.HeuristicClassifier{}
}

func newEngine(c *backend.Client, cfg *config.Config) *move.Engine {
	return move.NewEngine(c, newClassifier(cfg), newResolver(cfg))
}

// fetchTopology fetches displays and classifies them.
func fetchTopology(ctx context.Context, c *backend.Client, cfg *config.Config) (*topology.Topology, error) {
	displays, err := c.Screens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch displays: %w", err)
	}
	return topology.New(displays, newClassifier(cfg)), nil
}

// fetchSummaries fetches windows and displays and aggregates them.
func fetchSummaries(ctx context.Context, c *backend.Client, cfg *config.Config) ([]types.AppSummary, *topology.Topology, error) {
	topo, err := fetchTopology(ctx, c, cfg)
	if err != nil {
		return nil, nil, err
	}

	windows, err := c.Windows(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch windows: %w", err)
	}

	agg := aggregate.New(newResolver(cfg))
	return agg.Apps(windows, topo), topo, nil
}

func printMoveResult(summary *types.MoveSummary) error {
	if jsonOutput {
		return printJSON(summary)
	}

	if summary.Failed == 0 {
		successColor.Printf("✓ Moved %d window(s)\n", summary.Moved)
	} else {
		output.PrintMoveSummary(summary)
	}
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printError(msg string) {
	errorColor.Fprintln(os.Stderr, msg)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		fmt.Sprintf("Config file path (default %s)", config.GetConfigPath()))
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Window server socket path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	showLayoutCmd.Flags().BoolVar(&showASCII, "ascii", false, "Use ASCII box drawing")
	showLayoutCmd.Flags().IntVar(&showWidth, "width", 0, "Visualization width in characters")
	showLayoutCmd.Flags().IntVar(&showHeight, "height", 0, "Visualization height in characters")

	listCmd.AddCommand(listAppsCmd, listDisplaysCmd, listWindowsCmd)
	moveCmd.AddCommand(moveAppCmd, moveWindowCmd)
	showCmd.AddCommand(showLayoutCmd)

	rootCmd.AddCommand(pingCmd, listCmd, moveCmd, showCmd)

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug()
		}
	})
}

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
