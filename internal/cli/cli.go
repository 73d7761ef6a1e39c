// Package cli implements the gridlayout command-line interface.
//
// # Commands
//
//   - layout: anneal a graph onto a grid and write the layout (and artifacts)
//   - render: render a layout file to SVG, PNG, DOT, or text
//   - watch: anneal with a live terminal view of the cooling schedule
//   - generate: write a random graph for experiments
//   - history: list, show, and delete recorded runs
//   - serve: run the HTTP API
//   - cache: manage the local layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes pipeline, annealing, and cache events to the log. Loggers are
// passed through context.Context.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlayout/pkg/buildinfo"
	"github.com/matzehuels/gridlayout/pkg/cache"
	"github.com/matzehuels/gridlayout/pkg/observability"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
	"github.com/matzehuels/gridlayout/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gridlayout places graphs on grids by simulated annealing",
		Long:         `gridlayout assigns every node of an undirected graph to its own grid cell so that neighbours sit close together and unrelated nodes spread apart, searching with simulated annealing and steepest-descent local search.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.LogHooks{Logger: c.Logger}.Register()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Unless noHistory is set,
// completed runs are recorded in the local history.
func (c *CLI) newRunner(noCache, noHistory bool) (*pipeline.Runner, error) {
	runner := pipeline.NewRunner(newCache(noCache, c.Logger), nil, c.Logger)
	if !noHistory {
		st, err := store.NewFileStore("")
		if err != nil {
			return nil, err
		}
		runner.Store = st
	}
	return runner, nil
}

// newCache opens the local file cache, degrading to no caching when the
// cache directory is unusable.
func newCache(noCache bool, logger *log.Logger) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Empty input yields nil so pipeline defaults apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
