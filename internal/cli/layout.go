package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
)

// layoutCommand creates the layout command for annealing a graph onto a grid.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		noHistory bool
		lf        layoutFlags
		rf        renderFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph]",
		Short: "Place a graph on a grid",
		Long: `Place a graph on a grid by simulated annealing.

The input is a JSON graph or a plain edge list ("-" reads stdin). The result
is written as <input>.layout.json; add -f to also render artifacts next to it
(<input>.layout.svg, <input>.layout.txt, ...).

Settings come from, in increasing precedence: built-in defaults, the --config
TOML file, and explicit flags. Results are cached locally and recorded in the
run history. Interrupting a run (Ctrl-C) writes the best layout found so far.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}
			rf.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], output, opts, lf.noCache, noHistory)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "layout output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the run")
	lf.register(cmd.Flags())
	rf.register(cmd.Flags(), pipeline.FormatJSON)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes outputs.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, noCache, noHistory bool) error {
	g, err := pipeline.ReadGraphInput(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache, noHistory)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if !slices.Contains(opts.Formats, pipeline.FormatJSON) {
		opts.Formats = append(opts.Formats, pipeline.FormatJSON)
	}
	layoutPath := output
	if layoutPath == "" {
		layoutPath = outputBase(input) + ".layout.json"
	}

	prog := newProgress(ctx)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Annealing %d nodes...", len(g.Nodes)))
	spinner.Start()
	opts.Progress = func(s anneal.Step) {
		if s.State == anneal.StateAnnealing && s.Iteration == 1 {
			spinner.SetMessage("Annealing %d nodes · level %d · T=%.2f · best %d", len(g.Nodes), s.Level, s.Temperature, s.Best)
		}
	}

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		if result != nil && spinner.Cancelled() {
			spinner.Stop()
			return c.writeInterrupted(result.Layout, layoutPath, err)
		}
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.StopWithSuccess("Layout complete")
	prog.done("annealed", "nodes", len(g.Nodes), "cost", result.Layout.Cost, "cached", result.CacheInfo.LayoutHit)

	if err := os.WriteFile(layoutPath, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", layoutPath, err)
	}
	printFile(layoutPath)

	base := strings.TrimSuffix(layoutPath, filepath.Ext(layoutPath))
	for _, format := range opts.Formats {
		if format == pipeline.FormatJSON {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Layout.Width, result.Layout.Height, result.CacheInfo.LayoutHit)
	printNewline()
	printLayoutSummary(result.Layout)
	if result.RunID != "" {
		printKeyValue("Run", result.RunID)
	}
	printNewline()
	printNextStep("Render", appName+" render "+layoutPath+" -f svg")

	return nil
}

// writeInterrupted saves the best-so-far layout of a cancelled run.
func (c *CLI) writeInterrupted(l graph.Layout, path string, cause error) error {
	if err := graph.WriteLayoutFile(l, path); err != nil {
		return errors.Join(cause, fmt.Errorf("write partial layout %s: %w", path, err))
	}
	printWarning("Interrupted; wrote best layout so far (cost %d)", l.Cost)
	printFile(path)
	return cause
}

// outputBase derives the output path prefix from an input path.
func outputBase(input string) string {
	if input == "-" {
		return "graph"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
