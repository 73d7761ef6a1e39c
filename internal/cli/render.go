package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
)

// renderCommand creates the render command for turning layout files into artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a layout file",
		Long: `Render a layout file produced by 'layout' to one or more formats.

Formats: svg and png draw the graph with every node pinned to its cell,
dot emits the Graphviz source, txt draws the grid as text, json rewrites
the layout. Use -o - with a single text format to print to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			rf.apply(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], output, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	rf.register(cmd.Flags(), pipeline.FormatSVG)

	return cmd
}

// runRender loads a layout and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(ctx)
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	prog.done("rendered", "formats", strings.Join(opts.Formats, ","), "cached", cached)

	if output == "-" {
		if len(opts.Formats) != 1 || opts.Formats[0] == pipeline.FormatPNG {
			return fmt.Errorf("stdout output needs exactly one text format")
		}
		_, err := os.Stdout.Write(artifacts[opts.Formats[0]])
		return err
	}

	paths := renderPaths(input, output, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}

	printSuccess("Rendered %s", strings.Join(opts.Formats, ", "))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(len(l.Nodes), len(l.Edges), l.Width, l.Height, cached)
	return nil
}

// renderPaths maps each format to its output file. A single format with an
// explicit output uses that path as is; otherwise output (or the input minus
// its extension) is the base name, so x.layout.json renders to x.layout.svg.
func renderPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = outputBase(input)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
