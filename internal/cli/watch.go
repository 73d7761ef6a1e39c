package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
)

// watchCommand creates the watch command, which anneals with a live view.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		output    string
		ids       bool
		noHistory bool
		lf        layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "watch [graph]",
		Short: "Anneal a graph with a live view of the cooling schedule",
		Long: `Anneal a graph while showing the temperature, the current and best cost,
and per-level acceptance in the terminal. Press q to stop early; the best
layout found so far is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}
			opts.IDs = ids
			return c.runWatch(cmd.Context(), args[0], output, opts, lf.noCache, noHistory)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout to this file")
	cmd.Flags().BoolVar(&ids, "ids", false, "label nodes by id in the final grid")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the run")
	lf.register(cmd.Flags())

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input, output string, opts pipeline.Options, noCache, noHistory bool) error {
	g, err := pipeline.ReadGraphInput(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	if err := opts.ValidateForLayout(len(g.Nodes)); err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatJSON}

	runner, err := c.newRunner(noCache, noHistory)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewWatchModel(len(g.Nodes), opts, cancel))
	opts.Progress = func(s anneal.Step) { p.Send(stepMsg(s)) }

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		res, err := runner.Execute(ctx, g, opts)
		p.Send(doneMsg{result: res, err: err})
	}()

	final, runErr := p.Run()
	cancel()
	<-finished
	if runErr != nil {
		return fmt.Errorf("watch: %w", runErr)
	}

	m := final.(WatchModel)
	if m.Result == nil {
		return m.Err
	}
	if m.Err != nil && !isInterrupted(m.Err) {
		return m.Err
	}
	if m.Err != nil {
		printWarning("Stopped early; keeping best layout so far")
	}

	printLayoutSummary(m.Result.Layout)
	if output != "" {
		if err := graph.WriteLayoutFile(m.Result.Layout, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
	}
	return nil
}
