package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/render/gridtext"
	"github.com/matzehuels/gridlayout/pkg/store"
)

// historyCommand creates the history command for browsing recorded runs.
func (c *CLI) historyCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded layout runs",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "history directory (default: $XDG_DATA_HOME/gridlayout/runs)")

	cmd.AddCommand(c.historyListCommand(&dir))
	cmd.AddCommand(c.historyShowCommand(&dir))
	cmd.AddCommand(c.historyDeleteCommand(&dir))

	return cmd
}

func (c *CLI) historyListCommand(dir *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewFileStore(*dir)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No runs recorded")
				return nil
			}
			printRunsTable(runs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs")
	return cmd
}

func (c *CLI) historyShowCommand(dir *string) *cobra.Command {
	var (
		ids    bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewFileStore(*dir)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printKeyValue("Run", run.ID)
			printKeyValue("Created", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			printKeyValue("Graph", fmt.Sprintf("%d nodes, %d edges", len(run.Graph.Nodes), len(run.Graph.Edges)))
			printNewline()
			printLayoutSummary(run.Layout)
			fmt.Print(gridtext.Render(run.Layout, gridtext.Options{IDs: ids}))

			if output != "" {
				if err := graph.WriteLayoutFile(run.Layout, output); err != nil {
					return fmt.Errorf("write output %s: %w", output, err)
				}
				printFile(output)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ids, "ids", false, "label nodes by id")
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the layout to this file")
	return cmd
}

func (c *CLI) historyDeleteCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewFileStore(*dir)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted run %s", args[0])
			return nil
		},
	}
}
