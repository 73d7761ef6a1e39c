package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	"github.com/matzehuels/gridlayout/pkg/graph"
)

// generateCommand creates the generate command for random test graphs.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		nodes  int
		edges  int
		seed   uint64
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random graph",
		Long: `Write a graph with the given number of nodes and distinct random edges.

The output is JSON when the file name ends in .json and an edge list
otherwise; without -o the edge list goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			g, err := graph.Random(nodes, edges, rng)
			if err != nil {
				return err
			}
			if output == "" {
				return graph.WriteEdgeList(g, cmd.OutOrStdout())
			}
			if err := writeGraph(g, output); err != nil {
				return err
			}
			printSuccess("Generated %d nodes, %d edges", nodes, edges)
			printFile(output)
			printNewline()
			printNextStep("Lay out", appName+" layout "+output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&nodes, "nodes", "n", 10, "number of nodes")
	cmd.Flags().IntVarP(&edges, "edges", "m", 15, "number of distinct edges")
	cmd.Flags().Uint64Var(&seed, "seed", anneal.DefaultSeed, "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json for JSON, anything else for an edge list)")

	return cmd
}

func writeGraph(g graph.Graph, path string) error {
	if filepath.Ext(path) == ".json" {
		return graph.WriteGraphFile(g, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return errors.Join(graph.WriteEdgeList(g, f), f.Close())
}
