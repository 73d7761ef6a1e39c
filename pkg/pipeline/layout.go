package pipeline

import (
	"context"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/observability"
)

// GenerateLayout anneals g onto the grid described by opts.
// Options must already be validated (see Options.ValidateForLayout).
//
// If ctx is cancelled mid-run, the best layout found so far is returned
// together with ctx.Err(). Any other error leaves the layout empty.
func GenerateLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, error) {
	hooks := observability.Anneal()
	accepted := 0

	a := anneal.Annealer{
		Params: opts.Anneal,
		Progress: func(s anneal.Step) {
			if opts.Progress != nil {
				opts.Progress(s)
			}
			if s.State != anneal.StateAnnealing {
				return
			}
			if s.Accepted {
				accepted++
			}
			if s.Iteration == opts.Anneal.Iterations {
				hooks.OnLevel(ctx, s.Level, s.Temperature, s.Current, s.Best, accepted)
				accepted = 0
			}
		},
	}

	gr := opts.Grid()
	res, err := a.Run(ctx, anneal.Problem{
		Nodes:   len(g.Nodes),
		Edges:   g.TopologyEdges(),
		Grid:    gr,
		Initial: opts.Initial,
	})
	if res == nil {
		return graph.Layout{}, err
	}
	hooks.OnFrozen(ctx, res.Iterations, res.Cost, res.Elapsed)
	return graph.NewLayout(g, gr, opts.Anneal, res), err
}
