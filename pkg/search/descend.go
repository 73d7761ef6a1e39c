package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridlayout/pkg/cost"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/grid"
)

// Options configures Descend.
type Options struct {
	// Workers is the number of goroutines evaluating candidate moves.
	// Values below 2 run the sweep sequentially.
	Workers int
}

// Result is a local minimum reached by Descend.
type Result struct {
	Cost        int
	Layout      grid.Layout
	Sweeps      int // sweeps run, including the final one that found no improvement
	Moves       int // relocations committed
	Evaluations int // trial layouts scored
}

// move is the best relocation found for one node in a sweep.
type move struct {
	node, cell int
	cost       int
	ok         bool
}

// Descend relocates single nodes to vacant cells until no relocation
// lowers the cost. l and occ are not modified.
//
// Cancelling ctx stops between sweeps; the layout reached so far is
// returned together with ctx.Err().
func Descend(ctx context.Context, m *cost.Model, l grid.Layout, occ grid.Occupancy, opts Options) (Result, error) {
	if err := m.Check(l); err != nil {
		return Result{}, err
	}
	if err := checkOccupancy(l, occ); err != nil {
		return Result{}, err
	}

	res := Result{Layout: l.Clone(), Cost: m.Total(l)}
	o := occ.Clone()

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		free := grid.VacantCells(o)
		if len(free) == 0 {
			return res, errs.New(errs.ErrCodeNoVacancy, "no vacant cell to move %d nodes into", len(l))
		}

		res.Sweeps++
		res.Evaluations += len(res.Layout) * len(free)

		best, err := sweep(ctx, m, res.Layout, res.Cost, free, opts.Workers)
		if err != nil {
			return res, err
		}
		if !best.ok || best.cost >= res.Cost {
			return res, nil
		}

		dst := free[best.cell]
		o.Move(res.Layout[best.node], dst)
		res.Layout[best.node] = dst
		res.Cost = best.cost
		res.Moves++
	}
}

// sweep returns the cheapest single relocation, first in scan order on ties.
func sweep(ctx context.Context, m *cost.Model, l grid.Layout, current int, free []grid.Point, workers int) (move, error) {
	if workers < 2 {
		var best move
		for a := range l {
			best = better(best, scanNode(m, l, current, a, free))
		}
		return best, nil
	}

	moves := make([]move, len(l))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for a := range l {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			moves[a] = scanNode(m, l, current, a, free)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return move{}, err
	}

	var best move
	for _, mv := range moves {
		best = better(best, mv)
	}
	return best, nil
}

// scanNode scores every vacant cell for node a.
func scanNode(m *cost.Model, l grid.Layout, current, a int, free []grid.Point) move {
	base := current - m.NodeCost(l, a, l[a])
	best := move{node: a}
	for p, cell := range free {
		trial := base + m.NodeCost(l, a, cell)
		if !best.ok || trial < best.cost {
			best = move{node: a, cell: p, cost: trial, ok: true}
		}
	}
	return best
}

// better keeps the incumbent unless the challenger is strictly cheaper.
func better(incumbent, challenger move) move {
	if !challenger.ok {
		return incumbent
	}
	if !incumbent.ok || challenger.cost < incumbent.cost {
		return challenger
	}
	return incumbent
}

func checkOccupancy(l grid.Layout, occ grid.Occupancy) error {
	g := occ.Grid()
	for i, p := range l {
		if !g.Contains(p) || !occ.Occupied(p) {
			return errs.New(errs.ErrCodeInvalidLayout, "node %d at %s is not marked in the occupancy", i, p)
		}
	}
	if vacant := len(grid.VacantCells(occ)); vacant != g.Cells()-len(l) {
		return errs.New(errs.ErrCodeInvalidLayout, "occupancy marks %d cells for %d nodes", g.Cells()-vacant, len(l))
	}
	return nil
}
