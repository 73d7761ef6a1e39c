package anneal

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/gridlayout/pkg/cost"
	"github.com/matzehuels/gridlayout/pkg/grid"
	"github.com/matzehuels/gridlayout/pkg/search"
	"github.com/matzehuels/gridlayout/pkg/topology"
)

// Annealer runs simulated annealing over grid layouts.
// An Annealer holds no run state and may be reused; it is not safe to run
// the same Annealer concurrently when Source is set.
type Annealer struct {
	Params Params

	// Source overrides the PCG source derived from Params.Seed.
	Source rand.Source

	// Progress, when set, receives a Step after every iteration.
	Progress func(Step)
}

// Level summarizes one temperature level.
type Level struct {
	Temperature float64 `json:"temperature"`
	Current     int     `json:"current"`
	Best        int     `json:"best"`
	Accepted    int     `json:"accepted"`
}

// Result is the outcome of a run.
type Result struct {
	Layout      grid.Layout `json:"layout"`
	Cost        int         `json:"cost"`
	StartCost   int         `json:"start_cost"`   // cost of the starting placement
	InitialCost int         `json:"initial_cost"` // cost of the first local minimum
	Start       grid.Layout `json:"start"`

	Levels       []Level       `json:"levels"`
	Iterations   int           `json:"iterations"`
	Accepted     int           `json:"accepted"`
	Improvements int           `json:"improvements"`
	Temperature  float64       `json:"temperature"` // temperature when frozen
	Elapsed      time.Duration `json:"elapsed"`

	Topology *topology.Topology `json:"-"`
}

// Run anneals p and returns the best layout found.
//
// Configuration and feasibility errors are returned before any search.
// If ctx is cancelled mid-run, the best result so far is returned together
// with ctx.Err().
func (a *Annealer) Run(ctx context.Context, p Problem) (*Result, error) {
	start := time.Now()
	if err := a.Params.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// INITIALIZING
	topo, err := topology.Derive(p.Nodes, p.Edges)
	if err != nil {
		return nil, err
	}
	model, err := cost.NewModel(topo.Weights(), a.Params.DMax)
	if err != nil {
		return nil, err
	}
	rng := a.rand()

	initial := p.Initial.Clone()
	if initial == nil {
		if initial, err = grid.RandomLayout(p.Grid, p.Nodes, rng); err != nil {
			return nil, err
		}
	}
	occ, err := grid.BuildOccupancy(initial, p.Grid)
	if err != nil {
		return nil, err
	}

	opts := search.Options{Workers: a.Params.Workers}
	first, err := search.Descend(ctx, model, initial, occ, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Layout:      first.Layout.Clone(),
		Cost:        first.Cost,
		StartCost:   model.Total(initial),
		InitialCost: first.Cost,
		Start:       initial,
		Topology:    topo,
	}
	current, f := first.Layout, first.Cost
	a.report(Step{State: StateInitializing, Temperature: a.Params.TMax, Candidate: f, Current: f, Best: f})

	// ANNEALING
	t := a.Params.TMax
	for level := 1; t > a.Params.TMin; level++ {
		lv := Level{Temperature: t}
		for i := 1; i <= a.Params.Iterations; i++ {
			if err := ctx.Err(); err != nil {
				return a.finish(res, t, start), err
			}

			cand, err := a.candidate(ctx, model, current, p.Grid, rng, opts)
			if err != nil {
				return a.finish(res, t, start), err
			}
			res.Iterations++

			step := Step{State: StateAnnealing, Temperature: t, Level: level, Iteration: i, Candidate: cand.Cost}
			if accept(f, cand.Cost, t, rng) {
				current, f = cand.Layout, cand.Cost
				step.Accepted = true
				res.Accepted++
				lv.Accepted++
				if f < res.Cost {
					res.Layout, res.Cost = current.Clone(), f
					step.Improved = true
					res.Improvements++
				}
			}
			step.Current, step.Best = f, res.Cost
			a.report(step)
		}
		lv.Current, lv.Best = f, res.Cost
		res.Levels = append(res.Levels, lv)
		t *= a.Params.Cooling
	}

	// FROZEN
	a.report(Step{State: StateFrozen, Temperature: t, Current: f, Best: res.Cost})
	return a.finish(res, t, start), nil
}

// candidate perturbs current and descends to the nearest local minimum.
func (a *Annealer) candidate(ctx context.Context, m *cost.Model, current grid.Layout, g grid.Grid, rng *rand.Rand, opts search.Options) (search.Result, error) {
	occ, err := grid.BuildOccupancy(current, g)
	if err != nil {
		return search.Result{}, err
	}
	perturbed, err := search.Perturb(current, occ, a.Params.Perturbation, rng)
	if err != nil {
		return search.Result{}, err
	}
	return search.Descend(ctx, m, perturbed, occ, opts)
}

// accept applies the Metropolis rule: always take an improvement, take a
// worse or equal candidate with probability exp((f-fp)/t).
func accept(f, fp int, t float64, rng *rand.Rand) bool {
	if fp < f {
		return true
	}
	return rng.Float64() < math.Exp(float64(f-fp)/t)
}

func (a *Annealer) rand() *rand.Rand {
	if a.Source != nil {
		return rand.New(a.Source)
	}
	seed := a.Params.Seed
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func (a *Annealer) report(s Step) {
	if a.Progress != nil {
		a.Progress(s)
	}
}

func (a *Annealer) finish(res *Result, t float64, start time.Time) *Result {
	res.Temperature = t
	res.Elapsed = time.Since(start)
	return res
}
