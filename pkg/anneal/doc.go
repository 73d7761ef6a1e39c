// Package anneal finds low-cost grid layouts by simulated annealing.
//
// The [Annealer] drives a three-state machine:
//
//	INITIALIZING  derive the topology matrices once, place the nodes
//	              (given layout or seeded random), descend to a first
//	              local minimum and record it as the best layout
//	ANNEALING(T)  while T > TMin, repeat Iterations times: perturb the
//	              current layout, descend to a candidate local minimum and
//	              apply the Metropolis rule; then cool T ← T·Cooling
//	FROZEN        return the best layout seen
//
// A candidate with cost fp replaces the current layout (cost f) when
// fp < f, or otherwise with probability exp((f−fp)/T). The best layout is
// replaced only on strict improvement, so the best cost never increases.
//
// # Reproducibility
//
// All randomness (initial placement, perturbation, acceptance draws) comes
// from one PCG source seeded by [Params.Seed]; two runs with equal inputs
// return identical results. [Annealer.Source] overrides the source.
//
// # Progress
//
// [Annealer.Progress] receives a [Step] after initialisation, after every
// iteration and when the search freezes. It runs on the annealing goroutine
// and should return quickly.
//
// # Usage
//
//	a := anneal.Annealer{Params: anneal.DefaultParams()}
//	res, err := a.Run(ctx, anneal.Problem{
//	    Nodes: 4,
//	    Edges: []topology.Edge{{From: 0, To: 2}, {From: 2, To: 3}},
//	    Grid:  grid.Grid{Width: 3, Height: 3},
//	})
//	fmt.Println(res.Cost, res.Layout)
package anneal
