package search

import (
	"math/rand/v2"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/grid"
)

// Perturb returns a neighbour of l. Each node independently moves, with
// probability rate, to a cell drawn uniformly from the cells vacant at
// that moment. occ is updated in place to match the returned layout; l is
// not modified.
//
// A node moves when its draw ε from [0, 1) satisfies ε ≤ rate. rate 0
// returns a copy of l, rate 1 relocates every node. One draw is taken per
// node whatever the rate, so the random stream does not depend on it.
func Perturb(l grid.Layout, occ grid.Occupancy, rate float64, rng *rand.Rand) (grid.Layout, error) {
	if err := errs.ValidateUnit("perturbation rate", rate); err != nil {
		return nil, err
	}

	out := l.Clone()
	free := grid.VacantCells(occ)
	for k := range out {
		if eps := rng.Float64(); rate == 0 || eps > rate {
			continue
		}
		if len(free) == 0 {
			return nil, errs.New(errs.ErrCodeNoVacancy, "no vacant cell to relocate node %d", k)
		}

		i := rng.IntN(len(free))
		dst := free[i]
		free[i] = free[len(free)-1]
		free = free[:len(free)-1]

		// The vacated cell only becomes available after dst is taken.
		free = append(free, out[k])
		occ.Move(out[k], dst)
		out[k] = dst
	}
	return out, nil
}
