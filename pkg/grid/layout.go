package grid

import (
	"math/rand/v2"
	"slices"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

// Layout assigns node i the cell Layout[i].
type Layout []Point

// Clone returns an independent copy of the layout.
func (l Layout) Clone() Layout {
	return slices.Clone(l)
}

// Equal reports whether both layouts place every node on the same cell.
func (l Layout) Equal(other Layout) bool {
	return slices.Equal(l, other)
}

// Validate checks that every node lies inside g and no two nodes share a cell.
func (l Layout) Validate(g Grid) error {
	_, err := BuildOccupancy(l, g)
	return err
}

// RandomLayout places n nodes on distinct cells drawn uniformly from g.
// The same rng state always yields the same layout.
func RandomLayout(g Grid, n int, rng *rand.Rand) (Layout, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "node count must not be negative, got %d", n)
	}
	if err := g.CheckCapacity(n); err != nil {
		return nil, err
	}

	perm := rng.Perm(g.Cells())
	l := make(Layout, n)
	for i := range l {
		c := perm[i]
		l[i] = Point{X: c / g.Height, Y: c % g.Height}
	}
	return l, nil
}
