// Package cost scores grid layouts against a topology's weight matrix.
//
// The cost of a layout R is the sum over unordered node pairs i<j of
//
//	w_ij · d(r_i, r_j)              if w_ij ≥ 0
//	w_ij · min(d(r_i, r_j), DMax)   if w_ij < 0
//
// where d is the Manhattan distance. Attractive pairs (positive weight) pay
// for every unit of separation; repulsive pairs earn a bonus that saturates
// at DMax, so pushing them further apart than DMax gains nothing.
//
// All quantities are integers, so totals and deltas are exact and
// comparisons between candidate layouts are deterministic.
package cost

import (
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/grid"
	"github.com/matzehuels/gridlayout/pkg/topology"
)

// DefaultDMax is the repulsion cap used when none is configured.
const DefaultDMax = 2

// Distance returns the Manhattan distance between p and q.
func Distance(p, q grid.Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Model pairs a weight matrix with the repulsion cap.
// A Model is immutable and safe for concurrent use.
type Model struct {
	weights topology.Weights
	dmax    int
}

// NewModel returns a cost model. dmax must be at least 1.
func NewModel(w topology.Weights, dmax int) (*Model, error) {
	if err := errs.ValidateMinInt("dmax", dmax, 1); err != nil {
		return nil, err
	}
	return &Model{weights: w, dmax: dmax}, nil
}

// Nodes returns the number of nodes the model scores.
func (m *Model) Nodes() int { return m.weights.Len() }

// DMax returns the repulsion cap.
func (m *Model) DMax() int { return m.dmax }

// Weights returns the underlying weight matrix.
func (m *Model) Weights() topology.Weights { return m.weights }

// PairCost returns the cost contribution of nodes i and j.
func (m *Model) PairCost(l grid.Layout, i, j int) int {
	return m.pairAt(i, j, l[i], l[j])
}

func (m *Model) pairAt(i, j int, pi, pj grid.Point) int {
	w := m.weights.At(i, j)
	d := Distance(pi, pj)
	if w < 0 {
		d = min(d, m.dmax)
	}
	return w * d
}

// Total sums PairCost over all unordered pairs i<j.
func (m *Model) Total(l grid.Layout) int {
	total := 0
	for j := 1; j < len(l); j++ {
		for i := 0; i < j; i++ {
			total += m.pairAt(i, j, l[i], l[j])
		}
	}
	return total
}

// NodeCost returns the sum of pair costs involving node a with a placed
// at p and every other node at its position in l.
//
// Relocating a from l[a] to p changes Total by
// NodeCost(l, a, p) - NodeCost(l, a, l[a]).
func (m *Model) NodeCost(l grid.Layout, a int, p grid.Point) int {
	total := 0
	for j, q := range l {
		if j == a {
			continue
		}
		total += m.pairAt(a, j, p, q)
	}
	return total
}

// Check reports whether the model can score l.
func (m *Model) Check(l grid.Layout) error {
	if len(l) != m.weights.Len() {
		return errs.New(errs.ErrCodeInternal, "layout has %d nodes, weight matrix has %d", len(l), m.weights.Len())
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
