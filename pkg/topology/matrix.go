package topology

import (
	"gonum.org/v1/gonum/mat"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

// BuildAdjacency returns the symmetric 0/1 adjacency matrix of n nodes.
// Entry (i, j) is 1 iff (i, j) or (j, i) appears in edges. Repeated edges
// are harmless; self-loops are rejected.
func BuildAdjacency(n int, edges []Edge) (*mat.SymDense, error) {
	if n <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "node count must be positive, got %d", n)
	}

	adj := mat.NewSymDense(n, nil)
	for i, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, errs.New(errs.ErrCodeInfeasible, "edge %d (%d,%d) references a node outside [0,%d)", i, e.From, e.To, n)
		}
		if e.From == e.To {
			return nil, errs.New(errs.ErrCodeInvalidInput, "edge %d is a self-loop on node %d", i, e.From)
		}
		adj.SetSym(e.From, e.To, 1)
	}
	return adj, nil
}

// PathCountMatrix returns adj + I.
func PathCountMatrix(adj mat.Matrix) *mat.Dense {
	m := mat.DenseCopyOf(adj)
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		m.Set(i, i, m.At(i, i)+1)
	}
	return m
}

// MatrixPower returns m^k for k ≥ 1. For k = 1 the result is a copy of m.
func MatrixPower(m mat.Matrix, k int) (*mat.Dense, error) {
	if k < 1 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "matrix power must be at least 1, got %d", k)
	}
	r, c := m.Dims()
	if r != c {
		return nil, errs.New(errs.ErrCodeInternal, "matrix power needs a square matrix, got %dx%d", r, c)
	}
	var p mat.Dense
	p.Pow(m, k)
	return &p, nil
}
