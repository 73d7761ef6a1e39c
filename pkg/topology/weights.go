package topology

import (
	"gonum.org/v1/gonum/mat"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

// Weight classes, indexed by hop distance.
const (
	WeightNeighbor = 3
	WeightTwoHop   = 1
	WeightThreeHop = 0
	WeightFourHop  = -1
	WeightFar      = -2
)

// Weights is a square integer matrix of pairwise cost coefficients.
// The zero value is an empty matrix.
type Weights struct {
	n int
	w []int
}

// NewWeights copies rows into a Weights matrix. Rows must form a square.
func NewWeights(rows [][]int) (Weights, error) {
	n := len(rows)
	w := make([]int, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Weights{}, errs.New(errs.ErrCodeInvalidInput, "weight row %d has %d entries, want %d", i, len(row), n)
		}
		w = append(w, row...)
	}
	return Weights{n: n, w: w}, nil
}

// Len returns the matrix dimension.
func (w Weights) Len() int { return w.n }

// At returns the weight of pair (i, j).
func (w Weights) At(i, j int) int { return w.w[i*w.n+j] }

// Rows returns a copy of the matrix as nested slices.
func (w Weights) Rows() [][]int {
	out := make([][]int, w.n)
	for i := range out {
		out[i] = append([]int(nil), w.w[i*w.n:(i+1)*w.n]...)
	}
	return out
}

// WeightMatrix classifies every pair by the first path-count power that
// reaches it. The ladder is evaluated top to bottom, first match wins:
//
//	M1 > 0            → 3
//	M1 = 0 ∧ M2 > 0   → 1
//	M2 = 0 ∧ M3 > 0   → 0
//	M3 = 0 ∧ M4 > 0   → -1
//	otherwise         → -2
func WeightMatrix(m1, m2, m3, m4 mat.Matrix) (Weights, error) {
	n, c := m1.Dims()
	if n != c {
		return Weights{}, errs.New(errs.ErrCodeInternal, "path-count matrix must be square, got %dx%d", n, c)
	}
	for k, m := range []mat.Matrix{m2, m3, m4} {
		if r, c := m.Dims(); r != n || c != n {
			return Weights{}, errs.New(errs.ErrCodeInternal, "M%d is %dx%d, want %dx%d", k+2, r, c, n, n)
		}
	}

	w := Weights{n: n, w: make([]int, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var v int
			switch {
			case m1.At(i, j) > 0:
				v = WeightNeighbor
			case m2.At(i, j) > 0:
				v = WeightTwoHop
			case m3.At(i, j) > 0:
				v = WeightThreeHop
			case m4.At(i, j) > 0:
				v = WeightFourHop
			default:
				v = WeightFar
			}
			w.w[i*n+j] = v
		}
	}
	return w, nil
}
