package topology

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

func pathEdges(n int) []Edge {
	edges := make([]Edge, 0, n-1)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{From: i, To: i + 1})
	}
	return edges
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestBuildAdjacency(t *testing.T) {
	adj, err := BuildAdjacency(4, []Edge{{0, 2}, {2, 3}})
	require.NoError(t, err)

	want := [][]int{
		{0, 0, 1, 0},
		{0, 0, 0, 0},
		{1, 0, 0, 1},
		{0, 0, 1, 0},
	}
	require.Equal(t, want, toInts(adj))
}

func TestBuildAdjacencyDuplicateEdges(t *testing.T) {
	adj, err := BuildAdjacency(2, []Edge{{0, 1}, {1, 0}, {0, 1}})
	require.NoError(t, err)
	require.Equal(t, 1.0, adj.At(0, 1))
	require.Equal(t, 1.0, adj.At(1, 0))
}

func TestBuildAdjacencyErrors(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []Edge
		code  errs.Code
	}{
		{"out of range", 3, []Edge{{0, 3}}, errs.ErrCodeInfeasible},
		{"negative", 3, []Edge{{-1, 0}}, errs.ErrCodeInfeasible},
		{"self loop", 3, []Edge{{1, 1}}, errs.ErrCodeInvalidInput},
		{"no nodes", 0, nil, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildAdjacency(tt.n, tt.edges)
			require.Error(t, err)
			require.Equal(t, tt.code, errs.GetCode(err))
		})
	}
}

func TestPathCountMatrix(t *testing.T) {
	adj, err := BuildAdjacency(3, []Edge{{0, 1}})
	require.NoError(t, err)

	m := PathCountMatrix(adj)
	want := [][]int{
		{1, 1, 0},
		{1, 1, 0},
		{0, 0, 1},
	}
	require.Equal(t, want, toInts(m))
	require.Equal(t, 0.0, adj.At(0, 0), "adjacency must not be modified")
}

func TestMatrixPower(t *testing.T) {
	base := mat.NewDense(2, 2, []float64{1, 1, 1, 1})

	one, err := MatrixPower(base, 1)
	require.NoError(t, err)
	require.True(t, mat.Equal(base, one))

	three, err := MatrixPower(base, 3)
	require.NoError(t, err)
	require.Equal(t, [][]int{{4, 4}, {4, 4}}, toInts(three))

	_, err = MatrixPower(base, 0)
	require.True(t, errs.Is(err, errs.ErrCodeInvalidInput))

	_, err = MatrixPower(mat.NewDense(2, 3, nil), 2)
	require.True(t, errs.Is(err, errs.ErrCodeInternal))
}

func TestMatrixPowerCountsWalks(t *testing.T) {
	// (A+I)^2 on the path 0-1-2 counts lazy walks of length two.
	adj, err := BuildAdjacency(3, pathEdges(3))
	require.NoError(t, err)

	m2, err := MatrixPower(PathCountMatrix(adj), 2)
	require.NoError(t, err)
	want := [][]int{
		{2, 2, 1},
		{2, 3, 2},
		{1, 2, 2},
	}
	require.Equal(t, want, toInts(m2))
}

func TestWeightLadderOnPath(t *testing.T) {
	// A 6-node path covers every hop class, including one pair 5 hops apart.
	topo, err := Derive(6, pathEdges(6))
	require.NoError(t, err)
	w := topo.Weights()

	byHops := map[int]int{
		1: WeightNeighbor,
		2: WeightTwoHop,
		3: WeightThreeHop,
		4: WeightFourHop,
		5: WeightFar,
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if i == j {
				continue
			}
			require.Equal(t, byHops[abs(i-j)], w.At(i, j), "pair (%d,%d)", i, j)
		}
	}
}

func TestWeightLadderFiveNodePath(t *testing.T) {
	topo, err := Derive(5, pathEdges(5))
	require.NoError(t, err)

	want := [][]int{
		{3, 3, 1, 0, -1},
		{3, 3, 3, 1, 0},
		{1, 3, 3, 3, 1},
		{0, 1, 3, 3, 3},
		{-1, 0, 1, 3, 3},
	}
	require.Equal(t, want, topo.Weights().Rows())
}

func TestWeightsSymmetricAndDisconnected(t *testing.T) {
	topo, err := Derive(4, []Edge{{0, 2}, {2, 3}})
	require.NoError(t, err)
	w := topo.Weights()

	for i := 0; i < w.Len(); i++ {
		for j := 0; j < w.Len(); j++ {
			require.Equal(t, w.At(i, j), w.At(j, i))
		}
	}
	// Node 1 is isolated.
	require.Equal(t, WeightFar, w.At(1, 0))
	require.Equal(t, WeightFar, w.At(1, 3))
	require.Equal(t, WeightNeighbor, w.At(0, 2))
	require.Equal(t, WeightTwoHop, w.At(0, 3))
}

func TestWeightMatrixShapeMismatch(t *testing.T) {
	a := mat.NewDense(2, 2, nil)
	b := mat.NewDense(3, 3, nil)
	_, err := WeightMatrix(a, a, b, a)
	require.True(t, errs.Is(err, errs.ErrCodeInternal))
}

func TestNewWeights(t *testing.T) {
	w, err := NewWeights([][]int{{0, 3}, {3, 0}})
	require.NoError(t, err)
	require.Equal(t, 2, w.Len())
	require.Equal(t, 3, w.At(0, 1))

	rows := w.Rows()
	rows[0][1] = 99
	require.Equal(t, 3, w.At(0, 1), "Rows must return a copy")

	_, err = NewWeights([][]int{{0, 1}, {1}})
	require.Error(t, err)
}

func TestTopologyAccessors(t *testing.T) {
	topo, err := Derive(2, []Edge{{0, 1}})
	require.NoError(t, err)

	require.Equal(t, [][]int{{0, 1}, {1, 0}}, topo.AdjacencyInts())
	require.Equal(t, 2, topo.Weights().Len())
}
