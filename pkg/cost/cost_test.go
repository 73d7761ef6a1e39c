package cost

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gridlayout/pkg/grid"
	"github.com/matzehuels/gridlayout/pkg/topology"
)

func scenario(t *testing.T) (*Model, grid.Layout) {
	t.Helper()
	topo, err := topology.Derive(4, []topology.Edge{{From: 0, To: 2}, {From: 2, To: 3}})
	require.NoError(t, err)
	m, err := NewModel(topo.Weights(), DefaultDMax)
	require.NoError(t, err)
	return m, grid.Layout{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		p, q grid.Point
		want int
	}{
		{grid.Point{X: 0, Y: 0}, grid.Point{X: 0, Y: 0}, 0},
		{grid.Point{X: 0, Y: 0}, grid.Point{X: 2, Y: 1}, 3},
		{grid.Point{X: 2, Y: 1}, grid.Point{X: 0, Y: 0}, 3},
		{grid.Point{X: 1, Y: 2}, grid.Point{X: 2, Y: 1}, 2},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Distance(tt.p, tt.q), "%s-%s", tt.p, tt.q)
	}
}

func TestPairCost(t *testing.T) {
	m, l := scenario(t)

	// (0,2): neighbours, w=3, d=3.
	require.Equal(t, 9, m.PairCost(l, 0, 2))
	// (0,3): two hops, w=1, d=3.
	require.Equal(t, 3, m.PairCost(l, 0, 3))
	// (0,1): disconnected, w=-2, d=1 under the cap.
	require.Equal(t, -2, m.PairCost(l, 0, 1))
	// (1,2): disconnected, w=-2, d=2 equals the cap.
	require.Equal(t, -4, m.PairCost(l, 1, 2))
}

func TestRepulsionSaturates(t *testing.T) {
	w, err := topology.NewWeights([][]int{{0, -2}, {-2, 0}})
	require.NoError(t, err)
	m, err := NewModel(w, 2)
	require.NoError(t, err)

	near := m.Total(grid.Layout{{X: 0, Y: 0}, {X: 0, Y: 2}})
	far := m.Total(grid.Layout{{X: 0, Y: 0}, {X: 0, Y: 9}})
	require.Equal(t, -4, near)
	require.Equal(t, near, far, "no extra reward past dmax")
}

func TestTotal(t *testing.T) {
	m, l := scenario(t)
	// Pairs: (0,1)=-2 (0,2)=9 (0,3)=3 (1,2)=-4 (1,3)=-4 (2,3)=6
	require.Equal(t, 8, m.Total(l))
}

func TestTotalOrderIndependent(t *testing.T) {
	m, l := scenario(t)

	reverse := 0
	for i := len(l) - 1; i >= 0; i-- {
		for j := len(l) - 1; j > i; j-- {
			reverse += m.PairCost(l, j, i)
		}
	}
	require.Equal(t, m.Total(l), reverse)
}

func TestZeroWeightsCostNothing(t *testing.T) {
	rows := make([][]int, 6)
	for i := range rows {
		rows[i] = make([]int, 6)
	}
	w, err := topology.NewWeights(rows)
	require.NoError(t, err)
	m, err := NewModel(w, 3)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(3, 4))
	for range 20 {
		l, err := grid.RandomLayout(grid.Grid{Width: 5, Height: 5}, 6, rng)
		require.NoError(t, err)
		require.Zero(t, m.Total(l))
	}
}

func TestNodeCostDelta(t *testing.T) {
	m, l := scenario(t)
	before := m.Total(l)

	for a := range l {
		for _, p := range []grid.Point{{X: 0, Y: 2}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: 2}} {
			trial := l.Clone()
			trial[a] = p
			delta := m.NodeCost(l, a, p) - m.NodeCost(l, a, l[a])
			require.Equal(t, m.Total(trial), before+delta, "node %d to %s", a, p)
		}
	}
}

func TestNewModelRejectsBadDMax(t *testing.T) {
	_, err := NewModel(topology.Weights{}, 0)
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	m, l := scenario(t)
	require.NoError(t, m.Check(l))
	require.Error(t, m.Check(l[:2]))
}
