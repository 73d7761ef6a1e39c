package topology

import "gonum.org/v1/gonum/mat"

// MaxHops is the highest path-count power the weight ladder inspects.
const MaxHops = 4

// Edge is an undirected edge between two node indices.
type Edge struct {
	From int `json:"from" toml:"from" bson:"from"`
	To   int `json:"to" toml:"to" bson:"to"`
}

// Topology holds the matrices derived from a fixed edge list.
// It is read-only once returned by Derive.
type Topology struct {
	adj     *mat.SymDense
	weights Weights
}

// Derive builds adjacency, path-count and weight matrices for n nodes.
func Derive(n int, edges []Edge) (*Topology, error) {
	adj, err := BuildAdjacency(n, edges)
	if err != nil {
		return nil, err
	}

	var paths [MaxHops]*mat.Dense
	base := PathCountMatrix(adj)
	for k := 1; k <= MaxHops; k++ {
		if paths[k-1], err = MatrixPower(base, k); err != nil {
			return nil, err
		}
	}

	weights, err := WeightMatrix(paths[0], paths[1], paths[2], paths[3])
	if err != nil {
		return nil, err
	}
	return &Topology{adj: adj, weights: weights}, nil
}

// Weights returns the pairwise weight matrix.
func (t *Topology) Weights() Weights { return t.weights }

// AdjacencyInts returns the adjacency matrix as nested int slices for
// serialization and rendering.
func (t *Topology) AdjacencyInts() [][]int {
	return toInts(t.adj)
}

func toInts(m mat.Matrix) [][]int {
	r, c := m.Dims()
	out := make([][]int, r)
	for i := range out {
		out[i] = make([]int, c)
		for j := range out[i] {
			out[i][j] = int(m.At(i, j))
		}
	}
	return out
}
