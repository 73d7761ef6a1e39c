package graph

import (
	"math/rand/v2"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

// Random returns a graph with n nodes and m distinct undirected edges drawn
// uniformly from all node pairs. The same rng state yields the same graph.
func Random(n, m int, rng *rand.Rand) (Graph, error) {
	if n <= 0 {
		return Graph{}, errs.New(errs.ErrCodeInvalidInput, "node count must be positive, got %d", n)
	}
	pairs := n * (n - 1) / 2
	if m < 0 || m > pairs {
		return Graph{}, errs.New(errs.ErrCodeInvalidInput, "edge count %d outside [0,%d] for %d nodes", m, pairs, n)
	}

	// Sample m pair indices without replacement, then decode each index
	// into the (i, j) pair with i < j in row-major order.
	picks := rng.Perm(pairs)[:m]
	edges := make([]Edge, m)
	for k, p := range picks {
		i := 0
		for row := n - 1; p >= row; row-- {
			p -= row
			i++
		}
		edges[k] = Edge{From: i, To: i + 1 + p}
	}
	return New(n, edges...), nil
}
