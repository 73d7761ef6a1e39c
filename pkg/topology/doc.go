// Package topology derives the static matrices the layout cost is built on.
//
// From an undirected edge list it builds the adjacency matrix A, the
// path-count matrices M_k = (A + I)^k for k = 1..4, and the integer weight
// matrix W that classifies every node pair by hop distance:
//
//	hops  weight  meaning
//	1     3       direct neighbours attract strongly
//	2     1       two-hop pairs attract weakly
//	3     0       indifferent
//	4     -1      four-hop pairs repel weakly
//	>4    -2      far or disconnected pairs repel
//
// Entry (i, j) of M_k is non-zero exactly when j is reachable from i in at
// most k hops, which is why the ladder in [WeightMatrix] only compares
// consecutive powers against zero.
//
// All matrices are gonum dense matrices computed once by [Derive] and never
// mutated afterwards; a [Topology] can be shared by reference between any
// number of readers.
package topology
