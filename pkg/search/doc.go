// Package search implements the two moves the annealer is built from.
//
// [Descend] is a best-improvement hill climber: each sweep evaluates every
// relocation of a single node into a vacant cell and commits the best one,
// stopping at the first layout no single relocation can improve (a local
// minimum). Ties are broken by scan order, node index first and vacant cell
// (x-major) second, and no state carries over between sweeps.
//
// [Perturb] is the neighbour operator: it relocates each node to a random
// vacant cell with probability rate, keeping the vacancy set current so
// that later nodes in the same pass never collide with earlier moves.
//
// Both operate on copies of the caller's layout; matrices are only read.
//
// # Parallel evaluation
//
// A sweep is a read-only fan-out over (node, cell) pairs. Setting
// [Options.Workers] above one evaluates nodes concurrently and reduces the
// per-node winners in index order, which selects exactly the move the
// sequential scan would.
package search
