// Package grid models the bounded integer area nodes are placed on.
//
// A [Grid] is a Width×Height lattice of cells addressed by [Point]. A
// [Layout] assigns each node index a cell; index i is the stable identity
// of node i for the whole run. An [Occupancy] is the dense boolean view of
// a layout, used to enumerate the vacant cells that local search and
// perturbation move nodes into.
//
// # Coordinates
//
// Cells are addressed as (x, y) with 0 ≤ x < Width and 0 ≤ y < Height.
// Occupancy is stored x-major (occ[x][y]) and [VacantCells] enumerates in
// that order: x outer, y inner. Search tie-breaking depends on this order,
// so it is part of the contract.
//
// # Invariants
//
// A valid layout keeps every point inside the grid and never places two
// nodes on the same cell. [BuildOccupancy] and [Layout.Validate] report
// violations as INVALID_LAYOUT errors instead of silently overwriting.
//
// # Usage
//
//	g := grid.Grid{Width: 3, Height: 3}
//	l := grid.Layout{{0, 0}, {0, 1}, {2, 1}, {1, 2}}
//	occ, err := grid.BuildOccupancy(l, g)
//	free := grid.VacantCells(occ) // 5 cells, x-major
package grid
