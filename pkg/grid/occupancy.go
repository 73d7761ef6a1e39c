package grid

import (
	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

// Occupancy marks which cells hold a node, indexed occ[x][y].
type Occupancy [][]bool

// NewOccupancy returns an empty occupancy matrix for g.
func NewOccupancy(g Grid) Occupancy {
	cells := make([]bool, g.Cells())
	occ := make(Occupancy, g.Width)
	for x := range occ {
		occ[x] = cells[x*g.Height : (x+1)*g.Height : (x+1)*g.Height]
	}
	return occ
}

// BuildOccupancy marks the cell of every node in l.
// Positions outside g and coinciding nodes are reported, never overwritten.
func BuildOccupancy(l Layout, g Grid) (Occupancy, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	occ := NewOccupancy(g)
	for i, p := range l {
		if !g.Contains(p) {
			return nil, errs.New(errs.ErrCodeInvalidLayout, "node %d at %s is outside the %dx%d grid", i, p, g.Width, g.Height)
		}
		if occ[p.X][p.Y] {
			return nil, errs.New(errs.ErrCodeInvalidLayout, "node %d at %s shares its cell with another node", i, p)
		}
		occ[p.X][p.Y] = true
	}
	return occ, nil
}

// Grid returns the dimensions the occupancy was built for.
func (o Occupancy) Grid() Grid {
	if len(o) == 0 {
		return Grid{}
	}
	return Grid{Width: len(o), Height: len(o[0])}
}

// Occupied reports whether p holds a node.
func (o Occupancy) Occupied(p Point) bool {
	return o[p.X][p.Y]
}

// Move frees from and marks to.
func (o Occupancy) Move(from, to Point) {
	o[from.X][from.Y] = false
	o[to.X][to.Y] = true
}

// Clone returns an independent copy.
func (o Occupancy) Clone() Occupancy {
	c := NewOccupancy(o.Grid())
	for x := range o {
		copy(c[x], o[x])
	}
	return c
}

// VacantCells lists every unmarked cell, x outer and y inner.
func VacantCells(o Occupancy) []Point {
	var free []Point
	for x := range o {
		for y, taken := range o[x] {
			if !taken {
				free = append(free, Point{X: x, Y: y})
			}
		}
	}
	return free
}
