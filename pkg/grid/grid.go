package grid

import (
	"fmt"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

// Point is a cell coordinate on the grid.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// String formats the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// MaxCells bounds Width*Height. Occupancy and vacancy lists are dense, so
// larger grids would exhaust memory long before a search could finish.
const MaxCells = 1 << 24

// Grid is the bounded area nodes are placed on.
type Grid struct {
	Width  int `json:"width" toml:"width" bson:"width"`
	Height int `json:"height" toml:"height" bson:"height"`
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Contains reports whether p lies inside the grid bounds.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Validate checks that both dimensions are positive and that the grid has
// at most MaxCells cells.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "grid must have positive dimensions, got %dx%d", g.Width, g.Height)
	}
	if g.Width > MaxCells/g.Height {
		return errs.New(errs.ErrCodeInvalidConfig, "grid %dx%d exceeds %d cells", g.Width, g.Height, MaxCells)
	}
	return nil
}

// CheckCapacity reports an INFEASIBLE error when n nodes cannot fit.
func (g Grid) CheckCapacity(n int) error {
	if n > g.Cells() {
		return errs.New(errs.ErrCodeInfeasible, "%d nodes do not fit on a %dx%d grid (%d cells)", n, g.Width, g.Height, g.Cells())
	}
	return nil
}
