package nodelink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/grid"
)

// DefaultSpacing is the distance between neighbouring grid cells in inches.
const DefaultSpacing = 1.0

// Options configures DOT generation.
type Options struct {
	// Detailed appends the cell coordinates to each node label.
	Detailed bool

	// ShowGrid draws a small grey dot on every vacant cell.
	ShowGrid bool

	// Spacing between cells in inches; zero selects DefaultSpacing.
	Spacing float64
}

// ToDOT converts a layout to Graphviz DOT with pinned node positions.
// Nodes are labelled with their display label from the layout's node list.
func ToDOT(l graph.Layout, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	pos := func(p grid.Point) string {
		x := float64(p.X) * spacing
		y := float64(l.Height-1-p.Y) * spacing
		return fmt.Sprintf("%.2f,%.2f!", x, y)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, fixedsize=true, width=0.5];\n")
	buf.WriteString("  edge [color=\"#4b5563\", penwidth=1.5];\n")
	buf.WriteString("\n")

	points := l.Points()
	for i, p := range points {
		fmt.Fprintf(&buf, "  n%d [label=%q, pos=%q];\n", i, fmtLabel(l, i, p, opts.Detailed), pos(p))
	}

	if opts.ShowGrid {
		if occ, err := grid.BuildOccupancy(points, l.Grid()); err == nil {
			buf.WriteString("\n")
			for _, c := range grid.VacantCells(occ) {
				fmt.Fprintf(&buf, "  c%d_%d [shape=point, width=0.05, color=\"#d1d5db\", label=\"\", pos=%q];\n", c.X, c.Y, pos(c))
			}
		}
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(l graph.Layout, i int, p grid.Point, detailed bool) string {
	label := strconv.Itoa(i)
	if i < len(l.Nodes) {
		label = l.Nodes[i].DisplayLabel()
	}
	if detailed {
		label += "\n" + p.String()
	}
	return label
}
