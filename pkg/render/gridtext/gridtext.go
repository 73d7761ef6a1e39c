// Package gridtext draws a grid layout as plain text.
//
// Each cell shows the label of the node placed on it, or a dot when vacant.
// Row y=0 is printed first:
//
//	+---+-----+---+
//	| 0 | hub | . |
//	+---+-----+---+
//	| . |  .  | 2 |
//	+---+-----+---+
//
// Columns are sized to their widest label so the output stays aligned.
package gridtext

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/gridlayout/pkg/graph"
)

const vacant = "."

// Options configures text rendering.
type Options struct {
	// IDs prints node ids instead of labels.
	IDs bool
}

// Render returns the text drawing of l, terminated by a newline.
func Render(l graph.Layout, opts Options) string {
	if l.Width <= 0 || l.Height <= 0 {
		return ""
	}

	cells := make([][]string, l.Height)
	for y := range cells {
		cells[y] = make([]string, l.Width)
		for x := range cells[y] {
			cells[y][x] = vacant
		}
	}
	for _, p := range l.Positions {
		if p.X < 0 || p.X >= l.Width || p.Y < 0 || p.Y >= l.Height {
			continue
		}
		cells[p.Y][p.X] = label(l, p.Node, opts.IDs)
	}

	widths := make([]int, l.Width)
	for x := range widths {
		for y := range cells {
			widths[x] = max(widths[x], utf8.RuneCountInString(cells[y][x]))
		}
	}

	var sb strings.Builder
	rule := separator(widths)
	sb.WriteString(rule)
	for _, row := range cells {
		sb.WriteByte('|')
		for x, c := range row {
			sb.WriteByte(' ')
			sb.WriteString(center(c, widths[x]))
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
		sb.WriteString(rule)
	}
	return sb.String()
}

func label(l graph.Layout, node int, ids bool) string {
	if !ids && node >= 0 && node < len(l.Nodes) {
		return l.Nodes[node].DisplayLabel()
	}
	return strconv.Itoa(node)
}

func separator(widths []int) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteByte('+')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// center pads s to width w, putting the odd space on the right.
func center(s string, w int) string {
	pad := w - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
