package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

// ReadEdgeList parses a plain-text edge list:
//
//	# comment
//	nodes 5
//	0 2
//	2 3
//
// Each edge line holds two node ids separated by whitespace. The optional
// "nodes N" line fixes the node count; otherwise it is one more than the
// largest id seen, so isolated trailing nodes need the header.
func ReadEdgeList(r io.Reader) (Graph, error) {
	var (
		edges []Edge
		n     = -1
		maxID = -1
	)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return Graph{}, errs.New(errs.ErrCodeInvalidFormat, "line %d: want two fields, got %d", line, len(fields))
		}
		if fields[0] == "nodes" {
			v, err := strconv.Atoi(fields[1])
			if err != nil || v <= 0 {
				return Graph{}, errs.New(errs.ErrCodeInvalidFormat, "line %d: invalid node count %q", line, fields[1])
			}
			n = v
			continue
		}
		from, err1 := strconv.Atoi(fields[0])
		to, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil || from < 0 || to < 0 {
			return Graph{}, errs.New(errs.ErrCodeInvalidFormat, "line %d: invalid edge %q", line, text)
		}
		edges = append(edges, Edge{From: from, To: to})
		maxID = max(maxID, from, to)
	}
	if err := sc.Err(); err != nil {
		return Graph{}, fmt.Errorf("read edge list: %w", err)
	}
	if n < 0 {
		n = maxID + 1
	}

	g := New(n, edges...)
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// WriteEdgeList writes g in the format read by ReadEdgeList.
func WriteEdgeList(g Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "nodes %d\n", len(g.Nodes))
	for _, e := range g.Edges {
		fmt.Fprintf(bw, "%d %d\n", e.From, e.To)
	}
	return bw.Flush()
}
