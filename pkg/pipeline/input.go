package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/grid"
)

// ReadGraphInput reads a graph from path, or from stdin when path is "-".
// JSON documents are detected by their leading '{'; anything else is parsed
// as an edge list.
func ReadGraphInput(path string) (graph.Graph, error) {
	data, err := readInput(path)
	if err != nil {
		return graph.Graph{}, err
	}
	return ParseGraph(data)
}

// ParseGraph decodes a JSON graph or an edge list.
func ParseGraph(data []byte) (graph.Graph, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return graph.ReadGraph(bytes.NewReader(trimmed))
	}
	return graph.ReadEdgeList(bytes.NewReader(data))
}

// ReadInitialLayout loads the placement of a previously written layout file
// for use as Options.Initial.
func ReadInitialLayout(path string) (grid.Layout, error) {
	l, err := graph.ReadLayoutFile(path)
	if err != nil {
		return nil, err
	}
	return l.Points(), nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
