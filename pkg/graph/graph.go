package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/topology"
)

// =============================================================================
// Graph - Input Graph Serialization
// =============================================================================

// Graph is the serialization format for undirected input graphs.
// Used for files, API requests, storage, and cache keys.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a graph vertex. ID must equal the node's index in Graph.Nodes.
type Node struct {
	ID    int    `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the decimal ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return strconv.Itoa(n.ID)
}

// Edge is an undirected edge between two node ids.
type Edge struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
}

// New returns a graph with n unlabeled nodes and the given edges.
func New(n int, edges ...Edge) Graph {
	g := Graph{Nodes: make([]Node, n), Edges: edges}
	for i := range g.Nodes {
		g.Nodes[i].ID = i
	}
	return g
}

// Validate checks node numbering and edge endpoints.
func (g Graph) Validate() error {
	if len(g.Nodes) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "graph has no nodes")
	}
	for i, n := range g.Nodes {
		if n.ID != i {
			return errs.New(errs.ErrCodeInvalidInput, "node at index %d has id %d", i, n.ID)
		}
	}
	for _, e := range g.Edges {
		if e.From == e.To {
			return errs.New(errs.ErrCodeInvalidInput, "self-loop on node %d", e.From)
		}
		if e.From < 0 || e.From >= len(g.Nodes) || e.To < 0 || e.To >= len(g.Nodes) {
			return errs.New(errs.ErrCodeInfeasible, "edge %d-%d references a node outside [0,%d)", e.From, e.To, len(g.Nodes))
		}
	}
	return nil
}

// TopologyEdges returns the edge list in the engine's representation.
func (g Graph) TopologyEdges() []topology.Edge {
	out := make([]topology.Edge, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = topology.Edge{From: e.From, To: e.To}
	}
	return out
}

// Labels returns the display label of every node, indexed by id.
func (g Graph) Labels() []string {
	out := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.DisplayLabel()
	}
	return out
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes and validates JSON bytes.
func UnmarshalGraph(data []byte) (Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader and validates it.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// ReadGraphFile reads a JSON file and returns the validated Graph.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
