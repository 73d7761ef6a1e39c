package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/grid"
)

// =============================================================================
// Layout - Computed Placement
// =============================================================================

// Layout is the serialization format for a computed grid layout.
//
// Besides the placement it carries the graph, the derived adjacency and
// weight matrices, and run statistics so a layout file can be rendered or
// inspected without recomputing anything.
type Layout struct {
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`

	Nodes     []Node     `json:"nodes" bson:"nodes"`
	Edges     []Edge     `json:"edges,omitempty" bson:"edges,omitempty"`
	Positions []Position `json:"positions" bson:"positions"`

	Cost        int    `json:"cost" bson:"cost"`
	InitialCost int    `json:"initial_cost" bson:"initial_cost"`
	DMax        int    `json:"dmax" bson:"dmax"`
	Seed        uint64 `json:"seed" bson:"seed"`

	Adjacency [][]int `json:"adjacency,omitempty" bson:"adjacency,omitempty"`
	Weights   [][]int `json:"weights,omitempty" bson:"weights,omitempty"`

	Stats Stats `json:"stats" bson:"stats"`
}

// Position is the cell assigned to one node.
type Position struct {
	Node int `json:"node" bson:"node"`
	X    int `json:"x" bson:"x"`
	Y    int `json:"y" bson:"y"`
}

// Stats summarizes the annealing run that produced a layout.
type Stats struct {
	StartCost    int   `json:"start_cost" bson:"start_cost"`
	Levels       int   `json:"levels" bson:"levels"`
	Iterations   int   `json:"iterations" bson:"iterations"`
	Accepted     int   `json:"accepted" bson:"accepted"`
	Improvements int   `json:"improvements" bson:"improvements"`
	ElapsedMS    int64 `json:"elapsed_ms" bson:"elapsed_ms"`
}

// NewLayout exports an annealing result for g on gr.
func NewLayout(g Graph, gr grid.Grid, p anneal.Params, res *anneal.Result) Layout {
	l := Layout{
		Width:       gr.Width,
		Height:      gr.Height,
		Nodes:       g.Nodes,
		Edges:       g.Edges,
		Positions:   make([]Position, len(res.Layout)),
		Cost:        res.Cost,
		InitialCost: res.InitialCost,
		DMax:        p.DMax,
		Seed:        p.Seed,
		Stats: Stats{
			StartCost:    res.StartCost,
			Levels:       len(res.Levels),
			Iterations:   res.Iterations,
			Accepted:     res.Accepted,
			Improvements: res.Improvements,
			ElapsedMS:    res.Elapsed.Milliseconds(),
		},
	}
	for i, pt := range res.Layout {
		l.Positions[i] = Position{Node: i, X: pt.X, Y: pt.Y}
	}
	if res.Topology != nil {
		l.Adjacency = res.Topology.AdjacencyInts()
		l.Weights = res.Topology.Weights().Rows()
	}
	return l
}

// Grid returns the layout's grid dimensions.
func (l Layout) Grid() grid.Grid {
	return grid.Grid{Width: l.Width, Height: l.Height}
}

// Points returns the placement indexed by node id.
func (l Layout) Points() grid.Layout {
	out := make(grid.Layout, len(l.Positions))
	for _, p := range l.Positions {
		if p.Node >= 0 && p.Node < len(out) {
			out[p.Node] = grid.Point{X: p.X, Y: p.Y}
		}
	}
	return out
}

// Graph returns the graph the layout was computed for.
func (l Layout) Graph() Graph {
	return Graph{Nodes: l.Nodes, Edges: l.Edges}
}

// Validate checks that every node has exactly one in-bounds, unshared cell.
func (l Layout) Validate() error {
	if len(l.Positions) != len(l.Nodes) {
		return errs.New(errs.ErrCodeInvalidLayout, "layout has %d positions for %d nodes", len(l.Positions), len(l.Nodes))
	}
	seen := make([]bool, len(l.Positions))
	for _, p := range l.Positions {
		if p.Node < 0 || p.Node >= len(seen) || seen[p.Node] {
			return errs.New(errs.ErrCodeInvalidLayout, "position for node %d is missing or repeated", p.Node)
		}
		seen[p.Node] = true
	}
	return l.Points().Validate(l.Grid())
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates the
// placement.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
