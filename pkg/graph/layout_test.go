package graph

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/grid"
	"github.com/matzehuels/gridlayout/pkg/topology"
)

func testLayout(t *testing.T) Layout {
	t.Helper()
	g := New(4, Edge{0, 2}, Edge{2, 3})
	topo, err := topology.Derive(4, g.TopologyEdges())
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	res := &anneal.Result{
		Layout:      grid.Layout{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		Cost:        -3,
		StartCost:   8,
		InitialCost: 2,
		Levels:      make([]anneal.Level, 22),
		Iterations:  440,
		Accepted:    100,
		Elapsed:     1500 * time.Millisecond,
		Topology:    topo,
	}
	return NewLayout(g, grid.Grid{Width: 3, Height: 3}, anneal.DefaultParams(), res)
}

func TestNewLayout(t *testing.T) {
	l := testLayout(t)

	if l.Width != 3 || l.Height != 3 {
		t.Errorf("size = %dx%d, want 3x3", l.Width, l.Height)
	}
	if len(l.Positions) != 4 || l.Positions[3] != (Position{Node: 3, X: 1, Y: 1}) {
		t.Errorf("positions = %+v", l.Positions)
	}
	if l.Stats.Levels != 22 || l.Stats.Iterations != 440 || l.Stats.ElapsedMS != 1500 {
		t.Errorf("stats = %+v", l.Stats)
	}
	if l.DMax != 2 || l.Seed != 42 {
		t.Errorf("dmax/seed = %d/%d, want 2/42", l.DMax, l.Seed)
	}
	if len(l.Weights) != 4 || l.Weights[0][2] != topology.WeightNeighbor {
		t.Errorf("weights = %v", l.Weights)
	}
	if l.Adjacency[2][3] != 1 || l.Adjacency[0][1] != 0 {
		t.Errorf("adjacency = %v", l.Adjacency)
	}
	if err := l.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLayoutPoints(t *testing.T) {
	l := Layout{
		Width: 2, Height: 2,
		Nodes:     New(2).Nodes,
		Positions: []Position{{Node: 1, X: 1, Y: 1}, {Node: 0, X: 0, Y: 1}},
	}
	pts := l.Points()
	if pts[0] != (grid.Point{X: 0, Y: 1}) || pts[1] != (grid.Point{X: 1, Y: 1}) {
		t.Errorf("points = %v", pts)
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name      string
		positions []Position
	}{
		{"Missing", []Position{{Node: 0}}},
		{"Repeated", []Position{{Node: 0}, {Node: 0, X: 1}}},
		{"Overlap", []Position{{Node: 0}, {Node: 1}}},
		{"OutOfBounds", []Position{{Node: 0}, {Node: 1, X: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Layout{Width: 2, Height: 2, Nodes: New(2).Nodes, Positions: tt.positions}
			err := l.Validate()
			if !errs.Is(err, errs.ErrCodeInvalidLayout) {
				t.Errorf("Validate = %v, want INVALID_LAYOUT", err)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	want := testLayout(t)
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(want, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.Cost != want.Cost || got.InitialCost != want.InitialCost {
		t.Errorf("cost = %d/%d, want %d/%d", got.Cost, got.InitialCost, want.Cost, want.InitialCost)
	}
	if !got.Points().Equal(want.Points()) {
		t.Errorf("points = %v, want %v", got.Points(), want.Points())
	}
	if len(got.Graph().Edges) != 2 {
		t.Errorf("edges = %v", got.Graph().Edges)
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"width":`)); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}
