// Package pkg provides the core libraries for gridlayout, a graph layout
// engine that places the nodes of an undirected graph on the cells of a 2D
// grid.
//
// # Overview
//
// A layout assigns every node a distinct cell. Its cost is the sum, over all
// node pairs, of the Manhattan distance between their cells multiplied by the
// pair's topological weight, where the weight decays with the shortest-path
// hop count. Layouts are improved by simulated annealing whose inner step is
// a best-improvement hill climb over single-node moves.
//
// The pkg directory is organized into three areas:
//
//  1. Engine - [grid], [topology], [cost], [search] and [anneal]
//  2. Model - [graph] (serialization of graphs and layouts) and [errors]
//  3. Infrastructure - [pipeline], [cache], [store], [render] and [observability]
//
// # Architecture
//
// The typical data flow through gridlayout:
//
//	Graph (JSON or edge list)
//	         ↓
//	    [topology] package (hop distances + weight matrix)
//	         ↓
//	    [anneal] package (temperature schedule, calls [search] + [cost])
//	         ↓
//	    graph.Layout (positions, cost, per-level statistics)
//	         ↓
//	    SVG/PNG/DOT/TXT/JSON output
//
// # Quick Start
//
// Annealing a small graph directly:
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/gridlayout/pkg/anneal"
//	    "github.com/matzehuels/gridlayout/pkg/grid"
//	    "github.com/matzehuels/gridlayout/pkg/topology"
//	)
//
//	a := anneal.Annealer{Params: anneal.DefaultParams()}
//	res, err := a.Run(ctx, anneal.Problem{
//	    Nodes: 4,
//	    Edges: []topology.Edge{{From: 0, To: 2}, {From: 2, To: 3}},
//	    Grid:  grid.Grid{Width: 3, Height: 3},
//	})
//
// Running the full pipeline with caching and rendering:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatTXT},
//	})
//
// # Subpackages
//
// Engine:
//   - [grid] - Grid dimensions, cells, layouts and the occupancy view
//   - [topology] - All-pairs hop distances and the weight matrix
//   - [cost] - Layout cost and exact single-move cost deltas
//   - [search] - Best-improvement descent and random perturbation
//   - [anneal] - The annealing schedule, acceptance rule and progress steps
//
// Model:
//   - [graph] - Graph and layout JSON types, edge lists, random graphs
//   - [errors] - Coded errors shared by every layer
//
// Infrastructure:
//   - [pipeline] - Validation, defaults, cached layout and rendering
//   - [cache] - Content-addressed caches (file, Redis, null)
//   - [store] - Run history (memory, file, MongoDB)
//   - [render] - Node-link drawings via Graphviz and text grids
//   - [observability] - Hooks for pipeline, cache, annealing and HTTP events
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/grid
// [topology]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/topology
// [cost]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/cost
// [search]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/search
// [anneal]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/anneal
// [graph]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/graph
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/render
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridlayout/pkg/observability
package pkg
