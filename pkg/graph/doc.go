// Package graph provides serialization types for input graphs and computed
// grid layouts.
//
// This package defines the wire format used for JSON files, API responses,
// caching, and run history.
//
// # Architecture
//
// The package sits at the serialization boundary between the engine and
// external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/topology.Edge: Edge list consumed by the engine
//   - pkg/grid.Layout: Internal placement (one point per node)
//
// Use [Graph.TopologyEdges] and [Layout.Points] to convert between them, and
// [NewLayout] to export an annealing result.
//
// # Graph Serialization
//
// Graphs use a node-link JSON format. Node ids are 0-based and must equal
// the node's position in the list:
//
//	{
//	  "nodes": [{"id": 0, "label": "api"}, {"id": 1}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("graph.json")   // File → Graph
//	graph.WriteGraphFile(g, "output.json")      // Graph → File
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// # Layout Serialization
//
// A [Layout] carries the grid size, one [Position] per node, the final and
// initial costs, and the derived adjacency and weight matrices so a layout
// file is self-describing:
//
//	layout, _ := graph.ReadLayoutFile("layout.json")
//	points := layout.Points()
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
