// Package nodelink renders grid layouts as node-link diagrams using Graphviz.
//
// # Architecture
//
// The layout engine already fixes every node to a grid cell, so Graphviz is
// only used as a drawing backend. [ToDOT] emits an undirected graph for the
// neato engine with each node pinned through pos="x,y!" and straight-line
// edges:
//
//	Layout → ToDOT() → DOT → RenderSVG()/RenderPNG() → bytes
//
// Grid row 0 is drawn at the top, matching the plain-text renderer.
//
// # Usage
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{ShowGrid: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
package nodelink
