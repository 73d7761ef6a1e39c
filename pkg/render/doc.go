// Package render groups the output renderers for computed grid layouts.
//
// Renderers consume a serialized [graph.Layout] and never recompute
// positions:
//
//   - [nodelink]: Graphviz node-link diagrams (SVG, PNG) with every node
//     pinned to its grid cell
//   - [gridtext]: plain-text grid drawings for terminals and logs
//
// [graph.Layout]: github.com/matzehuels/gridlayout/pkg/graph.Layout
// [nodelink]: github.com/matzehuels/gridlayout/pkg/render/nodelink
// [gridtext]: github.com/matzehuels/gridlayout/pkg/render/gridtext
package render
