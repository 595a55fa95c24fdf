// Package nodelink renders dependency graphs as node-link diagrams.
//
// # Overview
//
// Components (or modules, in detailed mode) appear as boxes and imports as
// arrows. Edge labels carry the import weight, or the cycle marker once
// the cycle finder assigned the edge to a cycle. Cyclic edges are drawn in
// their cycle's color with a heavier stroke.
//
// # Usage
//
// Convert a graph to DOT format, then hand it to a [Renderer]:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{RunID: res.RunID})
//	svg, err := nodelink.NewGraphvizRenderer().Render(ctx, dot, nodelink.FormatSVG)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered in-process via [GraphvizRenderer]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
