// Package render turns dependency graphs into files.
//
// # Overview
//
// Rendering happens in two steps. The [nodelink] subpackage serializes a
// graph to Graphviz DOT and lays it out with an injected
// [nodelink.Renderer]. This package converts the resulting SVG to formats
// Graphviz does not produce itself.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/cyclegraph/pkg/render/nodelink
// [nodelink.Renderer]: github.com/matzehuels/cyclegraph/pkg/render/nodelink.Renderer
package render
