package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cyclegraph/pkg/render"
)

// Format is an image format produced by a [Renderer].
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatPDF Format = "pdf"
)

// Renderer lays out DOT source and encodes it in an image format.
type Renderer interface {
	Render(ctx context.Context, dot string, format Format) ([]byte, error)
	Formats() []Format
}

// GraphvizRenderer renders with the embedded Graphviz library. PDF output,
// and PNG output with a Scale above 1, go through rsvg-convert.
type GraphvizRenderer struct {
	// Scale enlarges PNG output. Values <= 1 keep the Graphviz size.
	Scale float64
}

// NewGraphvizRenderer returns a renderer backed by go-graphviz.
func NewGraphvizRenderer() *GraphvizRenderer { return &GraphvizRenderer{} }

// Formats lists the supported formats.
func (r *GraphvizRenderer) Formats() []Format {
	return []Format{FormatSVG, FormatPNG, FormatJPG, FormatPDF}
}

// Render lays out dot and encodes it as format.
func (r *GraphvizRenderer) Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		if r.Scale <= 1 {
			return renderGraphviz(ctx, dot, graphviz.PNG)
		}
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, svg, r.Scale)
	case FormatJPG:
		return renderGraphviz(ctx, dot, graphviz.JPG)
	case FormatPDF:
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: %v)", format, r.Formats())
	}
}

// Supports reports whether r can produce format.
func Supports(r Renderer, format Format) bool {
	return slices.Contains(r.Formats(), format)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderGraphviz(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

var _ Renderer = (*GraphvizRenderer)(nil)
