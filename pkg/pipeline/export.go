package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/errors"
	"github.com/matzehuels/cyclegraph/pkg/io"
	"github.com/matzehuels/cyclegraph/pkg/observability"
	"github.com/matzehuels/cyclegraph/pkg/render/nodelink"
)

// Formats handled without a renderer.
const (
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// FormatForPath maps a file extension to an output format. ".gv" is DOT
// and ".jpeg" is JPG. A path without extension yields "".
func FormatForPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "gv":
		return FormatDOT
	case "jpeg":
		return string(nodelink.FormatJPG)
	}
	return ext
}

// Export writes g to path in the format implied by its extension.
// DOT and JSON are written directly, everything else goes through r.
func Export(ctx context.Context, g *depgraph.Graph, meta io.Meta, path string, r nodelink.Renderer) error {
	data, err := Encode(ctx, g, meta, FormatForPath(path), r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// Encode returns g in format. r may be nil for DOT and JSON.
func Encode(ctx context.Context, g *depgraph.Graph, meta io.Meta, format string, r nodelink.Renderer) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{RunID: meta.RunID})), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := io.WriteJSON(g, meta, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		return buf.Bytes(), nil
	case "":
		return nil, errors.New(errors.ErrCodeInvalidFormat, "output needs a file extension")
	}

	f := nodelink.Format(format)
	if r == nil || !nodelink.Supports(r, f) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", format)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	data, err := r.Render(ctx, nodelink.ToDOT(g, nodelink.Options{RunID: meta.RunID}), f)
	hooks.OnRenderComplete(ctx, format, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return data, nil
}
