package cli

import (
	stderrors "errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclegraph/pkg/config"
	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
	"github.com/matzehuels/cyclegraph/pkg/errors"
	graphio "github.com/matzehuels/cyclegraph/pkg/io"
	"github.com/matzehuels/cyclegraph/pkg/pipeline"
	"github.com/matzehuels/cyclegraph/pkg/render/nodelink"
)

// renderCommand creates the render command for saved graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		scale  float64
		filter filterFlags
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a saved graph to DOT or an image",
		Long: `Render a graph written by "cyclegraph analyze -o graph.json".

The output format follows the extension of --output. Filters run again on
the saved graph, so a full graph can be narrowed without re-analyzing.`,
		Example: `  cyclegraph render graph.json -o graph.svg
  cyclegraph render graph.json --only-cyclic --remove-isolated -o cycles.pdf
  cyclegraph render graph.json --scale 2 -o graph.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, meta, err := readGraph(args[0])
			if err != nil {
				return err
			}

			var fc config.Filter
			filter.apply(cmd, &fc)
			res, err := transform.Filter(g, filterOptions(fc))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "filter graph")
			}
			if len(res.NodesRemoved) > 0 || res.EdgesRemoved > 0 {
				printDetail("Filtered %s and %s", plural(len(res.NodesRemoved), "node"), plural(res.EdgesRemoved, "edge"))
			}

			spinner := newSpinnerWithContext(ctx, "Rendering "+output)
			spinner.Start()
			if err := pipeline.Export(ctx, g, meta, output, newRenderer(scale)); err != nil {
				spinner.StopWithError("Rendering failed")
				return err
			}
			spinner.StopWithSuccess("Rendered " + args[0])
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot, .gv, .json, .svg, .png, .jpg, .pdf)")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().Float64Var(&scale, "scale", 1, "PNG scale factor (above 1 needs rsvg-convert)")
	filter.register(cmd)

	return cmd
}

// newRenderer returns the Graphviz renderer with the PNG scale applied.
func newRenderer(scale float64) *nodelink.GraphvizRenderer {
	r := nodelink.NewGraphvizRenderer()
	r.Scale = scale
	return r
}

// readGraph loads a graph written by the JSON exporter.
func readGraph(path string) (*depgraph.Graph, graphio.Meta, error) {
	g, meta, err := graphio.ImportJSON(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, graphio.Meta{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read graph")
		}
		return nil, graphio.Meta{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read graph")
	}
	return g, meta, nil
}

// filterOptions converts the configuration table to transform options.
func filterOptions(f config.Filter) transform.FilterOptions {
	return transform.FilterOptions{
		OnlyCyclic:     f.OnlyCyclic,
		RemoveSources:  f.RemoveSources,
		RemoveSinks:    f.RemoveSinks,
		RemoveIsolated: f.RemoveIsolated,
	}
}
