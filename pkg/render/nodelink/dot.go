package nodelink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
)

// Options configures DOT generation.
type Options struct {
	// RunID is written as a comment at the top of the output.
	RunID string
	// RankDir is the Graphviz rankdir. Defaults to "TB".
	RankDir string
}

// ToDOT converts a graph to Graphviz DOT format. Nodes and edges keep the
// graph's insertion order, so equal graphs produce identical output.
func ToDOT(g *depgraph.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	if opts.RunID != "" {
		fmt.Fprintf(&buf, "// cyclegraph run %s\n", opts.RunID)
	}
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		if attrs := g.NodeAttrs(id); len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(sortedAttrs(attrs, nil), ", "))
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", id)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e depgraph.Edge) []string {
	attrs := []string{fmt.Sprintf("weight=%d", e.Weight)}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if color, ok := e.Attrs[transform.AttrColor]; ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", color), fmt.Sprintf("fontcolor=%q", color))
	}
	if e.IsCyclic() {
		attrs = append(attrs, "penwidth=2")
	}
	return sortedAttrs(e.Attrs, attrs, transform.AttrColor)
}

// sortedAttrs appends key="value" pairs to dst in key order, leaving out
// the skipped keys.
func sortedAttrs(a depgraph.Attrs, dst []string, skip ...string) []string {
	for _, k := range slices.Sorted(maps.Keys(a)) {
		if slices.Contains(skip, k) {
			continue
		}
		dst = append(dst, fmt.Sprintf("%s=%q", k, a[k]))
	}
	return dst
}
