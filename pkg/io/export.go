package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
)

// Meta is the analysis data stored next to the graph.
type Meta struct {
	RunID      string
	Language   string
	Components []string
	Cycles     []transform.Cycle
}

type document struct {
	RunID      string            `json:"run_id,omitempty"`
	Language   string            `json:"language,omitempty"`
	Components []string          `json:"components,omitempty"`
	Nodes      []node            `json:"nodes"`
	Edges      []edge            `json:"edges"`
	Cycles     []transform.Cycle `json:"cycles,omitempty"`
}

type node struct {
	ID    string         `json:"id"`
	Attrs depgraph.Attrs `json:"attrs,omitempty"`
}

type edge struct {
	From   string         `json:"from"`
	To     string         `json:"to"`
	Weight int            `json:"weight,omitempty"`
	Label  string         `json:"label,omitempty"`
	Cycle  int            `json:"cycle,omitempty"`
	Attrs  depgraph.Attrs `json:"attrs,omitempty"`
}

// WriteJSON encodes a graph and its analysis data as JSON and writes it
// to w. The output can be re-imported with [ReadJSON].
func WriteJSON(g *depgraph.Graph, meta Meta, w io.Writer) error {
	ids := g.Nodes()
	edges := g.Edges()
	out := document{
		RunID:      meta.RunID,
		Language:   meta.Language,
		Components: meta.Components,
		Nodes:      make([]node, len(ids)),
		Edges:      make([]edge, len(edges)),
		Cycles:     meta.Cycles,
	}

	for i, id := range ids {
		out.Nodes[i] = node{ID: id, Attrs: g.NodeAttrs(id)}
	}
	for i, e := range edges {
		ed := edge{From: e.From, To: e.To, Weight: e.Weight, Label: e.Label, Cycle: e.Cycle}
		if len(e.Attrs) > 0 {
			ed.Attrs = e.Attrs
		}
		out.Edges[i] = ed
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *depgraph.Graph, meta Meta, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, meta, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
