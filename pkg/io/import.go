package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
)

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or invalid
//   - A node has a duplicate or empty ID
//   - An edge references an unknown node ID
//   - An edge appears twice
//
// The returned graph is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*depgraph.Graph, Meta, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, Meta{}, fmt.Errorf("decode: %w", err)
	}

	g := depgraph.New()
	for _, n := range data.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, Meta{}, fmt.Errorf("node %s: %w", n.ID, err)
		}
		for k, v := range n.Attrs {
			_ = g.SetNodeAttr(n.ID, k, v)
		}
	}
	for _, e := range data.Edges {
		ed, err := g.AddEdge(e.From, e.To)
		if err != nil {
			return nil, Meta{}, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
		if e.Weight > 0 {
			ed.Weight = e.Weight
		}
		ed.Label = e.Label
		ed.Cycle = e.Cycle
		maps.Copy(ed.Attrs, e.Attrs)
	}

	meta := Meta{
		RunID:      data.RunID,
		Language:   data.Language,
		Components: data.Components,
		Cycles:     data.Cycles,
	}
	return g, meta, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*depgraph.Graph, Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, meta, err := ReadJSON(f)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, meta, nil
}
