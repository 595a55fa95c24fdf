package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
)

func TestRoundTrip(t *testing.T) {
	g := depgraph.Demo()
	cycles, err := transform.MarkCycles(g)
	if err != nil {
		t.Fatal(err)
	}
	meta := Meta{
		RunID:      "run-42",
		Language:   "python",
		Components: []string{"Portugal", "Spain"},
		Cycles:     cycles,
	}

	var buf bytes.Buffer
	if err := WriteJSON(g, meta, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	first := buf.String()

	got, gotMeta, err := ReadJSON(strings.NewReader(first))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if !reflect.DeepEqual(got.Nodes(), g.Nodes()) {
		t.Errorf("Nodes() = %v, want %v", got.Nodes(), g.Nodes())
	}
	if !reflect.DeepEqual(got.Edges(), g.Edges()) {
		t.Errorf("Edges() differ after round trip")
	}
	if !reflect.DeepEqual(gotMeta, meta) {
		t.Errorf("Meta = %+v, want %+v", gotMeta, meta)
	}
	if got.NodeAttrs("Spain")["fillcolor"] != "red" {
		t.Errorf("Spain attrs = %v, want fillcolor red", got.NodeAttrs("Spain"))
	}
	for _, field := range []string{`"language": "python"`, `"components": [`, `"fillcolor": "red"`} {
		if !strings.Contains(first, field) {
			t.Errorf("JSON missing %s", field)
		}
	}

	buf.Reset()
	if err := WriteJSON(got, gotMeta, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != first {
		t.Error("second export differs from the first")
	}
}

func TestReadJSON_Defaults(t *testing.T) {
	g, meta, err := ReadJSON(strings.NewReader(`{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	e, ok := g.Edge("a", "b")
	if !ok || e.Weight != 1 || e.IsCyclic() {
		t.Errorf("edge = %+v, want weight 1 and acyclic", e)
	}
	if meta.RunID != "" || meta.Language != "" || meta.Components != nil || meta.Cycles != nil {
		t.Errorf("Meta = %+v, want zero", meta)
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"duplicate node", `{"nodes":[{"id":"a"},{"id":"a"}],"edges":[]}`, depgraph.ErrDuplicateNode},
		{"empty id", `{"nodes":[{"id":""}],"edges":[]}`, depgraph.ErrInvalidNodeID},
		{"unknown node", `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`, depgraph.ErrUnknownNode},
		{"duplicate edge", `{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"},{"from":"a","to":"b"}]}`, depgraph.ErrDuplicateEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := depgraph.Demo()
	if err := ExportJSON(g, Meta{RunID: "x"}, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, meta, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if got.EdgeCount() != g.EdgeCount() || meta.RunID != "x" {
		t.Errorf("ImportJSON() = %d edges, run %q", got.EdgeCount(), meta.RunID)
	}

	if _, _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON() of a missing file should fail")
	}
}
