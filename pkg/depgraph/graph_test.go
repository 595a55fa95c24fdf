package depgraph

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode("a"); err != nil {
		t.Fatalf("AddNode() error: %v", err)
	}
	if err := g.AddNode("a"); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("AddNode() duplicate error = %v, want ErrDuplicateNode", err)
	}
	if err := g.AddNode(""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode() empty error = %v, want ErrInvalidNodeID", err)
	}
	if err := g.EnsureNode("a"); err != nil {
		t.Errorf("EnsureNode() existing error: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode("a")
	_ = g.AddNode("b")

	e, err := g.AddEdge("a", "b")
	if err != nil {
		t.Fatalf("AddEdge() error: %v", err)
	}
	if e.Weight != 1 {
		t.Errorf("Weight = %d, want 1", e.Weight)
	}
	if e.Attrs == nil {
		t.Error("Attrs should be initialized")
	}
	if _, err := g.AddEdge("a", "b"); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("AddEdge() duplicate error = %v, want ErrDuplicateEdge", err)
	}
	if _, err := g.AddEdge("a", "missing"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("AddEdge() unknown target error = %v, want ErrUnknownNode", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if !g.HasEdge("a", "b") || g.HasEdge("b", "a") {
		t.Error("HasEdge() reports wrong direction")
	}
}

func TestEdgeMutation(t *testing.T) {
	g := New()
	_ = g.AddNode("a")
	_ = g.AddNode("b")
	_, _ = g.AddEdge("a", "b")

	if err := g.SetWeight("a", "b", 3); err != nil {
		t.Fatal(err)
	}
	if err := g.SetLabel("a", "b", "(2)"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetAttr("a", "b", "color", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	e, _ := g.Edge("a", "b")
	if e.Weight != 3 || e.Label != "(2)" || e.Attrs["color"] != "#ff0000" {
		t.Errorf("edge = %+v", *e)
	}

	if err := g.SetLabel("b", "a", "x"); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("SetLabel() unknown edge error = %v", err)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	_ = g.AddNode("a")
	_ = g.AddNode("b")
	_, _ = g.AddEdge("a", "b")

	if err := g.RemoveEdge("a", "b"); err != nil {
		t.Fatalf("RemoveEdge() error: %v", err)
	}
	if g.OutDegree("a") != 0 || g.InDegree("b") != 0 {
		t.Error("adjacency not updated after RemoveEdge()")
	}
	if err := g.RemoveEdge("a", "b"); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("RemoveEdge() twice error = %v, want ErrUnknownEdge", err)
	}
}

func TestRemoveNode(t *testing.T) {
	g := New()
	for _, n := range []string{"a", "b", "c"} {
		_ = g.AddNode(n)
	}
	_, _ = g.AddEdge("a", "b")
	_, _ = g.AddEdge("b", "c")
	_, _ = g.AddEdge("c", "b")

	if err := g.RemoveNode("b"); err != nil {
		t.Fatalf("RemoveNode() error: %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if got := g.Nodes(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Nodes() = %v", got)
	}
	if err := g.RemoveNode("b"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("RemoveNode() twice error = %v, want ErrUnknownNode", err)
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New()
	for _, n := range []string{"z", "a", "m"} {
		_ = g.AddNode(n)
	}
	_, _ = g.AddEdge("z", "m")
	_, _ = g.AddEdge("z", "a")

	if got := g.Nodes(); !slices.Equal(got, []string{"z", "a", "m"}) {
		t.Errorf("Nodes() = %v, want insertion order", got)
	}
	if got := g.Neighbors("z"); !slices.Equal(got, []string{"m", "a"}) {
		t.Errorf("Neighbors() = %v, want insertion order", got)
	}
	edges := g.Edges()
	if edges[0].To != "m" || edges[1].To != "a" {
		t.Errorf("Edges() not in insertion order: %+v", edges)
	}
}

func TestClone_Independent(t *testing.T) {
	g := New()
	_ = g.AddNode("a")
	_ = g.AddNode("b")
	e, _ := g.AddEdge("a", "b")
	e.Label = "(1)"
	e.Attrs["color"] = "red"

	c := g.Clone()
	if err := c.RemoveEdge("a", "b"); err != nil {
		t.Fatal(err)
	}
	_ = c.AddNode("c")

	if !g.HasEdge("a", "b") {
		t.Error("removing an edge from the clone affected the original")
	}
	if g.HasNode("c") {
		t.Error("adding a node to the clone affected the original")
	}

	c2 := g.Clone()
	ce, _ := c2.Edge("a", "b")
	ce.Attrs["color"] = "blue"
	ce.Label = "changed"
	if e.Attrs["color"] != "red" || e.Label != "(1)" {
		t.Error("mutating a cloned edge affected the original")
	}
}

func TestEdgesReturnsCopies(t *testing.T) {
	g := New()
	_ = g.AddNode("a")
	_ = g.AddNode("b")
	_, _ = g.AddEdge("a", "b")

	edges := g.Edges()
	edges[0].Weight = 99
	edges[0].Attrs["color"] = "x"

	e, _ := g.Edge("a", "b")
	if e.Weight != 1 || e.Attrs["color"] != "" {
		t.Error("Edges() should return independent copies")
	}
}

func TestDemo(t *testing.T) {
	g := Demo()
	if g.NodeCount() != 7 {
		t.Errorf("NodeCount() = %d, want 7", g.NodeCount())
	}
	if g.EdgeCount() != 12 {
		t.Errorf("EdgeCount() = %d, want 12", g.EdgeCount())
	}
	if g.OutDegree("Netherlands") != 0 {
		t.Error("Netherlands should be a sink")
	}
}

func TestNodeAttrs(t *testing.T) {
	g := New()
	_ = g.AddNode("a")
	_ = g.AddNode("b")

	if g.NodeAttrs("a") != nil {
		t.Error("new node should have no attributes")
	}
	if err := g.SetNodeAttr("a", "fillcolor", "red"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetNodeAttr("missing", "color", "x"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("SetNodeAttr(missing) error = %v, want ErrUnknownNode", err)
	}

	got := g.NodeAttrs("a")
	got["fillcolor"] = "blue"
	if g.NodeAttrs("a")["fillcolor"] != "red" {
		t.Error("NodeAttrs() should return a copy")
	}

	c := g.Clone()
	_ = c.SetNodeAttr("a", "fillcolor", "green")
	if g.NodeAttrs("a")["fillcolor"] != "red" {
		t.Error("mutating clone node attributes affected the original")
	}

	_ = g.RemoveNode("a")
	_ = g.AddNode("a")
	if g.NodeAttrs("a") != nil {
		t.Error("re-added node should not inherit attributes")
	}
}
