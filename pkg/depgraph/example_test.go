package depgraph_test

import (
	"fmt"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
)

func ExampleGraph_AddEdge() {
	g := depgraph.New()
	_ = g.AddNode("shop")
	_ = g.AddNode("billing")

	e, _ := g.AddEdge("shop", "billing")
	e.Weight++

	fmt.Println(g.NodeCount(), g.EdgeCount(), e.Weight)
	// Output: 2 1 2
}

func ExampleGraph_Clone() {
	g := depgraph.New()
	_ = g.AddNode("a")
	_ = g.AddNode("b")
	_, _ = g.AddEdge("a", "b")

	work := g.Clone()
	_ = work.RemoveEdge("a", "b")

	fmt.Println(g.EdgeCount(), work.EdgeCount())
	// Output: 1 0
}
