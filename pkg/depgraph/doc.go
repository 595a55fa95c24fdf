// Package depgraph provides the weighted directed graph that cyclegraph
// builds from import relationships.
//
// # Overview
//
// Every node is a component identified by its fully-qualified path
// ("shop.models", "example.com/app/billing"). Every edge is a directed
// dependency carrying a weight (how many import occurrences were folded
// into it), a human-readable label and free-form rendering attributes such
// as a color.
//
// Unlike a plain adjacency map, a [Graph] keeps nodes, adjacency lists and
// edges in insertion order. Every traversal in cyclegraph (cycle search,
// filtering, DOT export) walks these ordered lists, which is what makes cycle
// ids and colors reproducible from run to run.
//
// # Basic Usage
//
//	g := depgraph.New()
//	g.AddNode("shop")
//	g.AddNode("billing")
//	g.AddEdge("shop", "billing")
//	e, _ := g.Edge("shop", "billing")
//	e.Weight++ // or g.SetWeight
//
// A second [Graph.AddEdge] between the same ordered pair returns
// [ErrDuplicateEdge]; callers fold repeated imports into the existing edge's
// weight instead.
//
// # Working Copies
//
// [Graph.Clone] returns a deep, fully independent copy. Cycle detection runs
// its destructive search on such a copy while annotating the original.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use.
package depgraph
