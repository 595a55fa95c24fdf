// Package transform annotates and reduces dependency graphs.
//
// # Cycle Marking
//
// [MarkCycles] repeatedly searches a disposable clone of the graph for a
// cycle with [FindCycle]. Each cycle found gets the next id (starting at 1),
// its edges are relabeled "Cycle <id> (<weight>)" and colored on the original
// graph, and the same edges are deleted from the clone so the next search
// cannot reuse them. The loop ends when the clone is acyclic. Because every
// iteration deletes at least one edge from the clone, the loop always
// terminates.
//
// Every traversal follows node and edge insertion order, so the same input
// graph always yields the same cycle ids, edges and colors.
//
// # Filtering
//
// [Filter] applies up to four structural reductions in a fixed order:
//
//  1. OnlyCyclic: drop edges whose label carries no cycle marker
//  2. RemoveSources: drop nodes without incoming edges
//  3. RemoveSinks: drop nodes without outgoing edges
//  4. RemoveIsolated: drop nodes without any edges
//
// Each step sees the graph as left by the previous steps, so the order
// changes the result. For example OnlyCyclic followed by RemoveIsolated
// removes nodes whose only edges were acyclic.
package transform
