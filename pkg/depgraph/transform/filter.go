package transform

import (
	"strings"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
)

// FilterOptions selects the reductions applied by [Filter].
type FilterOptions struct {
	OnlyCyclic     bool // drop edges without a cycle marker
	RemoveSources  bool // drop nodes with no incoming edges
	RemoveSinks    bool // drop nodes with no outgoing edges
	RemoveIsolated bool // drop nodes with neither
}

// IsZero reports whether no reduction is selected.
func (o FilterOptions) IsZero() bool { return o == FilterOptions{} }

// FilterResult summarizes what [Filter] removed.
type FilterResult struct {
	EdgesRemoved int
	NodesRemoved []string
}

// Filter reduces g in place.
//
// Steps run in the order OnlyCyclic, RemoveSources, RemoveSinks,
// RemoveIsolated. Within a step, nodes are visited in insertion order and
// each one is tested against the live graph, so a node that lost its last
// edge earlier in the same step, or in an earlier step, is removed too.
func Filter(g *depgraph.Graph, opts FilterOptions) (FilterResult, error) {
	var res FilterResult

	if opts.OnlyCyclic {
		for _, e := range g.Edges() {
			if strings.Contains(e.Label, CycleMarker) {
				continue
			}
			if err := g.RemoveEdge(e.From, e.To); err != nil {
				return res, err
			}
			res.EdgesRemoved++
		}
	}

	steps := []struct {
		enabled bool
		drop    func(id string) bool
	}{
		{opts.RemoveSources, func(id string) bool { return g.InDegree(id) == 0 }},
		{opts.RemoveSinks, func(id string) bool { return g.OutDegree(id) == 0 }},
		{opts.RemoveIsolated, func(id string) bool { return g.InDegree(id) == 0 && g.OutDegree(id) == 0 }},
	}

	for _, step := range steps {
		if !step.enabled {
			continue
		}
		for _, id := range g.Nodes() {
			if !step.drop(id) {
				continue
			}
			res.EdgesRemoved += incidentEdges(g, id)
			if err := g.RemoveNode(id); err != nil {
				return res, err
			}
			res.NodesRemoved = append(res.NodesRemoved, id)
		}
	}

	return res, nil
}

// incidentEdges counts the edges touching id, a self-loop once.
func incidentEdges(g *depgraph.Graph, id string) int {
	n := g.InDegree(id) + g.OutDegree(id)
	if g.HasEdge(id, id) {
		n--
	}
	return n
}
