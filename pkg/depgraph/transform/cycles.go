package transform

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
)

const (
	// CycleMarker prefixes the label of every edge assigned to a cycle.
	CycleMarker = "Cycle"

	// AttrColor is the edge attribute holding a cycle's color.
	AttrColor = "color"

	cycleColorSeed  = 0xf8c85c
	cycleColorStep  = 0x369369
	cycleColorSpace = 0xffffff
)

// ErrGraphCorrupted is returned by [MarkCycles] when a cycle found on the
// working copy has no matching edge on either graph. It means the graph
// state was corrupted and the run must stop.
var ErrGraphCorrupted = errors.New("graph corrupted")

// Cycle is a closed import loop. Nodes are ordered so that every consecutive
// pair, and the pair (last, first), is an edge of the graph.
type Cycle struct {
	ID    int      `json:"id"`
	Nodes []string `json:"nodes"`
	Color string   `json:"color"`
}

// Edges returns the cycle's edges as (from, to) pairs, including the
// closing edge from the last node back to the first.
func (c Cycle) Edges() [][2]string {
	out := make([][2]string, len(c.Nodes))
	for i, from := range c.Nodes {
		out[i] = [2]string{from, c.Nodes[(i+1)%len(c.Nodes)]}
	}
	return out
}

// CycleColor returns the color assigned to cycle id.
// The color is derived from the id only, so it is stable across runs.
func CycleColor(id int) string {
	return fmt.Sprintf("#%06x", (id*cycleColorStep+cycleColorSeed)%cycleColorSpace)
}

// CycleLabel returns the label of an edge with the given weight that was
// assigned to cycle id.
func CycleLabel(id, weight int) string {
	return fmt.Sprintf("%s %d (%d)", CycleMarker, id, weight)
}

// FindCycle returns the first cycle reachable by depth-first search, or nil
// if the graph is acyclic.
//
// Roots are visited in node insertion order and children in edge insertion
// order. The search uses white/gray/black coloring with an explicit stack;
// the first edge that reaches a gray node closes the cycle, which is the
// stack segment from that node to the current one. A self-loop yields a
// one-node cycle.
func FindCycle(g *depgraph.Graph) []string {
	const (
		white = iota
		gray
		black
	)

	type frame struct {
		node string
		next int
	}

	color := make(map[string]int, g.NodeCount())
	for _, root := range g.Nodes() {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack := []frame{{node: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.Neighbors(top.node)
			if top.next >= len(children) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := children[top.next]
			top.next++

			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{node: child})
			case gray:
				start := slices.IndexFunc(stack, func(f frame) bool { return f.node == child })
				cycle := make([]string, 0, len(stack)-start)
				for _, f := range stack[start:] {
					cycle = append(cycle, f.node)
				}
				return cycle
			}
		}
	}
	return nil
}

// MarkCycles finds every cycle of g and annotates its edges in place.
//
// The search runs on a clone of g. For cycle n each edge gets the label
// [CycleLabel](n, weight), the [AttrColor] attribute [CycleColor](n) and
// Cycle = n; the edge is then deleted from the clone. The returned cycles are
// ordered by id.
//
// MarkCycles returns ErrGraphCorrupted if an edge of a found cycle is missing
// from either graph.
func MarkCycles(g *depgraph.Graph) ([]Cycle, error) {
	work := g.Clone()
	var cycles []Cycle

	for id := 1; ; id++ {
		nodes := FindCycle(work)
		if nodes == nil {
			return cycles, nil
		}

		c := Cycle{ID: id, Nodes: nodes, Color: CycleColor(id)}
		for _, pair := range c.Edges() {
			from, to := pair[0], pair[1]
			e, ok := g.Edge(from, to)
			if !ok {
				return cycles, fmt.Errorf("%w: cycle %d edge %s -> %s missing from graph", ErrGraphCorrupted, id, from, to)
			}
			e.Label = CycleLabel(id, e.Weight)
			e.Attrs[AttrColor] = c.Color
			e.Cycle = id
			if err := work.RemoveEdge(from, to); err != nil {
				return cycles, fmt.Errorf("%w: %v", ErrGraphCorrupted, err)
			}
		}
		cycles = append(cycles, c)
	}
}
