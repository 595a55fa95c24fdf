package depgraph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when the node already exists.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrUnknownNode is returned when an operation references a node that
	// is not part of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge between
	// the same ordered pair already exists. Repeated dependencies must be
	// folded into the existing edge's weight.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrUnknownEdge is returned when an operation references an edge that
	// is not part of the graph.
	ErrUnknownEdge = errors.New("unknown edge")
)

// Attrs holds rendering hints attached to a node or an edge (for example
// "color").
type Attrs map[string]string

// Edge is a directed dependency between two components.
type Edge struct {
	From   string
	To     string
	Weight int    // number of import occurrences folded into the edge (>= 1)
	Label  string // "(n)" weight marker or a cycle marker
	Attrs  Attrs  // never nil after AddEdge
	Cycle  int    // id of the cycle this edge was assigned to, 0 if none
}

// IsCyclic reports whether the edge was assigned to a detected cycle.
func (e Edge) IsCyclic() bool { return e.Cycle > 0 }

type edgeKey struct{ from, to string }

// Graph is a weighted directed graph with insertion-ordered nodes and edges.
//
// The zero value is not usable - use New to create a graph.
type Graph struct {
	order     []string
	nodes     map[string]struct{}
	nodeAttrs map[string]Attrs
	edges     map[edgeKey]*Edge
	edgeSeq   []edgeKey
	outgoing  map[string][]string
	incoming  map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[string]struct{}),
		nodeAttrs: make(map[string]Attrs),
		edges:     make(map[edgeKey]*Edge),
		outgoing:  make(map[string][]string),
		incoming:  make(map[string][]string),
	}
}

// AddNode adds a node. Returns ErrInvalidNodeID for an empty ID or
// ErrDuplicateNode if the node is already present.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.nodes[id]; ok {
		return ErrDuplicateNode
	}
	g.nodes[id] = struct{}{}
	g.order = append(g.order, id)
	return nil
}

// EnsureNode adds the node unless it already exists.
func (g *Graph) EnsureNode(id string) error {
	if g.HasNode(id) {
		return nil
	}
	return g.AddNode(id)
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// RemoveNode deletes a node together with every edge incident to it.
// Returns ErrUnknownNode if the node does not exist.
func (g *Graph) RemoveNode(id string) error {
	if !g.HasNode(id) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	for _, to := range slices.Clone(g.outgoing[id]) {
		if err := g.RemoveEdge(id, to); err != nil {
			return err
		}
	}
	for _, from := range slices.Clone(g.incoming[id]) {
		if err := g.RemoveEdge(from, id); err != nil {
			return err
		}
	}
	delete(g.nodes, id)
	delete(g.nodeAttrs, id)
	delete(g.outgoing, id)
	delete(g.incoming, id)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == id })
	return nil
}

// SetNodeAttr sets a rendering attribute of an existing node.
func (g *Graph) SetNodeAttr(id, key, value string) error {
	if !g.HasNode(id) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if g.nodeAttrs[id] == nil {
		g.nodeAttrs[id] = Attrs{}
	}
	g.nodeAttrs[id][key] = value
	return nil
}

// NodeAttrs returns a copy of the node's attributes, or nil if it has none.
func (g *Graph) NodeAttrs(id string) Attrs {
	if len(g.nodeAttrs[id]) == 0 {
		return nil
	}
	return maps.Clone(g.nodeAttrs[id])
}

// AddEdge adds an edge with weight 1, an empty label and no attributes.
// Both endpoints must exist. Returns ErrDuplicateEdge if the ordered pair
// is already connected.
func (g *Graph) AddEdge(from, to string) (*Edge, error) {
	if !g.HasNode(from) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, from)
	}
	if !g.HasNode(to) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, to)
	}
	k := edgeKey{from, to}
	if _, ok := g.edges[k]; ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, from, to)
	}
	e := &Edge{From: from, To: to, Weight: 1, Attrs: Attrs{}}
	g.edges[k] = e
	g.edgeSeq = append(g.edgeSeq, k)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return e, nil
}

// HasEdge reports whether the edge from->to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[edgeKey{from, to}]
	return ok
}

// Edge returns the edge from->to. The returned pointer refers to the edge
// stored in the graph, so modifications affect the graph.
func (g *Graph) Edge(from, to string) (*Edge, bool) {
	e, ok := g.edges[edgeKey{from, to}]
	return e, ok
}

// SetWeight sets the weight of an existing edge.
func (g *Graph) SetWeight(from, to string, w int) error {
	e, ok := g.Edge(from, to)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrUnknownEdge, from, to)
	}
	e.Weight = w
	return nil
}

// SetLabel sets the label of an existing edge.
func (g *Graph) SetLabel(from, to, label string) error {
	e, ok := g.Edge(from, to)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrUnknownEdge, from, to)
	}
	e.Label = label
	return nil
}

// SetAttr sets a rendering attribute of an existing edge.
func (g *Graph) SetAttr(from, to, key, value string) error {
	e, ok := g.Edge(from, to)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrUnknownEdge, from, to)
	}
	e.Attrs[key] = value
	return nil
}

// RemoveEdge deletes the edge from->to. Returns ErrUnknownEdge if it does
// not exist.
func (g *Graph) RemoveEdge(from, to string) error {
	k := edgeKey{from, to}
	if _, ok := g.edges[k]; !ok {
		return fmt.Errorf("%w: %s -> %s", ErrUnknownEdge, from, to)
	}
	delete(g.edges, k)
	g.edgeSeq = slices.DeleteFunc(g.edgeSeq, func(x edgeKey) bool { return x == k })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
	return nil
}

// Nodes returns the node IDs in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns copies of all edges in insertion order.
// Modifications to the returned values do not affect the graph.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeSeq))
	for _, k := range g.edgeSeq {
		e := *g.edges[k]
		e.Attrs = maps.Clone(e.Attrs)
		out = append(out, e)
	}
	return out
}

// Neighbors returns the targets of the node's outgoing edges in insertion
// order. The returned slice should be treated as read-only.
func (g *Graph) Neighbors(id string) []string { return g.outgoing[id] }

// Incidents returns the sources of the node's incoming edges in insertion
// order. The returned slice should be treated as read-only.
func (g *Graph) Incidents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edgeSeq) }

// CyclicEdges returns copies of the edges assigned to a cycle, in insertion order.
func (g *Graph) CyclicEdges() []Edge {
	var out []Edge
	for _, e := range g.Edges() {
		if e.IsCyclic() {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of the graph. The copy shares no state with g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		order:     slices.Clone(g.order),
		nodes:     maps.Clone(g.nodes),
		nodeAttrs: make(map[string]Attrs, len(g.nodeAttrs)),
		edges:     make(map[edgeKey]*Edge, len(g.edges)),
		edgeSeq:   slices.Clone(g.edgeSeq),
		outgoing:  make(map[string][]string, len(g.outgoing)),
		incoming:  make(map[string][]string, len(g.incoming)),
	}
	for id, a := range g.nodeAttrs {
		c.nodeAttrs[id] = maps.Clone(a)
	}
	for k, e := range g.edges {
		cp := *e
		cp.Attrs = maps.Clone(e.Attrs)
		c.edges[k] = &cp
	}
	for id, to := range g.outgoing {
		c.outgoing[id] = slices.Clone(to)
	}
	for id, from := range g.incoming {
		c.incoming[id] = slices.Clone(from)
	}
	return c
}

// String returns a compact description of the graph, one edge per line.
func (g *Graph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph(%d nodes, %d edges)", g.NodeCount(), g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "\n  %s -> %s w=%d %q", e.From, e.To, e.Weight, e.Label)
	}
	return b.String()
}
