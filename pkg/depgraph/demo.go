package depgraph

// Demo returns a small fixed graph with several overlapping cycles.
// It is used by "cyclegraph analyze --demo" and as a test fixture.
//
// Spain -> France -> Portugal -> Spain, France <-> Germany and
// France -> Belgium -> France are cycles; Netherlands is a sink. Spain
// carries node styling.
func Demo() *Graph {
	g := New()
	for _, n := range []string{"Portugal", "Spain", "France", "Germany", "Belgium", "Netherlands", "Italy"} {
		_ = g.AddNode(n)
	}
	for _, e := range [][2]string{
		{"Portugal", "Spain"},
		{"Spain", "France"},
		{"France", "Portugal"},
		{"France", "Belgium"},
		{"France", "Germany"},
		{"Germany", "France"},
		{"France", "Italy"},
		{"Italy", "Belgium"},
		{"Belgium", "France"},
		{"Belgium", "Netherlands"},
		{"Germany", "Belgium"},
		{"Germany", "Netherlands"},
	} {
		edge, _ := g.AddEdge(e[0], e[1])
		edge.Label = "(1)"
	}
	for k, v := range map[string]string{"style": "filled", "fillcolor": "red", "color": "blue", "fontcolor": "yellow"} {
		_ = g.SetNodeAttr("Spain", k, v)
	}
	return g
}
