package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
)

func markedDemo(t *testing.T) (*depgraph.Graph, []transform.Cycle) {
	t.Helper()
	g := depgraph.Demo()
	cycles, err := transform.MarkCycles(g)
	if err != nil {
		t.Fatal(err)
	}
	return g, cycles
}

func TestCyclePath(t *testing.T) {
	tests := []struct {
		nodes []string
		want  string
	}{
		{[]string{"a", "b", "c"}, "a → b → c → a"},
		{[]string{"a"}, "a → a"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := cyclePath(transform.Cycle{Nodes: tt.nodes}); got != tt.want {
			t.Errorf("cyclePath(%v) = %q, want %q", tt.nodes, got, tt.want)
		}
	}
}

func TestCycleWeight(t *testing.T) {
	g, cycles := markedDemo(t)
	if got := cycleWeight(g, cycles[0]); got != 3 {
		t.Errorf("cycleWeight() = %d, want 3", got)
	}

	if err := g.RemoveEdge("Portugal", "Spain"); err != nil {
		t.Fatal(err)
	}
	if got := cycleWeight(g, cycles[0]); got != 2 {
		t.Errorf("cycleWeight() after removal = %d, want 2", got)
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 cycles"},
		{1, "1 cycle"},
		{3, "3 cycles"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "cycle"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(7, 12, 3)
	for _, want := range []string{"7 nodes", "12 edges", "3 cycles"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if !strings.Contains(statsLine(2, 1, 0), "acyclic") {
		t.Error("statsLine() without cycles should say acyclic")
	}
}

func TestCyclesTable(t *testing.T) {
	g, cycles := markedDemo(t)
	out := cyclesTable(cycles, g)
	for _, want := range []string{"Path", "Portugal → Spain → France → Portugal", "France → Germany → France"} {
		if !strings.Contains(out, want) {
			t.Errorf("cyclesTable() missing %q:\n%s", want, out)
		}
	}
}
