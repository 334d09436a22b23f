package render

import (
	"strings"
	"testing"

	"github.com/mkoenig/pixelgraph/pkg/graph"
	"github.com/mkoenig/pixelgraph/pkg/layer"
)

func buildChain(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	src, err := g.AddLayer(layer.NewSourceFile("in.png"), nil)
	if err != nil {
		t.Fatalf("add source: %v", err)
	}
	gray, err := g.AddLayer(layer.NewRGBAToGray(), []int{src})
	if err != nil {
		t.Fatalf("add gray: %v", err)
	}
	if _, err := g.AddLayer(layer.NewThreshold(128, layer.Greater), []int{gray}); err != nil {
		t.Fatalf("add threshold: %v", err)
	}
	return g
}

func TestToDOTStructure(t *testing.T) {
	g := buildChain(t)
	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "digraph layers {") {
		t.Fatalf("unexpected header: %q", dot[:min(len(dot), 40)])
	}
	for _, want := range []string{"n0 [", "n1 [", "n2 [", "n0 -> n1;", "n1 -> n2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "n2 ->") {
		t.Errorf("sink node should have no outgoing edges:\n%s", dot)
	}
}

func TestToDOTLabels(t *testing.T) {
	g := buildChain(t)
	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, "source") {
		t.Errorf("source kind missing from labels:\n%s", dot)
	}
	if !strings.Contains(dot, "in.png") {
		t.Errorf("source name missing from labels:\n%s", dot)
	}
	if !strings.Contains(dot, "threshold") {
		t.Errorf("threshold kind missing from labels:\n%s", dot)
	}
}

func TestToDOTSelectedHighlight(t *testing.T) {
	g := buildChain(t)
	if err := g.SelectLayer(1); err != nil {
		t.Fatalf("select: %v", err)
	}
	dot := ToDOT(g, Options{})

	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "n1 [") && !strings.Contains(line, "steelblue") {
			t.Errorf("selected node not highlighted: %s", line)
		}
		if strings.Contains(line, "n0 [") && strings.Contains(line, "steelblue") {
			t.Errorf("unselected node highlighted: %s", line)
		}
	}
}

func TestToDOTDetailedVersions(t *testing.T) {
	g := buildChain(t)
	dot := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(dot, "v0") {
		t.Errorf("detailed labels should include version counters:\n%s", dot)
	}
}
