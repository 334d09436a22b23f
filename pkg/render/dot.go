// Package render turns a layer graph's structure into Graphviz diagrams.
//
// Only the wiring is drawn: nodes appear as boxes labeled with their kind
// and name, edges follow the parent-feeds-child direction, and the
// host-selected node is highlighted. The engine itself stays
// render-agnostic; this package reads the graph through the same public
// accessors any host would use.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mkoenig/pixelgraph/pkg/graph"
	"github.com/mkoenig/pixelgraph/pkg/layer"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes per-node version counters in labels.
	Detailed bool
}

// ToDOT converts a layer graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layers {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for idx := 0; idx < g.Len(); idx++ {
		l, _ := g.Layer(idx)
		label := fmtLabel(g, idx, l, opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if idx == g.SelectedLayer() {
			attrs = append(attrs, "penwidth=2", "color=steelblue")
		}
		if g.Version(idx) == 0 {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", idx, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for idx := 0; idx < g.Len(); idx++ {
		for _, child := range g.Children(idx) {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", idx, child)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, idx int, l layer.Layer, detailed bool) string {
	parts := []string{fmt.Sprintf("%d", idx)}
	if k, ok := l.(layer.Kinder); ok {
		parts = []string{fmt.Sprintf("%d: %s", idx, k.Kind())}
	}
	if n, ok := l.(layer.Namer); ok {
		parts = append(parts, n.Name())
	}
	if detailed {
		parts = append(parts, fmt.Sprintf("v%d", g.Version(idx)))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
