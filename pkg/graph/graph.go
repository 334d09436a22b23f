// Package graph implements the layer computation graph: a DAG of
// transformation nodes whose values cross edges behind type-erased
// handles.
//
// Nodes live in an index-addressed arena and edges are plain index pairs,
// so the structure cannot form ownership cycles even when the dependency
// graph fans in. Evaluation is caller-driven: ComputeLayer evaluates one
// node from its parents' cached outputs, and the caller is responsible
// for invoking it in an order consistent with the DAG (typically
// topological). Calling out of order is well-defined: parents that have
// not run yet simply appear as nil inputs.
package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mkoenig/pixelgraph/pkg/layer"
)

var (
	// ErrNilLayer is returned by [Graph.AddLayer] and
	// [Graph.AddLayerWithChildren] when the layer is nil.
	ErrNilLayer = errors.New("layer must not be nil")

	// ErrUnknownParent is returned when a parent index does not refer to
	// an existing node.
	ErrUnknownParent = errors.New("unknown parent layer")

	// ErrUnknownChild is returned when a child index does not refer to an
	// existing node.
	ErrUnknownChild = errors.New("unknown child layer")

	// ErrUnknownLayer is returned by [Graph.ComputeLayer] and the node
	// accessors when the index does not refer to an existing node.
	ErrUnknownLayer = errors.New("unknown layer")
)

// Graph is the arena of layer nodes plus the directed edges between them.
//
// Indices are assigned in insertion order, are stable for the graph's
// lifetime, and are the only way to reference a node. Nodes and edges are
// never removed. The graph exclusively owns its nodes; a node's cached
// output is only ever read (by the engine when gathering a child's
// inputs, or by an external consumer via [Graph.Output]) and replaced
// wholesale by a successful evaluation.
//
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    []layer.Layer
	incoming [][]int // per node, parent indices in edge-insertion order
	outgoing [][]int // per node, child indices in edge-insertion order

	// versions[i] counts successful updates of node i; generation counts
	// them graph-wide. Both exist so a host can cheaply detect "output
	// changed" without the engine knowing anything about presentation.
	versions   []uint64
	generation uint64

	// selected marks the host-focused node. It has no effect on
	// evaluation.
	selected int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddLayer inserts a node and wires one edge from each listed parent to
// it. Returns the node's newly assigned index; indices start at 0 and
// increase in insertion order. The order of parents defines the order of
// the inputs seen by the node's Compute.
func (g *Graph) AddLayer(l layer.Layer, parents []int) (int, error) {
	return g.AddLayerWithChildren(l, parents, nil)
}

// AddLayerWithChildren inserts a node, wires one edge from each listed
// parent to it, and one edge from it to each listed child. Edges to a
// child are appended after the child's existing incoming edges, extending
// the input sequence its Compute receives.
func (g *Graph) AddLayerWithChildren(l layer.Layer, parents, children []int) (int, error) {
	if l == nil {
		return 0, ErrNilLayer
	}
	for _, p := range parents {
		if p < 0 || p >= len(g.nodes) {
			return 0, fmt.Errorf("%w: index %d", ErrUnknownParent, p)
		}
	}
	for _, c := range children {
		if c < 0 || c >= len(g.nodes) {
			return 0, fmt.Errorf("%w: index %d", ErrUnknownChild, c)
		}
	}

	idx := len(g.nodes)
	g.nodes = append(g.nodes, l)
	g.incoming = append(g.incoming, nil)
	g.outgoing = append(g.outgoing, nil)
	g.versions = append(g.versions, 0)

	for _, p := range parents {
		g.incoming[idx] = append(g.incoming[idx], p)
		g.outgoing[p] = append(g.outgoing[p], idx)
	}
	for _, c := range children {
		g.incoming[c] = append(g.incoming[c], idx)
		g.outgoing[idx] = append(g.outgoing[idx], c)
	}
	return idx, nil
}

// ComputeLayer evaluates the node at idx: it gathers the cached output of
// every parent in edge-insertion order (nil for parents that have never
// computed), runs the node's Compute, and commits the result with Update.
//
// On failure the error is returned wrapped with the node index and the
// node's cached output is left exactly as it was; a failed cycle is a
// no-op on stored state.
func (g *Graph) ComputeLayer(idx int) error {
	if idx < 0 || idx >= len(g.nodes) {
		return fmt.Errorf("%w: index %d", ErrUnknownLayer, idx)
	}

	parents := g.incoming[idx]
	inputs := make([]layer.Value, len(parents))
	for i, p := range parents {
		inputs[i] = g.nodes[p].Output()
	}

	output, patch, err := g.nodes[idx].Compute(inputs)
	if err != nil {
		return fmt.Errorf("compute layer %d: %w", idx, err)
	}
	if err := g.nodes[idx].Update(output, patch); err != nil {
		return fmt.Errorf("update layer %d: %w", idx, err)
	}

	g.versions[idx]++
	g.generation++
	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// Layer returns the node at idx and true, or nil and false if the index
// is out of range.
func (g *Graph) Layer(idx int) (layer.Layer, bool) {
	if idx < 0 || idx >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[idx], true
}

// Output returns the cached output of the node at idx, or nil if the
// node has never been computed. Returns an error for an unknown index.
func (g *Graph) Output(idx int) (layer.Value, error) {
	if idx < 0 || idx >= len(g.nodes) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownLayer, idx)
	}
	return g.nodes[idx].Output(), nil
}

// Parents returns a copy of the parent indices of the node at idx, in
// edge-insertion order. Returns nil for an unknown index or a node
// without parents.
func (g *Graph) Parents(idx int) []int {
	if idx < 0 || idx >= len(g.nodes) {
		return nil
	}
	return slices.Clone(g.incoming[idx])
}

// Children returns a copy of the child indices of the node at idx, in
// edge-insertion order. Returns nil for an unknown index or a node
// without children.
func (g *Graph) Children(idx int) []int {
	if idx < 0 || idx >= len(g.nodes) {
		return nil
	}
	return slices.Clone(g.outgoing[idx])
}

// Version returns the number of successful updates of the node at idx.
// A host can compare versions across polls to decide when to redraw.
// Returns 0 for an unknown index.
func (g *Graph) Version(idx int) uint64 {
	if idx < 0 || idx >= len(g.versions) {
		return 0
	}
	return g.versions[idx]
}

// Generation returns the total number of successful updates across all
// nodes.
func (g *Graph) Generation() uint64 { return g.generation }

// SelectedLayer returns the index of the host-focused node. Defaults to
// 0 for a new graph; selection never affects evaluation.
func (g *Graph) SelectedLayer() int { return g.selected }

// SelectLayer moves the host focus cursor to idx.
func (g *Graph) SelectLayer(idx int) error {
	if idx < 0 || idx >= len(g.nodes) {
		return fmt.Errorf("%w: index %d", ErrUnknownLayer, idx)
	}
	g.selected = idx
	return nil
}
