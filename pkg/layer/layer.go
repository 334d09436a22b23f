// Package layer defines the polymorphic contract every node of the
// computation graph implements, plus the primitive layers that ship with
// the engine (file source, colorspace conversion, thresholding).
//
// # The contract
//
// Graph edges are not statically typed: values cross them behind the
// type-erased [Value] handle and each layer downcasts its inputs to the
// concrete element type it expects. A failed downcast is the primary
// runtime safety boundary and surfaces as a [TypeMismatchError] naming
// both types, never as a silent misinterpretation of bytes.
//
// A layer's lifecycle is Compute then Update: Compute is read-only and
// produces a candidate output, Update commits it into the layer's single
// cached slot. A failed cycle therefore never leaves a half-written value;
// the layer keeps whatever it last committed.
//
// # State patches
//
// Compute may additionally return an incremental state [Patch]. None of
// the built-in layers produce one, and their Update rejects a non-nil
// patch with [ErrUnsupportedPatch]. The hook exists so future layers can
// carry auxiliary state across cycles without widening the interface.
package layer

import (
	"errors"
	"fmt"
)

// Value is a type-erased reference to a layer output. The concrete type
// is one of the element image types (or anything a custom layer chooses
// to emit); consumers recover it with [Input] or [As].
type Value any

// Patch is an opaque incremental state update returned by Compute and
// applied by Update. Built-in layers never produce one.
type Patch any

// ErrUnsupportedPatch is returned by Update when a layer is handed a
// non-nil state patch it does not implement.
var ErrUnsupportedPatch = errors.New("layer does not support state patches")

// Layer is one transformation node in the computation graph.
//
// Compute receives the cached outputs of the node's parents, one entry
// per incoming edge in edge-insertion order. An entry is nil when that
// parent has never produced output, a normal "not ready" condition that
// only becomes a [MissingInputError] if the layer's algorithm requires
// that input. Compute must not mutate the layer.
//
// Update commits a new output into the cached slot, replacing the
// previous value wholesale, and applies the patch if the layer supports
// one. A nil output clears the slot back to the never-computed state.
// Output returns the current cached value, or nil if the layer has never
// been computed.
type Layer interface {
	Compute(inputs []Value) (Value, Patch, error)
	Update(output Value, patch Patch) error
	Output() Value
}

// Namer is an optional capability for layers that carry a display name.
// Rendering and inspection use it; the engine does not.
type Namer interface {
	Name() string
}

// Kinder is an optional capability reporting a layer's kind
// (e.g. "source", "convert", "threshold").
type Kinder interface {
	Kind() string
}

// MissingInputError reports that a layer required the output of the
// parent on the given edge, but that parent has not been computed yet.
type MissingInputError struct {
	Edge int // index of the incoming edge, in edge-insertion order
}

// Error implements the error interface.
func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input on edge %d: parent layer has no output", e.Edge)
}

// TypeMismatchError reports a failed downcast of a type-erased value.
// Edge identifies the incoming edge the value arrived on; it is negative
// when the mismatch happened on a layer's own output during Update.
type TypeMismatchError struct {
	Expected string // type name the layer expected
	Found    string // type name actually behind the handle
	Edge     int
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	if e.Edge < 0 {
		return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
	}
	return fmt.Sprintf("type mismatch on edge %d: expected %s, found %s", e.Edge, e.Expected, e.Found)
}

// Input downcasts the value on the given incoming edge to T.
// Returns a *MissingInputError if the entry is absent or nil, and a
// *TypeMismatchError if the parent produced a different concrete type.
func Input[T any](inputs []Value, edge int) (T, error) {
	var zero T
	if edge >= len(inputs) || inputs[edge] == nil {
		return zero, &MissingInputError{Edge: edge}
	}
	v, ok := inputs[edge].(T)
	if !ok {
		return zero, &TypeMismatchError{
			Expected: fmt.Sprintf("%T", zero),
			Found:    fmt.Sprintf("%T", inputs[edge]),
			Edge:     edge,
		}
	}
	return v, nil
}

// As downcasts a type-erased value to T outside of any edge context,
// e.g. when a layer recommits its own output in Update.
func As[T any](v Value) (T, error) {
	var zero T
	t, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Expected: fmt.Sprintf("%T", zero),
			Found:    fmt.Sprintf("%T", v),
			Edge:     -1,
		}
	}
	return t, nil
}
