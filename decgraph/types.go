// Package decgraph - types.go
// Shared primitive types and sentinel errors for the decontractible graph
// model. Structural containers (Supernode, Superedge, DecGraph) live in their
// own files.
package decgraph

import "errors"

// NoLevel marks a supernode or superedge that does not (yet) belong to a
// multilevel hierarchy. Levels inside a hierarchy are always >= 0.
const NoLevel = -1

// Attrs carries free-form attributes attached to supernodes, superedges and
// component sets. Values are opaque to the model.
type Attrs map[string]any

// Clone returns a shallow copy of a. A nil receiver yields an empty map.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge copies every key of other into a, overwriting on collision.
func (a Attrs) Merge(other Attrs) {
	for k, v := range other {
		a[k] = v
	}
}

// EdgeKey identifies a superedge by the keys of its endpoints.
type EdgeKey struct {
	Tail string
	Head string
}

// Sentinel errors returned by model mutations.
var (
	// ErrNodeNotFound indicates a supernode lookup or removal referencing a
	// key that is not present in the graph.
	ErrNodeNotFound = errors.New("decgraph: supernode not found")

	// ErrEdgeNotFound indicates a superedge removal referencing an edge that
	// is not present in the graph.
	ErrEdgeNotFound = errors.New("decgraph: superedge not found")

	// ErrEndpointNotFound indicates an attempt to add a superedge whose tail
	// or head supernode is not in the graph.
	ErrEndpointNotFound = errors.New("decgraph: superedge endpoint not in graph")

	// ErrLevelMismatch indicates a level inconsistency between a container
	// and a nested element (for example a superedge whose endpoints sit on a
	// different level, or a decontraction member one level off).
	ErrLevelMismatch = errors.New("decgraph: level mismatch")

	// ErrDecContainment indicates a superedge decontraction member whose
	// endpoints are not contained in the tail/head decontractions.
	ErrDecContainment = errors.New("decgraph: decontraction member outside endpoint decontractions")
)
