// Package contraction - quadruple.go
// UpdateQuadruple: the minimal delta a level emits for the level above.
package contraction

import (
	"fmt"
	"sort"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// UpdateQuadruple tracks the supernodes and superedges added to and removed
// from a decontractible graph since the last consumption by the level above.
// It is kept minimal by construction: adding an element to one side cancels a
// pending entry on the opposite side, so an add-then-remove pair nets out to
// nothing. Supernodes are identified by key, superedges by endpoint pair.
type UpdateQuadruple struct {
	vPlus  map[string]*decgraph.Supernode
	vMinus map[string]*decgraph.Supernode
	ePlus  map[decgraph.EdgeKey]*decgraph.Superedge
	eMinus map[decgraph.EdgeKey]*decgraph.Superedge
}

// NewUpdateQuadruple returns an empty quadruple.
func NewUpdateQuadruple() *UpdateQuadruple {
	return &UpdateQuadruple{
		vPlus:  make(map[string]*decgraph.Supernode),
		vMinus: make(map[string]*decgraph.Supernode),
		ePlus:  make(map[decgraph.EdgeKey]*decgraph.Superedge),
		eMinus: make(map[decgraph.EdgeKey]*decgraph.Superedge),
	}
}

// AddVPlus records an added supernode, cancelling a pending removal of the
// same key instead when one exists.
func (q *UpdateQuadruple) AddVPlus(n *decgraph.Supernode) {
	if _, ok := q.vMinus[n.Key]; ok {
		delete(q.vMinus, n.Key)
		return
	}
	q.vPlus[n.Key] = n
}

// AddVMinus records a removed supernode, cancelling a pending addition of the
// same key instead when one exists.
func (q *UpdateQuadruple) AddVMinus(n *decgraph.Supernode) {
	if _, ok := q.vPlus[n.Key]; ok {
		delete(q.vPlus, n.Key)
		return
	}
	q.vMinus[n.Key] = n
}

// AddEPlus records an added superedge, cancelling a pending removal of the
// same endpoint pair instead when one exists.
func (q *UpdateQuadruple) AddEPlus(e *decgraph.Superedge) {
	k := e.Key()
	if _, ok := q.eMinus[k]; ok {
		delete(q.eMinus, k)
		return
	}
	q.ePlus[k] = e
}

// AddEMinus records a removed superedge, cancelling a pending addition of the
// same endpoint pair instead when one exists.
func (q *UpdateQuadruple) AddEMinus(e *decgraph.Superedge) {
	k := e.Key()
	if _, ok := q.ePlus[k]; ok {
		delete(q.ePlus, k)
		return
	}
	q.eMinus[k] = e
}

// VPlus returns the added supernodes sorted by key.
func (q *UpdateQuadruple) VPlus() []*decgraph.Supernode { return sortedNodes(q.vPlus) }

// VMinus returns the removed supernodes sorted by key.
func (q *UpdateQuadruple) VMinus() []*decgraph.Supernode { return sortedNodes(q.vMinus) }

// EPlus returns the added superedges sorted by endpoint pair.
func (q *UpdateQuadruple) EPlus() []*decgraph.Superedge { return sortedEdges(q.ePlus) }

// EMinus returns the removed superedges sorted by endpoint pair.
func (q *UpdateQuadruple) EMinus() []*decgraph.Superedge { return sortedEdges(q.eMinus) }

// HasUpdates reports whether any of the four sets is non-empty.
func (q *UpdateQuadruple) HasUpdates() bool {
	return len(q.vPlus) > 0 || len(q.vMinus) > 0 || len(q.ePlus) > 0 || len(q.eMinus) > 0
}

// Clear empties all four sets.
func (q *UpdateQuadruple) Clear() {
	q.vPlus = make(map[string]*decgraph.Supernode)
	q.vMinus = make(map[string]*decgraph.Supernode)
	q.ePlus = make(map[decgraph.EdgeKey]*decgraph.Superedge)
	q.eMinus = make(map[decgraph.EdgeKey]*decgraph.Superedge)
}

// String implements fmt.Stringer for diagnostics.
func (q *UpdateQuadruple) String() string {
	return fmt.Sprintf("UpdateQuadruple(v+=%d, v-=%d, e+=%d, e-=%d)",
		len(q.vPlus), len(q.vMinus), len(q.ePlus), len(q.eMinus))
}

func sortedNodes(m map[string]*decgraph.Supernode) []*decgraph.Supernode {
	out := make([]*decgraph.Supernode, 0, len(m))
	for _, n := range m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func sortedEdges(m map[decgraph.EdgeKey]*decgraph.Superedge) []*decgraph.Superedge {
	out := make([]*decgraph.Superedge, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key(), out[j].Key()
		if a.Tail != b.Tail {
			return a.Tail < b.Tail
		}
		return a.Head < b.Head
	})
	return out
}
