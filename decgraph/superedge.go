// Package decgraph - superedge.go
// Superedge: a directed edge between supernodes, carrying the set of
// lower-level superedges it contracts.
package decgraph

import "fmt"

// Superedge is a directed edge of a DecGraph. Dec holds the superedges one
// level below that this edge contracts, keyed by their endpoints; for a
// base-level edge Dec is empty. Identity is (Tail.Key, Head.Key).
type Superedge struct {
	Tail  *Supernode
	Head  *Supernode
	Level int
	Dec   map[EdgeKey]*Superedge
	Attrs Attrs
}

// NewSuperedge builds a superedge with an empty decontraction. When level is
// not NoLevel, both endpoints must sit on that level.
//
// Errors: ErrLevelMismatch.
func NewSuperedge(tail, head *Supernode, level int, attrs Attrs) (*Superedge, error) {
	if level != NoLevel && (tail.Level != level || head.Level != level) {
		return nil, fmt.Errorf("%w: superedge at level %d over endpoints at levels %d and %d",
			ErrLevelMismatch, level, tail.Level, head.Level)
	}
	return &Superedge{
		Tail:  tail,
		Head:  head,
		Level: level,
		Dec:   make(map[EdgeKey]*Superedge),
		Attrs: attrs.Clone(),
	}, nil
}

// Key returns the identifying endpoint pair.
func (e *Superedge) Key() EdgeKey {
	return EdgeKey{Tail: e.Tail.Key, Head: e.Head.Key}
}

// AddEdge inserts sub into the decontraction of e. The tail of sub must lie
// in the decontraction of e's tail and the head of sub in the decontraction
// of e's head; when levels are set, sub must sit one level below e.
//
// Errors: ErrLevelMismatch, ErrDecContainment.
func (e *Superedge) AddEdge(sub *Superedge) error {
	if e.Level != NoLevel && sub.Level != NoLevel && sub.Level != e.Level-1 {
		return fmt.Errorf("%w: superedge at level %d cannot contain edge at level %d",
			ErrLevelMismatch, e.Level, sub.Level)
	}
	if !e.Tail.Dec.HasNode(sub.Tail.Key) || !e.Head.Dec.HasNode(sub.Head.Key) {
		return fmt.Errorf("%w: edge (%s,%s) under superedge (%s,%s)",
			ErrDecContainment, sub.Tail.Key, sub.Head.Key, e.Tail.Key, e.Head.Key)
	}
	e.Dec[sub.Key()] = sub
	return nil
}

// RemoveEdge removes sub from the decontraction of e.
//
// Errors: ErrEdgeNotFound.
func (e *Superedge) RemoveEdge(sub *Superedge) error {
	k := sub.Key()
	if _, ok := e.Dec[k]; !ok {
		return fmt.Errorf("%w: edge (%s,%s) not in superedge (%s,%s)",
			ErrEdgeNotFound, k.Tail, k.Head, e.Tail.Key, e.Head.Key)
	}
	delete(e.Dec, k)
	return nil
}

// Height returns 0 for a base edge, otherwise 1 + the maximum height among
// the contracted edges.
func (e *Superedge) Height() int {
	h := -1
	for _, sub := range e.Dec {
		if sh := sub.Height(); sh > h {
			h = sh
		}
	}
	return h + 1
}

// Size returns the number of directly contracted superedges.
func (e *Superedge) Size() int { return len(e.Dec) }

// String implements fmt.Stringer for diagnostics and test failure output.
func (e *Superedge) String() string {
	return fmt.Sprintf("Superedge(%s->%s, level=%d, |dec|=%d)", e.Tail.Key, e.Head.Key, e.Level, len(e.Dec))
}

// deepcopy duplicates e, resolving endpoints through vs, the key-to-copy map
// of the graph being copied. Members of Dec are copied recursively with
// their endpoints resolved inside the copied endpoint decontractions.
func (e *Superedge) deepcopy(vs map[string]*Supernode) *Superedge {
	tail := vs[e.Tail.Key]
	head := vs[e.Head.Key]
	out := &Superedge{
		Tail:  tail,
		Head:  head,
		Level: e.Level,
		Dec:   make(map[EdgeKey]*Superedge, len(e.Dec)),
		Attrs: e.Attrs.Clone(),
	}
	if len(e.Dec) > 0 {
		subVs := make(map[string]*Supernode, tail.Dec.Order()+head.Dec.Order())
		for k, n := range tail.Dec.Nodes() {
			subVs[k] = n
		}
		for k, n := range head.Dec.Nodes() {
			subVs[k] = n
		}
		for k, sub := range e.Dec {
			out.Dec[k] = sub.deepcopy(subVs)
		}
	}
	return out
}
