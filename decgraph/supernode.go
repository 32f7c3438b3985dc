// Package decgraph - supernode.go
// Supernode: a node of a decontractible graph, owning a nested DecGraph and
// referencing the component sets that placed it where it is.
package decgraph

import "fmt"

// Supernode is a node of a DecGraph. Its Dec field holds the decontractible
// graph it stands for; for a leaf node Dec is empty. ComponentSets records
// the component sets of the scheme one level below that this supernode
// contracts (frozen between updates). Supernode points upward at the node
// containing this one in the next level, nil at the top.
type Supernode struct {
	Key           string
	Level         int
	Dec           *DecGraph
	ComponentSets map[SetID]*ComponentSet
	Supernode     *Supernode
	Attrs         Attrs
}

// NewSupernode builds a supernode with an empty decontraction. Use NoLevel
// for nodes outside a multilevel hierarchy. A nil attrs yields an empty map.
func NewSupernode(key string, level int, attrs Attrs) *Supernode {
	return &Supernode{
		Key:           key,
		Level:         level,
		Dec:           NewDecGraph(),
		ComponentSets: make(map[SetID]*ComponentSet),
		Attrs:         attrs.Clone(),
	}
}

// AddNode inserts n into the decontraction of s, checking that n sits one
// level below s when both levels are set.
//
// Errors: ErrLevelMismatch.
func (s *Supernode) AddNode(n *Supernode) error {
	if s.Level != NoLevel && n.Level != NoLevel && n.Level != s.Level-1 {
		return fmt.Errorf("%w: supernode %q at level %d cannot contain %q at level %d",
			ErrLevelMismatch, s.Key, s.Level, n.Key, n.Level)
	}
	s.Dec.AddNode(n)
	return nil
}

// AddEdge inserts e into the decontraction of s. Both endpoints must already
// be in the decontraction.
//
// Errors: ErrEndpointNotFound.
func (s *Supernode) AddEdge(e *Superedge) error {
	return s.Dec.AddEdge(e)
}

// RemoveNode removes n from the decontraction, cascading removal of its
// incident superedges.
//
// Errors: ErrNodeNotFound.
func (s *Supernode) RemoveNode(n *Supernode) error {
	return s.Dec.RemoveNode(n)
}

// RemoveEdge removes e from the decontraction.
//
// Errors: ErrEdgeNotFound.
func (s *Supernode) RemoveEdge(e *Superedge) error {
	return s.Dec.RemoveEdge(e)
}

// Height returns the height of the decontraction hierarchy rooted at s:
// 0 for a leaf, 1 + height of its decontraction otherwise.
func (s *Supernode) Height() int {
	return s.Dec.Height() + 1
}

// Size returns the number of supernodes directly inside the decontraction.
func (s *Supernode) Size() int {
	return s.Dec.Order()
}

// String implements fmt.Stringer for diagnostics and test failure output.
func (s *Supernode) String() string {
	return fmt.Sprintf("Supernode(%s, level=%d, |dec|=%d)", s.Key, s.Level, s.Dec.Order())
}

// deepcopy duplicates s and its whole nested hierarchy, pointing the copy
// upward at parent. ComponentSets are shared with the source; DeepCopy on the
// containing graph re-links them afterwards.
func (s *Supernode) deepcopy(parent *Supernode) *Supernode {
	c := &Supernode{
		Key:           s.Key,
		Level:         s.Level,
		ComponentSets: s.ComponentSets,
		Supernode:     parent,
		Attrs:         s.Attrs.Clone(),
	}
	c.Dec = s.Dec.deepcopy(c)
	return c
}
