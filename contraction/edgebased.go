// Package contraction - edgebased.go
// Shared node hooks for edge-based schemes: schemes where sharing an edge is
// a necessary condition for sharing a component set.
package contraction

import (
	"fmt"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// edgeBased supplies the node-update hooks common to the cliques, cycles,
// SCCs and stars schemes. Because membership is edge-driven, an isolated
// node always occupies a singleton component set: a freshly added node gets
// one immediately, and a node may only be removed while it sits in one.
type edgeBased struct {
	base
}

// updateAddedNode wraps the new node in a singleton component set and a
// dummy supernode. The dummy is deliberately kept out of the supernode
// table: reconciliation will re-derive the node's real supernode from its
// combination and fold the dummy away.
func (s *edgeBased) updateAddedNode(n *decgraph.Supernode) error {
	s.table.AddNonMaximalSet(s.newComponentSet(n))

	dummy := decgraph.NewSupernode(s.nextSupernodeKey(), s.level, nil)
	dummy.ComponentSets = s.table.Row(n.Key)
	if err := dummy.AddNode(n); err != nil {
		return err
	}
	n.Supernode = dummy
	s.graph.AddNode(dummy)
	s.quadruple.AddVPlus(dummy)

	s.decAddNode(n)
	return nil
}

// updateRemovedNode drops the node's singleton set and stages the node for
// removal from its supernode. The node must have no incident edges at this
// point, hence the singleton precondition.
func (s *edgeBased) updateRemovedNode(n *decgraph.Supernode) error {
	row := s.table.Row(n.Key)
	if len(row) != 1 {
		return fmt.Errorf("%w: node %q is in %d component sets", ErrNotSingleton, n.Key, len(row))
	}
	for _, cs := range row {
		if cs.Len() != 1 {
			return fmt.Errorf("%w: node %q is in a set of size %d", ErrNotSingleton, n.Key, cs.Len())
		}
	}
	s.table.DeleteRow(n.Key)
	if n.Supernode != nil {
		s.stageRemoval(n.Supernode, n)
	}
	n.Supernode = nil

	s.decRemoveNode(n)
	return nil
}
