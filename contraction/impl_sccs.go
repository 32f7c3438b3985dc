// Package contraction - impl_sccs.go
// SCC scheme: partitions the lower graph into its strongly connected
// components.
package contraction

import (
	"github.com/multilevelgraphs/mlgraph/algorithms"
	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// SCCsScheme contracts the lower graph by its strongly connected components.
// Component sets form a partition, so every node belongs to exactly one set
// and every supernode owns exactly one component set. A maintained raw-level
// decontraction backs the reachability queries that drive edge updates.
type SCCsScheme struct {
	edgeBased
}

// NewSCCsScheme builds an unbound SCC scheme.
func NewSCCsScheme(options ...Option) *SCCsScheme {
	s := &SCCsScheme{}
	s.trackDec = true
	s.init(s, options)
	return s
}

func (s *SCCsScheme) Name() string { return "scc" }

// Clone returns an unbound copy with the same configuration.
func (s *SCCsScheme) Clone() Scheme {
	return NewSCCsScheme(s.options()...)
}

func (s *SCCsScheme) contractionFunction(lower *decgraph.DecGraph) (*CompTable, error) {
	table := NewCompTable(false)
	for _, comp := range algorithms.StronglyConnected(lower) {
		table.AddNonMaximalSet(s.newComponentSet(resolve(lower, comp)...))
	}
	table.ClearModified()
	return table, nil
}

// updateAddedEdge places the raw edge, then merges strongly connected
// components when the edge closes a path from its head back to its tail.
// The merged component is exactly the set of nodes reachable from the head
// that also reach the tail. A reachability check on the contracted graph
// screens out edges that cannot close a cycle before the raw-level search.
func (s *SCCsScheme) updateAddedEdge(e *decgraph.Superedge) error {
	u := e.Tail.Supernode
	v := e.Head.Supernode
	if u == v {
		if err := u.AddEdge(e); err != nil {
			return err
		}
		s.decAddEdge(e)
		return nil
	}
	if err := s.addEdgeInSuperedge(u.Key, v.Key, e, true); err != nil {
		return err
	}
	s.decAddEdge(e)

	if _, ok := algorithms.Reachable(s.graph, v.Key)[u.Key]; !ok {
		return nil
	}

	raw, err := s.decontraction()
	if err != nil {
		return err
	}
	fromHead := algorithms.Reachable(raw, e.Head.Key)
	toTail := algorithms.Reaching(raw, e.Tail.Key)
	merged := make(map[string]struct{})
	for key := range fromHead {
		if _, ok := toTail[key]; ok {
			merged[key] = struct{}{}
		}
	}
	if len(merged) == 0 {
		return nil
	}

	retired := make(map[decgraph.SetID]*decgraph.ComponentSet)
	members := make([]*decgraph.Supernode, 0, len(merged))
	for key := range merged {
		n, ok := raw.Node(key)
		if !ok {
			continue
		}
		members = append(members, n)
		for id, cs := range s.table.Row(key) {
			retired[id] = cs
		}
	}
	for _, cs := range retired {
		s.table.RemoveSet(cs)
	}
	s.table.AddNonMaximalSet(s.newComponentSet(members...))
	return nil
}

// updateRemovedEdge removes the raw edge. An edge between two supernodes
// never splits a component; an internal edge splits its supernode into the
// strongly connected components that remain in the decontraction, detected
// by a tail-to-head reachability check.
func (s *SCCsScheme) updateRemovedEdge(e *decgraph.Superedge) error {
	u := e.Tail.Supernode
	v := e.Head.Supernode
	if u != v {
		s.removeEdgeInSuperedge(u.Key, v.Key, e)
		s.decRemoveEdge(e)
		return nil
	}
	if err := u.RemoveEdge(e); err != nil {
		return err
	}
	s.decRemoveEdge(e)

	if _, ok := algorithms.Reachable(u.Dec, e.Tail.Key)[e.Head.Key]; ok {
		return nil
	}
	// An earlier removal in the same batch may already have split this
	// supernode, leaving live sets over a subset of its decontraction.
	// Retire every set covering any of its nodes, then re-add the current
	// partition, so each node ends up in exactly one set.
	retired := make(map[decgraph.SetID]*decgraph.ComponentSet)
	for key := range u.Dec.Nodes() {
		for id, cs := range s.table.Row(key) {
			retired[id] = cs
		}
	}
	for _, cs := range retired {
		s.table.RemoveSet(cs)
	}
	for _, comp := range algorithms.StronglyConnected(u.Dec) {
		s.table.AddNonMaximalSet(s.newComponentSet(resolve(u.Dec, comp)...))
	}
	return nil
}
