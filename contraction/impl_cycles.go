// Package contraction - impl_cycles.go
// Cycles scheme: groups nodes by the simple cycles of the lower graph,
// optionally keeping only maximal cycles.
package contraction

import (
	"sort"
	"strings"

	"github.com/multilevelgraphs/mlgraph/algorithms"
	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// CyclesScheme groups two nodes into the same component set when they lie on
// the same simple cycle, and into the same supernode when they share the
// same set of cycles. With maximal set, only cycles whose vertex set is not
// contained in another cycle's are tracked. A maintained raw-level
// decontraction lets edge updates search only the cycles touching the
// changed edge.
type CyclesScheme struct {
	edgeBased
	maximal bool
}

// NewCyclesScheme builds an unbound cycles scheme.
func NewCyclesScheme(maximal bool, options ...Option) *CyclesScheme {
	s := &CyclesScheme{maximal: maximal}
	s.trackDec = true
	s.init(s, options)
	return s
}

// Name identifies the scheme and its maximality rule.
func (s *CyclesScheme) Name() string {
	if s.maximal {
		return "simple_maximal_cycles"
	}
	return "simple_cycles"
}

// Clone returns an unbound copy with the same configuration.
func (s *CyclesScheme) Clone() Scheme {
	return NewCyclesScheme(s.maximal, s.options()...)
}

func (s *CyclesScheme) contractionFunction(lower *decgraph.DecGraph) (*CompTable, error) {
	cycles := algorithms.SimpleCycles(lower)
	table := NewCompTable(s.maximal)

	if s.maximal {
		// Seeding longest-first guarantees no earlier set is a strict
		// subset of a later one, so subset scanning can be skipped.
		sort.Slice(cycles, func(i, j int) bool {
			if len(cycles[i]) != len(cycles[j]) {
				return len(cycles[i]) > len(cycles[j])
			}
			return cycleSignature(cycles[i]) < cycleSignature(cycles[j])
		})
		for _, cycle := range cycles {
			table.AddMaximalSet(s.newComponentSet(resolve(lower, cycle)...), false)
		}
	} else {
		for _, cycle := range cycles {
			table.AddNonMaximalSet(s.newComponentSet(resolve(lower, cycle)...))
		}
	}

	for _, key := range lower.NodeKeys() {
		if !table.Has(key) {
			n, _ := lower.Node(key)
			table.AddNonMaximalSet(s.newComponentSet(n))
		}
	}
	table.ClearModified()
	return table, nil
}

// updateAddedEdge places the raw edge, then tracks every simple cycle the
// new edge closes: each cycle found with the edge as prefix becomes a
// component set, subject to the maximality rule. In non-maximal mode the
// fallback singletons of nodes the new cycles cover are retired; in maximal
// mode subset reduction handles them.
func (s *CyclesScheme) updateAddedEdge(e *decgraph.Superedge) error {
	u := e.Tail.Supernode
	v := e.Head.Supernode
	if u == v {
		if err := u.AddEdge(e); err != nil {
			return err
		}
	} else if err := s.addEdgeInSuperedge(u.Key, v.Key, e, true); err != nil {
		return err
	}

	raw, err := s.decontraction()
	if err != nil {
		return err
	}
	s.decAddEdge(e)

	cycles := algorithms.CycleSearch(raw, []string{e.Tail.Key, e.Head.Key})
	for _, cycle := range cycles {
		cs := s.newComponentSet(resolve(raw, cycle)...)
		if s.maximal {
			s.table.AddMaximalSet(cs, true)
		} else {
			s.table.AddNonMaximalSet(cs)
		}
	}
	if !s.maximal {
		s.retireCoveredSingletons(raw, cycles)
	}
	return nil
}

// retireCoveredSingletons drops the fallback singleton set of every node a
// newly tracked cycle covers, mirroring contraction, which seeds singletons
// only for nodes outside all cycles. A singleton standing for a self-loop
// cycle is a real cycle set and stays.
func (s *CyclesScheme) retireCoveredSingletons(raw *decgraph.DecGraph, cycles [][]string) {
	covered := make(map[string]struct{})
	for _, cycle := range cycles {
		if len(cycle) < 2 {
			continue
		}
		for _, k := range cycle {
			covered[k] = struct{}{}
		}
	}
	for k := range covered {
		if raw.HasEdge(k, k) {
			continue
		}
		for _, cs := range s.table.Row(k) {
			if cs.Len() == 1 {
				s.table.RemoveSet(cs)
			}
		}
	}
}

// updateRemovedEdge removes the raw edge, then re-examines every component
// set containing both endpoints: a set survives only when an alternative
// cycle over exactly its vertex set remains. Retired sets are replaced, in
// maximal mode, by the maximal sub-cycles that remain, and stranded nodes
// fall back to singletons.
func (s *CyclesScheme) updateRemovedEdge(e *decgraph.Superedge) error {
	u := e.Tail.Supernode
	v := e.Head.Supernode
	if u == v {
		if err := u.RemoveEdge(e); err != nil {
			return err
		}
	} else {
		s.removeEdgeInSuperedge(u.Key, v.Key, e)
	}

	raw, err := s.decontraction()
	if err != nil {
		return err
	}
	s.decRemoveEdge(e)

	for _, cs := range s.rowIntersection(e.Tail.Key, e.Head.Key) {
		memberKeys := make(map[string]struct{}, cs.Len())
		for k := range cs.Members() {
			memberKeys[k] = struct{}{}
		}
		sub := raw.InducedSubgraph(memberKeys)

		cyclesWithTail := algorithms.CycleSearch(sub, []string{e.Tail.Key})
		if coversAll(cyclesWithTail, memberKeys) {
			continue
		}

		s.table.RemoveSet(cs)
		if !s.maximal {
			// Sub-cycles are already tracked in a non-maximal table.
			continue
		}
		for _, cycle := range cyclesWithTail {
			s.table.AddMaximalSet(s.newComponentSet(resolve(raw, cycle)...), true)
		}
		withoutTail := make(map[string]struct{}, len(memberKeys))
		for k := range memberKeys {
			if k != e.Tail.Key {
				withoutTail[k] = struct{}{}
			}
		}
		for _, cycle := range algorithms.SimpleCycles(raw.InducedSubgraph(withoutTail)) {
			s.table.AddMaximalSet(s.newComponentSet(resolve(raw, cycle)...), true)
		}
	}

	s.table.AddSingletons(s.singletonFactory())
	return nil
}

// coversAll reports whether some cycle spans exactly the given key set.
func coversAll(cycles [][]string, keys map[string]struct{}) bool {
	for _, cycle := range cycles {
		if len(cycle) != len(keys) {
			continue
		}
		full := true
		for _, k := range cycle {
			if _, ok := keys[k]; !ok {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}
	return false
}

func resolve(g *decgraph.DecGraph, keys []string) []*decgraph.Supernode {
	out := make([]*decgraph.Supernode, 0, len(keys))
	for _, k := range keys {
		if n, ok := g.Node(k); ok {
			out = append(out, n)
		}
	}
	return out
}

func cycleSignature(cycle []string) string {
	keys := append([]string(nil), cycle...)
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
