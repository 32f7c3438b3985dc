// Package contraction - impl_stars.go
// Stars scheme: groups a node having a single adjacent node together with
// that node, forming star-shaped components around shared centers.
package contraction

import (
	"sort"
	"strings"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// StarsScheme groups two nodes into the same component set when they share
// the same single adjacent node, or when one of them plays that center role
// for the other. Supernodes and component sets correspond one to one. With
// reciprocal set, two nodes count as adjacent only when edges exist in both
// directions; otherwise one direction suffices.
type StarsScheme struct {
	edgeBased
	reciprocal bool
}

// NewStarsScheme builds an unbound stars scheme.
func NewStarsScheme(reciprocal bool, options ...Option) *StarsScheme {
	s := &StarsScheme{reciprocal: reciprocal}
	s.trackDec = true
	s.init(s, options)
	return s
}

// Name identifies the scheme and its adjacency rule.
func (s *StarsScheme) Name() string {
	if s.reciprocal {
		return "stars_rec"
	}
	return "stars_not_rec"
}

// Clone returns an unbound copy with the same configuration.
func (s *StarsScheme) Clone() Scheme {
	return NewStarsScheme(s.reciprocal, s.options()...)
}

func (s *StarsScheme) contractionFunction(lower *decgraph.DecGraph) (*CompTable, error) {
	table := NewCompTable(false)
	for _, star := range s.starSets(lower) {
		table.AddNonMaximalSet(s.newComponentSet(resolve(lower, star)...))
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

// starSets returns the stars of the given graph as slices of sorted member
// keys. A node with exactly one adjacent node joins the star centered on
// that node, unless the joining node is already a center itself. Nodes
// outside every star are not reported.
func (s *StarsScheme) starSets(g *decgraph.DecGraph) [][]string {
	centers := make(map[string]map[string]struct{})
	for _, key := range g.NodeKeys() {
		adj, ok := s.adjacentNode(g, key)
		if !ok {
			continue
		}
		if _, isCenter := centers[key]; isCenter {
			continue
		}
		star, ok := centers[adj]
		if !ok {
			star = map[string]struct{}{adj: {}}
			centers[adj] = star
		}
		star[key] = struct{}{}
	}

	centerKeys := make([]string, 0, len(centers))
	for key := range centers {
		centerKeys = append(centerKeys, key)
	}
	sort.Strings(centerKeys)

	stars := make([][]string, 0, len(centers))
	for _, center := range centerKeys {
		members := make([]string, 0, len(centers[center]))
		for key := range centers[center] {
			members = append(members, key)
		}
		sort.Strings(members)
		stars = append(stars, members)
	}
	return stars
}

// adjacentNode returns the only node adjacent to key under the scheme's
// adjacency rule, or false when key has zero or several adjacent nodes.
func (s *StarsScheme) adjacentNode(g *decgraph.DecGraph, key string) (string, bool) {
	adj := s.adjacentKeys(g, key)
	if len(adj) != 1 {
		return "", false
	}
	for only := range adj {
		return only, true
	}
	return "", false
}

func (s *StarsScheme) adjacentKeys(g *decgraph.DecGraph, key string) map[string]struct{} {
	tails := make(map[string]struct{})
	for _, e := range g.InEdges(key) {
		tails[e.Tail.Key] = struct{}{}
	}
	heads := make(map[string]struct{})
	for _, e := range g.OutEdges(key) {
		heads[e.Head.Key] = struct{}{}
	}
	if !s.reciprocal {
		for k := range heads {
			tails[k] = struct{}{}
		}
		return tails
	}
	both := make(map[string]struct{})
	for k := range tails {
		if _, ok := heads[k]; ok {
			both[k] = struct{}{}
		}
	}
	return both
}

// updateAddedEdge places the raw edge and refreshes the star decomposition
// when the change could alter some node's single-adjacent status.
func (s *StarsScheme) updateAddedEdge(e *decgraph.Superedge) error {
	return s.updateEdge(e, true)
}

// updateRemovedEdge removes the raw edge and refreshes the star
// decomposition when the change could alter some node's single-adjacent
// status.
func (s *StarsScheme) updateRemovedEdge(e *decgraph.Superedge) error {
	return s.updateEdge(e, false)
}

func (s *StarsScheme) updateEdge(e *decgraph.Superedge, added bool) error {
	raw, err := s.decontraction()
	if err != nil {
		return err
	}
	tailBefore := len(s.adjacentKeys(raw, e.Tail.Key))
	headBefore := len(s.adjacentKeys(raw, e.Head.Key))

	u := e.Tail.Supernode
	v := e.Head.Supernode
	if added {
		if u == v {
			if err := u.AddEdge(e); err != nil {
				return err
			}
		} else if err := s.addEdgeInSuperedge(u.Key, v.Key, e, true); err != nil {
			return err
		}
		s.decAddEdge(e)
	} else {
		if u == v {
			if err := u.RemoveEdge(e); err != nil {
				return err
			}
		} else {
			s.removeEdgeInSuperedge(u.Key, v.Key, e)
		}
		s.decRemoveEdge(e)
	}

	tailAfter := len(s.adjacentKeys(raw, e.Tail.Key))
	headAfter := len(s.adjacentKeys(raw, e.Head.Key))
	if !crossedSingle(tailBefore, tailAfter) && !crossedSingle(headBefore, headAfter) {
		return nil
	}
	s.refreshStars(raw)
	return nil
}

// crossedSingle reports whether an adjacency count change can affect star
// membership: only transitions into or out of a count of one matter.
func crossedSingle(before, after int) bool {
	return before != after && (before == 1 || after == 1)
}

// refreshStars diffs the star decomposition of the raw graph against the
// tracked component sets, retiring sets whose membership vanished and
// tracking new ones. Nodes left with no set fall back to singletons.
func (s *StarsScheme) refreshStars(raw *decgraph.DecGraph) {
	wanted := make(map[string][]string)
	for _, star := range s.starSets(raw) {
		wanted[strings.Join(star, "|")] = star
	}

	current := make(map[string]*decgraph.ComponentSet)
	for _, cs := range s.table.AllSets() {
		current[strings.Join(cs.MemberKeys(), "|")] = cs
	}

	for _, sig := range sortedSignatures(current) {
		if _, ok := wanted[sig]; !ok && current[sig].Len() > 1 {
			s.table.RemoveSet(current[sig])
		}
	}
	for _, sig := range sortedSignatures(wanted) {
		if _, ok := current[sig]; ok {
			continue
		}
		star := wanted[sig]
		// Members joining a star give up their singleton sets.
		for _, key := range star {
			for _, cs := range s.sortedRow(key) {
				if cs.Len() == 1 {
					s.table.RemoveSet(cs)
				}
			}
		}
		s.table.AddNonMaximalSet(s.newComponentSet(resolve(raw, star)...))
	}
	s.table.AddSingletons(s.singletonFactory())
}

func sortedSignatures[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for sig := range m {
		out = append(out, sig)
	}
	sort.Strings(out)
	return out
}
