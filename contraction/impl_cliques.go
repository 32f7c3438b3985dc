// Package contraction - impl_cliques.go
// Cliques scheme: groups nodes by the maximal cliques of the undirected view
// of the lower graph.
package contraction

import (
	"sort"

	"github.com/multilevelgraphs/mlgraph/algorithms"
	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// CliquesScheme groups two nodes into the same component set when they share
// a maximal clique, and into the same supernode when they share the same set
// of maximal cliques. With reciprocal set, two nodes are adjacent only when
// edges exist between them in both directions; otherwise one direction
// suffices.
type CliquesScheme struct {
	edgeBased
	reciprocal bool
}

// NewCliquesScheme builds an unbound cliques scheme.
func NewCliquesScheme(reciprocal bool, options ...Option) *CliquesScheme {
	s := &CliquesScheme{reciprocal: reciprocal}
	s.init(s, options)
	return s
}

// Name identifies the scheme and its adjacency rule.
func (s *CliquesScheme) Name() string {
	if s.reciprocal {
		return "cliques_rec"
	}
	return "cliques_not_rec"
}

// Clone returns an unbound copy with the same configuration.
func (s *CliquesScheme) Clone() Scheme {
	return NewCliquesScheme(s.reciprocal, s.options()...)
}

func (s *base) options() []Option {
	return []Option{
		WithSupernodeAttrs(s.nodeAttrs),
		WithSuperedgeAttrs(s.edgeAttrs),
		WithComponentSetAttrs(s.setAttrs),
	}
}

func (s *CliquesScheme) contractionFunction(lower *decgraph.DecGraph) (*CompTable, error) {
	table := NewCompTable(false)
	for _, clique := range algorithms.MaximalCliques(lower, s.reciprocal) {
		members := make([]*decgraph.Supernode, 0, len(clique))
		for _, k := range clique {
			n, _ := lower.Node(k)
			members = append(members, n)
		}
		table.AddNonMaximalSet(s.newComponentSet(members...))
	}
	table.ClearModified()
	return table, nil
}

// updateAddedEdge reacts to a new raw edge (tail, head). When tail and head
// are (or become) adjacent under the reciprocal rule, new maximal cliques
// appear: each maximal clique of the common supernode neighborhood in the
// clique graph, unioned at the raw level with {tail, head}, is one. Cliques
// collapsed into those new maximal ones are dropped from the table.
//
// Clique members sharing a supernode with an endpoint are invisible to the
// neighborhood intersection; when it comes up empty the tracked set is the
// bare {tail, head} pair, which can split a grouping a fresh contraction
// would keep. See the incremental-cliques note in DESIGN.md.
func (s *CliquesScheme) updateAddedEdge(e *decgraph.Superedge) error {
	u := e.Tail.Supernode
	v := e.Head.Supernode

	adjacent := !s.reciprocal
	if !adjacent {
		if rev, ok := s.graph.Edge(v.Key, u.Key); ok {
			_, adjacent = rev.Dec[decgraph.EdgeKey{Tail: e.Head.Key, Head: e.Tail.Key}]
		}
	}

	if adjacent {
		cliqueGraph := s.undirectedCliqueGraph()
		intersection := commonNeighbors(cliqueGraph, u.Key, v.Key)

		induced := cliqueGraph.InducedSubgraph(intersection)
		cliques := algorithms.MaximalCliques(induced, false)
		if len(cliques) == 0 {
			// No common neighborhood: the new maximal clique is just the
			// edge's own endpoints.
			cliques = [][]string{{}}
		}
		for _, clique := range cliques {
			members := map[string]*decgraph.Supernode{
				e.Tail.Key: e.Tail,
				e.Head.Key: e.Head,
			}
			for _, snKey := range clique {
				sn, _ := s.graph.Node(snKey)
				for k, sub := range sn.Dec.Nodes() {
					members[k] = sub
				}
			}
			s.table.AddNonMaximalSet(s.newComponentSet(collectNodes(members)...))
		}

		s.removeCollapsedSets(intersection, e.Tail)
		s.removeCollapsedSets(intersection, e.Head)
	}

	if u != v {
		if err := s.addEdgeInSuperedge(u.Key, v.Key, e, true); err != nil {
			return err
		}
	}

	if adjacent {
		return s.updateGraph()
	}
	return nil
}

// updateRemovedEdge drops the raw edge and, when tail and head are no longer
// adjacent, retires every clique containing both; for each retired clique
// the two reductions (minus tail, minus head) are re-inserted when still
// maximal.
func (s *CliquesScheme) updateRemovedEdge(e *decgraph.Superedge) error {
	u := e.Tail.Supernode
	v := e.Head.Supernode

	var severed bool
	if u == v {
		if err := u.RemoveEdge(e); err != nil {
			return err
		}
		severed = s.reciprocal || !u.Dec.HasEdge(e.Head.Key, e.Tail.Key)
	} else {
		s.removeEdgeInSuperedge(u.Key, v.Key, e)
		severed = s.reciprocal
		if !severed {
			rev, ok := s.graph.Edge(v.Key, u.Key)
			if !ok {
				severed = true
			} else {
				_, tracked := rev.Dec[decgraph.EdgeKey{Tail: e.Head.Key, Head: e.Tail.Key}]
				severed = !tracked
			}
		}
	}
	if !severed {
		return nil
	}

	var candidates []map[string]*decgraph.Supernode
	for _, cs := range s.rowIntersection(e.Tail.Key, e.Head.Key) {
		candidates = append(candidates,
			membersWithout(cs, e.Tail.Key),
			membersWithout(cs, e.Head.Key))
		s.table.RemoveSet(cs)
	}

	for _, candidate := range candidates {
		if len(candidate) == 0 || s.coveredByTable(candidate) {
			continue
		}
		s.table.AddNonMaximalSet(s.newComponentSet(collectNodes(candidate)...))
	}
	return s.updateGraph()
}

// undirectedCliqueGraph builds the clique graph over the current supernodes:
// two supernodes are joined when every raw node of one is adjacent to every
// raw node of the other, so their union is again a clique.
func (s *CliquesScheme) undirectedCliqueGraph() *decgraph.DecGraph {
	out := decgraph.NewDecGraph()
	for key := range s.graph.Nodes() {
		out.AddNode(decgraph.NewSupernode(key, decgraph.NoLevel, nil))
	}
	done := make(map[decgraph.EdgeKey]struct{})
	for ek := range s.graph.Edges() {
		pair := ek
		if pair.Head < pair.Tail {
			pair = decgraph.EdgeKey{Tail: ek.Head, Head: ek.Tail}
		}
		if _, ok := done[pair]; ok {
			continue
		}
		done[pair] = struct{}{}
		if s.reciprocal && !s.graph.HasEdge(ek.Head, ek.Tail) {
			continue
		}
		if !s.supernodesAdjacent(pair.Tail, pair.Head) {
			continue
		}
		tail, _ := out.Node(pair.Tail)
		head, _ := out.Node(pair.Head)
		und, err := decgraph.NewSuperedge(tail, head, decgraph.NoLevel, nil)
		if err == nil {
			_ = out.AddEdge(und)
		}
	}
	return out
}

// supernodesAdjacent reports full adjacency between two supernodes at the
// raw level. With reciprocal set, both superedges must exist and carry one
// raw edge per ordered node pair; otherwise every unordered node pair must
// be covered by a raw edge in either direction.
func (s *CliquesScheme) supernodesAdjacent(uKey, vKey string) bool {
	u, _ := s.graph.Node(uKey)
	v, _ := s.graph.Node(vKey)
	uv, okUV := s.graph.Edge(uKey, vKey)
	vu, okVU := s.graph.Edge(vKey, uKey)

	if s.reciprocal {
		return okUV && okVU && uv.Size()+vu.Size() == 2*u.Size()*v.Size()
	}

	pairs := make(map[decgraph.EdgeKey]struct{})
	record := func(se *decgraph.Superedge) {
		for k := range se.Dec {
			pair := k
			if pair.Head < pair.Tail {
				pair = decgraph.EdgeKey{Tail: k.Head, Head: k.Tail}
			}
			pairs[pair] = struct{}{}
		}
	}
	if okUV {
		record(uv)
	}
	if okVU {
		record(vu)
	}
	return len(pairs) == u.Size()*v.Size()
}

// removeCollapsedSets retires the cliques made non-maximal by a new clique
// around node: those whose members' supernodes, besides node's own, all lie
// in the given neighborhood intersection. Only meaningful while node sits
// alone in its supernode.
func (s *CliquesScheme) removeCollapsedSets(intersection map[string]struct{}, node *decgraph.Supernode) {
	if node.Supernode == nil || node.Supernode.Size() != 1 {
		return
	}
	for _, cs := range s.sortedRow(node.Key) {
		collapsed := true
		for _, m := range cs.Members() {
			if m.Supernode == nil || m.Supernode == node.Supernode {
				continue
			}
			if _, ok := intersection[m.Supernode.Key]; !ok {
				collapsed = false
				break
			}
		}
		if collapsed {
			s.table.RemoveSet(cs)
		}
	}
}

// rowIntersection returns the sets present in both nodes' rows, sorted by ID.
func (s *base) rowIntersection(aKey, bKey string) []*decgraph.ComponentSet {
	rowA := s.table.Row(aKey)
	rowB := s.table.Row(bKey)
	out := make([]*decgraph.ComponentSet, 0, len(rowA))
	for id, cs := range rowA {
		if _, ok := rowB[id]; ok {
			out = append(out, cs)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// sortedRow returns a snapshot of the node's sets sorted by ID.
func (s *base) sortedRow(key string) []*decgraph.ComponentSet {
	row := s.table.Row(key)
	out := make([]*decgraph.ComponentSet, 0, len(row))
	for _, cs := range row {
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// coveredByTable reports whether some tracked set contains every given node.
func (s *base) coveredByTable(members map[string]*decgraph.Supernode) bool {
	var rows []map[decgraph.SetID]*decgraph.ComponentSet
	for k := range members {
		rows = append(rows, s.table.Row(k))
	}
	if len(rows) == 0 {
		return false
	}
	base := rows[0]
	for _, row := range rows[1:] {
		if len(row) < len(base) {
			base = row
		}
	}
candidates:
	for id := range base {
		for _, row := range rows {
			if _, ok := row[id]; !ok {
				continue candidates
			}
		}
		return true
	}
	return false
}

func membersWithout(cs *decgraph.ComponentSet, key string) map[string]*decgraph.Supernode {
	out := make(map[string]*decgraph.Supernode, cs.Len())
	for k, m := range cs.Members() {
		if k != key {
			out[k] = m
		}
	}
	return out
}

func collectNodes(m map[string]*decgraph.Supernode) []*decgraph.Supernode {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*decgraph.Supernode, 0, len(m))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// commonNeighbors returns the keys adjacent to both endpoints in the
// (undirected) clique graph.
func commonNeighbors(g *decgraph.DecGraph, uKey, vKey string) map[string]struct{} {
	neighbors := func(key string) map[string]struct{} {
		out := make(map[string]struct{})
		for k := range g.ForwardStar(key) {
			out[k] = struct{}{}
		}
		for k := range g.ReverseStar(key) {
			out[k] = struct{}{}
		}
		return out
	}
	nu := neighbors(uKey)
	out := make(map[string]struct{})
	for k := range neighbors(vKey) {
		if _, ok := nu[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}
