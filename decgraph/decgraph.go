// Package decgraph - decgraph.go
// DecGraph: the map-backed container for supernodes and superedges, with
// adjacency indexes, decontraction, induced subgraphs, deep copy and
// structural equality.
package decgraph

import (
	"fmt"
	"sort"
)

// DecGraph is a directed graph over supernodes. Nodes are keyed by their Key,
// edges by their endpoint pair. succ and pred index adjacency in both
// directions for O(1) star queries.
type DecGraph struct {
	nodes map[string]*Supernode
	edges map[EdgeKey]*Superedge
	succ  map[string]map[string]struct{}
	pred  map[string]map[string]struct{}
}

// NewDecGraph returns an empty graph.
func NewDecGraph() *DecGraph {
	return &DecGraph{
		nodes: make(map[string]*Supernode),
		edges: make(map[EdgeKey]*Superedge),
		succ:  make(map[string]map[string]struct{}),
		pred:  make(map[string]map[string]struct{}),
	}
}

// AddNode inserts n. Idempotent: adding a key that is already present leaves
// the existing supernode in place.
func (g *DecGraph) AddNode(n *Supernode) {
	if _, ok := g.nodes[n.Key]; ok {
		return
	}
	g.nodes[n.Key] = n
	g.succ[n.Key] = make(map[string]struct{})
	g.pred[n.Key] = make(map[string]struct{})
}

// AddEdge inserts e. Both endpoints must already be nodes of g. Idempotent on
// the endpoint pair: an existing superedge with the same key is kept.
//
// Errors: ErrEndpointNotFound.
func (g *DecGraph) AddEdge(e *Superedge) error {
	if _, ok := g.nodes[e.Tail.Key]; !ok {
		return fmt.Errorf("%w: tail %q of edge (%s,%s)", ErrEndpointNotFound, e.Tail.Key, e.Tail.Key, e.Head.Key)
	}
	if _, ok := g.nodes[e.Head.Key]; !ok {
		return fmt.Errorf("%w: head %q of edge (%s,%s)", ErrEndpointNotFound, e.Head.Key, e.Tail.Key, e.Head.Key)
	}
	k := e.Key()
	if _, ok := g.edges[k]; ok {
		return nil
	}
	g.edges[k] = e
	g.succ[k.Tail][k.Head] = struct{}{}
	g.pred[k.Head][k.Tail] = struct{}{}
	return nil
}

// RemoveNode removes n and every superedge incident to it.
//
// Errors: ErrNodeNotFound.
func (g *DecGraph) RemoveNode(n *Supernode) error {
	if _, ok := g.nodes[n.Key]; !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, n.Key)
	}
	for head := range g.succ[n.Key] {
		delete(g.edges, EdgeKey{Tail: n.Key, Head: head})
		delete(g.pred[head], n.Key)
	}
	for tail := range g.pred[n.Key] {
		delete(g.edges, EdgeKey{Tail: tail, Head: n.Key})
		delete(g.succ[tail], n.Key)
	}
	delete(g.succ, n.Key)
	delete(g.pred, n.Key)
	delete(g.nodes, n.Key)
	return nil
}

// RemoveEdge removes e.
//
// Errors: ErrEdgeNotFound.
func (g *DecGraph) RemoveEdge(e *Superedge) error {
	k := e.Key()
	if _, ok := g.edges[k]; !ok {
		return fmt.Errorf("%w: (%s,%s)", ErrEdgeNotFound, k.Tail, k.Head)
	}
	delete(g.edges, k)
	delete(g.succ[k.Tail], k.Head)
	delete(g.pred[k.Head], k.Tail)
	return nil
}

// Node returns the supernode with the given key.
func (g *DecGraph) Node(key string) (*Supernode, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// Edge returns the superedge with the given endpoints.
func (g *DecGraph) Edge(tail, head string) (*Superedge, bool) {
	e, ok := g.edges[EdgeKey{Tail: tail, Head: head}]
	return e, ok
}

// HasNode reports whether a supernode with the given key is present.
func (g *DecGraph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// HasEdge reports whether a superedge with the given endpoints is present.
func (g *DecGraph) HasEdge(tail, head string) bool {
	_, ok := g.edges[EdgeKey{Tail: tail, Head: head}]
	return ok
}

// Nodes exposes the internal node map keyed by supernode key. Callers must
// treat it as read-only.
func (g *DecGraph) Nodes() map[string]*Supernode { return g.nodes }

// Edges exposes the internal edge map keyed by endpoint pair. Callers must
// treat it as read-only.
func (g *DecGraph) Edges() map[EdgeKey]*Superedge { return g.edges }

// Order returns the number of supernodes.
func (g *DecGraph) Order() int { return len(g.nodes) }

// NumEdges returns the number of superedges.
func (g *DecGraph) NumEdges() int { return len(g.edges) }

// NodeKeys returns all supernode keys in sorted order, for deterministic
// iteration.
func (g *DecGraph) NodeKeys() []string {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Degree returns the number of superedges incident to key, counting a
// self-loop twice.
func (g *DecGraph) Degree(key string) int {
	return len(g.succ[key]) + len(g.pred[key])
}

// ForwardStar returns the successors of key as a key-to-supernode map.
func (g *DecGraph) ForwardStar(key string) map[string]*Supernode {
	out := make(map[string]*Supernode, len(g.succ[key]))
	for h := range g.succ[key] {
		out[h] = g.nodes[h]
	}
	return out
}

// ReverseStar returns the predecessors of key as a key-to-supernode map.
func (g *DecGraph) ReverseStar(key string) map[string]*Supernode {
	out := make(map[string]*Supernode, len(g.pred[key]))
	for t := range g.pred[key] {
		out[t] = g.nodes[t]
	}
	return out
}

// OutEdges returns the superedges leaving key.
func (g *DecGraph) OutEdges(key string) []*Superedge {
	out := make([]*Superedge, 0, len(g.succ[key]))
	for h := range g.succ[key] {
		out = append(out, g.edges[EdgeKey{Tail: key, Head: h}])
	}
	return out
}

// InEdges returns the superedges entering key.
func (g *DecGraph) InEdges(key string) []*Superedge {
	out := make([]*Superedge, 0, len(g.pred[key]))
	for t := range g.pred[key] {
		out = append(out, g.edges[EdgeKey{Tail: t, Head: key}])
	}
	return out
}

// Height returns -1 for an empty graph, otherwise the maximum supernode
// height.
func (g *DecGraph) Height() int {
	h := -1
	for _, n := range g.nodes {
		if nh := n.Height(); nh > h {
			h = nh
		}
	}
	return h
}

// CompleteDecontraction expands the graph one level down: the union of all
// supernode decontractions, plus all edges contracted by the superedges.
//
// Errors: ErrEndpointNotFound, ErrDecContainment when the hierarchy
// invariants are violated.
//
// Complexity: O(V' + E') over the expanded graph.
func (g *DecGraph) CompleteDecontraction() (*DecGraph, error) {
	out := NewDecGraph()
	for _, n := range g.nodes {
		for _, sub := range n.Dec.nodes {
			out.AddNode(sub)
		}
	}
	for _, n := range g.nodes {
		for _, e := range n.Dec.edges {
			if err := out.AddEdge(e); err != nil {
				return nil, err
			}
		}
	}
	for _, e := range g.edges {
		for _, sub := range e.Dec {
			if err := out.AddEdge(sub); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// InducedSubgraph returns the subgraph over the given keys: the matching
// supernodes plus every superedge with both endpoints in the set. Keys absent
// from g are ignored.
func (g *DecGraph) InducedSubgraph(keys map[string]struct{}) *DecGraph {
	out := NewDecGraph()
	for k := range keys {
		if n, ok := g.nodes[k]; ok {
			out.AddNode(n)
		}
	}
	for ek, e := range g.edges {
		if _, okT := out.nodes[ek.Tail]; !okT {
			continue
		}
		if _, okH := out.nodes[ek.Head]; !okH {
			continue
		}
		out.edges[ek] = e
		out.succ[ek.Tail][ek.Head] = struct{}{}
		out.pred[ek.Head][ek.Tail] = struct{}{}
	}
	return out
}

// deepcopy duplicates the graph and its nested hierarchy, with every copied
// supernode pointing upward at parent. ComponentSet references are shared
// with the source; DeepCopy re-links them.
func (g *DecGraph) deepcopy(parent *Supernode) *DecGraph {
	out := NewDecGraph()
	vs := make(map[string]*Supernode, len(g.nodes))
	for k, n := range g.nodes {
		vs[k] = n.deepcopy(parent)
	}
	for _, n := range vs {
		out.AddNode(n)
	}
	for _, e := range g.edges {
		_ = out.AddEdge(e.deepcopy(vs))
	}
	return out
}

// DeepCopy returns a fully independent duplicate of g: every supernode,
// superedge and nested decontraction is copied, and each copied supernode's
// ComponentSets are re-bound to reference the copied members one level down.
//
// Errors: propagated from CompleteDecontraction on a malformed hierarchy.
func (g *DecGraph) DeepCopy() (*DecGraph, error) {
	out := g.deepcopy(nil)
	current := out
	for current.Order() > 0 {
		dec, err := current.CompleteDecontraction()
		if err != nil {
			return nil, err
		}
		for _, n := range current.nodes {
			if len(n.ComponentSets) == 0 {
				continue
			}
			remapped := make(map[SetID]*ComponentSet, len(n.ComponentSets))
			for id, cs := range n.ComponentSets {
				remapped[id] = cs.Remap(dec.nodes)
			}
			n.ComponentSets = remapped
		}
		current = dec
	}
	return out, nil
}

// Equal reports structural equality: same node keys with recursively equal
// decontractions, and same edge keys whose contracted edge sets coincide by
// endpoint pairs.
func (g *DecGraph) Equal(other *DecGraph) bool {
	if other == nil {
		return false
	}
	if len(g.nodes) != len(other.nodes) || len(g.edges) != len(other.edges) {
		return false
	}
	for k, n := range g.nodes {
		on, ok := other.nodes[k]
		if !ok || !n.Dec.Equal(on.Dec) {
			return false
		}
	}
	for k, e := range g.edges {
		oe, ok := other.edges[k]
		if !ok || len(e.Dec) != len(oe.Dec) {
			return false
		}
		for sk := range e.Dec {
			if _, ok := oe.Dec[sk]; !ok {
				return false
			}
		}
	}
	return true
}
