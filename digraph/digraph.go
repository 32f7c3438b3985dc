// Package digraph - digraph.go
// The Digraph structure: storage, options, mutation and deterministic
// read access.
package digraph

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// Sentinel errors for digraph operations.
var (
	ErrEmptyVertexID  = errors.New("digraph: vertex ID is empty")
	ErrVertexNotFound = errors.New("digraph: vertex not found")
	ErrEdgeNotFound   = errors.New("digraph: edge not found")
	ErrLoopNotAllowed = errors.New("digraph: self-loop not allowed")
)

// Vertex is a node of the base graph.
type Vertex struct {
	ID    string
	Attrs decgraph.Attrs
}

// Edge is a directed edge of the base graph, identified by its endpoints.
type Edge struct {
	Tail  string
	Head  string
	Attrs decgraph.Attrs
}

// Option configures a Digraph at construction time.
type Option func(*Digraph)

// WithLoops permits self-loops.
func WithLoops() Option {
	return func(g *Digraph) { g.allowLoops = true }
}

// Digraph is a directed graph with attribute-carrying vertices and edges,
// at most one edge per ordered pair. Safe for concurrent use.
type Digraph struct {
	mu sync.RWMutex

	allowLoops bool

	vertices map[string]*Vertex
	edges    map[string]map[string]*Edge // tail -> head -> edge
	reverse  map[string]map[string]struct{}
}

// New creates an empty Digraph.
func New(opts ...Option) *Digraph {
	g := &Digraph{
		vertices: make(map[string]*Vertex),
		edges:    make(map[string]map[string]*Edge),
		reverse:  make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddVertex inserts a vertex with the given attributes. Adding an existing ID
// merges the attributes into the stored vertex.
//
// Errors: ErrEmptyVertexID.
func (g *Digraph) AddVertex(id string, attrs decgraph.Attrs) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if v, ok := g.vertices[id]; ok {
		v.Attrs.Merge(attrs)
		return nil
	}
	g.vertices[id] = &Vertex{ID: id, Attrs: attrs.Clone()}
	g.edges[id] = make(map[string]*Edge)
	g.reverse[id] = make(map[string]struct{})
	return nil
}

// RemoveVertex removes the vertex and all its incident edges.
//
// Errors: ErrVertexNotFound.
func (g *Digraph) RemoveVertex(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.vertices[id]; !ok {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}
	for head := range g.edges[id] {
		delete(g.reverse[head], id)
	}
	for tail := range g.reverse[id] {
		delete(g.edges[tail], id)
	}
	delete(g.vertices, id)
	delete(g.edges, id)
	delete(g.reverse, id)
	return nil
}

// AddEdge inserts the directed edge tail->head. Both endpoints must exist.
// Adding an existing edge merges the attributes into the stored edge.
//
// Errors: ErrVertexNotFound, ErrLoopNotAllowed.
func (g *Digraph) AddEdge(tail, head string, attrs decgraph.Attrs) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if tail == head && !g.allowLoops {
		return fmt.Errorf("%w: %q", ErrLoopNotAllowed, tail)
	}
	if _, ok := g.vertices[tail]; !ok {
		return fmt.Errorf("%w: tail %q", ErrVertexNotFound, tail)
	}
	if _, ok := g.vertices[head]; !ok {
		return fmt.Errorf("%w: head %q", ErrVertexNotFound, head)
	}
	if e, ok := g.edges[tail][head]; ok {
		e.Attrs.Merge(attrs)
		return nil
	}
	g.edges[tail][head] = &Edge{Tail: tail, Head: head, Attrs: attrs.Clone()}
	g.reverse[head][tail] = struct{}{}
	return nil
}

// RemoveEdge removes the directed edge tail->head.
//
// Errors: ErrEdgeNotFound.
func (g *Digraph) RemoveEdge(tail, head string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.edges[tail][head]; !ok {
		return fmt.Errorf("%w: (%s,%s)", ErrEdgeNotFound, tail, head)
	}
	delete(g.edges[tail], head)
	delete(g.reverse[head], tail)
	return nil
}

// HasVertex reports whether the vertex exists.
func (g *Digraph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]
	return ok
}

// HasEdge reports whether the edge tail->head exists.
func (g *Digraph) HasEdge(tail, head string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edges[tail][head]
	return ok
}

// Vertex returns a copy of the stored vertex.
func (g *Digraph) Vertex(id string) (Vertex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return Vertex{}, false
	}
	return Vertex{ID: v.ID, Attrs: v.Attrs.Clone()}, true
}

// Edge returns a copy of the stored edge.
func (g *Digraph) Edge(tail, head string) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[tail][head]
	if !ok {
		return Edge{}, false
	}
	return Edge{Tail: e.Tail, Head: e.Head, Attrs: e.Attrs.Clone()}, true
}

// VertexIDs returns all vertex IDs in sorted order.
func (g *Digraph) VertexIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Vertices returns copies of all vertices, sorted by ID.
func (g *Digraph) Vertices() []Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, Vertex{ID: v.ID, Attrs: v.Attrs.Clone()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns copies of all edges, sorted by tail then head.
func (g *Digraph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Edge
	for _, heads := range g.edges {
		for _, e := range heads {
			out = append(out, Edge{Tail: e.Tail, Head: e.Head, Attrs: e.Attrs.Clone()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tail != out[j].Tail {
			return out[i].Tail < out[j].Tail
		}
		return out[i].Head < out[j].Head
	})
	return out
}

// Successors returns the sorted IDs of the vertices reached by out-edges.
func (g *Digraph) Successors(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.edges[id]))
	for head := range g.edges[id] {
		out = append(out, head)
	}
	sort.Strings(out)
	return out
}

// Predecessors returns the sorted IDs of the vertices with an edge into id.
func (g *Digraph) Predecessors(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.reverse[id]))
	for tail := range g.reverse[id] {
		out = append(out, tail)
	}
	sort.Strings(out)
	return out
}

// Order returns the number of vertices.
func (g *Digraph) Order() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

// NumEdges returns the number of edges.
func (g *Digraph) NumEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, heads := range g.edges {
		n += len(heads)
	}
	return n
}

// Clone returns an independent copy of the graph.
func (g *Digraph) Clone() *Digraph {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := New()
	out.allowLoops = g.allowLoops
	for id, v := range g.vertices {
		out.vertices[id] = &Vertex{ID: id, Attrs: v.Attrs.Clone()}
		out.edges[id] = make(map[string]*Edge)
		out.reverse[id] = make(map[string]struct{})
	}
	for tail, heads := range g.edges {
		for head, e := range heads {
			out.edges[tail][head] = &Edge{Tail: tail, Head: head, Attrs: e.Attrs.Clone()}
			out.reverse[head][tail] = struct{}{}
		}
	}
	return out
}
