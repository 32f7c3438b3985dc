// Package multilevel - multilevel.go
// MultilevelGraph: the hierarchy container, its lazy build/repair loop and
// the base-graph mutation surface.
package multilevel

import (
	"fmt"

	"github.com/multilevelgraphs/mlgraph/contraction"
	"github.com/multilevelgraphs/mlgraph/decgraph"
	"github.com/multilevelgraphs/mlgraph/digraph"
)

// MultilevelGraph is a hierarchy of decontractible graphs: the natural
// transformation of a base directed graph at level 0, topped by one
// decontractible graph per contraction scheme.
//
// Schemes passed to New or AppendContractionScheme are cloned, so one
// configured scheme value can seed several hierarchies.
type MultilevelGraph struct {
	base    *decgraph.DecGraph
	baseQ   *contraction.UpdateQuadruple
	schemes []contraction.Scheme
}

// New builds a multilevel graph over the given base graph. The scheme order
// fixes the hierarchy: schemes[0] produces level 1, and so on.
func New(g *digraph.Digraph, schemes ...contraction.Scheme) *MultilevelGraph {
	m := &MultilevelGraph{
		base:  NaturalTransformation(g),
		baseQ: contraction.NewUpdateQuadruple(),
	}
	for _, s := range schemes {
		m.AppendContractionScheme(s)
	}
	return m
}

// NaturalTransformation lifts a directed graph into an isomorphic
// decontractible graph of height zero: every vertex becomes a supernode with
// an empty decontraction and every edge a superedge contracting nothing,
// with keys and attributes carried over.
func NaturalTransformation(g *digraph.Digraph) *decgraph.DecGraph {
	out := decgraph.NewDecGraph()
	for _, v := range g.Vertices() {
		out.AddNode(decgraph.NewSupernode(v.ID, 0, v.Attrs))
	}
	for _, e := range g.Edges() {
		tail, _ := out.Node(e.Tail)
		head, _ := out.Node(e.Head)
		se, err := decgraph.NewSuperedge(tail, head, 0, e.Attrs)
		if err != nil {
			continue
		}
		_ = out.AddEdge(se)
	}
	return out
}

// Height returns the number of contraction schemes in the hierarchy.
func (m *MultilevelGraph) Height() int { return len(m.schemes) }

// SchemeNames returns the names of the contraction schemes from bottom to
// top.
func (m *MultilevelGraph) SchemeNames() []string {
	out := make([]string, len(m.schemes))
	for i, s := range m.schemes {
		out[i] = s.Name()
	}
	return out
}

// AppendContractionScheme stacks a new scheme on top of the hierarchy. The
// new level is built lazily on first request.
func (m *MultilevelGraph) AppendContractionScheme(s contraction.Scheme) {
	c := s.Clone()
	c.SetLevel(len(m.schemes) + 1)
	m.schemes = append(m.schemes, c)
}

// BuildContractionSchemes builds or repairs the hierarchy from the highest
// still-valid level up to upperLevel. Levels above upperLevel are left
// untouched. An upperLevel outside [0, Height] means the whole hierarchy.
//
// A scheme that has never contracted is contracted from the graph below;
// a stale one is repaired from the delta emitted by the level below, which
// is consumed and cleared.
func (m *MultilevelGraph) BuildContractionSchemes(upperLevel int) error {
	if upperLevel < 0 || upperLevel > m.Height() {
		upperLevel = m.Height()
	}
	last, lowerLevel := m.highestValidGraph()
	if lowerLevel >= upperLevel {
		return nil
	}

	for i := lowerLevel; i < upperLevel; i++ {
		q := m.baseQ
		if i > 0 {
			q = m.schemes[i-1].Quadruple()
		}

		var err error
		if m.schemes[i].Graph() == nil {
			last, err = m.schemes[i].Contract(last)
		} else {
			last, err = m.schemes[i].Update(q)
		}
		if err != nil {
			return fmt.Errorf("multilevel: building level %d: %w", i+1, err)
		}
		q.Clear()
	}
	return nil
}

// highestValidGraph returns the highest-level valid graph in the hierarchy
// and the level that produced it, falling back to the base graph at level 0.
func (m *MultilevelGraph) highestValidGraph() (*decgraph.DecGraph, int) {
	for i := len(m.schemes) - 1; i >= 0; i-- {
		if m.schemes[i].Valid() {
			return m.schemes[i].Graph(), i + 1
		}
	}
	return m.base, 0
}

// GraphAt returns a deep copy of the decontractible graph at the given
// level, building the hierarchy up to it first. The copy is navigable
// upward through supernode back-references up to the highest valid level.
// Levels outside [0, Height] yield nil.
func (m *MultilevelGraph) GraphAt(level int) (*decgraph.DecGraph, error) {
	if level < 0 || level > m.Height() {
		return nil, nil
	}
	if err := m.BuildContractionSchemes(level); err != nil {
		return nil, err
	}

	top, current := m.highestValidGraph()
	out, err := top.DeepCopy()
	if err != nil {
		return nil, err
	}
	for current != level {
		current--
		out, err = out.CompleteDecontraction()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ViewAt returns the decontractible graph at the given level by reference,
// building the hierarchy up to it first. The returned graph must not be
// structurally modified. Levels outside [0, Height] yield nil.
func (m *MultilevelGraph) ViewAt(level int) (*decgraph.DecGraph, error) {
	if level < 0 || level > m.Height() {
		return nil, nil
	}
	if level == 0 {
		return m.base, nil
	}
	if err := m.BuildContractionSchemes(level); err != nil {
		return nil, err
	}
	return m.schemes[level-1].Graph(), nil
}

// ComponentSetsAt returns copies of the component sets recognized by the
// scheme at the given level, building that level first. Level 0 has no
// component sets; it and out-of-range levels yield nil.
func (m *MultilevelGraph) ComponentSetsAt(level int) ([]*decgraph.ComponentSet, error) {
	if level < 1 || level > m.Height() {
		return nil, nil
	}
	if err := m.BuildContractionSchemes(level); err != nil {
		return nil, err
	}
	sets := m.schemes[level-1].ComponentSets()
	out := make([]*decgraph.ComponentSet, 0, len(sets))
	for _, cs := range sets {
		out = append(out, cs.Copy())
	}
	return out, nil
}

// AddNode adds a node to the base graph. Adding an existing key is a no-op.
// Upper levels are repaired lazily on the next level request.
func (m *MultilevelGraph) AddNode(key string, attrs decgraph.Attrs) {
	if m.base.HasNode(key) {
		return
	}
	n := decgraph.NewSupernode(key, 0, attrs)
	m.base.AddNode(n)
	m.baseQ.AddVPlus(n)
	m.invalidateAllSchemes()
}

// RemoveNode removes a node and its incident edges from the base graph.
// A missing key is a no-op.
func (m *MultilevelGraph) RemoveNode(key string) {
	n, ok := m.base.Node(key)
	if !ok {
		return
	}
	for _, e := range m.base.InEdges(key) {
		m.RemoveEdge(e.Tail.Key, e.Head.Key)
	}
	for _, e := range m.base.OutEdges(key) {
		m.RemoveEdge(e.Tail.Key, e.Head.Key)
	}
	_ = m.base.RemoveNode(n)
	m.baseQ.AddVMinus(n)
	m.invalidateAllSchemes()
}

// AddEdge adds a directed edge to the base graph, creating missing
// endpoints as attribute-less nodes. Adding an existing edge is a no-op.
func (m *MultilevelGraph) AddEdge(tailKey, headKey string, attrs decgraph.Attrs) {
	m.AddNode(tailKey, nil)
	m.AddNode(headKey, nil)
	if m.base.HasEdge(tailKey, headKey) {
		return
	}
	tail, _ := m.base.Node(tailKey)
	head, _ := m.base.Node(headKey)
	e, err := decgraph.NewSuperedge(tail, head, 0, attrs)
	if err != nil {
		return
	}
	if m.base.AddEdge(e) != nil {
		return
	}
	m.baseQ.AddEPlus(e)
	m.invalidateAllSchemes()
}

// RemoveEdge removes a directed edge from the base graph. A missing edge is
// a no-op.
func (m *MultilevelGraph) RemoveEdge(tailKey, headKey string) {
	e, ok := m.base.Edge(tailKey, headKey)
	if !ok {
		return
	}
	_ = m.base.RemoveEdge(e)
	m.baseQ.AddEMinus(e)
	m.invalidateAllSchemes()
}

// MergeGraph merges a directed graph into the base graph. Existing nodes
// and edges are left as they are.
func (m *MultilevelGraph) MergeGraph(g *digraph.Digraph) {
	for _, v := range g.Vertices() {
		m.AddNode(v.ID, v.Attrs)
	}
	for _, e := range g.Edges() {
		m.AddEdge(e.Tail, e.Head, e.Attrs)
	}
}

func (m *MultilevelGraph) invalidateAllSchemes() {
	for _, s := range m.schemes {
		s.Invalidate()
	}
}
