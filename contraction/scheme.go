// Package contraction - scheme.go
// The abstract scheme engine: batch contraction, incremental update and the
// membership reconciliation shared by every concrete scheme.
package contraction

import (
	"fmt"
	"sort"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// Scheme is one level-producing contraction rule. A scheme instance is bound
// to a single multilevel graph and level; Clone yields a fresh unbound
// instance with the same configuration.
type Scheme interface {
	// Name returns the scheme's identifying name, embedded in minted
	// supernode keys.
	Name() string

	// Clone returns an unbound copy carrying only configuration, no state.
	Clone() Scheme

	// Level returns the level this scheme produces.
	Level() int

	// SetLevel binds the scheme to a level. Must happen before Contract.
	SetLevel(level int)

	// Valid reports whether the produced graph reflects the level below.
	Valid() bool

	// Invalidate marks the produced graph stale.
	Invalidate()

	// Graph returns the produced decontractible graph, nil before the first
	// Contract.
	Graph() *decgraph.DecGraph

	// Quadruple returns the scheme's own emitted delta, consumed and cleared
	// by the level above.
	Quadruple() *UpdateQuadruple

	// Table returns the scheme's component-set table, nil before the first
	// Contract.
	Table() *CompTable

	// ComponentSets returns the distinct component sets currently tracked,
	// sorted by ID.
	ComponentSets() []*decgraph.ComponentSet

	// Contract builds the produced graph from the given lower graph.
	Contract(lower *decgraph.DecGraph) (*decgraph.DecGraph, error)

	// Update repairs the produced graph from the delta emitted by the level
	// below. On error the graph is indeterminate; Invalidate and re-Contract
	// is the only recovery.
	Update(q *UpdateQuadruple) (*decgraph.DecGraph, error)
}

// hooks is the scheme-specific half of the engine: the grouping function and
// the four update hooks, dispatched by the shared base.
type hooks interface {
	Name() string
	contractionFunction(lower *decgraph.DecGraph) (*CompTable, error)
	updateAddedNode(n *decgraph.Supernode) error
	updateRemovedNode(n *decgraph.Supernode) error
	updateAddedEdge(e *decgraph.Superedge) error
	updateRemovedEdge(e *decgraph.Superedge) error
}

// pruneSet stages lower nodes for removal from a supernode's decontraction.
// Child removal is deferred until after edge relocation so that containment
// checks still see the old placement.
type pruneSet struct {
	supernode *decgraph.Supernode
	children  map[string]*decgraph.Supernode
}

// base carries the state and engine shared by all schemes. Concrete schemes
// embed it (directly or through edgeBased) and register themselves as the
// hooks implementation via init.
type base struct {
	impl  hooks
	level int
	valid bool

	graph          *decgraph.DecGraph
	table          *CompTable
	supernodeTable map[string]*decgraph.Supernode
	quadruple      *UpdateQuadruple

	// runningDec is the maintained complete decontraction for schemes that
	// search the raw level during updates (trackDec set).
	trackDec   bool
	runningDec *decgraph.DecGraph

	deletedSubnodes map[string]*pruneSet

	nextNodeID int64
	nextSetID  int64

	nodeAttrs SupernodeAttrFunc
	edgeAttrs SuperedgeAttrFunc
	setAttrs  ComponentSetAttrFunc
}

func (s *base) init(impl hooks, options []Option) {
	var o opts
	for _, opt := range options {
		opt(&o)
	}
	s.impl = impl
	s.quadruple = NewUpdateQuadruple()
	s.deletedSubnodes = make(map[string]*pruneSet)
	s.nodeAttrs = o.nodeAttrs
	s.edgeAttrs = o.edgeAttrs
	s.setAttrs = o.setAttrs
}

func (s *base) Name() string                { return s.impl.Name() }
func (s *base) Level() int                  { return s.level }
func (s *base) SetLevel(level int)          { s.level = level }
func (s *base) Valid() bool                 { return s.valid }
func (s *base) Invalidate()                 { s.valid = false }
func (s *base) Graph() *decgraph.DecGraph   { return s.graph }
func (s *base) Quadruple() *UpdateQuadruple { return s.quadruple }
func (s *base) Table() *CompTable           { return s.table }

// ComponentSets returns the distinct tracked sets sorted by ID.
func (s *base) ComponentSets() []*decgraph.ComponentSet {
	if s.table == nil {
		return nil
	}
	all := s.table.AllSets()
	out := make([]*decgraph.ComponentSet, 0, len(all))
	for _, cs := range all {
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// nextSupernodeKey mints a level- and scheme-qualified supernode key.
func (s *base) nextSupernodeKey() string {
	s.nextNodeID++
	return fmt.Sprintf("%d_%s_%d", s.level, s.impl.Name(), s.nextNodeID)
}

func (s *base) nextComponentSetID() decgraph.SetID {
	s.nextSetID++
	return decgraph.SetID(s.nextSetID)
}

// newComponentSet builds a component set with a fresh ID and the configured
// attribute callback applied.
func (s *base) newComponentSet(members ...*decgraph.Supernode) *decgraph.ComponentSet {
	var attrs decgraph.Attrs
	if s.setAttrs != nil {
		ms := make(map[string]*decgraph.Supernode, len(members))
		for _, m := range members {
			ms[m.Key] = m
		}
		attrs = s.setAttrs(ms)
	}
	return decgraph.NewComponentSet(s.nextComponentSetID(), attrs, members...)
}

// singletonFactory adapts newComponentSet for CompTable.AddSingletons.
func (s *base) singletonFactory() func(*decgraph.Supernode) *decgraph.ComponentSet {
	return func(n *decgraph.Supernode) *decgraph.ComponentSet {
		return s.newComponentSet(n)
	}
}

// Contract builds the produced graph: the grouping function fills the table,
// makeDecGraph realizes the supernode bijection and edge aggregation, then
// attribute callbacks run and the scheme becomes valid.
//
// The produced graph's complete decontraction always equals the input graph.
func (s *base) Contract(lower *decgraph.DecGraph) (*decgraph.DecGraph, error) {
	table, err := s.impl.contractionFunction(lower)
	if err != nil {
		return nil, err
	}
	s.table = table
	if err := s.makeDecGraph(lower); err != nil {
		return nil, err
	}
	s.applyAttrCallbacks()
	s.runningDec = nil
	s.valid = true
	return s.graph, nil
}

// makeDecGraph places every lower node into the supernode identified by its
// frozen component-set combination, minting supernodes on first sight, and
// aggregates every lower edge into a superedge or folds it into a supernode.
func (s *base) makeDecGraph(lower *decgraph.DecGraph) error {
	s.graph = decgraph.NewDecGraph()
	s.supernodeTable = make(map[string]*decgraph.Supernode)

	for _, key := range lower.NodeKeys() {
		n, _ := lower.Node(key)
		row := s.table.Row(key)
		if len(row) == 0 {
			return fmt.Errorf("%w: node %q", ErrEmptyRow, key)
		}
		combo := decgraph.CombinationKey(row)
		sn, ok := s.supernodeTable[combo]
		if !ok {
			sn = decgraph.NewSupernode(s.nextSupernodeKey(), s.level, nil)
			sn.ComponentSets = row
			s.supernodeTable[combo] = sn
			s.graph.AddNode(sn)
		}
		if err := sn.AddNode(n); err != nil {
			return err
		}
		n.Supernode = sn
	}

	for _, e := range lower.Edges() {
		tail := e.Tail.Supernode
		head := e.Head.Supernode
		if tail == head {
			if err := tail.AddEdge(e); err != nil {
				return err
			}
			continue
		}
		if err := s.addEdgeInSuperedge(tail.Key, head.Key, e, false); err != nil {
			return err
		}
	}
	return nil
}

// Update repairs the produced graph from the lower level's delta: removed
// edges, removed nodes, added nodes, then added edges pass through the
// scheme hooks, and updateGraph reconciles membership afterwards. The order
// is load-bearing: removals must be seen before the graph shrinks, and added
// nodes must exist before added edges reference them.
func (s *base) Update(q *UpdateQuadruple) (*decgraph.DecGraph, error) {
	if s.graph == nil {
		return nil, ErrNotContracted
	}
	for _, e := range q.EMinus() {
		if err := s.impl.updateRemovedEdge(e); err != nil {
			return nil, err
		}
	}
	for _, n := range q.VMinus() {
		if err := s.impl.updateRemovedNode(n); err != nil {
			return nil, err
		}
	}
	for _, n := range q.VPlus() {
		if err := s.impl.updateAddedNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range q.EPlus() {
		if err := s.impl.updateAddedEdge(e); err != nil {
			return nil, err
		}
	}
	if err := s.updateGraph(); err != nil {
		return nil, err
	}
	s.applyAttrCallbacks()
	s.valid = true
	return s.graph, nil
}

// updateGraph reconciles supernode membership with the changed CompTable.
//
// Phase 1 relocates every modified lower node into the supernode identified
// by its recomputed combination, minting supernodes as needed (emitting
// v_plus) and staging old children for deferred removal. Phase 2 relocates
// every raw edge incident to a modified node across the four endpoint-move
// cases, emitting e_plus/e_minus as superedges appear and empty out. Phase 3
// applies the deferred child removals, and phase 4 prunes supernodes left
// with no children (emitting v_minus). Deferring the child removals keeps
// containment checks valid while edges are still in flight.
func (s *base) updateGraph() error {
	modified := s.table.ModifiedNodes()
	if len(modified) == 0 && len(s.deletedSubnodes) == 0 {
		return nil
	}

	// moved records each relocated node's previous supernode for the edge
	// phase; unmodified endpoints resolve through their live back-reference.
	moved := make(map[string]*decgraph.Supernode)

	for _, n := range modified {
		row := s.table.Row(n.Key)
		if len(row) == 0 {
			return fmt.Errorf("%w: node %q", ErrEmptyRow, n.Key)
		}
		combo := decgraph.CombinationKey(row)
		target, ok := s.supernodeTable[combo]
		if !ok {
			target = decgraph.NewSupernode(s.nextSupernodeKey(), s.level, nil)
			target.ComponentSets = row
			s.supernodeTable[combo] = target
			s.graph.AddNode(target)
			s.quadruple.AddVPlus(target)
		}
		old := n.Supernode
		if old == target {
			continue
		}
		moved[n.Key] = old
		if err := target.AddNode(n); err != nil {
			return err
		}
		n.Supernode = target
		if old != nil {
			s.stageRemoval(old, n)
		}
	}

	if err := s.relocateEdges(modified, moved); err != nil {
		return err
	}

	// Deferred child removals, then pruning of emptied supernodes.
	staged := make([]*pruneSet, 0, len(s.deletedSubnodes))
	for _, ps := range s.deletedSubnodes {
		staged = append(staged, ps)
	}
	sort.Slice(staged, func(i, j int) bool { return staged[i].supernode.Key < staged[j].supernode.Key })
	for _, ps := range staged {
		for _, k := range sortedKeys(ps.children) {
			if child, ok := ps.supernode.Dec.Node(k); ok {
				if err := ps.supernode.RemoveNode(child); err != nil {
					return err
				}
			}
		}
	}
	for _, ps := range staged {
		sn := ps.supernode
		if sn.Size() > 0 || !s.graph.HasNode(sn.Key) {
			continue
		}
		if err := s.graph.RemoveNode(sn); err != nil {
			return err
		}
		delete(s.supernodeTable, decgraph.CombinationKey(sn.ComponentSets))
		s.quadruple.AddVMinus(sn)
	}

	s.table.ClearModified()
	s.deletedSubnodes = make(map[string]*pruneSet)
	return nil
}

// relocateEdges fixes the placement of every raw edge incident to a modified
// node: removed from its old aggregation when an endpoint moved, and
// idempotently ensured at its new one (folded when both endpoints share a
// supernode, aggregated otherwise).
func (s *base) relocateEdges(modified []*decgraph.Supernode, moved map[string]*decgraph.Supernode) error {
	raw, err := s.graph.CompleteDecontraction()
	if err != nil {
		return err
	}
	oldOf := func(n *decgraph.Supernode) *decgraph.Supernode {
		if old, ok := moved[n.Key]; ok {
			return old
		}
		return n.Supernode
	}

	seen := make(map[decgraph.EdgeKey]struct{})
	for _, n := range modified {
		incident := append(raw.OutEdges(n.Key), raw.InEdges(n.Key)...)
		sort.Slice(incident, func(i, j int) bool {
			a, b := incident[i].Key(), incident[j].Key()
			if a.Tail != b.Tail {
				return a.Tail < b.Tail
			}
			return a.Head < b.Head
		})
		for _, e := range incident {
			if _, ok := seen[e.Key()]; ok {
				continue
			}
			seen[e.Key()] = struct{}{}

			oldTail, oldHead := oldOf(e.Tail), oldOf(e.Head)
			newTail, newHead := e.Tail.Supernode, e.Head.Supernode

			if oldTail != newTail || oldHead != newHead {
				if oldTail != nil && oldTail == oldHead {
					if oldTail.Dec.HasEdge(e.Tail.Key, e.Head.Key) {
						_ = oldTail.RemoveEdge(e)
					}
				} else if oldTail != nil && oldHead != nil {
					s.removeEdgeInSuperedge(oldTail.Key, oldHead.Key, e)
				}
			}
			if newTail == newHead {
				if err := newTail.AddEdge(e); err != nil {
					return err
				}
			} else if err := s.addEdgeInSuperedge(newTail.Key, newHead.Key, e, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// stageRemoval defers removing child from old's decontraction until the end
// of the current reconciliation.
func (s *base) stageRemoval(old, child *decgraph.Supernode) {
	ps, ok := s.deletedSubnodes[old.Key]
	if !ok {
		ps = &pruneSet{supernode: old, children: make(map[string]*decgraph.Supernode)}
		s.deletedSubnodes[old.Key] = ps
	}
	ps.children[child.Key] = child
}

// addEdgeInSuperedge puts the raw edge into the superedge between the two
// supernode keys, creating the superedge on first use. Creation is emitted
// as e_plus only when emit is set (during updates, not batch contraction).
func (s *base) addEdgeInSuperedge(tailKey, headKey string, e *decgraph.Superedge, emit bool) error {
	se, ok := s.graph.Edge(tailKey, headKey)
	if !ok {
		tail, okT := s.graph.Node(tailKey)
		head, okH := s.graph.Node(headKey)
		if !okT || !okH {
			return fmt.Errorf("%w: superedge (%s,%s)", decgraph.ErrEndpointNotFound, tailKey, headKey)
		}
		var err error
		se, err = decgraph.NewSuperedge(tail, head, s.level, nil)
		if err != nil {
			return err
		}
		if err := s.graph.AddEdge(se); err != nil {
			return err
		}
		if emit {
			s.quadruple.AddEPlus(se)
		}
	}
	return se.AddEdge(e)
}

// removeEdgeInSuperedge drops the raw edge from the superedge between the
// two supernode keys, deleting the superedge and emitting e_minus when its
// decontraction empties out. Tolerant of already-relocated edges.
func (s *base) removeEdgeInSuperedge(tailKey, headKey string, e *decgraph.Superedge) {
	se, ok := s.graph.Edge(tailKey, headKey)
	if !ok {
		return
	}
	if err := se.RemoveEdge(e); err != nil {
		return
	}
	if se.Size() == 0 {
		_ = s.graph.RemoveEdge(se)
		s.quadruple.AddEMinus(se)
	}
}

// decontraction returns the maintained raw-level view for schemes that track
// it, computing it lazily on first use. Schemes without tracking get a fresh
// computation every call.
func (s *base) decontraction() (*decgraph.DecGraph, error) {
	if s.runningDec != nil {
		return s.runningDec, nil
	}
	d, err := s.graph.CompleteDecontraction()
	if err != nil {
		return nil, err
	}
	if s.trackDec {
		s.runningDec = d
	}
	return d, nil
}

// decAddNode mirrors a raw node addition into the maintained decontraction.
func (s *base) decAddNode(n *decgraph.Supernode) {
	if s.runningDec != nil {
		s.runningDec.AddNode(n)
	}
}

// decRemoveNode mirrors a raw node removal into the maintained decontraction.
func (s *base) decRemoveNode(n *decgraph.Supernode) {
	if s.runningDec != nil && s.runningDec.HasNode(n.Key) {
		_ = s.runningDec.RemoveNode(n)
	}
}

// decAddEdge mirrors a raw edge addition into the maintained decontraction.
func (s *base) decAddEdge(e *decgraph.Superedge) {
	if s.runningDec != nil {
		_ = s.runningDec.AddEdge(e)
	}
}

// decRemoveEdge mirrors a raw edge removal into the maintained decontraction.
func (s *base) decRemoveEdge(e *decgraph.Superedge) {
	if s.runningDec != nil && s.runningDec.HasEdge(e.Tail.Key, e.Head.Key) {
		_ = s.runningDec.RemoveEdge(e)
	}
}

// applyAttrCallbacks runs the configured attribute callbacks over all
// produced supernodes, superedges and distinct component sets.
func (s *base) applyAttrCallbacks() {
	if s.nodeAttrs != nil {
		for _, n := range s.graph.Nodes() {
			n.Attrs.Merge(s.nodeAttrs(n))
		}
	}
	if s.edgeAttrs != nil {
		for _, e := range s.graph.Edges() {
			e.Attrs.Merge(s.edgeAttrs(e))
		}
	}
	if s.setAttrs != nil {
		for _, cs := range s.ComponentSets() {
			cs.Attrs.Merge(s.setAttrs(cs.Members()))
		}
	}
}

func sortedKeys(m map[string]*decgraph.Supernode) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
