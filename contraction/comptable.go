// Package contraction - comptable.go
// CompTable: per-level bookkeeping of which lower nodes belong to which
// component sets, with maximal-set reduction and modification tracking.
package contraction

import (
	"sort"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// CompTable maps each lower supernode (by key) to the set of component sets
// it currently belongs to. Nodes whose row changed since the last clear are
// tracked in a modified set that drives incremental graph reconciliation.
// A maximal table keeps only sets that are not subsets of other tracked sets.
type CompTable struct {
	rows     map[string]map[decgraph.SetID]*decgraph.ComponentSet
	nodes    map[string]*decgraph.Supernode
	modified map[string]*decgraph.Supernode
	maximal  bool
}

// NewCompTable returns an empty table. A maximal table reduces insertions to
// maximal sets only.
func NewCompTable(maximal bool) *CompTable {
	return &CompTable{
		rows:     make(map[string]map[decgraph.SetID]*decgraph.ComponentSet),
		nodes:    make(map[string]*decgraph.Supernode),
		modified: make(map[string]*decgraph.Supernode),
		maximal:  maximal,
	}
}

// Maximal reports whether this table reduces to maximal sets.
func (t *CompTable) Maximal() bool { return t.maximal }

// AddSet inserts cs honoring the table's maximal mode.
func (t *CompTable) AddSet(cs *decgraph.ComponentSet) {
	if t.maximal {
		t.AddMaximalSet(cs, true)
	} else {
		t.AddNonMaximalSet(cs)
	}
}

// AddNonMaximalSet inserts cs into every member's row unconditionally and
// marks the members modified. Re-adding a set with the same ID is a no-op on
// row content.
func (t *CompTable) AddNonMaximalSet(cs *decgraph.ComponentSet) {
	for k, m := range cs.Members() {
		row, ok := t.rows[k]
		if !ok {
			row = make(map[decgraph.SetID]*decgraph.ComponentSet)
			t.rows[k] = row
		}
		row[cs.ID] = cs
		t.nodes[k] = m
		t.modified[k] = m
	}
}

// AddMaximalSet inserts cs only when no tracked set already covers its whole
// membership; on insertion, previously tracked subsets of cs are removed.
// checkSubsets can be disabled when the caller guarantees no tracked set is a
// subset of cs, trading safety for speed during bulk seeding.
func (t *CompTable) AddMaximalSet(cs *decgraph.ComponentSet, checkSubsets bool) {
	if t.coveredByTracked(cs) {
		return
	}
	if checkSubsets {
		for _, sub := range t.findSubsets(cs) {
			t.RemoveSet(sub)
		}
	}
	t.AddNonMaximalSet(cs)
}

// coveredByTracked reports whether some tracked set contains every member of
// cs, using the smallest member row as the intersection base.
func (t *CompTable) coveredByTracked(cs *decgraph.ComponentSet) bool {
	members := cs.MemberKeys()
	if len(members) == 0 {
		return false
	}
	smallest := members[0]
	for _, k := range members[1:] {
		if len(t.rows[k]) < len(t.rows[smallest]) {
			smallest = k
		}
	}
candidates:
	for id := range t.rows[smallest] {
		for _, k := range members {
			if _, ok := t.rows[k][id]; !ok {
				continue candidates
			}
		}
		return true
	}
	return false
}

// findSubsets returns the tracked sets that are subsets of cs, by counting
// per candidate how many of cs's members list it and keeping those whose
// count equals the candidate's own size.
func (t *CompTable) findSubsets(cs *decgraph.ComponentSet) []*decgraph.ComponentSet {
	count := make(map[decgraph.SetID]int)
	byID := make(map[decgraph.SetID]*decgraph.ComponentSet)
	for k := range cs.Members() {
		for id, tracked := range t.rows[k] {
			count[id]++
			byID[id] = tracked
		}
	}
	var out []*decgraph.ComponentSet
	for id, c := range count {
		if c == byID[id].Len() {
			out = append(out, byID[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RemoveSet discards cs from every member's row and marks the members
// modified. Members without a row are still marked.
func (t *CompTable) RemoveSet(cs *decgraph.ComponentSet) {
	for k, m := range cs.Members() {
		if row, ok := t.rows[k]; ok {
			delete(row, cs.ID)
		}
		t.nodes[k] = m
		t.modified[k] = m
	}
}

// AddSingletons inserts a fresh singleton set, built by factory, for every
// modified node whose row is currently empty. An empty row is not a legal
// resting state outside an in-progress update; edge-removal handlers that may
// strand nodes call this as their final step.
func (t *CompTable) AddSingletons(factory func(*decgraph.Supernode) *decgraph.ComponentSet) {
	for _, n := range t.ModifiedNodes() {
		if len(t.rows[n.Key]) == 0 {
			t.AddNonMaximalSet(factory(n))
		}
	}
}

// Row returns a frozen snapshot of the node's component sets, keyed by set
// ID. Later table mutations do not affect the returned map.
func (t *CompTable) Row(key string) map[decgraph.SetID]*decgraph.ComponentSet {
	row := t.rows[key]
	out := make(map[decgraph.SetID]*decgraph.ComponentSet, len(row))
	for id, cs := range row {
		out[id] = cs
	}
	return out
}

// Has reports whether the node has a row in the table.
func (t *CompTable) Has(key string) bool {
	_, ok := t.rows[key]
	return ok
}

// DeleteRow drops the node's row and its modification mark entirely.
func (t *CompTable) DeleteRow(key string) {
	delete(t.rows, key)
	delete(t.nodes, key)
	delete(t.modified, key)
}

// AllSets returns the distinct component sets tracked in the table, keyed by
// set ID.
func (t *CompTable) AllSets() map[decgraph.SetID]*decgraph.ComponentSet {
	out := make(map[decgraph.SetID]*decgraph.ComponentSet)
	for _, row := range t.rows {
		for id, cs := range row {
			out[id] = cs
		}
	}
	return out
}

// ModifiedNodes returns the nodes whose rows changed since the last clear,
// sorted by key.
func (t *CompTable) ModifiedNodes() []*decgraph.Supernode {
	out := make([]*decgraph.Supernode, 0, len(t.modified))
	for _, n := range t.modified {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ClearModified resets the modification tracking.
func (t *CompTable) ClearModified() {
	t.modified = make(map[string]*decgraph.Supernode)
}

// Unmark removes a single node from the modification tracking.
func (t *CompTable) Unmark(key string) {
	delete(t.modified, key)
}

// Len returns the number of rows.
func (t *CompTable) Len() int { return len(t.rows) }
