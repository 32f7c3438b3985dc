// Package algorithms - convert.go
// Conversion from DecGraph to gonum simple graphs through a stable
// key-to-id index.
package algorithms

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// keyIndex maps supernode keys to dense gonum node ids and back. Ids are
// assigned over the sorted key order so conversions are deterministic.
type keyIndex struct {
	keys []string
	ids  map[string]int64
}

func newKeyIndex(g *decgraph.DecGraph) *keyIndex {
	keys := g.NodeKeys()
	ids := make(map[string]int64, len(keys))
	for i, k := range keys {
		ids[k] = int64(i)
	}
	return &keyIndex{keys: keys, ids: ids}
}

func (ix *keyIndex) key(id int64) string { return ix.keys[id] }

// toDirected builds a gonum directed graph over the index. Self-loops are
// skipped; simple graphs reject them.
func toDirected(g *decgraph.DecGraph, ix *keyIndex) *simple.DirectedGraph {
	out := simple.NewDirectedGraph()
	for _, id := range ix.ids {
		out.AddNode(simple.Node(id))
	}
	for ek := range g.Edges() {
		if ek.Tail == ek.Head {
			continue
		}
		out.SetEdge(out.NewEdge(simple.Node(ix.ids[ek.Tail]), simple.Node(ix.ids[ek.Head])))
	}
	return out
}

// toUndirected builds the undirected view of g over the index. With
// reciprocal set, an undirected edge requires both directed edges; otherwise
// one direction suffices. Self-loops are skipped.
func toUndirected(g *decgraph.DecGraph, ix *keyIndex, reciprocal bool) *simple.UndirectedGraph {
	out := simple.NewUndirectedGraph()
	for _, id := range ix.ids {
		out.AddNode(simple.Node(id))
	}
	for ek := range g.Edges() {
		if ek.Tail == ek.Head {
			continue
		}
		if reciprocal && !g.HasEdge(ek.Head, ek.Tail) {
			continue
		}
		out.SetEdge(out.NewEdge(simple.Node(ix.ids[ek.Tail]), simple.Node(ix.ids[ek.Head])))
	}
	return out
}
