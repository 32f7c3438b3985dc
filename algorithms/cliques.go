// Package algorithms - cliques.go
package algorithms

import (
	"gonum.org/v1/gonum/graph/topo"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// MaximalCliques enumerates all maximal cliques of g as sets of supernode
// keys. Cliques are computed on the undirected view of g: with reciprocal
// set, two nodes are adjacent only when edges exist in both directions,
// otherwise one direction suffices. An isolated node forms a singleton
// clique.
//
// Backed by the Bron-Kerbosch implementation in gonum/graph/topo.
//
// Complexity: O(3^(V/3)) worst case.
func MaximalCliques(g *decgraph.DecGraph, reciprocal bool) [][]string {
	ix := newKeyIndex(g)
	cliques := topo.BronKerbosch(toUndirected(g, ix, reciprocal))
	out := make([][]string, 0, len(cliques))
	for _, clique := range cliques {
		keys := make([]string, 0, len(clique))
		for _, n := range clique {
			keys = append(keys, ix.key(n.ID()))
		}
		out = append(out, keys)
	}
	return out
}
