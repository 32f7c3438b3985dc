// Package algorithms - scc.go
package algorithms

import (
	"gonum.org/v1/gonum/graph/topo"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// StronglyConnected enumerates the strongly connected components of g as
// sets of supernode keys. Every node belongs to exactly one component;
// self-loops do not affect membership.
//
// Backed by the Tarjan implementation in gonum/graph/topo.
//
// Complexity: O(V + E).
func StronglyConnected(g *decgraph.DecGraph) [][]string {
	ix := newKeyIndex(g)
	sccs := topo.TarjanSCC(toDirected(g, ix))
	out := make([][]string, 0, len(sccs))
	for _, scc := range sccs {
		keys := make([]string, 0, len(scc))
		for _, n := range scc {
			keys = append(keys, ix.key(n.ID()))
		}
		out = append(out, keys)
	}
	return out
}
