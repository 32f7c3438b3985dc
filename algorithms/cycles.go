// Package algorithms - cycles.go
package algorithms

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// SimpleCycles enumerates all elementary cycles of g as lists of supernode
// keys without repetition; two cycles are distinct when they are not cyclic
// permutations of each other. A self-loop yields a one-node cycle.
//
// Backed by the Johnson implementation in gonum/graph/topo; self-loops are
// emitted separately since simple graphs cannot represent them.
//
// Complexity: O((V + E) * (C + 1)) for C elementary cycles.
func SimpleCycles(g *decgraph.DecGraph) [][]string {
	ix := newKeyIndex(g)
	cycles := topo.DirectedCyclesIn(toDirected(g, ix))
	out := make([][]string, 0, len(cycles))
	for _, cycle := range cycles {
		// gonum repeats the starting node at the end of each cycle.
		if len(cycle) > 1 && cycle[0].ID() == cycle[len(cycle)-1].ID() {
			cycle = cycle[:len(cycle)-1]
		}
		keys := make([]string, 0, len(cycle))
		for _, n := range cycle {
			keys = append(keys, ix.key(n.ID()))
		}
		out = append(out, keys)
	}
	for _, k := range g.NodeKeys() {
		if g.HasEdge(k, k) {
			out = append(out, []string{k})
		}
	}
	return out
}

// CycleSearch enumerates all simple cycles of g that start with the given
// path prefix, as lists of supernode keys without repetition. The prefix
// must be a non-empty walk in g (a single node is allowed); cycles close
// back on its first node. A self-loop on a one-node prefix is reported as a
// one-node cycle.
//
// Used by the incremental cycle scheme updates to find only the cycles
// affected by one edge, instead of re-enumerating the whole graph.
func CycleSearch(g *decgraph.DecGraph, path []string) [][]string {
	if len(path) == 0 {
		return nil
	}
	for _, k := range path {
		if !g.HasNode(k) {
			return nil
		}
	}
	start := path[0]
	onPath := make(map[string]struct{}, len(path))
	for _, k := range path {
		onPath[k] = struct{}{}
	}

	var out [][]string
	current := append([]string(nil), path...)

	var extend func(last string)
	extend = func(last string) {
		for _, next := range sortedNeighbors(g, last) {
			if next == start {
				if len(current) > 1 || g.HasEdge(start, start) {
					out = append(out, append([]string(nil), current...))
				}
				continue
			}
			if _, seen := onPath[next]; seen {
				continue
			}
			onPath[next] = struct{}{}
			current = append(current, next)
			extend(next)
			current = current[:len(current)-1]
			delete(onPath, next)
		}
	}
	extend(path[len(path)-1])
	return out
}

func sortedNeighbors(g *decgraph.DecGraph, key string) []string {
	star := g.ForwardStar(key)
	out := make([]string, 0, len(star))
	for k := range star {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
