// Package algorithms - reach.go
package algorithms

import "github.com/multilevelgraphs/mlgraph/decgraph"

// Reachable returns the set of supernode keys reachable from the given key,
// including the key itself. Returns an empty set when the key is not in g.
//
// Complexity: O(V + E).
func Reachable(g *decgraph.DecGraph, from string) map[string]struct{} {
	return scan(g, from, g.ForwardStar)
}

// Reaching returns the set of supernode keys from which the given key is
// reachable, including the key itself. Returns an empty set when the key is
// not in g.
//
// Complexity: O(V + E).
func Reaching(g *decgraph.DecGraph, to string) map[string]struct{} {
	return scan(g, to, g.ReverseStar)
}

func scan(g *decgraph.DecGraph, start string, star func(string) map[string]*decgraph.Supernode) map[string]struct{} {
	visited := make(map[string]struct{})
	if !g.HasNode(start) {
		return visited
	}
	visited[start] = struct{}{}
	queue := []string{start}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		for next := range star(k) {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return visited
}
