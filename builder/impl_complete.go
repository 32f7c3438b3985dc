// Package builder - impl_complete.go
package builder

import (
	"fmt"

	"github.com/multilevelgraphs/mlgraph/digraph"
)

const (
	methodComplete   = "Complete"
	methodBipartite  = "CompleteBipartite"
	minCompleteNodes = 1
	minBipartiteSide = 1
)

// Complete returns a constructor building the complete directed graph on n
// vertices: every ordered pair (i,j), i != j, gets an edge. The result is
// reciprocal regardless of WithMutualEdges.
func Complete(n int) Constructor {
	return func(g *digraph.Digraph, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := addVertex(g, methodComplete, cfg.idFn(i)); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if err := addEdge(g, cfg, methodComplete, cfg.idFn(i), cfg.idFn(j)); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// CompleteBipartite returns a constructor building K_{n1,n2} with side IDs
// "<leftPrefix><i>" and "<rightPrefix><j>". Edges run left to right; with
// WithMutualEdges the reverse edges are emitted as well.
func CompleteBipartite(n1, n2 int) Constructor {
	return func(g *digraph.Digraph, cfg builderConfig) error {
		if n1 < minBipartiteSide || n2 < minBipartiteSide {
			return fmt.Errorf("%s: sides %d,%d < min=%d: %w",
				methodBipartite, n1, n2, minBipartiteSide, ErrTooFewVertices)
		}
		left := make([]string, n1)
		right := make([]string, n2)
		for i := 0; i < n1; i++ {
			left[i] = cfg.leftPrefix + cfg.idFn(i)
			if err := addVertex(g, methodBipartite, left[i]); err != nil {
				return err
			}
		}
		for j := 0; j < n2; j++ {
			right[j] = cfg.rightPrefix + cfg.idFn(j)
			if err := addVertex(g, methodBipartite, right[j]); err != nil {
				return err
			}
		}
		for _, u := range left {
			for _, v := range right {
				if err := addEdge(g, cfg, methodBipartite, u, v); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
