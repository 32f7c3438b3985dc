// Package builder - impl_random_sparse.go
package builder

import (
	"fmt"

	"github.com/multilevelgraphs/mlgraph/digraph"
)

const (
	methodRandomSparse   = "RandomSparse"
	minRandomSparseNodes = 1
)

// RandomSparse returns a constructor building an Erdos-Renyi style directed
// graph: every ordered pair (i,j), i != j, gets an edge with probability p.
// Requires an RNG (WithSeed or WithRand); deterministic for a fixed seed.
// With WithMutualEdges the pair is sampled once and emitted both ways.
func RandomSparse(n int, p float64) Constructor {
	return func(g *digraph.Digraph, cfg builderConfig) error {
		if n < minRandomSparseNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minRandomSparseNodes, ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%g: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}
		for i := 0; i < n; i++ {
			if err := addVertex(g, methodRandomSparse, cfg.idFn(i)); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			jStart := 0
			if cfg.mutual {
				// Sample unordered pairs once; addEdge emits both directions.
				jStart = i + 1
			}
			for j := jStart; j < n; j++ {
				if i == j {
					continue
				}
				if cfg.rng.Float64() >= p {
					continue
				}
				if err := addEdge(g, cfg, methodRandomSparse, cfg.idFn(i), cfg.idFn(j)); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
