// Package builder - impl_star.go
package builder

import (
	"fmt"

	"github.com/multilevelgraphs/mlgraph/digraph"
)

const (
	methodStar   = "Star"
	minStarNodes = 2

	// CenterID is the fixed hub vertex ID used by Star.
	CenterID = "Center"
)

// Star returns a constructor building a star with the fixed hub CenterID
// and n-1 leaves idFn(1)..idFn(n-1). Spokes run hub to leaf; with
// WithMutualEdges the reverse spokes are emitted as well.
func Star(n int) Constructor {
	return func(g *digraph.Digraph, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		if err := addVertex(g, methodStar, CenterID); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			leaf := cfg.idFn(i)
			if err := addVertex(g, methodStar, leaf); err != nil {
				return err
			}
			if err := addEdge(g, cfg, methodStar, CenterID, leaf); err != nil {
				return err
			}
		}
		return nil
	}
}
