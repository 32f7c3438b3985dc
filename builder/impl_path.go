// Package builder - impl_path.go
package builder

import (
	"fmt"

	"github.com/multilevelgraphs/mlgraph/digraph"
)

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a constructor building the simple path P_n: vertices
// idFn(0)..idFn(n-1) chained head to tail in ascending index order.
func Path(n int) Constructor {
	return func(g *digraph.Digraph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := addVertex(g, methodPath, cfg.idFn(i)); err != nil {
				return err
			}
		}
		for i := 0; i < n-1; i++ {
			if err := addEdge(g, cfg, methodPath, cfg.idFn(i), cfg.idFn(i+1)); err != nil {
				return err
			}
		}
		return nil
	}
}
