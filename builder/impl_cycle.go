// Package builder - impl_cycle.go
package builder

import (
	"fmt"

	"github.com/multilevelgraphs/mlgraph/digraph"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a constructor building the directed cycle C_n:
// idFn(0) -> idFn(1) -> ... -> idFn(n-1) -> idFn(0).
func Cycle(n int) Constructor {
	return func(g *digraph.Digraph, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := addVertex(g, methodCycle, cfg.idFn(i)); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			if err := addEdge(g, cfg, methodCycle, cfg.idFn(i), cfg.idFn((i+1)%n)); err != nil {
				return err
			}
		}
		return nil
	}
}
