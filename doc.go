// Package mlgraph builds and maintains multilevel hierarchies of graph
// decompositions: a base directed graph is contracted level by level into
// supernodes and superedges, each level grouping the one below by a
// contraction scheme (strongly connected components, simple cycles,
// cliques or stars).
//
// The packages compose bottom-up:
//
//	digraph/     - the mutable directed base graph
//	decgraph/    - decontractible graphs: supernodes, superedges, component sets
//	algorithms/  - clique, cycle, SCC and reachability queries over decgraphs
//	contraction/ - the scheme engine and the four concrete contraction schemes
//	multilevel/  - the hierarchy container: lazy building, incremental repair
//	builder/     - deterministic topology constructors for base graphs
//	gexf/        - GEXF 1.3 export for Gephi and friends
//
// Levels are built lazily and repaired incrementally: mutating the base
// graph records a delta, and the next level request replays it upward
// instead of recontracting from scratch.
//
//	g, _ := builder.Build(nil, nil, builder.Cycle(5))
//	m := multilevel.New(g, contraction.NewSCCsScheme())
//	top, _ := m.GraphAt(1)
package mlgraph
