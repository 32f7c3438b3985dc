// Package builder provides deterministic constructors for directed base
// graphs: paths, cycles, stars, complete and complete bipartite graphs, and
// seeded sparse random graphs.
//
// Constructors compose through Build, which creates the graph, resolves the
// functional options into one configuration and applies the constructors in
// order. The same options, seed and constructor order always produce the
// same graph.
//
//	g, err := builder.Build(nil, nil,
//		builder.Cycle(5),
//		builder.Star(4),
//	)
//
// Vertex IDs come from the configured ID scheme (decimal by default); some
// constructors use fixed IDs, documented per constructor. Stochastic
// constructors require a seeded RNG via WithSeed or WithRand and return
// ErrNeedRandSource otherwise. All validation failures surface as sentinel
// errors, matched with errors.Is; constructors never panic.
package builder
