// Package multilevel assembles a hierarchy of decontractible graphs over a
// base directed graph.
//
// A MultilevelGraph pairs a base graph with an ordered sequence of
// contraction schemes; the scheme at position i produces the graph at level
// i+1 from the graph below it. Levels are built lazily: nothing is
// contracted until a level is requested, and base-graph mutations only mark
// the hierarchy stale, to be repaired incrementally on the next request from
// the highest still-valid level upward.
//
// The height of a multilevel graph is the number of schemes it carries; the
// base graph sits at level 0. Level queries outside [0, height] return nil
// rather than an error.
//
// A MultilevelGraph is not safe for concurrent use.
package multilevel
