// Package contraction implements the contraction-scheme engine: the rules
// that group the supernodes of one level into the supernodes of the next, and
// the incremental machinery that repairs a produced level after the level
// below changes.
//
// A Scheme owns the decontractible graph it produced, a CompTable mapping
// each lower node to the component sets it belongs to, a supernode table
// realizing the bijection between distinct component-set combinations and
// supernodes, and an UpdateQuadruple accumulating its own emitted changes for
// the scheme one level above.
//
// Two entry points drive a scheme:
//
//   - Contract builds the produced graph from scratch: the scheme-specific
//     grouping function fills the CompTable, then every lower node is placed
//     into the supernode identified by its frozen component-set combination
//     and every lower edge is either folded into a supernode or aggregated
//     into a superedge.
//
//   - Update repairs the produced graph from an UpdateQuadruple emitted by
//     the level below, processing removed edges, removed nodes, added nodes,
//     then added edges through scheme-specific hooks, and finally reconciling
//     supernode membership with the changed CompTable.
//
// Concrete schemes group by maximal cliques, simple cycles, strongly
// connected components and stars. All of them are edge-based: two nodes can
// share a component set only when connected by some edge, so an isolated
// node always occupies a singleton set.
//
// Updates are not transactional. An error from Update leaves the scheme's
// graph indeterminate; the only recovery is Invalidate followed by a fresh
// Contract over the rebuilt lower graph.
package contraction
