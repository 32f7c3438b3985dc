// Package algorithms provides the graph algorithms consumed by the
// contraction schemes: maximal clique enumeration, simple cycle enumeration,
// strongly connected components, prefix-constrained cycle search and
// reachability scans.
//
// Clique, cycle and SCC enumeration are backed by gonum (graph/simple and
// graph/topo): a DecGraph is converted into a gonum graph through a stable
// key-to-id index, the gonum algorithm runs, and the result is mapped back to
// supernode keys. Self-loops are handled outside the conversion, since gonum
// simple graphs reject them: they never affect clique or SCC membership and
// are emitted directly as one-node cycles.
//
// CycleSearch and Reachable operate on the DecGraph adjacency directly; they
// are cheap traversals that would gain nothing from a conversion round-trip.
//
// All functions treat the input graph as read-only.
package algorithms
