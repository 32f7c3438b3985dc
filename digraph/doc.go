// Package digraph provides the mutable directed graph that feeds a
// multilevel hierarchy.
//
// A Digraph holds attribute-carrying vertices identified by string IDs and
// at most one directed edge per ordered vertex pair. All methods are safe
// for concurrent use; a single RWMutex guards the whole structure, so
// readers proceed in parallel and writers serialize.
//
// Self-loops are rejected unless the graph was built with WithLoops.
//
// Errors:
//
//	ErrEmptyVertexID  - vertex ID is the empty string.
//	ErrVertexNotFound - referenced vertex does not exist.
//	ErrEdgeNotFound   - referenced edge does not exist.
//	ErrLoopNotAllowed - self-loop on a graph built without WithLoops.
package digraph
