// Package decgraph defines the decontractible graph model: Supernode,
// Superedge, and the DecGraph container.
//
// A decontractible graph is a directed graph whose nodes (supernodes) each
// stand for a nested decontractible graph, and whose edges (superedges) each
// stand for a set of lower-level superedges between the nodes of their tail
// and head decontractions. Formally it is a quadruple G = (V, E, dec_V, dec_E)
// where dec_V assigns a decontractible graph to every supernode and dec_E
// assigns, to every superedge (v, w), a set of superedges whose tails lie in
// dec_V(v) and heads in dec_V(w).
//
// Key operations:
//   - Add/RemoveNode, Add/RemoveEdge: map-backed, O(1) amortized; removing a
//     node cascades removal of all incident superedges.
//   - ForwardStar / ReverseStar / InEdges / OutEdges / Degree: adjacency
//     queries backed by successor/predecessor index maps.
//   - CompleteDecontraction: expand every supernode and superedge one level
//     down and union the results into a single flat DecGraph.
//   - InducedSubgraph: restriction to a key set.
//   - DeepCopy: recursive duplication that re-links ComponentSet references
//     level by level across the copied hierarchy.
//   - Equal: structural equality (key bijection with recursively equal
//     decontractions).
//
// Identity rules:
//   - A supernode is identified by its Key, unique within its containing
//     graph. Height(leaf) = 0; height of an empty graph is -1.
//   - A superedge is identified solely by (tail key, head key); a graph never
//     holds two superedges with the same endpoints.
//   - A ComponentSet is identified solely by its SetID; membership does not
//     participate in identity.
//
// Errors:
//
//	ErrNodeNotFound     - removing a supernode that is not in the graph.
//	ErrEdgeNotFound     - removing a superedge that is not in the graph.
//	ErrEndpointNotFound - adding a superedge whose endpoints are not both present.
//	ErrLevelMismatch    - level of an edge or nested element is inconsistent.
//	ErrDecContainment   - a superedge decontraction member lies outside the
//	                      tail/head decontractions.
//
// The model is not safe for concurrent mutation; callers needing shared
// access must serialize externally.
package decgraph
