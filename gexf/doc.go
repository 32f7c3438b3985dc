// Package gexf serializes a multilevel graph to GEXF 1.3, the XML graph
// exchange format read by Gephi and similar tools.
//
// Write emits the structural document: the hierarchy as nested node
// elements, every level's superedges, and node and edge attributes. WriteViz
// additionally emits visualization attributes (color, size, thickness) and
// semi-transparent child-to-parent edges so the hierarchy stays visible in
// tools that flatten nested nodes; original edges are tagged with the
// boolean edge attribute "same_level" set to true, hierarchy edges to
// false.
//
// Output is deterministic: nodes and edges are emitted in sorted key order,
// and attribute declarations in first-encounter order.
package gexf
