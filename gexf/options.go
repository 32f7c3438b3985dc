// Package gexf - options.go
// Export configuration: the visualization hooks and their defaults.
package gexf

import "github.com/multilevelgraphs/mlgraph/decgraph"

// NodeLabelFunc produces the label of a node in viz output.
type NodeLabelFunc func(*decgraph.Supernode) string

// NodeColorFunc produces the color of a node in viz output.
type NodeColorFunc func(*decgraph.Supernode) Color

// NodeSizeFunc produces the size of a node in viz output.
type NodeSizeFunc func(*decgraph.Supernode) float64

// EdgeColorFunc produces the color of an edge in viz output.
type EdgeColorFunc func(*decgraph.Superedge) Color

// EdgeThicknessFunc produces the thickness of an edge in viz output.
type EdgeThicknessFunc func(*decgraph.Superedge) float64

type config struct {
	description   string
	nodeLabel     NodeLabelFunc
	nodeColor     NodeColorFunc
	nodeSize      NodeSizeFunc
	edgeColor     EdgeColorFunc
	edgeThickness EdgeThicknessFunc
}

// Option overrides one knob of the export configuration.
type Option func(*config)

// WithDescription adds a description to the document metadata.
func WithDescription(s string) Option {
	return func(c *config) { c.description = s }
}

// WithNodeLabel overrides the node label hook.
func WithNodeLabel(fn NodeLabelFunc) Option {
	return func(c *config) { c.nodeLabel = fn }
}

// WithNodeColor overrides the node color hook.
func WithNodeColor(fn NodeColorFunc) Option {
	return func(c *config) { c.nodeColor = fn }
}

// WithNodeSize overrides the node size hook.
func WithNodeSize(fn NodeSizeFunc) Option {
	return func(c *config) { c.nodeSize = fn }
}

// WithEdgeColor overrides the edge color hook.
func WithEdgeColor(fn EdgeColorFunc) Option {
	return func(c *config) { c.edgeColor = fn }
}

// WithEdgeThickness overrides the edge thickness hook.
func WithEdgeThickness(fn EdgeThicknessFunc) Option {
	return func(c *config) { c.edgeThickness = fn }
}

func newConfig(opts ...Option) config {
	cfg := config{
		nodeLabel:     defaultNodeLabel,
		nodeColor:     defaultNodeColor,
		nodeSize:      defaultNodeSize,
		edgeColor:     defaultEdgeColor,
		edgeThickness: defaultEdgeThickness,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// defaultNodeLabel prefers a "label" attribute, falling back to the key.
func defaultNodeLabel(n *decgraph.Supernode) string {
	if label, ok := n.Attrs["label"].(string); ok {
		return label
	}
	return n.Key
}

// defaultNodeColor hashes the parent key so siblings share a color; a top
// level node hashes its own key.
func defaultNodeColor(n *decgraph.Supernode) Color {
	if n.Supernode != nil {
		return hashColor(n.Supernode.Key)
	}
	return hashColor(n.Key)
}

// defaultNodeSize prefers a "size" attribute, falling back to ten times the
// decontraction order.
func defaultNodeSize(n *decgraph.Supernode) float64 {
	if size, ok := n.Attrs["size"].(float64); ok {
		return size
	}
	return float64(n.Size() * 10)
}

// defaultEdgeColor colors an edge like its endpoints' shared parent, black
// when the endpoints sit under different parents.
func defaultEdgeColor(e *decgraph.Superedge) Color {
	if e.Tail.Supernode != nil && e.Tail.Supernode == e.Head.Supernode {
		return hashColor(e.Tail.Supernode.Key)
	}
	return Color{A: 1.0}
}

// defaultEdgeThickness prefers a "thickness" attribute, falling back to the
// number of contracted edges.
func defaultEdgeThickness(e *decgraph.Superedge) float64 {
	if th, ok := e.Attrs["thickness"].(float64); ok {
		return th
	}
	return float64(e.Size())
}
