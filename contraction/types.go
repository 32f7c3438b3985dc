// Package contraction - types.go
// Sentinel errors, attribute-callback signatures and the shared functional
// options accepted by every scheme constructor.
package contraction

import (
	"errors"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// Sentinel errors returned by the scheme engine.
var (
	// ErrNotContracted indicates an Update on a scheme that has never been
	// contracted.
	ErrNotContracted = errors.New("contraction: scheme has not been contracted yet")

	// ErrNotSingleton indicates a removed node that was not in exactly one
	// singleton component set. Edge-based schemes require incident edges to
	// be removed before their endpoints.
	ErrNotSingleton = errors.New("contraction: removed node not in a singleton component set")

	// ErrEmptyRow indicates a node whose component-set row was left empty at
	// reconciliation time; every node must be covered by at least one set.
	ErrEmptyRow = errors.New("contraction: empty component-set row during reconciliation")
)

// SupernodeAttrFunc derives extra attributes for a produced supernode.
type SupernodeAttrFunc func(*decgraph.Supernode) decgraph.Attrs

// SuperedgeAttrFunc derives extra attributes for a produced superedge.
type SuperedgeAttrFunc func(*decgraph.Superedge) decgraph.Attrs

// ComponentSetAttrFunc derives attributes for a component set from its
// members, keyed by supernode key.
type ComponentSetAttrFunc func(map[string]*decgraph.Supernode) decgraph.Attrs

// opts collects the configuration shared by all schemes.
type opts struct {
	nodeAttrs SupernodeAttrFunc
	edgeAttrs SuperedgeAttrFunc
	setAttrs  ComponentSetAttrFunc
}

// Option tunes a scheme at construction time.
type Option func(*opts)

// WithSupernodeAttrs sets the callback applied to every produced supernode.
func WithSupernodeAttrs(f SupernodeAttrFunc) Option {
	return func(o *opts) { o.nodeAttrs = f }
}

// WithSuperedgeAttrs sets the callback applied to every produced superedge.
func WithSuperedgeAttrs(f SuperedgeAttrFunc) Option {
	return func(o *opts) { o.edgeAttrs = f }
}

// WithComponentSetAttrs sets the callback applied to every component set at
// creation time and again after each contract/update pass.
func WithComponentSetAttrs(f ComponentSetAttrFunc) Option {
	return func(o *opts) { o.setAttrs = f }
}
