// Package builder - config.go
// Builder configuration: deterministic defaults and the functional options
// that override them. The resolved config is passed to constructors by
// value.
package builder

import (
	"math/rand"
	"strconv"

	"github.com/multilevelgraphs/mlgraph/decgraph"
)

const (
	defaultLeftPrefix  = "L"
	defaultRightPrefix = "R"
	defaultWeight      = 1.0
)

// builderConfig aggregates every knob a constructor reads.
type builderConfig struct {
	// idFn maps a vertex index to its ID. Deterministic.
	idFn func(int) string
	// rng drives stochastic constructors; nil means none is available.
	rng *rand.Rand
	// weightFn produces the weight attribute of each emitted edge; nil
	// means edges carry no attributes.
	weightFn func(*rand.Rand) float64
	// mutual asks constructors to emit the reverse of every edge as well,
	// yielding reciprocal adjacency.
	mutual bool
	// Bipartite side prefixes.
	leftPrefix  string
	rightPrefix string
}

// Option overrides one knob of the builder configuration.
type Option func(*builderConfig)

// WithIDScheme sets the vertex ID scheme. A nil fn restores the decimal
// default.
func WithIDScheme(fn func(int) string) Option {
	return func(c *builderConfig) { c.idFn = fn }
}

// WithSeed equips the configuration with a deterministic RNG for stochastic
// constructors.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies an explicit RNG, shared with the caller.
func WithRand(r *rand.Rand) Option {
	return func(c *builderConfig) { c.rng = r }
}

// WithWeightFunc sets the per-edge weight generator.
func WithWeightFunc(fn func(*rand.Rand) float64) Option {
	return func(c *builderConfig) { c.weightFn = fn }
}

// WithConstWeight makes every edge carry the given constant weight.
func WithConstWeight(w float64) Option {
	return func(c *builderConfig) { c.weightFn = func(*rand.Rand) float64 { return w } }
}

// WithoutWeights suppresses edge attributes entirely.
func WithoutWeights() Option {
	return func(c *builderConfig) { c.weightFn = nil }
}

// WithMutualEdges makes every emitted edge reciprocal: u->v implies v->u.
func WithMutualEdges() Option {
	return func(c *builderConfig) { c.mutual = true }
}

// WithPartitionPrefix sets the bipartite side ID prefixes; empty strings
// fall back to the defaults "L" and "R".
func WithPartitionPrefix(left, right string) Option {
	return func(c *builderConfig) {
		c.leftPrefix = left
		c.rightPrefix = right
	}
}

// newBuilderConfig resolves the defaults and applies opts in order,
// last-wins.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		idFn:        decimalID,
		weightFn:    func(*rand.Rand) float64 { return defaultWeight },
		leftPrefix:  defaultLeftPrefix,
		rightPrefix: defaultRightPrefix,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.idFn == nil {
		cfg.idFn = decimalID
	}
	if cfg.leftPrefix == "" {
		cfg.leftPrefix = defaultLeftPrefix
	}
	if cfg.rightPrefix == "" {
		cfg.rightPrefix = defaultRightPrefix
	}
	return cfg
}

func decimalID(i int) string { return strconv.Itoa(i) }

// edgeAttrs materializes the attributes of the next edge, nil when weights
// are suppressed.
func (c builderConfig) edgeAttrs() decgraph.Attrs {
	if c.weightFn == nil {
		return nil
	}
	return decgraph.Attrs{"weight": c.weightFn(c.rng)}
}
