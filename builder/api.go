// Package builder - api.go
// The Build orchestrator and the Constructor contract.
package builder

import (
	"fmt"

	"github.com/multilevelgraphs/mlgraph/decgraph"
	"github.com/multilevelgraphs/mlgraph/digraph"
)

// Constructor applies one deterministic topology to g under the resolved
// configuration. Constructors validate their parameters early, wrap the
// package sentinels with method context and never panic.
type Constructor func(g *digraph.Digraph, cfg builderConfig) error

// Build creates a new directed graph with the given graph options, resolves
// the builder options into one configuration and applies the constructors in
// order. The first failing constructor aborts the build; no partial cleanup
// is attempted.
func Build(gopts []digraph.Option, bopts []Option, cons ...Constructor) (*digraph.Digraph, error) {
	g := digraph.New(gopts...)
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: constructor %d: %w", i, ErrNilConstructor)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}
	return g, nil
}

// addEdge emits tail->head with fresh edge attributes, plus the reverse
// edge when the configuration asks for mutual adjacency. Re-adding an
// existing edge merges attributes, so constructors may overlap.
func addEdge(g *digraph.Digraph, cfg builderConfig, method, tail, head string) error {
	if err := g.AddEdge(tail, head, cfg.edgeAttrs()); err != nil {
		return fmt.Errorf("%s: edge %s->%s: %w", method, tail, head, err)
	}
	if cfg.mutual {
		if err := g.AddEdge(head, tail, cfg.edgeAttrs()); err != nil {
			return fmt.Errorf("%s: edge %s->%s: %w", method, head, tail, err)
		}
	}
	return nil
}

// addVertex inserts a vertex without attributes, ignoring duplicates.
func addVertex(g *digraph.Digraph, method, id string) error {
	if err := g.AddVertex(id, decgraph.Attrs(nil)); err != nil {
		return fmt.Errorf("%s: vertex %s: %w", method, id, err)
	}
	return nil
}
