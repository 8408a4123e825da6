// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// api.go - public entry point for composing graph generators.
//
// Design contract:
//   - One orchestrator: BuildGraph(n, gopts, bopts, cons...). Creates an
//     n-vertex core.AdjacencyList, resolves cfg, runs cons in order.
//   - Constructors only add edges; vertices are the fixed range [0, n).
//   - Determinism: same n, options, seed and constructor order give the
//     same graph.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/core"
)

// Constructor adds a deterministic set of edges to g using the resolved
// builderConfig. Constructors validate their parameters before touching
// g, never add self-loops, and skip edges that already exist.
type Constructor func(g *core.AdjacencyList, cfg builderConfig) error

// BuildGraph creates an n-vertex graph with options gopts, resolves the
// builder configuration from bopts and applies all constructors in order.
// Any constructor error is wrapped with "BuildGraph: %w" and returned
// immediately.
//
// Complexity: O(len(bopts)) plus the cost of every constructor.
func BuildGraph(n int, gopts []core.Option, bopts []BuilderOption, cons ...Constructor) (*core.AdjacencyList, error) {
	g, err := core.NewAdjacencyList(n, gopts...)
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}
	return g, nil
}
