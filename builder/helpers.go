// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// helpers.go - validation and edge insertion shared by constructors.

package builder

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/gcbfs/core"
)

// Probability bounds for RandomSparse and Copying, inclusive.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)

// validateSpan checks that a constructor over the first n vertices of g
// has at least min of them and does not exceed the graph.
func validateSpan(method string, g *core.AdjacencyList, n, min int) error {
	if n < min {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, n, min, ErrTooFewVertices)
	}
	if n > g.VertexCount() {
		return fmt.Errorf("%s: n=%d exceeds %d vertices: %w", method, n, g.VertexCount(), ErrTooFewVertices)
	}
	return nil
}

// validateProbability enforces p in [MinProbability, MaxProbability].
func validateProbability(method string, p float64) error {
	if p < MinProbability || p > MaxProbability {
		return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", method, p, MinProbability, MaxProbability, ErrInvalidProbability)
	}
	return nil
}

// extend merges add into the successors of v. Self-loops and edges that
// already exist are dropped, so constructors compose freely.
func extend(method string, g *core.AdjacencyList, v int, add []int) error {
	if len(add) == 0 {
		return nil
	}
	cur, err := g.Successors(v)
	if err != nil {
		return fmt.Errorf("%s: Successors(%d): %w", method, v, err)
	}
	merged := make([]int, 0, len(cur)+len(add))
	merged = append(merged, cur...)
	for _, w := range add {
		if w != v {
			merged = append(merged, w)
		}
	}
	sort.Ints(merged)
	out := merged[:0]
	for i, w := range merged {
		if i == 0 || w != merged[i-1] {
			out = append(out, w)
		}
	}
	if len(out) == len(cur) {
		return nil
	}
	if err := g.SetSuccessors(v, out); err != nil {
		return fmt.Errorf("%s: SetSuccessors(%d): %w: %w", method, v, ErrConstructFailed, err)
	}
	return nil
}
