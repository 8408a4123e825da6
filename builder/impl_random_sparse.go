// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// impl_random_sparse.go - implementation of RandomSparse(p) constructor.
//
// Canonical model:
//   - Erdős–Rényi-like generator over all vertices: each ordered pair
//     (i, j), i ≠ j, becomes an edge independently with probability p.
//
// Contract:
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil when 0 < p < 1 (else ErrNeedRandSource).
//
// Complexity: O(n²) Bernoulli trials, O(n) extra space per row.
//
// Determinism: trials run for i asc, then j asc.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/core"
)

const methodRandomSparse = "RandomSparse"

// RandomSparse returns a Constructor sampling every ordered pair of
// distinct vertices with probability p.
func RandomSparse(p float64) Constructor {
	return func(g *core.AdjacencyList, cfg builderConfig) error {
		if err := validateProbability(methodRandomSparse, p); err != nil {
			return err
		}
		if cfg.rng == nil && p > MinProbability && p < MaxProbability {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}
		if p == MinProbability {
			return nil
		}
		n := g.VertexCount()
		row := make([]int, 0, 16)
		for i := 0; i < n; i++ {
			row = row[:0]
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				// p == 1 needs no rng
				if cfg.rng == nil || cfg.rng.Float64() < p {
					row = append(row, j)
				}
			}
			if err := extend(methodRandomSparse, g, i, row); err != nil {
				return err
			}
		}
		return nil
	}
}
