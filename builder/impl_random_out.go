// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// impl_random_out.go - implementation of RandomOut(d) constructor.
//
// Canonical model:
//   - Every vertex receives d distinct successors drawn uniformly from the
//     other vertices (rejection sampling, so d must stay below n).
//
// Contract:
//   - 0 ≤ d < VertexCount (else ErrTooFewVertices).
//   - cfg.rng must be non-nil (else ErrNeedRandSource).
//
// Complexity: expected O(n·d) draws while d ≤ n/2, O(d) extra space.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/core"
)

const methodRandomOut = "RandomOut"

// RandomOut returns a Constructor giving every vertex d random successors.
func RandomOut(d int) Constructor {
	return func(g *core.AdjacencyList, cfg builderConfig) error {
		n := g.VertexCount()
		if d < 0 || (d >= n && d > 0) {
			return fmt.Errorf("%s: d=%d not in [0,%d): %w", methodRandomOut, d, n, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", methodRandomOut, ErrNeedRandSource)
		}
		picked := make(map[int]struct{}, d)
		row := make([]int, 0, d)
		for v := 0; v < n; v++ {
			clear(picked)
			row = row[:0]
			for len(row) < d {
				w := cfg.rng.Intn(n)
				if w == v {
					continue
				}
				if _, dup := picked[w]; dup {
					continue
				}
				picked[w] = struct{}{}
				row = append(row, w)
			}
			if err := extend(methodRandomOut, g, v, row); err != nil {
				return err
			}
		}
		return nil
	}
}
