// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// impl_copying.go - implementation of Copying(d, beta) constructor.
//
// Canonical model (web copying model):
//   - Vertices arrive in id order. Vertex v picks a prototype u < v
//     uniformly and draws d links: link i is, with probability beta, a
//     uniform vertex in [0, v); otherwise the i-th successor of u (or a
//     uniform vertex when u has fewer links).
//   - The result has the locality and the shared successor lists of web
//     graphs, which is what chunked BFS encoding exploits.
//
// Contract:
//   - d ≥ 1 (else ErrTooFewVertices), 0 ≤ beta ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil (else ErrNeedRandSource).
//
// Complexity: O(n·d) draws, O(d) extra space.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/core"
)

const (
	methodCopying = "Copying"
	minCopyingOut = 1
)

// Copying returns a Constructor drawing d links per vertex with the
// copying model; beta is the probability of a fresh uniform link.
func Copying(d int, beta float64) Constructor {
	return func(g *core.AdjacencyList, cfg builderConfig) error {
		if d < minCopyingOut {
			return fmt.Errorf("%s: d=%d < min=%d: %w", methodCopying, d, minCopyingOut, ErrTooFewVertices)
		}
		if err := validateProbability(methodCopying, beta); err != nil {
			return err
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", methodCopying, ErrNeedRandSource)
		}
		rng := cfg.rng
		row := make([]int, 0, d)
		for v := 1; v < g.VertexCount(); v++ {
			proto, err := g.Successors(rng.Intn(v))
			if err != nil {
				return fmt.Errorf("%s: %w", methodCopying, err)
			}
			row = row[:0]
			for i := 0; i < d; i++ {
				if i < len(proto) && rng.Float64() >= beta {
					row = append(row, proto[i])
				} else {
					row = append(row, rng.Intn(v))
				}
			}
			if err := extend(methodCopying, g, v, row); err != nil {
				return err
			}
		}
		return nil
	}
}
