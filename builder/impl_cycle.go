// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// impl_cycle.go - implementation of Cycle(n) constructor.
//
// Contract:
//   - 3 ≤ n ≤ VertexCount (else ErrTooFewVertices).
//   - Emits edges i → (i+1) mod n for i = 0..n-1.
//
// Complexity: O(n) edges, O(1) extra space.

package builder

import "github.com/katalvlaran/gcbfs/core"

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor closing the first n vertices into a directed
// ring.
func Cycle(n int) Constructor {
	return func(g *core.AdjacencyList, _ builderConfig) error {
		if err := validateSpan(methodCycle, g, n, minCycleNodes); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := extend(methodCycle, g, i, []int{(i + 1) % n}); err != nil {
				return err
			}
		}
		return nil
	}
}
