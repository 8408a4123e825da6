// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// impl_path.go - implementation of Path(n) constructor.
//
// Contract:
//   - 2 ≤ n ≤ VertexCount (else ErrTooFewVertices).
//   - Emits edges (i-1) → i for i = 1..n-1.
//
// Complexity: O(n) edges, O(1) extra space.

package builder

import "github.com/katalvlaran/gcbfs/core"

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor linking the first n vertices into a directed
// path 0 → 1 → … → n-1.
func Path(n int) Constructor {
	return func(g *core.AdjacencyList, _ builderConfig) error {
		if err := validateSpan(methodPath, g, n, minPathNodes); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := extend(methodPath, g, i-1, []int{i}); err != nil {
				return err
			}
		}
		return nil
	}
}
