// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// impl_complete.go - implementation of Complete(n) constructor.
//
// Contract:
//   - 1 ≤ n ≤ VertexCount (else ErrTooFewVertices).
//   - Emits every ordered pair i → j with i ≠ j among the first n vertices.
//
// Complexity: O(n²) edges, O(n) extra space.

package builder

import "github.com/katalvlaran/gcbfs/core"

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor building the complete directed graph on
// the first n vertices.
func Complete(n int) Constructor {
	return func(g *core.AdjacencyList, _ builderConfig) error {
		if err := validateSpan(methodComplete, g, n, minCompleteNodes); err != nil {
			return err
		}
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		for i := 0; i < n; i++ {
			// extend drops the self-loop i → i
			if err := extend(methodComplete, g, i, all); err != nil {
				return err
			}
		}
		return nil
	}
}
