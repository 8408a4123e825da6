// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// impl_star.go - implementation of Star(n) constructor.
//
// Contract:
//   - 2 ≤ n ≤ VertexCount (else ErrTooFewVertices).
//   - Vertex 0 is the center; every leaf 1..n-1 is linked both ways.
//
// Complexity: O(n) edges, O(n) extra space for the center's list.

package builder

import "github.com/katalvlaran/gcbfs/core"

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor linking vertex 0 with each of the vertices
// 1..n-1 in both directions.
func Star(n int) Constructor {
	return func(g *core.AdjacencyList, _ builderConfig) error {
		if err := validateSpan(methodStar, g, n, minStarNodes); err != nil {
			return err
		}
		leaves := make([]int, 0, n-1)
		for i := 1; i < n; i++ {
			leaves = append(leaves, i)
			if err := extend(methodStar, g, i, []int{0}); err != nil {
				return err
			}
		}
		return extend(methodStar, g, 0, leaves)
	}
}
