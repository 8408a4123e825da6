// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// impl_grid.go - implementation of Grid(rows, cols) constructor.
//
// Contract:
//   - rows, cols ≥ 1 and rows*cols ≤ VertexCount (else ErrTooFewVertices).
//   - Vertex (r, c) is r*cols + c (row-major).
//   - Each cell links to its 4-neighborhood in both directions.
//
// Complexity: O(rows*cols) edges, O(1) extra space per cell.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/core"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor laying the first rows*cols vertices out as a
// rows × cols lattice.
func Grid(rows, cols int) Constructor {
	return func(g *core.AdjacencyList, _ builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: %dx%d below %dx%d: %w", methodGrid, rows, cols, minGridDim, minGridDim, ErrTooFewVertices)
		}
		if err := validateSpan(methodGrid, g, rows*cols, minGridDim); err != nil {
			return err
		}
		nb := make([]int, 0, 4)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				nb = nb[:0]
				if r > 0 {
					nb = append(nb, (r-1)*cols+c)
				}
				if c > 0 {
					nb = append(nb, r*cols+c-1)
				}
				if c+1 < cols {
					nb = append(nb, r*cols+c+1)
				}
				if r+1 < rows {
					nb = append(nb, (r+1)*cols+c)
				}
				if err := extend(methodGrid, g, r*cols+c, nb); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
