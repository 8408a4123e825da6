// SPDX-License-Identifier: MIT
// Package core_test contains fixtures shared by the core tests.

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gcbfs/core"
)

// Common vertex ids and sizes used across core tests.
const (
	V0 = 0
	V1 = 1
	V2 = 2
	V3 = 3
	V4 = 4

	NFixture = 5
)

// NewFixture RETURNS the five-vertex graph
//
//	0→{1,2}  1→{3}  2→{3}  3→{}  4→{}
//
// Vertex 4 is isolated.
func NewFixture(t *testing.T) *core.AdjacencyList {
	t.Helper()

	g, err := core.NewAdjacencyList(NFixture, core.WithName("fixture"))
	require.NoError(t, err)
	for _, e := range [][2]int{{V0, V1}, {V0, V2}, {V1, V3}, {V2, V3}} {
		require.NoError(t, g.AddEdge(e[0], e[1]), "AddEdge(%d,%d)", e[0], e[1])
	}
	return g
}

// plainGraph hides the Sweeper implementation of an AdjacencyList and
// reports in-degrees as unsupported, forcing the generic fallbacks.
type plainGraph struct {
	*core.AdjacencyList
}

func (plainGraph) InDegree(int) (int, error) { return 0, core.ErrNotSupported }

// hide strips every method but core.Graph.
func hide(g *core.AdjacencyList) core.Graph {
	return struct{ core.Graph }{plainGraph{g}}
}
