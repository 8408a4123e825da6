package bfs_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/gcbfs/bfs"
	"github.com/katalvlaran/gcbfs/core"
)

func randomGraph(n, degree int, seed int64) *core.AdjacencyList {
	rng := rand.New(rand.NewSource(seed))
	g, _ := core.NewAdjacencyList(n, core.WithLoops(), core.WithMultiEdges())
	for v := 0; v < n; v++ {
		for d := 0; d < degree; d++ {
			_ = g.AddEdge(v, rng.Intn(n))
		}
	}
	return g
}

var discard = bfs.RowSinkFunc(func(bfs.Row) error { return nil })

// BenchmarkRelabel_RefCount measures the default heuristic.
func BenchmarkRelabel_RefCount(b *testing.B) {
	g := randomGraph(1<<14, 8, 1)
	b.ReportAllocs()
	b.SetBytes(g.EdgeCount())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.Relabel(g, discard)
	}
}

// BenchmarkRelabel_Natural measures the traversal without reordering.
func BenchmarkRelabel_Natural(b *testing.B) {
	g := randomGraph(1<<14, 8, 1)
	b.ReportAllocs()
	b.SetBytes(g.EdgeCount())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.Relabel(g, discard, bfs.WithOrdering(bfs.NaturalOrdering{}))
	}
}
