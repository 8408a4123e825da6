package core_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/gcbfs/core"
)

// BenchmarkAddEdge measures sorted insertion into random successor lists.
func BenchmarkAddEdge(b *testing.B) {
	const n = 1 << 12
	rng := rand.New(rand.NewSource(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g, _ := core.NewAdjacencyList(n, core.WithMultiEdges(), core.WithLoops())
		for e := 0; e < 4*n; e++ {
			_ = g.AddEdge(rng.Intn(n), rng.Intn(n))
		}
	}
}

// BenchmarkCountIsolated measures one sweep over a sparse graph.
func BenchmarkCountIsolated(b *testing.B) {
	const n = 1 << 14
	rng := rand.New(rand.NewSource(2))
	g, _ := core.NewAdjacencyList(n, core.WithMultiEdges(), core.WithLoops())
	for e := 0; e < 2*n; e++ {
		_ = g.AddEdge(rng.Intn(n), rng.Intn(n))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = core.CountIsolated(g)
	}
}
