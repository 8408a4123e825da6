package analytics_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/gcbfs/analytics"
	"github.com/katalvlaran/gcbfs/bitio"
	"github.com/katalvlaran/gcbfs/builder"
	"github.com/katalvlaran/gcbfs/compress"
	"github.com/katalvlaran/gcbfs/compressed"
	"github.com/katalvlaran/gcbfs/core"
	"github.com/katalvlaran/gcbfs/meta"
)

func build(t *testing.T, n int, cons ...builder.Constructor) *core.AdjacencyList {
	t.Helper()
	g, err := builder.BuildGraph(n, nil, []builder.BuilderOption{builder.WithSeed(11)}, cons...)
	require.NoError(t, err)
	return g
}

func TestPageRank_Errors(t *testing.T) {
	t.Parallel()
	_, err := analytics.PageRank(nil, 1, 0.85)
	require.ErrorIs(t, err, analytics.ErrGraphNil)
	g := build(t, 3, builder.Cycle(3))
	_, err = analytics.PageRank(g, 1, 1.5)
	require.ErrorIs(t, err, analytics.ErrBadAlpha)
	_, err = analytics.PageRank(g, -1, 0.85)
	require.ErrorIs(t, err, analytics.ErrBadSteps)

	empty, err := core.NewAdjacencyList(0)
	require.NoError(t, err)
	ranks, err := analytics.PageRank(empty, 5, 0.85)
	require.NoError(t, err)
	require.Empty(t, ranks)
}

// TestPageRank_Cycle expects the uniform distribution on a ring.
func TestPageRank_Cycle(t *testing.T) {
	t.Parallel()
	ranks, err := analytics.PageRank(build(t, 5, builder.Cycle(5)), 10, analytics.DefaultAlpha)
	require.NoError(t, err)
	for _, r := range ranks {
		require.InDelta(t, 0.2, r, 1e-12)
	}
}

// TestPageRank_MatchesGonum compares the streaming iteration with gonum's
// dense PageRank on a graph with dangling vertices.
func TestPageRank_MatchesGonum(t *testing.T) {
	t.Parallel()
	g := build(t, 200, builder.Path(150), builder.Copying(4, 0.3))
	ranks, err := analytics.PageRank(g, 200, analytics.DefaultAlpha)
	require.NoError(t, err)
	require.InDelta(t, 1.0, floats.Sum(ranks), 1e-9)

	dg := simple.NewDirectedGraph()
	for v, n := 0, g.VertexCount(); v < n; v++ {
		dg.AddNode(simple.Node(v))
	}
	require.NoError(t, g.Sweep(func(v int, succ []int) error {
		for _, w := range succ {
			dg.SetEdge(simple.Edge{F: simple.Node(v), T: simple.Node(w)})
		}
		return nil
	}))
	ref := network.PageRank(dg, analytics.DefaultAlpha, 1e-12)
	sum := 0.0
	for _, r := range ref {
		sum += r
	}
	for v, r := range ranks {
		require.InDelta(t, ref[int64(v)]/sum, r, 1e-6, "vertex %d", v)
	}
}

// TestPageRank_Compressed runs on the compressed graph and maps the ranks
// back through the id map.
func TestPageRank_Compressed(t *testing.T) {
	t.Parallel()
	g := build(t, 1200, builder.Cycle(1000), builder.Copying(5, 0.2))
	for v := 1000; v < 1200; v++ {
		require.NoError(t, g.SetSuccessors(v, nil))
	}
	var buf bytes.Buffer
	res, err := compress.Compress(g, &buf, compress.WithLevel(100), compress.WithVersion(meta.V1))
	require.NoError(t, err)
	cg, err := compressed.Load(bitio.NewReader(buf.Bytes()), "web")
	require.NoError(t, err)

	want, err := analytics.PageRank(g, 30, 0.9)
	require.NoError(t, err)
	got, err := analytics.PageRank(cg, 30, 0.9)
	require.NoError(t, err)
	for v, id := range res.IDs() {
		if id < 0 {
			// isolated vertices all share the tail rank
			require.InDelta(t, want[v], got[len(got)-1], 1e-12)
			continue
		}
		require.InDelta(t, want[v], got[id], 1e-12, "vertex %d", v)
	}
}

func TestTop(t *testing.T) {
	t.Parallel()
	vals := []float64{0.1, 0.5, 0.05, 0.3, 0.05}
	require.Equal(t, []int{1, 3, 0}, analytics.Top(vals, 3))
	require.Len(t, analytics.Top(vals, 10), 5)
	require.Empty(t, analytics.Top(vals, -1))
	require.Equal(t, []float64{0.1, 0.5, 0.05, 0.3, 0.05}, vals)
}

func TestDegrees(t *testing.T) {
	t.Parallel()
	g, err := core.NewAdjacencyList(3)
	require.NoError(t, err)
	require.NoError(t, g.SetSuccessors(0, []int{1}))
	require.NoError(t, g.SetSuccessors(1, []int{0, 2}))
	require.NoError(t, g.SetSuccessors(2, []int{0}))

	s, err := analytics.Degrees(g)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 2, 1}, s.Out.Count)
	require.Equal(t, []int64{0, 2, 1}, s.In.Count)
	require.Equal(t, []int64{1, 2}, s.Diff.Count)
	require.Equal(t, 2, s.Out.Max)
	require.InDelta(t, 4.0/3, s.Out.Mean, 1e-12)
	require.EqualValues(t, 4, s.Edges)
	require.EqualValues(t, 2, s.Reciprocal)
	require.InDelta(t, 0.5, s.ReciprocalRatio(), 1e-12)

	_, err = analytics.Degrees(nil)
	require.ErrorIs(t, err, analytics.ErrGraphNil)
}

// TestDegrees_Compressed expects identical statistics from the source and
// from the compressed graph seen in original ids.
func TestDegrees_Compressed(t *testing.T) {
	t.Parallel()
	g := build(t, 600, builder.Star(600), builder.RandomOut(3), builder.Copying(3, 0.5))
	var buf bytes.Buffer
	res, err := compress.Compress(g, &buf, compress.WithLevel(50))
	require.NoError(t, err)
	cg, err := compressed.Load(bitio.NewReader(buf.Bytes()), "star", compressed.WithInfo(res.Info))
	require.NoError(t, err)
	orig, err := compressed.NewOriginal(cg, res.IDs())
	require.NoError(t, err)

	want, err := analytics.Degrees(g)
	require.NoError(t, err)
	got, err := analytics.Degrees(orig)
	require.NoError(t, err)
	require.Equal(t, want, got)

	bfsView, err := analytics.Degrees(cg)
	require.NoError(t, err)
	require.Equal(t, want.Out.Count, bfsView.Out.Count)
	require.Equal(t, want.Reciprocal, bfsView.Reciprocal)
}
