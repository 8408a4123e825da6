package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gcbfs/builder"
	"github.com/katalvlaran/gcbfs/core"
)

func successors(t *testing.T, g core.Graph, v int) []int {
	t.Helper()
	s, err := g.Successors(v)
	require.NoError(t, err)
	return s
}

// TestBuilders_Functional checks counts and a sample of edges per
// constructor.
func TestBuilders_Functional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		n     int
		ctor  builder.Constructor
		wantE int64
		check func(t *testing.T, g *core.AdjacencyList)
	}{
		{
			name: "Path(4)", n: 4, ctor: builder.Path(4), wantE: 3,
			check: func(t *testing.T, g *core.AdjacencyList) {
				require.Equal(t, []int{1}, successors(t, g, 0))
				require.Empty(t, successors(t, g, 3))
			},
		},
		{
			name: "Cycle(5)", n: 5, ctor: builder.Cycle(5), wantE: 5,
			check: func(t *testing.T, g *core.AdjacencyList) {
				require.Equal(t, []int{0}, successors(t, g, 4))
			},
		},
		{
			name: "Star(4) on 6", n: 6, ctor: builder.Star(4), wantE: 6,
			check: func(t *testing.T, g *core.AdjacencyList) {
				require.Equal(t, []int{1, 2, 3}, successors(t, g, 0))
				require.Equal(t, []int{0}, successors(t, g, 2))
				require.Empty(t, successors(t, g, 5))
			},
		},
		{
			name: "Complete(4)", n: 4, ctor: builder.Complete(4), wantE: 12,
			check: func(t *testing.T, g *core.AdjacencyList) {
				require.Equal(t, []int{0, 1, 3}, successors(t, g, 2))
			},
		},
		{
			name: "Grid(2,3)", n: 6, ctor: builder.Grid(2, 3), wantE: 14,
			check: func(t *testing.T, g *core.AdjacencyList) {
				require.Equal(t, []int{1, 3, 5}, successors(t, g, 4))
			},
		},
		{
			name: "RandomSparse(1)", n: 5, ctor: builder.RandomSparse(1), wantE: 20,
		},
		{
			name: "RandomSparse(0)", n: 5, ctor: builder.RandomSparse(0), wantE: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.BuildGraph(tc.n, nil, nil, tc.ctor)
			require.NoError(t, err)
			require.Equal(t, tc.n, g.VertexCount())
			require.Equal(t, tc.wantE, g.EdgeCount())
			if tc.check != nil {
				tc.check(t, g)
			}
		})
	}
}

func TestBuilders_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		n    int
		ctor builder.Constructor
		want error
	}{
		{"Path too short", 4, builder.Path(1), builder.ErrTooFewVertices},
		{"Path beyond graph", 4, builder.Path(5), builder.ErrTooFewVertices},
		{"Cycle too short", 4, builder.Cycle(2), builder.ErrTooFewVertices},
		{"Grid zero", 4, builder.Grid(0, 3), builder.ErrTooFewVertices},
		{"Grid too large", 4, builder.Grid(3, 3), builder.ErrTooFewVertices},
		{"RandomSparse p", 4, builder.RandomSparse(1.5), builder.ErrInvalidProbability},
		{"RandomSparse rng", 4, builder.RandomSparse(0.5), builder.ErrNeedRandSource},
		{"RandomOut d", 4, builder.RandomOut(4), builder.ErrTooFewVertices},
		{"RandomOut rng", 4, builder.RandomOut(1), builder.ErrNeedRandSource},
		{"Copying d", 4, builder.Copying(0, 0.5), builder.ErrTooFewVertices},
		{"Copying beta", 4, builder.Copying(2, -1), builder.ErrInvalidProbability},
		{"nil constructor", 4, nil, builder.ErrConstructFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.BuildGraph(tc.n, nil, nil, tc.ctor)
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := builder.BuildGraph(-1, nil, nil)
	require.ErrorIs(t, err, core.ErrNegativeSize)
	require.Panics(t, func() { builder.WithRand(nil) })
}

// TestBuilders_Determinism rebuilds stochastic graphs with the same seed.
func TestBuilders_Determinism(t *testing.T) {
	t.Parallel()

	build := func(seed int64) *core.AdjacencyList {
		g, err := builder.BuildGraph(300, nil, []builder.BuilderOption{builder.WithSeed(seed)},
			builder.Cycle(300), builder.Copying(6, 0.3), builder.RandomOut(2))
		require.NoError(t, err)
		return g
	}
	a, b, c := build(1), build(1), build(2)
	require.Equal(t, a.EdgeCount(), b.EdgeCount())
	differs := false
	for v := 0; v < 300; v++ {
		require.Equal(t, successors(t, a, v), successors(t, b, v))
		differs = differs || len(successors(t, a, v)) != len(successors(t, c, v))
	}
	require.True(t, differs, "different seeds should give different graphs")
}

// TestBuilders_Layering checks that overlapping constructors neither fail
// on existing edges nor add loops.
func TestBuilders_Layering(t *testing.T) {
	t.Parallel()

	g, err := builder.BuildGraph(50, nil, []builder.BuilderOption{builder.WithSeed(3)},
		builder.Path(50), builder.Cycle(50), builder.Copying(5, 0.5), builder.RandomOut(3))
	require.NoError(t, err)
	require.GreaterOrEqual(t, g.EdgeCount(), int64(50))
	for v := 0; v < 50; v++ {
		s := successors(t, g, v)
		require.NotContains(t, s, v)
		require.Contains(t, s, (v+1)%50)
		for i := 1; i < len(s); i++ {
			require.Less(t, s[i-1], s[i])
		}
	}
}
