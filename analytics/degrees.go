package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/gcbfs/core"
)

// Degrees collects the degree distributions of g in one sweep, then counts
// reciprocal links with one IsNeighbor probe per edge.
func Degrees(g core.Graph) (DegreeStats, error) {
	if g == nil {
		return DegreeStats{}, ErrGraphNil
	}
	n := g.VertexCount()
	out := make([]int, n)
	in := make([]int, n)
	var edges int64
	err := core.Sweep(g, func(v int, succ []int) error {
		out[v] = len(succ)
		edges += int64(len(succ))
		for _, w := range succ {
			if err := core.CheckVertex(w, n); err != nil {
				return err
			}
			in[w]++
		}
		return nil
	})
	if err != nil {
		return DegreeStats{}, fmt.Errorf("Degrees: %w", err)
	}

	diff := make([]int, n)
	for v := range diff {
		diff[v] = max(in[v]-out[v], out[v]-in[v])
	}

	// Successors and IsNeighbor are separate calls, so the sweep above
	// must be finished before probing.
	var reciprocal int64
	for v := 0; v < n; v++ {
		succ, err := g.Successors(v)
		if err != nil {
			return DegreeStats{}, fmt.Errorf("Degrees: Successors(%d): %w", v, err)
		}
		for _, w := range succ {
			ok, err := g.IsNeighbor(w, v)
			if err != nil {
				return DegreeStats{}, fmt.Errorf("Degrees: IsNeighbor(%d,%d): %w", w, v, err)
			}
			if ok {
				reciprocal++
			}
		}
	}

	return DegreeStats{
		Out:        distribution(out),
		In:         distribution(in),
		Diff:       distribution(diff),
		Edges:      edges,
		Reciprocal: reciprocal,
	}, nil
}

func distribution(deg []int) Distribution {
	if len(deg) == 0 {
		return Distribution{Count: []int64{}}
	}
	d := Distribution{}
	xs := make([]float64, len(deg))
	for i, x := range deg {
		d.Max = max(d.Max, x)
		xs[i] = float64(x)
	}
	d.Count = make([]int64, d.Max+1)
	for _, x := range deg {
		d.Count[x]++
	}
	d.Mean, d.StdDev = stat.PopMeanStdDev(xs, nil)
	return d
}
