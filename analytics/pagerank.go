package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/gcbfs/core"
)

// PageRank runs steps rounds of the power iteration with damping factor
// alpha and returns one rank per vertex. The ranks sum to 1. Vertices
// without successors hand their rank to every vertex evenly.
//
// Each round is one core.Sweep, so g is read sequentially.
func PageRank(g core.Graph, steps int, alpha float64) ([]float64, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("PageRank: alpha=%g: %w", alpha, ErrBadAlpha)
	}
	if steps < 0 {
		return nil, fmt.Errorf("PageRank: steps=%d: %w", steps, ErrBadSteps)
	}
	n := g.VertexCount()
	ranks := make([]float64, n)
	if n == 0 {
		return ranks, nil
	}

	dangling := make([]bool, n)
	err := core.Sweep(g, func(v int, succ []int) error {
		dangling[v] = len(succ) == 0
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("PageRank: %w", err)
	}

	floats.AddConst(1/float64(n), ranks)
	// teleport share: (1−alpha) of the total plus alpha of the dangling mass
	k := ((1-alpha)*floats.Sum(ranks) + alpha*danglingMass(ranks, dangling)) / float64(n)

	next := make([]float64, n)
	for step := 0; step < steps; step++ {
		clear(next)
		err := core.Sweep(g, func(v int, succ []int) error {
			if len(succ) == 0 {
				return nil
			}
			share := ranks[v] / float64(len(succ))
			for _, w := range succ {
				if err := core.CheckVertex(w, n); err != nil {
					return err
				}
				next[w] += share
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("PageRank: step %d: %w", step, err)
		}
		floats.Scale(alpha, next)
		floats.AddConst(k, next)
		ranks, next = next, ranks
		k = ((1-alpha)*floats.Sum(ranks) + alpha*danglingMass(ranks, dangling)) / float64(n)
	}
	return ranks, nil
}

func danglingMass(ranks []float64, dangling []bool) float64 {
	s := 0.0
	for v, d := range dangling {
		if d {
			s += ranks[v]
		}
	}
	return s
}

// Top returns the indices of the k largest values, largest first. Ties
// come out in no particular order. values is not modified.
func Top(values []float64, k int) []int {
	k = max(0, min(k, len(values)))
	sorted := append([]float64(nil), values...)
	inds := make([]int, len(values))
	floats.Argsort(sorted, inds)
	top := make([]int, k)
	for i := 0; i < k; i++ {
		top[i] = inds[len(inds)-1-i]
	}
	return top
}
