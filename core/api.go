package core

import "errors"

// Sweep visits every vertex of g in id order. Graphs implementing Sweeper
// stream natively; others are walked with one Successors call per vertex.
func Sweep(g Graph, fn func(v int, successors []int) error) error {
	if s, ok := g.(Sweeper); ok {
		return s.Sweep(fn)
	}
	n := g.VertexCount()
	for v := 0; v < n; v++ {
		succ, err := g.Successors(v)
		if err != nil {
			return err
		}
		if err := fn(v, succ); err != nil {
			return err
		}
	}
	return nil
}

// InDegrees returns the in-degree of every vertex. It asks g first and
// falls back to counting successors in a single sweep when g reports
// ErrNotSupported.
func InDegrees(g Graph) ([]int, error) {
	n := g.VertexCount()
	deg := make([]int, n)
	if n == 0 {
		return deg, nil
	}
	if _, err := g.InDegree(0); err == nil {
		for v := range deg {
			if deg[v], err = g.InDegree(v); err != nil {
				return nil, err
			}
		}
		return deg, nil
	} else if !errors.Is(err, ErrNotSupported) {
		return nil, err
	}

	err := Sweep(g, func(_ int, succ []int) error {
		for _, w := range succ {
			if err := CheckVertex(w, n); err != nil {
				return err
			}
			deg[w]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deg, nil
}

// CountIsolated returns the number of vertices with neither in- nor
// out-edges.
func CountIsolated(g Graph) (int, error) {
	n := g.VertexCount()
	touched := make([]bool, n)
	err := Sweep(g, func(v int, succ []int) error {
		if len(succ) == 0 {
			return nil
		}
		touched[v] = true
		for _, w := range succ {
			if err := CheckVertex(w, n); err != nil {
				return err
			}
			touched[w] = true
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	isolated := 0
	for _, t := range touched {
		if !t {
			isolated++
		}
	}
	return isolated, nil
}
