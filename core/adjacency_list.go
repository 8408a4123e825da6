package core

import (
	"fmt"
	"sort"
	"sync"
)

// AdjacencyList is an in-memory directed graph over [0, n) with sorted
// successor lists and incrementally maintained in-degrees.
type AdjacencyList struct {
	mu         sync.RWMutex
	name       string
	allowLoops bool
	allowMulti bool
	succ       [][]int
	inDeg      []int
	edges      int64
}

// NewAdjacencyList returns an edgeless graph with n vertices.
func NewAdjacencyList(n int, opts ...Option) (*AdjacencyList, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	g := &AdjacencyList{
		succ:  make([][]int, n),
		inDeg: make([]int, n),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name returns the graph label.
func (g *AdjacencyList) Name() string { return g.name }

// VertexCount returns N.
func (g *AdjacencyList) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.succ)
}

// EdgeCount returns the number of stored edges, parallel edges included.
func (g *AdjacencyList) EdgeCount() int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

// AddEdge inserts from→to keeping the successor list sorted.
func (g *AdjacencyList) AddEdge(from, to int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.succ)
	if err := CheckVertex(from, n); err != nil {
		return fmt.Errorf("AddEdge(%d,%d): %w", from, to, err)
	}
	if err := CheckVertex(to, n); err != nil {
		return fmt.Errorf("AddEdge(%d,%d): %w", from, to, err)
	}
	if from == to && !g.allowLoops {
		return fmt.Errorf("AddEdge(%d,%d): %w", from, to, ErrLoopNotAllowed)
	}

	list := g.succ[from]
	i := sort.SearchInts(list, to)
	if i < len(list) && list[i] == to && !g.allowMulti {
		return fmt.Errorf("AddEdge(%d,%d): %w", from, to, ErrMultiEdgeNotAllowed)
	}
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = to
	g.succ[from] = list

	g.inDeg[to]++
	g.edges++
	return nil
}

// SetSuccessors replaces the successor list of v with a sorted copy of succ.
func (g *AdjacencyList) SetSuccessors(v int, succ []int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.succ)
	if err := CheckVertex(v, n); err != nil {
		return fmt.Errorf("SetSuccessors(%d): %w", v, err)
	}
	list := append([]int(nil), succ...)
	sort.Ints(list)
	for i, w := range list {
		if err := CheckVertex(w, n); err != nil {
			return fmt.Errorf("SetSuccessors(%d): %w", v, err)
		}
		if w == v && !g.allowLoops {
			return fmt.Errorf("SetSuccessors(%d): %w", v, ErrLoopNotAllowed)
		}
		if i > 0 && list[i-1] == w && !g.allowMulti {
			return fmt.Errorf("SetSuccessors(%d): successor %d: %w", v, w, ErrMultiEdgeNotAllowed)
		}
	}

	for _, w := range g.succ[v] {
		g.inDeg[w]--
	}
	g.edges -= int64(len(g.succ[v]))
	for _, w := range list {
		g.inDeg[w]++
	}
	g.edges += int64(len(list))
	g.succ[v] = list
	return nil
}

// Successors returns the sorted out-neighbors of v (shared, read-only).
func (g *AdjacencyList) Successors(v int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := CheckVertex(v, len(g.succ)); err != nil {
		return nil, err
	}
	return g.succ[v], nil
}

// OutDegree returns the number of out-edges of v.
func (g *AdjacencyList) OutDegree(v int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := CheckVertex(v, len(g.succ)); err != nil {
		return 0, err
	}
	return len(g.succ[v]), nil
}

// InDegree returns the number of in-edges of v.
func (g *AdjacencyList) InDegree(v int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := CheckVertex(v, len(g.inDeg)); err != nil {
		return 0, err
	}
	return g.inDeg[v], nil
}

// IsNeighbor reports whether from→to exists. Complexity: O(log d).
func (g *AdjacencyList) IsNeighbor(from, to int) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := len(g.succ)
	if err := CheckVertex(from, n); err != nil {
		return false, err
	}
	if err := CheckVertex(to, n); err != nil {
		return false, err
	}
	list := g.succ[from]
	i := sort.SearchInts(list, to)
	return i < len(list) && list[i] == to, nil
}

// Sweep calls fn for every vertex in id order while holding the read lock.
func (g *AdjacencyList) Sweep(fn func(v int, successors []int) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for v, list := range g.succ {
		if err := fn(v, list); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy carrying the same options.
func (g *AdjacencyList) Clone() *AdjacencyList {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c := &AdjacencyList{
		name:       g.name,
		allowLoops: g.allowLoops,
		allowMulti: g.allowMulti,
		succ:       make([][]int, len(g.succ)),
		inDeg:      append([]int(nil), g.inDeg...),
		edges:      g.edges,
	}
	for v, list := range g.succ {
		c.succ[v] = append([]int(nil), list...)
	}
	return c
}
