package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and queries.
var (
	// ErrVertexOutOfRange indicates a vertex id outside [0, VertexCount()).
	ErrVertexOutOfRange = errors.New("core: vertex out of range")

	// ErrNegativeSize indicates a negative vertex count.
	ErrNegativeSize = errors.New("core: negative vertex count")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrNotSupported is returned by optional capabilities an implementation lacks.
	ErrNotSupported = errors.New("core: operation not supported")
)

// Graph is the read-only capability consumed by the relabeling scheduler,
// the analytics helpers and the ASCII writer.
type Graph interface {
	// Name is a human-readable label, usually the source file base name.
	Name() string

	// VertexCount is N; vertices are [0, N).
	VertexCount() int

	// EdgeCount is the number of stored edges.
	EdgeCount() int64

	// Successors returns the out-neighbors of v. The slice may be shared
	// with the implementation and must not be modified.
	Successors(v int) ([]int, error)

	// OutDegree returns len(Successors(v)) without materializing the list
	// where the implementation allows it.
	OutDegree(v int) (int, error)

	// InDegree returns the number of edges entering v, or ErrNotSupported.
	InDegree(v int) (int, error)

	// IsNeighbor reports whether the edge from→to exists.
	IsNeighbor(from, to int) (bool, error)
}

// Sweeper is implemented by graphs that can stream every vertex in id order
// more cheaply than N random Successors calls. The successors slice passed
// to fn is only valid during the call.
type Sweeper interface {
	Sweep(fn func(v int, successors []int) error) error
}

// Option configures an AdjacencyList.
type Option func(*AdjacencyList)

// WithName sets the label reported by Name.
func WithName(name string) Option {
	return func(g *AdjacencyList) { g.name = name }
}

// WithLoops permits self-loops.
func WithLoops() Option {
	return func(g *AdjacencyList) { g.allowLoops = true }
}

// WithMultiEdges permits parallel edges.
func WithMultiEdges() Option {
	return func(g *AdjacencyList) { g.allowMulti = true }
}

// CheckVertex returns ErrVertexOutOfRange unless 0 <= v < n.
func CheckVertex(v, n int) error {
	if v < 0 || v >= n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrVertexOutOfRange, v, n)
	}
	return nil
}
