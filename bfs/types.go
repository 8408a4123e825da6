// Package bfs provides tunable options and error definitions for the
// breadth-first relabeling scheduler.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Sentinel errors for BFS execution.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrSinkNil is returned if a nil RowSink is passed.
	ErrSinkNil = errors.New("bfs: row sink is nil")

	// ErrRootOutOfRange is returned when the requested root is not a vertex.
	ErrRootOutOfRange = errors.New("bfs: root out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNeighbors is returned when fetching successors from the graph fails.
	ErrNeighbors = errors.New("bfs: neighbor iteration error")
)

// Row is one relabeled vertex, emitted in BFS id order.
//
// Successors holds the new ids of the successors that already had an id
// when the vertex was expanded (the non-tree edges), sorted ascending and
// deduplicated. The slice is reused between rows; sinks must copy it to
// retain it.
type Row struct {
	Node       int // original id
	ID         int // BFS id
	Children   int // tree children enqueued while expanding the row
	Successors []int
}

// RowSink consumes rows. Returning an error aborts the traversal.
type RowSink interface {
	Row(r Row) error
}

// RowSinkFunc adapts a function to RowSink.
type RowSinkFunc func(r Row) error

// Row implements RowSink.
func (f RowSinkFunc) Row(r Row) error { return f(r) }

// Option configures BFS behavior via functional arguments.
// If an Option is invalid it is recorded internally and surfaced as
// ErrOptionViolation when Relabel is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize the traversal.
type Options struct {
	// Ctx allows cancellation; it is checked once per dequeued vertex.
	Ctx context.Context

	// Root is where the search for the first BFS root starts.
	Root int

	// Identity disables relabeling: every vertex keeps its id, every vertex
	// (isolated ones included) becomes a row and no tree edges are removed.
	Identity bool

	// Ordering sorts the newly discovered successors of a vertex before
	// they receive ids.
	Ordering Ordering

	// OnEnqueue is called when a vertex receives its BFS id.
	OnEnqueue func(node, id int)

	// OnDequeue is called immediately before a vertex is expanded.
	OnDequeue func(node, id int)

	// Logger receives progress events.
	Logger zerolog.Logger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - root 0
//   - the reference-count ordering heuristic
//   - no-op hooks and a disabled logger.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Ordering:  NewRefCountOrdering(),
		OnEnqueue: func(int, int) {},
		OnDequeue: func(int, int) {},
		Logger:    zerolog.Nop(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithRoot sets where the first root search starts. Negative roots are an
// ErrOptionViolation; roots beyond the graph are reported by Relabel.
func WithRoot(root int) Option {
	return func(o *Options) {
		if root < 0 {
			o.err = fmt.Errorf("%w: root cannot be negative (%d)", ErrOptionViolation, root)
			return
		}
		o.Root = root
	}
}

// WithIdentity selects the degenerate identity mode.
func WithIdentity() Option {
	return func(o *Options) { o.Identity = true }
}

// WithOrdering replaces the child ordering policy.
func WithOrdering(ord Ordering) Option {
	return func(o *Options) {
		if ord == nil {
			o.err = fmt.Errorf("%w: nil ordering", ErrOptionViolation)
			return
		}
		o.Ordering = ord
	}
}

// WithOnEnqueue registers a callback run when a vertex gets its id.
func WithOnEnqueue(fn func(node, id int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback run before a vertex is expanded.
func WithOnDequeue(fn func(node, id int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithLogger sets the progress logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Result holds the outcome of a relabeling:
//   - IDs: original id → BFS id, -1 for vertices that were never reached
//     (isolated vertices).
//   - Used: number of assigned ids (rows emitted).
//   - TreeEdges: edges replaced by traverse-list entries.
//   - Roots: number of BFS trees.
//   - Root: the requested root, recorded in the graph properties.
type Result struct {
	IDs       []int
	Used      int
	TreeEdges int64
	Roots     int
	Root      int
}

// Isolated is the number of vertices without an id.
func (r *Result) Isolated() int { return len(r.IDs) - r.Used }
