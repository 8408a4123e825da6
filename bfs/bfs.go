package bfs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/katalvlaran/gcbfs/core"
)

// progressStep is the percentage between two progress log events.
const progressStep = 2

// walker encapsulates mutable BFS state.
type walker struct {
	graph core.Graph
	sink  RowSink
	opts  Options
	ctx   context.Context
	n     int

	ids   []int
	next  int
	queue []int
	res   *Result

	// per-row scratch
	stamp  []int32
	epoch  int32
	fresh  []int
	old    []int
	began  time.Time
	logged int
}

// Graph implements Scope.
func (w *walker) Graph() core.Graph { return w.graph }

// ID implements Scope.
func (w *walker) ID(node int) int {
	if node < 0 || node >= w.n {
		return -1
	}
	return w.ids[node]
}

// Relabel runs the relabeling traversal of g, emitting one Row per
// assigned id to sink in id order.
// Returns ErrGraphNil, ErrSinkNil, ErrRootOutOfRange or ErrOptionViolation
// for invalid input, ErrNeighbors for graph failures, or the first sink or
// ordering error.
func Relabel(g core.Graph, sink RowSink, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if sink == nil {
		return nil, ErrSinkNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := g.VertexCount()
	if n > 0 && o.Root >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrRootOutOfRange, o.Root, n)
	}

	w := &walker{
		graph: g,
		sink:  sink,
		opts:  o,
		ctx:   o.Ctx,
		n:     n,
		ids:   make([]int, n),
		stamp: make([]int32, n),
		began: time.Now(),
		res:   &Result{Root: o.Root},
	}
	for i := range w.ids {
		w.ids[i] = -1
	}

	var err error
	if o.Identity {
		err = w.identity()
	} else {
		if err = o.Ordering.Begin(w); err == nil {
			err = w.traverse()
		}
	}
	if err != nil {
		return nil, err
	}

	w.res.IDs = w.ids
	w.res.Used = w.next
	o.Logger.Info().
		Int("rows", w.res.Used).
		Int("roots", w.res.Roots).
		Int64("tree_edges", w.res.TreeEdges).
		Dur("elapsed", time.Since(w.began)).
		Msg("bfs completed")
	return w.res, nil
}

// identity emits every vertex in id order without relabeling.
func (w *walker) identity() error {
	for v := 0; v < w.n; v++ {
		w.ids[v] = v
	}
	w.next = w.n
	for v := 0; v < w.n; v++ {
		if err := w.checkContext(); err != nil {
			return err
		}
		w.opts.OnDequeue(v, v)
		if err := w.expand(v); err != nil {
			return err
		}
	}
	return nil
}

// traverse runs FIFO BFS from successive roots until every vertex with an
// out-edge has an id.
func (w *walker) traverse() error {
	// Roots are searched circularly from the requested root. A vertex
	// skipped once stays ineligible, so one cursor covers all restarts.
	cursor, scanned := w.opts.Root, 0
	for {
		root := -1
		for ; scanned < w.n; scanned++ {
			v := cursor
			cursor = (cursor + 1) % w.n
			if w.ids[v] != -1 {
				continue
			}
			deg, err := w.graph.OutDegree(v)
			if err != nil {
				return fmt.Errorf("%w: out-degree of %d: %v", ErrNeighbors, v, err)
			}
			if deg > 0 {
				root = v
				scanned++
				break
			}
		}
		if root == -1 {
			return nil
		}
		w.res.Roots++
		if err := w.enqueue(root); err != nil {
			return err
		}
		if err := w.loop(); err != nil {
			return err
		}
	}
}

// enqueue assigns the next id to node, calls OnEnqueue and queues it.
func (w *walker) enqueue(node int) error {
	id := w.next
	w.ids[node] = id
	w.next++
	w.queue = append(w.queue, node)
	w.opts.OnEnqueue(node, id)
	return w.opts.Ordering.Enqueued(node)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		if err := w.checkContext(); err != nil {
			return err
		}
		node := w.dequeue()
		if err := w.opts.Ordering.Expanding(node); err != nil {
			return fmt.Errorf("%w: %v", ErrNeighbors, err)
		}
		if err := w.expand(node); err != nil {
			return err
		}
	}
	return nil
}

// dequeue pops the first vertex and invokes OnDequeue.
func (w *walker) dequeue() int {
	node := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(node, w.ids[node])
	return node
}

// expand splits the successors of node into fresh and already numbered
// vertices, numbers the fresh ones and emits the row.
func (w *walker) expand(node int) error {
	succ, err := w.graph.Successors(node)
	if err != nil {
		return fmt.Errorf("%w: failed to get successors of %d: %v", ErrNeighbors, node, err)
	}

	w.epoch++
	w.fresh, w.old = w.fresh[:0], w.old[:0]
	for _, s := range succ {
		if err := core.CheckVertex(s, w.n); err != nil {
			return fmt.Errorf("%w: successor of %d: %v", ErrNeighbors, node, err)
		}
		// parallel edges collapse into one
		if w.stamp[s] == w.epoch {
			continue
		}
		w.stamp[s] = w.epoch
		if id := w.ids[s]; id == -1 {
			w.fresh = append(w.fresh, s)
		} else {
			w.old = append(w.old, id)
		}
	}

	if len(w.fresh) > 0 {
		if err := w.opts.Ordering.Sort(w.fresh); err != nil {
			return fmt.Errorf("bfs: ordering children of %d: %w", node, err)
		}
		for _, c := range w.fresh {
			if err := w.enqueue(c); err != nil {
				return fmt.Errorf("%w: %v", ErrNeighbors, err)
			}
		}
		w.res.TreeEdges += int64(len(w.fresh))
	}
	sort.Ints(w.old)

	row := Row{Node: node, ID: w.ids[node], Children: len(w.fresh), Successors: w.old}
	if err := w.sink.Row(row); err != nil {
		return fmt.Errorf("bfs: row %d: %w", row.ID, err)
	}
	w.progress(row.ID + 1)
	return nil
}

func (w *walker) checkContext() error {
	select {
	case <-w.ctx.Done():
		return w.ctx.Err()
	default:
		return nil
	}
}

// progress logs every progressStep percent of processed rows.
func (w *walker) progress(rows int) {
	if w.n == 0 {
		return
	}
	p := 100 * rows / w.n
	if p < w.logged+progressStep {
		return
	}
	w.logged = p
	w.opts.Logger.Debug().
		Int("percent", p).
		Int("rows", rows).
		Dur("elapsed", time.Since(w.began)).
		Msg("bfs progress")
}
