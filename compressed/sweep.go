package compressed

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gcbfs/chunk"
)

// decodeChunk replays chunk c with d, calling fn for every row with its
// successor list in buf. The list is only valid during the call.
func (g *Graph) decodeChunk(d *chunk.Decoder, c int, buf *[]int, fn func(v int, successors []int) error) error {
	level, used := g.info.Level, g.info.Used()
	node := c * level
	d.SetPosition(g.offsets[c])
	var ferr error
	_, err := d.Decode(node, min(used, node+level), g.firsts[c], func(r *chunk.Row) bool {
		*buf = appendSuccessors((*buf)[:0], r)
		ferr = fn(r.ID, *buf)
		return ferr == nil
	})
	if err != nil {
		return fmt.Errorf("%w: chunk %d: %w", ErrFormat, c, err)
	}
	return ferr
}

// Sweep implements core.Sweeper: every node in id order, chunks decoded
// once each. Nodes without a row get an empty list.
func (g *Graph) Sweep(fn func(v int, successors []int) error) error {
	for c := range g.offsets {
		if err := g.decodeChunk(g.dec, c, &g.buf, fn); err != nil {
			return err
		}
	}
	return g.sweepTail(fn)
}

func (g *Graph) sweepTail(fn func(v int, successors []int) error) error {
	for v := g.info.Used(); v < g.info.Nodes; v++ {
		if err := fn(v, nil); err != nil {
			return err
		}
	}
	return nil
}

// OutDegrees returns the out-degree of every node.
func (g *Graph) OutDegrees() ([]int, error) {
	deg := make([]int, g.info.Nodes)
	err := g.Sweep(func(v int, succ []int) error {
		deg[v] = len(succ)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deg, nil
}

// ParallelSweep decodes chunks concurrently on at most workers goroutines
// (GOMAXPROCS when workers <= 0). Rows of one chunk reach fn in id order;
// chunks are visited in no particular order, so fn must be safe for
// concurrent use. The first error cancels the remaining chunks.
func (g *Graph) ParallelSweep(ctx context.Context, workers int, fn func(v int, successors []int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	// one decoder per chunk batch keeps the column buffers warm
	chunks := len(g.offsets)
	batch := max(1, chunks/(4*workers))
	for lo := 0; lo < chunks; lo += batch {
		lo := lo
		hi := min(chunks, lo+batch)
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			d, err := chunk.NewDecoder(g.r.Fork(), g.info.Level)
			if err != nil {
				return err
			}
			var buf []int
			for c := lo; c < hi; c++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := g.decodeChunk(d, c, &buf, fn); err != nil {
					return err
				}
			}
			return nil
		})
	}
	eg.Go(func() error { return g.sweepTail(fn) })
	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
