package compress

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/katalvlaran/gcbfs/bfs"
	"github.com/katalvlaran/gcbfs/bitio"
	"github.com/katalvlaran/gcbfs/chunk"
	"github.com/katalvlaran/gcbfs/core"
	"github.com/katalvlaran/gcbfs/meta"
	"github.com/katalvlaran/gcbfs/picode"
)

// Result summarizes a compression run.
type Result struct {
	// BFS is the relabeling outcome; nil for Pack.
	BFS *bfs.Result
	// Info are the graph properties written to the header or .info file.
	Info meta.Info
	// Bits is the size of the bitstream, header included.
	Bits int64
	// Stats accumulates the statistics of every chunk.
	Stats chunk.Stats
}

// IDs is the original id → BFS id map, nil for Pack.
func (r *Result) IDs() []int {
	if r.BFS == nil {
		return nil
	}
	return r.BFS.IDs
}

// BitsPerLink is the stream size divided by the number of edges.
func (r *Result) BitsPerLink() float64 {
	if r.Info.Edges == 0 {
		return 0
	}
	return float64(r.Bits) / float64(r.Info.Edges)
}

// encoder is the RowSink turning relabeled rows into chunks. A nil enc
// only produces the intermediate text.
type encoder struct {
	c      *chunk.Chunk
	enc    *picode.Encoder
	parsed *bufio.Writer
	stats  chunk.Stats
}

func newEncoder(o *Options, w *bitio.Writer) (*encoder, error) {
	var copts []chunk.Option
	if o.Fast {
		copts = append(copts, chunk.WithFast())
	}
	c, err := chunk.New(o.Level, copts...)
	if err != nil {
		return nil, err
	}
	e := &encoder{c: c}
	if w != nil {
		e.enc = picode.NewEncoder(w)
	}
	if o.Parsed != nil {
		e.parsed = bufio.NewWriterSize(o.Parsed, 1<<16)
	}
	return e, nil
}

// Row implements bfs.RowSink.
func (e *encoder) Row(r bfs.Row) error {
	if e.c.Full() {
		if err := e.flush(); err != nil {
			return err
		}
	}
	if e.c.Len() == 0 {
		e.c.Reset(r.ID)
	}
	if err := e.c.AddRow(r.Children, r.Successors); err != nil {
		return fmt.Errorf("compress: row %d (node %d): %w", r.ID, r.Node, err)
	}
	return nil
}

// flush serializes the pending chunk and empties it.
func (e *encoder) flush() error {
	if e.c.Len() == 0 {
		return nil
	}
	if e.parsed != nil {
		if err := e.c.WriteText(e.parsed); err != nil {
			return fmt.Errorf("compress: write parsed rows: %w", err)
		}
	}
	if e.enc != nil {
		if err := e.encode(); err != nil {
			return err
		}
	}
	e.c.Reset(0)
	return nil
}

// encode optimizes and writes the chunk, checking the planned size.
func (e *encoder) encode() error {
	e.c.Optimize()
	planned := e.c.Plan()
	written, err := e.c.Encode(e.enc)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	if planned != written {
		return fmt.Errorf("%w: chunk %d planned %d bits, wrote %d", ErrCostMismatch, e.stats.Chunks, planned, written)
	}
	e.stats.Add(e.c.Stats())
	return nil
}

func (e *encoder) close() error {
	if err := e.flush(); err != nil {
		return err
	}
	if e.parsed != nil {
		if err := e.parsed.Flush(); err != nil {
			return fmt.Errorf("compress: write parsed rows: %w", err)
		}
	}
	return nil
}

// graphInfo collects the properties written before the first chunk.
func graphInfo(g core.Graph, o *Options) (meta.Info, error) {
	info := meta.Info{
		Nodes: g.VertexCount(),
		Edges: g.EdgeCount(),
		Level: o.Level,
		Root:  o.Root,
	}
	if !o.Identity {
		iso, err := core.CountIsolated(g)
		if err != nil {
			return meta.Info{}, fmt.Errorf("compress: count isolated vertices: %w", err)
		}
		info.Isolated = iso
	}
	return info, info.Validate()
}

// Compress relabels g and writes its compressed bitstream to out in one
// pass. A nil out runs a simulation: every chunk is planned and encoded
// into a discarding writer, so the sizes are exact but nothing is kept.
//
// With the default version 1.1 the graph properties are not part of the
// stream; callers persist Result.Info with meta.WriteInfoFile.
func Compress(g core.Graph, out io.Writer, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := build(DefaultOptions(), opts)
	if err != nil {
		return nil, err
	}
	began := time.Now()

	info, err := graphInfo(g, &o)
	if err != nil {
		return nil, err
	}
	w := bitio.NewWriter(out)
	if _, err := meta.WriteHeader(w, o.Version, info); err != nil {
		return nil, fmt.Errorf("compress: header: %w", err)
	}
	e, err := newEncoder(&o, w)
	if err != nil {
		return nil, err
	}
	res, err := run(g, e, &o, info)
	if err != nil {
		return nil, err
	}
	bits, err := w.Close()
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	res.Bits = bits

	o.Logger.Info().
		Str("graph", g.Name()).
		Int("nodes", info.Nodes).
		Int64("edges", info.Edges).
		Int("isolated", info.Isolated).
		Int64("chunks", res.Stats.Chunks).
		Int64("bits", bits).
		Float64("bits_per_link", res.BitsPerLink()).
		Dur("elapsed", time.Since(began)).
		Msg("compression completed")
	return res, nil
}

// Parse runs the relabeling only and writes the intermediate text to
// parsed. The result carries the id map and the properties Pack needs.
func Parse(g core.Graph, parsed io.Writer, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if parsed == nil {
		return nil, fmt.Errorf("%w: nil parsed writer", ErrOptionViolation)
	}
	o, err := build(DefaultOptions(), append(opts, WithParsed(parsed)))
	if err != nil {
		return nil, err
	}
	info, err := graphInfo(g, &o)
	if err != nil {
		return nil, err
	}
	e, err := newEncoder(&o, nil)
	if err != nil {
		return nil, err
	}
	res, err := run(g, e, &o, info)
	if err != nil {
		return nil, err
	}
	o.Logger.Info().
		Str("graph", g.Name()).
		Int("rows", res.BFS.Used).
		Msg("parse completed")
	return res, nil
}

// run drives the relabeling into e and checks the row count.
func run(g core.Graph, e *encoder, o *Options, info meta.Info) (*Result, error) {
	br, err := bfs.Relabel(g, e, o.bfsOptions()...)
	if err != nil {
		return nil, err
	}
	if err := e.close(); err != nil {
		return nil, err
	}
	if br.Used != info.Used() {
		return nil, fmt.Errorf("%w: relabeled %d rows, expected %d", ErrRowCount, br.Used, info.Used())
	}
	return &Result{BFS: br, Info: info, Stats: e.stats}, nil
}

// Pack is the second phase of two-phase compression: it reads the
// intermediate text written by Parse and encodes it chunk by chunk. The
// chunk level is taken from info. Pack writes version 1 unless
// WithVersion says otherwise.
func Pack(parsed io.Reader, info meta.Info, out io.Writer, opts ...Option) (*Result, error) {
	base := DefaultOptions()
	base.Version = meta.V1
	o, err := build(base, opts)
	if err != nil {
		return nil, err
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if info.Level <= 0 {
		// nothing to encode, any positive level will do
		info.Level = DefaultLevel
	}
	o.Level = info.Level
	o.Parsed = nil
	began := time.Now()

	w := bitio.NewWriter(out)
	if _, err := meta.WriteHeader(w, o.Version, info); err != nil {
		return nil, fmt.Errorf("compress: header: %w", err)
	}
	e, err := newEncoder(&o, w)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(parsed, 1<<16)
	rows := 0
	for {
		select {
		case <-o.Ctx.Done():
			return nil, o.Ctx.Err()
		default:
		}
		n, err := e.c.ReadText(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("compress: chunk %d: %w", e.stats.Chunks, err)
		}
		if err := e.encode(); err != nil {
			return nil, err
		}
		rows += n
		if n < info.Level {
			break
		}
	}
	if rows != info.Used() {
		return nil, fmt.Errorf("%w: %d parsed rows, expected %d", ErrRowCount, rows, info.Used())
	}
	bits, err := w.Close()
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	res := &Result{Info: info, Bits: bits, Stats: e.stats}
	o.Logger.Info().
		Int("rows", rows).
		Int64("chunks", res.Stats.Chunks).
		Int64("bits", bits).
		Dur("elapsed", time.Since(began)).
		Msg("pack completed")
	return res, nil
}
