package compressed

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/gcbfs/bitio"
	"github.com/katalvlaran/gcbfs/chunk"
	"github.com/katalvlaran/gcbfs/core"
	"github.com/katalvlaran/gcbfs/meta"
)

var (
	// ErrNodeOutOfRange reports a query for a node outside [0, N). It
	// wraps core.ErrVertexOutOfRange.
	ErrNodeOutOfRange = fmt.Errorf("compressed: %w", core.ErrVertexOutOfRange)

	// ErrFormat reports a bitstream that does not replay.
	ErrFormat = errors.New("compressed: corrupted bitstream")
)

// Option configures Open and Load.
type Option func(*options)

type options struct {
	info   *meta.Info
	logger zerolog.Logger
}

// WithInfo supplies the graph properties of a version 1.1 stream instead
// of reading the .info file.
func WithInfo(i meta.Info) Option {
	return func(o *options) { o.info = &i }
}

// WithLogger sets the logger for load events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Graph is a compressed graph in BFS id space. Successor lists are decoded
// on demand by replaying the chunk that holds the node.
//
// A Graph is not safe for concurrent use; Clone returns an independent
// view over the same blob for another goroutine.
type Graph struct {
	name    string
	info    meta.Info
	version meta.Version
	r       *bitio.Reader
	owner   bool

	// bit offset and first-child seed of every chunk
	offsets []int64
	firsts  []int

	dec *chunk.Decoder
	buf []int
}

var (
	_ core.Graph   = (*Graph)(nil)
	_ core.Sweeper = (*Graph)(nil)
)

// Open maps base+".gc" and indexes it. For version 1.1 streams the
// properties come from base+".info" unless WithInfo is given.
func Open(base string, opts ...Option) (*Graph, error) {
	r, err := bitio.Open(base + meta.GCExt)
	if err != nil {
		return nil, fmt.Errorf("compressed: %w", err)
	}
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	sidecar := func() (meta.Info, error) { return meta.ReadInfoFile(base) }
	if o.info != nil {
		info := *o.info
		sidecar = func() (meta.Info, error) { return info, nil }
	}
	g, err := load(r, filepath.Base(base), sidecar, o.logger)
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	g.owner = true
	return g, nil
}

// Load indexes an in-memory stream. Version 1.1 streams need WithInfo.
// The Graph does not take ownership of r.
func Load(r *bitio.Reader, name string, opts ...Option) (*Graph, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	var sidecar func() (meta.Info, error)
	if o.info != nil {
		info := *o.info
		sidecar = func() (meta.Info, error) { return info, nil }
	}
	return load(r, name, sidecar, o.logger)
}

func load(r *bitio.Reader, name string, sidecar func() (meta.Info, error), log zerolog.Logger) (*Graph, error) {
	began := time.Now()
	r.SetPosition(0)
	v, info, err := meta.ReadHeader(r, sidecar)
	if err != nil {
		return nil, fmt.Errorf("compressed: %s: %w", name, err)
	}
	g := &Graph{name: name, info: info, version: v, r: r}
	if err := g.index(r.Position()); err != nil {
		return nil, fmt.Errorf("compressed: %s: %w", name, err)
	}
	log.Info().
		Str("graph", name).
		Str("version", v.String()).
		Int("nodes", info.Nodes).
		Int("used", info.Used()).
		Int("chunks", len(g.offsets)).
		Dur("elapsed", time.Since(began)).
		Msg("compressed graph loaded")
	return g, nil
}

// index replays every chunk once, recording where each one starts and
// the first-child seed it needs.
func (g *Graph) index(pos int64) error {
	used, level := g.info.Used(), g.info.Level
	if used == 0 {
		return nil
	}
	d, err := chunk.NewDecoder(g.r.Fork(), level)
	if err != nil {
		return err
	}
	d.SetPosition(pos)
	chunks := (used + level - 1) / level
	g.offsets = make([]int64, chunks)
	g.firsts = make([]int, chunks)
	first := 0
	for c := 0; c < chunks; c++ {
		g.offsets[c], g.firsts[c] = d.Reader().Position(), first
		node := c * level
		first, err = d.Decode(node, min(used, node+level), first, func(*chunk.Row) bool { return true })
		if err != nil {
			return fmt.Errorf("%w: chunk %d: %w", ErrFormat, c, err)
		}
	}
	g.dec = d
	return nil
}

// Close releases the memory mapping when the Graph was opened from a file.
// Clones must not be used afterwards.
func (g *Graph) Close() error {
	if !g.owner {
		return nil
	}
	g.owner = false
	return g.r.Close()
}

// Clone returns a view sharing the blob and the index with its own decoder.
func (g *Graph) Clone() *Graph {
	c := *g
	c.owner = false
	c.buf = nil
	if g.dec != nil {
		c.dec, _ = chunk.NewDecoder(g.r.Fork(), g.info.Level)
	}
	return &c
}

// Name implements core.Graph.
func (g *Graph) Name() string { return g.name }

// VertexCount implements core.Graph.
func (g *Graph) VertexCount() int { return g.info.Nodes }

// EdgeCount is the edge count recorded at compression time.
func (g *Graph) EdgeCount() int64 { return g.info.Edges }

// Info returns the graph properties.
func (g *Graph) Info() meta.Info { return g.info }

// Version is the header layout of the stream.
func (g *Graph) Version() meta.Version { return g.version }

// Chunks is the number of chunks in the stream.
func (g *Graph) Chunks() int { return len(g.offsets) }

// row replays the chunk of v up to v and hands its row to fn. It returns
// false when v has no row (nodes in [used, N)).
func (g *Graph) row(v int, fn func(*chunk.Row)) (bool, error) {
	if v < 0 || v >= g.info.Nodes {
		return false, fmt.Errorf("%w: %d not in [0,%d)", ErrNodeOutOfRange, v, g.info.Nodes)
	}
	if v >= g.info.Used() {
		return false, nil
	}
	level := g.info.Level
	c := v / level
	node := c * level
	g.dec.SetPosition(g.offsets[c])
	found := false
	_, err := g.dec.Decode(node, min(g.info.Used(), node+level), g.firsts[c], func(r *chunk.Row) bool {
		if r.ID < v {
			return true
		}
		fn(r)
		found = true
		return false
	})
	if err != nil {
		return false, fmt.Errorf("%w: node %d: %w", ErrFormat, v, err)
	}
	if !found {
		return false, fmt.Errorf("%w: node %d not reached in chunk %d", ErrFormat, v, c)
	}
	return true, nil
}

// appendSuccessors appends the successors of r to dst, ascending. Tree
// children always follow the explicit values since they received their
// ids after every explicit successor.
func appendSuccessors(dst []int, r *chunk.Row) []int {
	dst = append(dst, r.Values...)
	for id := r.ChildStart; id < r.ChildStart+r.Children; id++ {
		dst = append(dst, id)
	}
	return dst
}

// Successors implements core.Graph. The returned slice is owned by the
// caller.
func (g *Graph) Successors(v int) ([]int, error) {
	var out []int
	ok, err := g.row(v, func(r *chunk.Row) { out = appendSuccessors(make([]int, 0, r.OutDegree()), r) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return []int{}, nil
	}
	return out, nil
}

// OutDegree implements core.Graph.
func (g *Graph) OutDegree(v int) (int, error) {
	deg := 0
	_, err := g.row(v, func(r *chunk.Row) { deg = r.OutDegree() })
	return deg, err
}

// InDegree is not available from the forward stream.
func (g *Graph) InDegree(v int) (int, error) {
	if v < 0 || v >= g.info.Nodes {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrNodeOutOfRange, v, g.info.Nodes)
	}
	return 0, core.ErrNotSupported
}

// IsNeighbor implements core.Graph.
func (g *Graph) IsNeighbor(from, to int) (bool, error) {
	if to < 0 || to >= g.info.Nodes {
		return false, fmt.Errorf("%w: %d not in [0,%d)", ErrNodeOutOfRange, to, g.info.Nodes)
	}
	found := false
	_, err := g.row(from, func(r *chunk.Row) {
		if to >= r.ChildStart && to < r.ChildStart+r.Children {
			found = true
			return
		}
		i := sort.SearchInts(r.Values, to)
		found = i < len(r.Values) && r.Values[i] == to
	})
	return found, err
}
