package netfile

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/edsrzf/mmap-go"

	"github.com/katalvlaran/gcbfs/core"
)

// OfflineGraph is a text graph served from a read-only memory mapping.
// Only the per-vertex line offsets and out-degrees live on the heap.
// It is safe for concurrent readers.
type OfflineGraph struct {
	name   string
	data   mmap.MMap
	n      int
	edges  int64
	start  []int64 // byte offset of each vertex's successor tokens, -1 if absent
	degree []int32
}

var _ core.Graph = (*OfflineGraph)(nil)

// OpenOffline maps path and validates it fully, so later queries cannot
// fail on malformed data.
func OpenOffline(path string) (*OfflineGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netfile: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("netfile: stat %q: %w", path, err)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrFormat, path)
	}
	data, err := mmap.MapRegion(f, int(fi.Size()), mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("netfile: mmap %q: %w", path, err)
	}

	g := &OfflineGraph{name: BaseName(path), data: data}
	if err := g.index(); err != nil {
		_ = data.Unmap()
		return nil, err
	}
	return g, nil
}

// index walks every line once, recording offsets and checking ids.
func (g *OfflineGraph) index() error {
	data := []byte(g.data)
	pos, line := 0, 0
	header := true
	for pos < len(data) {
		end := bytes.IndexByte(data[pos:], '\n')
		if end < 0 {
			end = len(data)
		} else {
			end += pos
		}
		line++
		text := data[pos:end]
		lineStart := pos
		pos = end + 1

		fields := bytes.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if header {
			n, err := strconv.Atoi(string(fields[0]))
			if err != nil || len(fields) != 1 {
				return fmt.Errorf("%w: line %d: vertex count %q", ErrFormat, line, text)
			}
			if n <= 0 {
				return fmt.Errorf("%w: line %d: vertex count %d must be positive", ErrFormat, line, n)
			}
			g.n = n
			g.start = make([]int64, n)
			for i := range g.start {
				g.start[i] = -1
			}
			g.degree = make([]int32, n)
			header = false
			continue
		}

		v, err := parseVertex(fields[0], g.n, line)
		if err != nil {
			return err
		}
		if g.start[v] >= 0 {
			return fmt.Errorf("%w: line %d: multiple lines for vertex %d", ErrFormat, line, v)
		}
		for _, f := range fields[1:] {
			if _, err := parseVertex(f, g.n, line); err != nil {
				return err
			}
		}
		// successor tokens start right after the vertex token
		first := bytes.Index(text, fields[0]) + len(fields[0])
		g.start[v] = int64(lineStart + first)
		g.degree[v] = int32(len(fields) - 1)
		g.edges += int64(len(fields) - 1)
	}
	if header {
		return fmt.Errorf("%w: missing vertex count", ErrFormat)
	}
	return nil
}

// Close unmaps the file.
func (g *OfflineGraph) Close() error {
	if g.data == nil {
		return nil
	}
	err := g.data.Unmap()
	g.data = nil
	return err
}

// Name returns the file base name.
func (g *OfflineGraph) Name() string { return g.name }

// VertexCount returns N.
func (g *OfflineGraph) VertexCount() int { return g.n }

// EdgeCount returns the number of successor tokens in the file.
func (g *OfflineGraph) EdgeCount() int64 { return g.edges }

// Successors parses v's line and returns its successors sorted.
func (g *OfflineGraph) Successors(v int) ([]int, error) {
	if err := core.CheckVertex(v, g.n); err != nil {
		return nil, err
	}
	return g.parse(v, nil), nil
}

// OutDegree answers from the index without touching the mapping.
func (g *OfflineGraph) OutDegree(v int) (int, error) {
	if err := core.CheckVertex(v, g.n); err != nil {
		return 0, err
	}
	return int(g.degree[v]), nil
}

// InDegree is not tracked for offline graphs.
func (g *OfflineGraph) InDegree(int) (int, error) { return 0, core.ErrNotSupported }

// IsNeighbor scans v's line.
func (g *OfflineGraph) IsNeighbor(from, to int) (bool, error) {
	succ, err := g.Successors(from)
	if err != nil {
		return false, err
	}
	if err := core.CheckVertex(to, g.n); err != nil {
		return false, err
	}
	i := sort.SearchInts(succ, to)
	return i < len(succ) && succ[i] == to, nil
}

// Sweep streams every vertex in id order reusing one buffer.
func (g *OfflineGraph) Sweep(fn func(v int, successors []int) error) error {
	var buf []int
	for v := 0; v < g.n; v++ {
		buf = g.parse(v, buf[:0])
		if err := fn(v, buf); err != nil {
			return err
		}
	}
	return nil
}

// parse appends v's sorted successors to dst. The line was validated by
// index, so parse errors cannot happen here.
func (g *OfflineGraph) parse(v int, dst []int) []int {
	off := g.start[v]
	if off < 0 {
		return dst
	}
	data := []byte(g.data)
	end := bytes.IndexByte(data[off:], '\n')
	if end < 0 {
		end = len(data)
	} else {
		end += int(off)
	}
	base := len(dst)
	for _, f := range bytes.Fields(data[off:end]) {
		w, _ := strconv.Atoi(string(f))
		dst = append(dst, w)
	}
	sort.Ints(dst[base:])
	return dst
}
