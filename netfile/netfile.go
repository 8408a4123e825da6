package netfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/gcbfs/core"
)

// Ext is the file extension of text graphs.
const Ext = ".net"

// maxLine bounds a single vertex line.
const maxLine = 1 << 30

// ErrFormat reports a malformed text graph.
var ErrFormat = errors.New("netfile: malformed graph")

// Load parses a text graph from r.
func Load(r io.Reader, name string) (*core.AdjacencyList, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	n, line, err := readHeader(sc)
	if err != nil {
		return nil, err
	}
	g, err := core.NewAdjacencyList(n, core.WithName(name), core.WithLoops(), core.WithMultiEdges())
	if err != nil {
		return nil, err
	}
	seen := make([]bool, n)
	var succ []int
	for sc.Scan() {
		line++
		fields := bytes.Fields(sc.Bytes())
		if len(fields) == 0 {
			continue
		}
		v, err := parseVertex(fields[0], n, line)
		if err != nil {
			return nil, err
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: line %d: multiple lines for vertex %d", ErrFormat, line, v)
		}
		seen[v] = true

		succ = succ[:0]
		for _, f := range fields[1:] {
			w, err := parseVertex(f, n, line)
			if err != nil {
				return nil, err
			}
			succ = append(succ, w)
		}
		if err := g.SetSuccessors(v, succ); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("netfile: read %q: %w", name, err)
	}
	return g, nil
}

// LoadFile parses path; the graph is named after the path without its
// extension.
func LoadFile(path string) (*core.AdjacencyList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netfile: %w", err)
	}
	defer f.Close()
	return Load(f, BaseName(path))
}

// BaseName strips the ".net" extension, if any.
func BaseName(path string) string {
	if filepath.Ext(path) == Ext {
		return strings.TrimSuffix(path, Ext)
	}
	return path
}

// Write prints g in text form. Vertices are written in id order, each
// line listing the successors as returned by g.
func Write(w io.Writer, g core.Graph) error {
	return WriteMapped(w, g, nil)
}

// WriteMapped prints g translating vertex ids through ids when it is not
// nil: vertex v of g is printed as ids[v]. The output lists vertices in g's
// id order.
func WriteMapped(w io.Writer, g core.Graph, ids []int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, g.VertexCount()); err != nil {
		return err
	}
	var buf []byte
	err := core.Sweep(g, func(v int, succ []int) error {
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(translate(v, ids)), 10)
		for _, s := range succ {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(translate(s, ids)), 10)
		}
		buf = append(buf, '\n')
		_, err := bw.Write(buf)
		return err
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

func translate(v int, ids []int) int {
	if ids == nil {
		return v
	}
	return ids[v]
}

func readHeader(sc *bufio.Scanner) (int, int, error) {
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, line, fmt.Errorf("%w: line %d: vertex count %q", ErrFormat, line, text)
		}
		if n <= 0 {
			return 0, line, fmt.Errorf("%w: line %d: vertex count %d must be positive", ErrFormat, line, n)
		}
		return n, line, nil
	}
	if err := sc.Err(); err != nil {
		return 0, line, fmt.Errorf("netfile: %w", err)
	}
	return 0, line, fmt.Errorf("%w: missing vertex count", ErrFormat)
}

func parseVertex(tok []byte, n, line int) (int, error) {
	v, err := strconv.Atoi(string(tok))
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: token %q", ErrFormat, line, tok)
	}
	if v < 0 || v >= n {
		return 0, fmt.Errorf("%w: line %d: vertex %d out of [0,%d)", ErrFormat, line, v, n)
	}
	return v, nil
}
