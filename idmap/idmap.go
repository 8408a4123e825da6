// Package idmap persists the original-id → BFS-id mapping produced by the
// relabeling scheduler (".map" files, one decimal line per original id,
// -1 for isolated vertices).
package idmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Ext is the id map file extension.
const Ext = ".map"

var (
	// ErrMissing reports an absent map file; callers may continue with
	// BFS ids only.
	ErrMissing = errors.New("idmap: map file missing")

	// ErrFormat reports a malformed map file.
	ErrFormat = errors.New("idmap: malformed map file")
)

// Write prints one line per original id.
func Write(w io.Writer, ids []int) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, id := range ids {
		buf = strconv.AppendInt(buf[:0], int64(id), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes base+".map".
func WriteFile(base string, ids []int) error {
	f, err := os.Create(base + Ext)
	if err != nil {
		return fmt.Errorf("idmap: %w", err)
	}
	if err := Write(f, ids); err != nil {
		f.Close()
		return fmt.Errorf("idmap: write %s: %w", f.Name(), err)
	}
	return f.Close()
}

// Read parses exactly n lines. Every value must be -1 or a BFS id in
// [0, used), and BFS ids must not repeat.
func Read(r io.Reader, n, used int) ([]int, error) {
	sc := bufio.NewScanner(r)
	ids := make([]int, n)
	seen := make([]bool, used)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("idmap: %w", err)
			}
			return nil, fmt.Errorf("%w: %d lines, want %d", ErrFormat, i, n)
		}
		text := strings.TrimSpace(sc.Text())
		id, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrFormat, i+1, text)
		}
		if id < -1 || id >= used {
			return nil, fmt.Errorf("%w: line %d: id %d out of [-1,%d)", ErrFormat, i+1, id, used)
		}
		if id >= 0 {
			if seen[id] {
				return nil, fmt.Errorf("%w: line %d: id %d assigned twice", ErrFormat, i+1, id)
			}
			seen[id] = true
		}
		ids[i] = id
	}
	return ids, nil
}

// ReadFile reads base+".map", reporting ErrMissing when it does not exist.
func ReadFile(base string, n, used int) ([]int, error) {
	f, err := os.Open(base + Ext)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissing, base+Ext)
	}
	if err != nil {
		return nil, fmt.Errorf("idmap: %w", err)
	}
	defer f.Close()
	return Read(f, n, used)
}

// Invert returns the BFS-id → original-id table of length used.
func Invert(ids []int, used int) ([]int, error) {
	inv := make([]int, used)
	for i := range inv {
		inv[i] = -1
	}
	for orig, id := range ids {
		if id < 0 {
			continue
		}
		if id >= used || inv[id] != -1 {
			return nil, fmt.Errorf("%w: id %d of vertex %d", ErrFormat, id, orig)
		}
		inv[id] = orig
	}
	for id, orig := range inv {
		if orig == -1 {
			return nil, fmt.Errorf("%w: BFS id %d unassigned", ErrFormat, id)
		}
	}
	return inv, nil
}
