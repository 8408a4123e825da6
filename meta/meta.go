package meta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Extensions of the artifacts sharing one base name.
const (
	InfoExt   = ".info"
	GCExt     = ".gc"
	ParsedExt = ".parser"
)

// ErrFormat reports a corrupted header or info file.
var ErrFormat = errors.New("meta: corrupted graph properties")

// Info holds the scalar properties of a compressed graph.
type Info struct {
	Nodes    int
	Edges    int64
	Isolated int
	Level    int
	Root     int
}

// Used is the number of encoded (non-isolated) vertices.
func (i Info) Used() int { return i.Nodes - i.Isolated }

// AvgDegree is E/N truncated to two decimals.
func (i Info) AvgDegree() float64 {
	if i.Nodes == 0 {
		return 0
	}
	return math.Trunc(100*float64(i.Edges)/float64(i.Nodes)) / 100
}

// Validate rejects negative or inconsistent properties.
func (i Info) Validate() error {
	switch {
	case i.Nodes < 0 || i.Edges < 0 || i.Isolated < 0 || i.Level < 0 || i.Root < 0:
		return fmt.Errorf("%w: negative property in %+v", ErrFormat, i)
	case i.Isolated > i.Nodes:
		return fmt.Errorf("%w: %d isolated of %d nodes", ErrFormat, i.Isolated, i.Nodes)
	case i.Used() > 0 && i.Level == 0:
		return fmt.Errorf("%w: level must be positive", ErrFormat)
	case i.Nodes > math.MaxInt32:
		return fmt.Errorf("%w: %d nodes exceed the format limit", ErrFormat, i.Nodes)
	}
	return nil
}

// WriteTo renders the info file.
func (i Info) WriteTo(w io.Writer) (int64, error) {
	avg := strconv.FormatFloat(i.AvgDegree(), 'f', -1, 64)
	if !strings.Contains(avg, ".") {
		avg += ".0"
	}
	n, err := fmt.Fprintf(w, "Nodes = %d\nEdges = %d\nAvgDegree = %s\nIsolated = %d\nLevel = %d\nBfsRoot = %d\n",
		i.Nodes, i.Edges, avg, i.Isolated, i.Level, i.Root)
	return int64(n), err
}

// ReadInfo parses an info file.
func ReadInfo(r io.Reader) (Info, error) {
	v := viper.New()
	v.SetConfigType("properties")
	if err := v.ReadConfig(bufio.NewReader(r)); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	vals := make(map[string]int64, 5)
	for _, key := range []string{"nodes", "edges", "isolated", "level", "bfsroot"} {
		if !v.IsSet(key) {
			return Info{}, fmt.Errorf("%w: missing %q", ErrFormat, key)
		}
		raw := strings.TrimSpace(v.GetString(key))
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || (key != "edges" && (n < math.MinInt32 || n > math.MaxInt32)) {
			return Info{}, fmt.Errorf("%w: %s = %q", ErrFormat, key, raw)
		}
		vals[key] = n
	}
	i := Info{
		Nodes:    int(vals["nodes"]),
		Edges:    vals["edges"],
		Isolated: int(vals["isolated"]),
		Level:    int(vals["level"]),
		Root:     int(vals["bfsroot"]),
	}
	if err := i.Validate(); err != nil {
		return Info{}, err
	}
	return i, nil
}

// ReadInfoFile reads base+".info".
func ReadInfoFile(base string) (Info, error) {
	f, err := os.Open(base + InfoExt)
	if err != nil {
		return Info{}, fmt.Errorf("meta: %w", err)
	}
	defer f.Close()
	return ReadInfo(f)
}

// WriteInfoFile writes base+".info".
func WriteInfoFile(base string, i Info) error {
	f, err := os.Create(base + InfoExt)
	if err != nil {
		return fmt.Errorf("meta: %w", err)
	}
	if _, err := i.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("meta: write %s: %w", f.Name(), err)
	}
	return f.Close()
}
