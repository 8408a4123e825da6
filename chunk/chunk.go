package chunk

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/internal/growbuf"
	"github.com/katalvlaran/gcbfs/picode"
)

// Chunk accumulates up to level consecutive rows and serializes them.
// A Chunk is reused across the whole encoding run through Reset.
type Chunk struct {
	level int
	fast  bool

	first    int // id of the first row
	count    int // rows added, repeats included
	rows     []row
	traverse []int
	children bool

	// prediction state: last value per column over earlier rows, and the
	// largest degree seen so far
	cols   growbuf.Buffer[int]
	maxDeg int

	lens    *picode.Encoder // code length cache only, never written to
	planned bool
	piK     int
	alphaK  Kind
	cost    int64
	stats   Stats
}

// New returns an empty chunk holding at most level rows.
func New(level int, opts ...Option) (*Chunk, error) {
	if level <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLevel, level)
	}
	c := &Chunk{
		level:    level,
		traverse: make([]int, level),
		lens:     picode.NewEncoder(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Level is the maximum number of rows.
func (c *Chunk) Level() int { return c.level }

// Len is the number of rows added, repeats included.
func (c *Chunk) Len() int { return c.count }

// Full reports whether AddRow would fail with ErrFull.
func (c *Chunk) Full() bool { return c.count == c.level }

// Reset empties the chunk. first is the id of the next row to be added.
func (c *Chunk) Reset(first int) {
	c.first = first
	c.count = 0
	c.rows = c.rows[:0]
	clear(c.traverse)
	c.children = false
	c.cols.Reset()
	c.maxDeg = 0
	c.planned = false
	c.cost = 0
	c.stats = Stats{}
}

// AddRow appends the row of id first+Len(): children is the number of
// tree children it enqueued and successors its remaining successor ids,
// strictly increasing.
func (c *Chunk) AddRow(children int, successors []int) error {
	if c.count == c.level {
		return ErrFull
	}
	if children < 0 {
		return fmt.Errorf("%w: %d", ErrNegative, children)
	}
	for i, v := range successors {
		if v < 0 || (i > 0 && v <= successors[i-1]) {
			return fmt.Errorf("%w: row %d position %d", ErrUnsorted, c.first+c.count, i)
		}
	}
	if err := c.cols.Ensure(len(successors)); err != nil {
		return err
	}

	r := c.nextRow()
	c.setValues(r, c.first+c.count, successors)
	c.traverse[c.count] = children
	if children > 0 {
		c.children = true
	}
	c.count++
	c.planned = false
	c.mergeLast()
	return nil
}

// nextRow appends a row, reusing the cell storage of earlier chunks.
func (c *Chunk) nextRow() *row {
	if n := len(c.rows); n < cap(c.rows) {
		c.rows = c.rows[:n+1]
	} else {
		c.rows = append(c.rows, row{})
	}
	r := &c.rows[len(c.rows)-1]
	r.repeat = 0
	r.cells = r.cells[:0]
	return r
}

// setValues computes the kind and gap of every cell of r. The comparable
// row for column p is the latest earlier row with more than p successors,
// whose value there is kept in cols[p].
func (c *Chunk) setValues(r *row, counter int, values []int) {
	cols := c.cols.Slice()
	for p, v := range values {
		known := p < c.maxDeg
		var cl cell
		if p == 0 {
			zz := zigzag(counter - v)
			cl = cell{kind: KindX, gap: zz}
			if known {
				ref := cols[0]
				switch {
				case v >= ref && v-ref < zz:
					cl = cell{kind: KindC, gap: v - ref}
				case v < ref && ref-v-1 < zz:
					cl = cell{kind: KindB, gap: ref - v - 1}
				default:
					cl.kind = KindA
				}
			}
		} else {
			prev := values[p-1]
			d := v - prev - 1
			cl = cell{kind: KindX, gap: d}
			if ref := cols[p]; known && ref-1 > prev {
				switch {
				case v >= ref:
					cl = cell{kind: KindC, gap: v - ref}
				case ref-v-1 < d:
					cl = cell{kind: KindB, gap: ref - v - 1}
				default:
					cl.kind = KindA
				}
			}
		}
		r.cells = append(r.cells, cl)
		cols[p] = v
	}
	if len(values) > c.maxDeg {
		c.maxDeg = len(values)
	}
}

// mergeLast folds the last row into the previous one when their cells
// are identical.
func (c *Chunk) mergeLast() {
	n := len(c.rows)
	if n < 2 {
		return
	}
	a, b := &c.rows[n-2], &c.rows[n-1]
	if !sameCells(a.cells, b.cells) {
		return
	}
	a.repeat += b.repeat + 1
	c.rows = c.rows[:n-1]
}

func sameCells(a, b []cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].kind != b[i].kind || a[i].gap != b[i].gap {
			return false
		}
	}
	return true
}
