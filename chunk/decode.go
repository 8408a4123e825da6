package chunk

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/bitio"
	"github.com/katalvlaran/gcbfs/internal/growbuf"
	"github.com/katalvlaran/gcbfs/picode"
)

// Row is one row replayed by a Decoder. Values is reused between rows.
type Row struct {
	ID int
	// ChildStart and Children describe the tree children of the row: the
	// ids [ChildStart, ChildStart+Children).
	ChildStart int
	Children   int
	// Values are the explicit successor ids, ascending.
	Values []int
}

// OutDegree is the number of successors of the row.
func (r *Row) OutDegree() int { return r.Children + len(r.Values) }

// column is the decode state of one column: the kind and gap of its last
// explicit cell, its last value and the countdown of an active block.
type column struct {
	kind   Kind
	gap    int
	value  int
	blockH int
	blockW int
}

// Decoder replays chunks written by Chunk.Encode. It is not safe for
// concurrent use; give each goroutine its own Decoder over a forked
// reader.
type Decoder struct {
	level int
	r     *bitio.Reader
	dec   *picode.Decoder

	cols     growbuf.Buffer[column]
	start    []int
	children []int
	row      Row
}

// NewDecoder returns a Decoder for chunks of the given level.
func NewDecoder(r *bitio.Reader, level int) (*Decoder, error) {
	if level <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLevel, level)
	}
	return &Decoder{
		level:    level,
		r:        r,
		dec:      picode.NewDecoder(r),
		start:    make([]int, level),
		children: make([]int, level),
	}, nil
}

// Reader is the underlying bit reader.
func (d *Decoder) Reader() *bitio.Reader { return d.r }

// SetPosition moves to the absolute bit position pos and clears any error left
// by a previous replay.
func (d *Decoder) SetPosition(pos int64) {
	d.r.SetPosition(pos)
	d.dec.Reset(d.r)
}

// Decode replays the chunk at the reader's position. node is the id of
// its first row, limit one past its last id and first the smallest id
// not yet handed out as a tree child before the chunk. fn receives every
// row in order and may stop the replay by returning false.
//
// Decode returns the value of first after the chunk's traverse list,
// which seeds the following chunk.
func (d *Decoder) Decode(node, limit, first int, fn func(*Row) bool) (int, error) {
	first, err := d.readTraverse(node, first)
	if err != nil {
		return first, err
	}
	piK := int(d.r.ReadBits(2))
	alphaK := KindA
	if d.r.ReadBit() {
		alphaK = KindC
	} else if d.r.ReadBit() {
		alphaK = KindB
	}
	if err := d.err(); err != nil {
		return first, err
	}

	lastDeg, maxDeg := -1, 0
	for id := node; id < limit; id++ {
		repeat := d.dec.Gamma()
		deg := d.dec.Gamma()
		if lastDeg != -1 {
			deg = lastDeg + unzigzag(deg)
		}
		if err := d.err(); err != nil {
			return first, err
		}
		if deg < 0 || id+repeat >= limit {
			return first, fmt.Errorf("%w: row %d: degree %d repeat %d", ErrFormat, id, deg, repeat)
		}
		if deg > 0 {
			lastDeg = deg
		}
		if err := d.cols.Ensure(deg); err != nil {
			return first, err
		}

		if err := d.readRow(id, id == node, deg, maxDeg, piK, alphaK); err != nil {
			return first, err
		}
		maxDeg = max(maxDeg, deg)
		if !d.emit(id, id-node, deg, fn) {
			return first, nil
		}
		for ; repeat > 0; repeat-- {
			id++
			cols := d.cols.Slice()
			for p := 0; p < deg; p++ {
				apply(cols, id, p)
			}
			if !d.emit(id, id-node, deg, fn) {
				return first, nil
			}
		}
	}
	return first, nil
}

// readTraverse decodes the traverse list into start and children.
func (d *Decoder) readTraverse(node, first int) (int, error) {
	if first <= node {
		first = node + 1
	}
	if !d.r.ReadBit() {
		clear(d.children)
		clear(d.start)
		return first, d.err()
	}
	for i := 0; i < d.level; {
		t := d.dec.Gamma()
		count := d.dec.Gamma()
		if err := d.err(); err != nil {
			return first, err
		}
		if i+count >= d.level {
			return first, fmt.Errorf("%w: traverse run of %d at row %d exceeds level %d", ErrFormat, count+1, i, d.level)
		}
		for j := i; j <= i+count; j++ {
			if first <= node+j {
				first = node + j + 1
			}
			first += t
			d.start[j], d.children[j] = first-t, t
		}
		i += count + 1
	}
	return first, nil
}

// readRow decodes the explicit cells of row id.
func (d *Decoder) readRow(id int, head bool, deg, maxDeg, piK int, alphaK Kind) error {
	cols := d.cols.Slice()
	for j := 0; j < deg; {
		c := &cols[j]
		if !head && j < maxDeg && c.blockH > 0 {
			c.blockH--
			w := c.blockW
			if j+w > deg {
				return fmt.Errorf("%w: row %d: block of width %d at column %d", ErrFormat, id, w, j)
			}
			for l := j; l < j+w; l++ {
				apply(cols, id, l)
			}
			j += w
			continue
		}

		c.blockH, c.blockW = 0, 0
		if head || j >= maxDeg || (j > 0 && c.value-1 <= cols[j-1].value) {
			c.kind = KindX
		} else {
			c.kind = d.readTag(alphaK)
		}

		g := d.dec.Decode0(piK)
		if g != Sigma {
			if g > Sigma {
				g--
			}
			c.gap = g
			apply(cols, id, j)
			j++
			continue
		}

		c.gap = d.dec.Decode0(piK)
		apply(cols, id, j)
		block, run := false, false
		if d.r.ReadBit() {
			block = true
		} else if d.r.ReadBit() {
			block, run = true, true
		} else {
			run = true
		}

		end := j
		if run {
			end = j + d.dec.Gamma() + RunThreshold(c.gap)
			if end >= deg {
				return fmt.Errorf("%w: row %d: run past degree %d", ErrFormat, id, deg)
			}
			for l := j + 1; l <= end; l++ {
				o := &cols[l]
				o.kind, o.gap, o.blockH, o.blockW = c.kind, c.gap, 0, 0
				apply(cols, id, l)
			}
		}
		if block {
			w := d.dec.Gamma() + 1
			c.blockW = w
			c.blockH = d.dec.Gamma() + MinBlockRows(w) - 1
		}
		if err := d.err(); err != nil {
			return err
		}
		j = end + 1
	}
	return d.err()
}

// readTag reads the kind tag of a cell.
func (d *Decoder) readTag(alphaK Kind) Kind {
	if d.r.ReadBit() {
		return alphaK
	}
	if d.r.ReadBit() {
		if alphaK == KindA {
			return KindB
		}
		return KindA
	}
	if alphaK == KindC {
		return KindB
	}
	return KindC
}

// apply sets the value of column p for row id from its kind and gap.
func apply(cols []column, id, p int) {
	c := &cols[p]
	switch c.kind {
	case KindB:
		c.value -= c.gap + 1
	case KindC:
		c.value += c.gap
	default:
		if p == 0 {
			c.value = id - unzigzag(c.gap)
		} else {
			c.value = cols[p-1].value + c.gap + 1
		}
	}
}

func (d *Decoder) emit(id, i, deg int, fn func(*Row) bool) bool {
	r := &d.row
	r.ID = id
	r.ChildStart, r.Children = d.start[i], d.children[i]
	r.Values = r.Values[:0]
	for _, c := range d.cols.Slice()[:deg] {
		r.Values = append(r.Values, c.value)
	}
	return fn(r)
}

func (d *Decoder) err() error {
	if err := d.dec.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return nil
}
