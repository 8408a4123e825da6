package chunk

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/picode"
)

// sink consumes the symbol stream of a chunk. The cost estimate and the
// serializer are two sinks over the same walk, so they cannot disagree
// on what is emitted, only on how long it is.
type sink interface {
	fixed(v uint32, width int)
	gamma(n int)
	pi(n int)
	tag(k Kind)
	params()
}

// walk emits the chunk in serialization order.
func (c *Chunk) walk(s sink, st *Stats) {
	c.walkTraverse(s)
	s.params()

	lastDeg := -1
	for ri := range c.rows {
		r := &c.rows[ri]
		s.gamma(r.repeat)
		deg := len(r.cells)
		if lastDeg == -1 {
			s.gamma(deg)
		} else {
			s.gamma(zigzag(deg - lastDeg))
		}
		if deg > 0 {
			lastDeg = deg
		}

		for p := 0; p < deg; p++ {
			cl := r.cells[p]
			if cl.state == covered {
				continue
			}
			run := 0
			for q := p + 1; q < deg; q++ {
				o := r.cells[q]
				if o.state == covered || o.state == blockHead || !cl.same(o) {
					break
				}
				run++
			}
			block := cl.state == blockHead
			thr := RunThreshold(cl.gap)
			if run <= thr {
				run = 0
			}

			if cl.kind != KindX {
				s.tag(cl.kind)
			}
			if !block && run == 0 {
				g := cl.gap
				if g >= Sigma {
					g++
				}
				s.pi(g)
			} else {
				s.pi(Sigma)
				s.pi(cl.gap)
				s.fixed(reductionCode(block, run > 0))
				if run > 0 {
					s.gamma(run - thr)
				}
				if block {
					s.gamma(cl.width - 1)
					s.gamma(cl.height - MinBlockRows(cl.width))
				}
			}

			if st != nil {
				st.Cells++
				st.kind(cl.kind)
				if run > 0 {
					st.Runs++
				}
				if block && cl.width == 1 {
					st.Columns++
				} else if block {
					st.Blocks++
				}
			}
			p += run
		}
	}
}

// walkTraverse emits the traverse flag and, when some row has children,
// the (value, repeat) runs covering all level entries.
func (c *Chunk) walkTraverse(s sink) {
	if !c.children {
		s.fixed(0, 1)
		return
	}
	s.fixed(1, 1)
	prev, count := c.traverse[0], 0
	for _, t := range c.traverse[1:] {
		if t == prev {
			count++
			continue
		}
		s.gamma(prev)
		s.gamma(count)
		prev, count = t, 0
	}
	s.gamma(prev)
	s.gamma(count)
}

// costSink sums code lengths, keeping the π cost per parameter apart.
type costSink struct {
	lens  *picode.Encoder
	bits  int64
	perK  [picode.MaxK + 1]int64
	kinds map[Kind]int64
}

func (s *costSink) fixed(_ uint32, width int) { s.bits += int64(width) }
func (s *costSink) gamma(n int)               { s.bits += int64(s.lens.Len0(n, 0)) }
func (s *costSink) tag(k Kind)                { s.kinds[k]++ }
func (s *costSink) params()                   {}

func (s *costSink) pi(n int) {
	for k := range s.perK {
		s.perK[k] += int64(s.lens.Len0(n, k))
	}
}

// writeSink serializes through a π-code encoder.
type writeSink struct {
	enc    *picode.Encoder
	piK    int
	alphaK Kind
}

func (s *writeSink) fixed(v uint32, width int) { s.enc.Writer().WriteBits(v, width) }
func (s *writeSink) gamma(n int)               { s.enc.Encode0(n, 0) }
func (s *writeSink) pi(n int)                  { s.enc.Encode0(n, s.piK) }
func (s *writeSink) tag(k Kind)                { s.fixed(tagCode(k, s.alphaK)) }

func (s *writeSink) params() {
	s.fixed(uint32(s.piK), 2)
	s.fixed(alphaCode(s.alphaK))
}

// Plan chooses the code parameter and the tag priority minimizing the
// chunk size and returns that size in bits. An empty chunk costs nothing.
func (c *Chunk) Plan() int64 {
	if c.planned {
		return c.cost
	}
	c.planned = true
	c.stats = Stats{}
	if len(c.rows) == 0 {
		c.piK, c.alphaK, c.cost = 0, KindA, 0
		return 0
	}

	cs := &costSink{lens: c.lens, kinds: make(map[Kind]int64, 3)}
	c.walk(cs, &c.stats)

	c.piK = 0
	for k := 1; k < len(cs.perK); k++ {
		if cs.perK[k] < cs.perK[c.piK] {
			c.piK = k
		}
	}
	// the most frequent kind gets the short tag, later kinds win ties
	c.alphaK = KindA
	for _, k := range []Kind{KindB, KindC} {
		if cs.kinds[k] >= cs.kinds[c.alphaK] {
			c.alphaK = k
		}
	}
	tags := int64(0)
	for _, k := range []Kind{KindA, KindB, KindC} {
		_, w := tagCode(k, c.alphaK)
		tags += cs.kinds[k] * int64(w)
	}
	_, sel := alphaCode(c.alphaK)

	c.cost = cs.bits + cs.perK[c.piK] + tags + 2 + int64(sel)

	c.stats.Chunks = 1
	c.stats.Rows = int64(c.count)
	c.stats.Lines = int64(len(c.rows))
	c.stats.Pi[c.piK] = 1
	c.stats.Bits = c.cost
	return c.cost
}

// Encode writes the chunk with the parameters chosen by Plan, planning
// first if needed, and returns the number of bits written.
func (c *Chunk) Encode(enc *picode.Encoder) (int64, error) {
	c.Plan()
	if len(c.rows) == 0 {
		return 0, nil
	}
	w := enc.Writer()
	before := w.Bits()
	c.walk(&writeSink{enc: enc, piK: c.piK, alphaK: c.alphaK}, nil)
	if err := enc.Err(); err != nil {
		return w.Bits() - before, fmt.Errorf("chunk: encode rows %d..%d: %w", c.first, c.first+c.count-1, err)
	}
	return w.Bits() - before, nil
}

// Params returns the code parameter and the one-bit tag kind chosen by
// the last Plan.
func (c *Chunk) Params() (piK int, alphaK Kind) { return c.piK, c.alphaK }

// Stats returns the statistics of the current chunk, planning first if
// needed.
func (c *Chunk) Stats() Stats {
	c.Plan()
	return c.stats
}
