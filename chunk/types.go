package chunk

import (
	"errors"
	"fmt"
)

// Kind tags how a cell's value is predicted.
type Kind byte

const (
	// KindX is an independent gap from the previous value of the row, or
	// from the row id for the first cell. It is never written as a tag:
	// the decoder infers it from context.
	KindX Kind = 'x'
	// KindA is the fallback when a comparable row exists but predicting
	// from it does not pay off. Its gap is computed like KindX.
	KindA Kind = 'a'
	// KindB is a value below the comparable row's value in the column.
	KindB Kind = 'b'
	// KindC is a value at or above the comparable row's value.
	KindC Kind = 'c'
)

// ParseKind converts a text tag.
func ParseKind(b byte) (Kind, error) {
	switch k := Kind(b); k {
	case KindX, KindA, KindB, KindC:
		return k, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrFormat, b)
}

func (k Kind) String() string { return string(rune(k)) }

// Equivalent reports whether two kinds decode the same way. KindA and
// KindX share their gap definition and are interchangeable inside runs
// and blocks.
func (k Kind) Equivalent(o Kind) bool {
	if k == o {
		return true
	}
	return (k == KindA && o == KindX) || (k == KindX && o == KindA)
}

const (
	// Sigma is the escape value announcing a reduced cell (run or block).
	// Plain gaps at or above Sigma are shifted up by one.
	Sigma = 3

	// Threshold is the minimum run length that is collapsed for a nonzero gap.
	Threshold = 2
	// Threshold0 is the same for a zero gap.
	Threshold0 = 6

	// MaxBlockRows caps the height of a block or column.
	MaxBlockRows = 1000
	// maxBlockWidth caps the width of a block.
	maxBlockWidth = 1048000

	// minArea is the smallest block area searched for.
	minArea = 8
	// maxArea is the largest block area threshold tried first.
	maxArea = 300 + minArea
	// areaStep is the decrement between two block search passes.
	areaStep = 5
	// minColumn is the smallest column height searched for.
	minColumn = 5
)

// RunThreshold returns the run length a cell with the given gap must
// exceed to be collapsed.
func RunThreshold(gap int) int {
	if gap == 0 {
		return Threshold0
	}
	return Threshold
}

// MinBlockRows is the smallest height a block of width w can have. Block
// heights are written relative to it.
func MinBlockRows(w int) int {
	switch {
	case w <= 1:
		return 5
	case w == 2:
		return 4
	case w == 3:
		return 3
	case w < 8:
		return 2
	default:
		return 1
	}
}

// zigzag maps n to a non-negative integer: n>=0 to 2n, n<0 to -2n-1.
func zigzag(n int) int {
	if n >= 0 {
		return 2 * n
	}
	return -2*n - 1
}

// unzigzag inverts zigzag.
func unzigzag(z int) int {
	if z&1 == 1 {
		return -(z + 1) / 2
	}
	return z / 2
}

// tagCode returns the tag written for kind k when alpha is the kind with
// the one-bit tag.
func tagCode(k, alpha Kind) (uint32, int) {
	if k == alpha {
		return 1, 1
	}
	switch alpha {
	case KindA:
		if k == KindB {
			return 1, 2
		}
	default:
		if k == KindA {
			return 1, 2
		}
	}
	return 0, 2
}

// alphaCode returns the chunk header selector for alpha.
func alphaCode(alpha Kind) (uint32, int) {
	switch alpha {
	case KindC:
		return 1, 1
	case KindB:
		return 1, 2
	default:
		return 0, 2
	}
}

// reductionCode returns the selector following an escaped gap.
func reductionCode(block, run bool) (uint32, int) {
	switch {
	case block && run:
		return 1, 2
	case block:
		return 1, 1
	default:
		return 0, 2
	}
}

type cellState uint8

const (
	free cellState = iota
	// blockHead is the top-left cell of a block; it carries the size.
	blockHead
	// reserved cells share the head row of a block. They are written
	// normally but no other block may claim them.
	reserved
	// covered cells lie below the head row and are not written.
	covered
)

type cell struct {
	kind   Kind
	state  cellState
	gap    int
	height int
	width  int
}

func (c cell) same(o cell) bool {
	return c.gap == o.gap && c.kind.Equivalent(o.kind)
}

type row struct {
	repeat int
	cells  []cell
}

var (
	// ErrLevel is returned for a non-positive chunk level.
	ErrLevel = errors.New("chunk: level must be positive")
	// ErrFull is returned by AddRow once the chunk holds level rows.
	ErrFull = errors.New("chunk: chunk is full")
	// ErrUnsorted is returned for successors that are negative or not
	// strictly increasing.
	ErrUnsorted = errors.New("chunk: successors must be strictly increasing non-negative ids")
	// ErrNegative is returned for a negative child count.
	ErrNegative = errors.New("chunk: negative child count")
	// ErrFormat is returned for malformed text rows or bitstreams.
	ErrFormat = errors.New("chunk: malformed chunk")
)

// Option configures a Chunk.
type Option func(*Chunk)

// WithFast trades compression ratio for speed in the block search.
func WithFast() Option {
	return func(c *Chunk) { c.fast = true }
}

// Stats accumulates encoding statistics over one or more chunks.
type Stats struct {
	Chunks  int64
	Rows    int64 // rows including repeats
	Lines   int64 // rows after merging
	Blocks  int64
	Columns int64 // blocks one cell wide
	Runs    int64
	Cells   int64 // cells written, excluding run and block members
	X, A    int64
	B, C    int64
	Pi      [4]int64 // chunks per code parameter
	Bits    int64
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Chunks += o.Chunks
	s.Rows += o.Rows
	s.Lines += o.Lines
	s.Blocks += o.Blocks
	s.Columns += o.Columns
	s.Runs += o.Runs
	s.Cells += o.Cells
	s.X += o.X
	s.A += o.A
	s.B += o.B
	s.C += o.C
	for i := range s.Pi {
		s.Pi[i] += o.Pi[i]
	}
	s.Bits += o.Bits
}

func (s *Stats) kind(k Kind) {
	switch k {
	case KindX:
		s.X++
	case KindA:
		s.A++
	case KindB:
		s.B++
	case KindC:
		s.C++
	}
}
