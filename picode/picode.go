package picode

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/katalvlaran/gcbfs/bitio"
)

// MaxK is the largest supported code parameter.
const MaxK = 3

// DefaultCacheLimit bounds the values whose code lengths are cached.
const DefaultCacheLimit = 1 << 16

// maxUnary bounds the unary prefix a decoder accepts: bit lengths of int32
// values never exceed 32.
const maxUnary = 32

var (
	// ErrInvalidValue is recorded for values a code cannot represent.
	ErrInvalidValue = errors.New("picode: value out of range")

	// ErrInvalidParam is recorded for k outside [0, MaxK].
	ErrInvalidParam = errors.New("picode: parameter out of range")

	// ErrCorrupt is recorded when the decoder reads an impossible code.
	ErrCorrupt = errors.New("picode: corrupt code")
)

// Len returns the length in bits of the code of n >= 1 with parameter k.
// It returns -1 for invalid arguments.
func Len(n, k int) int {
	if n < 1 || k < 0 || k > MaxK {
		return -1
	}
	s := bits.Len(uint(n))
	f := s
	for i := 0; i < k; i++ {
		f = (f + 1) >> 1
	}
	return k + f + s - 1
}

// Len0 returns the length of the zero-extended code of n >= 0.
func Len0(n, k int) int {
	if n == 0 {
		return 1
	}
	if l := Len(n, k); l > 0 {
		return l + 1
	}
	return -1
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithCacheLimit caches code lengths for values below limit. Zero disables
// the cache.
func WithCacheLimit(limit int) Option {
	return func(e *Encoder) {
		if limit >= 0 {
			e.limit = limit
		}
	}
}

// Encoder writes π-codes to a bit writer.
type Encoder struct {
	w     *bitio.Writer
	limit int
	cache [MaxK + 1][]uint8
	err   error
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w *bitio.Writer, opts ...Option) *Encoder {
	e := &Encoder{w: w, limit: DefaultCacheLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Writer exposes the underlying bit writer.
func (e *Encoder) Writer() *bitio.Writer { return e.w }

// Err reports the first encoder or writer error.
func (e *Encoder) Err() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Err()
}

// Len0 is the cached form of the package-level Len0.
func (e *Encoder) Len0(n, k int) int {
	if n < 0 || k < 0 || k > MaxK {
		return -1
	}
	if n >= e.limit {
		return Len0(n, k)
	}
	c := e.cache[k]
	if c == nil {
		c = make([]uint8, e.limit)
		e.cache[k] = c
	}
	if c[n] == 0 {
		c[n] = uint8(Len0(n, k))
	}
	return int(c[n])
}

// Encode writes the code of n >= 1 and returns the number of bits written.
func (e *Encoder) Encode(n, k int) int {
	if e.err != nil {
		return 0
	}
	if k < 0 || k > MaxK {
		e.err = fmt.Errorf("%w: k=%d", ErrInvalidParam, k)
		return 0
	}
	if n < 1 || int64(n) > math.MaxUint32 {
		e.err = fmt.Errorf("%w: Encode(%d)", ErrInvalidValue, n)
		return 0
	}
	s := bits.Len(uint(n))
	raw := s - 1
	rest := uint32(uint(n) - 1<<uint(raw))

	r := uint32(1) << uint(k)
	for i := 0; i < k; i++ {
		if s&1 == 1 {
			r |= 1 << uint(i)
		}
		s = (s + 1) >> 1
	}
	written := e.w.WriteBits(r, k+s)
	written += e.w.WriteBits(rest, raw)
	return written
}

// Encode0 writes the zero-extended code of n >= 0.
func (e *Encoder) Encode0(n, k int) int {
	if e.err != nil {
		return 0
	}
	if n < 0 {
		e.err = fmt.Errorf("%w: Encode0(%d)", ErrInvalidValue, n)
		return 0
	}
	if n == 0 {
		return e.w.WriteBit(true)
	}
	return e.w.WriteBit(false) + e.Encode(n, k)
}

// Decoder reads π-codes from a bit reader.
type Decoder struct {
	r   *bitio.Reader
	err error
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r *bitio.Reader) *Decoder {
	return &Decoder{r: r}
}

// Reader exposes the underlying bit reader.
func (d *Decoder) Reader() *bitio.Reader { return d.r }

// Reset rebinds the decoder to r and clears its error.
func (d *Decoder) Reset(r *bitio.Reader) {
	d.r = r
	d.err = nil
}

// Err reports the first decoder or reader error.
func (d *Decoder) Err() error {
	if d.err != nil {
		return d.err
	}
	return d.r.Err()
}

// Decode reads a code written by Encode with parameter k.
func (d *Decoder) Decode(k int) int {
	if d.err != nil {
		return 0
	}
	if k < 0 || k > MaxK {
		d.err = fmt.Errorf("%w: k=%d", ErrInvalidParam, k)
		return 0
	}
	l := 1
	for !d.r.ReadBit() {
		if d.r.Err() != nil {
			return 0
		}
		l++
		if l > maxUnary {
			d.err = fmt.Errorf("%w: unary prefix longer than %d", ErrCorrupt, maxUnary)
			return 0
		}
	}
	l = l<<uint(k) - int(d.r.ReadBits(k)) - 1
	if l < 0 || l > 31 {
		d.err = fmt.Errorf("%w: bit length %d", ErrCorrupt, l+1)
		return 0
	}
	if l == 0 {
		return 1
	}
	return int(d.r.ReadBits(l)) | 1<<uint(l)
}

// Decode0 reads a code written by Encode0 with parameter k.
func (d *Decoder) Decode0(k int) int {
	if d.err != nil {
		return 0
	}
	if d.r.ReadBit() {
		return 0
	}
	return d.Decode(k)
}

// Gamma reads a zero-extended code with k = 0.
func (d *Decoder) Gamma() int { return d.Decode0(0) }
