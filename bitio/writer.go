package bitio

import (
	"fmt"
	"io"
)

// Writer accumulates bits in a byte buffer and flushes full bytes to a sink.
type Writer struct {
	sink io.Writer
	buf  []byte
	word int   // index of the byte being filled
	free int   // free bits left in buf[word], 8..1
	bits int64 // total bits written
	err  error
	done bool
}

// NewWriter returns a Writer with DefaultBufferSize bytes of buffering.
// A nil sink discards output while still counting bits.
func NewWriter(sink io.Writer) *Writer {
	return NewWriterSize(sink, DefaultBufferSize)
}

// NewWriterSize returns a Writer whose buffer holds size bytes.
func NewWriterSize(sink io.Writer, size int) *Writer {
	if size < minBufferSize {
		size = minBufferSize
	}
	if sink == nil {
		sink = io.Discard
	}
	return &Writer{sink: sink, buf: make([]byte, size), free: 8}
}

// WriteBit writes a single bit and returns 1.
func (w *Writer) WriteBit(b bool) int {
	if b {
		return w.WriteBits(1, 1)
	}
	return w.WriteBits(0, 1)
}

// WriteBits writes the low width bits of v, most significant first,
// and returns width. Widths outside [0,32] record ErrWidth.
func (w *Writer) WriteBits(v uint32, width int) int {
	if w.err != nil {
		return 0
	}
	if w.done {
		w.err = ErrClosed
		return 0
	}
	if width < 0 || width > 32 {
		w.err = fmt.Errorf("%w: %d", ErrWidth, width)
		return 0
	}
	if width < 32 {
		v &= 1<<uint(width) - 1
	}
	for n := width; n > 0; {
		take := w.free
		if n < take {
			take = n
		}
		part := byte(v>>uint(n-take)) & (0xFF >> uint(8-take))
		w.buf[w.word] |= part << uint(w.free-take)
		w.free -= take
		n -= take
		if w.free == 0 {
			w.word++
			w.free = 8
			if w.word == len(w.buf) {
				w.flush(w.word)
			}
		}
	}
	w.bits += int64(width)
	return width
}

// WriteLong writes v as two 32-bit halves, high half first, and returns 64.
func (w *Writer) WriteLong(v uint64) int {
	return w.WriteBits(uint32(v>>32), 32) + w.WriteBits(uint32(v), 32)
}

// Bits reports the number of bits written so far.
func (w *Writer) Bits() int64 { return w.bits }

// Err reports the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Close flushes every buffered bit, padding the last byte with zeros, and
// returns the total number of bits written. It does not close the sink.
func (w *Writer) Close() (int64, error) {
	if w.done {
		return w.bits, w.err
	}
	n := w.word
	if w.free < 8 {
		n++
	}
	if w.err == nil {
		w.flush(n)
	}
	w.done = true
	return w.bits, w.err
}

// flush hands buf[:n] to the sink and restarts the buffer.
func (w *Writer) flush(n int) {
	if n > 0 && w.err == nil {
		if _, err := w.sink.Write(w.buf[:n]); err != nil {
			w.err = fmt.Errorf("bitio: flush: %w", err)
		}
	}
	clear(w.buf[:n])
	w.word = 0
	w.free = 8
}
