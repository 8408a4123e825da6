package bitio

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Reader reads bits by absolute position from a read-only blob.
type Reader struct {
	data []byte
	pos  int64 // absolute bit position
	err  error
	m    mmap.MMap // non-nil when data is memory-mapped and owned
}

// NewReader returns a Reader over data. The slice must not be modified
// while the Reader (or any fork) is in use.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Open memory-maps path read-only and returns a Reader over its contents.
// Empty files are read into an empty blob since they cannot be mapped.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bitio: open %q: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("bitio: stat %q: %w", path, err)
	}
	if fi.Size() == 0 {
		return NewReader(nil), nil
	}
	m, err := mmap.MapRegion(f, int(fi.Size()), mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("bitio: mmap %q: %w", path, err)
	}
	return &Reader{data: m, m: m}, nil
}

// ReadAll drains r into memory and returns a Reader over the bytes.
func ReadAll(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bitio: read: %w", err)
	}
	return NewReader(data), nil
}

// Fork returns an independent cursor over the same blob, positioned at the
// current position. Forks never own the mapping; only the original closes it.
func (r *Reader) Fork() *Reader {
	return &Reader{data: r.data, pos: r.pos}
}

// Close releases the memory mapping if the Reader owns one.
func (r *Reader) Close() error {
	if r.m == nil {
		return nil
	}
	err := r.m.Unmap()
	r.m, r.data = nil, nil
	if err != nil {
		return fmt.Errorf("bitio: unmap: %w", err)
	}
	return nil
}

// Len reports the blob size in bits.
func (r *Reader) Len() int64 { return int64(len(r.data)) * 8 }

// Position reports the absolute bit position of the next read.
func (r *Reader) Position() int64 { return r.pos }

// SetPosition moves the cursor and clears a previous end-of-data error.
func (r *Reader) SetPosition(pos int64) {
	r.pos = pos
	r.err = nil
}

// Err reports the first error since the last SetPosition.
func (r *Reader) Err() error { return r.err }

// ReadBit reads one bit.
func (r *Reader) ReadBit() bool {
	idx := r.pos >> 3
	if idx >= int64(len(r.data)) || r.pos < 0 {
		r.fail()
		return false
	}
	b := r.data[idx] >> uint(7-r.pos&7) & 1
	r.pos++
	return b == 1
}

// ReadBits reads width bits (0..32) as an unsigned value, MSB first.
func (r *Reader) ReadBits(width int) uint32 {
	if width < 0 || width > 32 {
		if r.err == nil {
			r.err = fmt.Errorf("%w: %d", ErrWidth, width)
		}
		return 0
	}
	var v uint32
	for width > 0 {
		idx := r.pos >> 3
		if idx >= int64(len(r.data)) || r.pos < 0 {
			r.fail()
			return 0
		}
		avail := 8 - int(r.pos&7)
		take := avail
		if width < take {
			take = width
		}
		part := uint32(r.data[idx]>>uint(avail-take)) & (0xFF >> uint(8-take))
		v = v<<uint(take) | part
		width -= take
		r.pos += int64(take)
	}
	return v
}

// ReadInt reads a 32-bit two's complement value.
func (r *Reader) ReadInt() int32 { return int32(r.ReadBits(32)) }

// ReadLong reads a 64-bit value written by Writer.WriteLong.
func (r *Reader) ReadLong() int64 {
	hi := uint64(r.ReadBits(32))
	lo := uint64(r.ReadBits(32))
	return int64(hi<<32 | lo)
}

func (r *Reader) fail() {
	if r.err == nil {
		r.err = fmt.Errorf("%w at bit %d of %d", ErrUnexpectedEOF, r.pos, r.Len())
	}
}
