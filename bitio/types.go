package bitio

import "errors"

// Sentinel errors for bit-level I/O.
var (
	// ErrUnexpectedEOF is recorded when a read runs past the end of the data.
	ErrUnexpectedEOF = errors.New("bitio: read past end of data")

	// ErrWidth is recorded when a bit width outside [0,32] is requested.
	ErrWidth = errors.New("bitio: invalid bit width")

	// ErrClosed is returned when writing to a closed Writer.
	ErrClosed = errors.New("bitio: writer closed")
)

// DefaultBufferSize is the writer's in-memory buffer size in bytes.
const DefaultBufferSize = 1 << 20

// minBufferSize keeps tiny buffers usable.
const minBufferSize = 16
