// Package growbuf provides a bounded, amortized-doubling buffer used for
// per-row working state in the chunk encoder and decoder.
package growbuf

import (
	"errors"
	"fmt"
)

// MaxLen is the hard upper bound on a buffer length.
const MaxLen = 1 << 28

// minCap is the capacity allocated on first growth.
const minCap = 64

// ErrTooLarge is returned when a requested length exceeds MaxLen.
var ErrTooLarge = errors.New("growbuf: requested length exceeds maximum")

// Buffer is a growable slice whose length only grows through Ensure.
// The zero value is ready to use.
type Buffer[T any] struct {
	s []T
}

// Ensure grows the buffer so that Len() >= n. Newly exposed elements are
// zero values. Capacity at least doubles on each reallocation.
func (b *Buffer[T]) Ensure(n int) error {
	if n <= len(b.s) {
		return nil
	}
	if n > MaxLen {
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, n, MaxLen)
	}
	if n <= cap(b.s) {
		b.s = b.s[:n]
		return nil
	}
	c := cap(b.s) * 2
	if c < minCap {
		c = minCap
	}
	for c < n {
		c *= 2
	}
	if c > MaxLen {
		c = MaxLen
	}
	grown := make([]T, n, c)
	copy(grown, b.s)
	b.s = grown
	return nil
}

// Len reports the current length.
func (b *Buffer[T]) Len() int { return len(b.s) }

// Slice exposes the backing slice; it is invalidated by the next Ensure.
func (b *Buffer[T]) Slice() []T { return b.s }

// Reset clears every element and truncates the buffer to zero length,
// keeping the allocation.
func (b *Buffer[T]) Reset() {
	clear(b.s)
	b.s = b.s[:0]
}
