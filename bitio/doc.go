// Package bitio implements the bit-granular I/O layer underneath every
// compressed-graph artifact.
//
// What
//
//   - Writer packs values of 1..32 bits (and 64-bit longs as two 32-bit
//     halves) MSB-first into an in-memory byte buffer that is flushed to an
//     io.Writer sink whenever it fills up.
//   - Reader exposes random access by absolute bit position over a read-only
//     blob: either a byte slice or a memory-mapped file (Open).
//
// Bit order
//
//	Within every byte the most significant bit is written first. A value of
//	width w is emitted from its bit w-1 down to bit 0, so a value crossing a
//	byte boundary keeps its natural reading order.
//
// Errors
//
//	Both types use a sticky error model in the spirit of bufio.Writer:
//	the first failure (sink write error, read past end of data) is recorded,
//	later operations become no-ops returning zero, and Err() reports it.
//	Callers check Err() once per logical unit (a chunk) instead of per bit.
//
// Concurrency
//
//	Writer and Reader are not safe for concurrent use. Reader.Fork returns a
//	cursor sharing the same read-only blob with an independent position, so
//	several goroutines may decode different regions at once.
//
// Complexity
//
//   - WriteBits / ReadBits: O(width/8) byte operations.
//   - Open: one mmap syscall; pages are faulted in lazily.
package bitio
