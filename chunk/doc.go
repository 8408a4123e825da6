// Package chunk encodes batches of consecutive BFS rows into the
// compressed bitstream and replays them back.
//
// What
//
//   - A Chunk collects up to level rows. Each successor becomes a cell: a
//     kind tag (x, a, b, c) plus a gap, predicted either from the previous
//     value of the row or from the latest earlier row long enough to have a
//     value in the same column.
//   - Identical consecutive rows merge into one row with a repeat count.
//   - Optimize finds blocks (rectangles of identical cells over several
//     rows) and columns (blocks one cell wide). Plan collapses runs of
//     identical cells inside a row while walking.
//   - Plan picks the π-code parameter and the tag priority that minimize
//     the chunk size; Encode writes exactly the planned number of bits.
//   - Decoder replays a chunk from the bitstream, row by row.
//
// Bitstream layout of one chunk
//
//	traverse  1 bit; if set, gamma(value) gamma(repeat) runs covering level rows
//	piK       2 bits
//	alphaK    "1" c, "01" b, "00" a
//	per row   gamma(repeat) gamma(degree, or zigzag delta to the last nonzero degree)
//	per cell  [tag] π(gap) | π(3) π(gap) selector [gamma(run)] [gamma(w-1) gamma(h-min)]
//
// Cells covered by a block are not written; x tags are implied by
// context and never written either.
//
// Intermediate text format
//
//	1 t0 t1 ... t(level-1)     (or "0" when no row has children)
//	deg kind gap kind gap ...  (one line per row)
package chunk
