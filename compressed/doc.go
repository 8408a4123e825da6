// Package compressed serves a compressed graph without decompressing it.
//
// Open maps a .gc file, reads its header (inline for version 1, from the
// .info file for version 1.1) and replays every chunk once to record two
// small tables: the bit offset of each chunk and the first-child seed each
// chunk's traverse list starts from. Both hold ceil(used/level) entries.
//
// Queries
//
//	Successors(v), OutDegree(v) and IsNeighbor(a, b) seek to the chunk of
//	v and replay it up to v. The successor list of a row is its explicit
//	values followed by the tree children range [start, start+children),
//	which is already ascending. Nodes in [used, N) are isolated and have
//	no successors; ids outside [0, N) report ErrNodeOutOfRange.
//
// Bulk access
//
//	Sweep and OutDegrees decode each chunk once, in order. ParallelSweep
//	decodes batches of chunks on an errgroup, each worker on its own
//	forked reader; chunks are independent once the offsets are known.
//
// Ids
//
//	A Graph speaks BFS ids. NewOriginal wraps it with the id map to answer
//	in original ids, and WriteASCII prints either view in the .net format.
//
// Concurrency
//
//	A Graph owns one decoder and is not safe for concurrent use. Clone
//	shares the blob and the tables and is cheap.
package compressed
