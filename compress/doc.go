// Package compress drives the relabeling scheduler into the chunk encoder
// and produces the compressed bitstream of a graph.
//
// Pipelines
//
//	Compress(g, out)       one pass: relabel, chunk, encode
//	Parse(g, parsed)       relabel only, writing the intermediate text
//	Pack(parsed, info, out)
//	                       encode a parsed file chunk by chunk
//
// Passing a nil out to Compress runs a simulation: the stream is produced
// into a discarding writer, so Result.Bits is exact.
//
// Artifacts
//
//	The bitstream starts with the header selected by WithVersion. Version
//	1.1 (the default) leaves the graph properties to the .info file;
//	version 1 carries them inline and is what Pack writes unless told
//	otherwise. Result.IDs is the id map to persist with idmap.WriteFile.
//
// Checks
//
//	Every chunk is planned before it is written; a written size that
//	differs from the planned one aborts with ErrCostMismatch. The number
//	of rows must match the non-isolated vertex count (ErrRowCount).
//
// Options
//
//	WithLevel(n)       rows per chunk (DefaultLevel)
//	WithRoot(r)        where the BFS root search starts
//	WithFast()         quicker block search
//	WithIdentity()     keep original ids
//	WithOrdering(o)    child ordering policy
//	WithVersion(v)     header layout
//	WithParsed(w)      also write the intermediate text
//	WithLogger(l)      zerolog logger
//	WithContext(ctx)   cancellation
package compress
