// Package gcbfs compresses large directed graphs into a compact bitstream
// that still answers successor queries for any node without decompressing
// the whole file.
//
// A breadth-first traversal relabels the nodes so that tree edges become
// implicit and the remaining successor lists turn into small gaps. Rows
// are grouped into chunks; inside a chunk, cells that repeat across rows
// collapse into blocks and runs, and every integer is written with a
// π-code whose parameter is chosen per chunk.
//
// Layout:
//
//	bitio/       bit writer and memory-mapped random-access reader
//	picode/      π-code integer encoder and decoder
//	core/        Graph capability and in-memory adjacency lists
//	bfs/         BFS relabeling with pluggable child orderings
//	chunk/       chunk encoder, block/run search, chunk replay
//	compress/    direct and two-phase compression pipelines
//	compressed/  random-access and bulk decoding of .gc files
//	meta/        stream versions and the .info properties file
//	idmap/       the .map original-to-BFS id file
//	netfile/     the .net text graph format, in memory or mapped
//	builder/     deterministic random graph generators
//	analytics/   PageRank and degree statistics over any Graph
//	config/      settings for the gc command
//	cmd/gc/      the command-line tool
//
// Quick example:
//
//	var buf bytes.Buffer
//	res, err := compress.Compress(g, &buf, compress.WithLevel(1000))
//	cg, err := compressed.Load(bitio.NewReader(buf.Bytes()), "web",
//		compressed.WithInfo(res.Info))
//	succ, err := cg.Successors(res.IDs()[42])
package gcbfs
