// Package netfile reads and writes graphs in the plain-text ".net" format
// that feeds the compressor.
//
// Format
//
//	The first line holds the vertex count N (> 0). Every following line
//	lists one vertex followed by its successors, separated by blanks:
//
//	  5
//	  0 1 2
//	  1 0
//	  2
//	  3 2 4
//	  4 1 3
//
//	Vertices without a line have no successors. Blank lines are ignored.
//
// Sources
//
//   - Load / LoadFile parse the whole file into a core.AdjacencyList
//     (loops and parallel edges are kept as found).
//   - OpenOffline memory-maps the file and indexes the byte offset of every
//     vertex line; successor lists are parsed on demand. Use it when the
//     graph does not fit in memory next to the compressor state.
//
// Errors
//
//	Every malformed input is reported as ErrFormat wrapped with the line
//	number: N <= 0, a vertex id outside [0, N), a second line for the same
//	vertex, or a token that is not an integer.
package netfile
