// Package core defines the graph capability every component of the codec
// consumes, plus a thread-safe in-memory implementation of it.
//
// The Graph contract G = (V, E) is deliberately small:
//
//   - Vertices are the dense integer range [0, VertexCount()).
//   - Edges are directed; Successors(v) returns v's out-neighbors.
//   - InDegree is optional: implementations without reverse adjacency
//     return ErrNotSupported and callers degrade gracefully.
//
// Implementations in this module:
//
//   - core.AdjacencyList       in-memory, mutable, sorted successor lists
//   - netfile.OfflineGraph     memory-mapped text graph, parsed on demand
//   - compressed.Graph         random-access decoder over a .gc file
//
// Bulk access
//
//	Random access is not free for every implementation (the compressed
//	decoder replays part of a chunk per query). Implementations that can
//	stream every vertex cheaply also implement Sweeper; the package-level
//	Sweep helper uses it when available and falls back to per-vertex
//	Successors calls otherwise.
//
// AdjacencyList options
//
//	– WithName(name)     label reported by Name()
//	– WithLoops()        permit v→v edges; otherwise ErrLoopNotAllowed
//	– WithMultiEdges()   permit parallel edges; otherwise ErrMultiEdgeNotAllowed
//
// Complexity (d = out-degree of the touched vertex)
//
//   - AddEdge:     O(d) (sorted insertion)
//   - Successors:  O(1) (returns the internal sorted slice)
//   - IsNeighbor:  O(log d)
//   - InDegree:    O(1) (maintained incrementally)
//
// Concurrency
//
//	AdjacencyList guards its state with a sync.RWMutex: mutations take the
//	write lock, queries the read lock. Slices returned by Successors are
//	shared and must be treated as read-only.
package core
