// Package bfs relabels a graph in breadth-first order and streams the
// resulting rows to a consumer, which is how the compressor sees a graph.
//
// What
//
//   - Vertices receive consecutive ids in the order they are enqueued.
//   - Each expanded vertex becomes one Row holding:
//   - Children: how many previously unseen successors it enqueued;
//   - Successors: the ids of its other successors, sorted ascending.
//   - The discovery (tree) edges are not listed. Children at row i are
//     exactly the next Children ids to be handed out, so a decoder rebuilds
//     them from counts alone.
//   - When the queue drains, the next root is searched circularly from the
//     requested root among vertices with no id and at least one out-edge.
//   - Vertices without any edge keep id -1.
//
// Ordering
//
//	The order in which fresh successors get their ids is pluggable:
//	  - RefCountOrdering (default) keeps ids of vertices referenced by many
//	    pending rows close together.
//	  - NaturalOrdering keeps successor-list order.
//	  - RandomOrdering shuffles with a fixed seed.
//
// Identity mode
//
//	WithIdentity skips relabeling: every vertex becomes the row with its own
//	id, nothing is a tree edge and the Ordering is never consulted.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E) plus the Ordering's sort cost.
//   - Memory: O(V) for ids, queue and deduplication stamps.
//
// Usage
//
//	res, err := bfs.Relabel(g, sink,
//	    bfs.WithRoot(0),
//	    bfs.WithContext(ctx),
//	    bfs.WithLogger(log),
//	)
//
// Errors
//
//   - ErrGraphNil, ErrSinkNil      for nil inputs.
//   - ErrRootOutOfRange           if the root is not a vertex.
//   - ErrOptionViolation          for invalid options.
//   - ErrNeighbors                if the graph fails to list successors.
//   - Wrapped sink and Ordering errors, or the context error.
package bfs
