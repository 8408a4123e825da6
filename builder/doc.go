// Package builder generates deterministic directed test graphs over the
// dense vertex range [0, n) as core.AdjacencyList values. The generators
// feed the compression tests, the benchmarks and the "generate" command.
//
// Composition
//
//	g, err := builder.BuildGraph(n, gopts, bopts, cons...)
//
// BuildGraph creates the vertices, resolves the BuilderOptions once and
// runs the constructors in order. Constructors only add edges, never add
// self-loops and skip edges that already exist, so they can be layered:
// a Cycle under a Copying model gives a strongly connected web-like graph.
//
// Constructors
//
//   - Path(n), Cycle(n), Star(n), Complete(n): on the first n vertices.
//   - Grid(rows, cols): 4-neighborhood lattice, row-major ids.
//   - RandomSparse(p): every ordered pair with probability p.
//   - RandomOut(d): d uniform successors per vertex.
//   - Copying(d, beta): the web copying model; successor lists repeat
//     across vertices, which is the structure the codec is built for.
//
// Options
//
//   - WithSeed(seed) / WithRand(r): RNG for the stochastic constructors;
//     without one they fail with ErrNeedRandSource.
//
// Errors
//
//	ErrTooFewVertices, ErrInvalidProbability, ErrNeedRandSource and
//	ErrConstructFailed, wrapped as "<Method>: <detail>: <sentinel>".
package builder
