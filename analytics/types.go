// Package analytics computes whole-graph measures over any core.Graph by
// streaming its successor lists. A compressed graph is swept chunk by
// chunk, so the measures never need the decompressed adjacency in memory.
//
// Measures:
//
//	– PageRank(g, steps, alpha): power iteration with uniform teleport and
//	  dangling mass spread evenly over all vertices.
//	– Degrees(g): out-, in- and |in−out| degree distributions with summary
//	  moments, plus the number of reciprocated links.
//	– Top(values, k): indices of the k largest values.
//
// Errors (sentinel):
//
//	– ErrGraphNil    if the graph is nil.
//	– ErrBadAlpha    if alpha is outside [0,1].
//	– ErrBadSteps    if steps < 0.
package analytics

import "errors"

// Sentinel errors.
var (
	// ErrGraphNil indicates a nil graph.
	ErrGraphNil = errors.New("analytics: graph is nil")

	// ErrBadAlpha indicates a damping factor outside [0,1].
	ErrBadAlpha = errors.New("analytics: alpha must be in [0,1]")

	// ErrBadSteps indicates a negative iteration count.
	ErrBadSteps = errors.New("analytics: steps must be >= 0")
)

// DefaultAlpha is the usual damping factor.
const DefaultAlpha = 0.85

// Distribution counts vertices by degree: Count[d] is the number of
// vertices with degree d.
type Distribution struct {
	Count  []int64
	Mean   float64
	StdDev float64
	Max    int
}

// DegreeStats is the result of Degrees.
type DegreeStats struct {
	Out  Distribution
	In   Distribution
	Diff Distribution // |in − out|

	Edges      int64
	Reciprocal int64 // links v→w with w→v also present
}

// ReciprocalRatio is the share of links that are reciprocated.
func (s DegreeStats) ReciprocalRatio() float64 {
	if s.Edges == 0 {
		return 0
	}
	return float64(s.Reciprocal) / float64(s.Edges)
}
