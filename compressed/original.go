package compressed

import (
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/gcbfs/core"
	"github.com/katalvlaran/gcbfs/idmap"
	"github.com/katalvlaran/gcbfs/netfile"
)

// Original presents a compressed graph in its original id space, using
// the id map written at compression time. Like Graph it is not safe for
// concurrent use.
type Original struct {
	g   *Graph
	ids []int // original → BFS, -1 for isolated
	inv []int // BFS → original
}

var _ core.Graph = (*Original)(nil)

// NewOriginal wraps g with its id map.
func NewOriginal(g *Graph, ids []int) (*Original, error) {
	if len(ids) != g.info.Nodes {
		return nil, fmt.Errorf("%w: %d entries for %d nodes", idmap.ErrFormat, len(ids), g.info.Nodes)
	}
	inv, err := idmap.Invert(ids, g.info.Used())
	if err != nil {
		return nil, err
	}
	return &Original{g: g, ids: ids, inv: inv}, nil
}

func (o *Original) Name() string              { return o.g.Name() }
func (o *Original) VertexCount() int          { return o.g.VertexCount() }
func (o *Original) EdgeCount() int64          { return o.g.EdgeCount() }
func (o *Original) InDegree(int) (int, error) { return 0, core.ErrNotSupported }

func (o *Original) id(v int) (int, error) {
	if v < 0 || v >= len(o.ids) {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrNodeOutOfRange, v, len(o.ids))
	}
	return o.ids[v], nil
}

// Successors returns the original ids of v's successors, ascending.
func (o *Original) Successors(v int) ([]int, error) {
	id, err := o.id(v)
	if err != nil || id < 0 {
		return []int{}, err
	}
	succ, err := o.g.Successors(id)
	if err != nil {
		return nil, err
	}
	for i, s := range succ {
		succ[i] = o.inv[s]
	}
	sort.Ints(succ)
	return succ, nil
}

// OutDegree implements core.Graph.
func (o *Original) OutDegree(v int) (int, error) {
	id, err := o.id(v)
	if err != nil || id < 0 {
		return 0, err
	}
	return o.g.OutDegree(id)
}

// IsNeighbor implements core.Graph.
func (o *Original) IsNeighbor(from, to int) (bool, error) {
	a, err := o.id(from)
	if err != nil {
		return false, err
	}
	b, err := o.id(to)
	if err != nil {
		return false, err
	}
	if a < 0 || b < 0 {
		return false, nil
	}
	return o.g.IsNeighbor(a, b)
}

// WriteASCII prints the graph in the .net text format. With a nil ids the
// BFS ids are printed; otherwise nodes and successors are translated back
// to their original ids.
func (g *Graph) WriteASCII(w io.Writer, ids []int) error {
	if ids == nil {
		return netfile.Write(w, g)
	}
	o, err := NewOriginal(g, ids)
	if err != nil {
		return err
	}
	return netfile.Write(w, o)
}
