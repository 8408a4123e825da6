package bfs

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/katalvlaran/gcbfs/core"
)

// Scope is the traversal state an Ordering may consult.
type Scope interface {
	// Graph is the graph being relabeled.
	Graph() core.Graph
	// ID returns the BFS id of node, or -1 if it has none yet.
	ID(node int) int
}

// Ordering decides the order in which newly discovered successors receive
// their BFS ids. Implementations may keep state; Begin resets it.
type Ordering interface {
	// Begin is called once before the traversal starts.
	Begin(s Scope) error
	// Enqueued is called when node receives its id.
	Enqueued(node int) error
	// Expanding is called when node is dequeued, before Sort.
	Expanding(node int) error
	// Sort reorders candidates in place.
	Sort(candidates []int) error
}

// NaturalOrdering keeps candidates in successor-list order.
type NaturalOrdering struct{}

func (NaturalOrdering) Begin(Scope) error   { return nil }
func (NaturalOrdering) Enqueued(int) error  { return nil }
func (NaturalOrdering) Expanding(int) error { return nil }
func (NaturalOrdering) Sort([]int) error    { return nil }

// RandomOrdering shuffles candidates with a seeded generator, so runs with
// the same seed are reproducible.
type RandomOrdering struct {
	seed int64
	rng  *rand.Rand
}

// NewRandomOrdering returns a RandomOrdering seeded with seed.
func NewRandomOrdering(seed int64) *RandomOrdering {
	return &RandomOrdering{seed: seed}
}

func (o *RandomOrdering) Begin(Scope) error {
	o.rng = rand.New(rand.NewSource(o.seed))
	return nil
}
func (o *RandomOrdering) Enqueued(int) error  { return nil }
func (o *RandomOrdering) Expanding(int) error { return nil }

func (o *RandomOrdering) Sort(c []int) error {
	o.rng.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })
	return nil
}

// RefCountOrdering is the default heuristic. It favors candidates that are
// referenced by many vertices still waiting in the queue, so that their ids
// land close to the ids of the rows that will point to them:
//
//  1. higher live reference count first (references from queued vertices
//     that have not been expanded yet);
//  2. if both candidates are sinks, higher in-degree first;
//  3. otherwise fewer already-numbered own successors first;
//  4. then higher in-degree first.
//
// Remaining ties keep successor-list order. The heuristic is a compression
// ratio trade-off, not a correctness requirement.
type RefCountOrdering struct {
	s      Scope
	g      core.Graph
	refs   []int32
	inDeg  []int
	keys   []candidate
	failed error
}

type candidate struct {
	node    int
	refs    int32
	out     int
	visited int // lazily computed, -1 until needed
}

// NewRefCountOrdering returns the default ordering.
func NewRefCountOrdering() *RefCountOrdering {
	return &RefCountOrdering{}
}

// Begin sizes the counters and loads in-degrees when the graph has them.
func (o *RefCountOrdering) Begin(s Scope) error {
	o.s = s
	o.g = s.Graph()
	n := o.g.VertexCount()
	o.refs = make([]int32, n)
	o.inDeg = nil
	if n == 0 {
		return nil
	}
	if _, err := o.g.InDegree(0); errors.Is(err, core.ErrNotSupported) {
		return nil
	}
	in, err := core.InDegrees(o.g)
	if err != nil {
		return err
	}
	o.inDeg = in
	return nil
}

// Enqueued adds one reference to each successor of node.
func (o *RefCountOrdering) Enqueued(node int) error {
	succ, err := o.g.Successors(node)
	if err != nil {
		return err
	}
	for _, w := range succ {
		if err := core.CheckVertex(w, len(o.refs)); err != nil {
			return err
		}
		o.refs[w]++
	}
	return nil
}

// Expanding drops the references node held.
func (o *RefCountOrdering) Expanding(node int) error {
	succ, err := o.g.Successors(node)
	if err != nil {
		return err
	}
	for _, w := range succ {
		if err := core.CheckVertex(w, len(o.refs)); err != nil {
			return err
		}
		o.refs[w]--
	}
	return nil
}

// Sort applies the comparison chain with a stable sort.
func (o *RefCountOrdering) Sort(c []int) error {
	if len(c) < 2 {
		return nil
	}
	o.keys = o.keys[:0]
	for _, v := range c {
		out, err := o.g.OutDegree(v)
		if err != nil {
			return err
		}
		o.keys = append(o.keys, candidate{node: v, refs: o.refs[v], out: out, visited: -1})
	}
	o.failed = nil
	sort.SliceStable(o.keys, func(i, j int) bool { return o.less(&o.keys[i], &o.keys[j]) })
	if o.failed != nil {
		return o.failed
	}
	for i := range o.keys {
		c[i] = o.keys[i].node
	}
	return nil
}

func (o *RefCountOrdering) less(a, b *candidate) bool {
	if a.refs != b.refs {
		return a.refs > b.refs
	}
	if a.out == 0 && b.out == 0 {
		return o.in(a.node) > o.in(b.node)
	}
	va, vb := o.visited(a), o.visited(b)
	if va != vb {
		return va < vb
	}
	return o.in(a.node) > o.in(b.node)
}

func (o *RefCountOrdering) in(v int) int {
	if o.inDeg == nil {
		return 0
	}
	return o.inDeg[v]
}

// visited counts the successors of c that already have an id.
func (o *RefCountOrdering) visited(c *candidate) int {
	if c.visited >= 0 {
		return c.visited
	}
	succ, err := o.g.Successors(c.node)
	if err != nil {
		if o.failed == nil {
			o.failed = fmt.Errorf("%w: successors of %d: %v", ErrNeighbors, c.node, err)
		}
		c.visited = 0
		return 0
	}
	n := 0
	for _, w := range succ {
		if o.s.ID(w) != -1 {
			n++
		}
	}
	c.visited = n
	return n
}
