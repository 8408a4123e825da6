package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/bfs"
	"github.com/katalvlaran/gcbfs/core"
)

// ExampleRelabel shows the rows produced for a small graph: tree edges
// disappear from the rows and survive only as child counts.
func ExampleRelabel() {
	g, _ := core.NewAdjacencyList(4)
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(0, 2)
	_ = g.AddEdge(1, 2)
	_ = g.AddEdge(2, 3)
	_ = g.AddEdge(3, 0)

	res, _ := bfs.Relabel(g, bfs.RowSinkFunc(func(r bfs.Row) error {
		fmt.Printf("id=%d node=%d children=%d succ=%v\n", r.ID, r.Node, r.Children, r.Successors)
		return nil
	}), bfs.WithOrdering(bfs.NaturalOrdering{}))
	fmt.Println("ids:", res.IDs)

	// Output:
	// id=0 node=0 children=2 succ=[]
	// id=1 node=1 children=0 succ=[2]
	// id=2 node=2 children=1 succ=[]
	// id=3 node=3 children=0 succ=[0]
	// ids: [0 1 2 3]
}
