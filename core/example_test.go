package core_test

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/core"
)

// ExampleAdjacencyList demonstrates building and querying a small graph.
func ExampleAdjacencyList() {
	// 1) Create a 4-vertex directed graph:
	g, _ := core.NewAdjacencyList(4, core.WithName("demo"))

	// 2) Add edges in any order; successor lists stay sorted:
	_ = g.AddEdge(0, 2)
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(2, 0)

	// 3) Query:
	succ, _ := g.Successors(0)
	in, _ := g.InDegree(0)
	isolated, _ := core.CountIsolated(g)
	fmt.Println("succ(0):", succ)
	fmt.Println("in(0):", in)
	fmt.Println("isolated:", isolated)

	// Output:
	// succ(0): [1 2]
	// in(0): 1
	// isolated: 1
}
