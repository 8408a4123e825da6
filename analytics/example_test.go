package analytics_test

import (
	"fmt"

	"github.com/katalvlaran/gcbfs/analytics"
	"github.com/katalvlaran/gcbfs/core"
)

// ExamplePageRank ranks a small citation graph where vertex 2 is cited
// by everyone else.
func ExamplePageRank() {
	g, _ := core.NewAdjacencyList(4)
	_ = g.SetSuccessors(0, []int{2})
	_ = g.SetSuccessors(1, []int{0, 2})
	_ = g.SetSuccessors(2, []int{0})
	_ = g.SetSuccessors(3, []int{2})

	ranks, _ := analytics.PageRank(g, 50, analytics.DefaultAlpha)
	fmt.Println("top:", analytics.Top(ranks, 2))
	// Output:
	// top: [2 0]
}
