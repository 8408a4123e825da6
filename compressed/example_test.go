package compressed_test

import (
	"bytes"
	"fmt"

	"github.com/katalvlaran/gcbfs/bitio"
	"github.com/katalvlaran/gcbfs/compress"
	"github.com/katalvlaran/gcbfs/compressed"
	"github.com/katalvlaran/gcbfs/core"
	"github.com/katalvlaran/gcbfs/meta"
)

// ExampleGraph_Successors queries single nodes of a compressed ring with
// a chord, in BFS ids and in original ids.
func ExampleGraph_Successors() {
	g, _ := core.NewAdjacencyList(4)
	_ = g.SetSuccessors(0, []int{1})
	_ = g.SetSuccessors(1, []int{2})
	_ = g.SetSuccessors(2, []int{0, 3})
	_ = g.SetSuccessors(3, []int{0})

	var buf bytes.Buffer
	res, _ := compress.Compress(g, &buf, compress.WithLevel(2), compress.WithVersion(meta.V1))
	cg, _ := compressed.Load(bitio.NewReader(buf.Bytes()), "ring")

	succ, _ := cg.Successors(2)
	fmt.Println("bfs 2:", succ)

	orig, _ := compressed.NewOriginal(cg, res.IDs())
	succ, _ = orig.Successors(2)
	fmt.Println("original 2:", succ)

	ok, _ := orig.IsNeighbor(3, 0)
	fmt.Println("3→0:", ok)
	// Output:
	// bfs 2: [0 3]
	// original 2: [0 3]
	// 3→0: true
}
