package core_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lociprox/core"
)

// ExampleGraph builds a small proximity graph and shows that a repeated
// pair is rejected rather than duplicated.
func ExampleGraph() {
	g := core.NewGraph(core.WithWeighted())

	_, _ = g.AddEdge("chr1(mat):100", "chr1(mat):200", 1.5)
	_, _ = g.AddEdge("chr1(mat):200", "chr1(mat):300", 2.0)
	_, err := g.AddEdge("chr1(mat):200", "chr1(mat):100", 1.5)
	fmt.Println("duplicate rejected:", errors.Is(err, core.ErrMultiEdgeNotAllowed))

	fmt.Println("vertices:", g.Vertices())
	fmt.Println("edges:", g.Stats().EdgeCount)
	fmt.Println("neighbors of 200:", g.AdjacencyList()["chr1(mat):200"])

	// Output:
	// duplicate rejected: true
	// vertices: [chr1(mat):100 chr1(mat):200 chr1(mat):300]
	// edges: 2
	// neighbors of 200: [chr1(mat):100 chr1(mat):300]
}
