// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lociprox/core"
)

// TestConcurrentAddEdge ensures concurrent AddEdge calls from one hub are
// safe and every spoke appears exactly once.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := g.AddEdge("X", fmt.Sprintf("V%d", id), float64(id))
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.Len(t, g.AdjacencyList()["X"], num)
	require.Equal(t, num, g.Stats().EdgeCount)
}

// TestConcurrentDuplicateEdge races many writers on the same pair; exactly
// one wins and the rest see ErrMultiEdgeNotAllowed.
func TestConcurrentDuplicateEdge(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	const num = 64
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func() {
			defer wg.Done()
			_, err := g.AddEdge("a", "b", 1)
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			require.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	require.Equal(t, 1, g.Stats().EdgeCount)
}

// TestConcurrentReadsDuringWrites mixes readers with writers; run with -race.
func TestConcurrentReadsDuringWrites(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = g.AddEdge(fmt.Sprintf("u%d", i), fmt.Sprintf("u%d", i+1), 1)
		}(i)
		go func() {
			defer wg.Done()
			_ = g.Vertices()
			_ = g.AdjacencyList()
			_ = g.Stats()
		}()
	}
	wg.Wait()
	require.Equal(t, 51, g.Stats().VertexCount)
}
