// SPDX-License-Identifier: MIT

// File: api.go
// Role: Whole-graph summaries.
package core

// GraphStats is a point-in-time summary of a Graph.
type GraphStats struct {
	VertexCount int
	EdgeCount   int

	// IsolatedCount is the number of vertices with no incident edge.
	IsolatedCount int

	Weighted bool
}

// Stats returns counts and configuration flags under a single consistent
// snapshot.
//
// Complexity: O(V).
func (g *Graph) Stats() GraphStats {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	st := GraphStats{
		VertexCount: len(g.vertices),
		EdgeCount:   len(g.edges),
		Weighted:    g.weighted,
	}
	for id := range g.vertices {
		if len(g.adjacencyList[id]) == 0 {
			st.IsolatedCount++
		}
	}

	return st
}
