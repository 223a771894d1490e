// SPDX-License-Identifier: MIT

// File: methods_adjacent.go
// Role: Adjacency snapshot.
// Determinism:
//   - neighbour lists are sorted lexicographically.
package core

import "sort"

// AdjacencyList returns, for every vertex, the sorted IDs of its
// neighbours. Vertices without edges map to an empty slice. The result is a
// snapshot; mutating it does not affect g.
//
// Complexity: O(V + E log E).
func (g *Graph) AdjacencyList() map[string][]string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make(map[string][]string, len(g.vertices))
	for id := range g.vertices {
		nbs := make([]string, 0, len(g.adjacencyList[id]))
		for nb := range g.adjacencyList[id] {
			nbs = append(nbs, nb)
		}
		sort.Strings(nbs)
		out[id] = nbs
	}

	return out
}
