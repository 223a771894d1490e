// SPDX-License-Identifier: MIT

// File: methods_vertices.go
// Role: Vertex insertion and enumeration.
// Determinism:
//   - Vertices() returns IDs sorted lexicographically.
package core

import "sort"

// AddVertex inserts a vertex with the given id. Adding an existing id is a
// no-op.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.ensureVertexLocked(id)

	return nil
}

// ensureVertexLocked creates id if missing. Caller holds muVert for writing.
func (g *Graph) ensureVertexLocked(id string) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = &Vertex{ID: id}
}

// Vertices returns all vertex IDs sorted ascending.
//
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	g.muVert.RUnlock()
	sort.Strings(ids)

	return ids
}
