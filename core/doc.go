// SPDX-License-Identifier: MIT

// Package core provides the thread-safe, in-memory proximity graph that the
// analyzer builds from an edge file.
//
// The Graph G = (V,E) is simple and undirected. Vertices are locus ids
// (strings), edges carry the Euclidean distance of the pair as a float64
// weight.
//
//   - Constant-time pair lookups via nested maps:
//     adjacencyList[from][to] = edgeID, mirrored for both endpoints
//   - Collision-free atomic Edge.ID generation ("e1", "e2", ...)
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//   - Deterministic iteration: Vertices() and AdjacencyList() neighbour
//     lists sorted lexicographically
//
// Configuration Options (GraphOption):
//
//	- WithWeighted()
//	    Permits non-zero weights; otherwise AddEdge(weight != 0) returns ErrBadWeight.
//
// Self-loops are refused with ErrLoopNotAllowed and a second edge between
// a connected pair with ErrMultiEdgeNotAllowed. Callers that feed the graph
// raw edge records treat the latter as "pair already present".
//
// Lock order is always muVert then muEdgeAdj.
package core
