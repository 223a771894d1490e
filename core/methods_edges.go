// SPDX-License-Identifier: MIT

// File: methods_edges.go
// Role: Edge insertion.
package core

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// AddEdge inserts an undirected edge between from and to and returns its ID.
// Missing endpoints are created.
//
// Implementation:
//   - Stage 1: Validate IDs, reject loops, check the weight policy.
//   - Stage 2: Lock muVert then muEdgeAdj; ensure both endpoints exist.
//   - Stage 3: Reject the pair if it is already connected.
//   - Stage 4: Allocate the ID, store the edge, mirror the adjacency.
//
// Errors:
//   - ErrEmptyVertexID: either endpoint is "".
//   - ErrLoopNotAllowed: from == to.
//   - ErrBadWeight: weight is NaN/Inf, or non-zero on an unweighted graph.
//   - ErrMultiEdgeNotAllowed: the pair is already connected.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight float64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to {
		return "", fmt.Errorf("%w: %s", ErrLoopNotAllowed, from)
	}
	if !validWeight(weight) || (!g.weighted && weight != 0) {
		return "", fmt.Errorf("%w: %v", ErrBadWeight, weight)
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	g.ensureVertexLocked(from)
	g.ensureVertexLocked(to)

	if _, ok := g.adjacencyList[from][to]; ok {
		return "", fmt.Errorf("%w: %s-%s", ErrMultiEdgeNotAllowed, from, to)
	}

	e := &Edge{ID: edgeID(atomic.AddUint64(&g.nextEdgeID, 1)), From: from, To: to, Weight: weight}
	g.edges[e.ID] = e
	g.link(from, to, e.ID)
	g.link(to, from, e.ID)

	return e.ID, nil
}

// link records eid under adjacencyList[u][v]. Caller holds muEdgeAdj.
func (g *Graph) link(u, v, eid string) {
	inner, ok := g.adjacencyList[u]
	if !ok {
		inner = make(map[string]string)
		g.adjacencyList[u] = inner
	}
	inner[v] = eid
}

func edgeID(n uint64) string {
	buf := make([]byte, 0, 1+20)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}
