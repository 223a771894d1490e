// SPDX-License-Identifier: MIT

// File: types.go
// Role: Vertex, Edge, Graph, GraphOption, sentinel errors and NewGraph.
package core

import (
	"errors"
	"math"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrBadWeight indicates a non-zero weight on an unweighted graph, or a
	// weight that is NaN or infinite.
	ErrBadWeight = errors.New("core: bad edge weight")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a second edge between an already
	// connected pair.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// edgeIDPrefix is the textual prefix of generated edge IDs.
const edgeIDPrefix = 'e'

// Vertex is a node of the graph.
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID string
}

// Edge is an undirected connection between two vertices.
//
// From and To keep the orientation the edge was added with; the graph
// itself treats them symmetrically.
type Edge struct {
	// ID uniquely identifies this edge in the Graph.
	ID string

	// From and To are the endpoint vertex IDs.
	From, To string

	// Weight is the pair distance (0 on unweighted graphs).
	Weight float64
}

// GraphOption configures a Graph before first use.
type GraphOption func(g *Graph)

// WithWeighted permits non-zero edge weights.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// Graph is a thread-safe simple undirected graph.
//
// muVert guards vertices; muEdgeAdj guards edges and adjacencyList. Always
// lock muVert before muEdgeAdj.
type Graph struct {
	muVert    sync.RWMutex
	muEdgeAdj sync.RWMutex

	weighted bool

	nextEdgeID uint64

	vertices map[string]*Vertex
	edges    map[string]*Edge

	// adjacencyList[u][v] is the ID of the edge u-v, mirrored under
	// [v][u].
	adjacencyList map[string]map[string]string
}

// NewGraph returns an empty Graph configured by opts.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:      make(map[string]*Vertex),
		edges:         make(map[string]*Edge),
		adjacencyList: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0)
}
