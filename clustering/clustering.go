// Package clustering computes local and average clustering coefficients and
// edge density of an undirected core.Graph.
//
// Local clustering of v with degree d ≥ 2 is 2·T(v) / (d·(d−1)), where T(v)
// counts edges among v's neighbours; vertices with d < 2 score 0. The
// average is taken over all vertices, zeros included, and is 0 for an empty
// graph.
package clustering

import (
	"errors"

	"github.com/katalvlaran/lociprox/core"
)

// ErrGraphNil is returned for a nil graph.
var ErrGraphNil = errors.New("clustering: graph is nil")

// Local returns the clustering coefficient of every vertex.
//
// Complexity: O(Σ d(v)²) time.
func Local(g *core.Graph) (map[string]float64, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	adj := neighbourSets(g.AdjacencyList())
	out := make(map[string]float64, len(adj))
	for v, nbs := range adj {
		d := len(nbs)
		if d < 2 {
			out[v] = 0
			continue
		}
		list := make([]string, 0, d)
		for u := range nbs {
			list = append(list, u)
		}
		links := 0
		for i := 0; i < d; i++ {
			ai := adj[list[i]]
			for j := i + 1; j < d; j++ {
				if _, ok := ai[list[j]]; ok {
					links++
				}
			}
		}
		out[v] = 2 * float64(links) / float64(d*(d-1))
	}

	return out, nil
}

// Average returns the mean local clustering coefficient over all vertices.
func Average(g *core.Graph) (float64, error) {
	local, err := Local(g)
	if err != nil {
		return 0, err
	}
	if len(local) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, c := range local {
		sum += c
	}

	return sum / float64(len(local)), nil
}

// Density returns 2m / (n·(n−1)) for n vertices and m edges, or 0 when
// n < 2.
func Density(g *core.Graph) (float64, error) {
	if g == nil {
		return 0, ErrGraphNil
	}
	st := g.Stats()
	n := st.VertexCount
	if n < 2 {
		return 0, nil
	}

	return 2 * float64(st.EdgeCount) / (float64(n) * float64(n-1)), nil
}

// neighbourSets turns the adjacency snapshot into sets.
func neighbourSets(adj map[string][]string) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{}, len(adj))
	for v, nbs := range adj {
		set := make(map[string]struct{}, len(nbs))
		for _, u := range nbs {
			set[u] = struct{}{}
		}
		out[v] = set
	}

	return out
}
