// SPDX-License-Identifier: MIT

package components

import (
	"errors"
	"sort"

	"github.com/katalvlaran/lociprox/core"
)

// ErrGraphNil is returned when a nil graph is passed to Find.
var ErrGraphNil = errors.New("components: graph is nil")

// Component is one maximal connected vertex set.
type Component struct {
	// ID is the 1-based component number.
	ID int

	// Members are the vertex IDs, sorted ascending.
	Members []string
}

// Size returns the number of members.
func (c Component) Size() int { return len(c.Members) }

// Find returns the connected components of g numbered as described in the
// package documentation. An empty graph yields an empty, non-nil slice.
func Find(g *core.Graph) ([]Component, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	adj := g.AdjacencyList()
	order := g.Vertices()
	seen := make(map[string]bool, len(order))
	comps := make([]Component, 0)

	for _, seed := range order {
		if seen[seed] {
			continue
		}
		queue := []string{seed}
		seen[seed] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, nb := range adj[queue[qi]] {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Strings(queue)
		comps = append(comps, Component{ID: len(comps) + 1, Members: queue})
	}

	return comps, nil
}

// Largest returns the component with the most members; ties go to the
// lower ID. ok is false when comps is empty.
func Largest(comps []Component) (c Component, ok bool) {
	for _, cur := range comps {
		if !ok || cur.Size() > c.Size() {
			c, ok = cur, true
		}
	}

	return c, ok
}

// Labels maps every member to its component ID.
func Labels(comps []Component) map[string]int {
	n := 0
	for _, c := range comps {
		n += c.Size()
	}
	out := make(map[string]int, n)
	for _, c := range comps {
		for _, m := range c.Members {
			out[m] = c.ID
		}
	}

	return out
}
