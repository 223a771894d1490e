package distance

import (
	"math"

	"github.com/katalvlaran/lociprox/locus"
	"github.com/katalvlaran/lociprox/spatial"
)

// candidate is the best nearest-neighbour seen so far for one point.
type candidate struct {
	idx  int
	dist float64
}

// scanRange is the windowed brute-force pass.
//
// For every i in [start, end] it compares i with every j > i, emitting
// threshold edges. Each computed distance also updates the nearest candidate
// of both endpoints, visiting candidates in ascending index order, so:
//
//   - an in-range point learns its nearest among all indices ≥ start;
//   - a point after end learns its nearest in-range point.
//
// Points with index ≥ start that no threshold edge touched then receive one
// fallback edge to their candidate. Points before start are left to the
// chunk that owns them.
//
// Complexity: O((end-start+1)·n) time, O(n) memory besides the edges.
func scanRange(points []locus.Locus, threshold float64, start, end int, c *collector) {
	n := len(points)
	best := make([]candidate, n)
	for k := range best {
		best[k] = candidate{idx: -1, dist: math.Inf(1)}
	}

	for i := start; i <= end; i++ {
		pi := points[i].Pos
		for j := i + 1; j < n; j++ {
			d := spatial.Euclidean(pi, points[j].Pos)
			if d <= threshold {
				c.add(i, j, d, false)
			}
			if d < best[i].dist {
				best[i] = candidate{idx: j, dist: d}
			}
			if d < best[j].dist {
				best[j] = candidate{idx: i, dist: d}
			}
		}
	}

	for p := start; p < n; p++ {
		if c.touched[p] || best[p].idx < 0 {
			continue
		}
		c.add(p, best[p].idx, best[p].dist, true)
	}
}
