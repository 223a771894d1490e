package spatial

import (
	"math"

	"github.com/katalvlaran/lociprox/locus"
)

// BruteForce is an Index that compares every pair of points.
type BruteForce struct {
	points []locus.Vec3
}

var _ Index = (*BruteForce)(nil)

// NewBruteForce wraps points without copying them; callers must not mutate
// the slice while the index is in use.
func NewBruteForce(points []locus.Vec3) *BruteForce {
	return &BruteForce{points: points}
}

// Name implements Index.
func (b *BruteForce) Name() string { return "bruteforce" }

// Len implements Index.
func (b *BruteForce) Len() int { return len(b.points) }

// Within implements Index. Pairs come out already ordered by (I, J).
func (b *BruteForce) Within(r float64) []Pair {
	var out []Pair
	n := len(b.points)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := Euclidean(b.points[i], b.points[j]); d <= r {
				out = append(out, Pair{I: i, J: j, Dist: d})
			}
		}
	}

	return out
}

// Nearest implements Index with a single ascending scan, so the first of
// several equidistant points is kept.
func (b *BruteForce) Nearest(i int) (Neighbor, bool) {
	n := len(b.points)
	if n < 2 || i < 0 || i >= n {
		return Neighbor{}, false
	}
	best := Neighbor{Index: -1, Dist: math.Inf(1)}
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		if d := Euclidean(b.points[i], b.points[j]); d < best.Dist {
			best = Neighbor{Index: j, Dist: d}
		}
	}

	return best, best.Index >= 0
}
