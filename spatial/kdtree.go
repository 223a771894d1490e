package spatial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/katalvlaran/lociprox/locus"
)

// slack widens squared search radii so that the exact Euclidean filter
// applied afterwards sees every candidate the brute-force scan would accept.
const slack = 1e-9

// KDTree is an Index backed by a gonum kd-tree.
type KDTree struct {
	points []locus.Vec3
	tree   *kdtree.Tree
}

var _ Index = (*KDTree)(nil)

// NewKDTree builds a kd-tree over points. It fails with the Probe error
// when the points cannot be indexed.
// Complexity: O(n log n) time, O(n) memory.
func NewKDTree(points []locus.Vec3) (*KDTree, error) {
	if err := Probe(points); err != nil {
		return nil, err
	}
	// kdtree.New reorders its input; each node remembers its original index.
	nodes := make(kdPoints, len(points))
	for i, p := range points {
		nodes[i] = kdPoint{pos: p, idx: i}
	}

	return &KDTree{points: points, tree: kdtree.New(nodes, false)}, nil
}

// Name implements Index.
func (t *KDTree) Name() string { return "kdtree" }

// Len implements Index.
func (t *KDTree) Len() int { return len(t.points) }

// Within implements Index using one radius query per point.
func (t *KDTree) Within(r float64) []Pair {
	var out []Pair
	r2 := widen(r * r)
	for i, p := range t.points {
		for _, c := range t.query(kdtree.NewDistKeeper(r2), p) {
			j := c.idx
			if j <= i {
				continue
			}
			if d := Euclidean(p, t.points[j]); d <= r {
				out = append(out, Pair{I: i, J: j, Dist: d})
			}
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})

	return out
}

// Nearest implements Index. A k=2 query (self plus one) finds the nearest
// distance; a radius query at that distance then collects every tied point
// so the lowest index can be chosen.
func (t *KDTree) Nearest(i int) (Neighbor, bool) {
	n := len(t.points)
	if n < 2 || i < 0 || i >= n {
		return Neighbor{}, false
	}
	p := t.points[i]

	minSq := math.Inf(1)
	for _, c := range t.query(kdtree.NewNKeeper(2), p) {
		if c.idx == i {
			continue
		}
		if s := squared(p, t.points[c.idx]); s < minSq {
			minSq = s
		}
	}
	if math.IsInf(minSq, 1) {
		return Neighbor{}, false
	}

	best := Neighbor{Index: -1, Dist: math.Inf(1)}
	for _, c := range t.query(kdtree.NewDistKeeper(widen(minSq)), p) {
		if c.idx == i {
			continue
		}
		if d := Euclidean(p, t.points[c.idx]); better(d, c.idx, best.Dist, best.Index) {
			best = Neighbor{Index: c.idx, Dist: d}
		}
	}

	return best, best.Index >= 0
}

// query runs a set search and returns the retained points, dropping the
// sentinel entry a keeper may still hold.
func (t *KDTree) query(k kdtree.Keeper, q locus.Vec3) []kdPoint {
	t.tree.NearestSet(k, kdPoint{pos: q, idx: -1})

	var heap kdtree.Heap
	switch kk := k.(type) {
	case *kdtree.DistKeeper:
		heap = kk.Heap
	case *kdtree.NKeeper:
		heap = kk.Heap
	}
	out := make([]kdPoint, 0, len(heap))
	for _, c := range heap {
		if c.Comparable == nil {
			continue
		}
		out = append(out, c.Comparable.(kdPoint))
	}

	return out
}

func widen(sq float64) float64 { return sq * (1 + slack) }

// kdPoint is a kdtree.Comparable that remembers its position in the input.
type kdPoint struct {
	pos locus.Vec3
	idx int
}

// Compare returns the signed distance of p from the plane through c
// perpendicular to dimension d.
func (p kdPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.pos[d] - c.(kdPoint).pos[d]
}

// Dims is always 3.
func (p kdPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, as gonum's keepers expect.
func (p kdPoint) Distance(c kdtree.Comparable) float64 {
	return squared(p.pos, c.(kdPoint).pos)
}

// kdPoints is the kdtree.Interface handed to kdtree.New.
type kdPoints []kdPoint

func (p kdPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p kdPoints) Len() int                              { return len(p) }
func (p kdPoints) Pivot(d kdtree.Dim) int                { return kdPlane{Dim: d, kdPoints: p}.Pivot() }
func (p kdPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// kdPlane sorts kdPoints along a single dimension for median partitioning.
type kdPlane struct {
	kdtree.Dim
	kdPoints
}

func (p kdPlane) Less(i, j int) bool {
	return p.kdPoints[i].pos[p.Dim] < p.kdPoints[j].pos[p.Dim]
}
func (p kdPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.kdPoints = p.kdPoints[start:end]
	return p
}
func (p kdPlane) Swap(i, j int) {
	p.kdPoints[i], p.kdPoints[j] = p.kdPoints[j], p.kdPoints[i]
}
