package distance

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/locus"
	"github.com/katalvlaran/lociprox/spatial"
)

// pairKey identifies an unordered index pair.
type pairKey struct{ lo, hi int }

func keyOf(i, j int) pairKey {
	if i > j {
		i, j = j, i
	}
	return pairKey{lo: i, hi: j}
}

// collector accumulates edges and enforces the at-most-once pair invariant.
type collector struct {
	points  []locus.Locus
	seen    map[pairKey]struct{}
	touched []bool
	linked  []bool
	res     *Result
}

func newCollector(points []locus.Locus, res *Result) *collector {
	return &collector{
		points:  points,
		seen:    make(map[pairKey]struct{}),
		touched: make([]bool, len(points)),
		linked:  make([]bool, len(points)),
		res:     res,
	}
}

// add emits edge i–j unless the unordered pair was already emitted.
func (c *collector) add(i, j int, d float64, fallback bool) {
	k := keyOf(i, j)
	if _, dup := c.seen[k]; dup {
		return
	}
	c.seen[k] = struct{}{}
	c.res.Edges = append(c.res.Edges, Edge{A: c.points[i], B: c.points[j], Distance: d, Fallback: fallback})
	c.linked[i] = true
	c.linked[j] = true
	if fallback {
		c.res.Stats.FallbackEdges++
		return
	}
	c.touched[i] = true
	c.touched[j] = true
	c.res.Stats.ThresholdPairs++
}

// reportIsolated records and logs every point from index from onwards that
// ended up without any edge. Only a lone point or one with a non-finite
// coordinate can get here.
func (c *collector) reportIsolated(from int, log *zap.Logger) {
	if len(c.points) < 2 {
		return
	}
	for i := from; i < len(c.points); i++ {
		if c.linked[i] {
			continue
		}
		c.res.Stats.Isolated = append(c.res.Stats.Isolated, c.points[i].ID)
		log.Warn("locus left without any edge",
			zap.Int("index", i),
			zap.Stringer("locus", c.points[i].ID),
			zap.Bool("finite", c.points[i].Pos.Finite()))
	}
}

// ComputeProximateEdges returns every locus pair within threshold plus one
// nearest-neighbour fallback edge for each locus no such pair touches.
//
// Returns ErrInvalidThreshold for a non-positive or non-finite threshold,
// ErrOptionViolation / ErrInvalidRange for bad options and
// ErrRangeOutOfBounds when a range starts past the last point. An empty
// points slice is not an error. A point that still has no edge, which needs
// a non-finite coordinate or a single-point input, is logged and listed in
// Stats.Isolated.
func ComputeProximateEdges(points []locus.Locus, threshold float64, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !(threshold > 0) || math.IsInf(threshold, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}

	n := len(points)
	res := &Result{Stats: Stats{Points: n, Threshold: threshold, RangeStart: 0, RangeEnd: n - 1}}
	log := o.Logger.With(zap.Int("points", n), zap.Float64("threshold", threshold))

	if n == 0 {
		res.Stats.Mode = ModeIndexed
		if o.hasRange {
			res.Stats.Mode = ModeRange
		}
		res.Stats.RangeEnd = 0
		log.Info("no points, nothing to compare")
		return res, nil
	}

	if o.hasRange {
		if o.start >= n {
			return nil, fmt.Errorf("%w: start %d, %d points", ErrRangeOutOfBounds, o.start, n)
		}
		end := o.end
		if end >= n {
			log.Debug("clamping range end", zap.Int("requested", end), zap.Int("clamped", n-1))
			end = n - 1
		}
		res.Stats.Mode = ModeRange
		res.Stats.RangeStart, res.Stats.RangeEnd = o.start, end
		log.Info("brute-force range scan", zap.Int("start", o.start), zap.Int("end", end))
		c := newCollector(points, res)
		scanRange(points, threshold, o.start, end, c)
		c.reportIsolated(o.start, log)
		return res, nil
	}

	pos := positions(points)
	idx := selectIndex(pos, o.Strategy, log, &res.Stats)
	log.Info("all-pairs search", zap.String("mode", string(res.Stats.Mode)))
	c := newCollector(points, res)
	connect(idx, threshold, c)
	c.reportIsolated(0, log)

	return res, nil
}

// selectIndex picks the spatial strategy. The kd-tree is used unless brute
// force was forced or the capability probe rejects the points, in which
// case the fallback is logged and recorded.
func selectIndex(pos []locus.Vec3, s spatial.Strategy, log *zap.Logger, st *Stats) spatial.Index {
	if s == spatial.StrategyBruteForce {
		st.Mode = ModeBruteForce
		return spatial.NewBruteForce(pos)
	}
	if err := spatial.Probe(pos); err != nil {
		log.Warn("spatial index unavailable, falling back to brute force", zap.Error(err))
		st.Mode = ModeBruteForce
		st.FallbackReason = err.Error()
		return spatial.NewBruteForce(pos)
	}
	kd, err := spatial.NewKDTree(pos)
	if err != nil {
		// NewKDTree only rejects what Probe rejects.
		log.Warn("spatial index build failed, falling back to brute force", zap.Error(err))
		st.Mode = ModeBruteForce
		st.FallbackReason = err.Error()
		return spatial.NewBruteForce(pos)
	}
	st.Mode = ModeIndexed

	return kd
}

// connect emits threshold pairs from idx, then one fallback edge per
// untouched point.
func connect(idx spatial.Index, threshold float64, c *collector) {
	for _, p := range idx.Within(threshold) {
		c.add(p.I, p.J, p.Dist, false)
	}
	for i := 0; i < idx.Len(); i++ {
		if c.touched[i] {
			continue
		}
		if nb, ok := idx.Nearest(i); ok {
			c.add(i, nb.Index, nb.Dist, true)
		}
	}
}

func positions(points []locus.Locus) []locus.Vec3 {
	pos := make([]locus.Vec3, len(points))
	for i, p := range points {
		pos[i] = p.Pos
	}

	return pos
}
