package spatial

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lociprox/locus"
)

// Sentinel errors reported by Probe and the index constructors.
var (
	// ErrNoPoints indicates an empty point set.
	ErrNoPoints = errors.New("spatial: no points")

	// ErrNonFinite indicates a NaN or infinite coordinate, which a kd-tree cannot partition.
	ErrNonFinite = errors.New("spatial: non-finite coordinate")

	// ErrUnknownStrategy indicates an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("spatial: unknown strategy")
)

// Strategy selects how an Index is chosen.
type Strategy int

const (
	// StrategyAuto uses the kd-tree when Probe accepts the points, brute force otherwise.
	StrategyAuto Strategy = iota
	// StrategyIndexed asks for the kd-tree; it still degrades to brute force if Probe rejects.
	StrategyIndexed
	// StrategyBruteForce always scans all pairs.
	StrategyBruteForce
)

// String returns the strategy name used in configuration.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyIndexed:
		return "indexed"
	case StrategyBruteForce:
		return "bruteforce"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a configuration name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StrategyAuto, nil
	case "indexed", "kdtree":
		return StrategyIndexed, nil
	case "bruteforce", "brute-force", "brute":
		return StrategyBruteForce, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Pair is an unordered point pair with I < J.
type Pair struct {
	I, J int
	Dist float64
}

// Neighbor is the nearest other point to a query point.
type Neighbor struct {
	Index int
	Dist  float64
}

// Index is a spatial search strategy over an immutable point set.
type Index interface {
	// Name identifies the strategy in logs and reports.
	Name() string

	// Len is the number of indexed points.
	Len() int

	// Within returns all pairs with distance ≤ r, ordered by (I, J).
	Within(r float64) []Pair

	// Nearest returns the closest point to i other than i itself.
	// Among equal distances the lowest index wins. ok is false when
	// the set holds fewer than two points.
	Nearest(i int) (nb Neighbor, ok bool)
}

// Euclidean returns the straight-line distance between a and b.
func Euclidean(a, b locus.Vec3) float64 {
	return math.Sqrt(squared(a, b))
}

func squared(a, b locus.Vec3) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]

	return dx*dx + dy*dy + dz*dz
}

// Probe reports whether a kd-tree can index points. A nil result means
// NewKDTree will succeed.
func Probe(points []locus.Vec3) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	for i, p := range points {
		if !p.Finite() {
			return fmt.Errorf("%w: point %d = %v", ErrNonFinite, i, p)
		}
	}

	return nil
}

// better reports whether candidate (d, j) beats the current best (bestD, bestJ).
func better(d float64, j int, bestD float64, bestJ int) bool {
	return d < bestD || (d == bestD && j < bestJ)
}
