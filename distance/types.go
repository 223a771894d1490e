// Package distance provides tunable options, result types and error
// definitions for the proximate-edge computation.
package distance

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/locus"
	"github.com/katalvlaran/lociprox/spatial"
)

// Sentinel errors for ComputeProximateEdges.
var (
	// ErrInvalidThreshold is returned for a threshold that is not positive and finite.
	ErrInvalidThreshold = errors.New("distance: threshold must be positive and finite")

	// ErrInvalidRange is returned for a negative or inverted index range.
	ErrInvalidRange = errors.New("distance: invalid index range")

	// ErrRangeOutOfBounds is returned when the range starts past the last point.
	ErrRangeOutOfBounds = errors.New("distance: range start beyond last point")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("distance: invalid option supplied")
)

// Mode names the computation path that produced a Result.
type Mode string

const (
	// ModeIndexed used a kd-tree over all points.
	ModeIndexed Mode = "kdtree"
	// ModeBruteForce scanned all pairs of all points.
	ModeBruteForce Mode = "bruteforce"
	// ModeRange scanned only the i-side window [start, end].
	ModeRange Mode = "range"
)

// Edge is an unordered locus pair with its Euclidean distance.
type Edge struct {
	A, B locus.Locus

	// Distance is the exact Euclidean distance between A and B.
	Distance float64

	// Fallback marks a nearest-neighbour edge added so that an otherwise
	// isolated locus keeps one connection; its distance may exceed the threshold.
	Fallback bool
}

// Stats summarizes one computation.
type Stats struct {
	Points    int
	Threshold float64
	Mode      Mode

	// FallbackReason is set when a kd-tree was wanted but the points were
	// rejected by the capability probe.
	FallbackReason string

	// RangeStart and RangeEnd are the effective i-side bounds (inclusive).
	RangeStart, RangeEnd int

	// ThresholdPairs counts edges with distance ≤ threshold.
	ThresholdPairs int

	// FallbackEdges counts nearest-neighbour edges added for isolated points.
	FallbackEdges int

	// Isolated lists points left without any edge. It stays empty for
	// finite input of two or more points.
	Isolated []locus.ID
}

// Result holds the emitted edges and the run statistics.
type Result struct {
	Edges []Edge
	Stats Stats
}

// Option configures ComputeProximateEdges via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters of one computation.
type Options struct {
	// Strategy selects the spatial index for full (non-range) runs.
	Strategy spatial.Strategy

	// Logger receives mode selection and fallback notices.
	Logger *zap.Logger

	hasRange   bool
	start, end int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with automatic strategy selection, no
// range restriction and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Strategy: spatial.StrategyAuto,
		Logger:   zap.NewNop(),
	}
}

// WithRange restricts the i side of the comparison to indices [start, end].
// Both bounds are inclusive; negative or inverted bounds are an error.
func WithRange(start, end int) Option {
	return func(o *Options) {
		if start < 0 || end < 0 || start > end {
			o.err = fmt.Errorf("%w: [%d,%d]", ErrInvalidRange, start, end)
			return
		}
		o.hasRange = true
		o.start, o.end = start, end
	}
}

// WithStrategy selects the spatial index strategy.
func WithStrategy(s spatial.Strategy) Option {
	return func(o *Options) {
		switch s {
		case spatial.StrategyAuto, spatial.StrategyIndexed, spatial.StrategyBruteForce:
			o.Strategy = s
		default:
			o.err = fmt.Errorf("%w: strategy %v", ErrOptionViolation, s)
		}
	}
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
