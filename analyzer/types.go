// Package analyzer provides tunable options, result types and error
// definitions for proximity graph analysis.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/components"
	"github.com/katalvlaran/lociprox/core"
	"github.com/katalvlaran/lociprox/edgeio"
	"github.com/katalvlaran/lociprox/locus"
)

// Sentinel errors for Analyze.
var (
	// ErrInvalidThreshold is returned for a threshold that is not positive and finite.
	ErrInvalidThreshold = errors.New("analyzer: threshold must be positive and finite")

	// ErrThresholdAboveGeneration is returned when the analysis threshold
	// exceeds the threshold the edge file was generated with.
	ErrThresholdAboveGeneration = errors.New("analyzer: threshold above generation threshold")

	// ErrMissingUniverse is returned for AllLoci without a locus universe.
	ErrMissingUniverse = errors.New("analyzer: node mode all_bins needs a locus universe")

	// ErrUnknownNodeMode is returned for an unrecognized node mode.
	ErrUnknownNodeMode = errors.New("analyzer: unknown node mode")

	// ErrNilSource is returned when src is nil.
	ErrNilSource = errors.New("analyzer: edge source is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("analyzer: invalid option supplied")
)

// NodeMode selects the node universe of the graph.
type NodeMode int

const (
	// LeqThresholdEndpoints keeps only endpoints of edges within the threshold.
	LeqThresholdEndpoints NodeMode = iota
	// AllEdgeEndpoints keeps every endpoint of every edge record.
	AllEdgeEndpoints
	// AllLoci keeps every locus of the supplied universe.
	AllLoci
)

var nodeModeNames = [...]string{"leq_thr_endpoints", "all_distance_endpoints", "all_bins"}

func (m NodeMode) String() string {
	if m < 0 || int(m) >= len(nodeModeNames) {
		return fmt.Sprintf("NodeMode(%d)", int(m))
	}

	return nodeModeNames[m]
}

// MarshalYAML writes the mode by name.
func (m NodeMode) MarshalYAML() (interface{}, error) { return m.String(), nil }

// ParseNodeMode accepts the file-format names (leq_thr_endpoints,
// all_distance_endpoints, all_bins) and the Go-style names
// (LEQ_THRESHOLD_ENDPOINTS, ALL_EDGE_ENDPOINTS, ALL_LOCI), case-insensitively.
func ParseNodeMode(s string) (NodeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "leq_thr_endpoints", "leq_threshold_endpoints":
		return LeqThresholdEndpoints, nil
	case "all_distance_endpoints", "all_edge_endpoints":
		return AllEdgeEndpoints, nil
	case "all_bins", "all_loci":
		return AllLoci, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownNodeMode, s)
}

// Option configures Analyze via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters of one analysis.
type Options struct {
	// Ctx allows cancellation while the edge source is consumed.
	Ctx context.Context

	// Universe is the locus set for AllLoci.
	Universe []locus.ID

	// GenerationThreshold, if > 0, is the threshold the edges were
	// generated with; analysis thresholds above it are rejected.
	GenerationThreshold float64

	// Logger receives progress and data-quality notices.
	Logger *zap.Logger

	hasUniverse bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, no universe,
// no generation threshold and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Logger: zap.NewNop(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithUniverse supplies the locus universe for AllLoci. An empty, non-nil
// slice is a valid (empty) universe.
func WithUniverse(ids []locus.ID) Option {
	return func(o *Options) {
		if ids == nil {
			o.err = fmt.Errorf("%w: nil universe", ErrOptionViolation)
			return
		}
		o.Universe = ids
		o.hasUniverse = true
	}
}

// WithGenerationThreshold records the edge-file generation threshold.
func WithGenerationThreshold(t float64) Option {
	return func(o *Options) {
		if !(t > 0) || math.IsInf(t, 1) {
			o.err = fmt.Errorf("%w: generation threshold %v", ErrOptionViolation, t)
			return
		}
		o.GenerationThreshold = t
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

// Stats are the connectivity metrics of one analysis. Field order matches
// the metrics file.
type Stats struct {
	Threshold     float64  `yaml:"threshold"`
	NodeMode      NodeMode `yaml:"node_mode"`
	NumNodes      int      `yaml:"num_nodes"`
	NumEdges      int      `yaml:"num_edges"`
	NumComponents int      `yaml:"num_components"`
	LargestCCSize int      `yaml:"largest_cc_size"`
	AvgClustering float64  `yaml:"avg_clustering"`
	Density       float64  `yaml:"density"`

	// SkippedRecords counts malformed edge lines and self-pair records.
	// It is not part of the metrics file.
	SkippedRecords int `yaml:"skipped_records"`
}

// LargestRatio returns LargestCCSize / NumNodes, or 0 without nodes.
func (s Stats) LargestRatio() float64 {
	if s.NumNodes == 0 {
		return 0
	}

	return float64(s.LargestCCSize) / float64(s.NumNodes)
}

// Result is the outcome of Analyze.
type Result struct {
	Stats      Stats
	Components []components.Component

	// Labels maps each locus_id to its component ID.
	Labels map[string]int

	// Graph is the analysed proximity graph.
	Graph *core.Graph
}

// EdgeSource yields edge records until io.EOF. edgeio.Reader and
// edgeio.SliceSource implement it.
type EdgeSource = edgeio.Source
