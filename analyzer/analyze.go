package analyzer

import (
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/clustering"
	"github.com/katalvlaran/lociprox/components"
	"github.com/katalvlaran/lociprox/core"
)

// ctxCheckEvery is how many records are consumed between context checks.
const ctxCheckEvery = 4096

// skipper is implemented by sources that drop malformed lines.
type skipper interface {
	Skipped() int
}

// Analyze builds the proximity graph of src at threshold and computes its
// connected components and connectivity metrics.
//
// Nodes are chosen by mode:
//   - LeqThresholdEndpoints: endpoints of records with distance ≤ threshold.
//   - AllEdgeEndpoints: endpoints of every record, whatever its distance.
//   - AllLoci: the universe from WithUniverse, plus any endpoint of a
//     record within the threshold.
//
// Edges are the records with distance ≤ threshold. A pair that repeats
// collapses to one edge; a record joining a locus to itself is skipped.
//
// src is consumed exactly once.
func Analyze(src EdgeSource, threshold float64, mode NodeMode, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if src == nil {
		return nil, ErrNilSource
	}
	if !(threshold > 0) || math.IsInf(threshold, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	if o.GenerationThreshold > 0 && threshold > o.GenerationThreshold {
		return nil, fmt.Errorf("%w: %v > %v", ErrThresholdAboveGeneration, threshold, o.GenerationThreshold)
	}
	switch mode {
	case LeqThresholdEndpoints, AllEdgeEndpoints:
	case AllLoci:
		if !o.hasUniverse {
			return nil, ErrMissingUniverse
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownNodeMode, mode)
	}

	log := o.Logger.With(zap.Float64("threshold", threshold), zap.Stringer("node_mode", mode))
	g := core.NewGraph(core.WithWeighted())

	if mode == AllLoci {
		for _, id := range o.Universe {
			if err := g.AddVertex(id.String()); err != nil {
				return nil, err
			}
		}
	}

	st := Stats{Threshold: threshold, NodeMode: mode}
	records := 0
	for {
		if records%ctxCheckEvery == 0 {
			if err := o.Ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records++

		if math.IsNaN(rec.Distance) || math.IsInf(rec.Distance, 0) {
			st.SkippedRecords++
			continue
		}
		a, b := rec.A.String(), rec.B.String()
		if mode == AllEdgeEndpoints {
			_ = g.AddVertex(a)
			_ = g.AddVertex(b)
		}
		if !(rec.Distance <= threshold) {
			continue
		}
		if a == b {
			st.SkippedRecords++
			continue
		}
		if _, err := g.AddEdge(a, b, rec.Distance); err != nil && !errors.Is(err, core.ErrMultiEdgeNotAllowed) {
			return nil, fmt.Errorf("analyzer: edge %s-%s: %w", a, b, err)
		}
	}
	if s, ok := src.(skipper); ok {
		st.SkippedRecords += s.Skipped()
	}
	if st.SkippedRecords > 0 {
		log.Warn("skipped edge records", zap.Int("count", st.SkippedRecords))
	}

	comps, err := components.Find(g)
	if err != nil {
		return nil, err
	}
	gs := g.Stats()
	st.NumNodes = gs.VertexCount
	st.NumEdges = gs.EdgeCount
	st.NumComponents = len(comps)
	if big, ok := components.Largest(comps); ok {
		st.LargestCCSize = big.Size()
	}
	if st.AvgClustering, err = clustering.Average(g); err != nil {
		return nil, err
	}
	if st.Density, err = clustering.Density(g); err != nil {
		return nil, err
	}

	log.Info("graph analysed",
		zap.Int("records", records),
		zap.Int("nodes", st.NumNodes),
		zap.Int("edges", st.NumEdges),
		zap.Int("components", st.NumComponents),
		zap.Int("largest_cc", st.LargestCCSize),
	)

	return &Result{
		Stats:      st,
		Components: comps,
		Labels:     components.Labels(comps),
		Graph:      g,
	}, nil
}
