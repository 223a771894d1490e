package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/analyzer"
	"github.com/katalvlaran/lociprox/edgeio"
	"github.com/katalvlaran/lociprox/locus"
)

// analysisJob is one threshold of one edge file.
type analysisJob struct {
	edges      string
	threshold  float64
	prefix     string
	mode       analyzer.NodeMode
	universe   []locus.ID
	generation float64
	outDir     string
}

type analysisOut struct {
	res            *analyzer.Result
	column         string
	metrics, comps string
}

// runAnalysis analyses one edge file at one threshold and writes
//
//	<outDir>/<prefix>/<base>_<prefix>_metrics.txt
//	<outDir>/components_single/<base>_comp_<prefix>.txt
func runAnalysis(ctx context.Context, log *zap.Logger, job analysisJob) (*analysisOut, error) {
	f, err := os.Open(job.edges)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := []analyzer.Option{analyzer.WithContext(ctx), analyzer.WithLogger(log)}
	if job.universe != nil {
		opts = append(opts, analyzer.WithUniverse(job.universe))
	}
	if job.generation > 0 {
		opts = append(opts, analyzer.WithGenerationThreshold(job.generation))
	}
	res, err := analyzer.Analyze(edgeio.NewReader(f), job.threshold, job.mode, opts...)
	if err != nil {
		return nil, err
	}

	base := baseName(job.edges)
	out := &analysisOut{
		res:     res,
		column:  analyzer.ComponentColumn(job.prefix),
		metrics: filepath.Join(job.outDir, job.prefix, base+"_"+job.prefix+"_metrics.txt"),
		comps:   filepath.Join(job.outDir, "components_single", base+"_comp_"+job.prefix+".txt"),
	}
	if err := writeAtomic(out.metrics, func(w io.Writer) error {
		return analyzer.WriteMetrics(w, res.Stats)
	}); err != nil {
		return nil, err
	}
	if err := writeAtomic(out.comps, func(w io.Writer) error {
		return analyzer.WriteComponents(w, out.column, res.Components)
	}); err != nil {
		os.Remove(out.metrics)
		return nil, err
	}

	return out, nil
}

// warnUnguarded notes in the report that analysis thresholds are not
// checked against the threshold the edge file was generated with.
func warnUnguarded(a *app, generation float64) {
	if generation > 0 {
		return
	}
	a.log.Warn("no --generation-threshold given; analysis thresholds above the edge-file threshold are not detected")
	a.rep.Warn("analysis threshold not validated against a generation threshold")
}

// loadUniverse concatenates the locus ids of paths in order, skipping empty
// names. It returns nil when no path is given.
func loadUniverse(a *app, paths ...string) ([]locus.ID, error) {
	var opts []locus.Option
	if d := a.cfg.Distance.Dialect; d != "" {
		dialect, err := locus.ParseDialect(d)
		if err != nil {
			return nil, err
		}
		opts = append(opts, locus.WithDialect(dialect))
	}

	var (
		ids  []locus.ID
		used []string
	)
	for _, path := range paths {
		if path == "" {
			continue
		}
		part, err := locus.ReadIDsFile(path, opts...)
		if err != nil {
			return nil, err
		}
		ids = append(ids, part...)
		used = append(used, path)
		a.log.Info("locus universe loaded", zap.String("loci", path), zap.Int("count", len(part)))
	}
	if len(used) == 0 {
		return nil, nil
	}
	a.rep.Inputs["loci"] = strings.Join(used, ",")

	return ids, nil
}

// graphFlags are shared by analyze and sweep.
type graphFlags struct {
	edges string
	loci  string
}

func addGraphFlags(a *app, cmd *cobra.Command, gf *graphFlags) {
	f := cmd.Flags()
	f.StringVar(&gf.edges, "edges", "", "edge file written by distance or merge-edges")
	f.StringVar(&gf.loci, "loci", "", "locus table defining the all_bins universe")
	f.String("node-mode", "leq_thr_endpoints", "node universe: leq_thr_endpoints, all_distance_endpoints or all_bins")
	f.Float64("generation-threshold", 0, "threshold the edge file was generated with; larger analysis thresholds are refused")
	f.String("out-dir", ".", "output root directory")
	f.String("dialect", "", "force the locus table layout: euchr or h3k4")
	_ = cmd.MarkFlagRequired("edges")
	a.bind(cmd, "analyze.node_mode", "node-mode")
	a.bind(cmd, "analyze.generation_threshold", "generation-threshold")
	a.bind(cmd, "analyze.out_dir", "out-dir")
	a.bind(cmd, "distance.dialect", "dialect")
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		gf     graphFlags
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build the proximity graph at one threshold and report its connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.cfg.Analyze
			mode, err := analyzer.ParseNodeMode(c.NodeMode)
			if err != nil {
				return err
			}
			universe, err := loadUniverse(a, gf.loci)
			if err != nil {
				return err
			}
			warnUnguarded(a, c.GenerationThreshold)
			if prefix == "" {
				prefix = "whole" + thresholdTag(c.Threshold)
			}
			out, err := runAnalysis(cmd.Context(), a.log, analysisJob{
				edges:      gf.edges,
				threshold:  c.Threshold,
				prefix:     prefix,
				mode:       mode,
				universe:   universe,
				generation: c.GenerationThreshold,
				outDir:     c.OutDir,
			})
			if err != nil {
				return err
			}
			a.rep.Inputs["edges"] = gf.edges
			a.rep.AddAnalysis(out.res.Stats)
			a.rep.Outputs = append(a.rep.Outputs, out.metrics, out.comps)

			return nil
		},
	}
	addGraphFlags(a, cmd, &gf)
	cmd.Flags().Float64("threshold", 0, "analysis distance threshold")
	cmd.Flags().StringVar(&prefix, "prefix", "", `output prefix, e.g. whole1.5 (default "whole<threshold>")`)
	a.bind(cmd, "analyze.threshold", "threshold")

	return cmd
}
