package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lociprox/analyzer"
	"github.com/katalvlaran/lociprox/merge"
)

func newSweepCmd(a *app) *cobra.Command {
	var gf graphFlags
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Analyse one edge file at several thresholds in parallel",
		Long: `Runs analyze for every --thresholds value (prefix "whole<threshold>"),
at most --workers at a time. A failing threshold does not stop the others;
all failures are reported once every threshold has finished. With --loci the per-threshold component tables
are also joined into <out-dir>/components/<base>_components.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(a, cmd, gf)
		},
	}
	addGraphFlags(a, cmd, &gf)
	cmd.Flags().StringSlice("thresholds", []string{"1.5", "1.75", "2.0", "2.25", "2.5"}, "analysis thresholds")
	cmd.Flags().Int("workers", 4, "maximum concurrent analyses")
	a.bind(cmd, "sweep.thresholds", "thresholds")
	a.bind(cmd, "sweep.workers", "workers")

	return cmd
}

func runSweep(a *app, cmd *cobra.Command, gf graphFlags) error {
	c := a.cfg.Analyze
	mode, err := analyzer.ParseNodeMode(c.NodeMode)
	if err != nil {
		return err
	}
	thresholds, err := a.cfg.Sweep.ThresholdValues()
	if err != nil {
		return err
	}
	universe, err := loadUniverse(a, gf.loci)
	if err != nil {
		return err
	}

	warnUnguarded(a, c.GenerationThreshold)

	// Thresholds run independently: a failure is recorded for its own
	// threshold and the others still complete and write their outputs.
	results := make([]*analysisOut, len(thresholds))
	errs := make([]error, len(thresholds))
	var g errgroup.Group
	g.SetLimit(a.cfg.Sweep.Workers)
	for i, thr := range thresholds {
		i, thr := i, thr
		g.Go(func() error {
			out, err := runAnalysis(cmd.Context(), a.log, analysisJob{
				edges:      gf.edges,
				threshold:  thr,
				prefix:     "whole" + thresholdTag(thr),
				mode:       mode,
				universe:   universe,
				generation: c.GenerationThreshold,
				outDir:     c.OutDir,
			})
			if err != nil {
				errs[i] = fmt.Errorf("threshold %s: %w", thresholdTag(thr), err)
				a.log.Error("threshold failed", zap.Float64("threshold", thr), zap.Error(err))
				return nil
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	a.rep.Inputs["edges"] = gf.edges
	tables := make([]merge.ComponentTable, 0, len(results))
	failed := 0
	for i, out := range results {
		if out == nil {
			failed++
			a.rep.Warn(errs[i].Error())
			continue
		}
		a.rep.AddAnalysis(out.res.Stats)
		a.rep.Outputs = append(a.rep.Outputs, out.metrics, out.comps)
		tables = append(tables, merge.ComponentTable{Column: out.column, Labels: out.res.Labels})
	}
	sweepErr := errors.Join(errs...)
	a.log.Info("sweep finished",
		zap.Int("thresholds", len(thresholds)),
		zap.Int("failed", failed),
		zap.Int("workers", a.cfg.Sweep.Workers),
	)

	if universe == nil || len(tables) == 0 {
		return sweepErr
	}
	joined, err := merge.Join(universe, tables...)
	if err != nil {
		return errors.Join(sweepErr, err)
	}
	path := filepath.Join(c.OutDir, "components", baseName(gf.edges)+"_components.txt")
	if err := writeAtomic(path, func(w io.Writer) error { return joined.WriteTSV(w) }); err != nil {
		return errors.Join(sweepErr, err)
	}
	recordMerge(a, joined)
	a.rep.Outputs = append(a.rep.Outputs, path)

	return sweepErr
}
