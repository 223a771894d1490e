package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/distance"
	"github.com/katalvlaran/lociprox/edgeio"
	"github.com/katalvlaran/lociprox/locus"
	"github.com/katalvlaran/lociprox/spatial"
)

func newDistanceCmd(a *app) *cobra.Command {
	var rng []int
	cmd := &cobra.Command{
		Use:   "distance INPUT OUTPUT",
		Short: "Compute proximity edges from a locus coordinate table",
		Long: `Reads a locus table (euchr or h3k4 layout, detected from the first line)
and writes every locus pair within --threshold, plus a nearest-neighbour
edge for each locus that would otherwise have none.

With --range START,END only indices START..END are compared against all
later indices; run disjoint ranges covering the table and join the chunk
files with merge-edges.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistance(a, args[0], args[1], rng, cmd.Flags().Changed("range"))
		},
	}
	f := cmd.Flags()
	f.Float64("threshold", 5.0, "distance threshold for proximal pairs")
	f.IntSliceVar(&rng, "range", nil, "restrict to indices START,END (inclusive)")
	f.String("dialect", "", "force the input layout: euchr or h3k4")
	f.String("strategy", "auto", "pair search: auto, indexed or bruteforce")
	a.bind(cmd, "distance.threshold", "threshold")
	a.bind(cmd, "distance.dialect", "dialect")
	a.bind(cmd, "distance.strategy", "strategy")

	return cmd
}

func runDistance(a *app, input, output string, rng []int, hasRange bool) error {
	c := a.cfg.Distance
	var readOpts []locus.Option
	if c.Dialect != "" {
		d, err := locus.ParseDialect(c.Dialect)
		if err != nil {
			return err
		}
		readOpts = append(readOpts, locus.WithDialect(d))
	}
	strategy, err := spatial.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}

	tab, err := locus.ReadFile(input, readOpts...)
	if err != nil {
		return err
	}
	a.log.Info("loci loaded",
		zap.String("input", input),
		zap.Stringer("dialect", tab.Dialect),
		zap.Int("loci", len(tab.Loci)),
		zap.Int("skipped", tab.Skipped),
	)
	if tab.Skipped > 0 {
		a.rep.Warn(fmt.Sprintf("%d malformed rows skipped in %s", tab.Skipped, input))
	}

	opts := []distance.Option{distance.WithStrategy(strategy), distance.WithLogger(a.log)}
	if hasRange {
		if len(rng) != 2 {
			return fmt.Errorf("%w: --range needs START,END", distance.ErrInvalidRange)
		}
		opts = append(opts, distance.WithRange(rng[0], rng[1]))
	}
	res, err := distance.ComputeProximateEdges(tab.Loci, c.Threshold, opts...)
	if err != nil {
		return err
	}

	err = writeAtomic(output, func(w io.Writer) error {
		ew := edgeio.NewWriter(w)
		if err := ew.WriteEdges(res.Edges); err != nil {
			return err
		}
		return ew.Flush()
	})
	if err != nil {
		return err
	}

	a.rep.Inputs["loci"] = input
	a.rep.Outputs = append(a.rep.Outputs, output)
	a.rep.SetDistance(res.Stats)
	if res.Stats.FallbackReason != "" {
		a.rep.Warn("spatial index unavailable: " + res.Stats.FallbackReason)
	}
	if k := len(res.Stats.Isolated); k > 0 {
		a.rep.Warn(fmt.Sprintf("%d loci left without any edge", k))
	}
	a.log.Info("edges written",
		zap.String("output", output),
		zap.Int("threshold_pairs", res.Stats.ThresholdPairs),
		zap.Int("fallback_edges", res.Stats.FallbackEdges),
	)

	return nil
}
