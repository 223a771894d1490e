package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/analyzer"
	"github.com/katalvlaran/lociprox/trend"
)

func newTrendCmd(a *app) *cobra.Command {
	var (
		metrics []string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "trend --metrics LABEL=GLOB... --out FILE",
		Short: "Tabulate largest-component ratio per threshold and source",
		Long: `Reads analyzer metrics files and writes, for each --thresholds value, the
ratio largest_cc_size / num_nodes of every source. --metrics may repeat;
each value is LABEL=PATH where PATH may be a glob. Sources keep the order
in which their label first appears.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			thresholds, err := a.cfg.Sweep.ThresholdValues()
			if err != nil {
				return err
			}
			sources, err := loadTrendSources(metrics)
			if err != nil {
				return err
			}
			tab := trend.Summarize(thresholds, sources...)
			for _, m := range tab.Missing {
				msg := fmt.Sprintf("%s has no metrics at threshold %s, ratio set to 0", m.Label, thresholdTag(m.Threshold))
				a.log.Warn(msg)
				a.rep.Warn(msg)
			}
			if err := writeAtomic(out, tab.WriteTSV); err != nil {
				return err
			}
			a.rep.Outputs = append(a.rep.Outputs, out)
			a.log.Info("trend written", zap.String("out", out), zap.Int("sources", len(sources)))

			return nil
		},
	}
	cmd.Flags().StringArrayVar(&metrics, "metrics", nil, "LABEL=PATH metrics files (repeatable, globs allowed)")
	cmd.Flags().StringVar(&out, "out", "", "output TSV path")
	cmd.Flags().StringSlice("thresholds", []string{"1.5", "1.75", "2.0", "2.25", "2.5"}, "thresholds to tabulate")
	_ = cmd.MarkFlagRequired("metrics")
	_ = cmd.MarkFlagRequired("out")
	a.bind(cmd, "sweep.thresholds", "thresholds")

	return cmd
}

func loadTrendSources(specs []string) ([]trend.Source, error) {
	var order []string
	byLabel := make(map[string][]analyzer.Stats)
	for _, spec := range specs {
		label, pattern, ok := strings.Cut(spec, "=")
		if !ok || label == "" || pattern == "" {
			return nil, fmt.Errorf("--metrics %q: want LABEL=PATH", spec)
		}
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("--metrics %q: %w", spec, err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("--metrics %q: no files match", spec)
		}
		sort.Strings(paths)
		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		for _, p := range paths {
			st, err := readMetricsFile(p)
			if err != nil {
				return nil, err
			}
			byLabel[label] = append(byLabel[label], st)
		}
	}

	out := make([]trend.Source, len(order))
	for i, l := range order {
		out[i] = trend.Source{Label: l, Metrics: byLabel[l]}
	}

	return out, nil
}

func readMetricsFile(path string) (analyzer.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return analyzer.Stats{}, err
	}
	defer f.Close()

	st, err := analyzer.ReadMetrics(f)
	if err != nil {
		return analyzer.Stats{}, fmt.Errorf("%s: %w", path, err)
	}

	return st, nil
}

