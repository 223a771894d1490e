package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/internal/report"
	"github.com/katalvlaran/lociprox/merge"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		loci []string
		out  string
	)
	cmd := &cobra.Command{
		Use:   "merge --loci FILE [--loci FILE]... --out FILE COMPONENT_FILE...",
		Short: "Join per-threshold component tables onto the locus table",
		Long: `Left-joins every component table onto the locus universe. Repeat --loci
to build the universe from several tables, e.g. one per chromosome split;
they are concatenated in the order given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			universe, err := loadUniverse(a, loci...)
			if err != nil {
				return err
			}
			tables := make([]merge.ComponentTable, 0, len(args))
			for _, path := range args {
				t, err := merge.ReadComponentTableFile(path)
				if err != nil {
					return err
				}
				if t.Duplicates > 0 {
					a.log.Warn("repeated locus_id rows ignored", zap.String("file", path), zap.Int("count", t.Duplicates))
				}
				tables = append(tables, t)
			}
			joined, err := merge.Join(universe, tables...)
			if err != nil {
				return err
			}
			if err := writeAtomic(out, func(w io.Writer) error { return joined.WriteTSV(w) }); err != nil {
				return err
			}
			recordMerge(a, joined)
			a.rep.Outputs = append(a.rep.Outputs, out)

			return nil
		},
	}
	cmd.Flags().StringArrayVar(&loci, "loci", nil, "locus table anchoring the join (repeatable)")
	cmd.Flags().StringVar(&out, "out", "", "merged table path")
	cmd.Flags().String("dialect", "", "force the locus table layout: euchr or h3k4")
	_ = cmd.MarkFlagRequired("loci")
	_ = cmd.MarkFlagRequired("out")
	a.bind(cmd, "distance.dialect", "dialect")

	return cmd
}

func recordMerge(a *app, t *merge.Table) {
	m := &report.Merge{Loci: len(t.Rows), Columns: t.Columns, Missing: make(map[string]int)}
	for i, col := range t.Columns {
		if t.Missing[i] > 0 {
			m.Missing[col] = t.Missing[i]
		}
	}
	a.rep.Merge = m
	a.log.Info("components merged", zap.Int("loci", len(t.Rows)), zap.Strings("columns", t.Columns))
}
