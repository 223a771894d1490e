package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/edgeio"
)

func newMergeEdgesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge-edges OUTPUT CHUNK...",
		Short: "Join range-mode edge chunks, dropping repeated pairs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runMergeEdges(a, args[0], args[1:])
		},
	}
}

func runMergeEdges(a *app, output string, chunks []string) error {
	files := make([]*os.File, 0, len(chunks))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	srcs := make([]edgeio.Source, 0, len(chunks))
	skipped := make([]*edgeio.Reader, 0, len(chunks))
	for _, path := range chunks {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		files = append(files, f)
		r := edgeio.NewReader(f)
		srcs = append(srcs, r)
		skipped = append(skipped, r)
	}

	var st edgeio.MergeStats
	err := writeAtomic(output, func(w io.Writer) error {
		ew := edgeio.NewWriter(w)
		var err error
		if st, err = edgeio.MergeChunks(ew, srcs...); err != nil {
			return err
		}
		return ew.Flush()
	})
	if err != nil {
		return err
	}

	bad := 0
	for _, r := range skipped {
		bad += r.Skipped()
	}
	if bad > 0 {
		a.log.Warn("malformed edge lines skipped", zap.Int("count", bad))
	}
	a.rep.SetChunks(len(chunks), st)
	a.rep.Outputs = append(a.rep.Outputs, output)
	a.log.Info("chunks merged",
		zap.Int("files", len(chunks)),
		zap.Int("written", st.Written),
		zap.Int("duplicates", st.Duplicates),
	)

	return nil
}
