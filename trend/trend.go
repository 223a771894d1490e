// Package trend summarizes how the largest connected component grows with
// the distance threshold, side by side for several data sources.
package trend

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/lociprox/analyzer"
)

// thresholdTolerance is the slack used to match a metrics threshold.
const thresholdTolerance = 1e-9

// Source is one labelled series of analyzer metrics.
type Source struct {
	Label   string
	Metrics []analyzer.Stats
}

// Missing records a threshold for which a source had no usable metrics.
type Missing struct {
	Label     string
	Threshold float64
}

// Table holds largest_cc_size / num_nodes per threshold (rows) and source
// (columns).
type Table struct {
	Thresholds []float64
	Labels     []string
	Ratios     [][]float64
	Missing    []Missing
}

// Summarize computes the ratio for each requested threshold and source. A
// threshold with no metrics, or with zero nodes, gets ratio 0 and an entry
// in Missing. When several metrics match a threshold the first wins.
func Summarize(thresholds []float64, sources ...Source) *Table {
	t := &Table{
		Thresholds: append([]float64(nil), thresholds...),
		Labels:     make([]string, len(sources)),
		Ratios:     make([][]float64, len(thresholds)),
	}
	for j, s := range sources {
		t.Labels[j] = s.Label
	}
	for i, thr := range thresholds {
		row := make([]float64, len(sources))
		for j, s := range sources {
			st, ok := lookup(s.Metrics, thr)
			if !ok || st.NumNodes == 0 {
				t.Missing = append(t.Missing, Missing{Label: s.Label, Threshold: thr})
				continue
			}
			row[j] = st.LargestRatio()
		}
		t.Ratios[i] = row
	}

	return t
}

func lookup(ms []analyzer.Stats, thr float64) (analyzer.Stats, bool) {
	for _, m := range ms {
		if math.Abs(m.Threshold-thr) < thresholdTolerance {
			return m, true
		}
	}

	return analyzer.Stats{}, false
}

// WriteTSV writes "threshold ratio_<label>..." with one row per threshold.
func (t *Table) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("threshold")
	for _, l := range t.Labels {
		bw.WriteString("\tratio_")
		bw.WriteString(l)
	}
	bw.WriteByte('\n')
	for i, thr := range t.Thresholds {
		bw.WriteString(strconv.FormatFloat(thr, 'g', -1, 64))
		for _, r := range t.Ratios[i] {
			bw.WriteByte('\t')
			bw.WriteString(strconv.FormatFloat(r, 'g', -1, 64))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
