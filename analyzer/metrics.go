package analyzer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lociprox/components"
)

// ErrBadMetrics is returned by ReadMetrics for an unparsable value.
var ErrBadMetrics = errors.New("analyzer: malformed metrics file")

// Metric keys in file order.
const (
	KeyThreshold     = "threshold"
	KeyNodeMode      = "node_mode"
	KeyNumNodes      = "num_nodes"
	KeyNumEdges      = "num_edges"
	KeyNumComponents = "num_components"
	KeyLargestCCSize = "largest_cc_size"
	KeyAvgClustering = "avg_clustering"
	KeyDensity       = "density"
)

// ComponentColumn returns the component column name for an output prefix.
func ComponentColumn(prefix string) string { return "component_" + prefix }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// WriteMetrics writes st as "key\tvalue" lines.
func WriteMetrics(w io.Writer, st Stats) error {
	bw := bufio.NewWriter(w)
	for _, kv := range [...][2]string{
		{KeyThreshold, formatFloat(st.Threshold)},
		{KeyNodeMode, st.NodeMode.String()},
		{KeyNumNodes, strconv.Itoa(st.NumNodes)},
		{KeyNumEdges, strconv.Itoa(st.NumEdges)},
		{KeyNumComponents, strconv.Itoa(st.NumComponents)},
		{KeyLargestCCSize, strconv.Itoa(st.LargestCCSize)},
		{KeyAvgClustering, formatFloat(st.AvgClustering)},
		{KeyDensity, formatFloat(st.Density)},
	} {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", kv[0], kv[1]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadMetrics parses a metrics file. Blank lines, '#' comments and unknown
// keys are ignored; a known key with an unparsable value is ErrBadMetrics.
func ReadMetrics(r io.Reader) (Stats, error) {
	var st Stats
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f := strings.Fields(text)
		if len(f) < 2 {
			continue
		}
		if err := st.set(f[0], f[1]); err != nil {
			return Stats{}, fmt.Errorf("%w: line %d: %v", ErrBadMetrics, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return Stats{}, err
	}

	return st, nil
}

func (s *Stats) set(key, val string) error {
	var err error
	switch key {
	case KeyThreshold:
		s.Threshold, err = strconv.ParseFloat(val, 64)
	case KeyNodeMode:
		s.NodeMode, err = ParseNodeMode(val)
	case KeyNumNodes:
		s.NumNodes, err = atoi(val)
	case KeyNumEdges:
		s.NumEdges, err = atoi(val)
	case KeyNumComponents:
		s.NumComponents, err = atoi(val)
	case KeyLargestCCSize:
		s.LargestCCSize, err = atoi(val)
	case KeyAvgClustering:
		s.AvgClustering, err = strconv.ParseFloat(val, 64)
	case KeyDensity:
		s.Density, err = strconv.ParseFloat(val, 64)
	}

	return err
}

// atoi also accepts integral floats such as "12.0".
func atoi(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}

	return int(f), nil
}

// WriteComponents writes the two-column component table: a
// "locus_id\t<column>" header, then one row per locus ordered by component
// ID and then locus_id.
func WriteComponents(w io.Writer, column string, comps []components.Component) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "locus_id\t%s\n", column); err != nil {
		return err
	}
	for _, c := range comps {
		id := strconv.Itoa(c.ID)
		for _, m := range c.Members {
			if _, err := fmt.Fprintf(bw, "%s\t%s\n", m, id); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
