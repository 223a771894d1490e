package analyzer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lociprox/analyzer"
	"github.com/katalvlaran/lociprox/components"
)

func TestWriteMetrics(t *testing.T) {
	st := analyzer.Stats{
		Threshold: 1.25, NodeMode: analyzer.AllLoci,
		NumNodes: 10, NumEdges: 12, NumComponents: 3, LargestCCSize: 6,
		AvgClustering: 0.5, Density: 12.0 / 45.0,
	}
	var buf bytes.Buffer
	require.NoError(t, analyzer.WriteMetrics(&buf, st))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "threshold\t1.25", lines[0])
	assert.Equal(t, "node_mode\tall_bins", lines[1])
	assert.Equal(t, "num_nodes\t10", lines[2])
	assert.Equal(t, "avg_clustering\t0.5", lines[6])

	back, err := analyzer.ReadMetrics(&buf)
	require.NoError(t, err)
	assert.Equal(t, st, back)
}

func TestReadMetrics_Tolerant(t *testing.T) {
	in := "# produced elsewhere\n\nthreshold\t2\nnode_mode\tleq_thr_endpoints\n" +
		"num_nodes\t4\nlargest_cc_size\t3.0\nextra_key\tsomething\nlonely\n"
	st, err := analyzer.ReadMetrics(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2.0, st.Threshold)
	assert.Equal(t, 4, st.NumNodes)
	assert.Equal(t, 3, st.LargestCCSize)
	assert.Equal(t, 0.75, st.LargestRatio())

	_, err = analyzer.ReadMetrics(strings.NewReader("num_nodes\tmany\n"))
	assert.ErrorIs(t, err, analyzer.ErrBadMetrics)
	_, err = analyzer.ReadMetrics(strings.NewReader("num_nodes\t2.5\n"))
	assert.ErrorIs(t, err, analyzer.ErrBadMetrics)
}

func TestWriteComponents(t *testing.T) {
	comps := []components.Component{
		{ID: 1, Members: []string{"c:1", "c:3"}},
		{ID: 2, Members: []string{"c:2"}},
	}
	var buf bytes.Buffer
	require.NoError(t, analyzer.WriteComponents(&buf, analyzer.ComponentColumn("whole1.5"), comps))
	assert.Equal(t, "locus_id\tcomponent_whole1.5\nc:1\t1\nc:3\t1\nc:2\t2\n", buf.String())
}
