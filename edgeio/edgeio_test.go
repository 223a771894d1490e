package edgeio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lociprox/distance"
	"github.com/katalvlaran/lociprox/edgeio"
	"github.com/katalvlaran/lociprox/locus"
)

func id(chrom, key string) locus.ID { return locus.ID{Chrom: chrom, Key: key} }

func drain(t *testing.T, src edgeio.Source) []edgeio.Record {
	t.Helper()
	var out []edgeio.Record
	for {
		r, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, r)
	}
}

func TestWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w := edgeio.NewWriter(&buf)
	require.NoError(t, w.WriteEdges([]distance.Edge{
		{A: locus.Locus{ID: id("chr1(mat)", "10")}, B: locus.Locus{ID: id("chr1(mat)", "20")}, Distance: 1.5},
		{A: locus.Locus{ID: id("chr1(mat)", "10")}, B: locus.Locus{ID: id("chr2(pat)", "7")}, Distance: 0.1, Fallback: true},
	}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "chr1(mat)\t10\tchr1(mat)\t20\t1.5\n"+
		"chr1(mat)\t10\tchr2(pat)\t7\t0.1\n", buf.String())
	assert.Equal(t, 2, w.Count())
}

func TestReader_SkipsMalformed(t *testing.T) {
	in := "chr1(mat) 1 chr1(mat) 2 0.5\n" +
		"\n" +
		"chr1(mat) 1 chr1(mat) 3\n" +
		"chr1(mat) 1 chr1(mat) 4 far\n" +
		"chr1(mat) 1 chr1(mat) 5 nan\n" +
		"chr1(mat) 1 chr1(mat) 6 +Inf\n" +
		"chr1(mat)\t2\tchr1(mat)\t3\t1e-3\textra\n"

	r := edgeio.NewReader(strings.NewReader(in))
	got := drain(t, r)
	assert.Equal(t, []edgeio.Record{
		{A: id("chr1(mat)", "1"), B: id("chr1(mat)", "2"), Distance: 0.5},
		{A: id("chr1(mat)", "2"), B: id("chr1(mat)", "3"), Distance: 0.001},
	}, got)
	assert.Equal(t, 4, r.Skipped())
}

// Distances survive a write/read cycle bit for bit.
func TestRoundTripPrecision(t *testing.T) {
	d := 1.0 / 3.0
	var buf bytes.Buffer
	w := edgeio.NewWriter(&buf)
	require.NoError(t, w.Write(edgeio.Record{A: id("a", "1"), B: id("b", "2"), Distance: d}))
	require.NoError(t, w.Flush())

	got := drain(t, edgeio.NewReader(&buf))
	require.Len(t, got, 1)
	assert.Equal(t, d, got[0].Distance)
}

func TestMergeChunks(t *testing.T) {
	c1 := edgeio.NewSliceSource(
		edgeio.Record{A: id("c", "1"), B: id("c", "2"), Distance: 1},
		edgeio.Record{A: id("c", "3"), B: id("c", "2"), Distance: 9},
	)
	c2 := edgeio.NewSliceSource(
		edgeio.Record{A: id("c", "2"), B: id("c", "3"), Distance: 9}, // same pair, reversed
		edgeio.Record{A: id("c", "3"), B: id("c", "4"), Distance: 1},
	)

	var buf bytes.Buffer
	w := edgeio.NewWriter(&buf)
	st, err := edgeio.MergeChunks(w, c1, c2)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	assert.Equal(t, edgeio.MergeStats{Read: 4, Written: 3, Duplicates: 1}, st)
	assert.Equal(t, "c\t1\tc\t2\t1\nc\t3\tc\t2\t9\nc\t3\tc\t4\t1\n", buf.String())

	_, err = edgeio.MergeChunks(w, nil)
	assert.ErrorIs(t, err, edgeio.ErrNilSource)
}
