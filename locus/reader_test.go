package locus_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lociprox/locus"
)

func TestDetectDialect(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		dialect locus.Dialect
		header  bool
	}{
		{"euchr header", "homolog locus x y z", locus.Euchr, true},
		{"h3k4 header chrom", "chrom allele locus x y z", locus.H3K4, true},
		{"h3k4 header allele", "Allele chrom locus x y z", locus.H3K4, true},
		{"euchr data", "chr1(mat) 100 0.1 0.2 0.3", locus.Euchr, false},
		{"h3k4 data", "chr1 pat 100 0.1 0.2 0.3", locus.H3K4, false},
		{"blank", "   ", locus.Euchr, false},
		{"unknown", "foo bar baz", locus.Euchr, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, h := locus.DetectDialect(tc.line)
			assert.Equal(t, tc.dialect, d)
			assert.Equal(t, tc.header, h)
		})
	}
}

func TestRead_EuchrWithHeader(t *testing.T) {
	in := "homolog locus x y z extra\n" +
		"chr1(mat) 10 0 0 0 a\n" +
		"\n" +
		"chr1(mat) 20 1.5 -2 3e1 b\n" +
		"chr1(mat) 30 nope 0 0\n" +
		"chr1(pat) 40 1 2\n"

	tbl, err := locus.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, locus.Euchr, tbl.Dialect)
	require.True(t, tbl.HasHeader)
	require.Len(t, tbl.Loci, 2)
	assert.Equal(t, 2, tbl.Skipped)

	assert.Equal(t, "chr1(mat):20", tbl.Loci[1].String())
	assert.Equal(t, locus.Vec3{1.5, -2, 30}, tbl.Loci[1].Pos)
}

func TestRead_H3K4NoHeader(t *testing.T) {
	in := "chr2 mat 5 1 1 1\nchr2 pat 5 2 2 2\n"

	tbl, err := locus.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, locus.H3K4, tbl.Dialect)
	require.False(t, tbl.HasHeader)
	require.Len(t, tbl.Loci, 2)
	assert.Equal(t, locus.ID{Chrom: "chr2(mat)", Key: "5"}, tbl.Loci[0].ID)
	assert.Equal(t, "chr2(pat):5", tbl.Loci[1].String())
}

func TestRead_ForcedDialect(t *testing.T) {
	// Detection would pick euchr; the override parses as h3k4.
	in := "x1 y1 7 1 2 3\n"

	tbl, err := locus.Read(strings.NewReader(in), locus.WithDialect(locus.H3K4))
	require.NoError(t, err)
	require.Len(t, tbl.Loci, 1)
	assert.Equal(t, "x1(y1):7", tbl.Loci[0].String())
}

func TestReadIDs_NoCoordinates(t *testing.T) {
	in := "homolog locus\nchr1(mat) 1\nchr1(mat) 2\nshort\n"

	ids, err := locus.ReadIDs(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []locus.ID{
		{Chrom: "chr1(mat)", Key: "1"},
		{Chrom: "chr1(mat)", Key: "2"},
	}, ids)
}

func TestRead_Empty(t *testing.T) {
	tbl, err := locus.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tbl.Loci)
	assert.Zero(t, tbl.Skipped)
}

func TestParseID(t *testing.T) {
	id, err := locus.ParseID("chr3(pat):12345")
	require.NoError(t, err)
	assert.Equal(t, locus.ID{Chrom: "chr3(pat)", Key: "12345"}, id)

	for _, bad := range []string{"", "nocolon", ":key", "chrom:"} {
		_, err := locus.ParseID(bad)
		assert.Truef(t, errors.Is(err, locus.ErrBadID), "ParseID(%q) err = %v", bad, err)
	}
}

func TestParseDialect(t *testing.T) {
	d, err := locus.ParseDialect("H3K4")
	require.NoError(t, err)
	assert.Equal(t, locus.H3K4, d)

	_, err = locus.ParseDialect("bed")
	assert.ErrorIs(t, err, locus.ErrUnknownDialect)
}

func TestVec3_Finite(t *testing.T) {
	assert.True(t, locus.Vec3{1, 2, 3}.Finite())
	assert.False(t, locus.Vec3{math.NaN(), 0, 0}.Finite())
	assert.False(t, locus.Vec3{0, math.Inf(-1), 0}.Finite())
}

func TestReadSkipsNonFiniteRows(t *testing.T) {
	in := "chr1(mat) a 0 0 0\n" +
		"chr1(mat) b 1 0 0\n" +
		"chr1(mat) c nan 0 0\n" +
		"chr1(mat) d 0 Inf 0\n" +
		"chr1(mat) e 0 0 -inf\n"
	tbl, err := locus.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Skipped)
	require.Len(t, tbl.Loci, 2)
	for _, l := range tbl.Loci {
		assert.True(t, l.Pos.Finite(), l.ID.String())
	}
}
