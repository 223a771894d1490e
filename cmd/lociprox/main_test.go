package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const lociTable = `homolog locus x y z
chr1(mat) 100 0 0 0
chr1(mat) 200 1 0 0
chr1(mat) 300 10 0 0
chr1(mat) 400 10 1 0
chr2(pat) 500 50 50 50
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	root.SetOut(&stderr)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())

	return stderr.String(), err
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

type PipelineSuite struct {
	suite.Suite
	dir   string
	loci  string
	edges string
}

func TestPipelineSuite(t *testing.T) { suite.Run(t, new(PipelineSuite)) }

func (s *PipelineSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.loci = filepath.Join(s.dir, "sample.txt")
	s.edges = filepath.Join(s.dir, "sample_distance.txt")
	s.Require().NoError(os.WriteFile(s.loci, []byte(lociTable), 0o600))
}

func (s *PipelineSuite) path(parts ...string) string {
	return filepath.Join(append([]string{s.dir}, parts...)...)
}

func (s *PipelineSuite) TestDistanceAnalyzeMergeTrend() {
	_, err := run(s.T(), "distance", s.loci, s.edges, "--threshold", "1.5",
		"--report", s.path("distance.yaml"), "--metrics-textfile", s.path("distance.prom"))
	s.Require().NoError(err)
	s.Equal("chr1(mat)\t100\tchr1(mat)\t200\t1\n"+
		"chr1(mat)\t300\tchr1(mat)\t400\t1\n"+
		"chr2(pat)\t500\tchr1(mat)\t400\t80.62877898120497\n", read(s.T(), s.edges))
	s.Contains(read(s.T(), s.path("distance.yaml")), "fallback_edges: 1")
	s.Contains(read(s.T(), s.path("distance.prom")), `lociprox_distance_edges{kind="threshold",mode="kdtree"} 2`)

	out := s.path("out")
	_, err = run(s.T(), "sweep", "--edges", s.edges, "--loci", s.loci, "--node-mode", "all_bins",
		"--thresholds", "2,1.5", "--workers", "2", "--generation-threshold", "2", "--out-dir", out)
	s.Require().NoError(err)

	metrics := read(s.T(), filepath.Join(out, "whole1.5", "sample_whole1.5_metrics.txt"))
	s.Contains(metrics, "num_nodes\t5\n")
	s.Contains(metrics, "num_components\t3\n")
	s.Contains(metrics, "largest_cc_size\t2\n")
	s.Equal("locus_id\tcomponent_whole2\n"+
		"chr1(mat):100\t1\nchr1(mat):200\t1\n"+
		"chr1(mat):300\t2\nchr1(mat):400\t2\n"+
		"chr2(pat):500\t3\n",
		read(s.T(), filepath.Join(out, "components_single", "sample_comp_whole2.txt")))

	merged := read(s.T(), filepath.Join(out, "components", "sample_components.txt"))
	s.True(strings.HasPrefix(merged, "homolog_like\tlocus\tlocus_id\tcomponent_whole1.5\tcomponent_whole2\n"))
	s.Contains(merged, "chr2(pat)\t500\tchr2(pat):500\t3\t3\n")

	// The standalone merge command gives the same table.
	again := s.path("merged.txt")
	_, err = run(s.T(), "merge", "--loci", s.loci, "--out", again,
		filepath.Join(out, "components_single", "sample_comp_whole1.5.txt"),
		filepath.Join(out, "components_single", "sample_comp_whole2.txt"))
	s.Require().NoError(err)
	s.Equal(merged, read(s.T(), again))

	trendOut := s.path("trend.tsv")
	_, err = run(s.T(), "trend", "--thresholds", "1.5,2,2.5",
		"--metrics", "euchr="+filepath.Join(out, "whole*", "*_metrics.txt"), "--out", trendOut)
	s.Require().NoError(err)
	s.Equal("threshold\tratio_euchr\n1.5\t0.4\n2\t0.4\n2.5\t0\n", read(s.T(), trendOut))
}

// Range chunks carry their own fallback edges; merged, they keep every
// threshold pair of a full run and leave no locus isolated.
func (s *PipelineSuite) TestRangeChunksMerge() {
	c1, c2 := s.path("c1.txt"), s.path("c2.txt")
	_, err := run(s.T(), "distance", s.loci, c1, "--threshold", "1.5", "--range", "0,2")
	s.Require().NoError(err)
	_, err = run(s.T(), "distance", s.loci, c2, "--threshold", "1.5", "--range", "3,4")
	s.Require().NoError(err)

	merged := s.path("merged_distance.txt")
	_, err = run(s.T(), "merge-edges", merged, c1, c2, c1)
	s.Require().NoError(err)
	s.Equal("chr1(mat)\t100\tchr1(mat)\t200\t1\n"+
		"chr1(mat)\t300\tchr1(mat)\t400\t1\n"+
		"chr2(pat)\t500\tchr1(mat)\t300\t81.24038404635961\n"+
		"chr1(mat)\t400\tchr2(pat)\t500\t80.62877898120497\n", read(s.T(), merged))
}

func (s *PipelineSuite) TestAnalyzeSingleThreshold() {
	_, err := run(s.T(), "distance", s.loci, s.edges)
	s.Require().NoError(err)

	out := s.path("single")
	rep := s.path("analyze.yaml")
	_, err = run(s.T(), "analyze", "--edges", s.edges, "--threshold", "1.5", "--prefix", "whole1.5",
		"--out-dir", out, "--report", rep)
	s.Require().NoError(err)
	metrics := read(s.T(), filepath.Join(out, "whole1.5", "sample_whole1.5_metrics.txt"))
	s.Contains(metrics, "node_mode\tleq_thr_endpoints\n")
	s.Contains(metrics, "num_nodes\t4\n")
	s.Contains(read(s.T(), rep), "analysis threshold not validated against a generation threshold")

	guarded := s.path("guarded.yaml")
	_, err = run(s.T(), "analyze", "--edges", s.edges, "--threshold", "1.5", "--generation-threshold", "5",
		"--out-dir", out, "--report", guarded)
	s.Require().NoError(err)
	s.NotContains(read(s.T(), guarded), "not validated")
}

// A threshold that fails does not stop its siblings: their outputs are
// still written and the command reports only the failing threshold.
func (s *PipelineSuite) TestSweepThresholdFailureIsolated() {
	_, err := run(s.T(), "distance", s.loci, s.edges, "--threshold", "1.5")
	s.Require().NoError(err)

	out := s.path("sweep")
	_, err = run(s.T(), "sweep", "--edges", s.edges, "--loci", s.loci, "--node-mode", "all_bins",
		"--thresholds", "1.5,3,1.75", "--workers", "1", "--generation-threshold", "2", "--out-dir", out)
	s.Require().Error(err)
	s.Contains(err.Error(), "threshold 3")
	s.NotContains(err.Error(), "threshold 1.5")
	s.NotContains(err.Error(), context.Canceled.Error())

	s.FileExists(filepath.Join(out, "whole1.5", "sample_whole1.5_metrics.txt"))
	s.FileExists(filepath.Join(out, "whole1.75", "sample_whole1.75_metrics.txt"))
	s.NoFileExists(filepath.Join(out, "whole3", "sample_whole3_metrics.txt"))
	merged := read(s.T(), filepath.Join(out, "components", "sample_components.txt"))
	s.True(strings.HasPrefix(merged, "homolog_like\tlocus\tlocus_id\tcomponent_whole1.5\tcomponent_whole1.75\n"))
}

// Several --loci tables are concatenated in order to form the universe.
func (s *PipelineSuite) TestMergeConcatenatesLociSplits() {
	chr1 := s.path("split_chr1.txt")
	chr2 := s.path("split_chr2.txt")
	s.Require().NoError(os.WriteFile(chr2, []byte("chr2(pat) 500 50 50 50\n"), 0o600))
	s.Require().NoError(os.WriteFile(chr1, []byte("homolog locus x y z\nchr1(mat) 100 0 0 0\nchr1(mat) 200 1 0 0\n"), 0o600))
	comps := s.path("comp.txt")
	s.Require().NoError(os.WriteFile(comps, []byte("locus_id\tcomponent_whole1\nchr1(mat):200\t1\nchr2(pat):500\t2\n"), 0o600))

	out := s.path("merged.txt")
	_, err := run(s.T(), "merge", "--loci", chr2, "--loci", chr1, "--out", out, comps)
	s.Require().NoError(err)
	s.Equal("homolog_like\tlocus\tlocus_id\tcomponent_whole1\n"+
		"chr2(pat)\t500\tchr2(pat):500\t2\n"+
		"chr1(mat)\t100\tchr1(mat):100\t\n"+
		"chr1(mat)\t200\tchr1(mat):200\t1\n", read(s.T(), out))
}

func (s *PipelineSuite) TestFailuresLeaveNoOutput() {
	_, err := run(s.T(), "distance", s.loci, s.edges, "--threshold", "-1")
	s.Require().Error(err)
	s.NoFileExists(s.edges)

	_, err = run(s.T(), "distance", s.loci, s.edges, "--range", "9,12")
	s.Require().Error(err)
	s.NoFileExists(s.edges)

	_, err = run(s.T(), "distance", s.loci, s.edges, "--threshold", "1")
	s.Require().NoError(err)
	out := s.path("bad")
	_, err = run(s.T(), "analyze", "--edges", s.edges, "--threshold", "3",
		"--generation-threshold", "1", "--out-dir", out)
	s.Require().Error(err)
	s.NoDirExists(out)

	_, err = run(s.T(), "analyze", "--edges", s.edges, "--threshold", "1", "--node-mode", "all_bins", "--out-dir", out)
	s.Require().Error(err)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Sample-1", baseName("/x/Sample-1_distance.txt"))
	assert.Equal(t, "Sample-1", baseName("Sample-1_distance_filtered.txt"))
	assert.Equal(t, "edges", baseName("edges.tsv"))
	assert.Equal(t, "2", thresholdTag(2.0))
	assert.Equal(t, "1.75", thresholdTag(1.75))
}
