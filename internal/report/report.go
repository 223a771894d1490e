// Package report records what a lociprox run did, as a YAML document and
// as Prometheus textfile gauges for node_exporter.
package report

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lociprox/analyzer"
	"github.com/katalvlaran/lociprox/distance"
	"github.com/katalvlaran/lociprox/edgeio"
)

// Report is the run summary.
type Report struct {
	RunID     string            `yaml:"run_id"`
	Command   string            `yaml:"command"`
	StartedAt time.Time         `yaml:"started_at"`
	Duration  time.Duration     `yaml:"duration"`
	Inputs    map[string]string `yaml:"inputs,omitempty"`
	Outputs   []string          `yaml:"outputs,omitempty"`

	Distance *Distance        `yaml:"distance,omitempty"`
	Chunks   *Chunks          `yaml:"chunks,omitempty"`
	Analyses []analyzer.Stats `yaml:"analyses,omitempty"`
	Merge    *Merge           `yaml:"merge,omitempty"`
	Warnings []string         `yaml:"warnings,omitempty"`

	now func() time.Time
}

// Distance summarizes an edge generation run.
type Distance struct {
	Points         int      `yaml:"points"`
	Threshold      float64  `yaml:"threshold"`
	Mode           string   `yaml:"mode"`
	FallbackReason string   `yaml:"fallback_reason,omitempty"`
	RangeStart     int      `yaml:"range_start"`
	RangeEnd       int      `yaml:"range_end"`
	ThresholdPairs int      `yaml:"threshold_pairs"`
	FallbackEdges  int      `yaml:"fallback_edges"`
	Isolated       []string `yaml:"isolated,omitempty"`
}

// Chunks summarizes a chunk merge.
type Chunks struct {
	Files      int `yaml:"files"`
	Read       int `yaml:"read"`
	Written    int `yaml:"written"`
	Duplicates int `yaml:"duplicates"`
}

// Merge summarizes a component-table join.
type Merge struct {
	Loci    int            `yaml:"loci"`
	Columns []string       `yaml:"columns"`
	Missing map[string]int `yaml:"missing,omitempty"`
}

// New starts a report for command with a fresh run id.
func New(command string) *Report {
	return newAt(command, time.Now)
}

func newAt(command string, now func() time.Time) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Command:   command,
		StartedAt: now().UTC(),
		Inputs:    make(map[string]string),
		now:       now,
	}
}

// SetDistance records engine statistics.
func (r *Report) SetDistance(st distance.Stats) {
	r.Distance = &Distance{
		Points:         st.Points,
		Threshold:      st.Threshold,
		Mode:           string(st.Mode),
		FallbackReason: st.FallbackReason,
		RangeStart:     st.RangeStart,
		RangeEnd:       st.RangeEnd,
		ThresholdPairs: st.ThresholdPairs,
		FallbackEdges:  st.FallbackEdges,
	}
	for _, id := range st.Isolated {
		r.Distance.Isolated = append(r.Distance.Isolated, id.String())
	}
}

// SetChunks records a chunk merge.
func (r *Report) SetChunks(files int, st edgeio.MergeStats) {
	r.Chunks = &Chunks{Files: files, Read: st.Read, Written: st.Written, Duplicates: st.Duplicates}
}

// AddAnalysis appends one analysis result.
func (r *Report) AddAnalysis(st analyzer.Stats) {
	r.Analyses = append(r.Analyses, st)
}

// Warn appends a warning line.
func (r *Report) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Finish stamps the duration.
func (r *Report) Finish() {
	r.Duration = r.now().UTC().Sub(r.StartedAt)
}

// Write encodes the report as YAML.
func (r *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}

	return enc.Close()
}

// WriteFile writes the report to path; "-" means stderr.
func (r *Report) WriteFile(path string) error {
	if path == "-" {
		return r.Write(os.Stderr)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
