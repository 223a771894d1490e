// Package edgeio reads and writes proximity edge files.
//
// One edge per line, no header, five whitespace-separated fields:
//
//	chromLabel1  locusKey1  chromLabel2  locusKey2  distance
//
// The writer separates fields with tabs and prints the distance in the
// shortest form that parses back to the same float64. The reader accepts any
// whitespace and skips lines with fewer than five fields or a non-numeric
// or non-finite distance, counting them in Skipped.
package edgeio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/lociprox/distance"
	"github.com/katalvlaran/lociprox/locus"
)

// ErrNilSource is returned by MergeChunks for a nil source.
var ErrNilSource = errors.New("edgeio: nil source")

// Record is one edge line.
type Record struct {
	A, B     locus.ID
	Distance float64
}

// FromEdge converts an engine edge to its file record.
func FromEdge(e distance.Edge) Record {
	return Record{A: e.A.ID, B: e.B.ID, Distance: e.Distance}
}

// Source yields records until io.EOF.
type Source interface {
	Next() (Record, error)
}

// Writer emits edge records.
type Writer struct {
	bw *bufio.Writer
	n  int
}

// NewWriter buffers output to w; call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Write emits one record.
func (w *Writer) Write(r Record) error {
	var b strings.Builder
	b.Grow(len(r.A.Chrom) + len(r.A.Key) + len(r.B.Chrom) + len(r.B.Key) + 32)
	b.WriteString(r.A.Chrom)
	b.WriteByte('\t')
	b.WriteString(r.A.Key)
	b.WriteByte('\t')
	b.WriteString(r.B.Chrom)
	b.WriteByte('\t')
	b.WriteString(r.B.Key)
	b.WriteByte('\t')
	b.WriteString(strconv.FormatFloat(r.Distance, 'g', -1, 64))
	b.WriteByte('\n')
	if _, err := w.bw.WriteString(b.String()); err != nil {
		return err
	}
	w.n++

	return nil
}

// WriteEdges emits every edge of an engine result in order.
func (w *Writer) WriteEdges(edges []distance.Edge) error {
	for _, e := range edges {
		if err := w.Write(FromEdge(e)); err != nil {
			return err
		}
	}

	return nil
}

// Count is the number of records written so far.
func (w *Writer) Count() int { return w.n }

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.bw.Flush() }

// Reader streams records from an edge file.
type Reader struct {
	sc      *bufio.Scanner
	line    int
	skipped int
}

var _ Source = (*Reader)(nil)

// NewReader reads edge lines from r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	return &Reader{sc: sc}
}

// Next returns the next well-formed record, or io.EOF.
func (r *Reader) Next() (Record, error) {
	for r.sc.Scan() {
		r.line++
		f := strings.Fields(r.sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) < 5 {
			r.skipped++
			continue
		}
		d, err := strconv.ParseFloat(f[4], 64)
		if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
			r.skipped++
			continue
		}

		return Record{
			A:        locus.ID{Chrom: f[0], Key: f[1]},
			B:        locus.ID{Chrom: f[2], Key: f[3]},
			Distance: d,
		}, nil
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, fmt.Errorf("edgeio: line %d: %w", r.line+1, err)
	}

	return Record{}, io.EOF
}

// Skipped counts malformed lines seen so far.
func (r *Reader) Skipped() int { return r.skipped }

// SliceSource serves records from memory.
type SliceSource struct {
	recs []Record
	pos  int
}

var _ Source = (*SliceSource)(nil)

// NewSliceSource returns a Source over recs.
func NewSliceSource(recs ...Record) *SliceSource {
	return &SliceSource{recs: recs}
}

// Next implements Source.
func (s *SliceSource) Next() (Record, error) {
	if s.pos >= len(s.recs) {
		return Record{}, io.EOF
	}
	r := s.recs[s.pos]
	s.pos++

	return r, nil
}

// MergeStats reports what MergeChunks kept and dropped.
type MergeStats struct {
	Read       int
	Written    int
	Duplicates int
}

// MergeChunks concatenates the records of srcs into w, keeping only the
// first occurrence of each unordered locus pair. It is the filesystem-side
// join for range-mode chunks.
func MergeChunks(w *Writer, srcs ...Source) (MergeStats, error) {
	var st MergeStats
	seen := make(map[[2]locus.ID]struct{})
	for i, src := range srcs {
		if src == nil {
			return st, fmt.Errorf("%w: index %d", ErrNilSource, i)
		}
		for {
			rec, err := src.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return st, err
			}
			st.Read++
			k := pairOf(rec.A, rec.B)
			if _, dup := seen[k]; dup {
				st.Duplicates++
				continue
			}
			seen[k] = struct{}{}
			if err := w.Write(rec); err != nil {
				return st, err
			}
			st.Written++
		}
	}

	return st, nil
}

func pairOf(a, b locus.ID) [2]locus.ID {
	if b.Chrom < a.Chrom || (b.Chrom == a.Chrom && b.Key < a.Key) {
		return [2]locus.ID{b, a}
	}

	return [2]locus.ID{a, b}
}
