package locus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single table row.
const maxLineBytes = 1 << 20

var homologPattern = regexp.MustCompile(`^chr[^()]+\((mat|pat)\)$`)

// Table is the parsed content of one locus file.
type Table struct {
	// Dialect actually used to parse the rows.
	Dialect Dialect

	// HasHeader is true when the first line was consumed as a header.
	HasHeader bool

	// Loci in file order.
	Loci []Locus

	// Skipped counts non-blank rows that could not be parsed.
	Skipped int
}

// IDs returns the identities of all loci in file order.
func (t *Table) IDs() []ID {
	ids := make([]ID, len(t.Loci))
	for i, l := range t.Loci {
		ids[i] = l.ID
	}

	return ids
}

// Option configures a table read.
type Option func(*readOptions)

type readOptions struct {
	dialect      Dialect
	forceDialect bool
}

// WithDialect disables dialect detection and parses every row as d.
// Header detection still runs on the first line.
func WithDialect(d Dialect) Option {
	return func(o *readOptions) {
		o.dialect = d
		o.forceDialect = true
	}
}

// DetectDialect inspects the first line of a locus table and reports the
// dialect it implies and whether that line is a header.
//
//   - "homolog ..."            → Euchr, header
//   - "chrom ..." / "allele …" → H3K4, header
//   - "chrN(mat|pat) ..."      → Euchr, data
//   - "<x> mat|pat ..."        → H3K4, data
//   - anything else            → Euchr, data
func DetectDialect(line string) (Dialect, bool) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return Euchr, false
	}
	switch strings.ToLower(f[0]) {
	case "homolog":
		return Euchr, true
	case "chrom", "allele":
		return H3K4, true
	}
	if homologPattern.MatchString(f[0]) {
		return Euchr, false
	}
	if len(f) >= 2 && (f[1] == "mat" || f[1] == "pat") {
		return H3K4, false
	}

	return Euchr, false
}

// Read parses a locus table with coordinates.
func Read(r io.Reader, opts ...Option) (*Table, error) {
	return read(r, true, opts)
}

// ReadIDs parses only the identity columns of a locus table; rows need not
// carry coordinates.
func ReadIDs(r io.Reader, opts ...Option) ([]ID, error) {
	t, err := read(r, false, opts)
	if err != nil {
		return nil, err
	}

	return t.IDs(), nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("locus: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("locus: read %s: %w", path, err)
	}

	return t, nil
}

// ReadIDsFile opens path and parses it with ReadIDs.
func ReadIDsFile(path string, opts ...Option) ([]ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("locus: open %s: %w", path, err)
	}
	defer f.Close()

	ids, err := ReadIDs(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("locus: read %s: %w", path, err)
	}

	return ids, nil
}

func read(r io.Reader, coords bool, opts []Option) (*Table, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	t := &Table{Dialect: o.dialect}
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			first = false
			d, header := DetectDialect(line)
			if !o.forceDialect {
				t.Dialect = d
			}
			t.HasHeader = header
			if header {
				continue
			}
		}
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}
		l, ok := parseRow(t.Dialect, f, coords)
		if !ok {
			t.Skipped++
			continue
		}
		t.Loci = append(t.Loci, l)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// parseRow converts one split row; ok is false for short, non-numeric or
// non-finite rows.
func parseRow(d Dialect, f []string, coords bool) (Locus, bool) {
	id, ok := d.parseID(f)
	if !ok {
		return Locus{}, false
	}
	l := Locus{ID: id}
	if !coords {
		return l, true
	}
	off := d.idFields()
	if len(f) < off+3 {
		return Locus{}, false
	}
	for k := 0; k < 3; k++ {
		v, err := strconv.ParseFloat(f[off+k], 64)
		if err != nil {
			return Locus{}, false
		}
		l.Pos[k] = v
	}
	if !l.Pos.Finite() {
		return Locus{}, false
	}

	return l, true
}
