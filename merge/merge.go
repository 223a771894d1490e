// Package merge joins per-threshold component tables onto the locus
// universe, producing one row per locus and one column per threshold.
package merge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lociprox/locus"
)

// Sentinel errors for Join and ReadComponentTable.
var (
	// ErrNoComponentTables is returned by Join without any table.
	ErrNoComponentTables = errors.New("merge: no component tables")

	// ErrBadComponentTable is returned for a table that is not exactly
	// "locus_id<TAB>column" with integer component IDs.
	ErrBadComponentTable = errors.New("merge: component table must have two columns: locus_id and a component column")

	// ErrDuplicateColumn is returned when two tables share a column name.
	ErrDuplicateColumn = errors.New("merge: duplicate component column")
)

// ComponentTable is one locus_id to component ID mapping.
type ComponentTable struct {
	Column string
	Labels map[string]int

	// Duplicates counts repeated locus_id rows; the first value wins.
	Duplicates int
}

// ReadComponentTable parses a two-column component table with header.
func ReadComponentTable(r io.Reader) (ComponentTable, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var t ComponentTable
	header := true
	line := 0
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) != 2 {
			return ComponentTable{}, fmt.Errorf("%w: line %d has %d columns", ErrBadComponentTable, line, len(f))
		}
		if header {
			if f[0] != "locus_id" {
				return ComponentTable{}, fmt.Errorf("%w: header %q", ErrBadComponentTable, strings.Join(f, " "))
			}
			t.Column = f[1]
			t.Labels = make(map[string]int)
			header = false
			continue
		}
		id, err := strconv.Atoi(f[1])
		if err != nil || id < 1 {
			return ComponentTable{}, fmt.Errorf("%w: line %d: component %q", ErrBadComponentTable, line, f[1])
		}
		if _, dup := t.Labels[f[0]]; dup {
			t.Duplicates++
			continue
		}
		t.Labels[f[0]] = id
	}
	if err := sc.Err(); err != nil {
		return ComponentTable{}, err
	}
	if header {
		return ComponentTable{}, fmt.Errorf("%w: empty file", ErrBadComponentTable)
	}

	return t, nil
}

// ReadComponentTableFile opens path and calls ReadComponentTable.
func ReadComponentTableFile(path string) (ComponentTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return ComponentTable{}, err
	}
	defer f.Close()

	t, err := ReadComponentTable(f)
	if err != nil {
		return ComponentTable{}, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Row is one locus with its component ID per column; 0 means the locus is
// not in that table.
type Row struct {
	ID         locus.ID
	Components []int
}

// Table is the joined result.
type Table struct {
	Columns []string
	Rows    []Row

	// Missing counts, per column, the universe loci without a component.
	Missing []int
}

// Join left-joins tables onto universe, keeping universe order and table
// order. Loci that appear only in a table are dropped.
func Join(universe []locus.ID, tables ...ComponentTable) (*Table, error) {
	if len(tables) == 0 {
		return nil, ErrNoComponentTables
	}
	cols := make([]string, len(tables))
	seen := make(map[string]bool, len(tables))
	for i, t := range tables {
		if t.Column == "" || t.Column == "locus_id" {
			return nil, fmt.Errorf("%w: table %d column %q", ErrBadComponentTable, i, t.Column)
		}
		if seen[t.Column] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, t.Column)
		}
		seen[t.Column] = true
		cols[i] = t.Column
	}

	out := &Table{
		Columns: cols,
		Rows:    make([]Row, len(universe)),
		Missing: make([]int, len(tables)),
	}
	for r, id := range universe {
		key := id.String()
		comps := make([]int, len(tables))
		for c, t := range tables {
			if v, ok := t.Labels[key]; ok {
				comps[c] = v
				continue
			}
			out.Missing[c]++
		}
		out.Rows[r] = Row{ID: id, Components: comps}
	}

	return out, nil
}

// WriteTSV writes the header "homolog_like locus locus_id <columns...>"
// and one line per row, tab separated. Missing components are empty cells.
func (t *Table) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("homolog_like\tlocus\tlocus_id")
	for _, c := range t.Columns {
		bw.WriteByte('\t')
		bw.WriteString(c)
	}
	bw.WriteByte('\n')

	for _, r := range t.Rows {
		bw.WriteString(r.ID.Chrom)
		bw.WriteByte('\t')
		bw.WriteString(r.ID.Key)
		bw.WriteByte('\t')
		bw.WriteString(r.ID.String())
		for _, v := range r.Components {
			bw.WriteByte('\t')
			if v > 0 {
				bw.WriteString(strconv.Itoa(v))
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
