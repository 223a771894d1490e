package locus

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors for locus parsing.
var (
	// ErrBadID indicates a locus_id string without a "chrom:key" separator.
	ErrBadID = errors.New("locus: malformed locus id")

	// ErrUnknownDialect indicates a dialect name other than euchr or h3k4.
	ErrUnknownDialect = errors.New("locus: unknown dialect")
)

// Vec3 is a position in 3D space.
type Vec3 [3]float64

// Finite reports whether every coordinate is a finite number.
func (v Vec3) Finite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}

// ID identifies a locus within one locus set.
type ID struct {
	// Chrom encodes chromosome and homolog, e.g. "chr1(mat)".
	Chrom string

	// Key is the position key within the chromosome.
	Key string
}

// String returns the locus_id form "{Chrom}:{Key}".
func (id ID) String() string { return id.Chrom + ":" + id.Key }

// ParseID splits a locus_id at its last colon.
func ParseID(s string) (ID, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 || i == len(s)-1 {
		return ID{}, fmt.Errorf("%w: %q", ErrBadID, s)
	}

	return ID{Chrom: s[:i], Key: s[i+1:]}, nil
}

// Locus is an identified point in 3D space.
type Locus struct {
	ID

	// Pos is the locus position.
	Pos Vec3
}

// Dialect names one of the two supported locus table layouts.
type Dialect int

const (
	// Euchr tables carry "homolog locus x y z".
	Euchr Dialect = iota
	// H3K4 tables carry "chrom allele locus x y z".
	H3K4
)

// String returns the canonical dialect label.
func (d Dialect) String() string {
	switch d {
	case Euchr:
		return "euchr"
	case H3K4:
		return "h3k4"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect maps a label ("euchr", "h3k4") to its Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euchr":
		return Euchr, nil
	case "h3k4", "h3k4me3":
		return H3K4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
}

// idFields is the number of leading identity columns for the dialect.
func (d Dialect) idFields() int {
	if d == H3K4 {
		return 3
	}

	return 2
}

// parseID extracts the identity columns from a split row.
func (d Dialect) parseID(f []string) (ID, bool) {
	if len(f) < d.idFields() {
		return ID{}, false
	}
	if d == H3K4 {
		return ID{Chrom: f[0] + "(" + f[1] + ")", Key: f[2]}, true
	}

	return ID{Chrom: f[0], Key: f[1]}, true
}
