// Package locus defines the Locus record shared by every stage of lociprox
// and reads locus tables in the two supported tabular dialects.
//
// What:
//
//   - ID identifies a locus by its chromosome/homolog label and position key.
//     Its String form "{Chrom}:{Key}" is the locus_id used in every output.
//   - Locus pairs an ID with a 3D position (Vec3).
//   - Read / ReadFile parse a whole table; ReadIDs parses identity columns only.
//
// Dialects:
//
//   - Euchr: "homolog locus x y z ..." where homolog is e.g. "chr1(mat)".
//   - H3K4:  "chrom allele locus x y z ..." where Chrom becomes "chrom(allele)".
//
// The dialect and the presence of a header row are detected from the first
// line unless WithDialect overrides the dialect. Rows that do not carry enough
// fields, or whose coordinates do not parse as floats, are skipped and
// counted in Table.Skipped; no row ever aborts a read.
package locus
