// Package lociprox turns per-locus 3D coordinates into proximity graphs and
// reports how they connect.
//
// The pipeline has three stages:
//
//	distance/    pairwise Euclidean edges under a threshold, with one
//	             nearest-neighbour edge for every otherwise isolated locus
//	analyzer/    undirected graph at an analysis threshold: connected
//	             components, largest component, clustering, density
//	merge/       per-threshold component labels joined onto the locus table
//
// Supporting packages:
//
//	locus/       locus model and the euchr / h3k4 table reader
//	spatial/     kd-tree and brute-force pair search behind one interface
//	edgeio/      edge file codec and range-chunk merge
//	core/        thread-safe undirected weighted graph
//	components/  deterministic connected components
//	clustering/  clustering coefficient and density
//	trend/       largest-component ratio across thresholds and sources
//
// The lociprox command in cmd/lociprox wires the stages together.
package lociprox
