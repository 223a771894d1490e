// Package analyzer turns a proximity edge file into an undirected graph at a
// chosen distance threshold and reports its connectivity.
//
// # Node universe
//
// The node set is chosen by NodeMode:
//
//	leq_thr_endpoints        endpoints of records with distance <= threshold
//	all_distance_endpoints   endpoints of every record in the file
//	all_bins                 every locus of the supplied universe
//
// Loci in the universe that have no edge within the threshold become
// singleton components.
//
// # Metrics
//
// Stats carries num_nodes, num_edges, num_components, largest_cc_size,
// avg_clustering (mean local clustering, 0 for an empty graph) and density
// (2m/(n(n-1)), 0 below two nodes). WriteMetrics and ReadMetrics use a
// "key<TAB>value" text format; WriteComponents writes the locus_id to
// component table consumed by package merge.
//
// Component IDs are assigned as in package components: 1..k ordered by each
// component's smallest locus_id.
package analyzer
