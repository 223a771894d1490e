// Package distance computes proximate locus pairs with guaranteed
// connectivity.
//
// ComputeProximateEdges reports every unordered pair of loci whose Euclidean
// distance is ≤ a threshold, plus one fallback edge to the nearest other
// locus for each locus that no threshold pair touches. A fallback edge may be
// longer than the threshold. No locus leaves the engine isolated unless it
// is the only point.
//
// Modes:
//
//   - kdtree: no range; the spatial.KDTree capability probe accepts the points.
//   - bruteforce: no range; strategy forced, or the probe rejected the points
//     (the fallback is logged and recorded in Stats.FallbackReason).
//   - range: WithRange(start, end); only i ∈ [start,end] drive the scan,
//     j runs over every later index. Chunks over disjoint ranges are meant to
//     run as separate processes and be merged afterwards (edgeio.MergeChunks).
//
// Determinism:
//
//   - Threshold edges are ordered by (i, j); fallback edges follow, ordered by
//     the isolated locus index.
//   - Among equidistant nearest candidates the lowest index wins.
//   - kdtree and bruteforce produce identical edge lists for the same input.
//
// Guarantees:
//
//   - No unordered pair is emitted twice within one run.
//   - With ≥ 2 points every locus is an endpoint of ≥ 1 edge; in range mode
//     this holds once chunks covering [0, n-1] are merged.
//   - Empty input yields an empty Result and no error.
//
// Complexity:
//
//   - kdtree:     O(n log n + P) expected time, O(n + P) memory.
//   - bruteforce: O(n²) time, O(n + P) memory.
//   - range:      O((end-start+1)·n) time, O(n + P) memory.
package distance
