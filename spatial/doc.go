// Package spatial answers the two neighbourhood questions asked by the
// distance engine over a fixed set of 3D points:
//
//   - Within(r): every unordered pair (i<j) whose Euclidean distance is ≤ r.
//   - Nearest(i): the closest other point to i.
//
// Two Index implementations exist:
//
//   - KDTree    : gonum kd-tree; O(n log n) expected for Within on sparse sets.
//   - BruteForce: O(n²) scan; needs nothing beyond the points themselves.
//
// Both compute distances with Euclidean, filter with the same comparison
// and break ties in favour of the lowest point index, so for any input they
// return identical results. Probe is the capability check that decides
// whether the kd-tree can be built for a point set; selection never relies
// on recovering from a failed build.
//
// Complexity:
//
//   - NewKDTree: O(n log n).    BruteForce construction: O(1).
//   - KDTree.Within: O(n log n + P) expected, P = reported pairs.
//   - KDTree.Nearest: O(log n) expected.  BruteForce.Nearest: O(n).
package spatial
