// SPDX-License-Identifier: MIT

// Package components finds the connected components of a core.Graph.
//
// Numbering is deterministic: seeds are taken in ascending vertex-ID order,
// each component is collected breadth-first, and components are numbered
// 1..k in seed order. Since every seed is the smallest ID not yet assigned,
// component i is the one whose smallest member sorts i-th. Members of a
// component are reported sorted.
//
// An isolated vertex is its own singleton component.
//
// Complexity: O(V log V + E) time, O(V) memory.
package components
