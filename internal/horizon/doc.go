// Package horizon indexes a flat set of parent-linked records into a forest
// and assembles bounded "horizon" views around a center record: nearby
// ancestors with their siblings, plus descendants down to a fixed depth.
//
// An Index is built once with Build and is read-only afterwards. Views are
// recomputed on every call and returned as {nodes, edges} documents ready for
// a graph renderer such as vis.js.
package horizon
