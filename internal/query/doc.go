// Package query implements the filter/sort engine.
//
// ComputeView is a pure function from (records, criteria, selected pills) to
// an ordered subset of the records. It never mutates its inputs, never
// fabricates or duplicates a record, and never fails: missing optional
// fields simply do not match a search.
//
// Filters combine with logical AND:
//   - Search: case-insensitive substring match; any field may match
//   - Category: exact match, bypassed by CategoryAll
//   - Pills: category, tags or interfaces intersect the selection, bypassed
//     when nothing is selected
//
// Sorting is always stable. Records with equal keys keep their catalog
// order, so a name-asc listing followed by name-desc is an exact reversal
// whenever names are distinct.
package query
