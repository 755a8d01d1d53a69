// Package schema validates catalog records.
//
// Validation collects every problem instead of stopping at the first. It is
// advisory: the browser still shows every record Normalize keeps.
package schema
