// Package loader reads a catalog from a file path, a file:// URL or an
// http(s):// URL and returns it normalized.
//
// The document format is chosen by extension:
//
//	.json         JSON
//	.yaml, .yml   YAML
//	.cue          CUE (must evaluate to concrete data)
//	.db, .sqlite  SQLite database with a "tools" table, opened read-only
//
// JSON, YAML and CUE documents are either a bare list of records or an
// object holding the list under "tools", "agents", "records" or "items".
// Records may use either published schema; see catalog.Normalize.
//
// Loading happens once per process. There is no caching and no retry.
package loader
