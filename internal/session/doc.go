// Package session owns the state of one browsing session.
//
// A Session holds the loaded records, the active criteria, the pill and
// comparison selections, the display mode and the open detail. Every change
// goes through a named operation that is applied synchronously, logged, and
// recorded in an in-memory event trace stamped by a logical clock. The
// derived view is recomputed in full whenever the criteria or pills change.
//
// Renderers never read a Session directly; they take a render.Snapshot.
package session
