// Package catalog provides the canonical record model for agentdeck.
//
// This package contains the Record type and the rules that turn raw catalog
// documents into Records. All other internal packages import catalog;
// catalog imports nothing internal.
//
// Key design constraints:
//   - Records are immutable after Normalize returns
//   - Name is the identity of a Record and is unique within a catalog
//   - Absent optional fields render as Placeholder, never as an error
//   - Display classifications (badge, pricing label, autonomy rank) are total
//     mappings with a defined default case
package catalog
