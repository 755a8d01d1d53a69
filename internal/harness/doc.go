// Package harness replays scripted browsing sessions and checks the result.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: search_then_pill
//	description: "Search and pill filters narrow the view"
//	catalog: ../catalogs/ab.json   # or inline records:
//	records:
//	  - name: A
//	    category: X
//	    tags: [fast]
//	steps:
//	  - action: set_search
//	    args: { text: fast }
//	    expect: applied
//	assertions:
//	  - type: view_names
//	    names: [A]
//	  - type: rejected
//	    step: 3
//
// A catalog path is resolved relative to the scenario file. Exactly one of
// catalog and records must be given.
//
// # Assertion Types
//
//   - view_names: the derived view, in order
//   - comparison_names: the comparison, in insertion order
//   - selected_tags: the active pills, sorted
//   - mode: the presentation mode
//   - criteria: a subset of search, category and sort
//   - rejected: the step at the given index was rejected
//   - view_count: the number of records in the view
//
// # Deterministic Testing
//
// Every run uses a fresh session with testutil.DeterministicClock and a fixed
// session ID, so the event trace is identical across runs and can be compared
// against golden files with RunWithGolden.
package harness
