package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/session"
)

func intp(n int) *int { return &n }

func abRecords() []catalog.RawRecord {
	return []catalog.RawRecord{
		{Name: "A", Category: "X", Tags: []string{"fast"}},
		{Name: "B", Category: "Y"},
	}
}

// TestScenarios replays every scenario under testdata/scenarios and checks
// its trace against the golden file of the same name.
func TestScenarios(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios", "")
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_InlineScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline",
		Description: "inline records",
		Records:     abRecords(),
		SessionID:   "s-1",
		Steps: []Step{
			{Action: session.ActionToggleTag, Args: map[string]string{"tag": "fast"}},
			{Action: session.ActionSwitchMode, Args: map[string]string{"mode": "LIST"}},
		},
		Assertions: []Assertion{
			{Type: AssertViewNames, Names: []string{"A"}},
			{Type: AssertSelectedTags, Names: []string{"fast"}},
			{Type: AssertMode, Value: "list"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "s-1", result.SessionID)
	require.Len(t, result.Events, 2)
	assert.Equal(t, int64(1), result.Events[0].Seq)
	assert.Equal(t, int64(2), result.Events[1].Seq)
}

func TestRun_ReportsFailedExpectations(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "every check fails",
		Records:     abRecords(),
		Steps: []Step{
			{Action: session.ActionAddToComparison, Args: map[string]string{"name": "Zed"}, Expect: session.OutcomeApplied},
			{Action: session.ActionCloseDetail, Expect: session.OutcomeApplied},
		},
		Assertions: []Assertion{
			{Type: AssertViewNames, Names: []string{"B", "A"}},
			{Type: AssertComparisonNames, Names: []string{"Zed"}},
			{Type: AssertMode, Value: "compare"},
			{Type: AssertCriteria, Criteria: map[string]string{"sort": "name-desc"}},
			{Type: AssertRejected, Step: intp(1)},
			{Type: AssertViewCount, Count: intp(1)},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 8)

	assert.Equal(t, `step 0 (add_to_comparison): expected applied, got rejected (unknown agent: "Zed")`, result.Errors[0])
	assert.Equal(t, "step 1 (close_detail): expected applied, got ignored (no detail open)", result.Errors[1])
	assert.Contains(t, result.Errors[2], "Assertion failed: view_names")
	assert.Contains(t, result.Errors[2], `Actual: ["A" "B"]`)
	assert.Contains(t, result.Errors[2], "Full trace:")
	assert.Contains(t, result.Errors[5], `sort="name-asc" (want "name-desc")`)
	assert.Contains(t, result.Errors[6], "step 1 ignored")
	assert.Contains(t, result.Errors[7], "2 records")
}

func TestRun_CatalogLoadFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "missing",
		Description: "catalog does not exist",
		Catalog:     filepath.Join(t.TempDir(), "nope.json"),
		Steps:       []Step{{Action: session.ActionResetFilters}},
		Assertions:  []Assertion{{Type: AssertViewCount, Count: intp(0)}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")
	assert.Contains(t, err.Error(), "E005")
}

func TestParseScenario_Errors(t *testing.T) {
	base := `
name: s
description: d
records:
  - { name: A, category: X }
`
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing name", "description: d\nrecords: [{name: A, category: X}]\nsteps: [{action: reset_filters}]\nassertions: [{type: view_count, count: 1}]", "name is required"},
		{"no catalog", "name: s\ndescription: d\nsteps: [{action: reset_filters}]\nassertions: [{type: view_count, count: 1}]", "exactly one of catalog and records"},
		{"both catalogs", base + "catalog: x.json\nsteps: [{action: reset_filters}]\nassertions: [{type: view_count, count: 1}]", "exactly one of catalog and records"},
		{"no steps", base + "assertions: [{type: view_count, count: 1}]", "steps list is required"},
		{"no assertions", base + "steps: [{action: reset_filters}]", "assertions list is required"},
		{"unknown action", base + "steps: [{action: fly}]\nassertions: [{type: view_count, count: 1}]", `unknown action "fly"`},
		{"missing arg", base + "steps: [{action: set_search}]\nassertions: [{type: view_count, count: 1}]", `requires arg "text"`},
		{"bad outcome", base + "steps: [{action: reset_filters, expect: maybe}]\nassertions: [{type: view_count, count: 1}]", `unknown outcome "maybe"`},
		{"unknown assertion", base + "steps: [{action: reset_filters}]\nassertions: [{type: vibes}]", `unknown assertion type "vibes"`},
		{"names missing", base + "steps: [{action: reset_filters}]\nassertions: [{type: view_names}]", "names is required"},
		{"step out of range", base + "steps: [{action: reset_filters}]\nassertions: [{type: rejected, step: 1}]", "step must index"},
		{"bad criteria key", base + "steps: [{action: reset_filters}]\nassertions: [{type: criteria, criteria: {order: x}}]", `unknown criteria key "order"`},
		{"negative count", base + "steps: [{action: reset_filters}]\nassertions: [{type: view_count, count: -1}]", "count must be non-negative"},
		{"unknown field", base + "stepz: []\nsteps: [{action: reset_filters}]\nassertions: [{type: view_count, count: 1}]", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_ResolvesCatalogPath(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/comparison_capacity.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "catalogs", "abcd.json"), scenario.Catalog)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "nested/b.yml", "nested/deep/c.yaml", "notes.txt"} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	rel := func(paths []string) []string {
		out := make([]string, len(paths))
		for i, p := range paths {
			r, err := filepath.Rel(dir, p)
			require.NoError(t, err)
			out[i] = filepath.ToSlash(r)
		}
		return out
	}

	all, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "nested/b.yml", "nested/deep/c.yaml"}, rel(all))

	filtered, err := FindScenarios(dir, "nested/**/*.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"nested/deep/c.yaml"}, rel(filtered))

	_, err = FindScenarios(dir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")

	_, err = FindScenarios(filepath.Join(dir, "a.yaml"), "")
	var dirErr *ScenarioDirError
	require.ErrorAs(t, err, &dirErr)
	assert.True(t, strings.Contains(err.Error(), "not a directory"))
}
