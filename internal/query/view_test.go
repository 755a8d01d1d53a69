package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/agentdeck/internal/catalog"
)

type pillSet map[string]bool

func (p pillSet) Len() int            { return len(p) }
func (p pillSet) Has(key string) bool { return p[key] }

func names(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func price(v float64) *float64 { return &v }

func fixture() []catalog.Record {
	return []catalog.Record{
		{Name: "Cursor", Category: "IDE Commercial", Capabilities: []string{"multi-file edits"}, Interfaces: []string{"VS Code fork"}, Tags: []string{"fast"},
			Pricing: []catalog.PricingPlan{{Plan: "Pro", PricePerMonth: price(20)}}, AutonomyLevel: "medium"},
		{Name: "Aider", Category: "CLI / Terminal", Capabilities: []string{"git commits"}, Interfaces: []string{"terminal"},
			Pricing: []catalog.PricingPlan{{Plan: "OSS", Price: "open-source"}}, AutonomyLevel: "low"},
		{Name: "Devin", Category: "Hosted Autonomy", Notes: "Runs in a sandboxed VM",
			Pricing: []catalog.PricingPlan{{Plan: "Team", PricePerMonth: price(500)}}, AutonomyLevel: "full"},
		{Name: "LangGraph", Category: "Open Source Framework", Tags: []string{"graphs"}},
		{Name: "Claude CLI", Category: "CLI / Terminal", Interfaces: []string{"terminal"}, Tags: []string{"fast"},
			Pricing: []catalog.PricingPlan{{Plan: "Pro", PricePerMonth: price(17)}}, AutonomyLevel: "high"},
	}
}

func TestComputeView_DefaultsReturnEverything(t *testing.T) {
	records := fixture()
	view := ComputeView(records, DefaultCriteria(), nil)
	assert.Equal(t, []string{"Aider", "Claude CLI", "Cursor", "Devin", "LangGraph"}, names(view))

	view = ComputeView(records, DefaultCriteria(), pillSet{})
	assert.Len(t, view, len(records))
}

func TestComputeView_DoesNotMutateInput(t *testing.T) {
	records := fixture()
	before := names(records)
	_ = ComputeView(records, Criteria{Category: CategoryAll, Sort: SortNameDesc}, nil)
	assert.Equal(t, before, names(records))
}

func TestComputeView_Search(t *testing.T) {
	records := fixture()
	tests := []struct {
		search string
		want   []string
	}{
		{"cursor", []string{"Cursor"}},            // name, different case
		{"TERMINAL", []string{"Aider", "Claude CLI"}}, // category and interface
		{"git", []string{"Aider"}},                // capability
		{"graphs", []string{"LangGraph"}},         // tag
		{"sandboxed", []string{"Devin"}},          // notes
		{"  fast  ", []string{"Claude CLI", "Cursor"}},
		{"nothing-matches", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			c := DefaultCriteria()
			c.Search = tt.search
			assert.Equal(t, tt.want, names(ComputeView(records, c, nil)))
		})
	}
}

func TestComputeView_SearchUsesCaseFolding(t *testing.T) {
	records := []catalog.Record{{Name: "STRASSE", Category: "X"}, {Name: "Other", Category: "X"}}
	c := DefaultCriteria()
	c.Search = "straße"
	assert.Equal(t, []string{"STRASSE"}, names(ComputeView(records, c, nil)))
}

func TestComputeView_MissingFieldsDoNotMatch(t *testing.T) {
	records := []catalog.Record{{Name: "Bare", Category: "X"}}
	c := DefaultCriteria()
	c.Search = "n/a"
	assert.Empty(t, ComputeView(records, c, nil))
}

func TestComputeView_CategoryFilter(t *testing.T) {
	c := DefaultCriteria()
	c.Category = "CLI / Terminal"
	assert.Equal(t, []string{"Aider", "Claude CLI"}, names(ComputeView(fixture(), c, nil)))

	c.Category = "cli / terminal"
	assert.Empty(t, ComputeView(fixture(), c, nil), "category match is exact")
}

func TestComputeView_PillFilter(t *testing.T) {
	records := fixture()
	tests := []struct {
		name  string
		pills pillSet
		want  []string
	}{
		{"category pill", pillSet{"Hosted Autonomy": true}, []string{"Devin"}},
		{"tag pill", pillSet{"fast": true}, []string{"Claude CLI", "Cursor"}},
		{"interface pill", pillSet{"VS Code fork": true}, []string{"Cursor"}},
		{"or within set", pillSet{"graphs": true, "Hosted Autonomy": true}, []string{"Devin", "LangGraph"}},
		{"unknown pill", pillSet{"nope": true}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(ComputeView(records, DefaultCriteria(), tt.pills)))
		})
	}
}

func TestComputeView_FiltersCombineWithAnd(t *testing.T) {
	c := DefaultCriteria()
	c.Search = "fast"
	c.Category = "CLI / Terminal"
	view := ComputeView(fixture(), c, pillSet{"terminal": true})
	assert.Equal(t, []string{"Claude CLI"}, names(view))

	view = ComputeView(fixture(), c, pillSet{"graphs": true})
	assert.Empty(t, view)
}

func TestComputeView_IsSubsetWithoutDuplicates(t *testing.T) {
	records := fixture()
	input := map[string]bool{}
	for _, r := range records {
		input[r.Name] = true
	}

	searches := []string{"", "a", "e", "cli", "fast", "zzz"}
	for _, search := range searches {
		for _, key := range SortKeys {
			for _, pills := range []pillSet{nil, {"fast": true}, {"CLI / Terminal": true, "graphs": true}} {
				c := Criteria{Search: search, Category: CategoryAll, Sort: key}
				view := ComputeView(records, c, pills)
				seen := map[string]bool{}
				for _, r := range view {
					require.True(t, input[r.Name], "fabricated record %s", r.Name)
					require.False(t, seen[r.Name], "duplicate record %s", r.Name)
					seen[r.Name] = true
				}
				require.LessOrEqual(t, len(view), len(records))
			}
		}
	}
}

func TestSort_NameDescReversesNameAsc(t *testing.T) {
	records := fixture()
	asc := names(ComputeView(records, Criteria{Category: CategoryAll, Sort: SortNameAsc}, nil))
	desc := names(ComputeView(records, Criteria{Category: CategoryAll, Sort: SortNameDesc}, nil))

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestSort_StableForEqualKeys(t *testing.T) {
	var records []catalog.Record
	for i := 0; i < 40; i++ {
		category := "B"
		if i%3 == 0 {
			category = "A"
		}
		records = append(records, catalog.Record{Name: fmt.Sprintf("r%02d", i), Category: category})
	}

	view := ComputeView(records, Criteria{Category: CategoryAll, Sort: SortCategoryAsc}, nil)
	var as, bs []string
	for _, r := range view {
		if r.Category == "A" {
			as = append(as, r.Name)
		} else {
			bs = append(bs, r.Name)
		}
	}
	require.Len(t, view, 40)
	assert.Equal(t, "A", view[0].Category)
	assert.IsIncreasing(t, as, "category ties keep catalog order")
	assert.IsIncreasing(t, bs, "category ties keep catalog order")
}

func TestSort_EqualNamesKeepOrderUnderBothDirections(t *testing.T) {
	// Names that collate equally must keep catalog order in either direction.
	records := []catalog.Record{
		{Name: "same", Category: "first"},
		{Name: "same", Category: "second"},
	}
	for _, key := range []SortKey{SortNameAsc, SortNameDesc} {
		sorted := append([]catalog.Record(nil), records...)
		SortRecords(sorted, key)
		assert.Equal(t, "first", sorted[0].Category, string(key))
		assert.Equal(t, "second", sorted[1].Category, string(key))
	}
}

func TestSort_AutonomyRank(t *testing.T) {
	view := ComputeView(fixture(), Criteria{Category: CategoryAll, Sort: SortAutonomyRank}, nil)
	assert.Equal(t, []string{"Devin", "Claude CLI", "Cursor", "Aider", "LangGraph"}, names(view))
}

func TestSort_PricingAsc(t *testing.T) {
	view := ComputeView(fixture(), Criteria{Category: CategoryAll, Sort: SortPricingAsc}, nil)
	assert.Equal(t, []string{"Aider", "Claude CLI", "Cursor", "Devin", "LangGraph"}, names(view))
}

func TestSort_CollatesNames(t *testing.T) {
	records := []catalog.Record{
		{Name: "zed", Category: "X"},
		{Name: "Éclair", Category: "X"},
		{Name: "apple", Category: "X"},
	}
	SortRecords(records, SortNameAsc)
	assert.Equal(t, []string{"apple", "Éclair", "zed"}, names(records))
}

func TestScenario_SearchPillReset(t *testing.T) {
	records := []catalog.Record{
		{Name: "A", Category: "X", Tags: []string{"fast"}},
		{Name: "B", Category: "Y", Tags: []string{"slow"}},
	}

	c := DefaultCriteria()
	c.Search = "fast"
	assert.Equal(t, []string{"A"}, names(ComputeView(records, c, nil)))

	c = DefaultCriteria()
	assert.Equal(t, []string{"B"}, names(ComputeView(records, c, pillSet{"Y": true})))

	assert.Equal(t, []string{"A", "B"}, names(ComputeView(records, DefaultCriteria(), pillSet{})))
}
