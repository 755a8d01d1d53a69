package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/agentdeck/internal/catalog"
)

// Selection is the pill set consulted by ComputeView.
// selection.TagSet implements it.
type Selection interface {
	Len() int
	Has(key string) bool
}

// ComputeView applies criteria and the pill selection to records and
// returns the ordered subset. The input slice is never modified; a nil
// pills value is treated as an empty selection.
//
// ComputeView is a pure function with no side effects.
func ComputeView(records []catalog.Record, c Criteria, pills Selection) []catalog.Record {
	m := newMatcher(c.Search)
	usePills := pills != nil && pills.Len() > 0
	useCategory := c.Category != "" && c.Category != CategoryAll

	view := make([]catalog.Record, 0, len(records))
	for _, r := range records {
		if !m.match(r) {
			continue
		}
		if useCategory && r.Category != c.Category {
			continue
		}
		if usePills && !intersects(r, pills) {
			continue
		}
		view = append(view, r)
	}

	SortRecords(view, c.Sort)
	return view
}

// intersects reports whether any of the record's facet keys is selected.
func intersects(r catalog.Record, pills Selection) bool {
	for _, k := range r.FacetKeys() {
		if pills.Has(k) {
			return true
		}
	}
	return false
}

// matcher performs case-insensitive substring search using Unicode case
// folding. A Caser is stateful, so each ComputeView call owns its matcher.
type matcher struct {
	needle string
	fold   cases.Caser
}

func newMatcher(search string) *matcher {
	fold := cases.Fold()
	return &matcher{
		needle: fold.String(norm.NFC.String(strings.TrimSpace(search))),
		fold:   fold,
	}
}

func (m *matcher) contains(s string) bool {
	return s != "" && strings.Contains(m.fold.String(s), m.needle)
}

func (m *matcher) any(items []string) bool {
	for _, item := range items {
		if m.contains(item) {
			return true
		}
	}
	return false
}

// match reports whether any searchable field contains the needle.
// An empty needle matches every record.
func (m *matcher) match(r catalog.Record) bool {
	if m.needle == "" {
		return true
	}
	return m.contains(r.Name) ||
		m.contains(r.Category) ||
		m.any(r.Capabilities) ||
		m.any(r.Interfaces) ||
		m.any(r.Tags) ||
		m.contains(r.Notes)
}

// SortRecords sorts records in place by key. The sort is stable: records
// with equal keys keep their relative order. Unknown keys sort by name.
func SortRecords(records []catalog.Record, key SortKey) {
	col := collate.New(language.English)

	var compare func(a, b catalog.Record) int
	switch key {
	case SortNameDesc:
		compare = func(a, b catalog.Record) int {
			return col.CompareString(b.Name, a.Name)
		}
	case SortCategoryAsc:
		compare = func(a, b catalog.Record) int {
			return col.CompareString(a.Category, b.Category)
		}
	case SortAutonomyRank:
		// Descending; AutonomyUnknown is the lowest rank and sorts last.
		compare = func(a, b catalog.Record) int {
			return cmp.Compare(catalog.AutonomyRank(b.AutonomyLevel), catalog.AutonomyRank(a.AutonomyLevel))
		}
	case SortPricingAsc:
		compare = comparePricing
	default:
		compare = func(a, b catalog.Record) int {
			return col.CompareString(a.Name, b.Name)
		}
	}

	slices.SortStableFunc(records, compare)
}

// comparePricing orders by starting price; records without a known price
// sort after every priced record.
func comparePricing(a, b catalog.Record) int {
	pa, okA := catalog.StartingPrice(a.Pricing)
	pb, okB := catalog.StartingPrice(b.Pricing)
	switch {
	case okA && okB:
		return cmp.Compare(pa, pb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
