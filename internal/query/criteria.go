package query

import (
	"fmt"
	"strings"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// SortKey selects the ordering of the derived view.
type SortKey string

const (
	SortNameAsc      SortKey = "name-asc"
	SortNameDesc     SortKey = "name-desc"
	SortCategoryAsc  SortKey = "category-asc"
	SortAutonomyRank SortKey = "autonomy-rank" // most autonomous first
	SortPricingAsc   SortKey = "pricing-asc"   // cheapest known price first
)

// SortKeys lists every sort key in menu order.
var SortKeys = []SortKey{
	SortNameAsc,
	SortNameDesc,
	SortCategoryAsc,
	SortAutonomyRank,
	SortPricingAsc,
}

// sortAliases accepts the short names used by the sort selector.
var sortAliases = map[string]SortKey{
	"name":     SortNameAsc,
	"category": SortCategoryAsc,
	"autonomy": SortAutonomyRank,
	"pricing":  SortPricingAsc,
}

// ParseSortKey resolves a sort key or one of its aliases.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	if k, ok := sortAliases[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("invalid sort key %q: must be one of %v", s, SortKeys)
}

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Next returns the sort key after k in menu order, wrapping around.
func (k SortKey) Next() SortKey {
	for i, known := range SortKeys {
		if k == known {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortNameAsc
}

// Criteria is the value object driving ComputeView.
type Criteria struct {
	Search   string  `json:"search" yaml:"search"`
	Category string  `json:"category" yaml:"category"`
	Sort     SortKey `json:"sort" yaml:"sort"`
}

// DefaultCriteria matches everything, ordered by name.
func DefaultCriteria() Criteria {
	return Criteria{
		Search:   "",
		Category: CategoryAll,
		Sort:     SortNameAsc,
	}
}

// IsDefault reports whether c filters nothing.
func (c Criteria) IsDefault() bool {
	return c == DefaultCriteria()
}

// Validate checks that the sort key is known and a category is set.
func (c Criteria) Validate() error {
	if !c.Sort.Valid() {
		return fmt.Errorf("invalid sort key %q", c.Sort)
	}
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("category is required (use %q to disable the filter)", CategoryAll)
	}
	return nil
}
