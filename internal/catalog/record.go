package catalog

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholder is shown wherever an optional field is absent.
const Placeholder = "N/A"

// Record is one catalog entry describing a single tool or agent.
type Record struct {
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	Description   string            `json:"description,omitempty"`
	Capabilities  []string          `json:"agent_capabilities,omitempty"`
	Interfaces    []string          `json:"interfaces,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Pricing       []PricingPlan     `json:"pricing_usd,omitempty"`
	PricingSource string            `json:"pricing_source,omitempty"`
	Links         map[string]string `json:"links,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	AutonomyLevel string            `json:"autonomy_level,omitempty"`
}

// PricingPlan is one entry of a record's structured pricing breakdown.
type PricingPlan struct {
	Plan              string   `json:"plan"`
	PricePerMonth     *float64 `json:"price_per_month,omitempty"`
	PricePerUserMonth *float64 `json:"price_per_user_month,omitempty"`
	Price             string   `json:"price,omitempty"`
	Limits            string   `json:"limits,omitempty"`
}

// Catalog is the loaded, normalized record list.
type Catalog struct {
	Records []Record
	Digest  string // content hash of Records, see Digest
	Source  string // location the catalog was loaded from
	Issues  []Issue
}

// New builds a Catalog from normalized records and stamps its digest.
func New(source string, records []Record, issues []Issue) *Catalog {
	return &Catalog{
		Records: records,
		Digest:  Digest(records),
		Source:  source,
		Issues:  issues,
	}
}

// Find returns the record with the given name.
func (c *Catalog) Find(name string) (Record, bool) {
	for _, r := range c.Records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// Or returns s, or Placeholder when s is blank.
func Or(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// JoinOr joins up to limit items with ", ". A limit <= 0 means all items.
// An empty list yields Placeholder.
func JoinOr(items []string, limit int) string {
	if len(items) == 0 {
		return Placeholder
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}

// LinkKinds returns the kinds of non-empty links in sorted order.
func (r Record) LinkKinds() []string {
	kinds := make([]string, 0, len(r.Links))
	for kind, url := range r.Links {
		if url != "" {
			kinds = append(kinds, kind)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// FacetKeys returns every pill key the record belongs to: its category,
// tags, and interfaces.
func (r Record) FacetKeys() []string {
	keys := make([]string, 0, 1+len(r.Tags)+len(r.Interfaces))
	keys = append(keys, r.Category)
	keys = append(keys, r.Tags...)
	keys = append(keys, r.Interfaces...)
	return keys
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LooseString accepts JSON strings, numbers, and booleans.
// Older catalogs wrote autonomy levels and prices as bare numbers.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = LooseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = LooseString(num.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*s = LooseString(strconv.FormatBool(b))
	return nil
}
