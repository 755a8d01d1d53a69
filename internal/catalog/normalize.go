package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RawRecord is a catalog entry as it appears in a source document.
//
// Two schemas have been published. The canonical one uses category and a
// structured pricing_usd list. The legacy one uses type, autonomy_level and a
// flat pricing string. RawRecord accepts both; Normalize migrates them.
type RawRecord struct {
	Name              string            `json:"name" yaml:"name"`
	Category          string            `json:"category" yaml:"category"`
	Type              string            `json:"type" yaml:"type"` // legacy
	Description       string            `json:"description" yaml:"description"`
	Capabilities      []string          `json:"capabilities" yaml:"capabilities"`
	AgentCapabilities []string          `json:"agent_capabilities" yaml:"agent_capabilities"`
	Interfaces        []string          `json:"interfaces" yaml:"interfaces"`
	Tags              []string          `json:"tags" yaml:"tags"`
	PricingUSD        []RawPlan         `json:"pricing_usd" yaml:"pricing_usd"`
	Pricing           LooseString       `json:"pricing" yaml:"pricing"` // legacy
	PricingSource     string            `json:"pricing_source" yaml:"pricing_source"`
	Links             map[string]string `json:"links" yaml:"links"`
	Notes             string            `json:"notes" yaml:"notes"`
	AutonomyLevel     LooseString       `json:"autonomy_level" yaml:"autonomy_level"`
}

// RawPlan is one pricing_usd entry as it appears in a source document.
type RawPlan struct {
	Plan              string      `json:"plan" yaml:"plan"`
	PricePerMonth     *float64    `json:"price_per_month" yaml:"price_per_month"`
	PricePerUserMonth *float64    `json:"price_per_user_month" yaml:"price_per_user_month"`
	Price             LooseString `json:"price" yaml:"price"`
	Limits            string      `json:"limits" yaml:"limits"`
}

// LegacyPlanName names the single plan synthesized from a flat pricing string.
const LegacyPlanName = "Standard"

// Issue describes a raw record that was dropped or altered during Normalize.
type Issue struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	if i.Name != "" {
		return fmt.Sprintf("record %d (%s): %s", i.Index, i.Name, i.Reason)
	}
	return fmt.Sprintf("record %d: %s", i.Index, i.Reason)
}

// Normalize migrates raw records into the canonical schema.
//
// Migration rules:
//   - type fills category when category is empty
//   - a flat pricing string becomes one plan named LegacyPlanName
//   - capabilities and agent_capabilities merge, first occurrence wins
//   - strings are trimmed and NFC-normalized; empty list items are dropped
//
// Records with an empty name or category are dropped. A repeated name keeps
// the first record. Each dropped record yields an Issue. Input order is
// preserved and is the tie-break order for every sort.
func Normalize(raw []RawRecord) ([]Record, []Issue) {
	records := make([]Record, 0, len(raw))
	var issues []Issue
	seen := make(map[string]bool, len(raw))

	for i, rr := range raw {
		rec := NormalizeRecord(rr)
		switch {
		case rec.Name == "":
			issues = append(issues, Issue{Index: i, Reason: "name is required"})
			continue
		case rec.Category == "":
			issues = append(issues, Issue{Index: i, Name: rec.Name, Reason: "category is required"})
			continue
		case seen[rec.Name]:
			issues = append(issues, Issue{Index: i, Name: rec.Name, Reason: "duplicate name, keeping first occurrence"})
			continue
		}
		seen[rec.Name] = true
		records = append(records, rec)
	}

	return records, issues
}

// NormalizeRecord migrates one raw record without the drop and duplicate
// checks of Normalize.
func NormalizeRecord(rr RawRecord) Record {
	rec := Record{
		Name:          clean(rr.Name),
		Category:      clean(rr.Category),
		Description:   clean(rr.Description),
		Capabilities:  cleanList(append(append([]string{}, rr.AgentCapabilities...), rr.Capabilities...)),
		Interfaces:    cleanList(rr.Interfaces),
		Tags:          cleanList(rr.Tags),
		PricingSource: clean(rr.PricingSource),
		Notes:         clean(rr.Notes),
		AutonomyLevel: clean(string(rr.AutonomyLevel)),
	}
	if rec.Category == "" {
		rec.Category = clean(rr.Type)
	}

	for _, rp := range rr.PricingUSD {
		plan := PricingPlan{
			Plan:              clean(rp.Plan),
			PricePerMonth:     rp.PricePerMonth,
			PricePerUserMonth: rp.PricePerUserMonth,
			Price:             clean(string(rp.Price)),
			Limits:            clean(rp.Limits),
		}
		rec.Pricing = append(rec.Pricing, plan)
	}
	if flat := clean(string(rr.Pricing)); flat != "" && len(rec.Pricing) == 0 {
		rec.Pricing = []PricingPlan{{Plan: LegacyPlanName, Price: flat}}
	}

	if len(rr.Links) > 0 {
		rec.Links = make(map[string]string, len(rr.Links))
		for kind, url := range rr.Links {
			kind, url = clean(kind), clean(url)
			if kind == "" || url == "" {
				continue
			}
			rec.Links[strings.ToLower(kind)] = url
		}
		if len(rec.Links) == 0 {
			rec.Links = nil
		}
	}

	return rec
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cleanList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = clean(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
