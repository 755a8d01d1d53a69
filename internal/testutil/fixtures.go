package testutil

import "github.com/roach88/agentdeck/internal/catalog"

// Price returns a pointer to v for PricingPlan literals.
func Price(v float64) *float64 { return &v }

// Records returns five records spanning every badge, in a fixed non-sorted
// order. Each call returns fresh slices.
func Records() []catalog.Record {
	return []catalog.Record{
		{
			Name:          "Cursor",
			Category:      "IDE Commercial",
			Description:   "AI-first code editor",
			Capabilities:  []string{"multi-file edits", "chat"},
			Interfaces:    []string{"VS Code fork", "web"},
			Tags:          []string{"fast"},
			Pricing:       []catalog.PricingPlan{{Plan: "Hobby", PricePerMonth: Price(0)}, {Plan: "Pro", PricePerMonth: Price(20)}},
			PricingSource: "https://cursor.com/pricing",
			Links:         map[string]string{"docs": "https://docs.cursor.com", "pricing": "https://cursor.com/pricing"},
			Notes:         "Popular fork of VS Code",
			AutonomyLevel: "medium",
		},
		{
			Name:          "Aider",
			Category:      "CLI / Terminal",
			Capabilities:  []string{"git commits"},
			Interfaces:    []string{"terminal"},
			Tags:          []string{"oss"},
			Pricing:       []catalog.PricingPlan{{Plan: "OSS", Price: "open-source"}},
			Links:         map[string]string{"docs": "https://aider.chat/docs"},
			AutonomyLevel: "low",
		},
		{
			Name:          "Devin",
			Category:      "Hosted Autonomy",
			Interfaces:    []string{"web", "slack"},
			Pricing:       []catalog.PricingPlan{{Plan: "Team", PricePerMonth: Price(500)}},
			Notes:         "Runs in a sandboxed VM",
			AutonomyLevel: "full",
		},
		{
			Name:     "LangGraph",
			Category: "Open Source Framework",
			Tags:     []string{"graphs"},
		},
		{
			Name:          "Claude CLI",
			Category:      "CLI / Terminal",
			Interfaces:    []string{"terminal"},
			Tags:          []string{"fast"},
			Pricing:       []catalog.PricingPlan{{Plan: "Pro", PricePerMonth: Price(17)}},
			AutonomyLevel: "high",
		},
	}
}

// Catalog wraps Records in a catalog.Catalog.
func Catalog() *catalog.Catalog {
	return catalog.New("testdata", Records(), nil)
}

// Names projects records to their names.
func Names(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

// Find returns the named fixture record. It panics on unknown names.
func Find(name string) catalog.Record {
	for _, r := range Records() {
		if r.Name == name {
			return r
		}
	}
	panic("testutil: unknown fixture record " + name)
}
