package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Badge is the display classification of a category.
type Badge int

const (
	BadgeOther Badge = iota
	BadgeIDE
	BadgeCLI
	BadgeAutonomous
	BadgeFramework
)

var badgeNames = [...]string{
	BadgeOther:      "other",
	BadgeIDE:        "ide",
	BadgeCLI:        "cli",
	BadgeAutonomous: "autonomous",
	BadgeFramework:  "framework",
}

func (b Badge) String() string {
	if b < 0 || int(b) >= len(badgeNames) {
		return badgeNames[BadgeOther]
	}
	return badgeNames[b]
}

// badgeByCategory maps lower-cased category names to badges.
// Legacy type values are listed alongside the canonical categories.
var badgeByCategory = map[string]Badge{
	"ide commercial":        BadgeIDE,
	"ide":                   BadgeIDE,
	"ide extension":         BadgeIDE,
	"cli / terminal":        BadgeCLI,
	"cli":                   BadgeCLI,
	"terminal":              BadgeCLI,
	"hosted autonomy":       BadgeAutonomous,
	"autonomous":            BadgeAutonomous,
	"autonomous agent":      BadgeAutonomous,
	"open source framework": BadgeFramework,
	"framework":             BadgeFramework,
}

// BadgeFor classifies a category. Unknown categories are BadgeOther.
func BadgeFor(category string) Badge {
	if b, ok := badgeByCategory[strings.ToLower(strings.TrimSpace(category))]; ok {
		return b
	}
	return BadgeOther
}

// PricingKind is the coarse classification of a pricing breakdown.
type PricingKind int

const (
	PricingUnknown PricingKind = iota
	PricingFreeOpenSource
	PricingFreePlan
	PricingFrom
	PricingPaid
)

// PricingLabel is the card-level summary of a pricing breakdown.
// From is only meaningful when Kind is PricingFrom.
type PricingLabel struct {
	Kind PricingKind
	From float64
}

func (l PricingLabel) String() string {
	switch l.Kind {
	case PricingFreeOpenSource:
		return "Free & Open Source"
	case PricingFreePlan:
		return "Free Plan Available"
	case PricingFrom:
		return "From $" + FormatPrice(l.From)
	case PricingPaid:
		return "Paid"
	default:
		return Placeholder
	}
}

// PricingLabelFor classifies a pricing breakdown.
//
// A plan is free when its monthly price is exactly zero or its price text
// mentions "free" or "open-source". Open-source wins over a plain free tier.
// Otherwise the lowest positive monthly or per-user monthly price is used.
// Plans with no usable price classify as PricingPaid; no plans at all is
// PricingUnknown.
func PricingLabelFor(plans []PricingPlan) PricingLabel {
	if len(plans) == 0 {
		return PricingLabel{Kind: PricingUnknown}
	}

	hasFree, hasOpenSource := false, false
	for _, p := range plans {
		price := strings.ToLower(p.Price)
		if strings.Contains(price, "open-source") {
			hasOpenSource = true
		}
		if (p.PricePerMonth != nil && *p.PricePerMonth == 0) ||
			strings.Contains(price, "open-source") || strings.Contains(price, "free") {
			hasFree = true
		}
	}
	switch {
	case hasFree && hasOpenSource:
		return PricingLabel{Kind: PricingFreeOpenSource}
	case hasFree:
		return PricingLabel{Kind: PricingFreePlan}
	}

	if min, ok := minPaidPrice(plans); ok {
		return PricingLabel{Kind: PricingFrom, From: min}
	}
	return PricingLabel{Kind: PricingPaid}
}

// StartingPrice is the cheapest known monthly price of a breakdown: zero for
// anything with a free tier, else the lowest paid price. ok is false when no
// price is known.
func StartingPrice(plans []PricingPlan) (price float64, ok bool) {
	label := PricingLabelFor(plans)
	switch label.Kind {
	case PricingFreeOpenSource, PricingFreePlan:
		return 0, true
	case PricingFrom:
		return label.From, true
	default:
		return 0, false
	}
}

func minPaidPrice(plans []PricingPlan) (float64, bool) {
	min, found := math.Inf(1), false
	for _, p := range plans {
		var v float64
		switch {
		case p.PricePerMonth != nil && *p.PricePerMonth > 0:
			v = *p.PricePerMonth
		case p.PricePerUserMonth != nil && *p.PricePerUserMonth > 0:
			v = *p.PricePerUserMonth
		default:
			continue
		}
		if v < min {
			min, found = v, true
		}
	}
	return min, found
}

// PlanSummary renders one pricing plan as a detail line.
func PlanSummary(p PricingPlan) string {
	var value string
	switch {
	case p.PricePerMonth != nil:
		value = "$" + FormatPrice(*p.PricePerMonth) + "/month"
	case p.PricePerUserMonth != nil:
		value = "$" + FormatPrice(*p.PricePerUserMonth) + "/user/month"
	case p.Price != "":
		value = p.Price
	case p.Limits != "":
		value = p.Limits
	}
	switch {
	case p.Plan == "" && value == "":
		return Placeholder
	case p.Plan == "":
		return value
	case value == "":
		return p.Plan
	}
	return p.Plan + ": " + value
}

// FormatPrice prints a price without trailing zeros.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AutonomyUnknown is the rank of an absent or unrecognized autonomy level.
const AutonomyUnknown = -1

var autonomyByName = map[string]int{
	"none":             0,
	"manual":           0,
	"low":              1,
	"assistive":        1,
	"suggest":          1,
	"medium":           2,
	"supervised":       2,
	"semi-autonomous":  2,
	"high":             3,
	"autonomous":       3,
	"full":             4,
	"fully autonomous": 4,
}

// AutonomyRank maps an autonomy level to an ordinal. Levels may be named
// ("high"), numeric ("3") or prefixed ("L3"). Anything else is
// AutonomyUnknown.
func AutonomyRank(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return AutonomyUnknown
	}
	if rank, ok := autonomyByName[level]; ok {
		return rank
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(level, "l")); err == nil && n >= 0 {
		return n
	}
	return AutonomyUnknown
}
