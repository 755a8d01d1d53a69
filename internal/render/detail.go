package render

import (
	"fmt"
	"strings"

	"github.com/roach88/agentdeck/internal/catalog"
)

// Detail renders every attribute of a record, including the fields a card
// leaves out: the full interface and capability lists, each pricing plan,
// the pricing source, notes and all links. Links are printed, never opened.
func (r *Renderer) Detail(rec catalog.Record) string {
	badge := catalog.BadgeFor(rec.Category)

	var b strings.Builder
	b.WriteString(r.paint(r.styles.Title, rec.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Category: %s [%s]\n", rec.Category, badge)
	fmt.Fprintf(&b, "Autonomy: %s\n", catalog.Or(rec.AutonomyLevel))

	r.section(&b, "Description", []string{catalog.Or(rec.Description)})
	r.section(&b, "Interfaces", []string{catalog.JoinOr(rec.Interfaces, 0)})
	r.section(&b, "Tags", []string{catalog.JoinOr(rec.Tags, 0)})
	r.section(&b, "Capabilities", bullets(rec.Capabilities))

	pricing := make([]string, 0, len(rec.Pricing)+1)
	for _, p := range rec.Pricing {
		pricing = append(pricing, catalog.PlanSummary(p))
	}
	if len(pricing) == 0 {
		pricing = append(pricing, catalog.Placeholder)
	}
	if rec.PricingSource != "" {
		pricing = append(pricing, "Source: "+rec.PricingSource)
	}
	r.section(&b, "Pricing", pricing)

	r.section(&b, "Notes", []string{catalog.Or(rec.Notes)})

	links := make([]string, 0, len(rec.Links))
	for _, kind := range rec.LinkKinds() {
		links = append(links, catalog.Capitalize(kind)+": "+rec.Links[kind])
	}
	if len(links) == 0 {
		links = append(links, catalog.Placeholder)
	}
	r.section(&b, "Links", links)

	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) section(b *strings.Builder, title string, lines []string) {
	b.WriteString("\n")
	b.WriteString(r.paint(r.styles.Heading, title))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func bullets(items []string) []string {
	if len(items) == 0 {
		return []string{catalog.Placeholder}
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = "- " + item
	}
	return out
}

// DetailMarkdown renders a record as markdown for a terminal markdown
// renderer. It carries the same fields as Detail.
func DetailMarkdown(rec catalog.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", rec.Name)
	fmt.Fprintf(&b, "**Category:** %s (%s)  \n", rec.Category, catalog.BadgeFor(rec.Category))
	fmt.Fprintf(&b, "**Autonomy:** %s\n\n", catalog.Or(rec.AutonomyLevel))

	fmt.Fprintf(&b, "## Description\n\n%s\n\n", catalog.Or(rec.Description))
	fmt.Fprintf(&b, "## Interfaces\n\n%s\n\n", catalog.JoinOr(rec.Interfaces, 0))
	fmt.Fprintf(&b, "## Tags\n\n%s\n\n", catalog.JoinOr(rec.Tags, 0))

	b.WriteString("## Capabilities\n\n")
	b.WriteString(strings.Join(bullets(rec.Capabilities), "\n") + "\n")
	b.WriteString("\n## Pricing\n\n")
	if len(rec.Pricing) == 0 {
		b.WriteString(catalog.Placeholder + "\n")
	}
	for _, p := range rec.Pricing {
		b.WriteString("- " + catalog.PlanSummary(p) + "\n")
	}
	if rec.PricingSource != "" {
		fmt.Fprintf(&b, "\n_Source: %s_\n", rec.PricingSource)
	}

	fmt.Fprintf(&b, "\n## Notes\n\n%s\n\n", catalog.Or(rec.Notes))

	b.WriteString("## Links\n\n")
	kinds := rec.LinkKinds()
	if len(kinds) == 0 {
		b.WriteString(catalog.Placeholder + "\n")
	}
	for _, kind := range kinds {
		fmt.Fprintf(&b, "- %s: %s\n", catalog.Capitalize(kind), rec.Links[kind])
	}
	return b.String()
}
