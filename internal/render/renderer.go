package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/selection"
)

const (
	// NoResultsMessage is shown when the derived view is empty.
	NoResultsMessage = "No agents match the current filters."
	// CompareEmptyMessage is shown in compare mode with nothing selected.
	CompareEmptyMessage = "Select agents to compare (max 3)"

	defaultWidth = 100
	cardWidth    = 30
)

// Options configure a Renderer.
type Options struct {
	// Width is the display width in cells. Zero means 100.
	Width int
	// Plain disables styling and borders. Plain output is stable text,
	// suitable for pipes, logs and golden files.
	Plain bool
	Theme Theme
}

// Renderer projects a Snapshot into display text.
//
// Every call rebuilds the whole output from the snapshot; nothing is cached
// between calls, so rendering the same snapshot twice yields the same text.
type Renderer struct {
	opts   Options
	styles Styles
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	return &Renderer{opts: opts, styles: NewStyles(opts.Theme)}
}

// Plain reports whether the renderer emits unstyled text.
func (r *Renderer) Plain() bool { return r.opts.Plain }

// SetWidth changes the display width.
func (r *Renderer) SetWidth(w int) {
	if w > 0 {
		r.opts.Width = w
	}
}

// paint applies a style unless the renderer is plain.
func (r *Renderer) paint(st lipgloss.Style, s string) string {
	if r.opts.Plain {
		return s
	}
	return st.Render(s)
}

// Render returns the header followed by the body for the snapshot's mode.
func (r *Renderer) Render(s Snapshot) string {
	return r.Header(s) + "\n\n" + r.Body(s)
}

// Header renders stats, the active criteria and the pill bar.
func (r *Renderer) Header(s Snapshot) string {
	var b strings.Builder
	b.WriteString(r.paint(r.styles.Title, fmt.Sprintf("Showing %d of %d agents", len(s.View), s.Total)))
	b.WriteString("\n")
	b.WriteString(r.paint(r.styles.Muted, fmt.Sprintf("Search: %q | Category: %s | Sort: %s | View: %s | Comparing: %d/%d",
		s.Criteria.Search, s.Criteria.Category, s.Criteria.Sort, s.Mode, len(s.Compared), selection.MaxCompared)))
	if len(s.Pills) > 0 {
		b.WriteString("\n")
		b.WriteString(r.Pills(s))
	}
	return b.String()
}

// Pills renders the pill bar. Plain output marks active pills with '*'.
func (r *Renderer) Pills(s Snapshot) string {
	tokens := make([]string, len(s.Pills))
	for i, p := range s.Pills {
		if r.opts.Plain {
			if p.Active {
				tokens[i] = "*" + p.Key
			} else {
				tokens[i] = p.Key
			}
			continue
		}
		st := r.styles.Pill
		if p.Active {
			st = r.styles.PillActive
		}
		if i == s.PillCursor {
			st = st.Inherit(r.styles.PillCursor)
		}
		tokens[i] = st.Render(p.Key)
	}
	return "Pills: " + strings.Join(tokens, "  ")
}

// Body renders the mode-specific content.
func (r *Renderer) Body(s Snapshot) string {
	switch s.Mode {
	case ModeCompare:
		return r.Compare(s.Compared)
	case ModeList:
		return r.List(s)
	default:
		return r.Grid(s)
	}
}

// Grid renders the derived view as cards.
func (r *Renderer) Grid(s Snapshot) string {
	if len(s.View) == 0 {
		return r.paint(r.styles.Muted, NoResultsMessage)
	}

	cards := make([]string, len(s.View))
	for i, rec := range s.View {
		cards[i] = r.Card(rec, i == s.Cursor, s.IsCompared(rec.Name))
	}
	if r.opts.Plain {
		return strings.Join(cards, "\n\n")
	}

	cols := r.opts.Width / (cardWidth + 4)
	if cols < 1 {
		cols = 1
	}
	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Card renders one record in grid form.
func (r *Renderer) Card(rec catalog.Record, selected, compared bool) string {
	badge := catalog.BadgeFor(rec.Category)

	title := rec.Name
	if !r.opts.Plain {
		title = r.paint(r.styles.Heading, rec.Name) + " " + r.paint(r.styles.Badges[badge], badge.String())
	} else {
		title += " [" + badge.String() + "]"
	}
	if compared {
		title += " " + r.paint(r.styles.Compared, "(comparing)")
	}

	lines := []string{
		title,
		r.paint(r.styles.Muted, rec.Category),
		"Capabilities: " + catalog.JoinOr(rec.Capabilities, 0),
		"Interfaces: " + catalog.JoinOr(rec.Interfaces, 2),
		"Tags: " + catalog.JoinOr(rec.Tags, 3),
		"Pricing: " + catalog.PricingLabelFor(rec.Pricing).String(),
	}
	if links := cardLinks(rec); links != "" {
		lines = append(lines, "Links: "+links)
	}

	if r.opts.Plain {
		marker := "  "
		if selected {
			marker = "> "
		}
		for i := range lines {
			if i == 0 {
				lines[i] = marker + lines[i]
			} else {
				lines[i] = "  " + lines[i]
			}
		}
		return strings.Join(lines, "\n")
	}

	st := r.styles.Card
	if selected {
		st = r.styles.CardSelected
	}
	return st.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// cardLinks names the link kinds a card offers: pricing and docs only.
func cardLinks(rec catalog.Record) string {
	var kinds []string
	for _, kind := range []string{"pricing", "docs"} {
		if rec.Links[kind] != "" {
			kinds = append(kinds, catalog.Capitalize(kind))
		}
	}
	return strings.Join(kinds, ", ")
}

// List renders the derived view one record per line.
func (r *Renderer) List(s Snapshot) string {
	if len(s.View) == 0 {
		return r.paint(r.styles.Muted, NoResultsMessage)
	}

	lines := make([]string, len(s.View))
	for i, rec := range s.View {
		cursor, mark := " ", " "
		if i == s.Cursor {
			cursor = ">"
		}
		if s.IsCompared(rec.Name) {
			mark = "+"
		}
		line := fmt.Sprintf("%s%s %s | %s | %s | %s", cursor, mark,
			rec.Name, rec.Category,
			catalog.PricingLabelFor(rec.Pricing).String(),
			catalog.JoinOr(rec.Interfaces, 2))
		if i == s.Cursor {
			line = r.paint(r.styles.Title, line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Compare renders the comparison selection side by side.
func (r *Renderer) Compare(records []catalog.Record) string {
	if len(records) == 0 {
		return r.paint(r.styles.Muted, CompareEmptyMessage)
	}

	columns := make([]string, len(records))
	for i, rec := range records {
		lines := []string{
			fmt.Sprintf("[%d] %s", i+1, rec.Name),
			"Category: " + rec.Category,
			"Interfaces: " + catalog.JoinOr(rec.Interfaces, 0),
			"Capabilities: " + catalog.JoinOr(rec.Capabilities, 0),
			"Pricing: " + catalog.PricingLabelFor(rec.Pricing).String(),
			"Autonomy: " + catalog.Or(rec.AutonomyLevel),
			"Notes: " + catalog.Or(rec.Notes),
		}
		if r.opts.Plain {
			for j := 1; j < len(lines); j++ {
				lines[j] = "  " + lines[j]
			}
			columns[i] = strings.Join(lines, "\n")
			continue
		}
		lines[0] = r.paint(r.styles.Heading, lines[0])
		width := max(cardWidth, r.opts.Width/len(records)-4)
		columns[i] = r.styles.Card.Width(width).Render(strings.Join(lines, "\n"))
	}

	if r.opts.Plain {
		return strings.Join(columns, "\n\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// Error renders a load failure. The state is persistent: nothing else is
// drawn while it is shown.
func (r *Renderer) Error(err error) string {
	return r.paint(r.styles.Error, "Failed to load agents.") + "\n" +
		r.paint(r.styles.Muted, err.Error())
}
