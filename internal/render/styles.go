package render

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/agentdeck/internal/catalog"
)

// Theme holds the color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Danger     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Primary:    lipgloss.Color("#1D4ED8"),
		Accent:     lipgloss.Color("#15803D"),
		Muted:      lipgloss.Color("#6B7280"),
		Border:     lipgloss.Color("#CBD5E1"),
		Danger:     lipgloss.Color("#DC2626"),
	}
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#F2F2F2"),
		Primary:    lipgloss.Color("#60A5FA"),
		Accent:     lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#94A3B8"),
		Border:     lipgloss.Color("#2A3850"),
		Danger:     lipgloss.Color("#F87171"),
		IsDark:     true,
	}
}

// ThemeFor resolves a theme name: "light", "dark", or "auto".
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG
// ("foreground;background"). Backgrounds 0-6 and 8 are dark.
func DetectTheme() Theme {
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	return LightTheme()
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title        lipgloss.Style
	Heading      lipgloss.Style
	Muted        lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Pill         lipgloss.Style
	PillActive   lipgloss.Style
	PillCursor   lipgloss.Style
	Compared     lipgloss.Style
	Error        lipgloss.Style
	Badges       map[catalog.Badge]lipgloss.Style
}

// NewStyles builds styles for a theme.
func NewStyles(t Theme) Styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),
		Pill:       lipgloss.NewStyle().Foreground(t.Muted),
		PillActive: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		PillCursor: lipgloss.NewStyle().Underline(true),
		Compared:   lipgloss.NewStyle().Foreground(t.Accent),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(t.Danger),
		Badges: map[catalog.Badge]lipgloss.Style{
			catalog.BadgeIDE:        badge.Foreground(lipgloss.Color("#2563EB")),
			catalog.BadgeCLI:        badge.Foreground(lipgloss.Color("#059669")),
			catalog.BadgeAutonomous: badge.Foreground(lipgloss.Color("#DB2777")),
			catalog.BadgeFramework:  badge.Foreground(lipgloss.Color("#D97706")),
			catalog.BadgeOther:      badge.Foreground(t.Muted),
		},
	}
}
