package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var errNoLoader = errors.New("no catalog loader configured")

// searchAppliedMsg carries search text after the quiet period. Only the
// message whose generation matches the latest keystroke is applied.
type searchAppliedMsg struct {
	gen  int
	text string
}

// debounceSearch schedules text to apply after d, tagged with gen.
func debounceSearch(d time.Duration, gen int, text string) tea.Cmd {
	msg := searchAppliedMsg{gen: gen, text: text}
	if d < 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
