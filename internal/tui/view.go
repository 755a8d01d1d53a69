package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingMessage is shown until the catalog arrives.
const LoadingMessage = "Loading agents..."

// View renders the whole screen from the current state.
func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return LoadingMessage
	case stateError:
		return m.renderer.Error(m.err) + "\n\nPress q to quit."
	}

	if rec, open := m.sess.Detail(); open {
		return m.detail.View() + "\n" + m.muted("esc back | up/down scroll | q quit | "+rec.Name)
	}

	snap := m.sess.Snapshot()
	snap.PillCursor = m.pillCursor
	snap.Cursor = m.cursor

	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderer.Render(snap))
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.muted(helpLine))
	return b.String()
}

func (m Model) muted(s string) string {
	if m.opts.Plain {
		return s
	}
	return lipgloss.NewStyle().Foreground(m.opts.Theme.Muted).Render(s)
}

// Run starts the browser on the terminal and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
