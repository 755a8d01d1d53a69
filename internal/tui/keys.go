package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/render"
)

const helpLine = "/ search | g l c view | s sort | [ ] space pills | tab category | j k move | enter detail | a x compare | r reset | q quit"

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.state != stateReady {
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}
	if _, open := m.sess.Detail(); open {
		return m.handleDetailKey(msg)
	}

	m.status = ""
	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		cmd := m.search.Focus()
		return m, cmd
	case "g":
		_ = m.sess.SwitchMode(render.ModeGrid)
		m.clampCursor()
	case "l":
		_ = m.sess.SwitchMode(render.ModeList)
		m.clampCursor()
	case "c":
		_ = m.sess.SwitchMode(render.ModeCompare)
		m.clampCursor()
	case "s":
		_ = m.sess.SetSort(m.sess.Criteria().Sort.Next())
	case "[":
		m.pillCursor = max(0, m.pillCursor-1)
	case "]":
		m.pillCursor = min(len(m.sess.Facets())-1, m.pillCursor+1)
	case " ", "space":
		if facets := m.sess.Facets(); m.pillCursor >= 0 && m.pillCursor < len(facets) {
			m.sess.ToggleTag(facets[m.pillCursor].Key)
			m.clampCursor()
		}
	case "tab":
		m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
		m.sess.SetCategory(m.categories[m.categoryIndex])
		m.clampCursor()
	case "j", "down":
		m.cursor = min(len(m.cursorRecords())-1, m.cursor+1)
		m.cursor = max(0, m.cursor)
	case "k", "up":
		m.cursor = max(0, m.cursor-1)
	case "enter":
		if rec, ok := m.current(); ok && m.sess.OpenDetail(rec.Name) {
			m.detail.SetContent(m.detailContent(rec))
			m.detail.GotoTop()
		}
	case "a":
		if rec, ok := m.current(); ok {
			if err := m.sess.AddToComparison(rec.Name); err != nil {
				m.status = fmt.Sprintf("Cannot add %s: %v", rec.Name, err)
			} else {
				m.status = fmt.Sprintf("Added %s to comparison (%d/3)", rec.Name, len(m.sess.Compared()))
			}
		}
	case "x":
		if rec, ok := m.current(); ok && m.sess.RemoveFromComparison(rec.Name) {
			m.status = fmt.Sprintf("Removed %s from comparison", rec.Name)
			m.clampCursor()
		}
	case "r":
		m.sess.ResetFilters()
		m.search.SetValue("")
		m.searchGen++
		m.categoryIndex = 0
		m.clampCursor()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		return m, nil
	case "enter":
		// Apply at once; any pending tick is now stale.
		m.search.Blur()
		m.searchGen++
		m.sess.SetSearch(m.search.Value())
		m.clampCursor()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.searchGen++
	return m, tea.Batch(cmd, debounceSearch(m.opts.Debounce, m.searchGen, m.search.Value()))
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.sess.CloseDetail()
		return m, nil
	case "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// cursorRecords is what the card cursor moves over: the comparison in
// compare mode, otherwise the derived view.
func (m Model) cursorRecords() []catalog.Record {
	if m.sess.Mode() == render.ModeCompare {
		return m.sess.Compared()
	}
	return m.sess.View()
}

func (m Model) current() (catalog.Record, bool) {
	records := m.cursorRecords()
	if m.cursor < 0 || m.cursor >= len(records) {
		return catalog.Record{}, false
	}
	return records[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.cursorRecords())
	m.cursor = max(0, min(m.cursor, n-1))
}

func (m Model) detailContent(rec catalog.Record) string {
	if m.markdown != nil {
		if out, err := m.markdown.Render(render.DetailMarkdown(rec)); err == nil {
			return out
		}
	}
	return m.renderer.Detail(rec)
}
