package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
	"github.com/roach88/agentdeck/internal/session"
	"github.com/roach88/agentdeck/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixtureLoader(context.Context) (*catalog.Catalog, error) {
	return testutil.Catalog(), nil
}

func newModel(load LoadFunc) Model {
	return New(context.Background(), Options{
		Load:     load,
		Plain:    true,
		Debounce: -1,
		Session:  []session.Option{session.WithIDGenerator(testutil.FixedID(""))},
	})
}

func ready(t *testing.T) Model {
	t.Helper()
	m := newModel(fixtureLoader)
	next, _ := m.Update(m.Init()())
	m = next.(Model)
	require.NotNil(t, m.Session())
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_LoadingThenReady(t *testing.T) {
	m := newModel(fixtureLoader)
	assert.Equal(t, LoadingMessage, m.View())
	assert.Nil(t, m.Session())

	next, _ := m.Update(m.Init()())
	m = next.(Model)
	assert.Contains(t, m.View(), "Showing 5 of 5 agents")
	assert.Contains(t, m.View(), "> Aider [cli]")
}

func TestModel_LoadFailureIsPersistent(t *testing.T) {
	m := newModel(func(context.Context) (*catalog.Catalog, error) {
		return nil, errors.New("E004: fetch returned HTTP 500")
	})
	next, _ := m.Update(m.Init()())
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Failed to load agents.")
	assert.Contains(t, view, "HTTP 500")
	require.Error(t, m.Err())

	// Nothing but quitting does anything.
	m = press(m, "r", "g", "/", "enter")
	assert.Equal(t, view, m.View())

	_, cmd := m.Update(keyMsg("q"))
	assert.True(t, isQuit(cmd))
}

func TestModel_NoLoader(t *testing.T) {
	m := newModel(nil)
	next, _ := m.Update(m.Init()())
	assert.ErrorIs(t, next.(Model).Err(), errNoLoader)
}

func TestModel_SwitchModes(t *testing.T) {
	m := ready(t)

	m = press(m, "l")
	assert.Equal(t, render.ModeList, m.Session().Mode())
	assert.Contains(t, m.View(), ">  Aider | CLI / Terminal | Free & Open Source | terminal")

	m = press(m, "c")
	assert.Equal(t, render.ModeCompare, m.Session().Mode())
	assert.Contains(t, m.View(), render.CompareEmptyMessage)

	m = press(m, "g")
	assert.Equal(t, render.ModeGrid, m.Session().Mode())
	assert.Equal(t, query.DefaultCriteria(), m.Session().Criteria())
}

func TestModel_CycleSort(t *testing.T) {
	m := ready(t)
	m = press(m, "s")
	assert.Equal(t, query.SortNameDesc, m.Session().Criteria().Sort)
	assert.Equal(t, "LangGraph", m.Session().View()[0].Name)

	m = press(m, "s", "s", "s", "s")
	assert.Equal(t, query.SortNameAsc, m.Session().Criteria().Sort)
}

func TestModel_Pills(t *testing.T) {
	m := ready(t)
	facets := m.Session().Facets()
	require.Equal(t, "Hosted Autonomy", facets[1].Key)

	m = press(m, "]", "space")
	assert.Equal(t, []string{"Hosted Autonomy"}, m.Session().SelectedTags())
	assert.Equal(t, []string{"Devin"}, testutil.Names(m.Session().View()))
	assert.Contains(t, m.View(), "*Hosted Autonomy")

	m = press(m, " ")
	assert.Empty(t, m.Session().SelectedTags())

	m = press(m, "[", "[", "[")
	assert.Equal(t, 0, m.pillCursor)
	for range len(facets) + 3 {
		m = press(m, "]")
	}
	assert.Equal(t, len(facets)-1, m.pillCursor)
}

func TestModel_CycleCategory(t *testing.T) {
	m := ready(t)
	m = press(m, "tab")
	assert.Equal(t, "CLI / Terminal", m.Session().Criteria().Category)
	assert.Equal(t, []string{"Aider", "Claude CLI"}, testutil.Names(m.Session().View()))

	for range 4 {
		m = press(m, "tab")
	}
	assert.Equal(t, query.CategoryAll, m.Session().Criteria().Category)
}

func TestModel_CursorAndDetail(t *testing.T) {
	m := ready(t)
	m = press(m, "j", "down", "k")
	assert.Equal(t, 1, m.cursor)

	m = press(m, "enter")
	rec, open := m.Session().Detail()
	require.True(t, open)
	assert.Equal(t, "Claude CLI", rec.Name)
	assert.Contains(t, m.View(), "Category: CLI / Terminal [cli]")

	// Keys other than esc and q do not reach the browser while detail is open.
	m = press(m, "l")
	assert.Equal(t, render.ModeGrid, m.Session().Mode())

	m = press(m, "esc")
	_, open = m.Session().Detail()
	assert.False(t, open)

	m = press(m, "up", "up", "up")
	assert.Equal(t, 0, m.cursor)
	for range 10 {
		m = press(m, "j")
	}
	assert.Equal(t, 4, m.cursor)
}

func TestModel_Comparison(t *testing.T) {
	m := ready(t)

	m = press(m, "a")
	assert.Contains(t, m.View(), "Added Aider to comparison (1/3)")

	m = press(m, "a")
	assert.Contains(t, m.View(), "Cannot add Aider: agent is already in the comparison")

	m = press(m, "j", "a", "j", "a", "j", "a")
	assert.Equal(t, []string{"Aider", "Claude CLI", "Cursor"}, testutil.Names(m.Session().Compared()))
	assert.Contains(t, m.View(), "Cannot add Devin: you can compare up to 3 agents at a time")

	// The status clears on the next key.
	m = press(m, "k")
	assert.NotContains(t, m.View(), "Cannot add")

	// In compare mode the cursor walks the comparison.
	m = press(m, "c")
	assert.Equal(t, 2, m.cursor)
	m = press(m, "x")
	assert.Equal(t, []string{"Aider", "Claude CLI"}, testutil.Names(m.Session().Compared()))
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.View(), "[2] Claude CLI")
}

func TestModel_SearchDebounce(t *testing.T) {
	m := ready(t)
	m = press(m, "/")
	require.True(t, m.search.Focused())

	// Typing q goes to the input.
	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	assert.False(t, isQuit(cmd))
	assert.Equal(t, "q", m.search.Value())

	m = press(m, "backspace")
	m = press(m, "c", "u")
	assert.Equal(t, "cu", m.search.Value())

	// A stale tick is dropped.
	next, _ = m.Update(searchAppliedMsg{gen: m.searchGen - 1, text: "c"})
	m = next.(Model)
	assert.Equal(t, "", m.Session().Criteria().Search)
	assert.Len(t, m.Session().View(), 5)

	next, _ = m.Update(searchAppliedMsg{gen: m.searchGen, text: "cu"})
	m = next.(Model)
	assert.Equal(t, []string{"Cursor"}, testutil.Names(m.Session().View()))

	m = press(m, "esc")
	assert.False(t, m.search.Focused())
}

func TestModel_SearchEnterAppliesImmediately(t *testing.T) {
	m := ready(t)
	m = press(m, "/", "d", "e", "v")
	pending := m.searchGen

	m = press(m, "enter")
	assert.False(t, m.search.Focused())
	assert.Equal(t, []string{"Devin"}, testutil.Names(m.Session().View()))

	// The tick scheduled before enter is stale now.
	next, _ := m.Update(searchAppliedMsg{gen: pending, text: "de"})
	m = next.(Model)
	assert.Equal(t, "dev", m.Session().Criteria().Search)
}

func TestModel_Reset(t *testing.T) {
	m := ready(t)
	m = press(m, "a", "tab", "]", "space", "/", "x", "enter", "s")
	require.False(t, m.Session().Criteria().IsDefault())

	m = press(m, "r")
	assert.True(t, m.Session().Criteria().IsDefault())
	assert.Empty(t, m.Session().SelectedTags())
	assert.Equal(t, "", m.search.Value())
	assert.Equal(t, 0, m.categoryIndex)
	assert.Equal(t, []string{"Aider"}, testutil.Names(m.Session().Compared()))
}

func TestModel_QuitKeys(t *testing.T) {
	m := ready(t)
	_, cmd := m.Update(keyMsg("q"))
	assert.True(t, isQuit(cmd))

	m = press(m, "/")
	_, cmd = m.Update(keyMsg("ctrl+c"))
	assert.True(t, isQuit(cmd))
}

func TestModel_WindowSize(t *testing.T) {
	m := ready(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)
	assert.Equal(t, 60, m.width)
	assert.Equal(t, 18, m.detail.Height)
}

func TestModel_MarkdownDetail(t *testing.T) {
	m := New(context.Background(), Options{Load: fixtureLoader, Theme: render.DarkTheme()})
	next, _ := m.Update(m.Init()())
	m = press(next.(Model), "enter")
	assert.Contains(t, m.View(), "Aider")
	assert.Contains(t, m.View(), "commits")
}

func TestDebounceSearch(t *testing.T) {
	assert.Equal(t, searchAppliedMsg{gen: 3, text: "x"}, debounceSearch(-1, 3, "x")())

	start := time.Now()
	msg := debounceSearch(20*time.Millisecond, 4, "y")()
	assert.Equal(t, searchAppliedMsg{gen: 4, text: "y"}, msg)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
