// Package tui is the interactive catalog browser.
//
// The model has three states. While loading it shows a placeholder and the
// catalog arrives through a tea.Cmd. A load failure is final: the error
// stays on screen until the user quits. Once ready, every key maps to one
// session operation and the screen is re-rendered from a fresh snapshot.
package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
	"github.com/roach88/agentdeck/internal/session"
)

// DefaultDebounce is the quiet period before typed search text applies.
const DefaultDebounce = 300 * time.Millisecond

const (
	defaultWidth  = 100
	defaultHeight = 30
)

type state int

const (
	stateLoading state = iota
	stateError
	stateReady
)

// LoadFunc fetches the catalog. It runs once, off the update loop.
type LoadFunc func(ctx context.Context) (*catalog.Catalog, error)

// Options configure the browser.
type Options struct {
	Load  LoadFunc
	Theme render.Theme
	// Plain disables styling and markdown rendering.
	Plain bool
	// Debounce is the search quiet period. Zero means DefaultDebounce;
	// negative applies every keystroke immediately.
	Debounce time.Duration
	Logger   *slog.Logger
	// Session options applied when the catalog arrives.
	Session []session.Option
}

type catalogLoadedMsg struct{ catalog *catalog.Catalog }

type catalogFailedMsg struct{ err error }

// Model is the bubbletea model of the browser.
type Model struct {
	ctx    context.Context
	opts   Options
	logger *slog.Logger

	state state
	err   error
	sess  *session.Session

	renderer *render.Renderer
	markdown *glamour.TermRenderer
	search   textinput.Model
	detail   viewport.Model

	categories    []string
	categoryIndex int
	cursor        int
	pillCursor    int
	searchGen     int
	status        string

	width, height int
}

// New creates a browser model. The catalog is loaded by Init.
func New(ctx context.Context, opts Options) Model {
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name, category, capability, tag..."
	search.CharLimit = 200

	m := Model{
		ctx:      ctx,
		opts:     opts,
		logger:   logger,
		renderer: render.New(render.Options{Width: defaultWidth, Plain: opts.Plain, Theme: opts.Theme}),
		search:   search,
		detail:   viewport.New(defaultWidth, defaultHeight-2),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if !opts.Plain {
		m.markdown = newMarkdownRenderer(opts.Theme, defaultWidth)
	}
	return m
}

func newMarkdownRenderer(theme render.Theme, width int) *glamour.TermRenderer {
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return nil
	}
	return r
}

// Init starts loading the catalog.
func (m Model) Init() tea.Cmd {
	return m.loadCatalog()
}

func (m Model) loadCatalog() tea.Cmd {
	load, ctx := m.opts.Load, m.ctx
	return func() tea.Msg {
		if load == nil {
			return catalogFailedMsg{err: errNoLoader}
		}
		cat, err := load(ctx)
		if err != nil {
			return catalogFailedMsg{err: err}
		}
		return catalogLoadedMsg{catalog: cat}
	}
}

// Session returns the browsing session, or nil before the catalog loads.
func (m Model) Session() *session.Session { return m.sess }

// Err returns the load failure, if any.
func (m Model) Err() error { return m.err }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.renderer.SetWidth(msg.Width)
		m.search.Width = max(10, msg.Width-len(m.search.Prompt)-2)
		m.detail.Width = msg.Width
		m.detail.Height = max(3, msg.Height-2)
		if !m.opts.Plain {
			m.markdown = newMarkdownRenderer(m.opts.Theme, msg.Width)
		}
		return m, nil

	case catalogLoadedMsg:
		opts := append([]session.Option{session.WithLogger(m.logger)}, m.opts.Session...)
		m.sess = session.New(msg.catalog, opts...)
		m.categories = append([]string{query.CategoryAll}, catalog.Categories(msg.catalog.Records)...)
		m.categoryIndex = indexOf(m.categories, m.sess.Criteria().Category)
		m.state = stateReady
		return m, nil

	case catalogFailedMsg:
		m.err = msg.err
		m.state = stateError
		m.logger.Error("catalog load failed", "error", msg.err)
		return m, nil

	case searchAppliedMsg:
		if m.state != stateReady || msg.gen != m.searchGen {
			return m, nil
		}
		m.sess.SetSearch(msg.text)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return 0
}
