package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/fxdash/internal/common"
	"github.com/Veraticus/fxdash/internal/preferences"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/state"
	"github.com/Veraticus/fxdash/internal/tui/components"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// focusArea is the panel receiving keyboard input.
type focusArea int

const (
	focusConverter focusArea = iota
	focusReverse
	focusCount
)

// eventQueue buffers store notifications raised during Update so they can be
// forwarded to the panels before Update returns.
type eventQueue struct {
	events []state.Event
	mu     sync.Mutex
}

func (q *eventQueue) push(ev state.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
}

func (q *eventQueue) drain() []state.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Model holds the main TUI state.
type Model struct {
	theme       themes.Theme
	config      Config
	store       *state.Store
	themeStore  *preferences.ThemeStore
	bootstrap   *rates.CallSite
	queue       *eventQueue
	unsubscribe func()
	keymap      KeyMap
	help        help.Model
	spinner     spinner.Model
	header      components.HeaderModel
	converter   components.ConverterModel
	reverse     components.ReverseModel
	popular     components.PopularModel
	chart       components.HistoryChartModel
	quote       components.QuoteModel
	width       int
	height      int
	focus       focusArea
	quitting    bool
}

// New creates the dashboard model.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Service == nil {
		return Model{}, fmt.Errorf("%w: rate service", common.ErrMissingConfig)
	}
	if cfg.Store == nil {
		cfg.Store = state.NewStore()
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	return newModel(cfg), nil
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	current := preferences.ThemeLight
	if cfg.Themes != nil {
		current = cfg.Themes.Get()
	}
	theme := themes.For(current)

	queue := &eventQueue{}
	unsubscribe := cfg.Store.Subscribe(queue.push)

	deps := components.Deps{
		Ctx:     cfg.Context,
		Store:   cfg.Store,
		Service: cfg.Service,
		Timeout: cfg.RequestTimeout,
	}
	keymap := DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		theme:       theme,
		config:      cfg,
		store:       cfg.Store,
		themeStore:  cfg.Themes,
		bootstrap:   rates.NewCallSite(cfg.Service),
		queue:       queue,
		unsubscribe: unsubscribe,
		keymap:      keymap,
		help:        help.New(),
		spinner:     sp,
		header:      components.NewHeaderModel(current, keymap.ToggleTheme.Help().Key),
		converter:   components.NewConverterModel(deps, theme, keymap.Converter).Focus(),
		reverse:     components.NewReverseModel(cfg.Store, theme),
		popular:     components.NewPopularModel(deps, theme, cfg.PopularPairs),
		chart:       components.NewHistoryChartModel(deps, theme, cfg.PlainChart),
		quote:       components.NewQuoteModel(theme, cfg.Rand, cfg.QuoteInterval),
		width:       cfg.Width,
		height:      cfg.Height,
	}
	m.handleResize()
	return m
}

// Close detaches the model from the store.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init starts the bootstrap fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog(), m.spinner.Tick, m.quote.Init())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			cmds = append(cmds, cmd)
			break
		}
		// Nothing behind a gate screen is interactive.
		if m.store.Snapshot().Ready() {
			cmds = append(cmds, m.updateFocused(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case catalogLoadedMsg:
		m.handleCatalog(msg)

	case spinner.TickMsg:
		if m.store.Snapshot().Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.broadcast(msg))

	case components.ConversionDoneMsg:
		var cmd tea.Cmd
		m.converter, cmd = m.converter.Update(msg)
		cmds = append(cmds, cmd)

	case components.PopularRatesMsg:
		var cmd tea.Cmd
		m.popular, cmd = m.popular.Update(msg)
		cmds = append(cmds, cmd)

	case components.HistoryLoadedMsg:
		var cmd tea.Cmd
		m.chart, cmd = m.chart.Update(msg)
		cmds = append(cmds, cmd)

	case components.QuoteTickMsg:
		var cmd tea.Cmd
		m.quote, cmd = m.quote.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.flushEvents())
	return m, tea.Batch(cmds...)
}

// handleGlobalKeys handles keys that work in any state.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.ToggleTheme):
		return m.toggleTheme(), true

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true

	case key.Matches(msg, m.keymap.NextPanel, m.keymap.PrevPanel):
		if !m.store.Snapshot().Ready() {
			return nil, true
		}
		step := focusArea(1)
		if key.Matches(msg, m.keymap.PrevPanel) {
			step = focusCount - 1
		}
		m.setFocus((m.focus + step) % focusCount)
		return nil, true
	}
	return nil, false
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.converter = m.converter.Blur()
	m.reverse = m.reverse.Blur()
	switch f {
	case focusConverter:
		m.converter = m.converter.Focus()
	case focusReverse:
		m.reverse = m.reverse.Focus()
	}
}

func (m *Model) updateFocused(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusConverter:
		m.converter, cmd = m.converter.Update(msg)
	case focusReverse:
		m.reverse, cmd = m.reverse.Update(msg)
	}
	return cmd
}

// handleCatalog promotes the bootstrap outcome into the store. Loading is
// marked done on both paths.
func (m *Model) handleCatalog(msg catalogLoadedMsg) {
	if !m.bootstrap.Tracker().Settle(msg.token, msg.err) {
		return
	}

	if msg.err != nil {
		common.LogError(msg.err, "Failed to load currency catalog", nil)
		m.store.SetCatalogError(msg.err.Error())
	} else {
		common.LogDebug("Bootstrap fetch settled", common.Fields{"currencies": msg.catalog.Len()})
		m.store.SetCatalog(msg.catalog)
	}
	m.store.SetCatalogLoadingDone()
}

func (m *Model) toggleTheme() tea.Cmd {
	var next preferences.Theme
	if m.themeStore != nil {
		next = m.themeStore.Toggle(m.config.Context)
	} else {
		next = m.theme.Name.Toggle()
	}
	m.theme = themes.For(next)
	return m.broadcast(components.ThemeChangedMsg{Theme: next})
}

// flushEvents forwards queued store notifications to every panel. Panels
// may mutate the store while handling one, so the queue is drained until
// it stays empty.
func (m *Model) flushEvents() tea.Cmd {
	var cmds []tea.Cmd
	for {
		events := m.queue.drain()
		if len(events) == 0 {
			break
		}
		for _, ev := range events {
			cmds = append(cmds, m.broadcast(components.StoreChangedMsg{Event: ev}))
		}
	}
	return tea.Batch(cmds...)
}

// broadcast delivers msg to every panel.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 6)
	m.header, cmds[0] = m.header.Update(msg)
	m.converter, cmds[1] = m.converter.Update(msg)
	m.reverse, cmds[2] = m.reverse.Update(msg)
	m.popular, cmds[3] = m.popular.Update(msg)
	m.chart, cmds[4] = m.chart.Update(msg)
	m.quote, cmds[5] = m.quote.Update(msg)
	return tea.Batch(cmds...)
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	column := m.width
	if m.width >= wideLayoutWidth {
		column = m.width / 2
	}

	m.header = m.header.SetWidth(m.width)
	m.quote = m.quote.SetWidth(m.width)
	m.converter = m.converter.SetWidth(column)
	m.reverse = m.reverse.SetWidth(column)
	m.popular = m.popular.SetWidth(column)
	m.chart = m.chart.SetWidth(column)
	m.help.Width = m.width
}
