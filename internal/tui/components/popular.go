package components

import (
	"github.com/Veraticus/fxdash/internal/fetch"
	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/state"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultPopularPairs are the pairs shown by the popular rates panel.
var DefaultPopularPairs = []model.Pair{
	{From: "EUR", To: "USD"},
	{From: "USD", To: "JPY"},
	{From: "GBP", To: "EUR"},
	{From: "USD", To: "CAD"},
}

// PopularModel shows a fixed table of pairs once the catalog is loaded.
type PopularModel struct {
	deps      Deps
	site      *rates.CallSite
	theme     themes.Theme
	pairs     []model.Pair
	rates     []model.PairRate
	table     table.Model
	spinner   spinner.Model
	snap      state.Snapshot
	width     int
	requested bool
}

// NewPopularModel creates the panel for pairs; nil pairs uses the defaults.
func NewPopularModel(deps Deps, theme themes.Theme, pairs []model.Pair) PopularModel {
	if pairs == nil {
		pairs = DefaultPopularPairs
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Pair", Width: 9},
			{Title: "Rate", Width: 12},
		}),
		table.WithHeight(len(pairs)+3),
		table.WithFocused(false),
	)

	m := PopularModel{
		deps:    deps,
		site:    rates.NewCallSite(deps.Service),
		theme:   theme,
		pairs:   pairs,
		table:   t,
		spinner: sp,
		snap:    deps.Store.Snapshot(),
	}
	m.applyTableStyles()
	return m
}

// Rates returns the last settled batch.
func (m PopularModel) Rates() []model.PairRate {
	return m.rates
}

// SetWidth sets the rendered width.
func (m PopularModel) SetWidth(width int) PopularModel {
	m.width = width
	return m
}

// Update handles messages.
func (m PopularModel) Update(msg tea.Msg) (PopularModel, tea.Cmd) {
	switch msg := msg.(type) {
	case StoreChangedMsg:
		m.snap = msg.Event.Snapshot
		return m.maybeFetch()

	case ThemeChangedMsg:
		m.theme = themes.For(msg.Theme)
		m.applyTableStyles()
		return m, nil

	case PopularRatesMsg:
		if !m.site.Tracker().Settle(msg.Token, nil) {
			return m, nil
		}
		m.rates = msg.Rates
		m.table.SetRows(rowsFor(msg.Rates))
		return m, nil

	case spinner.TickMsg:
		if !m.site.Status().Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// maybeFetch issues the one batch request once the catalog is usable. A
// loading or failed catalog never triggers a fetch.
func (m PopularModel) maybeFetch() (PopularModel, tea.Cmd) {
	if m.requested || !m.snap.Ready() {
		return m, nil
	}

	m.requested = true
	tok := m.site.Tracker().Begin()
	return m, tea.Batch(popularCmd(m.deps, m.site.Service(), tok, m.pairs), m.spinner.Tick)
}

func (m *PopularModel) applyTableStyles() {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(m.theme.Foreground)
	styles.Cell = styles.Cell.Foreground(m.theme.Foreground)
	// Nothing is selectable.
	styles.Selected = styles.Cell
	m.table.SetStyles(styles)
}

func (m PopularModel) body() string {
	status := m.site.Status()
	switch {
	case m.snap.Loading():
		return m.theme.StatusPending.Render("Waiting for main currency data...")
	case m.snap.Failed():
		return m.theme.StatusError.Render("Cannot load popular rates due to: " + m.snap.CatalogErr)
	case status.Pending:
		return m.spinner.View() + " " + m.theme.StatusPending.Render("Loading popular rates...")
	case status.Err != "":
		return m.theme.StatusError.Render("Error loading popular rates: " + status.Err)
	case len(m.rates) > 0:
		return m.table.View()
	default:
		return m.theme.Subtitle.Render("No popular rates to display.")
	}
}

// View renders the popular rates panel.
func (m PopularModel) View() string {
	return panelStyle(m.theme, false, m.width).Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Popular Rates"),
		m.body(),
	))
}

func rowsFor(batch []model.PairRate) []table.Row {
	rows := make([]table.Row, len(batch))
	for i, r := range batch {
		rows[i] = table.Row{r.Pair.String(), r.Display()}
	}
	return rows
}

func popularCmd(deps Deps, svc rates.Service, tok fetch.Token, pairs []model.Pair) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()

		out, err := fetch.Capture(func() ([]model.PairRate, error) {
			return svc.PopularRates(ctx, pairs), nil
		})
		if err != nil {
			// A crashed batch still answers every pair.
			out = make([]model.PairRate, len(pairs))
			for i, p := range pairs {
				out[i] = model.PairRate{Pair: p, Err: err}
			}
		}
		return PopularRatesMsg{Token: tok, Rates: out}
	}
}
