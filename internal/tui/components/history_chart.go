package components

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/fxdash/internal/chart"
	"github.com/Veraticus/fxdash/internal/fetch"
	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/state"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Chart panel status lines.
const (
	chartWaitingCatalog   = "Waiting for initial currency data to load..."
	chartSelectPrompt     = "Select currencies to view the trend."
	chartLoading          = "Loading chart data..."
	chartWaitingSelection = "Waiting for currency selection or initial data..."
	chartDefaultTitle     = "7 Day Trend"
	chartDefaultWidth     = 40
	chartHeight           = 8
)

// HistoryChartModel plots the trailing week for the selected pair. Every
// selection change starts a new request; results for any other pair or
// superseded token are dropped.
type HistoryChartModel struct {
	deps    Deps
	site    *rates.CallSite
	theme   themes.Theme
	spinner spinner.Model
	snap    state.Snapshot
	pair    model.Pair
	data    chart.Data
	status  string
	width   int
	plain   bool
}

// NewHistoryChartModel creates the chart panel. plain disables chart colors.
func NewHistoryChartModel(deps Deps, theme themes.Theme, plain bool) HistoryChartModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return HistoryChartModel{
		deps:    deps,
		site:    rates.NewCallSite(deps.Service),
		theme:   theme,
		spinner: sp,
		snap:    deps.Store.Snapshot(),
		plain:   plain,
	}
}

// Pair returns the pair the chart currently belongs to.
func (m HistoryChartModel) Pair() model.Pair {
	return m.pair
}

// Data returns the plotted data, empty until a series arrives.
func (m HistoryChartModel) Data() chart.Data {
	return m.data
}

// Status returns the panel's request flags.
func (m HistoryChartModel) Status() fetch.Status {
	return m.site.Status()
}

// SetWidth sets the rendered width.
func (m HistoryChartModel) SetWidth(width int) HistoryChartModel {
	m.width = width
	return m
}

// Update handles messages.
func (m HistoryChartModel) Update(msg tea.Msg) (HistoryChartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case StoreChangedMsg:
		m.snap = msg.Event.Snapshot
		return m.reconcile()

	case ThemeChangedMsg:
		m.theme = themes.For(msg.Theme)
		return m, nil

	case HistoryLoadedMsg:
		if msg.Pair != m.pair || !m.site.Tracker().Settle(msg.Token, msg.Err) {
			slog.Debug("Discarding stale history", "pair", msg.Pair.String())
			return m, nil
		}
		m.status = ""
		if msg.Err == nil {
			m.data = chart.FromSeries(msg.Series)
		}
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

// reconcile moves the panel to the current selection.
func (m HistoryChartModel) reconcile() (HistoryChartModel, tea.Cmd) {
	sel := m.snap.Selection

	switch {
	case m.snap.Loading():
		m.reset(chartWaitingCatalog)
		return m, nil
	case !sel.Complete():
		m.reset(chartSelectPrompt)
		return m, nil
	case sel == m.pair:
		return m, nil
	}

	m.reset(chartLoading)
	m.pair = sel
	tok := m.site.Tracker().Begin()
	return m, tea.Batch(historyCmd(m.deps, m.site.Service(), tok, sel), m.spinner.Tick)
}

func (m *HistoryChartModel) reset(status string) {
	m.site.Tracker().Invalidate()
	m.pair = model.Pair{}
	m.data = chart.Data{}
	m.status = status
}

// Title returns the panel heading.
func (m HistoryChartModel) Title() string {
	sel := m.snap.Selection
	if sel.Complete() && !m.snap.Loading() {
		return fmt.Sprintf("%s to %s - %s", sel.From, sel.To, chartDefaultTitle)
	}
	return chartDefaultTitle
}

func (m HistoryChartModel) body() string {
	status := m.site.Status()
	switch {
	case status.Pending:
		return m.spinner.View() + " " + m.theme.StatusPending.Render(chartLoading)
	case status.Err != "":
		return m.theme.StatusError.Render("Chart API Error: " + status.Err)
	case m.status != "":
		return m.theme.Subtitle.Render(m.status)
	case m.data.Empty():
		return m.theme.Subtitle.Render(chartWaitingSelection)
	}

	plotWidth := chartDefaultWidth
	if m.width > 0 {
		// Leave room for the y-axis labels and panel border.
		plotWidth = max(m.width-16, 10)
	}

	out, err := chart.Render(m.data, chart.Options{
		Colors: chart.ColorsFor(m.theme.Name.Dark()),
		Width:  plotWidth,
		Height: chartHeight,
		Plain:  m.plain,
	})
	if err != nil {
		return m.theme.StatusError.Render(err.Error())
	}
	return out
}

// View renders the chart panel.
func (m HistoryChartModel) View() string {
	return panelStyle(m.theme, false, m.width).Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(m.Title()),
		m.body(),
	))
}

func historyCmd(deps Deps, svc rates.Service, tok fetch.Token, pair model.Pair) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.requestContext()
		defer cancel()

		series, err := fetch.Capture(func() (model.Series, error) {
			return svc.History(ctx, pair)
		})
		return HistoryLoadedMsg{Token: tok, Pair: pair, Series: series, Err: err}
	}
}
