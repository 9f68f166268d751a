package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Root screen texts.
const (
	loadingText     = "Loading essential currency data..."
	errorPrefix     = "Error loading application: "
	errorHint       = "Please restart the application."
	emptyText       = "No currencies loaded. The API might have returned an empty list."
	footerText      = "Currency Converter - Terminal Version"
	wideLayoutWidth = 100
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.store.Snapshot()
	switch {
	case snap.Loading():
		return m.renderGate(m.spinner.View() + " " + m.theme.StatusPending.Render(loadingText))
	case snap.Failed():
		return m.renderGate(lipgloss.JoinVertical(lipgloss.Center,
			m.theme.StatusError.Render(errorPrefix+snap.CatalogErr),
			m.theme.Subtitle.Render(errorHint),
		))
	case snap.Catalog.IsEmpty():
		return m.renderGate(m.theme.StatusWarning.Render(emptyText))
	}

	return m.renderDashboard()
}

// renderGate renders a full-screen status under the header.
func (m Model) renderGate(content string) string {
	header := m.header.View()
	height := m.height - lipgloss.Height(header)
	if height < 1 {
		height = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, content),
	)
}

// renderDashboard lays the panels out in two columns on wide terminals and
// stacks them otherwise.
func (m Model) renderDashboard() string {
	left := lipgloss.JoinVertical(lipgloss.Left, m.converter.View(), m.reverse.View())
	right := lipgloss.JoinVertical(lipgloss.Left, m.popular.View(), m.chart.View())

	var body string
	if m.width >= wideLayoutWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.quote.View(),
		"",
		body,
		m.help.View(m.keymap),
		m.theme.Subtitle.Render(footerText),
	)
}
