package components

import (
	"github.com/Veraticus/fxdash/internal/preferences"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HeaderModel shows the title and the theme toggle.
type HeaderModel struct {
	theme   themes.Theme
	current preferences.Theme
	hint    string
	width   int
}

// NewHeaderModel creates the header. hint names the toggle key.
func NewHeaderModel(current preferences.Theme, hint string) HeaderModel {
	return HeaderModel{theme: themes.For(current), current: current, hint: hint}
}

// Icon is the toggle glyph: a moon offers dark mode, a sun offers light mode.
func (m HeaderModel) Icon() string {
	if m.current.Dark() {
		return "☀️"
	}
	return "🌙"
}

// SetWidth sets the rendered width.
func (m HeaderModel) SetWidth(width int) HeaderModel {
	m.width = width
	return m
}

// Update handles messages.
func (m HeaderModel) Update(msg tea.Msg) (HeaderModel, tea.Cmd) {
	if msg, ok := msg.(ThemeChangedMsg); ok {
		m.current = msg.Theme
		m.theme = themes.For(msg.Theme)
	}
	return m, nil
}

// View renders the header line.
func (m HeaderModel) View() string {
	title := m.theme.Header.Render("Currency Converter")
	toggle := m.Icon()
	if m.hint != "" {
		toggle += " " + m.theme.Subtitle.Render(m.hint)
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), toggle)
}
