package components

import (
	"github.com/Veraticus/fxdash/internal/conversion"
	"github.com/Veraticus/fxdash/internal/state"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReverseModel answers "how much do I need to receive X". It is derived
// entirely from the stored rate and makes no requests.
type ReverseModel struct {
	theme   themes.Theme
	target  textinput.Model
	snap    state.Snapshot
	width   int
	focused bool
}

// NewReverseModel creates the reverse converter.
func NewReverseModel(store *state.Store, theme themes.Theme) ReverseModel {
	input := textinput.New()
	input.CharLimit = 24
	input.Prompt = ""

	m := ReverseModel{
		theme:  theme,
		target: input,
		snap:   store.Snapshot(),
	}
	m.sync()
	return m
}

// Enabled reports whether a rate is available to compute against.
func (m ReverseModel) Enabled() bool {
	return m.snap.Conversion.HasRate
}

// Target returns the typed target amount.
func (m ReverseModel) Target() string {
	return m.target.Value()
}

// Focus gives the panel keyboard focus.
func (m ReverseModel) Focus() ReverseModel {
	m.focused = true
	m.sync()
	return m
}

// Blur removes keyboard focus.
func (m ReverseModel) Blur() ReverseModel {
	m.focused = false
	m.sync()
	return m
}

// SetWidth sets the rendered width.
func (m ReverseModel) SetWidth(width int) ReverseModel {
	m.width = width
	m.target.Width = max(width-6, 8)
	return m
}

// Update handles messages.
func (m ReverseModel) Update(msg tea.Msg) (ReverseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case StoreChangedMsg:
		m.snap = msg.Event.Snapshot
		m.sync()
		return m, nil

	case ThemeChangedMsg:
		m.theme = themes.For(msg.Theme)
		return m, nil

	case tea.KeyMsg:
		if !m.focused || !m.Enabled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.target, cmd = m.target.Update(msg)
		return m, cmd
	}

	return m, nil
}

// sync reverts to the disabled placeholder whenever the rate is gone.
func (m *ReverseModel) sync() {
	if !m.Enabled() {
		m.target.SetValue("")
		m.target.Placeholder = conversion.RateUnavailable
		m.target.Blur()
		return
	}

	m.target.Placeholder = "I want to receive... " + m.snap.Selection.To
	if m.focused {
		m.target.Focus()
	} else {
		m.target.Blur()
	}
}

// Result returns the computed line shown under the input.
func (m ReverseModel) Result() string {
	return conversion.ReverseText(m.target.Value(), m.snap.Conversion, m.snap.Selection.From)
}

// View renders the reverse converter panel.
func (m ReverseModel) View() string {
	input := m.target.View()
	if !m.Enabled() {
		input = m.theme.StatusPending.Render(conversion.RateUnavailable)
	}

	result := m.theme.Normal.Render(m.Result())
	if !m.Enabled() {
		result = m.theme.Subtitle.Render(m.Result())
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Reverse Converter"),
		input,
		"",
		result,
	)

	return panelStyle(m.theme, m.focused, m.width).Render(body)
}
