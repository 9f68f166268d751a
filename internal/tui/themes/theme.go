package themes

import (
	"github.com/Veraticus/fxdash/internal/preferences"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	StatusPending lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Italic        lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Quote         lipgloss.Style
	Panel         lipgloss.Style
	FocusedPanel  lipgloss.Style
	Header        lipgloss.Style
	Name          preferences.Theme
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// Light is the default palette.
var Light = build(preferences.ThemeLight, palette{
	primary:    "#4f46e5",
	success:    "#059669",
	warning:    "#d97706",
	errColor:   "#dc2626",
	info:       "#2563eb",
	background: "#ffffff",
	foreground: "#1a1a1a",
	subtle:     "#525252",
	border:     "#d4d4d4",
	muted:      "#737373",
})

// Dark is the dark palette.
var Dark = build(preferences.ThemeDark, palette{
	primary:    "#818cf8",
	success:    "#10b981",
	warning:    "#f59e0b",
	errColor:   "#ef4444",
	info:       "#3b82f6",
	background: "#1a1a1a",
	foreground: "#f0f0f0",
	subtle:     "#a3a3a3",
	border:     "#404040",
	muted:      "#737373",
})

type palette struct {
	primary, success, warning, errColor, info string
	background, foreground, subtle            string
	border, muted                             string
}

func build(name preferences.Theme, p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	border := lipgloss.Color(p.border)

	return Theme{
		Name:       name,
		Primary:    lipgloss.Color(p.primary),
		Success:    lipgloss.Color(p.success),
		Warning:    lipgloss.Color(p.warning),
		Error:      lipgloss.Color(p.errColor),
		Background: lipgloss.Color(p.background),
		Foreground: fg,
		Border:     border,
		Muted:      lipgloss.Color(p.muted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Italic: lipgloss.NewStyle().
			Italic(true).
			Foreground(fg),
		Quote: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(p.subtle)).
			Align(lipgloss.Center),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.background)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.primary)).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// For returns the palette matching a theme preference.
func For(t preferences.Theme) Theme {
	if t.Dark() {
		return Dark
	}
	return Light
}
