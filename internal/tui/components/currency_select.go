package components

import (
	"fmt"
	"slices"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// CurrencySelect renders one labelled currency picker. The selected value
// always comes from the store; the picker only proposes the next code.
type CurrencySelect struct {
	Label string
}

// Cycle returns the code delta steps away from current in catalog order,
// wrapping at both ends. An unknown or empty current starts at the first code.
func (s CurrencySelect) Cycle(catalog model.Catalog, current string, delta int) string {
	codes := catalog.Codes()
	if len(codes) == 0 {
		return ""
	}

	i := slices.Index(codes, current)
	if i < 0 {
		return codes[0]
	}

	n := len(codes)
	return codes[((i+delta)%n+n)%n]
}

// View renders the picker.
func (s CurrencySelect) View(theme themes.Theme, catalog model.Catalog, value string, focused bool) string {
	label := theme.Subtitle.Render(s.Label + ":")

	var body string
	switch {
	case catalog.IsEmpty():
		body = "Loading..."
	case value == "":
		body = "—"
	default:
		body = fmt.Sprintf("%s — %s", value, catalog.Name(value))
	}

	if focused {
		body = theme.Selected.Render("‹ " + body + " ›")
	} else {
		body = theme.Normal.Render("  " + body + "  ")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", body)
}
