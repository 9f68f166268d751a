package tui

import (
	"context"

	"github.com/Veraticus/fxdash/internal/fetch"
	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// loadCatalog starts the one mandatory bootstrap fetch. The command always
// yields exactly one catalogLoadedMsg, even if the service panics.
func (m Model) loadCatalog() tea.Cmd {
	tok := m.bootstrap.Tracker().Begin()
	svc := m.bootstrap.Service()
	parent := m.config.Context
	timeout := m.config.RequestTimeout
	if timeout <= 0 {
		timeout = components.DefaultRequestTimeout
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		catalog, err := fetch.Capture(func() (model.Catalog, error) {
			return svc.Currencies(ctx)
		})
		return catalogLoadedMsg{token: tok, catalog: catalog, err: err}
	}
}
