package components

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/state"
	tuitest "github.com/Veraticus/fxdash/internal/tui/testing"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forwardPopular(m PopularModel, rec *recorder) (PopularModel, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range rec.drain() {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, cmds
}

func TestPopular_WaitsForCatalog(t *testing.T) {
	svc := rates.NewMockService()
	deps, _ := newDeps(t, svc)
	m := NewPopularModel(deps, themes.Light, nil)

	m, cmd := m.Update(StoreChangedMsg{Event: state.Event{Kind: state.EventStatus, Snapshot: deps.Store.Snapshot()}})

	assert.Nil(t, cmd)
	assert.Contains(t, tuitest.Plain(m.View()), "Waiting for main currency data...")
	assert.Equal(t, 0, svc.PopularCalls)
}

func TestPopular_FailedCatalogIssuesNoFetch(t *testing.T) {
	svc := rates.NewMockService()
	deps, rec := newDeps(t, svc)
	m := NewPopularModel(deps, themes.Light, nil)

	deps.Store.SetCatalogError("HTTP error! status: 500")
	deps.Store.SetCatalogLoadingDone()
	m, cmds := forwardPopular(m, rec)

	assert.Empty(t, cmds)
	assert.Contains(t, tuitest.Plain(m.View()), "Cannot load popular rates due to: HTTP error! status: 500")
	assert.Equal(t, 0, svc.PopularCalls)
}

func TestPopular_IsolatedFailure(t *testing.T) {
	svc := rates.NewMockService()
	svc.PopularRatesFn = func(_ context.Context, pairs []model.Pair) []model.PairRate {
		out := make([]model.PairRate, len(pairs))
		for i, p := range pairs {
			out[i] = model.PairRate{Pair: p, Rate: 1.085}
		}
		out[1].Err = errors.New("HTTP error! status: 500")
		return out
	}
	deps, rec := newDeps(t, svc)
	m := NewPopularModel(deps, themes.Light, nil)

	loadCatalog(deps)
	m, cmds := forwardPopular(m, rec)
	require.Len(t, cmds, 1, "exactly one fetch once the catalog is ready")
	assert.Contains(t, tuitest.Plain(m.View()), "Loading popular rates...")

	m, _ = m.Update(run[PopularRatesMsg](t, cmds[0]))

	require.Len(t, m.Rates(), 4)
	view := tuitest.Plain(m.View())
	assert.True(t, tuitest.ContainsInOrder(view,
		"EUR/USD", "1.0850",
		"USD/JPY", "Error",
		"GBP/EUR", "1.0850",
		"USD/CAD", "1.0850",
	), view)
	assert.Equal(t, 1, svc.PopularCalls)

	// Later store changes never refetch.
	require.True(t, deps.Store.SetToCurrency("GBP"))
	_, cmds = forwardPopular(m, rec)
	assert.Empty(t, cmds)
}

func TestPopular_NothingToShow(t *testing.T) {
	deps, rec := newDeps(t, rates.NewMockService())
	m := NewPopularModel(deps, themes.Dark, []model.Pair{})

	loadCatalog(deps)
	m, cmds := forwardPopular(m, rec)
	require.Len(t, cmds, 1)
	m, _ = m.Update(run[PopularRatesMsg](t, cmds[0]))

	assert.Contains(t, tuitest.Plain(m.View()), "No popular rates to display.")
}

func TestPopularCmd_RecoversFromPanic(t *testing.T) {
	svc := rates.NewMockService()
	svc.PopularRatesFn = func(context.Context, []model.Pair) []model.PairRate {
		panic("boom")
	}
	deps, _ := newDeps(t, svc)

	msg := run[PopularRatesMsg](t, popularCmd(deps, svc, 1, DefaultPopularPairs))

	require.Len(t, msg.Rates, len(DefaultPopularPairs))
	for _, r := range msg.Rates {
		assert.True(t, r.Failed())
	}
}
