package components

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/state"
	tuitest "github.com/Veraticus/fxdash/internal/tui/testing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func testCatalog() model.Catalog {
	return model.NewCatalog(
		model.CatalogEntry{Code: "EUR", Name: "Euro"},
		model.CatalogEntry{Code: "USD", Name: "United States Dollar"},
		model.CatalogEntry{Code: "GBP", Name: "British Pound"},
		model.CatalogEntry{Code: "JPY", Name: "Japanese Yen"},
	)
}

// recorder collects store events so tests can forward them the way the root model does.
type recorder struct {
	events []state.Event
}

func (r *recorder) drain() []tea.Msg {
	msgs := make([]tea.Msg, len(r.events))
	for i, ev := range r.events {
		msgs[i] = StoreChangedMsg{Event: ev}
	}
	r.events = nil
	return msgs
}

func newDeps(t *testing.T, svc rates.Service) (Deps, *recorder) {
	t.Helper()
	store := state.NewStore()
	rec := &recorder{}
	unsubscribe := store.Subscribe(func(ev state.Event) {
		rec.events = append(rec.events, ev)
	})
	t.Cleanup(unsubscribe)

	return Deps{
		Ctx:     context.Background(),
		Store:   store,
		Service: svc,
		Timeout: time.Second,
	}, rec
}

func loadCatalog(deps Deps) {
	deps.Store.SetCatalog(testCatalog())
	deps.Store.SetCatalogLoadingDone()
}

// run executes cmd and returns the single message of type T it produced.
func run[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd)
	msgs := tuitest.MessagesOf[T](tuitest.Exec(cmd, tuitest.DefaultWait))
	require.Len(t, msgs, 1)
	return msgs[0]
}

func sampleSeries(pair model.Pair, base float64) model.Series {
	dates := []string{"2024-02-25", "2024-02-26", "2024-02-27"}
	byDate := make(map[string]float64, len(dates))
	for i, d := range dates {
		byDate[d] = base + float64(i)*0.001
	}
	return model.Series{Pair: pair, DatesAscending: dates, RatesByDate: byDate}
}
