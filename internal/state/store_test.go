package state

import (
	"math"
	"sync"
	"testing"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(codes ...string) model.Catalog {
	entries := make([]model.CatalogEntry, 0, len(codes))
	for _, c := range codes {
		entries = append(entries, model.CatalogEntry{Code: c, Name: c + " name"})
	}
	return model.NewCatalog(entries...)
}

func loadedStore(t *testing.T, codes ...string) *Store {
	t.Helper()
	s := NewStore()
	s.SetCatalog(catalogOf(codes...))
	s.SetCatalogLoadingDone()
	return s
}

type recorder struct {
	events []Event
	mu     sync.Mutex
}

func (r *recorder) listen(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestNewStore_StartsLoading(t *testing.T) {
	snap := NewStore().Snapshot()

	assert.Equal(t, CatalogLoading, snap.Status)
	assert.True(t, snap.BootstrapPending)
	assert.True(t, snap.Loading())
	assert.False(t, snap.Ready())
	assert.Equal(t, model.Pair{}, snap.Selection)
}

func TestDefaultSelection(t *testing.T) {
	tests := []struct {
		name    string
		codes   []string
		current model.Pair
		want    model.Pair
	}{
		{name: "EUR and USD present", codes: []string{"GBP", "USD", "EUR"}, want: model.Pair{From: "EUR", To: "USD"}},
		{name: "no EUR or USD", codes: []string{"GBP", "JPY"}, want: model.Pair{From: "GBP", To: "JPY"}},
		{name: "EUR only among the two", codes: []string{"JPY", "EUR"}, want: model.Pair{From: "EUR", To: "JPY"}},
		{name: "USD becomes from", codes: []string{"USD", "CHF"}, want: model.Pair{From: "USD", To: "CHF"}},
		{name: "single currency", codes: []string{"CHF"}, want: model.Pair{From: "CHF"}},
		{name: "keeps chosen from", codes: []string{"EUR", "USD", "GBP"}, current: model.Pair{From: "USD"}, want: model.Pair{From: "USD", To: "EUR"}},
		{name: "keeps full selection", codes: []string{"EUR", "USD", "GBP"}, current: model.Pair{From: "GBP", To: "EUR"}, want: model.Pair{From: "GBP", To: "EUR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultSelection(catalogOf(tt.codes...), tt.current)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_DerivesDefaultsOnceLoadSettles(t *testing.T) {
	s := NewStore()
	s.SetCatalog(catalogOf("EUR", "USD", "GBP"))

	assert.Equal(t, model.Pair{}, s.Snapshot().Selection, "defaults wait for the bootstrap to settle")

	s.SetCatalogLoadingDone()
	snap := s.Snapshot()
	assert.Equal(t, model.Pair{From: "EUR", To: "USD"}, snap.Selection)
	assert.True(t, snap.Ready())
}

func TestStore_SingleCurrencyHasNoDistinctPair(t *testing.T) {
	s := loadedStore(t, "CHF")

	snap := s.Snapshot()
	assert.Equal(t, "CHF", snap.Selection.From)
	assert.Empty(t, snap.Selection.To)
	assert.False(t, snap.Selection.Distinct())
	assert.True(t, snap.Ready())
}

func TestStore_SwapKeepsIncompletePair(t *testing.T) {
	s := loadedStore(t, "USD")
	rec := &recorder{}
	s.Subscribe(rec.listen)

	assert.False(t, s.SwapSelection())
	assert.Equal(t, model.Pair{From: "USD"}, s.Snapshot().Selection)
	assert.Empty(t, rec.kinds())
}

func TestStore_RejectsEmptySidesOnceDerived(t *testing.T) {
	s := loadedStore(t, "EUR", "USD")
	rec := &recorder{}
	s.Subscribe(rec.listen)

	assert.False(t, s.SetSelection(model.Pair{}))
	assert.False(t, s.SetSelection(model.Pair{From: "EUR"}))
	assert.False(t, s.SetSelection(model.Pair{To: "USD"}))
	assert.Equal(t, model.Pair{From: "EUR", To: "USD"}, s.Snapshot().Selection)
	assert.Empty(t, rec.kinds())

	single := loadedStore(t, "CHF")
	assert.False(t, single.SetSelection(model.Pair{}))
	assert.Equal(t, model.Pair{From: "CHF"}, single.Snapshot().Selection)
}

func TestStore_EmptyCatalogIsNotReady(t *testing.T) {
	s := loadedStore(t)

	snap := s.Snapshot()
	assert.Equal(t, CatalogLoaded, snap.Status)
	assert.False(t, snap.Ready())
	assert.Equal(t, model.Pair{}, snap.Selection)
}

func TestStore_SetCatalogIsIdempotent(t *testing.T) {
	s := loadedStore(t, "EUR", "USD")
	rec := &recorder{}
	s.Subscribe(rec.listen)

	require.True(t, s.SetToCurrency("EUR"))
	require.True(t, s.SetFromCurrency("USD"))
	s.SetConversionResult("1.00 USD = 0.92 EUR")
	before := len(rec.kinds())

	s.SetCatalog(catalogOf("EUR", "USD"))

	assert.Len(t, rec.kinds(), before, "equal catalog must not notify")
	assert.Equal(t, model.Pair{From: "USD", To: "EUR"}, s.Snapshot().Selection)
	assert.Equal(t, "1.00 USD = 0.92 EUR", s.Snapshot().Conversion.ResultText)
}

func TestStore_NewCatalogDropsUnknownSelections(t *testing.T) {
	s := loadedStore(t, "EUR", "USD", "GBP")
	require.True(t, s.SetToCurrency("GBP"))
	s.SetLastRate(0.85)

	s.SetCatalog(catalogOf("EUR", "JPY"))

	snap := s.Snapshot()
	assert.Equal(t, model.Pair{From: "EUR", To: "JPY"}, snap.Selection)
	assert.True(t, snap.Conversion.IsZero())
}

func TestStore_SelectionChangeClearsConversion(t *testing.T) {
	tests := []struct {
		change func(*Store) bool
		name   string
	}{
		{name: "from", change: func(s *Store) bool { return s.SetFromCurrency("GBP") }},
		{name: "to", change: func(s *Store) bool { return s.SetToCurrency("GBP") }},
		{name: "swap", change: func(s *Store) bool { return s.SwapSelection() }},
		{name: "both", change: func(s *Store) bool { return s.SetSelection(model.Pair{From: "USD", To: "GBP"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedStore(t, "EUR", "USD", "GBP")
			require.True(t, s.CommitConversion(model.Pair{From: "EUR", To: "USD"}, "10.00 EUR = 10.85 USD", 1.085))

			var seen []Snapshot
			s.Subscribe(func(ev Event) { seen = append(seen, ev.Snapshot) })

			require.True(t, tt.change(s))

			require.Len(t, seen, 1)
			assert.True(t, seen[0].Conversion.IsZero(), "new pair must never be observed next to the old result")
			assert.True(t, s.Snapshot().Conversion.IsZero())
		})
	}
}

func TestStore_RejectsCodesOutsideCatalog(t *testing.T) {
	s := loadedStore(t, "EUR", "USD")
	s.SetConversionResult("kept")
	rec := &recorder{}
	s.Subscribe(rec.listen)

	assert.False(t, s.SetFromCurrency("XXX"))
	assert.False(t, s.SetToCurrency(""))
	assert.False(t, s.SetSelection(model.Pair{From: "EUR", To: "ZZZ"}))

	snap := s.Snapshot()
	assert.Equal(t, model.Pair{From: "EUR", To: "USD"}, snap.Selection)
	assert.Equal(t, "kept", snap.Conversion.ResultText)
	assert.Empty(t, rec.kinds())
}

func TestStore_SameCodeIsNoOp(t *testing.T) {
	s := loadedStore(t, "EUR", "USD")
	s.SetLastRate(1.1)

	assert.False(t, s.SetFromCurrency("EUR"))
	assert.True(t, s.Snapshot().Conversion.HasRate)
}

func TestStore_SetLastRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		wantHas bool
	}{
		{name: "positive", rate: 1.25, wantHas: true},
		{name: "zero resets", rate: 0},
		{name: "negative resets", rate: -2},
		{name: "NaN resets", rate: math.NaN()},
		{name: "infinity resets", rate: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedStore(t, "EUR", "USD")
			s.SetLastRate(3)
			s.SetLastRate(tt.rate)

			rec := s.Snapshot().Conversion
			assert.Equal(t, tt.wantHas, rec.HasRate)
			if tt.wantHas {
				assert.InDelta(t, tt.rate, rec.LastRate, 1e-12)
			}
		})
	}
}

func TestStore_CommitConversionGuardsPair(t *testing.T) {
	s := loadedStore(t, "EUR", "USD", "GBP")
	old := s.Snapshot().Selection

	require.True(t, s.SetToCurrency("GBP"))
	assert.False(t, s.CommitConversion(old, "stale", 1.08))
	assert.True(t, s.Snapshot().Conversion.IsZero())

	current := s.Snapshot().Selection
	assert.True(t, s.CommitConversion(current, "1.00 EUR = 0.85 GBP", 0.85))
	rec := s.Snapshot().Conversion
	assert.Equal(t, "1.00 EUR = 0.85 GBP", rec.ResultText)
	assert.InDelta(t, 0.85, rec.LastRate, 1e-12)
}

func TestStore_CatalogFailure(t *testing.T) {
	s := NewStore()
	rec := &recorder{}
	s.Subscribe(rec.listen)

	s.SetCatalogError("HTTP error! status: 500")
	s.SetCatalogLoadingDone()
	s.SetCatalogLoadingDone()

	snap := s.Snapshot()
	assert.True(t, snap.Failed())
	assert.False(t, snap.Ready())
	assert.False(t, snap.Loading())
	assert.Equal(t, "HTTP error! status: 500", snap.CatalogErr)
	assert.Equal(t, []EventKind{EventStatus, EventStatus}, rec.kinds())
}

func TestStore_SetCatalogClearsError(t *testing.T) {
	s := NewStore()
	s.SetCatalogError("boom")
	s.SetCatalog(catalogOf("EUR", "USD"))
	s.SetCatalogLoadingDone()

	snap := s.Snapshot()
	assert.Equal(t, CatalogLoaded, snap.Status)
	assert.Empty(t, snap.CatalogErr)
	assert.True(t, snap.Ready())
}

func TestStore_SubscriptionOrderAndUnsubscribe(t *testing.T) {
	s := loadedStore(t, "EUR", "USD", "GBP")

	var order []string
	unsubA := s.Subscribe(func(Event) { order = append(order, "a") })
	s.Subscribe(func(Event) { order = append(order, "b") })

	s.SetToCurrency("GBP")
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	order = nil
	s.SetToCurrency("USD")
	assert.Equal(t, []string{"b"}, order)
}

func TestStore_BootstrapEvents(t *testing.T) {
	s := NewStore()
	rec := &recorder{}
	s.Subscribe(rec.listen)

	s.SetCatalog(catalogOf("EUR", "USD"))
	s.SetCatalogLoadingDone()

	assert.Equal(t, []EventKind{EventCatalog, EventStatus, EventSelection}, rec.kinds())
	last := rec.events[len(rec.events)-1].Snapshot
	assert.Equal(t, model.Pair{From: "EUR", To: "USD"}, last.Selection)
}

func TestStore_ListenerMayMutate(t *testing.T) {
	s := loadedStore(t, "EUR", "USD", "GBP")
	s.Subscribe(func(ev Event) {
		if ev.Kind == EventSelection && ev.Snapshot.Selection.To == "GBP" {
			s.SetConversionResult("reacted")
		}
	})

	s.SetToCurrency("GBP")
	assert.Equal(t, "reacted", s.Snapshot().Conversion.ResultText)
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s := loadedStore(t, "EUR", "USD", "GBP", "JPY")
	codes := []string{"USD", "GBP", "JPY"}

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetToCurrency(codes[i%len(codes)])
			s.CommitConversion(s.Snapshot().Selection, "r", 1.5)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Contains(t, codes, snap.Selection.To)
	if snap.Conversion.HasRate {
		assert.Equal(t, "r", snap.Conversion.ResultText)
	}
}
