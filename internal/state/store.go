// Package state holds the shared application state: the currency catalog and
// its load status, the selected pair and the latest conversion.
//
// All mutation goes through Store methods. Invalid input is ignored rather
// than reported, and every pair change clears the conversion record in the
// same step.
package state

import (
	"log/slog"
	"math"
	"sync"

	"github.com/Veraticus/fxdash/internal/model"
)

// Listener receives store events.
type Listener func(Event)

type subscriber struct {
	fn Listener
	id int
}

// Store is the shared application state container. It is safe for
// concurrent use; listeners run on the mutating goroutine after the store
// lock is released.
type Store struct {
	catalog    model.Catalog
	catalogErr string
	selection  model.Pair
	record     model.ConversionRecord
	subs       []subscriber
	nextSub    int
	status     CatalogStatus
	mu         sync.Mutex
	pending    bool
	derived    bool
}

// NewStore creates a store in the Loading state with the bootstrap fetch pending.
func NewStore() *Store {
	return &Store{
		status:  CatalogLoading,
		pending: true,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every subsequent event. Listeners are called
// in subscription order. The returned func removes the subscription.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// SetCatalog stores catalog and marks it loaded. Selections absent from the
// new catalog are dropped. Calling it again with an equal catalog is a no-op.
func (s *Store) SetCatalog(catalog model.Catalog) {
	s.mu.Lock()
	if s.status == CatalogLoaded && s.catalog.Equal(catalog) {
		s.mu.Unlock()
		return
	}

	s.catalog = catalog
	s.status = CatalogLoaded
	s.catalogErr = ""
	s.derived = false

	kinds := []EventKind{EventCatalog}

	kept := s.selection
	if !catalog.Has(kept.From) {
		kept.From = ""
	}
	if !catalog.Has(kept.To) {
		kept.To = ""
	}
	if kept != s.selection {
		s.selection = kept
		s.record = model.ConversionRecord{}
		kinds = append(kinds, EventSelection)
	}

	if s.deriveLocked() {
		kinds = appendKind(kinds, EventSelection)
	}

	slog.Info("Currency catalog loaded", "count", catalog.Len())
	s.emitLocked(kinds...)
}

// SetCatalogError marks the catalog as failed. The catalog content is kept.
func (s *Store) SetCatalogError(message string) {
	s.mu.Lock()
	if s.status == CatalogFailed && s.catalogErr == message {
		s.mu.Unlock()
		return
	}

	s.status = CatalogFailed
	s.catalogErr = message

	slog.Warn("Currency catalog failed to load", "error", message)
	s.emitLocked(EventStatus)
}

// SetCatalogLoadingDone clears the bootstrap pending flag. Only the first
// call has an effect.
func (s *Store) SetCatalogLoadingDone() {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}

	s.pending = false
	kinds := []EventKind{EventStatus}
	if s.deriveLocked() {
		kinds = append(kinds, EventSelection)
	}
	s.emitLocked(kinds...)
}

// SetFromCurrency selects code as the source currency. Codes missing from
// the catalog are ignored. It reports whether the selection changed.
func (s *Store) SetFromCurrency(code string) bool {
	return s.setSelection(func(p model.Pair) (model.Pair, bool) {
		p.From = code
		return p, s.catalog.Has(code)
	})
}

// SetToCurrency selects code as the target currency. Codes missing from
// the catalog are ignored. It reports whether the selection changed.
func (s *Store) SetToCurrency(code string) bool {
	return s.setSelection(func(p model.Pair) (model.Pair, bool) {
		p.To = code
		return p, s.catalog.Has(code)
	})
}

// SetSelection replaces both sides at once. A non-empty side must be in the
// catalog or the whole change is ignored. Before the default selection is
// derived either side may be empty; afterwards From is required and To may
// only be empty when the catalog has no other currency.
func (s *Store) SetSelection(pair model.Pair) bool {
	return s.setSelection(func(model.Pair) (model.Pair, bool) {
		return pair, true
	})
}

// SwapSelection exchanges from and to. An incomplete pair is left alone.
func (s *Store) SwapSelection() bool {
	return s.setSelection(func(p model.Pair) (model.Pair, bool) {
		return model.Pair{From: p.To, To: p.From}, p.Complete()
	})
}

// setSelection applies next under the lock. next sees the current pair and
// reports whether its own input was acceptable.
func (s *Store) setSelection(next func(model.Pair) (model.Pair, bool)) bool {
	s.mu.Lock()

	pair, ok := next(s.selection)
	if !ok || !s.validSideLocked(pair.From) || !s.validSideLocked(pair.To) {
		s.mu.Unlock()
		slog.Debug("Ignoring selection outside catalog", "pair", pair.String())
		return false
	}
	if s.derived && !s.populatedLocked(pair) {
		s.mu.Unlock()
		slog.Debug("Ignoring incomplete selection", "pair", pair.String())
		return false
	}
	if pair == s.selection {
		s.mu.Unlock()
		return false
	}

	s.selection = pair
	s.record = model.ConversionRecord{}
	s.emitLocked(EventSelection)
	return true
}

// populatedLocked reports whether pair keeps every side the catalog can fill.
func (s *Store) populatedLocked(pair model.Pair) bool {
	if pair.From == "" {
		return false
	}
	return pair.To != "" || s.catalog.FirstExcept(pair.From) == ""
}

// validSideLocked allows an empty side: a selection may be incomplete but never invalid.
func (s *Store) validSideLocked(code string) bool {
	return code == "" || s.catalog.Has(code)
}

// SetConversionResult stores the latest result text.
func (s *Store) SetConversionResult(text string) {
	s.updateRecord(func(r *model.ConversionRecord) {
		r.ResultText = text
	})
}

// SetLastRate stores the latest rate. A non-finite or non-positive rate
// counts as "no valid rate" and clears it.
func (s *Store) SetLastRate(rate float64) {
	s.updateRecord(func(r *model.ConversionRecord) {
		if !usableRate(rate) {
			r.LastRate, r.HasRate = 0, false
			return
		}
		r.LastRate, r.HasRate = rate, true
	})
}

// CommitConversion writes text and rate together, but only while pair is
// still the selected pair. It reports whether the write happened.
func (s *Store) CommitConversion(pair model.Pair, text string, rate float64) bool {
	s.mu.Lock()
	if pair != s.selection {
		s.mu.Unlock()
		slog.Debug("Discarding conversion for previous pair", "pair", pair.String())
		return false
	}

	next := model.ConversionRecord{ResultText: text}
	if usableRate(rate) {
		next.LastRate, next.HasRate = rate, true
	}
	if next == s.record {
		s.mu.Unlock()
		return true
	}

	s.record = next
	s.emitLocked(EventConversion)
	return true
}

func (s *Store) updateRecord(mutate func(*model.ConversionRecord)) {
	s.mu.Lock()
	next := s.record
	mutate(&next)
	if next == s.record {
		s.mu.Unlock()
		return
	}
	s.record = next
	s.emitLocked(EventConversion)
}

// deriveLocked applies default selection once per catalog load.
func (s *Store) deriveLocked() bool {
	if s.derived || s.pending || s.status != CatalogLoaded || s.catalog.IsEmpty() {
		return false
	}
	s.derived = true

	pair := DefaultSelection(s.catalog, s.selection)
	if pair == s.selection {
		return false
	}

	s.selection = pair
	s.record = model.ConversionRecord{}
	slog.Debug("Applied default selection", "pair", pair.String())
	return true
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Catalog:          s.catalog,
		CatalogErr:       s.catalogErr,
		Selection:        s.selection,
		Conversion:       s.record,
		Status:           s.status,
		BootstrapPending: s.pending,
	}
}

// emitLocked snapshots the state, releases the lock and notifies listeners.
func (s *Store) emitLocked(kinds ...EventKind) {
	snap := s.snapshotLocked()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, kind := range kinds {
		ev := Event{Kind: kind, Snapshot: snap}
		for _, sub := range subs {
			sub.fn(ev)
		}
	}
}

func appendKind(kinds []EventKind, kind EventKind) []EventKind {
	for _, k := range kinds {
		if k == kind {
			return kinds
		}
	}
	return append(kinds, kind)
}

func usableRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}
