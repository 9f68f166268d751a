package components

import (
	"github.com/Veraticus/fxdash/internal/fetch"
	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/preferences"
	"github.com/Veraticus/fxdash/internal/state"
)

// StoreChangedMsg carries one store notification to every panel.
type StoreChangedMsg struct {
	Event state.Event
}

// ThemeChangedMsg announces a theme toggle.
type ThemeChangedMsg struct {
	Theme preferences.Theme
}

// ConversionDoneMsg is the settled result of a spot conversion.
type ConversionDoneMsg struct {
	Err       error
	Pair      model.Pair
	Token     fetch.Token
	Amount    float64
	Converted float64
}

// PopularRatesMsg is the settled popular-pairs batch.
type PopularRatesMsg struct {
	Rates []model.PairRate
	Token fetch.Token
}

// HistoryLoadedMsg is the settled historical series for Pair.
type HistoryLoadedMsg struct {
	Err    error
	Pair   model.Pair
	Series model.Series
	Token  fetch.Token
}

// QuoteTickMsg rotates the quote panel.
type QuoteTickMsg struct {
	Seq int
}
