package state

import "github.com/Veraticus/fxdash/internal/model"

// DefaultSelection fills the empty sides of current from catalog.
//
// from prefers EUR, then the first listed code. to prefers USD when it
// differs from from, then the first code other than from. A catalog with a
// single code leaves to empty: there is no distinct pair to offer.
func DefaultSelection(catalog model.Catalog, current model.Pair) model.Pair {
	out := current

	if out.From == "" {
		if catalog.Has(model.CodeEUR) {
			out.From = model.CodeEUR
		} else {
			out.From = catalog.First()
		}
	}

	if out.To == "" {
		if catalog.Has(model.CodeUSD) && out.From != model.CodeUSD {
			out.To = model.CodeUSD
		} else {
			out.To = catalog.FirstExcept(out.From)
		}
	}

	return out
}
