package rates

import (
	"context"

	"github.com/Veraticus/fxdash/internal/fetch"
	"github.com/Veraticus/fxdash/internal/model"
)

// Service is the set of rate lookups the application depends on.
type Service interface {
	Currencies(ctx context.Context) (model.Catalog, error)
	Convert(ctx context.Context, pair model.Pair, amount float64) (float64, error)
	PopularRates(ctx context.Context, pairs []model.Pair, onSettled ...SettledFunc) []model.PairRate
	History(ctx context.Context, pair model.Pair) (model.Series, error)
}

var _ Service = (*Client)(nil)

// CallSite is one independent invocation context over a Service: it owns
// its own pending/error flags and shares nothing with other call sites.
type CallSite struct {
	svc     Service
	tracker *fetch.Tracker
}

// NewCallSite creates a call site with an idle tracker.
func NewCallSite(svc Service) *CallSite {
	return &CallSite{svc: svc, tracker: fetch.NewTracker()}
}

// Tracker exposes the call site's flags for asynchronous callers that
// begin and settle attempts themselves.
func (c *CallSite) Tracker() *fetch.Tracker {
	return c.tracker
}

// Service returns the underlying service.
func (c *CallSite) Service() Service {
	return c.svc
}

// Status returns the current flags.
func (c *CallSite) Status() fetch.Status {
	return c.tracker.Status()
}

// Currencies fetches the catalog as one tracked attempt.
func (c *CallSite) Currencies(ctx context.Context) (model.Catalog, error) {
	return fetch.Do(c.tracker, func() (model.Catalog, error) {
		return c.svc.Currencies(ctx)
	})
}

// Convert performs a spot conversion as one tracked attempt.
func (c *CallSite) Convert(ctx context.Context, pair model.Pair, amount float64) (float64, error) {
	return fetch.Do(c.tracker, func() (float64, error) {
		return c.svc.Convert(ctx, pair, amount)
	})
}

// PopularRates fetches the batch as one tracked attempt. Per-pair failures
// stay in their slots and do not mark the attempt as failed.
func (c *CallSite) PopularRates(ctx context.Context, pairs []model.Pair, onSettled ...SettledFunc) []model.PairRate {
	out, _ := fetch.Do(c.tracker, func() ([]model.PairRate, error) {
		return c.svc.PopularRates(ctx, pairs, onSettled...), nil
	})
	return out
}

// History fetches a historical series as one tracked attempt.
func (c *CallSite) History(ctx context.Context, pair model.Pair) (model.Series, error) {
	return fetch.Do(c.tracker, func() (model.Series, error) {
		return c.svc.History(ctx, pair)
	})
}
