package tui

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/preferences"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/state"
	"github.com/Veraticus/fxdash/internal/tui/components"
)

// Config holds TUI configuration.
type Config struct {
	Context        context.Context
	Service        rates.Service
	Store          *state.Store
	Themes         *preferences.ThemeStore
	Rand           *rand.Rand
	PopularPairs   []model.Pair
	RequestTimeout time.Duration
	QuoteInterval  time.Duration
	Width          int
	Height         int
	PlainChart     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Context:        context.Background(),
		RequestTimeout: components.DefaultRequestTimeout,
		QuoteInterval:  components.DefaultQuoteInterval,
		Width:          100,
		Height:         32,
	}
}

// WithContext sets the context requests derive from.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// WithService sets the rate service. Required.
func WithService(svc rates.Service) Option {
	return func(c *Config) {
		c.Service = svc
	}
}

// WithStore injects the shared state store. A fresh store is created when omitted.
func WithStore(store *state.Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithThemeStore injects the theme store. Without one the theme stays light
// and toggles are not persisted.
func WithThemeStore(themes *preferences.ThemeStore) Option {
	return func(c *Config) {
		c.Themes = themes
	}
}

// WithPopularPairs overrides the popular rates table.
func WithPopularPairs(pairs []model.Pair) Option {
	return func(c *Config) {
		c.PopularPairs = pairs
	}
}

// WithRequestTimeout bounds every panel request. A non-positive d keeps
// the default.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.RequestTimeout = d
		}
	}
}

// WithQuoteInterval sets how often the quote rotates.
func WithQuoteInterval(d time.Duration) Option {
	return func(c *Config) {
		c.QuoteInterval = d
	}
}

// WithRand sets the quote randomness source.
func WithRand(rng *rand.Rand) Option {
	return func(c *Config) {
		c.Rand = rng
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithPlainChart disables chart colors.
func WithPlainChart(plain bool) Option {
	return func(c *Config) {
		c.PlainChart = plain
	}
}
