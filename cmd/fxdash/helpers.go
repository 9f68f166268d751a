package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/fxdash/internal/common"
	"github.com/Veraticus/fxdash/internal/config"
	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/preferences"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/storage"
)

// newRateClient builds the rate client from the API settings.
func newRateClient(cfg config.APIConfig) (*rates.Client, error) {
	rc := rates.DefaultConfig()
	rc.BaseURL = cfg.BaseURL
	rc.Timeout = cfg.Timeout
	rc.RequestsPerSecond = cfg.RequestsPerSecond
	rc.Burst = cfg.Burst
	rc.Retry.MaxAttempts = cfg.RetryAttempts

	client, err := rates.NewClient(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate client: %w", err)
	}
	return client, nil
}

// initStorage opens the preferences database and applies migrations.
func initStorage(ctx context.Context, cfg config.DatabaseConfig) (*storage.SQLiteStorage, error) {
	store, err := storage.Open(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

func closeStorage(store *storage.SQLiteStorage) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// requestContext bounds one CLI request by the configured timeout.
func (a *app) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := a.cfg.API.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// parsePairArgs accepts either "FROM TO" or a single "FROM/TO".
func parsePairArgs(args []string) (model.Pair, error) {
	var raw string
	switch len(args) {
	case 1:
		raw = args[0]
	case 2:
		raw = args[0] + "/" + args[1]
	default:
		return model.Pair{}, common.NewValidationError("expected FROM TO or FROM/TO")
	}

	pair, err := model.ParsePair(raw)
	if err != nil {
		return model.Pair{}, common.NewValidationError("%v", err)
	}
	return pair, nil
}

// requireKnown checks that both sides of pair are in catalog.
func requireKnown(catalog model.Catalog, pair model.Pair) error {
	for _, code := range []string{pair.From, pair.To} {
		if !catalog.Has(code) {
			return common.NewValidationError("unknown currency %q", code)
		}
	}
	return nil
}

// themeStore opens the persisted theme. A storage failure falls back to an
// in-memory store so the caller can still run.
func (a *app) themeStore(ctx context.Context, opts ...preferences.Option) (*preferences.ThemeStore, *storage.SQLiteStorage) {
	db, err := initStorage(ctx, a.cfg.Database)
	if err != nil {
		common.LogError(err, "Theme preference unavailable, using default", common.Fields{"path": a.cfg.Database.Path})
		return preferences.NewThemeStore(ctx, nil, opts...), nil
	}
	return preferences.NewThemeStore(ctx, db, opts...), db
}

func elapsed(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
