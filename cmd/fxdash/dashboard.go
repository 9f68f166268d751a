package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/fxdash/internal/common"
	"github.com/Veraticus/fxdash/internal/tui"
	"github.com/spf13/cobra"
)

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the full-screen currency dashboard: converter, reverse converter,
popular rates and a seven day trend for the selected pair.

Logs are written to logging.file while the dashboard owns the terminal.`,
		RunE: a.runDashboard,
	}
}

func (a *app) runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	closeLog, err := a.redirectLogs()
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newRateClient(a.cfg.API)
	if err != nil {
		return err
	}

	themes, db := a.themeStore(ctx)
	defer closeStorage(db)

	common.LogInfo("Starting dashboard", common.Fields{
		"base_url": a.cfg.API.BaseURL,
		"theme":    themes.Get().String(),
	})

	return tui.Run(ctx,
		tui.WithService(client),
		tui.WithThemeStore(themes),
		tui.WithRequestTimeout(a.cfg.API.Timeout),
	)
}

// redirectLogs points slog at logging.file so log lines do not corrupt the
// screen.
func (a *app) redirectLogs() (func(), error) {
	path := a.cfg.Logging.File
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := common.ParseLevel(a.cfg.Logging.Level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := common.SetupLogger(f, level, a.cfg.Logging.Format); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}, nil
}
