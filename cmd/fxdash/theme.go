package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/fxdash/internal/cli"
	"github.com/Veraticus/fxdash/internal/common"
	"github.com/Veraticus/fxdash/internal/preferences"
	"github.com/spf13/cobra"
)

func (a *app) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the dashboard theme",
		Long:  `Show, change or reset the persisted light/dark theme used by the dashboard.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withThemes(cmd.Context(), func(s *preferences.ThemeStore) error {
				return printTheme(cmd.OutOrStdout(), s.Get())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withThemes(cmd.Context(), func(s *preferences.ThemeStore) error {
				return printTheme(cmd.OutOrStdout(), s.Toggle(cmd.Context()))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Select a theme explicitly",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{preferences.ThemeLight.String(), preferences.ThemeDark.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, ok := preferences.ParseTheme(args[0])
			if !ok {
				err := common.NewValidationError("unknown theme %q (want light or dark)", args[0])
				return common.NewUserError(err.Error(), err)
			}
			return a.withThemes(cmd.Context(), func(s *preferences.ThemeStore) error {
				s.Set(cmd.Context(), theme)
				return printTheme(cmd.OutOrStdout(), s.Get())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the stored theme and return to the default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.resetTheme(cmd.Context(), cmd.OutOrStdout())
		},
	})

	return cmd
}

func (a *app) resetTheme(ctx context.Context, w io.Writer) error {
	db, err := initStorage(ctx, a.cfg.Database)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	if err := db.DeletePreference(ctx, preferences.ThemeKey); err != nil {
		return fmt.Errorf("failed to reset theme: %w", err)
	}
	common.LogInfo("Theme preference cleared", common.Fields{"key": preferences.ThemeKey})

	return printTheme(w, preferences.NewThemeStore(ctx, db, preferences.WithApply(nil)).Get())
}

// withThemes runs fn against the persisted theme store. Theme commands
// require storage so a change is never silently dropped.
func (a *app) withThemes(ctx context.Context, fn func(*preferences.ThemeStore) error) error {
	db, err := initStorage(ctx, a.cfg.Database)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	return fn(preferences.NewThemeStore(ctx, db, preferences.WithApply(nil)))
}

func printTheme(w io.Writer, t preferences.Theme) error {
	icon := "🌙"
	if t.Dark() {
		icon = "☀️"
	}
	_, err := fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Theme: %s %s", t.String(), icon)))
	return err
}
