package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/Veraticus/fxdash/internal/cli"
	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/Veraticus/fxdash/internal/tui/components"
	"github.com/spf13/cobra"
)

func (a *app) popularCmd() *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "popular [PAIR...]",
		Short: "Show latest rates for popular currency pairs",
		Long: `Fetch the latest rate for each pair concurrently. A pair that fails is
shown as Error and does not affect the others.

Pairs default to EUR/USD, USD/JPY, GBP/EUR and USD/CAD.`,
		Example: `  fxdash popular
  fxdash popular EUR/CHF GBP/USD`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := components.DefaultPopularPairs
			if len(args) > 0 {
				pairs = make([]model.Pair, 0, len(args))
				for _, arg := range args {
					pair, err := parsePairArgs([]string{arg})
					if err != nil {
						return err
					}
					pairs = append(pairs, pair)
				}
			}
			return a.runPopular(cmd, pairs, !noProgress)
		},
	}

	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not show a progress bar")

	return cmd
}

func (a *app) runPopular(cmd *cobra.Command, pairs []model.Pair, showProgress bool) error {
	client, err := newRateClient(a.cfg.API)
	if err != nil {
		return err
	}
	site := rates.NewCallSite(client)

	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	var observers []rates.SettledFunc
	var progress *cli.Progress
	if showProgress {
		progress = cli.NewProgress(cmd.ErrOrStderr(), len(pairs), "Fetching popular rates...")
		observers = append(observers, progress.Settled)
	}

	batch := site.PopularRates(ctx, pairs, observers...)
	if progress != nil {
		progress.Finish()
	}

	out := cmd.OutOrStdout()
	if len(batch) == 0 {
		_, err := fmt.Fprintln(out, cli.FormatWarning("No popular rates to display."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("Pair"), cli.HeaderStyle.Render("Rate")); err != nil {
		return err
	}
	for _, r := range batch {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Pair.String(), r.Display()); err != nil {
			return err
		}
	}
	return nil
}
