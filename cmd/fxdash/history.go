package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/Veraticus/fxdash/internal/chart"
	"github.com/Veraticus/fxdash/internal/cli"
	"github.com/Veraticus/fxdash/internal/common"
	"github.com/Veraticus/fxdash/internal/preferences"
	"github.com/spf13/cobra"
)

type historyOptions struct {
	width int
	plain bool
	table bool
}

func (a *app) historyCmd() *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history <FROM> <TO>",
		Short: "Chart the seven day trend for a currency pair",
		Long: `Fetch the daily rates for the seven days ending yesterday and draw them
as a line chart in the current theme colors.`,
		Example: `  fxdash history EUR USD
  fxdash history GBP/JPY --table`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 60, "chart width in columns")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable chart colors")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print the daily rates instead of a chart")

	return cmd
}

func (a *app) runHistory(cmd *cobra.Command, args []string, opts historyOptions) error {
	pair, err := parsePairArgs(args)
	if err != nil {
		return common.NewUserError(err.Error(), err)
	}
	if !pair.Distinct() {
		err := common.NewValidationError("Please select different currencies.")
		return common.NewUserError(err.Error(), err)
	}

	client, err := newRateClient(a.cfg.API)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	series, err := client.History(ctx, pair)
	if err != nil {
		return common.NewUserError("Chart API Error: "+err.Error(), err)
	}

	out := cmd.OutOrStdout()
	title := fmt.Sprintf("%s to %s - 7 Day Trend", pair.From, pair.To)
	if _, err := fmt.Fprintln(out, cli.FormatTitle(title)); err != nil {
		return err
	}

	if opts.table {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		defer func() {
			if flushErr := w.Flush(); flushErr != nil {
				slog.Error("failed to flush table writer", "error", flushErr)
			}
		}()
		if _, err := fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("Date"), cli.HeaderStyle.Render("Rate")); err != nil {
			return err
		}
		for _, date := range series.DatesAscending {
			if _, err := fmt.Fprintf(w, "%s\t%.4f\n", date, series.RatesByDate[date]); err != nil {
				return err
			}
		}
		return nil
	}

	// The chart follows the stored theme without applying it globally.
	themes, db := a.themeStore(ctx, preferences.WithApply(nil))
	closeStorage(db)

	rendered, err := chart.Render(chart.FromSeries(series), chart.Options{
		Colors: chart.ColorsFor(themes.Get().Dark()),
		Width:  opts.width,
		Plain:  opts.plain,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}
