package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/Veraticus/fxdash/internal/cli"
	"github.com/Veraticus/fxdash/internal/common"
	"github.com/spf13/cobra"
)

func (a *app) currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the currencies the rate service supports",
		Args:  cobra.NoArgs,
		RunE:  a.runCurrencies,
	}
}

func (a *app) runCurrencies(cmd *cobra.Command, _ []string) error {
	client, err := newRateClient(a.cfg.API)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	catalog, err := client.Currencies(ctx)
	if err != nil {
		return common.NewUserError("Error loading currencies: "+err.Error(), err)
	}

	out := cmd.OutOrStdout()
	if catalog.IsEmpty() {
		_, err := fmt.Fprintln(out, cli.FormatWarning("No currencies loaded. The API might have returned an empty list."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("Code"), cli.HeaderStyle.Render("Name")); err != nil {
		return err
	}
	for _, entry := range catalog.Entries() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", entry.Code, entry.Name); err != nil {
			return err
		}
	}
	return nil
}
