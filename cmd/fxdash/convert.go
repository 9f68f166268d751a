package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/fxdash/internal/cli"
	"github.com/Veraticus/fxdash/internal/common"
	"github.com/Veraticus/fxdash/internal/conversion"
	"github.com/Veraticus/fxdash/internal/model"
	"github.com/Veraticus/fxdash/internal/rates"
	"github.com/spf13/cobra"
)

func (a *app) convertCmd() *cobra.Command {
	var receive string

	cmd := &cobra.Command{
		Use:   "convert <amount> <FROM> <TO>",
		Short: "Convert an amount between two currencies",
		Long: `Convert an amount at the latest rate.

Both currencies must be in the service catalog and must differ. With
--receive, also report how much of FROM buys the given amount of TO.`,
		Example: `  fxdash convert 100 EUR USD
  fxdash convert 250 usd/jpy
  fxdash convert 100 EUR USD --receive 500`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args[0], args[1:], receive)
		},
	}

	cmd.Flags().StringVar(&receive, "receive", "", "amount of TO you want to receive")

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, amountText string, pairArgs []string, receive string) error {
	pair, err := parsePairArgs(pairArgs)
	if err != nil {
		return common.NewUserError(conversion.FailureText(err), err)
	}

	client, err := newRateClient(a.cfg.API)
	if err != nil {
		return err
	}
	site := rates.NewCallSite(client)

	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	catalog, catalogErr := site.Currencies(ctx)
	catalogMsg := ""
	if catalogErr != nil {
		catalogMsg = catalogErr.Error()
	}

	amount, err := conversion.Validate(amountText, pair, catalogMsg)
	if err == nil {
		err = requireKnown(catalog, pair)
	}
	if err != nil {
		return common.NewUserError(conversion.FailureText(err), err)
	}

	start := time.Now()
	converted, err := site.Convert(ctx, pair, amount)
	if err != nil {
		return common.NewUserError(conversion.FailureText(err), err)
	}
	slog.Debug("Converted amount", "pair", pair.String(), "amount", amount, "elapsed", elapsed(start))

	record := model.ConversionRecord{
		ResultText: conversion.ResultText(pair, amount, converted),
		LastRate:   conversion.Rate(amount, converted),
		HasRate:    true,
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, cli.FormatSuccess(record.ResultText)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, cli.SubtitleStyle.Render(fmt.Sprintf("1 %s = %.4f %s", pair.From, record.LastRate, pair.To))); err != nil {
		return err
	}

	if strings.TrimSpace(receive) != "" {
		if _, err := fmt.Fprintln(out, conversion.ReverseText(receive, record, pair.From)); err != nil {
			return err
		}
	}
	return nil
}
