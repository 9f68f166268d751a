// Package conversion holds the converter rules shared by the dashboard and
// the command line: input validation, result formatting and the reverse
// "how much do I need" computation.
package conversion

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/fxdash/internal/common"
	"github.com/Veraticus/fxdash/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Texts shown by the converter panels.
const (
	PromptText         = "Enter amount and convert."
	ConvertingText     = "Converting..."
	ReversePlaceholder = "Convert currencies first to get rate."
	ReverseInvalidText = "Enter a valid amount to receive."
	RateUnavailable    = "Rate unavailable"
)

// Validation messages, in the order the checks run.
const (
	msgInvalidAmount   = "Please enter a valid positive amount."
	msgSelectBoth      = `Please select both "From" and "To" currencies.`
	msgSelectDifferent = "Please select different currencies."
	msgCatalogFailed   = "Cannot convert due to currency load error: %s"
)

var printer = message.NewPrinter(language.English)

// ParseAmount parses a positive, finite amount.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, common.NewValidationError(msgInvalidAmount)
	}
	return v, nil
}

// Validate runs the converter checks in order: amount, both currencies
// selected, currencies distinct, catalog not failed. It returns the parsed
// amount when every check passes.
func Validate(amountText string, pair model.Pair, catalogErr string) (float64, error) {
	amount, err := ParseAmount(amountText)
	if err != nil {
		return 0, err
	}
	if !pair.Complete() {
		return 0, common.NewValidationError(msgSelectBoth)
	}
	if pair.From == pair.To {
		return 0, common.NewValidationError(msgSelectDifferent)
	}
	if catalogErr != "" {
		return 0, common.NewValidationError(msgCatalogFailed, catalogErr)
	}
	return amount, nil
}

// Rate derives units of to per one unit of from.
func Rate(amount, converted float64) float64 {
	if amount == 0 {
		return 0
	}
	return converted / amount
}

// FormatAmount renders v with two decimals and thousands separators.
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// ResultText renders "10.00 EUR = 10.85 USD".
func ResultText(pair model.Pair, amount, converted float64) string {
	return fmt.Sprintf("%s %s = %s %s", FormatAmount(amount), pair.From, FormatAmount(converted), pair.To)
}

// FailureText renders a conversion failure for display. Validation failures
// are shown as-is and service failures carry an "API Error: " prefix.
func FailureText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	case errors.Is(err, common.ErrNetwork), errors.Is(err, common.ErrRateUnavailable):
		return "API Error: " + err.Error()
	default:
		return "Conversion failed: " + err.Error()
	}
}

// NeededAmount returns how much of the source currency buys target units of
// the destination at rate.
func NeededAmount(target, rate float64) (float64, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, common.NewValidationError(ReversePlaceholder)
	}
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return 0, common.NewValidationError(ReverseInvalidText)
	}
	return target / rate, nil
}

// ReverseText renders the reverse converter line for targetText against the
// recorded rate. Without a rate it shows the placeholder.
func ReverseText(targetText string, record model.ConversionRecord, from string) string {
	if !record.HasRate {
		return ReversePlaceholder
	}

	target, err := ParseAmount(targetText)
	if err != nil {
		return ReverseInvalidText
	}

	needed, err := NeededAmount(target, record.LastRate)
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("You'll need ≈ %s %s", FormatAmount(needed), from)
}
