package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{"success", FormatSuccess, SuccessIcon},
		{"error", FormatError, ErrorIcon},
		{"warning", FormatWarning, WarningIcon},
		{"title", FormatTitle, CurrencyIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("hello")
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "hello")
		})
	}
}

func TestRenderBox(t *testing.T) {
	out := RenderBox("Rates", "EUR/USD 1.0852")
	assert.Contains(t, out, "Rates")
	assert.Contains(t, out, "EUR/USD 1.0852")
	assert.Contains(t, out, "╭")
}

func TestProgress_CountsSettledPairs(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2, "Fetching")

	p.Settled(model.PairRate{Pair: model.Pair{From: "EUR", To: "USD"}, Rate: 1.08})
	p.Settled(model.PairRate{Pair: model.Pair{From: "USD", To: "CAD"}, Err: errors.New("boom")})
	p.Finish()

	assert.Contains(t, buf.String(), "2/2")
}
