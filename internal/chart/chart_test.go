package chart

import (
	"strings"
	"testing"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries() model.Series {
	return model.Series{
		Pair:           model.Pair{From: "EUR", To: "USD"},
		DatesAscending: []string{"2024-02-26", "2024-02-27", "2024-02-28"},
		RatesByDate: map[string]float64{
			"2024-02-26": 1.0852,
			"2024-02-27": 1.0841,
			"2024-02-28": 1.0834,
		},
	}
}

func TestFromSeries(t *testing.T) {
	d := FromSeries(sampleSeries())

	assert.Equal(t, []string{"2024-02-26", "2024-02-27", "2024-02-28"}, d.Labels)
	require.Len(t, d.Datasets, 1)
	assert.Equal(t, "EUR → USD", d.Datasets[0].Label)
	assert.Equal(t, []float64{1.0852, 1.0841, 1.0834}, d.Datasets[0].Data)
	assert.False(t, d.Empty())
}

func TestColorsFor(t *testing.T) {
	light := ColorsFor(false)
	dark := ColorsFor(true)

	assert.Equal(t, "#1a1a1a", light.TextHex)
	assert.Equal(t, "#4f46e5", light.LineHex)
	assert.Equal(t, "#f0f0f0", dark.TextHex)
	assert.Equal(t, "#818cf8", dark.LineHex)
}

func TestRender(t *testing.T) {
	out, err := Render(FromSeries(sampleSeries()), Options{
		Caption: "EUR to USD - 7 Day Trend",
		Height:  5,
		Plain:   true,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "EUR to USD - 7 Day Trend")
	assert.Contains(t, out, "1.0852")
	assert.Contains(t, out, "1.0834")
	assert.True(t, strings.HasSuffix(out, "2024-02-26 … 2024-02-28"))
	assert.NotContains(t, out, "\x1b[", "plain output carries no ANSI escapes")
}

func TestRender_Colored(t *testing.T) {
	out, err := Render(FromSeries(sampleSeries()), Options{Colors: ColorsFor(true)})
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(Data{}, Options{})
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = Render(Data{
		Labels:   []string{"a", "b"},
		Datasets: []Dataset{{Label: "x", Data: []float64{1}}},
	}, Options{Plain: true})
	assert.Error(t, err)
}
