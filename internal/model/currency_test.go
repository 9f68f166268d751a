package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_UnmarshalJSON_KeepsServiceOrder(t *testing.T) {
	var c Catalog
	err := json.Unmarshal([]byte(`{"USD":"United States Dollar","AUD":"Australian Dollar","EUR":"Euro"}`), &c)
	require.NoError(t, err)

	assert.Equal(t, []string{"USD", "AUD", "EUR"}, c.Codes())
	assert.Equal(t, "Euro", c.Name("EUR"))
	assert.Equal(t, "USD", c.First())
	assert.Equal(t, "AUD", c.FirstExcept("USD"))
}

func TestCatalog_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "array", data: `["EUR"]`},
		{name: "non-string name", data: `{"EUR": 1}`},
		{name: "truncated", data: `{"EUR": "Euro"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Catalog
			assert.Error(t, json.Unmarshal([]byte(tt.data), &c))
		})
	}
}

func TestCatalog_EmptyAndEqual(t *testing.T) {
	var empty Catalog
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.Has("EUR"))
	assert.Equal(t, "", empty.First())

	a := NewCatalog(CatalogEntry{Code: "EUR", Name: "Euro"}, CatalogEntry{Code: "USD", Name: "Dollar"})
	b := NewCatalog(CatalogEntry{Code: "EUR", Name: "Euro"}, CatalogEntry{Code: "USD", Name: "Dollar"})
	c := NewCatalog(CatalogEntry{Code: "USD", Name: "Dollar"}, CatalogEntry{Code: "EUR", Name: "Euro"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Has(""))
}

func TestNewCatalog_SkipsDuplicatesAndBlanks(t *testing.T) {
	c := NewCatalog(
		CatalogEntry{Code: "EUR", Name: "Euro"},
		CatalogEntry{Code: " ", Name: "blank"},
		CatalogEntry{Code: "EUR", Name: "Second Euro"},
	)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "Euro", c.Name("EUR"))
}

func TestCatalog_FirstExcept_SingleCurrency(t *testing.T) {
	c := NewCatalog(CatalogEntry{Code: "CHF", Name: "Swiss Franc"})
	assert.Equal(t, "", c.FirstExcept("CHF"))
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		input   string
		want    Pair
		wantErr bool
	}{
		{input: "EUR/USD", want: Pair{From: "EUR", To: "USD"}},
		{input: "gbp-jpy", want: Pair{From: "GBP", To: "JPY"}},
		{input: "EUR", wantErr: true},
		{input: "/USD", wantErr: true},
		{input: "A/B/C", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePair(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPair_Predicates(t *testing.T) {
	assert.False(t, Pair{From: "EUR"}.Complete())
	assert.True(t, Pair{From: "EUR", To: "EUR"}.Complete())
	assert.False(t, Pair{From: "EUR", To: "EUR"}.Distinct())
	assert.True(t, Pair{From: "EUR", To: "USD"}.Distinct())
	assert.Equal(t, "EUR/USD", Pair{From: "EUR", To: "USD"}.String())
}

func TestTrailingWeek(t *testing.T) {
	now := time.Date(2024, time.March, 3, 15, 4, 5, 0, time.UTC)
	r := TrailingWeek(now)

	assert.Equal(t, "2024-03-02", r.End.Format(DateLayout))
	assert.Equal(t, "2024-02-25", r.Start.Format(DateLayout))
	assert.Equal(t, "2024-02-25..2024-03-02", r.String())
}

func TestPairRate_Display(t *testing.T) {
	ok := PairRate{Pair: Pair{From: "EUR", To: "USD"}, Rate: 1.08456}
	failed := PairRate{Pair: Pair{From: "USD", To: "JPY"}, Err: errors.New("boom")}

	assert.Equal(t, "1.0846", ok.Display())
	assert.Equal(t, RateErrorText, failed.Display())
}

func TestSeries_Values(t *testing.T) {
	s := Series{
		DatesAscending: []string{"2024-01-01", "2024-01-02"},
		RatesByDate:    map[string]float64{"2024-01-02": 2, "2024-01-01": 1},
	}
	assert.Equal(t, []float64{1, 2}, s.Values())
	assert.Equal(t, 2, s.Len())
}
