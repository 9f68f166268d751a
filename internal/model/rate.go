package model

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used by the rate service.
const DateLayout = "2006-01-02"

// RateErrorText is shown in place of a popular rate that could not be fetched.
const RateErrorText = "Error"

// PairRate is the outcome of fetching one popular pair.
type PairRate struct {
	Err  error
	Pair Pair
	Rate float64
}

// Failed reports whether this pair could not be fetched.
func (r PairRate) Failed() bool {
	return r.Err != nil
}

// Display renders the rate with four decimals, or "Error".
func (r PairRate) Display() string {
	if r.Failed() {
		return RateErrorText
	}
	return fmt.Sprintf("%.4f", r.Rate)
}

// Series is a historical rate series for one pair.
type Series struct {
	RatesByDate    map[string]float64
	Pair           Pair
	DatesAscending []string
}

// Values returns the rates in ascending date order.
func (s Series) Values() []float64 {
	out := make([]float64, 0, len(s.DatesAscending))
	for _, d := range s.DatesAscending {
		out = append(out, s.RatesByDate[d])
	}
	return out
}

// Len returns the number of dated points.
func (s Series) Len() int {
	return len(s.DatesAscending)
}

// DateRange is an inclusive calendar date window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// TrailingWeek returns the seven days ending yesterday relative to now.
func TrailingWeek(now time.Time) DateRange {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, -1)
	return DateRange{
		Start: end.AddDate(0, 0, -6),
		End:   end,
	}
}

// String renders the range as START..END.
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// ConversionRecord is the most recent successful conversion for the selected pair.
type ConversionRecord struct {
	ResultText string
	LastRate   float64
	HasRate    bool
}

// IsZero reports whether nothing has been recorded.
func (r ConversionRecord) IsZero() bool {
	return r.ResultText == "" && !r.HasRate
}
