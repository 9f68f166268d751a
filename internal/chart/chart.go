// Package chart renders historical rate series as terminal line charts.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/guptarohit/asciigraph"
)

// ErrNoPoints is returned when there is nothing to plot.
var ErrNoPoints = errors.New("chart has no data points")

// Dataset is one plotted line.
type Dataset struct {
	Label string
	Data  []float64
}

// Data is the chart input: one label per point plus the lines to draw.
type Data struct {
	Labels   []string
	Datasets []Dataset
}

// FromSeries converts a historical series into chart data.
func FromSeries(s model.Series) Data {
	labels := make([]string, len(s.DatesAscending))
	copy(labels, s.DatesAscending)

	return Data{
		Labels: labels,
		Datasets: []Dataset{{
			Label: fmt.Sprintf("%s → %s", s.Pair.From, s.Pair.To),
			Data:  s.Values(),
		}},
	}
}

// Empty reports whether no dataset has any points.
func (d Data) Empty() bool {
	for _, ds := range d.Datasets {
		if len(ds.Data) > 0 {
			return false
		}
	}
	return true
}

// Colors is the theme-derived palette of a chart.
type Colors struct {
	TextHex string
	LineHex string
	text    asciigraph.AnsiColor
	line    asciigraph.AnsiColor
}

// ColorsFor returns the chart palette for the light or dark theme.
func ColorsFor(dark bool) Colors {
	if dark {
		return Colors{
			TextHex: "#f0f0f0",
			LineHex: "#818cf8",
			text:    asciigraph.WhiteSmoke,
			line:    asciigraph.MediumSlateBlue,
		}
	}
	return Colors{
		TextHex: "#1a1a1a",
		LineHex: "#4f46e5",
		text:    asciigraph.Black,
		line:    asciigraph.Indigo,
	}
}

// Options controls rendering.
type Options struct {
	Caption string
	Colors  Colors
	Width   int
	Height  int
	// Plain disables ANSI colors.
	Plain bool
}

// Render draws d as an ASCII line chart with the first and last labels
// underneath.
func Render(d Data, opts Options) (string, error) {
	if d.Empty() {
		return "", ErrNoPoints
	}

	series := make([][]float64, 0, len(d.Datasets))
	legends := make([]string, 0, len(d.Datasets))
	for _, ds := range d.Datasets {
		if len(ds.Data) == 0 {
			continue
		}
		if len(d.Labels) > 0 && len(ds.Data) != len(d.Labels) {
			return "", fmt.Errorf("dataset %q has %d points for %d labels", ds.Label, len(ds.Data), len(d.Labels))
		}
		series = append(series, ds.Data)
		legends = append(legends, ds.Label)
	}

	height := opts.Height
	if height <= 0 {
		height = 8
	}

	plotOpts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(4),
	}
	if opts.Width > 0 {
		plotOpts = append(plotOpts, asciigraph.Width(opts.Width))
	}
	if opts.Caption != "" {
		plotOpts = append(plotOpts, asciigraph.Caption(opts.Caption))
	}
	if len(legends) > 1 {
		plotOpts = append(plotOpts, asciigraph.SeriesLegends(legends...))
	}
	if !opts.Plain {
		plotOpts = append(plotOpts,
			asciigraph.SeriesColors(opts.Colors.line),
			asciigraph.AxisColor(opts.Colors.text),
			asciigraph.LabelColor(opts.Colors.text),
			asciigraph.CaptionColor(opts.Colors.text),
		)
	}

	var b strings.Builder
	b.WriteString(asciigraph.PlotMany(series, plotOpts...))

	if axis := labelAxis(d.Labels); axis != "" {
		b.WriteString("\n")
		b.WriteString(axis)
	}

	return b.String(), nil
}

func labelAxis(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return labels[0] + " … " + labels[len(labels)-1]
	}
}
