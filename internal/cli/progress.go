package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/fxdash/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Progress reports popular-rate fetches as they settle.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a progress bar for total fetches written to w.
func NewProgress(w io.Writer, total int, description string) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return &Progress{bar: bar}
}

// Settled advances the bar by one pair. It satisfies rates.SettledFunc and
// may be called from several goroutines.
func (p *Progress) Settled(r model.PairRate) {
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
	if r.Err != nil {
		slog.Debug("Popular rate failed", "pair", r.Pair.String(), "error", r.Err)
	}
}

// Finish completes the bar even if some pairs never reported.
func (p *Progress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
