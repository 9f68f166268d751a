package components

import (
	"math/rand/v2"
	"time"

	"github.com/Veraticus/fxdash/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultQuoteInterval is how long each quote stays on screen.
const DefaultQuoteInterval = 10 * time.Second

// Quotes are the rotating finance quotes.
var Quotes = []string{
	"“An investment in knowledge pays the best interest.” – Benjamin Franklin",
	"“Price is what you pay. Value is what you get.” – Warren Buffett",
	"“It’s not your salary that makes you rich, it’s your spending habits.” – Charles A. Jaffe",
	"“Do not save what is left after spending, but spend what is left after saving.” – Warren Buffett",
	"“Money is only a tool. It will take you wherever you wish, but it will not replace you as the driver.” – Ayn Rand",
}

// QuoteModel shows one quote and swaps it for a random one on every tick.
type QuoteModel struct {
	rng      *rand.Rand
	theme    themes.Theme
	interval time.Duration
	index    int
	seq      int
	width    int
}

// NewQuoteModel creates the quote panel. A nil rng uses a time-seeded source.
func NewQuoteModel(theme themes.Theme, rng *rand.Rand, interval time.Duration) QuoteModel {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if interval <= 0 {
		interval = DefaultQuoteInterval
	}
	return QuoteModel{rng: rng, theme: theme, interval: interval}
}

// Init schedules the first rotation.
func (m QuoteModel) Init() tea.Cmd {
	return m.tick()
}

// Current returns the quote on screen.
func (m QuoteModel) Current() string {
	return Quotes[m.index]
}

// SetWidth sets the rendered width.
func (m QuoteModel) SetWidth(width int) QuoteModel {
	m.width = width
	return m
}

// Update handles messages.
func (m QuoteModel) Update(msg tea.Msg) (QuoteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case QuoteTickMsg:
		// Only the latest scheduled tick rotates, so ticks never pile up.
		if msg.Seq != m.seq {
			return m, nil
		}
		m.index = m.rng.IntN(len(Quotes))
		m.seq++
		return m, m.tick()

	case ThemeChangedMsg:
		m.theme = themes.For(msg.Theme)
	}
	return m, nil
}

func (m QuoteModel) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return QuoteTickMsg{Seq: seq}
	})
}

// View renders the quote.
func (m QuoteModel) View() string {
	style := m.theme.Quote
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(m.Current())
}
