package components

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Veraticus/fxdash/internal/preferences"
	tuitest "github.com/Veraticus/fxdash/internal/tui/testing"
	"github.com/Veraticus/fxdash/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_RotatesOnLatestTick(t *testing.T) {
	m := NewQuoteModel(themes.Light, rand.New(rand.NewPCG(1, 2)), time.Millisecond)
	assert.Equal(t, Quotes[0], m.Current())

	tick := run[QuoteTickMsg](t, m.Init())
	assert.Equal(t, 0, tick.Seq)

	m, next := m.Update(tick)
	require.NotNil(t, next)
	assert.Contains(t, Quotes, m.Current())

	// A duplicate of the consumed tick is ignored and schedules nothing.
	before := m.Current()
	m, dup := m.Update(tick)
	assert.Nil(t, dup)
	assert.Equal(t, before, m.Current())

	assert.Equal(t, 1, run[QuoteTickMsg](t, next).Seq)
}

func TestQuote_View(t *testing.T) {
	m := NewQuoteModel(themes.Dark, nil, 0)
	assert.Contains(t, tuitest.Plain(m.View()), "Benjamin Franklin")
}

func TestHeader_IconFollowsTheme(t *testing.T) {
	m := NewHeaderModel(preferences.ThemeLight, "ctrl+t")
	assert.Equal(t, "🌙", m.Icon())
	assert.Contains(t, tuitest.Plain(m.View()), "Currency Converter")
	assert.Contains(t, tuitest.Plain(m.View()), "ctrl+t")

	m, _ = m.Update(ThemeChangedMsg{Theme: preferences.ThemeDark})
	assert.Equal(t, "☀️", m.Icon())
}
