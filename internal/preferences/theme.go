// Package preferences implements the persisted light/dark theme.
package preferences

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the UI color scheme.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeKey is the storage key holding the theme.
const ThemeKey = "theme"

// ParseTheme parses a stored value. Anything other than light or dark is rejected.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return ThemeLight, false
	}
}

// Dark reports whether t is the dark theme.
func (t Theme) Dark() bool {
	return t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Dark() {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	return string(t)
}

// KV is the persistence the theme store needs.
type KV interface {
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

// ApplyFunc publishes the theme to the presentation layer.
type ApplyFunc func(Theme)

// ApplyLipgloss sets lipgloss' global dark-background flag, which adaptive
// colors read when rendering.
func ApplyLipgloss(t Theme) {
	lipgloss.SetHasDarkBackground(t.Dark())
}

// Option configures a ThemeStore.
type Option func(*ThemeStore)

// WithApply replaces the presentation hook.
func WithApply(fn ApplyFunc) Option {
	return func(s *ThemeStore) {
		s.apply = fn
	}
}

// ThemeStore holds the process-wide theme.
type ThemeStore struct {
	kv      KV
	apply   ApplyFunc
	current Theme
	mu      sync.Mutex
}

// NewThemeStore reads the persisted theme, defaulting to light when the
// value is absent, unreadable or corrupt, and applies it. kv may be nil for
// an in-memory store.
func NewThemeStore(ctx context.Context, kv KV, opts ...Option) *ThemeStore {
	s := &ThemeStore{
		kv:      kv,
		apply:   ApplyLipgloss,
		current: ThemeLight,
	}
	for _, opt := range opts {
		opt(s)
	}

	if kv != nil {
		raw, err := kv.GetPreference(ctx, ThemeKey)
		switch {
		case err != nil:
			slog.Debug("No stored theme, using default", "error", err)
		default:
			theme, ok := ParseTheme(raw)
			if !ok {
				slog.Warn("Ignoring corrupt theme preference", "value", raw)
			}
			s.current = theme
		}
	}

	s.publish(s.current)
	return s
}

// Get returns the current theme.
func (s *ThemeStore) Get() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Toggle flips the theme, persists it and applies it. A persistence failure
// is logged and does not undo the toggle.
func (s *ThemeStore) Toggle(ctx context.Context) Theme {
	s.mu.Lock()
	next := s.current.Toggle()
	s.current = next
	s.mu.Unlock()

	s.persist(ctx, next)
	s.publish(next)
	return next
}

// Set selects t explicitly.
func (s *ThemeStore) Set(ctx context.Context, t Theme) {
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	s.persist(ctx, t)
	s.publish(t)
}

func (s *ThemeStore) persist(ctx context.Context, t Theme) {
	if s.kv == nil {
		return
	}
	if err := s.kv.SetPreference(ctx, ThemeKey, t.String()); err != nil {
		slog.Warn("Failed to persist theme", "theme", t.String(), "error", err)
	}
}

func (s *ThemeStore) publish(t Theme) {
	if s.apply != nil {
		s.apply(t)
	}
}
