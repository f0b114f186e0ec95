package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/fx"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)

// theme holds the configured accent colors in both forms the renderer
// needs: lipgloss colors for styles and RGB for blending.
type theme struct {
	accent, accentAlt, text, muted, shadow fx.RGB
}

func newTheme(c config.ThemeConfig) theme {
	return theme{
		accent:    hexOr(c.Accent, "#34d399"),
		accentAlt: hexOr(c.AccentAlt, "#14b8a6"),
		text:      hexOr(c.Text, "#e5e7eb"),
		muted:     hexOr(c.Muted, "#6b7280"),
		shadow:    hexOr(c.Shadow, "#1f2937"),
	}
}

func hexOr(s, fallback string) fx.RGB {
	if c, err := fx.ParseHex(s); err == nil {
		return c
	}
	return fx.MustHex(fallback)
}

func color(c fx.RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

func (t theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color(t.accent))
}

func (t theme) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(t.muted))
}

func (t theme) pill(active bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return s.Bold(true).Foreground(lipgloss.Color("#000000")).Background(color(t.accent))
	}
	return s.Foreground(color(t.text))
}
