package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/folio/internal/fx"
	"github.com/olivier-w/folio/internal/interact"
)

// renderRail draws the vertical timeline rail. progress in [0,1] is the
// filled fraction from the top.
func renderRail(progress float64, height int, fill, empty fx.RGB) []string {
	if height < 1 {
		return nil
	}
	progress = math.Max(0, math.Min(1, progress))
	filled := int(math.Round(progress * float64(height)))

	on := lipgloss.NewStyle().Foreground(color(fill))
	off := lipgloss.NewStyle().Foreground(color(empty))
	rows := make([]string, height)
	for i := range height {
		switch {
		case i == filled-1:
			rows[i] = on.Render("●")
		case i < filled:
			rows[i] = on.Render("┃")
		default:
			rows[i] = off.Render("│")
		}
	}
	return rows
}

// edgeShade returns how lit an edge is for a tilt component in [-1,1].
func edgeShade(v float64) float64 {
	return 0.5 + 0.5*math.Max(-1, math.Min(1, v))
}

// tiltCard renders body inside a rounded border whose edges brighten toward
// the pointer, with a drop shadow row that shifts against the tilt. The
// result is width wide and one row taller than the bordered box.
func tiltCard(body string, width int, st interact.TiltState, maxTilt float64, accentA, accentB, base, shadow fx.RGB) string {
	if maxTilt <= 0 {
		maxTilt = 1
	}
	tx := st.TiltX / maxTilt
	ty := st.TiltY / maxTilt
	lit := fx.Lerp(accentA, accentB, st.GlowX/100)

	edge := func(v float64) lipgloss.Color { return color(fx.Lerp(base, lit, edgeShade(v))) }
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderTopForeground(edge(-tx)).
		BorderBottomForeground(edge(tx)).
		BorderLeftForeground(edge(ty)).
		BorderRightForeground(edge(-ty)).
		Padding(0, 1).
		Width(max(width-2, 1))

	card := box.Render(body)

	shift := int(math.Round(st.ShadowX / 18))
	shadowW := max(lipgloss.Width(card)-2, 0)
	pad := max(1+shift, 0)
	row := strings.Repeat(" ", pad) + lipgloss.NewStyle().Foreground(color(shadow)).Render(strings.Repeat("▀", shadowW))
	return card + "\n" + ansi.Truncate(row, width, "")
}

// glowTitle colors a card title along the accent pair, weighted toward the
// pointer's glow position while the card is hovered.
func glowTitle(s string, st interact.TiltState, accentA, accentB fx.RGB) string {
	if !st.Active {
		return lipgloss.NewStyle().Bold(true).Foreground(color(accentA)).Render(s)
	}
	t := st.GlowX / 100
	return lipgloss.NewStyle().Bold(true).Render(fx.Gradient(s, fx.Lerp(accentA, accentB, t), fx.Lerp(accentB, accentA, t)))
}

// hyperlink wraps text in an OSC 8 link to href. Terminals without link
// support show text unchanged.
func hyperlink(text, href string) string {
	if href == "" {
		return text
	}
	return ansi.SetHyperlink(href) + text + ansi.ResetHyperlink()
}

// linkLabel is href without its scheme, for display.
func linkLabel(href string) string {
	for _, scheme := range []string{"https://", "http://", "mailto:"} {
		href = strings.TrimPrefix(href, scheme)
	}
	return strings.TrimSuffix(href, "/")
}

// button renders a call to action. Pulsing buttons invert for the press
// animation.
func button(label string, primary, pulsing bool, th theme) string {
	s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Bold(true)
	if primary {
		s = s.BorderForeground(color(th.accent)).Foreground(color(th.accent))
	} else {
		s = s.BorderForeground(color(th.muted)).Foreground(color(th.text))
	}
	if pulsing {
		s = s.Foreground(lipgloss.Color("#000000")).Background(color(th.accent))
	}
	return s.Render(label)
}

// offsetBlock shifts block by (dx, dy) cells inside a frame that reserves
// reach cells on every side, so neighbours do not move.
func offsetBlock(block string, dx, dy, reach int) string {
	dx = max(-reach, min(reach, dx))
	dy = max(-reach, min(reach, dy))
	return lipgloss.NewStyle().
		MarginLeft(reach + dx).
		MarginRight(reach - dx).
		MarginTop(reach + dy).
		MarginBottom(reach - dy).
		Render(block)
}

// overlay writes fg onto bg starting at column x, keeping bg on both sides.
func overlay(bg, fg string, x int) string {
	x = max(x, 0)
	w := lipgloss.Width(fg)
	left := ansi.Truncate(bg, x, "")
	if pad := x - lipgloss.Width(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(bg, x+w, "")
	return left + fg + right
}

// padLines makes block exactly n lines, dropping or adding blank lines at
// the bottom.
func padLines(lines []string, n int) []string {
	if len(lines) >= n {
		return lines[:n]
	}
	out := make([]string, n)
	copy(out, lines)
	return out
}
