package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg drives pointer effects, springs and programmatic scrolling.
type frameMsg struct {
	gen uint64
	at  time.Time
}

// particleMsg advances the hero background at its own, slower rate.
type particleMsg struct {
	gen uint64
	at  time.Time
}

type navMeasureMsg struct{ width int }

type noticeExpiredMsg struct{ seq int }

func frameCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

func particleCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return particleMsg{gen: gen, at: t}
	})
}

func navMeasureCmd(d time.Duration, width int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return navMeasureMsg{width: width}
	})
}

func noticeCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
