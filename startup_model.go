package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/ui"
)

type startupPhase uint8

const (
	phaseIntro startupPhase = iota
	phaseFailed
)

const (
	logoText     = "folio"
	introFrame   = time.Second / 30
	introStep    = 0.08
	introBarWide = 40
)

type startupResolvedMsg struct {
	model   ui.Model
	reduced bool
	err     error
}

type introTickMsg struct{}

type startupModel struct {
	path    string
	phase   startupPhase
	err     error
	width   int
	height  int
	scale   float64
	pending *ui.Model

	spinner  spinner.Model
	progress progress.Model
}

func newStartupModel(path string) startupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	p := progress.New(
		progress.WithScaledGradient("#34d399", "#14b8a6"),
		progress.WithoutPercentage(),
	)
	p.Width = introBarWide

	return startupModel{
		path:     path,
		phase:    phaseIntro,
		spinner:  s,
		progress: p,
	}
}

func (m startupModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, introTick(), loadPortfolioCmd(m.path))
}

func introTick() tea.Cmd {
	return tea.Tick(introFrame, func(time.Time) tea.Msg { return introTickMsg{} })
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-8, 10), introBarWide)
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseIntro {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case introTickMsg:
		if m.phase != phaseIntro {
			return m, nil
		}
		m.scale = min(m.scale+introStep, 1)
		if m.scale < 1 {
			return m, introTick()
		}
		if m.pending != nil {
			return m.enter(*m.pending)
		}
		return m, nil

	case startupResolvedMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.err = msg.err
			return m, nil
		}
		if msg.reduced || m.scale >= 1 {
			return m.enter(msg.model)
		}
		m.pending = &msg.model
		return m, nil

	case tea.KeyMsg:
		if m.phase == phaseFailed || startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}
	return m, nil
}

// enter hands the program over to the page model, replaying the last
// known terminal size.
func (m startupModel) enter(page ui.Model) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{page.Init()}
	if m.width > 0 || m.height > 0 {
		w, h := m.width, m.height
		cmds = append(cmds, func() tea.Msg {
			return tea.WindowSizeMsg{Width: w, Height: h}
		})
	}
	return page, tea.Batch(cmds...)
}

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString("\n\n  ")
	b.WriteString(startupHeaderStyle.Render(scaledLogo(m.scale)))
	b.WriteString("\n\n  ")
	b.WriteString(m.progress.ViewAs(m.scale))
	b.WriteString("\n\n  ")

	if m.phase == phaseFailed {
		b.WriteString(startupErrorStyle.Render(m.err.Error()))
		b.WriteString("\n\n  ")
		b.WriteString(startupHelpStyle.Render("press any key to exit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(startupStatusStyle.Render("Loading portfolio..."))
	b.WriteString("\n\n  ")
	b.WriteString(startupHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

// scaledLogo grows the wordmark from its first letter to full size with
// letter spacing that closes up as scale reaches 1.
func scaledLogo(scale float64) string {
	scale = min(max(scale, 0), 1)
	runes := []rune(logoText)
	n := max(int(scale*float64(len(runes))+0.5), 1)
	gap := strings.Repeat(" ", int((1-scale)*3+0.5))
	parts := make([]string, n)
	for i := range n {
		parts[i] = string(runes[i])
	}
	return strings.Join(parts, gap)
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#34d399"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	startupErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)
