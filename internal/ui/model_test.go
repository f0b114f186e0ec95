package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/fx"
	"github.com/olivier-w/folio/internal/geom"
)

var testEpoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, w, h int) Model {
	t.Helper()
	p, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	m := New(config.Default(), p)
	m.now = func() time.Time { return testEpoch }
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

// runFrames delivers frame ticks 16ms apart until the loop stops.
func runFrames(t *testing.T, m Model) Model {
	t.Helper()
	at := testEpoch
	for i := 0; m.frames.Active(); i++ {
		if i > 1000 {
			t.Fatal("frame loop did not settle")
		}
		at = at.Add(16 * time.Millisecond)
		m, _ = m.handleMsg(frameMsg{gen: m.frames.Gen(), at: at})
	}
	return m
}

func docTop(t *testing.T, m Model, id string) float64 {
	t.Helper()
	r, ok := m.layout.DocRect(id)
	if !ok {
		t.Fatalf("%s not placed", id)
	}
	return r.Top
}

func center(r geom.Rect) tea.MouseMsg {
	c := r.Center()
	return tea.MouseMsg{X: int(c.X), Y: int(c.Y)}
}

func TestResizePlacesEverySection(t *testing.T) {
	m := newTestModel(t, 120, 40)
	for _, id := range m.page.SectionIDs() {
		if _, ok := m.layout.DocRect(id); !ok {
			t.Fatalf("expected section %q to be placed", id)
		}
	}
	if m.Active() != "home" {
		t.Fatalf("expected home active at top, got %q", m.Active())
	}
	if got := m.navRows(); got != 3 {
		t.Fatalf("expected wide nav fallback 3, got %d", got)
	}
}

func TestNarrowNavUsesBreakpointFallback(t *testing.T) {
	m := newTestModel(t, 70, 30)
	if got := m.navRows(); got != 1 {
		t.Fatalf("expected narrow nav height 1, got %d", got)
	}
	if len(m.pills) != 0 {
		t.Fatal("expected no pills in compact nav")
	}
}

func TestNavMeasureIgnoresStaleWidth(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m.nav.Measure(7, 120)
	next, _ := m.handleMsg(navMeasureMsg{width: 90})
	if next.nav.Get() != 7 {
		t.Fatalf("expected stale measurement ignored, got %v", next.nav.Get())
	}
	next, _ = m.handleMsg(navMeasureMsg{width: 120})
	if got := next.nav.Get(); got != float64(lipgloss.Height(next.navView)) {
		t.Fatalf("expected measured nav height %d, got %v", lipgloss.Height(next.navView), got)
	}
}

func TestViewFillsTerminal(t *testing.T) {
	m := newTestModel(t, 120, 40)
	if got := lipgloss.Height(m.View()); got != 40 {
		t.Fatalf("expected view height 40, got %d", got)
	}
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 70, Height: 20})
	if got := lipgloss.Height(m.View()); got != 20 {
		t.Fatalf("expected view height 20 after resize, got %d", got)
	}
}

func TestSectionKeyAnimatesWithOptimisticActive(t *testing.T) {
	m := newTestModel(t, 120, 40)
	want := docTop(t, m, "experience") - m.cfg.Scroll.Padding

	m, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	if cmd == nil {
		t.Fatal("expected frame command")
	}
	if !m.orch.Animating() {
		t.Fatal("expected animated scroll")
	}
	if m.Active() != "experience" {
		t.Fatalf("expected optimistic active experience, got %q", m.Active())
	}

	m = runFrames(t, m)
	if m.orch.Animating() {
		t.Fatal("expected animation to finish")
	}
	if got := m.ScrollY(); got != want {
		t.Fatalf("expected to land at %v, got %v", want, got)
	}
	if m.Active() != "experience" {
		t.Fatalf("expected experience active on arrival, got %q", m.Active())
	}
}

func TestResolverHeldDuringAnimation(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	m, _ = m.handleMsg(frameMsg{gen: m.frames.Gen(), at: testEpoch.Add(16 * time.Millisecond)})
	if !m.orch.Animating() {
		t.Fatal("expected animation in flight")
	}
	if m.Active() != "contact" {
		t.Fatalf("expected contact to stay active mid-flight, got %q", m.Active())
	}
}

func TestWheelCancelsProgrammaticScroll(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m, _ = m.handleMsg(frameMsg{gen: m.frames.Gen(), at: testEpoch.Add(16 * time.Millisecond)})
	before := m.ScrollY()

	m, _ = m.handleMsg(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.orch.Animating() {
		t.Fatal("expected wheel to cancel the animation")
	}
	if got := m.ScrollY(); got != before+float64(m.cfg.Scroll.WheelStep) {
		t.Fatalf("expected wheel step from %v, got %v", before, got)
	}
}

func TestStaleFrameIgnored(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	gen := m.frames.Gen()
	m.frames.Cancel()
	next, cmd := m.handleMsg(frameMsg{gen: gen, at: testEpoch.Add(16 * time.Millisecond)})
	if cmd != nil {
		t.Fatal("expected no command for stale frame")
	}
	if next.ScrollY() != 0 {
		t.Fatalf("expected stale frame not to move the page, got %v", next.ScrollY())
	}
}

func TestReducedMotionJumpsAndDisposesEffects(t *testing.T) {
	m := newTestModel(t, 120, 40)
	if m.hub.Len() == 0 {
		t.Fatal("expected effects attached in full motion")
	}

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if m.motion != MotionReduced {
		t.Fatalf("expected reduced motion, got %v", m.motion)
	}
	if m.hub.Len() != 0 || len(m.handles) != 0 {
		t.Fatalf("expected effects disposed, hub has %d", m.hub.Len())
	}

	want := docTop(t, m, "skills") - m.cfg.Scroll.Padding
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	if m.orch.Animating() {
		t.Fatal("expected an immediate jump")
	}
	if got := m.ScrollY(); got != min(want, m.layout.MaxScroll()) {
		t.Fatalf("expected jump to %v, got %v", want, got)
	}
}

func TestNarrowTerminalDisposesEffects(t *testing.T) {
	m := newTestModel(t, 120, 40)
	exp := m.page.ExperienceIDs()[0]
	handle := m.handles[exp]
	if handle == nil {
		t.Fatal("expected tilt attached to experience card")
	}
	tilt := m.tilts[exp]

	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 50, Height: 30})
	if m.hub.Has(exp) || len(m.tilts) != 0 {
		t.Fatal("expected effects disposed below min width")
	}
	if tilt.Running() {
		t.Fatal("expected disposed tilt to stay idle")
	}
}

func TestPointerOverCardStartsTilt(t *testing.T) {
	m := newTestModel(t, 120, 40)
	exp := m.page.ExperienceIDs()[0]
	m.layout.SetScroll(docTop(t, m, exp) - 2)
	m.refresh()

	msg := center(m.layout.RectOf(exp))
	msg.X += 10
	msg.Action = tea.MouseActionMotion
	m, cmd := m.handleMsg(msg)
	if !m.hub.Hovered(exp) {
		t.Fatal("expected card hovered")
	}
	if cmd == nil || !m.frames.Active() {
		t.Fatal("expected frame loop to start")
	}
	m, _ = m.handleMsg(frameMsg{gen: m.frames.Gen(), at: testEpoch.Add(16 * time.Millisecond)})
	if got := m.tiltState(exp).TiltY; got >= 0 {
		t.Fatalf("expected pointer right of center to tilt negative Y, got %v", got)
	}

	// A second motion event must not schedule a second tick.
	msg.X++
	if _, cmd := m.handleMsg(msg); cmd != nil {
		t.Fatal("expected no extra tick while the loop runs")
	}
}

func TestCTAClickPulsesAndScrolls(t *testing.T) {
	m := newTestModel(t, 120, 40)
	msg := center(m.layout.RectOf(ctaContact))
	msg.Action = tea.MouseActionPress
	msg.Button = tea.MouseButtonLeft

	m, cmd := m.handleMsg(msg)
	if cmd == nil {
		t.Fatal("expected frame command after click")
	}
	if !m.magnetState(ctaContact).Pulsing {
		t.Fatal("expected magnetic pulse on press")
	}
	if id, _ := m.orch.Target(); id != "contact" {
		t.Fatalf("expected scroll to contact, got %q", id)
	}
}

func TestEnterOnHeroActivatesPrimaryButton(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected frame command")
	}
	if !m.magnetState(ctaWork).Pulsing {
		t.Fatal("expected keyboard activation to pulse")
	}
	if id, _ := m.orch.Target(); id != "experience" {
		t.Fatalf("expected scroll to experience, got %q", id)
	}
}

func TestPillClickScrolls(t *testing.T) {
	m := newTestModel(t, 120, 40)
	var about pillRect
	for _, p := range m.pills {
		if p.id == "about" {
			about = p
		}
	}
	m, _ = m.handleMsg(tea.MouseMsg{X: about.x0 + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if id, _ := m.orch.Target(); id != "about" {
		t.Fatalf("expected scroll to about, got %q", id)
	}
}

func TestChipClickActivatesCard(t *testing.T) {
	m := newTestModel(t, 120, 40)
	last := m.page.ExperienceIDs()[len(m.page.Experience)-1]
	m.layout.SetScroll(docTop(t, m, "experience"))
	m.refresh()

	msg := center(m.layout.RectOf(chipPrefix + last))
	msg.Action = tea.MouseActionPress
	msg.Button = tea.MouseButtonLeft
	m, _ = m.handleMsg(msg)
	if m.cards.Active() != last {
		t.Fatalf("expected %q active, got %q", last, m.cards.Active())
	}
	if id, _ := m.orch.Target(); id != last {
		t.Fatalf("expected scroll to %q, got %q", last, id)
	}
}

func TestTabCyclesSections(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyTab})
	if id, _ := m.orch.Target(); id != "about" {
		t.Fatalf("expected tab to target about, got %q", id)
	}
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyShiftTab})
	if id, _ := m.orch.Target(); id != "home" {
		t.Fatalf("expected shift+tab back to home, got %q", id)
	}
}

func TestMenuSelectionScrolls(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.menuOpen {
		t.Fatal("expected menu open")
	}
	if !strings.Contains(m.View(), "Jump to") {
		t.Fatal("expected menu view")
	}
	m, _ = m.handleMsg(MenuSelectedMsg{ID: "skills"})
	if m.menuOpen {
		t.Fatal("expected menu closed")
	}
	if id, _ := m.orch.Target(); id != "skills" {
		t.Fatalf("expected scroll to skills, got %q", id)
	}
}

func TestContactFormSubmitFlow(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if !m.form.focused {
		t.Fatal("expected form focused")
	}

	m, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil || m.notice == "" {
		t.Fatal("expected validation notice")
	}
	if len(m.form.errs) == 0 {
		t.Fatal("expected field errors")
	}

	m.form.inputs[fieldName].SetValue("Sam")
	m.form.inputs[fieldEmail].SetValue("sam@example.com")
	m.form.message.SetValue("Hello there, let's build something.")
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.notice, "not sent") {
		t.Fatalf("expected success notice, got %q", m.notice)
	}
	if m.form.focused || m.form.inputs[fieldName].Value() != "" {
		t.Fatal("expected form reset and blurred after success")
	}

	m, _ = m.handleMsg(noticeExpiredMsg{seq: m.noticeSeq - 1})
	if m.notice == "" {
		t.Fatal("expected stale expiry to keep the notice")
	}
	m, _ = m.handleMsg(noticeExpiredMsg{seq: m.noticeSeq})
	if m.notice != "" {
		t.Fatal("expected notice cleared")
	}
}

func TestFormEscapeReturnsToPage(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.quitting {
		t.Fatal("expected q to be typed into the form")
	}
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if m.form.focused {
		t.Fatal("expected esc to leave the form")
	}
}

func TestQuitDisposesEverything(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !m.quitting {
		t.Fatal("expected quit")
	}
	if m.hub.Len() != 0 || m.frames.Active() || m.particleLoop.Active() {
		t.Fatal("expected effects disposed and loops cancelled")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestParticlesStopWhenHeroLeaves(t *testing.T) {
	m := newTestModel(t, 120, 40)
	if !m.particleLoop.Active() {
		t.Fatal("expected particle loop while hero is visible")
	}
	m.layout.SetScroll(docTop(t, m, "skills"))
	m.refresh()
	m, cmd := m.handleMsg(particleMsg{gen: m.particleLoop.Gen(), at: testEpoch.Add(70 * time.Millisecond)})
	if cmd != nil || m.particleLoop.Active() {
		t.Fatal("expected particle loop to stop off screen")
	}
}

func TestProgrammaticScrollKeepsTargetAfterLanding(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = runFrames(t, m)
	if m.orch.Animating() {
		t.Fatal("expected animation to finish")
	}
	if m.Active() != "skills" {
		t.Fatalf("expected skills active after landing, got %q", m.Active())
	}

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyTab})
	if id, _ := m.orch.Target(); id != "contact" {
		t.Fatalf("expected tab from skills to target contact, got %q", id)
	}
}

func TestUserScrollReleasesLandedSection(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = runFrames(t, m)
	if !m.pinned {
		t.Fatal("expected landed section to hold")
	}

	m, _ = m.handleMsg(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if m.pinned {
		t.Fatal("expected wheel to release the landed section")
	}

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = runFrames(t, m)
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 110, Height: 40})
	if m.pinned {
		t.Fatal("expected resize to release the landed section")
	}
}

func TestReducedMotionJumpKeepsTarget(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	if m.Active() != "skills" {
		t.Fatalf("expected skills active after jump, got %q", m.Active())
	}
	m = runFrames(t, m)
	if m.Active() != "skills" {
		t.Fatalf("expected skills to stay active, got %q", m.Active())
	}
}

func TestFrameMeterResetsWhenLoopIdles(t *testing.T) {
	m := newTestModel(t, 120, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = runFrames(t, m)
	if got := m.meter.FPS(); got != 0 {
		t.Fatalf("expected meter cleared once idle, got %v", got)
	}

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	at := testEpoch.Add(time.Minute)
	m, _ = m.handleMsg(frameMsg{gen: m.frames.Gen(), at: at})
	m, _ = m.handleMsg(frameMsg{gen: m.frames.Gen(), at: at.Add(16 * time.Millisecond)})
	if got := m.meter.FPS(); got < 30 {
		t.Fatalf("expected idle gap excluded from fps, got %v", got)
	}
}

func TestHeroCubeNeedsRoomBesideText(t *testing.T) {
	m := newTestModel(t, 160, 40)
	r, ok := m.layout.DocRect(cubeID)
	if !ok {
		t.Fatal("expected cube placed on a wide terminal")
	}
	home, _ := m.layout.DocRect("home")
	if r.Right() > home.Right() || r.Bottom() > home.Bottom() {
		t.Fatalf("expected cube inside the hero, got %+v in %+v", r, home)
	}
	if r.Left < float64(m.width)/2 {
		t.Fatalf("expected cube right of center, got left %v", r.Left)
	}

	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 80, Height: 40})
	if _, ok := m.layout.DocRect(cubeID); ok {
		t.Fatal("expected no cube when the hero text fills the width")
	}
}

func TestParticleTicksAdvanceCube(t *testing.T) {
	m := newTestModel(t, 160, 40)
	if m.cube.Phase() != fx.CubeScrambled {
		t.Fatalf("expected scrambled cube, got %v", m.cube.Phase())
	}
	at := testEpoch
	for range 20 {
		at = at.Add(70 * time.Millisecond)
		m, _ = m.handleMsg(particleMsg{gen: m.particleLoop.Gen(), at: at})
	}
	if m.cube.Phase() != fx.CubeSolving {
		t.Fatalf("expected solving after a second of ticks, got %v", m.cube.Phase())
	}
}

func TestReducedMotionSolvesCube(t *testing.T) {
	m := newTestModel(t, 160, 40)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if m.cube.Phase() != fx.CubeSolved {
		t.Fatalf("expected solved cube under reduced motion, got %v", m.cube.Phase())
	}

	cfg := config.Default()
	cfg.Motion.Reduced = true
	p, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	if got := New(cfg, p).cube.Phase(); got != fx.CubeSolved {
		t.Fatalf("expected cube solved from the start, got %v", got)
	}
}

func TestLinksRenderedAsHyperlinks(t *testing.T) {
	m := newTestModel(t, 120, 40)
	doc := strings.Join(m.docLines, "\n")
	for _, ch := range m.page.Contact.Channels {
		if ch.Href != "" && !strings.Contains(doc, ch.Href) {
			t.Fatalf("expected channel %q linked to %q", ch.Label, ch.Href)
		}
	}
	exp := m.page.Experience[0]
	if !strings.Contains(doc, exp.Link) || !strings.Contains(doc, "↗ "+linkLabel(exp.Link)) {
		t.Fatalf("expected experience link %q on its card", exp.Link)
	}
}
