package ui

import (
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/fx"
	"github.com/olivier-w/folio/internal/geom"
	"github.com/olivier-w/folio/internal/interact"
	"github.com/olivier-w/folio/internal/scroll"
)

const noticeDuration = 5 * time.Second

// Model is the Bubbletea model for the portfolio page.
type Model struct {
	cfg  *config.Config
	page *content.Portfolio
	th   theme
	now  func() time.Time

	width    int
	height   int
	mounted  bool
	quitting bool
	motion   MotionMode
	showFPS  bool

	layout   *geom.Layout
	nav      *scroll.NavHeight
	sections *scroll.Resolver
	cards    *scroll.Resolver
	orch     *scroll.Orchestrator

	hub     *interact.Hub
	handles map[string]*interact.Handle
	tilts   map[string]*interact.Tilt
	magnets map[string]*interact.Magnetic

	frames       *interact.FrameLoop
	particleLoop *interact.FrameLoop
	lastFrame    time.Time
	lastParticle time.Time
	meter        *fx.FrameMeter
	particles    *fx.Particles
	cube         *fx.Cube // nil when disabled

	// pinned keeps the section picked by a programmatic scroll active
	// after it lands, until the user scrolls or the terminal resizes.
	pinned bool

	navX      fx.Spring
	navW      fx.Spring
	rail      fx.Spring
	navPlaced bool

	menu     MenuModel
	menuOpen bool
	form     contactForm

	notice    string
	noticeSeq int

	// render caches, rebuilt by refresh
	navView  string
	pills    []pillRect
	docLines []string
	timeline span
}

// span is a vertical range of document rows.
type span struct {
	top, height int
}

// New creates the page model.
func New(cfg *config.Config, p *content.Portfolio) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	layout := geom.NewLayout()

	bps := make([]scroll.Breakpoint, len(cfg.Nav.Breakpoints))
	for i, bp := range cfg.Nav.Breakpoints {
		bps[i] = scroll.Breakpoint{MaxWidth: bp.MaxWidth, Height: bp.Height}
	}
	nav := scroll.NewNavHeight(cfg.Nav.FallbackHeight, bps...)

	strategy, err := scroll.ParseStrategy(cfg.Scroll.Strategy)
	if err != nil {
		log.Printf("scroll: %v, using %s", err, scroll.Intersection)
	}
	ropts := scroll.Options{
		Strategy:     strategy,
		MarginTop:    cfg.Scroll.MarginTop,
		MarginBottom: cfg.Scroll.MarginBottom,
		TopThreshold: cfg.Scroll.TopThreshold,
		Lookahead:    cfg.Scroll.Lookahead,
		PinLast:      cfg.Scroll.PinLast,
	}
	sections := scroll.NewResolver(p.SectionIDs(), ropts)
	ropts.PinLast = false
	cards := scroll.NewResolver(p.ExperienceIDs(), ropts)

	orch := scroll.NewOrchestrator(layout, nav, sections, scroll.OrchestratorOptions{
		Padding:       cfg.Scroll.Padding,
		NarrowPadding: cfg.Scroll.NarrowPadding,
		NarrowWidth:   cfg.Scroll.NarrowWidth,
		Duration:      cfg.Derived.ScrollDuration,
	})

	th := newTheme(cfg.Theme)
	motion := MotionFull
	if cfg.Motion.Reduced {
		motion = MotionReduced
	}

	m := Model{
		cfg:          cfg,
		page:         p,
		th:           th,
		now:          time.Now,
		motion:       motion,
		layout:       layout,
		nav:          nav,
		sections:     sections,
		cards:        cards,
		orch:         orch,
		hub:          interact.NewHub(layout),
		handles:      make(map[string]*interact.Handle),
		tilts:        make(map[string]*interact.Tilt),
		magnets:      make(map[string]*interact.Magnetic),
		frames:       &interact.FrameLoop{},
		particleLoop: &interact.FrameLoop{},
		meter:        fx.NewFrameMeter(30),
		particles: fx.NewParticles(fx.ParticleOptions{
			Count:       cfg.Particles.Count,
			Speed:       cfg.Particles.Speed,
			HoverFactor: cfg.Particles.HoverFactor,
			Seed:        cfg.Particles.Seed,
			Near:        th.accent,
			Far:         th.shadow,
		}),
		navX:  fx.NewSpring(cfg.Motion.FPS, cfg.Timeline.Stiffness, cfg.Timeline.Damping),
		navW:  fx.NewSpring(cfg.Motion.FPS, cfg.Timeline.Stiffness, cfg.Timeline.Damping),
		rail:  fx.NewSpring(cfg.Motion.FPS, cfg.Timeline.Stiffness, cfg.Timeline.Damping),
		menu:  NewMenu(p),
		form:  newContactForm(),
	}
	if cfg.Cube.Enabled {
		m.cube = fx.NewCube(cfg.Cube.Seed)
		if motion == MotionReduced {
			m.cube.Solve()
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.page.Owner.Name + " · folio")
}

// Active returns the active section id.
func (m Model) Active() string {
	return m.sections.Active()
}

// ScrollY returns the current document offset.
func (m Model) ScrollY() float64 {
	return m.layout.ScrollY()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height)

	case navMeasureMsg:
		if msg.width != m.width {
			return m, nil
		}
		m.nav.Measure(float64(lipgloss.Height(m.navView)), m.width)
		m.refresh()
		m.updateResolvers()
		return m, m.ensureFrames()

	case tea.KeyMsg:
		if m.menuOpen {
			var cmd tea.Cmd
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}
		if m.form.focused {
			return m.handleFormKey(msg)
		}
		return m.handleKey(msg)

	case MenuSelectedMsg:
		m.menuOpen = false
		return m.scrollTo(msg.ID)

	case MenuCancelledMsg:
		m.menuOpen = false
		return m, nil

	case tea.MouseMsg:
		if m.menuOpen {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.BlurMsg:
		m.hub.PointerLeave(m.now())
		m.particles.SetPointer(0, 0)
		m.refresh()
		return m, m.ensureFrames()

	case frameMsg:
		if !m.frames.Valid(msg.gen) {
			return m, nil
		}
		m.step(msg.at)
		if m.needsFrames() {
			return m, frameCmd(m.cfg.Derived.Frame, msg.gen)
		}
		m.frames.Stop()
		m.meter.Reset()
		m.lastFrame = time.Time{}
		return m, nil

	case particleMsg:
		if !m.particleLoop.Valid(msg.gen) {
			return m, nil
		}
		dt := m.cfg.Derived.ParticleFrame
		if !m.lastParticle.IsZero() && msg.at.After(m.lastParticle) {
			dt = msg.at.Sub(m.lastParticle)
		}
		m.lastParticle = msg.at
		m.particles.Update(dt.Seconds(), m.width, m.heroHeight())
		if m.cube != nil {
			w, h := m.cube.Size()
			m.cube.Update(dt.Seconds(), w, h)
		}
		m.refresh()
		if m.particlesWanted() {
			return m, particleCmd(m.cfg.Derived.ParticleFrame, msg.gen)
		}
		m.particleLoop.Stop()
		m.lastParticle = time.Time{}
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	if m.form.focused {
		var cmd tea.Cmd
		m.form, cmd, _ = m.form.Update(msg)
		m.refresh()
		return m, cmd
	}
	if m.menuOpen {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) resize(w, h int) (Model, tea.Cmd) {
	m.width, m.height = w, h
	m.form.setWidth(m.contentWidth() - 4)
	m.menu.SetSize(w, h)
	first := !m.mounted
	m.mounted = true
	m.pinned = false

	// The rendered header is measured once layout settles; until then the
	// width-based fallback applies.
	m.nav.Measure(0, w)
	m.refresh()
	m.syncEffects()
	m.updateResolvers()
	if first {
		m.jumpSprings()
	}
	return m, tea.Batch(
		navMeasureCmd(m.cfg.Derived.MeasureDelay, w),
		m.ensureFrames(),
		m.startParticles(),
	)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		return m.quit()
	}
	if i, ok := sectionDigit(msg); ok {
		ids := m.sections.IDs()
		if i < len(ids) {
			return m.scrollTo(ids[i])
		}
		return m, nil
	}

	line := float64(m.cfg.Scroll.LineStep)
	page := float64(max(m.viewportHeight()-2, 1))
	switch msg.String() {
	case "down", "j":
		return m.scrollBy(line)
	case "up", "k":
		return m.scrollBy(-line)
	case "pgdown", " ", "ctrl+d":
		return m.scrollBy(page)
	case "pgup", "ctrl+u":
		return m.scrollBy(-page)
	case "g", "home":
		return m.scrollBy(-m.layout.ScrollY())
	case "G", "end":
		return m.scrollBy(m.layout.MaxScroll() - m.layout.ScrollY())
	case "tab":
		return m.stepSection(1)
	case "shift+tab":
		return m.stepSection(-1)
	case "/":
		m.menuOpen = true
		m.menu.SetSize(m.width, m.height)
		return m, nil
	case "m":
		m.motion = m.motion.Next()
		return m, m.applyMotion()
	case "f":
		m.showFPS = !m.showFPS
		return m, nil
	case "i", "c":
		next, cmd := m.scrollTo("contact")
		focus := next.form.Focus()
		next.refresh()
		return next, tea.Batch(cmd, focus)
	case "enter":
		if m.sections.Active() == m.sections.IDs()[0] {
			return m.activate(ctaWork, m.now())
		}
	case "esc":
		m.hub.PointerLeave(m.now())
		return m, m.ensureFrames()
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		m.form.Blur()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	var submit bool
	m.form, cmd, submit = m.form.Update(msg)
	if submit {
		return m.submitForm()
	}
	m.refresh()
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	in, err := m.form.Submit()
	m.noticeSeq++
	if err != nil {
		m.notice = "Please fix the highlighted fields."
	} else {
		m.notice = "Thanks " + in.Name + "! Your message was recorded locally and not sent."
		m.form.Blur()
	}
	m.refresh()
	return m, noticeCmd(noticeDuration, m.noticeSeq)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	now := m.now()
	p := geom.Point{X: float64(msg.X) + 0.5, Y: float64(msg.Y) + 0.5}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.scrollBy(-float64(m.cfg.Scroll.WheelStep))
	case msg.Button == tea.MouseButtonWheelDown:
		return m.scrollBy(float64(m.cfg.Scroll.WheelStep))
	case msg.Action == tea.MouseActionMotion:
		m.hub.PointerMove(p, now)
		m.pointParticles(p)
		m.refresh()
		return m, m.ensureFrames()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.click(p, now)
	}
	return m, nil
}

func (m Model) click(p geom.Point, now time.Time) (Model, tea.Cmd) {
	if p.Y < float64(m.navRows()) {
		if id, ok := m.pillAt(p); ok {
			return m.scrollTo(id)
		}
		if m.narrow() {
			m.menuOpen = true
			m.menu.SetSize(m.width, m.height)
		}
		return m, nil
	}

	id, ok := m.layout.HitTest(p, m.clickables())
	if !ok {
		if m.form.focused {
			m.form.Blur()
			m.refresh()
		}
		return m, nil
	}
	switch {
	case id == ctaWork || id == ctaContact:
		return m.activate(id, now)
	case strings.HasPrefix(id, chipPrefix):
		return m.scrollTo(strings.TrimPrefix(id, chipPrefix))
	case id == formID:
		cmd := m.form.Focus()
		m.refresh()
		return m, cmd
	}
	return m, nil
}

// activate pulses a call-to-action button and follows it.
func (m Model) activate(id string, now time.Time) (Model, tea.Cmd) {
	if mg := m.magnets[id]; mg != nil {
		mg.Press(now)
	}
	target := "experience"
	if id == ctaContact {
		target = "contact"
	}
	return m.scrollTo(target)
}

// scrollTo starts an animated scroll to a section or experience card.
func (m Model) scrollTo(id string) (Model, tea.Cmd) {
	m.cards.SetActive(id)
	pos := scroll.Position{Y: m.layout.ScrollY(), Max: m.layout.MaxScroll(), Width: m.width}
	if _, ok := m.orch.ScrollTo(id, pos); !ok {
		return m, nil
	}
	if !m.orch.Animating() {
		y, _ := m.orch.Step(0)
		m.layout.SetScroll(y)
		m.hub.Scrolled(m.now())
		m.land(id)
	}
	m.navTargets()
	m.refresh()
	return m, tea.Batch(m.ensureFrames(), m.startParticles())
}

// scrollBy moves the page directly, abandoning any programmatic scroll.
func (m Model) scrollBy(dy float64) (Model, tea.Cmd) {
	before := m.layout.ScrollY()
	m.layout.SetScroll(before + dy)
	if m.layout.ScrollY() == before && !m.orch.Animating() {
		return m, nil
	}
	m.orch.Cancel()
	m.pinned = false
	m.hub.Scrolled(m.now())
	m.updateResolvers()
	m.refresh()
	return m, tea.Batch(m.ensureFrames(), m.startParticles())
}

func (m Model) stepSection(delta int) (Model, tea.Cmd) {
	ids := m.sections.IDs()
	cur := 0
	for i, id := range ids {
		if id == m.sections.Active() {
			cur = i
		}
	}
	next := min(max(cur+delta, 0), len(ids)-1)
	return m.scrollTo(ids[next])
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.hub.DisposeAll()
	clear(m.handles)
	clear(m.tilts)
	clear(m.magnets)
	m.orch.Cancel()
	m.frames.Cancel()
	m.particleLoop.Cancel()
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

// land finishes a programmatic scroll. A section target stays active
// even where the heuristic would pick a neighbour, e.g. a short section
// near the end of the page.
func (m *Model) land(id string) {
	m.pinned = m.sections.SetActive(id)
	m.updateResolvers()
}

// updateResolvers recomputes the active section and card. The section
// resolver is left alone while a programmatic scroll is in flight so the
// optimistic choice holds until arrival, and after arrival while pinned.
func (m *Model) updateResolvers() {
	y, maxY, navH := m.layout.ScrollY(), m.layout.MaxScroll(), m.nav.Get()
	if !m.orch.Animating() && !m.pinned {
		m.sections.Update(m.sections.Snapshot(m.layout, y, maxY, navH))
	}
	m.cards.Update(m.cards.Snapshot(m.layout, y, maxY, navH))
	m.navTargets()
}

func (m Model) contentWidth() int {
	return max(min(m.width-4, 100), 20)
}

func (m Model) narrow() bool {
	return m.width <= m.cfg.Scroll.NarrowWidth
}

// navRows is the header height the page is laid out under.
func (m Model) navRows() int {
	return max(int(math.Round(m.nav.Get())), 0)
}

func (m Model) viewportHeight() int {
	return max(m.height-m.navRows()-1, 1)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.menuOpen {
		return m.menu.View()
	}
	if m.width == 0 {
		return ""
	}

	navLines := padLines(strings.Split(m.navView, "\n"), m.navRows())
	vpH := m.viewportHeight()
	top := int(math.Round(m.layout.ScrollY()))
	body := make([]string, vpH)
	for i := range body {
		if r := top + i; r >= 0 && r < len(m.docLines) {
			body[i] = m.docLines[r]
		}
	}

	var b strings.Builder
	for _, l := range navLines {
		b.WriteString(ansi.Truncate(l, m.width, ""))
		b.WriteString("\n")
	}
	for _, l := range body {
		b.WriteString(ansi.Truncate(l, m.width, ""))
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine())
	return b.String()
}
