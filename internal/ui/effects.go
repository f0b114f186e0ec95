package ui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/geom"
	"github.com/olivier-w/folio/internal/interact"
)

func (m Model) effectsEnabled() bool {
	return m.motion == MotionFull && m.width >= m.cfg.Motion.MinWidth
}

func (m Model) tiltOptions() interact.TiltOptions {
	t := m.cfg.Tilt
	return interact.TiltOptions{
		MaxTiltDeg:     t.MaxTiltDeg,
		FollowStrength: t.FollowStrength,
		Deadzone:       t.Deadzone,
		Inertia:        t.Inertia,
		FPSFloor:       t.FPSFloor,
		ScrollSuspend:  m.cfg.Derived.ScrollSuspend,
	}
}

func (m Model) magneticOptions() interact.MagneticOptions {
	g := m.cfg.Magnetic
	return interact.MagneticOptions{
		Radius:        g.Radius,
		MaxTranslate:  g.MaxTranslate,
		Strength:      g.Strength,
		Epsilon:       g.Epsilon,
		PulseDuration: m.cfg.Derived.Pulse,
	}
}

// syncEffects attaches effects to rendered tilt cards and magnetic buttons
// and disposes the handles of elements that are gone or disabled.
func (m *Model) syncEffects() {
	want := make(map[string]bool)
	if m.effectsEnabled() {
		for _, id := range m.tiltIDs() {
			if _, ok := m.layout.DocRect(id); ok {
				want[id] = true
			}
		}
		for _, id := range []string{ctaWork, ctaContact} {
			if _, ok := m.layout.DocRect(id); ok {
				want[id] = true
			}
		}
	}

	for id, h := range m.handles {
		if want[id] {
			continue
		}
		h.Dispose()
		delete(m.handles, id)
		delete(m.tilts, id)
		delete(m.magnets, id)
	}
	for id := range want {
		if _, ok := m.handles[id]; ok {
			continue
		}
		if id == ctaWork || id == ctaContact {
			mg := interact.NewMagnetic(m.magneticOptions())
			m.magnets[id] = mg
			m.handles[id] = m.hub.Attach(id, mg)
			continue
		}
		t := interact.NewTilt(m.tiltOptions())
		m.tilts[id] = t
		m.handles[id] = m.hub.Attach(id, t)
	}
}

func (m Model) tiltState(id string) interact.TiltState {
	if t := m.tilts[id]; t != nil {
		return t.State()
	}
	return interact.NeutralTilt()
}

func (m Model) magnetState(id string) interact.MagnetState {
	if mg := m.magnets[id]; mg != nil {
		return mg.State()
	}
	return interact.MagnetState{}
}

// ensureFrames starts the frame loop if something needs animating. At most
// one tick is ever outstanding.
func (m *Model) ensureFrames() tea.Cmd {
	if !m.needsFrames() {
		return nil
	}
	gen, ok := m.frames.Request()
	if !ok {
		return nil
	}
	return frameCmd(m.cfg.Derived.Frame, gen)
}

func (m Model) needsFrames() bool {
	return m.orch.Animating() || m.hub.Running() ||
		!m.navX.AtRest() || !m.navW.AtRest() || !m.rail.AtRest()
}

// step advances every animation by one frame.
func (m *Model) step(now time.Time) {
	dt := m.cfg.Derived.Frame
	if !m.lastFrame.IsZero() && now.After(m.lastFrame) {
		dt = now.Sub(m.lastFrame)
	}
	m.lastFrame = now
	m.meter.Tick(now)

	if m.orch.Animating() {
		y, animating := m.orch.Step(dt)
		m.layout.SetScroll(y)
		m.hub.Scrolled(now)
		if !animating {
			id, _ := m.orch.Target()
			m.land(id)
		} else {
			m.cards.Update(m.cards.Snapshot(m.layout, m.layout.ScrollY(), m.layout.MaxScroll(), m.nav.Get()))
			m.navTargets()
		}
	}
	m.hub.Step(now)
	m.navX.Step()
	m.navW.Step()
	m.rail.Step()
	m.refresh()
}

// navTargets points the nav underline at the active pill and the timeline
// rail at the reading position.
func (m *Model) navTargets() {
	for _, p := range m.pills {
		if p.id == m.sections.Active() {
			m.navX.Target = float64(p.x0)
			m.navW.Target = float64(p.x1 - p.x0)
		}
	}
	if m.timeline.height > 0 {
		center := m.layout.ScrollY() + float64(m.viewportHeight())/2
		m.rail.Target = min(max((center-float64(m.timeline.top))/float64(m.timeline.height), 0), 1)
	}
	if m.motion == MotionReduced || !m.navPlaced {
		m.jumpSprings()
	}
}

func (m *Model) jumpSprings() {
	m.navX.Jump(m.navX.Target)
	m.navW.Jump(m.navW.Target)
	m.rail.Jump(m.rail.Target)
	m.navPlaced = len(m.pills) > 0
}

// applyMotion switches between full and reduced motion.
func (m *Model) applyMotion() tea.Cmd {
	log.Printf("motion %s", m.motion)
	if m.motion == MotionReduced {
		m.orch.SetDuration(0)
		m.particleLoop.Cancel()
		m.lastParticle = time.Time{}
		m.jumpSprings()
		if m.cube != nil {
			m.cube.Solve()
		}
	} else {
		m.orch.SetDuration(time.Duration(m.cfg.Scroll.DurationMS) * time.Millisecond)
	}
	m.syncEffects()
	m.refresh()
	return tea.Batch(m.ensureFrames(), m.startParticles())
}

func (m Model) heroHeight() int {
	if r, ok := m.layout.DocRect("home"); ok {
		return int(r.Height)
	}
	return max(m.viewportHeight(), heroMinHeight)
}

func (m Model) particlesWanted() bool {
	if m.motion != MotionFull || (m.particles.Len() == 0 && m.cube == nil) || m.width == 0 {
		return false
	}
	return geom.VisibleRatio(m.layout.RectOf("home"), m.layout.Viewport()) > 0
}

// startParticles runs the hero background while it is on screen.
func (m *Model) startParticles() tea.Cmd {
	if !m.particlesWanted() {
		return nil
	}
	gen, ok := m.particleLoop.Request()
	if !ok {
		return nil
	}
	return particleCmd(m.cfg.Derived.ParticleFrame, gen)
}

// pointParticles displaces the hero particles by the pointer's offset from
// the hero center.
func (m *Model) pointParticles(p geom.Point) {
	hero := m.layout.RectOf("home")
	if !hero.Contains(p) || m.motion != MotionFull {
		m.particles.SetPointer(0, 0)
		return
	}
	off := interact.Raw(p, hero)
	m.particles.SetPointer(off.MX, off.MY)
}
