package interact

import (
	"time"

	"github.com/olivier-w/folio/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// MagneticOptions configures a Magnetic effect. Distances are in the same
// units as the rects the effect receives.
type MagneticOptions struct {
	Radius        float64
	MaxTranslate  float64
	Strength      float64
	Epsilon       float64
	PulseDuration time.Duration
	Disabled      bool
}

// DefaultMagneticOptions returns the stock tuning in pixels.
func DefaultMagneticOptions() MagneticOptions {
	return MagneticOptions{
		Radius:        14,
		MaxTranslate:  16,
		Strength:      0.28,
		Epsilon:       0.1,
		PulseDuration: 200 * time.Millisecond,
	}
}

// MagnetState is the translation to apply to the element.
type MagnetState struct {
	X, Y    float64
	Pulsing bool
}

// Magnetic pulls an element toward the pointer while it is within Radius
// of the element's center.
type Magnetic struct {
	opts  MagneticOptions
	sm    Smoother
	state MagnetState

	running    bool
	disposed   bool
	pulseUntil time.Time
}

// NewMagnetic creates a Magnetic at rest.
func NewMagnetic(opts MagneticOptions) *Magnetic {
	d := DefaultMagneticOptions()
	if opts.Radius <= 0 {
		opts.Radius = d.Radius
	}
	if opts.MaxTranslate < 0 {
		opts.MaxTranslate = 0
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = d.Epsilon
	}
	if opts.PulseDuration <= 0 {
		opts.PulseDuration = d.PulseDuration
	}
	if opts.Strength <= 0 {
		opts.Strength = d.Strength
	}
	opts.Strength = sanitizeFollow(opts.Strength)
	return &Magnetic{opts: opts, sm: NewSmoother(opts.Strength)}
}

// State returns the current translation.
func (m *Magnetic) State() MagnetState {
	return m.state
}

func (m *Magnetic) inert() bool {
	return m.disposed || m.opts.Disabled
}

// SetDisabled toggles pointer handling. Disabling snaps back to rest.
func (m *Magnetic) SetDisabled(disabled bool) {
	if m.disposed || m.opts.Disabled == disabled {
		return
	}
	m.opts.Disabled = disabled
	if disabled {
		m.sm.Reset()
		m.state = MagnetState{}
		m.running = false
	}
}

func (m *Magnetic) Enter(now time.Time) {}

func (m *Magnetic) Move(p geom.Point, r geom.Rect, now time.Time) {
	if m.inert() || r.Empty() {
		return
	}
	c := r.Center()
	offset := r2.Vec{X: p.X - c.X, Y: p.Y - c.Y}
	dist := r2.Norm(offset)
	if dist < m.opts.Radius {
		clamped := min(1, dist/m.opts.Radius)
		d := dist
		if d == 0 {
			d = 1
		}
		m.sm.Target = r2.Scale((1-clamped)*m.opts.MaxTranslate/d, offset)
	} else {
		m.sm.Target = r2.Vec{}
	}
	m.running = true
}

func (m *Magnetic) Leave(now time.Time) {
	if m.inert() {
		return
	}
	m.sm.Target = r2.Vec{}
	m.running = true
}

func (m *Magnetic) Scrolled(now time.Time) {}

// Press starts a short pulse, used for click and keyboard activation.
func (m *Magnetic) Press(now time.Time) {
	if m.disposed {
		return
	}
	m.pulseUntil = now.Add(m.opts.PulseDuration)
	m.state.Pulsing = true
	m.running = true
}

func (m *Magnetic) Running() bool {
	return m.running && !m.disposed
}

func (m *Magnetic) Step(now time.Time, visible bool) bool {
	if m.disposed {
		return false
	}
	cur := m.sm.Step()
	m.state.X, m.state.Y = cur.X, cur.Y
	m.state.Pulsing = now.Before(m.pulseUntil)
	if !m.sm.Settled(m.opts.Epsilon) || m.state.Pulsing {
		return true
	}
	m.running = false
	return false
}

// Dispose stops the effect permanently.
func (m *Magnetic) Dispose() {
	m.disposed = true
	m.running = false
}
