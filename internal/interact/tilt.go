package interact

import (
	"math"
	"time"

	"github.com/olivier-w/folio/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// TiltOptions configures a Tilt. Zero fields take the defaults from
// DefaultTiltOptions.
type TiltOptions struct {
	MaxTiltDeg     float64
	FollowStrength float64
	Deadzone       float64
	Inertia        float64
	FPSFloor       float64
	ScrollSuspend  time.Duration
	// Disabled ignores pointer input and keeps the state neutral. Set it for
	// reduced motion or viewports below the minimum width.
	Disabled bool
}

// DefaultTiltOptions returns the stock tilt tuning.
func DefaultTiltOptions() TiltOptions {
	return TiltOptions{
		MaxTiltDeg:     12,
		FollowStrength: DefaultFollow,
		Deadzone:       DefaultDeadzone,
		Inertia:        0.10,
		FPSFloor:       45,
		ScrollSuspend:  250 * time.Millisecond,
	}
}

func (o TiltOptions) withDefaults() TiltOptions {
	d := DefaultTiltOptions()
	if o.MaxTiltDeg <= 0 {
		o.MaxTiltDeg = d.MaxTiltDeg
	}
	o.FollowStrength = sanitizeFollow(o.FollowStrength)
	if o.Deadzone < 0 {
		o.Deadzone = 0
	}
	if o.Inertia < 0 || o.Inertia > 1 {
		o.Inertia = d.Inertia
	}
	if o.FPSFloor < 0 {
		o.FPSFloor = 0
	}
	if o.ScrollSuspend < 0 {
		o.ScrollSuspend = 0
	}
	return o
}

// TiltState is everything the presentation layer needs to draw a tilted
// card. Angles are in degrees, glow positions in percent of the card.
type TiltState struct {
	TiltX, TiltY float64

	MX, MY float64
	PX, PY float64

	SheenRot     float64
	SheenOpacity float64
	ShadowX      float64
	ShadowY      float64
	GlowX        float64
	GlowY        float64
	GlowOpacity  float64

	Active  bool
	Visible bool
}

// NeutralTilt is the resting state.
func NeutralTilt() TiltState {
	return TiltState{ShadowY: 30, GlowX: 50, GlowY: 50, Visible: true}
}

// Tilt drives a 3D tilt from pointer position. It owns one Smoother.
type Tilt struct {
	opts  TiltOptions
	sm    Smoother
	state TiltState

	hovering       bool
	running        bool
	disposed       bool
	suspendedUntil time.Time
	lastFrame      time.Time
}

// NewTilt creates a Tilt at rest.
func NewTilt(opts TiltOptions) *Tilt {
	opts = opts.withDefaults()
	return &Tilt{
		opts:  opts,
		sm:    NewSmoother(opts.FollowStrength),
		state: NeutralTilt(),
	}
}

// State returns the latest computed tilt.
func (t *Tilt) State() TiltState {
	return t.state
}

// Options returns the effective options.
func (t *Tilt) Options() TiltOptions {
	return t.opts
}

// SetDisabled toggles pointer handling. Disabling snaps back to rest.
func (t *Tilt) SetDisabled(disabled bool) {
	if t.disposed || t.opts.Disabled == disabled {
		return
	}
	t.opts.Disabled = disabled
	if disabled {
		t.sm.Reset()
		t.state = NeutralTilt()
		t.running = false
		t.hovering = false
		t.lastFrame = time.Time{}
	}
}

func (t *Tilt) inert() bool {
	return t.disposed || t.opts.Disabled
}

func (t *Tilt) Enter(now time.Time) {
	if t.inert() {
		return
	}
	t.hovering = true
	t.state.Active = true
}

func (t *Tilt) Move(p geom.Point, r geom.Rect, now time.Time) {
	if t.inert() || r.Empty() {
		return
	}
	n := Normalize(p, r, t.opts.Deadzone)
	t.sm.Target = r2.Vec{X: n.MX, Y: n.MY}

	raw := Raw(p, r)
	mag := math.Min(1, math.Hypot(raw.MX, raw.MY))
	t.state.MX, t.state.MY = raw.MX, raw.MY
	t.state.PX, t.state.PY = raw.PX, raw.PY
	t.state.SheenRot = math.Atan2(raw.MY, raw.MX) * 180 / math.Pi
	t.state.SheenOpacity = 0.18 * mag
	t.state.ShadowX = -raw.MX * 18
	t.state.ShadowY = math.Max(14, 30+raw.MY*10)
	t.state.GlowX = 50 + raw.MX*40
	t.state.GlowY = 50 + raw.MY*40
	t.state.GlowOpacity = 0.06 + mag*0.12
	t.running = true
}

func (t *Tilt) Leave(now time.Time) {
	if t.inert() {
		return
	}
	t.hovering = false
	t.state.Active = false
	t.sm.Coast(t.opts.Inertia)

	rest := NeutralTilt()
	rest.TiltX, rest.TiltY = t.state.TiltX, t.state.TiltY
	rest.Visible = t.state.Visible
	t.state = rest
	t.running = true
}

// Scrolled suspends the effect for the configured window.
func (t *Tilt) Scrolled(now time.Time) {
	if t.inert() {
		return
	}
	t.suspendedUntil = now.Add(t.opts.ScrollSuspend)
}

func (t *Tilt) Running() bool {
	return t.running && !t.inert()
}

// Step advances the smoother one frame. While suspended after a scroll,
// below the fps floor, or off screen, the target is held at rest.
func (t *Tilt) Step(now time.Time, visible bool) bool {
	if t.inert() {
		return false
	}
	dt := frameDelta(t.lastFrame, now)
	t.lastFrame = now

	fps := float64(time.Second) / float64(dt)
	if now.Before(t.suspendedUntil) || fps < t.opts.FPSFloor || !visible {
		t.sm.Target = r2.Vec{}
	}

	cur := t.sm.Step()
	t.state.TiltX = cur.Y * t.opts.MaxTiltDeg
	t.state.TiltY = -cur.X * t.opts.MaxTiltDeg
	t.state.Visible = visible

	if !t.sm.Settled(SettleEpsilon) || t.hovering {
		return true
	}
	t.running = false
	t.lastFrame = time.Time{}
	return false
}

// Dispose stops the effect permanently. Later calls are no-ops.
func (t *Tilt) Dispose() {
	t.disposed = true
	t.running = false
	t.hovering = false
}
