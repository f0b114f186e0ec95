package scroll

import (
	"time"

	"github.com/olivier-w/folio/internal/geom"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OrchestratorOptions tunes programmatic scrolling.
type OrchestratorOptions struct {
	// Padding is the gap left between the header and the target section.
	Padding float64
	// NarrowPadding replaces Padding when the viewport is at most
	// NarrowWidth wide.
	NarrowPadding float64
	NarrowWidth   int
	// Duration of the eased scroll. Zero jumps immediately.
	Duration time.Duration
	Ease     ease.TweenFunc
}

// DefaultOrchestratorOptions returns pixel-based defaults.
func DefaultOrchestratorOptions() OrchestratorOptions {
	return OrchestratorOptions{
		Padding:       24,
		NarrowPadding: 16,
		NarrowWidth:   768,
		Duration:      450 * time.Millisecond,
		Ease:          ease.OutCubic,
	}
}

// Position is the scroll state at the moment ScrollTo is called.
type Position struct {
	Y     float64
	Max   float64
	Width int
}

// Orchestrator animates the scroll offset toward sections. A single tween
// is in flight at a time; a new request retargets it.
type Orchestrator struct {
	sampler  geom.Sampler
	nav      *NavHeight
	resolver *Resolver
	opts     OrchestratorOptions

	tween    *gween.Tween
	pos      float64
	target   float64
	targetID string
}

// NewOrchestrator creates an orchestrator. resolver may be nil; when set it
// is told about the requested section immediately and again on arrival.
func NewOrchestrator(s geom.Sampler, nav *NavHeight, resolver *Resolver, opts OrchestratorOptions) *Orchestrator {
	if opts.Ease == nil {
		opts.Ease = ease.OutCubic
	}
	if opts.Duration < 0 {
		opts.Duration = 0
	}
	return &Orchestrator{sampler: s, nav: nav, resolver: resolver, opts: opts}
}

// SetDuration changes the animation length for later requests.
func (o *Orchestrator) SetDuration(d time.Duration) {
	o.opts.Duration = max(d, 0)
}

func (o *Orchestrator) padding(width int) float64 {
	if width > 0 && width <= o.opts.NarrowWidth {
		return o.opts.NarrowPadding
	}
	return o.opts.Padding
}

// TargetFor computes the scroll offset that puts id just below the header.
// It returns false when id is not mounted.
func (o *Orchestrator) TargetFor(id string, p Position) (float64, bool) {
	r := o.sampler.RectOf(id)
	if r.Empty() {
		return 0, false
	}
	y := p.Y + r.Top - (o.nav.Get() + o.padding(p.Width))
	return min(max(y, 0), max(p.Max, 0)), true
}

// ScrollTo starts, or retargets, an animated scroll to id. It returns the
// final offset and false if id is not mounted.
func (o *Orchestrator) ScrollTo(id string, p Position) (float64, bool) {
	target, ok := o.TargetFor(id, p)
	if !ok {
		return p.Y, false
	}
	if o.resolver != nil {
		o.resolver.SetActive(id)
	}

	from := p.Y
	if o.tween != nil {
		if target == o.target {
			o.targetID = id
			return target, true
		}
		from = o.pos
	}
	o.pos, o.target, o.targetID = from, target, id

	if from == target || o.opts.Duration == 0 {
		o.pos = target
		o.tween = nil
		return target, true
	}
	o.tween = gween.New(float32(from), float32(target), float32(o.opts.Duration.Seconds()), o.opts.Ease)
	return target, true
}

// Step advances the animation by dt and returns the offset to display and
// whether the animation is still running.
func (o *Orchestrator) Step(dt time.Duration) (float64, bool) {
	if o.tween == nil {
		return o.pos, false
	}
	v, done := o.tween.Update(float32(dt.Seconds()))
	o.pos = float64(v)
	if !done {
		return o.pos, true
	}
	o.pos = o.target
	o.tween = nil
	if o.resolver != nil {
		o.resolver.SetActive(o.targetID)
	}
	return o.pos, false
}

// Animating reports whether a tween is in flight.
func (o *Orchestrator) Animating() bool {
	return o.tween != nil
}

// Target returns the id and offset of the latest request.
func (o *Orchestrator) Target() (string, float64) {
	return o.targetID, o.target
}

// Cancel drops the in-flight animation, leaving the offset where it is.
func (o *Orchestrator) Cancel() {
	o.tween = nil
}
