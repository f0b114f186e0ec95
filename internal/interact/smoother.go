package interact

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultFollow is the fraction of the remaining distance covered per step.
	DefaultFollow = 0.12
	// SettleEpsilon is the per-axis distance below which a tilt counts as settled.
	SettleEpsilon = 0.001
)

// Smoother advances Current toward Target by a fixed fraction each step.
// Velocity is the delta produced by the last step.
type Smoother struct {
	Current  r2.Vec
	Target   r2.Vec
	Velocity r2.Vec
	Follow   float64
}

// NewSmoother returns a Smoother at rest. Follow outside (0, 1] falls back
// to DefaultFollow.
func NewSmoother(follow float64) Smoother {
	return Smoother{Follow: sanitizeFollow(follow)}
}

func sanitizeFollow(f float64) float64 {
	if f <= 0 || f > 1 || math.IsNaN(f) {
		return DefaultFollow
	}
	return f
}

// Step moves Current one increment toward Target and returns it.
func (s *Smoother) Step() r2.Vec {
	next := r2.Add(s.Current, r2.Scale(sanitizeFollow(s.Follow), r2.Sub(s.Target, s.Current)))
	s.Velocity = r2.Sub(next, s.Current)
	s.Current = next
	return next
}

// Settled reports whether Current is within eps of Target on both axes.
func (s *Smoother) Settled(eps float64) bool {
	d := r2.Sub(s.Target, s.Current)
	return math.Abs(d.X) < eps && math.Abs(d.Y) < eps
}

// Coast resets the target to rest and nudges Current by a fraction of the
// last velocity, so a released element drifts briefly instead of snapping.
func (s *Smoother) Coast(inertia float64) {
	s.Target = r2.Vec{}
	s.Current = r2.Add(s.Current, r2.Scale(inertia, s.Velocity))
}

// Reset puts the smoother at rest.
func (s *Smoother) Reset() {
	s.Current = r2.Vec{}
	s.Target = r2.Vec{}
	s.Velocity = r2.Vec{}
}
