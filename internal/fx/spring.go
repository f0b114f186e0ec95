package fx

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const springRest = 0.01

// Spring eases a scalar toward a target with a damped harmonic spring.
type Spring struct {
	spring harmonica.Spring
	Pos    float64
	Vel    float64
	Target float64
}

// NewSpring creates a spring stepped fps times a second.
func NewSpring(fps int, frequency, damping float64) Spring {
	return Spring{spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), frequency, damping)}
}

// Step advances one frame and reports whether the spring is still moving.
func (s *Spring) Step() bool {
	s.Pos, s.Vel = s.spring.Update(s.Pos, s.Vel, s.Target)
	if s.AtRest() {
		s.Pos, s.Vel = s.Target, 0
		return false
	}
	return true
}

// AtRest reports whether the spring is close enough to stop.
func (s *Spring) AtRest() bool {
	return math.Abs(s.Pos-s.Target) < springRest && math.Abs(s.Vel) < springRest
}

// Jump sets position and target together.
func (s *Spring) Jump(v float64) {
	s.Pos, s.Vel, s.Target = v, 0, v
}
