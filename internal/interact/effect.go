package interact

import (
	"time"

	"github.com/olivier-w/folio/internal/geom"
)

// Effect is a per-element visual effect driven by pointer events and frame
// steps. Implementations must stop mutating their state once disposed.
type Effect interface {
	Enter(now time.Time)
	Move(p geom.Point, r geom.Rect, now time.Time)
	Leave(now time.Time)
	Scrolled(now time.Time)
	// Step advances one frame and reports whether more frames are needed.
	Step(now time.Time, visible bool) bool
	Running() bool
	Dispose()
}

const defaultFrame = 16 * time.Millisecond

// frameDelta returns the time since last, or a nominal frame when there is
// no previous frame. The result is never below one millisecond.
func frameDelta(last, now time.Time) time.Duration {
	if last.IsZero() {
		return defaultFrame
	}
	return max(now.Sub(last), time.Millisecond)
}
