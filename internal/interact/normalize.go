// Package interact implements pointer-driven visual effects: pointer
// normalization, exponential smoothing, tilt and magnetic hover, and the
// attach/dispose registry that routes pointer events to them.
package interact

import "github.com/olivier-w/folio/internal/geom"

// DefaultDeadzone suppresses normalized input below this magnitude.
const DefaultDeadzone = 0.08

// NormalizedOffset is a pointer position relative to an element.
// MX and MY are centered on the element and clamped to [-1, 1]. PX and PY
// are the fractional position from the top-left corner and are not clamped.
type NormalizedOffset struct {
	MX, MY float64
	PX, PY float64
}

// Raw normalizes p against r without applying a deadzone. A zero-area rect
// yields the zero offset.
func Raw(p geom.Point, r geom.Rect) NormalizedOffset {
	if r.Empty() {
		return NormalizedOffset{}
	}
	c := r.Center()
	return NormalizedOffset{
		MX: clampUnit((p.X - c.X) / (r.Width / 2)),
		MY: clampUnit((p.Y - c.Y) / (r.Height / 2)),
		PX: (p.X - r.Left) / r.Width,
		PY: (p.Y - r.Top) / r.Height,
	}
}

// Normalize is Raw followed by the deadzone on MX and MY.
func Normalize(p geom.Point, r geom.Rect, deadzone float64) NormalizedOffset {
	n := Raw(p, r)
	n.MX = applyDeadzone(n.MX, deadzone)
	n.MY = applyDeadzone(n.MY, deadzone)
	return n
}

func applyDeadzone(v, dz float64) float64 {
	if v > -dz && v < dz {
		return 0
	}
	return v
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
