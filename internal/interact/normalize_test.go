package interact

import (
	"testing"

	"github.com/olivier-w/folio/internal/geom"
)

func TestNormalizeCenterIsZero(t *testing.T) {
	r := geom.Rect{Left: 10, Top: 4, Width: 40, Height: 10}
	n := Raw(geom.Point{X: 30, Y: 9}, r)
	if n.MX != 0 || n.MY != 0 {
		t.Fatalf("expected zero offset at center, got %+v", n)
	}
	if n.PX != 0.5 || n.PY != 0.5 {
		t.Fatalf("expected half percentages at center, got %+v", n)
	}
}

func TestNormalizeInsideStaysInUnitRange(t *testing.T) {
	r := geom.Rect{Left: 0, Top: 0, Width: 20, Height: 8}
	for x := 0.0; x < 20; x += 0.5 {
		for y := 0.0; y < 8; y += 0.5 {
			n := Normalize(geom.Point{X: x, Y: y}, r, 0)
			if n.MX < -1 || n.MX > 1 || n.MY < -1 || n.MY > 1 {
				t.Fatalf("offset out of range at (%v,%v): %+v", x, y, n)
			}
		}
	}
}

func TestNormalizeClampsOutsideButNotPercent(t *testing.T) {
	r := geom.Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	n := Normalize(geom.Point{X: 25, Y: -5}, r, DefaultDeadzone)
	if n.MX != 1 || n.MY != -1 {
		t.Fatalf("expected clamped offset (1,-1), got (%v,%v)", n.MX, n.MY)
	}
	if n.PX != 2.5 || n.PY != -0.5 {
		t.Fatalf("expected unclamped percentages (2.5,-0.5), got (%v,%v)", n.PX, n.PY)
	}
}

func TestNormalizeDeadzoneZeroesSmallOffsets(t *testing.T) {
	r := geom.Rect{Left: 0, Top: 0, Width: 100, Height: 100}
	// 3px from center on a 50px half extent is 0.06.
	n := Normalize(geom.Point{X: 53, Y: 47}, r, DefaultDeadzone)
	if n.MX != 0 || n.MY != 0 {
		t.Fatalf("expected deadzone to zero offset, got (%v,%v)", n.MX, n.MY)
	}

	n = Normalize(geom.Point{X: 60, Y: 50}, r, DefaultDeadzone)
	if n.MX != 0.2 {
		t.Fatalf("expected 0.2 outside deadzone, got %v", n.MX)
	}
}

func TestNormalizeEmptyRect(t *testing.T) {
	n := Normalize(geom.Point{X: 5, Y: 5}, geom.Rect{}, DefaultDeadzone)
	if n != (NormalizedOffset{}) {
		t.Fatalf("expected zero offset for empty rect, got %+v", n)
	}
}
