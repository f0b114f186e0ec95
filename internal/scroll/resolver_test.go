package scroll

import (
	"testing"

	"github.com/olivier-w/folio/internal/geom"
)

var sectionIDs = []string{"home", "experience", "contact"}

func TestResolverStartsOnFirstSection(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	if r.Active() != "home" {
		t.Fatalf("expected home before any scroll, got %q", r.Active())
	}
}

func TestResolverTopGuardOverridesRatios(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	r.Observe("experience", 0.9)
	r.Observe("contact", 0.7)
	if got := r.Decide(0); got != "home" {
		t.Fatalf("Decide(0) = %q, want home", got)
	}
}

func TestResolverPicksHighestRatio(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	r.Observe("home", 0.2)
	r.Observe("experience", 0.6)
	r.Observe("contact", 0)
	if got := r.Decide(1200); got != "experience" {
		t.Fatalf("Decide() = %q, want experience", got)
	}
}

func TestResolverTieKeepsPreviousActive(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	r.SetActive("contact")
	r.Observe("experience", 0.5)
	r.Observe("contact", 0.5)
	if got := r.Decide(1200); got != "contact" {
		t.Fatalf("expected tie to keep contact, got %q", got)
	}
}

func TestResolverAllZeroKeepsPrevious(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	r.SetActive("experience")
	if got := r.Decide(1200); got != "experience" {
		t.Fatalf("expected experience kept, got %q", got)
	}
}

func TestResolverIgnoresUnknownIDs(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	if r.Observe("projects", 1) {
		t.Fatal("expected unknown id to be ignored")
	}
	if r.SetActive("projects") {
		t.Fatal("expected unknown SetActive to be ignored")
	}
	if got := r.Decide(1200); got != "home" {
		t.Fatalf("Decide() = %q, want home", got)
	}
}

func stacked(scrollY float64) []geom.Rect {
	// Three 1000px sections stacked from document y=0, viewport at top 0.
	out := make([]geom.Rect, 3)
	for i := range out {
		out[i] = geom.Rect{Top: float64(i)*1000 - scrollY, Width: 1200, Height: 1000}
	}
	return out
}

func TestResolverUpdateFromGeometry(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	view := geom.Rect{Width: 1200, Height: 800}

	got := r.Update(Snapshot{ScrollY: 1100, MaxScroll: 2200, Viewport: view, NavHeight: 72, Rects: stacked(1100)})
	if got != "experience" {
		t.Fatalf("Update() = %q, want experience", got)
	}
	if r.Ratio("experience") <= 0 || r.Ratio("home") != 0 {
		t.Fatalf("unexpected ratios home=%v experience=%v", r.Ratio("home"), r.Ratio("experience"))
	}

	got = r.Update(Snapshot{ScrollY: 50, MaxScroll: 2200, Viewport: view, NavHeight: 72, Rects: stacked(50)})
	if got != "home" {
		t.Fatalf("Update() near top = %q, want home", got)
	}
}

func TestResolverPinsLastSectionAtPageEnd(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	view := geom.Rect{Width: 1200, Height: 800}
	rects := []geom.Rect{
		{Top: -2000, Width: 1200, Height: 1000},
		{Top: -1000, Width: 1200, Height: 1400},
		{Top: 400, Width: 1200, Height: 400},
	}
	if got := r.Update(Snapshot{ScrollY: 2000, MaxScroll: 2000, Viewport: view, NavHeight: 72, Rects: rects}); got != "contact" {
		t.Fatalf("Update() at page end = %q, want contact", got)
	}
}

func TestResolverClosestStrategy(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = Closest
	r := NewResolver(sectionIDs, opts)
	view := geom.Rect{Width: 1200, Height: 800}

	// experience top at 150, under nav (72) + lookahead (100) = 172.
	rects := []geom.Rect{
		{Top: -850, Width: 1200, Height: 1000},
		{Top: 150, Width: 1200, Height: 1000},
		{Top: 1150, Width: 1200, Height: 1000},
	}
	if got := r.Update(Snapshot{ScrollY: 850, MaxScroll: 2200, Viewport: view, NavHeight: 72, Rects: rects}); got != "experience" {
		t.Fatalf("closest Update() = %q, want experience", got)
	}

	rects[1].Top = 200
	rects[0].Top = -800
	if got := r.Update(Snapshot{ScrollY: 800, MaxScroll: 2200, Viewport: view, NavHeight: 72, Rects: rects}); got != "home" {
		t.Fatalf("closest Update() = %q, want home", got)
	}
}

func TestResolverUnmountedSectionsNeverWin(t *testing.T) {
	r := NewResolver(sectionIDs, DefaultOptions())
	view := geom.Rect{Width: 1200, Height: 800}
	rects := []geom.Rect{{}, {}, {}}
	if got := r.Update(Snapshot{ScrollY: 500, MaxScroll: 2200, Viewport: view, Rects: rects}); got != "home" {
		t.Fatalf("Update() with nothing mounted = %q, want home", got)
	}
}

func TestResolverSnapshotSamplesLayout(t *testing.T) {
	l := geom.NewLayout()
	l.SetViewport(geom.Rect{Top: 3, Width: 80, Height: 20})
	l.Place("home", geom.Rect{Width: 80, Height: 30})
	l.Place("experience", geom.Rect{Top: 30, Width: 80, Height: 40})
	l.SetScroll(10)

	r := NewResolver(sectionIDs, DefaultOptions())
	s := r.Snapshot(l, l.ScrollY(), l.MaxScroll(), 3)
	if s.Rects[1].Top != 23 {
		t.Fatalf("expected experience at viewport top 23, got %v", s.Rects[1].Top)
	}
	if !s.Rects[2].Empty() {
		t.Fatal("expected unplaced contact to be empty")
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy("Closest"); err != nil || s != Closest {
		t.Fatalf("ParseStrategy(Closest) = %v, %v", s, err)
	}
	if _, err := ParseStrategy("nearest"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
