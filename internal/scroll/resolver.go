package scroll

import (
	"fmt"
	"strings"

	"github.com/olivier-w/folio/internal/geom"
)

// Strategy selects how the active section is chosen.
type Strategy int

const (
	// Intersection picks the section with the highest visible ratio inside
	// a band around the middle of the viewport.
	Intersection Strategy = iota
	// Closest picks the last section whose top has scrolled past a line a
	// fixed distance below the header.
	Closest
)

func (s Strategy) String() string {
	switch s {
	case Closest:
		return "closest"
	default:
		return "intersection"
	}
}

// ParseStrategy parses "intersection" or "closest".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "intersection":
		return Intersection, nil
	case "closest":
		return Closest, nil
	}
	return Intersection, fmt.Errorf("unknown scroll strategy %q", s)
}

// Options tunes a Resolver. Distances are in the same units as the rects.
type Options struct {
	Strategy Strategy
	// MarginTop and MarginBottom shrink the content viewport by a fraction
	// of its height from each edge; only sections inside the band count.
	MarginTop    float64
	MarginBottom float64
	// TopThreshold forces the first section while scrollY is below it.
	TopThreshold float64
	// Lookahead is the distance below the header used by Closest.
	Lookahead float64
	// PinLast forces the last section when the page is scrolled to its end.
	PinLast bool
}

// DefaultOptions returns pixel-based defaults.
func DefaultOptions() Options {
	return Options{
		Strategy:     Intersection,
		MarginTop:    0.35,
		MarginBottom: 0.35,
		TopThreshold: 100,
		Lookahead:    100,
		PinLast:      true,
	}
}

// Snapshot is the geometry the resolver decides from. Rects are in
// viewport coordinates and parallel to the resolver's ids.
type Snapshot struct {
	ScrollY   float64
	MaxScroll float64
	Viewport  geom.Rect
	NavHeight float64
	Rects     []geom.Rect
}

// Resolver picks the single active section out of an ordered, fixed list.
type Resolver struct {
	ids     []string
	index   map[string]int
	ratios  []float64
	tops    []float64
	mounted []bool
	line    float64
	active  string
	opts    Options
}

// NewResolver creates a resolver whose active id starts as the first id.
func NewResolver(ids []string, opts Options) *Resolver {
	r := &Resolver{
		ids:     append([]string(nil), ids...),
		index:   make(map[string]int, len(ids)),
		ratios:  make([]float64, len(ids)),
		tops:    make([]float64, len(ids)),
		mounted: make([]bool, len(ids)),
		opts:    sanitize(opts),
	}
	for i, id := range r.ids {
		r.index[id] = i
	}
	if len(r.ids) > 0 {
		r.active = r.ids[0]
	}
	return r
}

func sanitize(o Options) Options {
	o.MarginTop = min(max(o.MarginTop, 0), 0.49)
	o.MarginBottom = min(max(o.MarginBottom, 0), 0.49)
	o.TopThreshold = max(o.TopThreshold, 0)
	o.Lookahead = max(o.Lookahead, 0)
	return o
}

// IDs returns the tracked ids in document order.
func (r *Resolver) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Active returns the current active id.
func (r *Resolver) Active() string {
	return r.active
}

// Options returns the effective options.
func (r *Resolver) Options() Options {
	return r.opts
}

// SetActive sets the active id directly. Unknown ids are ignored.
func (r *Resolver) SetActive(id string) bool {
	if _, ok := r.index[id]; !ok {
		return false
	}
	r.active = id
	return true
}

// Observe records the latest intersection ratio reported for id. Unknown
// ids are ignored.
func (r *Resolver) Observe(id string, ratio float64) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.ratios[i] = min(max(ratio, 0), 1)
	return true
}

// Ratio returns the last ratio recorded for id.
func (r *Resolver) Ratio(id string) float64 {
	if i, ok := r.index[id]; ok {
		return r.ratios[i]
	}
	return 0
}

// Decide applies the top guard and the configured strategy to the recorded
// state and returns the new active id.
func (r *Resolver) Decide(scrollY float64) string {
	if len(r.ids) == 0 {
		return ""
	}
	if scrollY < r.opts.TopThreshold {
		r.active = r.ids[0]
		return r.active
	}
	if r.opts.Strategy == Closest {
		r.active = r.closest()
		return r.active
	}

	best, bestVal := -1, 0.0
	if i, ok := r.index[r.active]; ok && r.ratios[i] > 0 {
		best, bestVal = i, r.ratios[i]
	}
	for i, v := range r.ratios {
		if v > bestVal {
			best, bestVal = i, v
		}
	}
	if best >= 0 {
		r.active = r.ids[best]
	}
	return r.active
}

func (r *Resolver) closest() string {
	for i := len(r.ids) - 1; i >= 0; i-- {
		if r.mounted[i] && r.tops[i] <= r.line {
			return r.ids[i]
		}
	}
	return r.ids[0]
}

// Update recomputes ratios from a snapshot and returns the active id.
func (r *Resolver) Update(s Snapshot) string {
	if len(r.ids) == 0 {
		return ""
	}
	top := max(s.Viewport.Top, s.NavHeight)
	bottom := s.Viewport.Bottom()
	h := max(bottom-top, 0)
	band := geom.Rect{
		Left:   s.Viewport.Left,
		Top:    top + h*r.opts.MarginTop,
		Width:  s.Viewport.Width,
		Height: h * (1 - r.opts.MarginTop - r.opts.MarginBottom),
	}
	r.line = top + r.opts.Lookahead

	for i := range r.ids {
		var rect geom.Rect
		if i < len(s.Rects) {
			rect = s.Rects[i]
		}
		r.mounted[i] = !rect.Empty()
		r.tops[i] = rect.Top
		r.ratios[i] = 0
		if r.mounted[i] && band.Height > 0 {
			r.ratios[i] = geom.VerticalOverlap(rect, band) / rect.Height
		}
	}

	if r.opts.PinLast && s.MaxScroll > 0 && s.ScrollY >= s.MaxScroll && s.ScrollY >= r.opts.TopThreshold {
		r.active = r.ids[len(r.ids)-1]
		return r.active
	}
	return r.Decide(s.ScrollY)
}

// Snapshot samples the current rect of every tracked section.
func (r *Resolver) Snapshot(sampler geom.Sampler, scrollY, maxScroll, navHeight float64) Snapshot {
	rects := make([]geom.Rect, len(r.ids))
	for i, id := range r.ids {
		rects[i] = sampler.RectOf(id)
	}
	return Snapshot{
		ScrollY:   scrollY,
		MaxScroll: maxScroll,
		Viewport:  sampler.Viewport(),
		NavHeight: navHeight,
		Rects:     rects,
	}
}
