// Package scroll tracks which page section is active and drives animated
// scrolling to sections underneath a fixed navigation bar.
package scroll

import "log"

// Breakpoint maps a maximum viewport width to a fallback header height.
type Breakpoint struct {
	MaxWidth int
	Height   float64
}

// NavHeight caches the rendered height of the fixed header. Only the
// measurement routine writes it; scrolling and section tracking read it.
type NavHeight struct {
	value       float64
	breakpoints []Breakpoint
	fallback    float64
}

// NewNavHeight creates a cache with width-based fallbacks. Breakpoints are
// checked in order; the first whose MaxWidth is >= the width wins.
func NewNavHeight(fallback float64, breakpoints ...Breakpoint) *NavHeight {
	n := &NavHeight{fallback: fallback, breakpoints: breakpoints}
	n.value = fallback
	return n
}

// Measure records a rendered height. A non-positive measurement means the
// header is not available yet and the fallback for width is used instead.
func (n *NavHeight) Measure(rendered float64, width int) float64 {
	if rendered > 0 {
		n.value = rendered
	} else {
		n.value = n.fallbackFor(width)
	}
	log.Printf("nav height %.0f (width %d)", n.value, width)
	return n.value
}

func (n *NavHeight) fallbackFor(width int) float64 {
	for _, bp := range n.breakpoints {
		if width <= bp.MaxWidth {
			return bp.Height
		}
	}
	return n.fallback
}

// Get returns the cached height.
func (n *NavHeight) Get() float64 {
	if n == nil {
		return 0
	}
	return n.value
}
