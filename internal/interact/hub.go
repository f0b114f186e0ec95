package interact

import (
	"time"

	"github.com/olivier-w/folio/internal/geom"
)

// VisibleThreshold is the fraction of an element that must be inside the
// viewport for its effect to count as visible.
const VisibleThreshold = 0.1

type hubEntry struct {
	effect  Effect
	hovered bool
}

// Hub routes pointer and scroll events to the effects attached to a page
// and steps them once per frame. It is only used from the bubbletea Update
// loop.
type Hub struct {
	sampler geom.Sampler
	entries map[string]*hubEntry
	order   []string
}

// Handle owns one attachment. Dispose detaches the element and disposes its
// effect; it is safe to call more than once.
type Handle struct {
	hub    *Hub
	id     string
	effect Effect
}

// NewHub creates a Hub that samples element rects from s.
func NewHub(s geom.Sampler) *Hub {
	return &Hub{sampler: s, entries: make(map[string]*hubEntry)}
}

// Attach registers effect under id. An earlier attachment with the same id
// is disposed first.
func (h *Hub) Attach(id string, effect Effect) *Handle {
	if old, ok := h.entries[id]; ok {
		old.effect.Dispose()
	} else {
		h.order = append(h.order, id)
	}
	h.entries[id] = &hubEntry{effect: effect}
	return &Handle{hub: h, id: id, effect: effect}
}

// ID returns the element id the handle was attached under.
func (hd *Handle) ID() string {
	return hd.id
}

// Effect returns the attached effect.
func (hd *Handle) Effect() Effect {
	return hd.effect
}

// Dispose detaches the element. A handle whose id has since been re-attached
// only disposes its own effect.
func (hd *Handle) Dispose() {
	if hd == nil || hd.hub == nil {
		return
	}
	hd.effect.Dispose()
	h := hd.hub
	hd.hub = nil
	e, ok := h.entries[hd.id]
	if !ok || e.effect != hd.effect {
		return
	}
	delete(h.entries, hd.id)
	for i, id := range h.order {
		if id == hd.id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of attached elements.
func (h *Hub) Len() int {
	return len(h.entries)
}

// Has reports whether id is attached.
func (h *Hub) Has(id string) bool {
	_, ok := h.entries[id]
	return ok
}

// Hovered reports whether the pointer is currently over id.
func (h *Hub) Hovered(id string) bool {
	e, ok := h.entries[id]
	return ok && e.hovered
}

// PointerMove hit-tests p against every element and delivers enter, move
// and leave transitions. It reports whether any effect needs frames.
func (h *Hub) PointerMove(p geom.Point, now time.Time) bool {
	inView := h.sampler.Viewport().Contains(p)
	for _, id := range h.order {
		e := h.entries[id]
		r := h.sampler.RectOf(id)
		if inView && r.Contains(p) {
			if !e.hovered {
				e.hovered = true
				e.effect.Enter(now)
			}
			e.effect.Move(p, r, now)
		} else if e.hovered {
			e.hovered = false
			e.effect.Leave(now)
		}
	}
	return h.Running()
}

// PointerLeave is delivered when the pointer leaves the window.
func (h *Hub) PointerLeave(now time.Time) bool {
	for _, id := range h.order {
		if e := h.entries[id]; e.hovered {
			e.hovered = false
			e.effect.Leave(now)
		}
	}
	return h.Running()
}

// Scrolled notifies every effect of a scroll.
func (h *Hub) Scrolled(now time.Time) {
	for _, id := range h.order {
		h.entries[id].effect.Scrolled(now)
	}
}

// Step advances each running effect exactly once and reports whether any
// still needs frames.
func (h *Hub) Step(now time.Time) bool {
	view := h.sampler.Viewport()
	for _, id := range h.order {
		e := h.entries[id]
		if !e.effect.Running() {
			continue
		}
		visible := geom.VisibleRatio(h.sampler.RectOf(id), view) >= VisibleThreshold
		e.effect.Step(now, visible)
	}
	return h.Running()
}

// Running reports whether any effect needs frames.
func (h *Hub) Running() bool {
	for _, id := range h.order {
		if h.entries[id].effect.Running() {
			return true
		}
	}
	return false
}

// DisposeAll detaches every element.
func (h *Hub) DisposeAll() {
	for _, id := range h.order {
		h.entries[id].effect.Dispose()
	}
	clear(h.entries)
	h.order = h.order[:0]
}
