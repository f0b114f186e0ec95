package geom

// Sampler answers geometry queries against the current layout. RectOf must
// be called fresh on every event since scrolling and resizing invalidate
// earlier results.
type Sampler interface {
	RectOf(id string) Rect
	Viewport() Rect
}

// Layout is a registry of document-space rectangles plus the scroll offset
// and screen viewport used to project them. It is only mutated from the
// bubbletea Update loop.
type Layout struct {
	rects    map[string]Rect
	order    []string
	scrollY  float64
	viewport Rect
	height   float64
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{rects: make(map[string]Rect)}
}

// Reset drops every placement. The scroll offset and viewport survive.
func (l *Layout) Reset() {
	clear(l.rects)
	l.order = l.order[:0]
	l.height = 0
}

// Place records the document rect of id, replacing any earlier placement.
func (l *Layout) Place(id string, r Rect) {
	if _, ok := l.rects[id]; !ok {
		l.order = append(l.order, id)
	}
	l.rects[id] = r
	if b := r.Bottom(); b > l.height {
		l.height = b
	}
}

// SetDocHeight overrides the document height derived from placements.
func (l *Layout) SetDocHeight(h float64) {
	l.height = max(h, 0)
}

// SetViewport sets the screen rectangle the document is scrolled through.
func (l *Layout) SetViewport(r Rect) {
	l.viewport = r
}

// Viewport returns the screen rectangle of the scrolling area.
func (l *Layout) Viewport() Rect {
	return l.viewport
}

// SetScroll sets the document offset shown at the top of the viewport,
// clamped to [0, MaxScroll].
func (l *Layout) SetScroll(y float64) {
	l.scrollY = min(max(y, 0), l.MaxScroll())
}

// ScrollY returns the current document offset.
func (l *Layout) ScrollY() float64 {
	return l.scrollY
}

// DocHeight returns the total document height.
func (l *Layout) DocHeight() float64 {
	return l.height
}

// MaxScroll returns the largest valid scroll offset.
func (l *Layout) MaxScroll() float64 {
	return max(l.height-l.viewport.Height, 0)
}

// RectOf returns the viewport-space rect of id, or the zero Rect if id has
// not been placed.
func (l *Layout) RectOf(id string) Rect {
	r, ok := l.rects[id]
	if !ok {
		return Rect{}
	}
	return r.Offset(l.viewport.Left, l.viewport.Top-l.scrollY)
}

// DocRect returns the document-space rect of id.
func (l *Layout) DocRect(id string) (Rect, bool) {
	r, ok := l.rects[id]
	return r, ok
}

// IDs returns placed ids in placement order.
func (l *Layout) IDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// HitTest returns the last placed id among candidates whose viewport rect
// contains p. Later placements sit on top of earlier ones. Points outside
// the viewport never hit.
func (l *Layout) HitTest(p Point, candidates []string) (string, bool) {
	if !l.viewport.Contains(p) {
		return "", false
	}
	for i := len(candidates) - 1; i >= 0; i-- {
		if l.RectOf(candidates[i]).Contains(p) {
			return candidates[i], true
		}
	}
	return "", false
}
