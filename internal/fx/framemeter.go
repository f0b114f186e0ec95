package fx

import (
	"sync"
	"time"
)

// FrameMeter keeps the most recent frame intervals in a ring.
type FrameMeter struct {
	buf  []time.Duration
	size int
	w    int // write position
	len  int // current fill level
	last time.Time
	mu   sync.Mutex
}

// NewFrameMeter creates a meter averaging over size frames.
func NewFrameMeter(size int) *FrameMeter {
	size = max(size, 1)
	return &FrameMeter{buf: make([]time.Duration, size), size: size}
}

// Tick records a frame at now.
func (m *FrameMeter) Tick(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.last.IsZero() && now.After(m.last) {
		m.buf[m.w] = now.Sub(m.last)
		m.w = (m.w + 1) % m.size
		if m.len < m.size {
			m.len++
		}
	}
	m.last = now
}

// FPS returns the average rate over the recorded frames, or 0 before two
// ticks.
func (m *FrameMeter) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.len == 0 {
		return 0
	}
	var total time.Duration
	for i := range m.len {
		total += m.buf[(m.w-1-i+m.size)%m.size]
	}
	if total <= 0 {
		return 0
	}
	return float64(m.len) / total.Seconds()
}

// Reset drops history, e.g. after the loop idled.
func (m *FrameMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.w = 0
	m.len = 0
	m.last = time.Time{}
}
