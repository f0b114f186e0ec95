package interact

// FrameLoop guards a self-rescheduling frame tick. At most one loop runs at
// a time; ticks carry the generation they were requested under so stale
// ticks can be dropped after Cancel.
type FrameLoop struct {
	gen    uint64
	active bool
}

// Request starts a loop and returns its generation. It returns false when
// a loop is already running, in which case no new tick should be scheduled.
func (f *FrameLoop) Request() (uint64, bool) {
	if f.active {
		return 0, false
	}
	f.active = true
	f.gen++
	return f.gen, true
}

// Valid reports whether a tick from generation gen should be processed.
func (f *FrameLoop) Valid(gen uint64) bool {
	return f.active && gen == f.gen
}

// Stop marks the loop idle after its last tick.
func (f *FrameLoop) Stop() {
	f.active = false
}

// Cancel stops the loop and invalidates any tick still in flight.
func (f *FrameLoop) Cancel() {
	f.active = false
	f.gen++
}

// Active reports whether a loop is running.
func (f *FrameLoop) Active() bool {
	return f.active
}

// Gen returns the current generation.
func (f *FrameLoop) Gen() uint64 {
	return f.gen
}
