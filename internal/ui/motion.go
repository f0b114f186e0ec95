package ui

// MotionMode is the animation setting.
type MotionMode int

const (
	MotionFull MotionMode = iota
	MotionReduced
)

// Next cycles to the next motion mode.
func (r MotionMode) Next() MotionMode {
	switch r {
	case MotionFull:
		return MotionReduced
	default:
		return MotionFull
	}
}

// String returns the name of the motion mode.
func (r MotionMode) String() string {
	switch r {
	case MotionReduced:
		return "reduced"
	default:
		return "full"
	}
}

// Icon returns a visual indicator for the motion mode.
func (r MotionMode) Icon() string {
	switch r {
	case MotionReduced:
		return "[reduced motion]"
	default:
		return ""
	}
}
