package pipeline

// Ring is a fixed-depth circular buffer of event times, modeling a pipeline
// stage's in-flight capacity: every ring-buffered stage in this package
// (Iq, Ex, Com) is one Ring of the right depth instead of its own struct.
//
// Advance has read-then-advance semantics: the slot overwritten on a push
// is the slot that was just read as the head, and the head moves to the
// next slot afterward.
type Ring struct {
	buf  []EventTime
	head int
}

// NewRing allocates a Ring with the given depth. depth must be positive.
func NewRing(depth int) *Ring {
	return &Ring{buf: make([]EventTime, depth)}
}

// Head returns the oldest in-flight event time without advancing. This is
// the stage's back-pressure signal.
func (r *Ring) Head() EventTime { return r.buf[r.head] }

// At returns the event time offset slots ahead of the head, without
// advancing. offset must be in [0, depth).
func (r *Ring) At(offset int) EventTime {
	return r.buf[(r.head+offset)%len(r.buf)]
}

// Advance pushes v into the slot at the head and moves the head forward one
// position.
func (r *Ring) Advance(v EventTime) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// Depth reports the ring's capacity.
func (r *Ring) Depth() int { return len(r.buf) }
