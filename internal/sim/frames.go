package sim

import "time"

// Scheduler is the host's per-frame callback hook. fn receives the frame
// timestamp.
type Scheduler interface {
	Schedule(fn func(now time.Duration))
}

// FrameQueue is a manual frame source: callbacks scheduled during a frame run
// on the next Advance. Not safe for concurrent use.
type FrameQueue struct {
	now     time.Duration
	pending []func(time.Duration)
}

func (q *FrameQueue) Schedule(fn func(time.Duration)) {
	q.pending = append(q.pending, fn)
}

// Advance moves the clock by dt and fires the callbacks queued before the
// call. It returns how many fired.
func (q *FrameQueue) Advance(dt time.Duration) int {
	q.now += dt
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn(q.now)
	}
	return len(fns)
}

// Fire runs the queued callbacks at an absolute timestamp.
func (q *FrameQueue) Fire(now time.Duration) int {
	if now < q.now {
		now = q.now
	}
	return q.Advance(now - q.now)
}

func (q *FrameQueue) Pending() int       { return len(q.pending) }
func (q *FrameQueue) Now() time.Duration { return q.now }

// Seconds converts a float delta for Advance.
func Seconds(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }
