package sim

import (
	"time"

	"github.com/zyedidia/generic/heap"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

type timer struct {
	id        TimerID
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// Scheduler runs deferred callbacks against a session clock that only
// moves when Advance is called. Callbacks fire in (due, scheduling order)
// and only from Advance, so they never interleave with tick resolution.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	queue  *heap.Heap[*timer]
	live   map[TimerID]*timer
	closed bool
}

// NewScheduler creates a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		queue: heap.New[*timer](func(a, b *timer) bool {
			if a.due != b.due {
				return a.due < b.due
			}
			return a.seq < b.seq
		}),
		live: make(map[TimerID]*timer),
	}
}

// Now returns the current session clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by d.
// A closed scheduler ignores the call and returns 0.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if s.closed {
		return 0
	}
	s.seq++
	t := &timer{
		id:  TimerID(s.seq),
		due: s.now + max(d, 0),
		seq: s.seq,
		fn:  fn,
	}
	s.queue.Push(t)
	s.live[t.id] = t
	return t.id
}

// Cancel prevents a pending timer from firing and reports whether it was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.live[id]
	if !ok {
		return false
	}
	t.cancelled = true
	delete(s.live, id)
	return true
}

// Advance moves the clock forward by dt and fires every timer that became
// due. Timers scheduled by a firing callback wait for the next Advance even
// when their due time has already passed. It returns the number fired.
func (s *Scheduler) Advance(dt time.Duration) int {
	if s.closed {
		return 0
	}
	s.now += dt
	boundary := s.seq
	fired := 0
	for !s.closed {
		t, ok := s.queue.Peek()
		if !ok || t.due > s.now || t.seq > boundary {
			break
		}
		s.queue.Pop()
		if t.cancelled {
			continue
		}
		delete(s.live, t.id)
		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of timers waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.live)
}

// Close cancels every pending timer. Later calls to After and Advance are no-ops.
func (s *Scheduler) Close() {
	s.closed = true
	for id, t := range s.live {
		t.cancelled = true
		delete(s.live, id)
	}
	s.queue = heap.New[*timer](func(a, b *timer) bool { return a.seq < b.seq })
}

// Closed reports whether Close has been called.
func (s *Scheduler) Closed() bool {
	return s.closed
}
