package sim

import (
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(200*time.Millisecond, func() { got = append(got, "b") })
	s.After(100*time.Millisecond, func() { got = append(got, "a") })
	s.After(200*time.Millisecond, func() { got = append(got, "c") })

	if n := s.Advance(150 * time.Millisecond); n != 1 {
		t.Errorf("Advance(150ms) = %d, expected 1", n)
	}
	if n := s.Advance(50 * time.Millisecond); n != 2 {
		t.Errorf("Advance(50ms) = %d, expected 2", n)
	}

	want := "abc"
	joined := ""
	for _, g := range got {
		joined += g
	}
	if joined != want {
		t.Errorf("fire order = %q, expected %q", joined, want)
	}
	if s.Now() != 200*time.Millisecond {
		t.Errorf("Now() = %v, expected 200ms", s.Now())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(10*time.Millisecond, func() { fired = true })

	if !s.Cancel(id) {
		t.Error("Cancel() = false, expected true")
	}
	if s.Cancel(id) {
		t.Error("second Cancel() = true, expected false")
	}
	s.Advance(time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestSchedulerNestedWaitsForNextAdvance(t *testing.T) {
	s := NewScheduler()
	nested := false
	s.After(0, func() {
		s.After(0, func() { nested = true })
	})

	s.Advance(time.Millisecond)
	if nested {
		t.Error("timer scheduled while firing ran in the same Advance")
	}
	s.Advance(0)
	if !nested {
		t.Error("nested timer did not fire on the next Advance")
	}
}

func TestSchedulerClose(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(10*time.Millisecond, func() { fired++ })
	s.After(20*time.Millisecond, func() { fired++ })

	s.Close()
	if !s.Closed() {
		t.Error("Closed() = false after Close")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
	if id := s.After(time.Millisecond, func() { fired++ }); id != 0 {
		t.Errorf("After() on closed scheduler = %d, expected 0", id)
	}
	if n := s.Advance(time.Second); n != 0 || fired != 0 {
		t.Errorf("Advance() after Close fired %d timers, expected 0", fired)
	}
}

func TestSchedulerCloseFromCallback(t *testing.T) {
	s := NewScheduler()
	second := false
	s.After(10*time.Millisecond, s.Close)
	s.After(10*time.Millisecond, func() { second = true })

	s.Advance(10 * time.Millisecond)
	if second {
		t.Error("timer fired after Close was called by an earlier callback")
	}
}
