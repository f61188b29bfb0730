package reward

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []string
	err   error
	block chan struct{}
}

func (f *fakeSubmitter) SubmitSession(ctx context.Context, r progression.SessionReport) (Award, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return Award{}, ctx.Err()
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, r.SessionID)
	f.mu.Unlock()
	if f.err != nil {
		return Award{}, f.err
	}
	return Award{SessionID: r.SessionID, XP: r.Score}, nil
}

func receive(t *testing.T, d *Dispatcher) Result {
	t.Helper()
	select {
	case res := <-d.Results():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a result")
		return Result{}
	}
}

func TestDispatcherDeliversAwards(t *testing.T) {
	sub := &fakeSubmitter{}
	d := NewDispatcher(sub, DispatcherConfig{}, quietLogger())
	defer d.Close()

	d.Report(progression.SessionReport{SessionID: "a", Score: 10})
	d.Report(progression.SessionReport{SessionID: "b", Score: 20})

	first, second := receive(t, d), receive(t, d)
	if first.Report.SessionID != "a" || first.Award.XP != 10 {
		t.Errorf("first result = %+v", first)
	}
	if second.Report.SessionID != "b" || second.Award.XP != 20 {
		t.Errorf("second result = %+v", second)
	}
}

func TestDispatcherFailureAwardsNothing(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("server down")}
	d := NewDispatcher(sub, DispatcherConfig{}, quietLogger())
	defer d.Close()

	d.Report(progression.SessionReport{SessionID: "a", Score: 10})
	res := receive(t, d)
	if res.Err == nil {
		t.Error("Err = nil, expected the submission error")
	}
	if res.Award.XP != 0 {
		t.Errorf("Award.XP = %d, expected 0", res.Award.XP)
	}
}

func TestDispatcherTimeout(t *testing.T) {
	sub := &fakeSubmitter{block: make(chan struct{})}
	d := NewDispatcher(sub, DispatcherConfig{Timeout: 20 * time.Millisecond}, quietLogger())
	defer d.Close()

	d.Report(progression.SessionReport{SessionID: "slow"})
	res := receive(t, d)
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("Err = %v, expected deadline exceeded", res.Err)
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	sub := &fakeSubmitter{block: make(chan struct{})}
	d := NewDispatcher(sub, DispatcherConfig{QueueSize: 1, Timeout: time.Minute}, quietLogger())

	// The worker takes at most one report; the queue holds one more.
	var errs []error
	for i := 0; i < 3; i++ {
		errs = append(errs, d.Enqueue(progression.SessionReport{SessionID: "r"}))
	}
	full := false
	for _, err := range errs {
		if errors.Is(err, ErrQueueFull) {
			full = true
		}
	}
	if !full {
		t.Errorf("Enqueue() errors = %v, expected ErrQueueFull", errs)
	}

	close(sub.block)
	d.Close()
}

func TestDispatcherClose(t *testing.T) {
	sub := &fakeSubmitter{}
	d := NewDispatcher(sub, DispatcherConfig{}, quietLogger())

	d.Report(progression.SessionReport{SessionID: "queued"})
	d.Close()
	d.Close()

	if err := d.Enqueue(progression.SessionReport{SessionID: "late"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Enqueue() after Close = %v, expected ErrClosed", err)
	}

	// Queued reports are submitted before Results closes.
	var got []string
	for res := range d.Results() {
		got = append(got, res.Report.SessionID)
	}
	if len(got) != 1 || got[0] != "queued" {
		t.Errorf("results = %v, expected [queued]", got)
	}
}
