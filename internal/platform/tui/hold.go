package tui

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// DefaultHoldWindow is how long a direction stays held after its last key
// event. Terminals report no key releases, only auto-repeat presses, so a
// direction counts as held while repeats keep arriving.
const DefaultHoldWindow = 250 * time.Millisecond

// holdTracker derives the polled held direction from key repeat.
type holdTracker struct {
	window time.Duration
	dir    core.Action
	last   time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &holdTracker{window: window}
}

// Press records a direction key event. A new direction replaces the old one.
func (h *holdTracker) Press(dir core.Action, at time.Time) {
	if !dir.IsDirection() {
		return
	}
	h.dir = dir
	h.last = at
}

// Release drops the held direction immediately.
func (h *holdTracker) Release() {
	h.dir = core.ActionNone
}

// Current returns the direction held at the given time.
func (h *holdTracker) Current(at time.Time) core.Action {
	if h.dir == core.ActionNone {
		return core.ActionNone
	}
	if at.Sub(h.last) > h.window {
		h.dir = core.ActionNone
	}
	return h.dir
}
