package progression

import "time"

// Log is the append-only action log of one level session.
//
// Movement heartbeats are throttled to at most one per heartbeat interval.
// The log can be flushed once; after that it ignores further records.
type Log struct {
	entries   []GameAction
	heartbeat time.Duration
	lastBeat  time.Duration
	beaten    bool
	flushed   bool
}

// NewLog creates an empty log with the given heartbeat interval.
func NewLog(heartbeat time.Duration) *Log {
	return &Log{heartbeat: heartbeat}
}

// Record appends an action stamped with the session clock value at.
func (l *Log) Record(t ActionType, at time.Duration, ctx *ActionContext) {
	if l.flushed {
		return
	}
	l.entries = append(l.entries, GameAction{
		Type:    t,
		At:      at.Milliseconds(),
		Context: ctx,
	})
}

// Heartbeat records a movement action unless one was recorded less than
// the heartbeat interval ago. It reports whether an entry was appended.
func (l *Log) Heartbeat(at time.Duration) bool {
	if l.flushed {
		return false
	}
	if l.beaten && at-l.lastBeat < l.heartbeat {
		return false
	}
	l.beaten = true
	l.lastBeat = at
	l.Record(ActionMovement, at, nil)
	return true
}

// Flush hands out the recorded entries. Only the first call returns true;
// later calls return nil and false.
func (l *Log) Flush() ([]GameAction, bool) {
	if l.flushed {
		return nil, false
	}
	l.flushed = true
	out := l.entries
	l.entries = nil
	return out, true
}

// Flushed reports whether Flush has been called.
func (l *Log) Flushed() bool {
	return l.flushed
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Count returns how many entries of type t were recorded.
func (l *Log) Count(t ActionType) int {
	n := 0
	for _, e := range l.entries {
		if e.Type == t {
			n++
		}
	}
	return n
}
