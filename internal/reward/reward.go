// Package reward turns finished level sessions into persistent XP.
//
// The simulation hands a progression.SessionReport to a Dispatcher, which
// submits it off the game loop to a Submitter: either the local Ledger
// backed by storage, or a remote reward server over a websocket. Failures
// never reach the game; they degrade to a zero Award.
package reward

import (
	"context"
	"errors"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

var (
	// ErrQueueFull is returned when the dispatcher cannot accept another report.
	ErrQueueFull = errors.New("reward: queue full")
	// ErrClosed is returned after the dispatcher has been closed.
	ErrClosed = errors.New("reward: dispatcher closed")
)

// Award is the outcome of an authoritative session evaluation.
type Award struct {
	SessionID    string              `msgpack:"session_id" json:"session_id"`
	XP           int                 `msgpack:"xp" json:"xp"`
	LevelsGained int                 `msgpack:"levels_gained" json:"levels_gained"`
	Dropped      int                 `msgpack:"dropped" json:"dropped"` // Actions rejected by the sanitizer
	Profile      progression.Profile `msgpack:"profile" json:"profile"`
}

// Submitter evaluates a report on behalf of one player.
type Submitter interface {
	SubmitSession(ctx context.Context, report progression.SessionReport) (Award, error)
}

// Player identifies who a submission is credited to.
type Player struct {
	ID       string `msgpack:"id" json:"id"`
	Username string `msgpack:"username" json:"username"`
	Mode     string `msgpack:"mode" json:"mode"` // Game mode id, e.g. "campaign"
}

// LocalSubmitter credits reports to a player through a Ledger in process.
type LocalSubmitter struct {
	Ledger *Ledger
	Player Player
}

// NewLocalSubmitter creates a submitter bound to one player.
func NewLocalSubmitter(l *Ledger, p Player) *LocalSubmitter {
	return &LocalSubmitter{Ledger: l, Player: p}
}

// SubmitSession settles the report in the local ledger.
func (s *LocalSubmitter) SubmitSession(ctx context.Context, report progression.SessionReport) (Award, error) {
	return s.Ledger.Settle(ctx, s.Player, report)
}
