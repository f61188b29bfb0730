package progression

import "math"

// Outcome is how a level session ended.
type Outcome string

const (
	OutcomeCleared   Outcome = "cleared"
	OutcomeFailed    Outcome = "failed"
	OutcomeAbandoned Outcome = "abandoned" // Restarted or quit before the end
)

// SessionReport is handed to the reward collaborator exactly once per session.
type SessionReport struct {
	SessionID       string       `msgpack:"session_id" json:"session_id"`
	Level           int          `msgpack:"level" json:"level"`
	Difficulty      string       `msgpack:"difficulty" json:"difficulty"`
	Outcome         Outcome      `msgpack:"outcome" json:"outcome"`
	Score           int          `msgpack:"score" json:"score"`
	Deaths          int          `msgpack:"deaths" json:"deaths"`
	DurationSeconds float64      `msgpack:"duration_seconds" json:"duration_seconds"`
	Actions         []GameAction `msgpack:"actions" json:"actions"`
}

// BombsPlaced counts BOMB_PLACED entries in the report.
func (r SessionReport) BombsPlaced() int {
	n := 0
	for _, a := range r.Actions {
		if a.Type == ActionBombPlaced {
			n++
		}
	}
	return n
}

// Reporter receives finished session reports. Implementations must not
// block the caller; the simulation calls Report from its tick.
type Reporter interface {
	Report(SessionReport)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(SessionReport)

// Report calls f(r).
func (f ReporterFunc) Report(r SessionReport) { f(r) }

// Policy is the XP table plus the anti-farming parameters.
type Policy struct {
	XP            map[ActionType]int
	PerMinuteCap  int // Max action XP per minute of session time
	SurviveMinute int // Bonus per whole minute survived
	PerfectBonus  int // Bonus for a session without deaths
}

// DefaultPolicy returns the standard XP table.
func DefaultPolicy() Policy {
	return Policy{
		XP: map[ActionType]int{
			ActionBlockDestroyed: 5,
			ActionEnemyKilled:    30,
			ActionHardEnemyKill:  75,
			ActionItemCollected:  10,
			ActionChainHit:       5,
			ActionSurviveMinute:  20,
			ActionLevelCleared:   250,
			ActionPerfectBonus:   150,
			ActionBombPlaced:     0,
			ActionMovement:       0,
		},
		PerMinuteCap:  600,
		SurviveMinute: 20,
		PerfectBonus:  150,
	}
}

// Value returns the XP of one action of type t. Unknown types are worth nothing.
func (p Policy) Value(t ActionType) int {
	return p.XP[t]
}

// Breakdown itemizes a session evaluation.
type Breakdown struct {
	ActionXP   int     // Raw sum over the log
	Cap        float64 // Allowed action XP for the session length
	ClippedXP  float64 // min(ActionXP, Cap)
	SurvivalXP int
	PerfectXP  int
	Total      int
}

// Evaluate computes the XP breakdown of a report:
// the action sum is clipped to PerMinuteCap per minute of session time,
// a survival bonus per whole minute is added when at least one bomb was
// placed, and a perfect bonus is added when a cleared level had no deaths.
// A cleared outcome only counts when the log holds LEVEL_CLEARED, so
// abandoned or forged reports never earn the perfect bonus.
func (p Policy) Evaluate(r SessionReport) Breakdown {
	var b Breakdown
	placedBomb, cleared := false, false
	for _, a := range r.Actions {
		b.ActionXP += p.Value(a.Type)
		switch a.Type {
		case ActionBombPlaced:
			placedBomb = true
		case ActionLevelCleared:
			cleared = true
		}
	}

	duration := math.Max(r.DurationSeconds, 0)
	b.Cap = float64(p.PerMinuteCap) * (duration / 60)
	b.ClippedXP = math.Min(float64(b.ActionXP), b.Cap)

	if placedBomb {
		b.SurvivalXP = int(math.Floor(duration/60)) * p.SurviveMinute
	}
	if r.Outcome == OutcomeCleared && cleared && r.Deaths == 0 {
		b.PerfectXP = p.PerfectBonus
	}

	b.Total = int(math.Floor(b.ClippedXP + float64(b.SurvivalXP+b.PerfectXP)))
	return b
}

// CalculateSessionXP returns the XP awarded for a report.
func CalculateSessionXP(r SessionReport, p Policy) int {
	return p.Evaluate(r).Total
}
