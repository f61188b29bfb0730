package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// EnemyState is the AI state of an enemy.
type EnemyState uint8

const (
	EnemyWandering EnemyState = iota
	EnemyLeashing
	EnemyDead
)

// String returns the state name.
func (s EnemyState) String() string {
	switch s {
	case EnemyWandering:
		return "wandering"
	case EnemyLeashing:
		return "leashing"
	default:
		return "dead"
	}
}

// EnemyParams are the per-enemy tuning values.
type EnemyParams struct {
	Speed        float64 // px/s
	Size         float64
	TurnInterval time.Duration
	TurnChance   float64
	Leash        float64 // 0 disables leashing
	Hard         bool
}

// Enemy wanders the corridors and is pulled back toward the player when it
// strays beyond its leash.
type Enemy struct {
	id       EntityID
	pos      core.Vec
	dir      Direction
	state    EnemyState
	params   EnemyParams
	nextTurn time.Duration
	diedAt   time.Duration
}

// NewEnemy creates a wandering enemy centered at pos.
func NewEnemy(id EntityID, pos core.Vec, dir Direction, params EnemyParams, now time.Duration) *Enemy {
	return &Enemy{
		id:       id,
		pos:      pos,
		dir:      dir,
		state:    EnemyWandering,
		params:   params,
		nextTurn: now + params.TurnInterval,
	}
}

func (e *Enemy) ID() EntityID     { return e.id }
func (e *Enemy) Kind() Kind       { return KindEnemy }
func (e *Enemy) Bounds() core.Box { return core.BoxAround(e.pos, e.params.Size, e.params.Size) }
func (e *Enemy) Alive() bool      { return e.state != EnemyDead }

// Pos returns the enemy center.
func (e *Enemy) Pos() core.Vec { return e.pos }

// Direction returns the current heading.
func (e *Enemy) Direction() Direction { return e.dir }

// State returns the AI state.
func (e *Enemy) State() EnemyState { return e.state }

// Hard reports whether the enemy is a hard variant.
func (e *Enemy) Hard() bool { return e.params.Hard }

// DiedAt returns the session time of death. Only meaningful when dead.
func (e *Enemy) DiedAt() time.Duration { return e.diedAt }

// Die kills the enemy. Only the first call has an effect and returns true.
func (e *Enemy) Die(now time.Duration) bool {
	if e.state == EnemyDead {
		return false
	}
	e.state = EnemyDead
	e.diedAt = now
	return true
}

// Disable removes the enemy from play without a kill.
func (e *Enemy) Disable() {
	e.state = EnemyDead
}

// Update runs one tick of AI and movement.
func (e *Enemy) Update(env *Env) {
	if e.state == EnemyDead {
		return
	}

	if e.params.Leash > 0 && env.HasTarget && e.pos.Dist(env.Target) > e.params.Leash {
		e.state = EnemyLeashing
	} else if e.state == EnemyLeashing {
		e.state = EnemyWandering
		e.nextTurn = env.Now + e.params.TurnInterval
	}

	if e.state == EnemyLeashing {
		e.steer(env)
		return
	}
	e.wander(env)
}

func (e *Enemy) wander(env *Env) {
	if env.Now >= e.nextTurn {
		e.nextTurn = env.Now + e.params.TurnInterval
		if env.Rand.Float64() < e.params.TurnChance {
			e.turn(env.Rand)
		}
	}

	delta := e.dir.Vec().Scale(e.params.Speed * env.DT.Seconds())
	pos, hitX, hitY := move(env.Grid, e.pos, e.params.Size, delta, env.Blocked)
	e.pos = pos
	if hitX || hitY {
		e.turn(env.Rand)
	}
}

func (e *Enemy) steer(env *Env) {
	heading := env.Target.Sub(e.pos).Normalize()
	if d := towards(heading); d != DirNone {
		e.dir = d
	}
	delta := heading.Scale(e.params.Speed * env.DT.Seconds())
	e.pos, _, _ = move(env.Grid, e.pos, e.params.Size, delta, env.Blocked)
}

// turn picks a new heading uniformly among the three other directions.
func (e *Enemy) turn(rng *rand.Rand) {
	options := make([]Direction, 0, 3)
	for _, d := range cardinals {
		if d != e.dir {
			options = append(options, d)
		}
	}
	e.dir = options[rng.Intn(len(options))]
}
