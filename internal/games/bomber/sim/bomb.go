package sim

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// BombState is the lifecycle stage of a bomb.
type BombState uint8

const (
	BombArmed BombState = iota
	BombDetonating
	BombConsumed
)

// Bomb is a placed bomb waiting for its fuse or a chain trigger.
type Bomb struct {
	id       EntityID
	owner    EntityID
	cell     world.Cell
	box      core.Box
	rng      int
	placedAt time.Duration
	fuseAt   time.Duration
	fuse     TimerID
	state    BombState

	// ownerInside lets the owner walk off the tile it just placed the bomb on.
	ownerInside bool
}

func (b *Bomb) ID() EntityID     { return b.id }
func (b *Bomb) Kind() Kind       { return KindBomb }
func (b *Bomb) Bounds() core.Box { return b.box }
func (b *Bomb) Alive() bool      { return b.state == BombArmed }

// Cell returns the tile the bomb occupies.
func (b *Bomb) Cell() world.Cell { return b.cell }

// Range returns the blast range captured at placement.
func (b *Bomb) Range() int { return b.rng }

// State returns the lifecycle stage.
func (b *Bomb) State() BombState { return b.state }

// Owner returns the id of the player that placed the bomb.
func (b *Bomb) Owner() EntityID { return b.owner }

// FuseLeft returns the time until the fuse would expire.
func (b *Bomb) FuseLeft(now time.Duration) time.Duration {
	return max(b.fuseAt-now, 0)
}

// begin moves an armed bomb to detonating. Any other state refuses, which
// keeps detonation to at most once.
func (b *Bomb) begin() bool {
	if b.state != BombArmed {
		return false
	}
	b.state = BombDetonating
	return true
}

// Disable retires the bomb without a blast.
func (b *Bomb) Disable() { b.state = BombConsumed }

// Segment is one tile of an explosion. It is inert once expired.
type Segment struct {
	id        EntityID
	cell      world.Cell
	box       core.Box
	expiresAt time.Duration
	expired   bool
}

func (s *Segment) ID() EntityID     { return s.id }
func (s *Segment) Kind() Kind       { return KindSegment }
func (s *Segment) Bounds() core.Box { return s.box }
func (s *Segment) Alive() bool      { return !s.expired }

// Cell returns the tile covered by the segment.
func (s *Segment) Cell() world.Cell { return s.cell }

// Active reports whether the segment still burns at now.
func (s *Segment) Active(now time.Duration) bool {
	return !s.expired && now < s.expiresAt
}

// Disable makes the segment inert.
func (s *Segment) Disable() { s.expired = true }

// Update expires the segment when its lifetime has passed.
func (s *Segment) Update(env *Env) {
	if env.Now >= s.expiresAt {
		s.expired = true
	}
}
