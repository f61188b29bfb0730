package sim

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Carry is the progression handed from one level session to the next.
type Carry struct {
	Score    int
	Lives    int
	MaxBombs int
	Speed    float64
	Range    int
}

// PowerCaps are the ceilings of the power-up stats.
type PowerCaps struct {
	Range     int
	Speed     float64
	SpeedStep float64
	Bombs     int
}

// Player is the bomb-placing avatar.
type Player struct {
	id          EntityID
	pos         core.Vec
	spawn       core.Vec
	size        float64
	speed       float64
	rng         int
	maxBombs    int
	activeBombs int
	lives       int
	alive       bool
	facing      Direction
	invulnUntil time.Duration
	caps        PowerCaps
}

func (p *Player) ID() EntityID     { return p.id }
func (p *Player) Kind() Kind       { return KindPlayer }
func (p *Player) Bounds() core.Box { return core.BoxAround(p.pos, p.size, p.size) }
func (p *Player) Alive() bool      { return p.alive }

// Pos returns the player center.
func (p *Player) Pos() core.Vec { return p.pos }

// Speed returns the movement speed in px/s.
func (p *Player) Speed() float64 { return p.speed }

// Range returns the blast range given to new bombs.
func (p *Player) Range() int { return p.rng }

// MaxBombs returns the concurrent bomb cap.
func (p *Player) MaxBombs() int { return p.maxBombs }

// ActiveBombs returns the number of armed bombs owned by the player.
func (p *Player) ActiveBombs() int { return p.activeBombs }

// Lives returns the remaining lives.
func (p *Player) Lives() int { return p.lives }

// Facing returns the last movement direction.
func (p *Player) Facing() Direction { return p.facing }

// Invulnerable reports whether the post-respawn grace window is running.
func (p *Player) Invulnerable(now time.Duration) bool {
	return now < p.invulnUntil
}

// Apply grants the effect of a power-up, clamped to the caps. It reports
// whether any stat changed.
func (p *Player) Apply(kind ItemKind) bool {
	switch kind {
	case ItemRange:
		if p.rng < p.caps.Range {
			p.rng++
			return true
		}
	case ItemSpeed:
		if p.speed < p.caps.Speed {
			p.speed = min(p.speed+p.caps.SpeedStep, p.caps.Speed)
			return true
		}
	case ItemBombs:
		if p.maxBombs < p.caps.Bombs {
			p.maxBombs++
			return true
		}
	}
	return false
}
