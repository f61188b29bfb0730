// Package sim is the in-level simulation of the bomber game.
//
// A Session owns every entity of one level, advances them once per tick
// and resolves their overlaps into domain events. Entities are plain
// structs with capability interfaces; the session keeps an ownership map
// from EntityID to entity and typed slices for ordered iteration.
package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// EntityID identifies an entity within one session.
type EntityID uint64

// Kind is the category of an entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindBomb
	KindSegment
	KindEnemy
	KindItem
	KindPortal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBomb:
		return "bomb"
	case KindSegment:
		return "segment"
	case KindEnemy:
		return "enemy"
	case KindItem:
		return "item"
	case KindPortal:
		return "portal"
	default:
		return "unknown"
	}
}

// Entity is anything the session tracks and collides.
type Entity interface {
	ID() EntityID
	Kind() Kind
	Bounds() core.Box
	// Alive is false once the entity stops taking part in collisions.
	Alive() bool
}

// Updatable entities advance themselves once per tick.
type Updatable interface {
	Entity
	Update(env *Env)
}

// Disabler entities can be switched off after an unexpected fault.
type Disabler interface {
	Disable()
}

// Env is the read-only view of the world handed to entity updates.
type Env struct {
	Now       time.Duration
	DT        time.Duration
	Grid      *world.Grid
	Rand      *rand.Rand
	Target    core.Vec
	HasTarget bool
	Blocked   func(world.Cell) bool
}

// Direction is a cardinal movement direction.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

var cardinals = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the grid step of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Vec returns the unit vector of the direction.
func (d Direction) Vec() core.Vec {
	dc, dr := d.Delta()
	return core.Vec{X: float64(dc), Y: float64(dr)}
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// DirectionFromAction maps a core movement action to a direction.
func DirectionFromAction(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	case core.ActionRight:
		return DirRight
	default:
		return DirNone
	}
}

// towards returns the cardinal direction dominating v.
func towards(v core.Vec) Direction {
	switch {
	case v.X == 0 && v.Y == 0:
		return DirNone
	case abs(v.X) >= abs(v.Y) && v.X > 0:
		return DirRight
	case abs(v.X) >= abs(v.Y):
		return DirLeft
	case v.Y > 0:
		return DirDown
	default:
		return DirUp
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
