package sim

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// ItemKind is the power-up granted by an item.
type ItemKind uint8

const (
	ItemRange ItemKind = iota
	ItemSpeed
	ItemBombs
	itemKinds
)

// String returns the item kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemRange:
		return "range"
	case ItemSpeed:
		return "speed"
	case ItemBombs:
		return "bombs"
	default:
		return "unknown"
	}
}

// ItemState is the lifecycle stage of an item.
type ItemState uint8

const (
	ItemSpawning ItemState = iota // Immune to blasts
	ItemActive
	ItemWarning // Blinking, about to expire
	ItemExpired
	ItemDestroyed
)

// ItemTiming holds the item clocks, all measured from spawn.
type ItemTiming struct {
	Invulnerable time.Duration
	Warning      time.Duration
	Lifetime     time.Duration
}

// blinkPeriod is the on/off period of the warning blink.
const blinkPeriod = 200 * time.Millisecond

// Item is a power-up dropped by a destroyed block.
type Item struct {
	id        EntityID
	kind      ItemKind
	cell      world.Cell
	box       core.Box
	spawnedAt time.Duration
	timing    ItemTiming
	state     ItemState
}

// NewItem creates an item spawned at now.
func NewItem(id EntityID, kind ItemKind, cell world.Cell, box core.Box, timing ItemTiming, now time.Duration) *Item {
	return &Item{
		id:        id,
		kind:      kind,
		cell:      cell,
		box:       box,
		spawnedAt: now,
		timing:    timing,
		state:     ItemSpawning,
	}
}

func (it *Item) ID() EntityID     { return it.id }
func (it *Item) Kind() Kind       { return KindItem }
func (it *Item) Bounds() core.Box { return it.box }
func (it *Item) Alive() bool      { return it.state < ItemExpired }

// ItemKind returns the power-up type.
func (it *Item) ItemKind() ItemKind { return it.kind }

// Cell returns the tile the item sits on.
func (it *Item) Cell() world.Cell { return it.cell }

// State returns the lifecycle stage.
func (it *Item) State() ItemState { return it.state }

// Update advances the item clocks.
func (it *Item) Update(env *Env) {
	it.advance(env.Now)
}

func (it *Item) advance(now time.Duration) {
	if !it.Alive() {
		return
	}
	age := now - it.spawnedAt
	switch {
	case age >= it.timing.Lifetime:
		it.state = ItemExpired
	case age >= it.timing.Warning:
		it.state = ItemWarning
	case age >= it.timing.Invulnerable:
		it.state = ItemActive
	default:
		it.state = ItemSpawning
	}
}

// HitByBlast destroys the item unless it is still in its invulnerability
// window or already gone. It reports whether the item was destroyed.
func (it *Item) HitByBlast(now time.Duration) bool {
	it.advance(now)
	if it.state == ItemSpawning || !it.Alive() {
		return false
	}
	it.state = ItemDestroyed
	return true
}

// Collect consumes the item on pickup and reports whether it was available.
func (it *Item) Collect(now time.Duration) bool {
	it.advance(now)
	if !it.Alive() {
		return false
	}
	it.state = ItemDestroyed
	return true
}

// Disable removes the item from play.
func (it *Item) Disable() {
	if it.Alive() {
		it.state = ItemDestroyed
	}
}

// Visible reports whether the item is drawn at now; warning items blink.
func (it *Item) Visible(now time.Duration) bool {
	if !it.Alive() {
		return false
	}
	if it.state != ItemWarning {
		return true
	}
	return ((now-it.spawnedAt)/blinkPeriod)%2 == 0
}
