package sim

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// Portal is the level exit. It stays hidden until spawned, and spawns at
// most once per session.
type Portal struct {
	id        EntityID
	cell      world.Cell
	box       core.Box
	spawned   bool
	spawnedAt time.Duration
}

func (p *Portal) ID() EntityID     { return p.id }
func (p *Portal) Kind() Kind       { return KindPortal }
func (p *Portal) Bounds() core.Box { return p.box }
func (p *Portal) Alive() bool      { return p.spawned }

// Active reports whether the portal has been spawned.
func (p *Portal) Active() bool { return p.spawned }

// Cell returns the portal tile. Only meaningful once spawned.
func (p *Portal) Cell() world.Cell { return p.cell }

// SpawnedAt returns the session time the portal opened.
func (p *Portal) SpawnedAt() time.Duration { return p.spawnedAt }

// spawn opens the portal and reports whether this call did it.
func (p *Portal) spawn(id EntityID, cell world.Cell, box core.Box, now time.Duration) bool {
	if p.spawned {
		return false
	}
	p.id = id
	p.cell = cell
	p.box = box
	p.spawned = true
	p.spawnedAt = now
	return true
}
