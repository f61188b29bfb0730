package sim

import "github.com/vovakirdan/tui-bomber/internal/games/bomber/world"

// EventKind is the type of a domain event produced by a tick.
type EventKind uint8

const (
	EventBombPlaced EventKind = iota
	EventBombDetonated
	EventBlockDestroyed
	EventItemDropped
	EventItemCollected
	EventItemDestroyed
	EventEnemyKilled
	EventPlayerDied
	EventPlayerRespawned
	EventPortalSpawned
	EventLevelCleared
	EventGameOver
)

var eventNames = [...]string{
	EventBombPlaced:      "bomb_placed",
	EventBombDetonated:   "bomb_detonated",
	EventBlockDestroyed:  "block_destroyed",
	EventItemDropped:     "item_dropped",
	EventItemCollected:   "item_collected",
	EventItemDestroyed:   "item_destroyed",
	EventEnemyKilled:     "enemy_killed",
	EventPlayerDied:      "player_died",
	EventPlayerRespawned: "player_respawned",
	EventPortalSpawned:   "portal_spawned",
	EventLevelCleared:    "level_cleared",
	EventGameOver:        "game_over",
}

// String returns the event name.
func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is something that happened during a tick.
type Event struct {
	Kind   EventKind
	Entity EntityID
	Cell   world.Cell
}
