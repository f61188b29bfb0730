// Package progression records what happens during a level session and turns
// that record into experience, levels and coins.
//
// Everything here is pure: the simulation feeds the Log, the reward layer
// evaluates finished SessionReports with a Policy.
package progression

// ActionType enumerates the loggable gameplay events. The string values are
// part of the wire format and of the YAML XP table.
type ActionType string

const (
	ActionBlockDestroyed ActionType = "BLOCK_WEAK_DESTROYED"
	ActionEnemyKilled    ActionType = "ENEMY_KILLED"
	ActionHardEnemyKill  ActionType = "ENEMY_HARD_KILLED"
	ActionItemCollected  ActionType = "ITEM_COLLECTED"
	ActionChainHit       ActionType = "CHAIN_HIT_BONUS"
	ActionSurviveMinute  ActionType = "SURVIVE_MINUTE"
	ActionLevelCleared   ActionType = "LEVEL_CLEARED"
	ActionPerfectBonus   ActionType = "GAME_PERFECT_BONUS"
	ActionBombPlaced     ActionType = "BOMB_PLACED"
	ActionMovement       ActionType = "MOVEMENT_INPUT"
)

// ActionTypes lists every known action type in a stable order.
var ActionTypes = []ActionType{
	ActionBlockDestroyed,
	ActionEnemyKilled,
	ActionHardEnemyKill,
	ActionItemCollected,
	ActionChainHit,
	ActionSurviveMinute,
	ActionLevelCleared,
	ActionPerfectBonus,
	ActionBombPlaced,
	ActionMovement,
}

// Known reports whether t is one of the defined action types.
func (t ActionType) Known() bool {
	for _, k := range ActionTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Derived reports whether t is a bonus computed at evaluation time rather
// than logged during play.
func (t ActionType) Derived() bool {
	return t == ActionSurviveMinute || t == ActionPerfectBonus
}

// ActionContext carries the optional entity or grid reference of an action.
type ActionContext struct {
	EntityID uint64 `msgpack:"entity_id,omitempty" json:"entity_id,omitempty"`
	Col      int    `msgpack:"col" json:"col"`
	Row      int    `msgpack:"row" json:"row"`
}

// GameAction is one entry of a session action log.
// At is the session clock in milliseconds when the action happened.
type GameAction struct {
	Type    ActionType     `msgpack:"type" json:"type"`
	At      int64          `msgpack:"at" json:"at"`
	Context *ActionContext `msgpack:"ctx,omitempty" json:"ctx,omitempty"`
}

// CellContext builds a context for a grid cell.
func CellContext(col, row int) *ActionContext {
	return &ActionContext{Col: col, Row: row}
}

// EntityContext builds a context for an entity standing on a grid cell.
func EntityContext(id uint64, col, row int) *ActionContext {
	return &ActionContext{EntityID: id, Col: col, Row: row}
}
