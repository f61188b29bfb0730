// Package config provides YAML-based game configuration loading and
// difficulty management for the bomber game.
package config

import (
	"time"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

// BomberConfig contains all tunable parameters of the game.
type BomberConfig struct {
	Map        MapConfig        `yaml:"map"`
	Bomb       BombConfig       `yaml:"bomb"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Items      ItemConfig       `yaml:"items"`
	Portal     PortalConfig     `yaml:"portal"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Rewards    RewardConfig     `yaml:"rewards"`
	Flow       FlowConfig       `yaml:"flow"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MapConfig defines the tile grid geometry.
type MapConfig struct {
	TileSize     int     `yaml:"tile_size"`     // Pixels per tile edge
	Width        int     `yaml:"width"`         // Columns of the generated default level
	Height       int     `yaml:"height"`        // Rows of the generated default level
	BlockDensity float64 `yaml:"block_density"` // Chance that a free tile gets a destructible block
}

// BombConfig defines bomb and blast timing.
type BombConfig struct {
	FuseMS      int  `yaml:"fuse_ms"`
	ExplosionMS int  `yaml:"explosion_ms"` // Lifetime of one blast segment
	HurtsPlayer bool `yaml:"hurts_player"`
}

// PlayerConfig defines player movement, power-up caps and respawn rules.
type PlayerConfig struct {
	Lives           int     `yaml:"lives"`
	StartCol        int     `yaml:"start_col"`
	StartRow        int     `yaml:"start_row"`
	Hitbox          float64 `yaml:"hitbox"`
	Speed           float64 `yaml:"speed"` // px/s
	SpeedStep       float64 `yaml:"speed_step"`
	MaxSpeed        float64 `yaml:"max_speed"`
	StartRange      int     `yaml:"start_range"`
	MaxRange        int     `yaml:"max_range"`
	StartBombs      int     `yaml:"start_bombs"`
	MaxBombs        int     `yaml:"max_bombs"`
	RespawnDelayMS  int     `yaml:"respawn_delay_ms"`
	InvulnerableMS  int     `yaml:"invulnerable_ms"`
	HeartbeatMS     int     `yaml:"heartbeat_ms"`     // Minimum gap between movement log entries
	CornerTolerance float64 `yaml:"corner_tolerance"` // px of misalignment nudged into corridors
}

// EnemyConfig defines enemy population, movement and AI timing.
type EnemyConfig struct {
	BaseCount      int     `yaml:"base_count"`
	PerLevel       int     `yaml:"per_level"`
	MaxCount       int     `yaml:"max_count"`
	Speed          float64 `yaml:"speed"`
	Hitbox         float64 `yaml:"hitbox"`
	TurnIntervalMS int     `yaml:"turn_interval_ms"`
	TurnChance     float64 `yaml:"turn_chance"`
	LeashDistance  float64 `yaml:"leash_distance"` // 0 disables leashing
	CorpseMS       int     `yaml:"corpse_ms"`
	SpawnExclusion int     `yaml:"spawn_exclusion"` // Tiles around the start kept enemy-free
	SpawnAttempts  int     `yaml:"spawn_attempts"`
	HardFromLevel  int     `yaml:"hard_from_level"` // 0 disables hard enemies
	HardSpeedBoost float64 `yaml:"hard_speed_boost"`
}

// ItemConfig defines power-up drops and lifetimes.
type ItemConfig struct {
	DropChance     float64 `yaml:"drop_chance"`
	InvulnerableMS int     `yaml:"invulnerable_ms"`
	WarningMS      int     `yaml:"warning_ms"`
	LifetimeMS     int     `yaml:"lifetime_ms"`
	Hitbox         float64 `yaml:"hitbox"`
}

// PortalConfig defines exit portal placement.
type PortalConfig struct {
	MinDistance   float64 `yaml:"min_distance"`
	SpawnAttempts int     `yaml:"spawn_attempts"`
}

// ScoringConfig defines HUD score awards.
type ScoringConfig struct {
	Enemy int `yaml:"enemy"`
	Item  int `yaml:"item"`
	Level int `yaml:"level"`
}

// RewardConfig defines the XP table and the session reward formula.
type RewardConfig struct {
	XP            map[string]int `yaml:"xp"`
	PerMinuteCap  int            `yaml:"per_minute_cap"`
	SurviveMinute int            `yaml:"survive_minute"`
	PerfectBonus  int            `yaml:"perfect_bonus"`
}

// FlowConfig defines pacing between levels.
type FlowConfig struct {
	LevelCompleteDelayMS int `yaml:"level_complete_delay_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty grows across levels.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level number at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
	ExtraEnemies    int     `yaml:"extra_enemies"`    // Added to enemy count at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Millis converts a millisecond count from YAML into a duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Policy builds the reward policy described by the config.
// Action types missing from the XP table keep their default values.
func (r RewardConfig) Policy() progression.Policy {
	p := progression.DefaultPolicy()
	for name, xp := range r.XP {
		p.XP[progression.ActionType(name)] = xp
	}
	if r.PerMinuteCap > 0 {
		p.PerMinuteCap = r.PerMinuteCap
	}
	if r.SurviveMinute > 0 {
		p.SurviveMinute = r.SurviveMinute
	}
	if r.PerfectBonus > 0 {
		p.PerfectBonus = r.PerfectBonus
	}
	return p
}
