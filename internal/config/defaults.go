package config

import (
	_ "embed"
)

//go:embed defaults/bomber.yaml
var defaultBomberYAML []byte

// GetDefaultYAML returns the embedded default configuration file.
func GetDefaultYAML() []byte {
	out := make([]byte, len(defaultBomberYAML))
	copy(out, defaultBomberYAML)
	return out
}

// DefaultBomberConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultBomberConfig() BomberConfig {
	return BomberConfig{
		Map: MapConfig{
			TileSize:     32,
			Width:        25,
			Height:       19,
			BlockDensity: 0.3,
		},
		Bomb: BombConfig{
			FuseMS:      3000,
			ExplosionMS: 500,
		},
		Player: PlayerConfig{
			Lives:           3,
			StartCol:        1,
			StartRow:        1,
			Hitbox:          20,
			Speed:           160,
			SpeedStep:       20,
			MaxSpeed:        300,
			StartRange:      1,
			MaxRange:        6,
			StartBombs:      1,
			MaxBombs:        6,
			RespawnDelayMS:  1500,
			InvulnerableMS:  1200,
			HeartbeatMS:     100,
			CornerTolerance: 12,
		},
		Enemies: EnemyConfig{
			BaseCount:      3,
			PerLevel:       2,
			MaxCount:       15,
			Speed:          80,
			Hitbox:         24,
			TurnIntervalMS: 2000,
			TurnChance:     0.5,
			LeashDistance:  320,
			CorpseMS:       500,
			SpawnExclusion: 4,
			SpawnAttempts:  200,
			HardFromLevel:  5,
			HardSpeedBoost: 0.25,
		},
		Items: ItemConfig{
			DropChance:     0.5,
			InvulnerableMS: 600,
			WarningMS:      7000,
			LifetimeMS:     10000,
			Hitbox:         24,
		},
		Portal: PortalConfig{
			MinDistance:   64,
			SpawnAttempts: 200,
		},
		Scoring: ScoringConfig{
			Enemy: 100,
			Item:  50,
			Level: 500,
		},
		Rewards: RewardConfig{
			PerMinuteCap:  600,
			SurviveMinute: 20,
			PerfectBonus:  150,
		},
		Flow: FlowConfig{
			LevelCompleteDelayMS: 2000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				ExtraEnemies:    2,
			},
		},
	}
}
