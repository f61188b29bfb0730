package config

import "math"

// DifficultyManager derives per-level enemy parameters from the difficulty config.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a 1-based level number.
func (d *DifficultyManager) Level(levelNumber int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	if d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		return 1.0
	}
	progress := clampF(float64(levelNumber-1)/(maxAt-1), 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// EnemySpeed scales a base enemy speed for the given level.
func (d *DifficultyManager) EnemySpeed(base float64, levelNumber int) float64 {
	return base * (1.0 + d.Level(levelNumber)*d.cfg.Scaling.SpeedMultiplier)
}

// ExtraEnemies returns how many enemies difficulty adds on top of the level formula.
func (d *DifficultyManager) ExtraEnemies(levelNumber int) int {
	if !d.IsEnabled() {
		return 0
	}
	return int(math.Floor(d.Level(levelNumber) * float64(d.cfg.Scaling.ExtraEnemies)))
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
