package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	path := filepath.Join(dir, bomberFile)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadBomberEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadBomber("")
	if err != nil {
		t.Fatalf("LoadBomber() error = %v", err)
	}
	if cfg.Map.Width != 25 || cfg.Map.Height != 19 {
		t.Errorf("Map = %dx%d, expected 25x19", cfg.Map.Width, cfg.Map.Height)
	}
	if cfg.Player.Lives != 3 {
		t.Errorf("Player.Lives = %d, expected 3", cfg.Player.Lives)
	}
	if cfg.Rewards.PerMinuteCap != 600 {
		t.Errorf("Rewards.PerMinuteCap = %d, expected 600", cfg.Rewards.PerMinuteCap)
	}
}

func TestLoadBomberPartialOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), "player:\n  lives: 7\n")

	cfg, err := LoadBomber(path)
	if err != nil {
		t.Fatalf("LoadBomber() error = %v", err)
	}
	if cfg.Player.Lives != 7 {
		t.Errorf("Player.Lives = %d, expected 7", cfg.Player.Lives)
	}
	if cfg.Map.Width != DefaultBomberConfig().Map.Width {
		t.Errorf("Map.Width = %d, expected default %d", cfg.Map.Width, DefaultBomberConfig().Map.Width)
	}
}

func TestLoadBomberUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, filepath.Join(home, ".bomber", "configs"), "map:\n  block_density: 0.1\n")

	cfg, err := LoadBomber("")
	if err != nil {
		t.Fatalf("LoadBomber() error = %v", err)
	}
	if cfg.Map.BlockDensity != 0.1 {
		t.Errorf("Map.BlockDensity = %v, expected 0.1", cfg.Map.BlockDensity)
	}
}

func TestLoadBomberErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"invalid yaml", writeConfig(t, dir, "player: [1, 2\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadBomber(tt.path); err == nil {
				t.Errorf("LoadBomber(%q) error = nil, expected error", tt.path)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		input    string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePreset(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreset(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParsePreset(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestApplyBomberPreset(t *testing.T) {
	cfg := DefaultBomberConfig()
	ApplyBomberPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset left difficulty enabled")
	}

	cfg = DefaultBomberConfig()
	ApplyBomberPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("Difficulty = %+v, expected enabled at 0.7", cfg.Difficulty)
	}
	if cfg.Player.Lives != 2 {
		t.Errorf("Player.Lives = %d, expected 2", cfg.Player.Lives)
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultBomberConfig().Difficulty
	cfg.Enabled = true
	cfg.InitialLevel = 0
	cfg.Progression = ProgressionConfig{Type: "level", MaxAt: 5}
	cfg.Scaling.ExtraEnemies = 4
	d := NewDifficultyManager(cfg)

	tests := []struct {
		level    int
		expected float64
		extra    int
	}{
		{1, 0, 0},
		{3, 0.5, 2},
		{5, 1, 4},
		{9, 1, 4},
	}
	for _, tt := range tests {
		if got := d.Level(tt.level); got != tt.expected {
			t.Errorf("Level(%d) = %v, expected %v", tt.level, got, tt.expected)
		}
		if got := d.ExtraEnemies(tt.level); got != tt.extra {
			t.Errorf("ExtraEnemies(%d) = %d, expected %d", tt.level, got, tt.extra)
		}
	}

	cfg.Enabled = false
	if got := NewDifficultyManager(cfg).ExtraEnemies(5); got != 0 {
		t.Errorf("ExtraEnemies() disabled = %d, expected 0", got)
	}
}

func TestRewardPolicy(t *testing.T) {
	r := RewardConfig{
		XP:           map[string]int{string(progression.ActionEnemyKilled): 99},
		PerMinuteCap: 1000,
	}
	p := r.Policy()
	if got := p.Value(progression.ActionEnemyKilled); got != 99 {
		t.Errorf("Value(ENEMY_KILLED) = %d, expected 99", got)
	}
	if got := p.Value(progression.ActionLevelCleared); got != 250 {
		t.Errorf("Value(LEVEL_CLEARED) = %d, expected default 250", got)
	}
	if p.PerMinuteCap != 1000 {
		t.Errorf("PerMinuteCap = %d, expected 1000", p.PerMinuteCap)
	}
	if p.SurviveMinute != progression.DefaultPolicy().SurviveMinute {
		t.Errorf("SurviveMinute = %d, expected default", p.SurviveMinute)
	}
}
