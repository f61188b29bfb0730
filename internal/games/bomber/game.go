// Package bomber wires the level simulation into a playable game: level to
// level progression, the transition pause between levels, restarts and the
// terminal rendering of a session.
package bomber

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/levels"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/sim"
	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

// Game states
const (
	StatePlaying    = "playing"
	StateTransition = "transition" // Level cleared, waiting for the next one
	StateGameOver   = "gameover"
	StateWin        = "win" // Campaign finished
)

// GameMode selects how the catalog is traversed.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through the catalog once
	ModeEndless                  // Cycle the catalog with growing enemy counts
)

var (
	configPath       string
	levelsDir        string
	difficultyPreset config.DifficultyPreset
	reporter         progression.Reporter
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsDir adds a directory of YAML level files after the built-ins.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetReporter sets the collaborator that receives finished session reports.
func SetReporter(r progression.Reporter) {
	reporter = r
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	logger = l
}

func init() {
	registry.Register("campaign", func() registry.Game { return New() })
	registry.Register("endless", func() registry.Game { return NewEndless() })
}

// Game implements registry.Game on top of a sequence of level sessions.
type Game struct {
	mode GameMode

	runtime    core.RuntimeConfig
	cfg        config.BomberConfig
	preset     config.DifficultyPreset
	difficulty *config.DifficultyManager
	catalog    *levels.Catalog
	logger     *log.Logger
	reporter   progression.Reporter

	// Per-instance overrides of the package-level collaborators.
	ownLogger   *log.Logger
	ownReporter progression.Reporter

	session     *sim.Session
	carry       sim.Carry
	levelIndex  int // Index into the catalog
	levelNumber int // 1-based count of levels reached
	cycle       int // Completed passes over the catalog (endless)

	state      string
	paused     bool
	tick       uint64
	transition time.Duration
	lastEvents []sim.Event
	lastAward  int
	awarded    int
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// UseReporter routes this game's session reports to r instead of the
// package-level reporter. Takes effect on the next Reset.
func (g *Game) UseReporter(r progression.Reporter) {
	g.ownReporter = r
}

// UseLogger sets a logger for this game only. Takes effect on the next Reset.
func (g *Game) UseLogger(l *log.Logger) {
	g.ownLogger = l
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "endless"
	}
	return "campaign"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Bomber (Endless)"
	}
	return "Bomber"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Loop the levels forever; every pass brings more enemies"
	}
	return "Clear every level to win"
}

// Reset discards any running session and starts a new run from level 1.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = logger
	if g.ownLogger != nil {
		g.logger = g.ownLogger
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	g.reporter = reporter
	if g.ownReporter != nil {
		g.reporter = g.ownReporter
	}

	if g.session != nil {
		g.session.Abandon()
		g.session.Close()
		g.session = nil
	}

	cfg, err := config.LoadBomber(configPath)
	if err != nil {
		g.logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultBomberConfig()
	}
	g.preset = difficultyPreset
	if g.preset == "" {
		g.preset = config.DifficultyNormal
	}
	config.ApplyBomberPreset(&cfg, g.preset)
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.catalog = levels.NewCatalog(cfg.Map.Width, cfg.Map.Height, cfg.Map.BlockDensity, g.logger)
	if levelsDir != "" {
		if n, err := g.catalog.LoadDir(levelsDir); err != nil {
			g.logger.Warn("level directory unavailable", "dir", levelsDir, "err", err)
		} else {
			g.logger.Debug("loaded level files", "dir", levelsDir, "count", n)
		}
	}

	g.carry = sim.StartingCarry(cfg)
	g.levelIndex = 0
	g.levelNumber = 1
	g.cycle = 0
	g.paused = false
	g.tick = 0
	g.transition = 0
	g.lastAward = 0
	g.awarded = 0
	g.lastEvents = nil
	g.startLevel()
}

func (g *Game) startLevel() {
	level := g.catalog.Load(g.levelIndex)
	opts := sim.Options{
		Config:        g.cfg,
		Level:         level,
		LevelNumber:   g.levelNumber,
		Difficulty:    string(g.preset),
		Carry:         g.carry,
		Seed:          g.runtime.Seed + int64(g.levelNumber)*7919,
		TickRate:      g.runtime.TickRate,
		Reporter:      g.reporter,
		Logger:        g.logger,
		DifficultyMgr: g.difficulty,
	}

	s, err := sim.NewSession(opts)
	if err != nil {
		g.logger.Warn("level failed to build, using default", "level", level.ID, "err", err)
		opts.Level = levels.Default(g.cfg.Map.Width, g.cfg.Map.Height, g.cfg.Map.BlockDensity)
		s, err = sim.NewSession(opts)
	}
	if err != nil {
		g.logger.Error("default level failed to build", "err", err)
		g.state = StateGameOver
		return
	}
	g.session = s
	g.state = StatePlaying
	g.logger.Info("level started", "mode", g.ID(), "level", level.ID, "number", g.levelNumber, "lives", g.carry.Lives)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.lastEvents = nil

	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && g.state == StatePlaying {
		g.paused = !g.paused
	}
	if g.paused || g.session == nil {
		return core.StepResult{State: g.State()}
	}

	switch g.state {
	case StatePlaying:
		g.lastEvents = g.session.Step(sim.InputFromFrame(in))
		switch g.session.Phase() {
		case sim.PhaseCleared:
			g.carry = g.session.Carry()
			if g.mode == ModeCampaign && g.levelIndex+1 >= g.catalog.Len() {
				g.state = StateWin
				g.logger.Info("campaign complete", "score", g.carry.Score)
				break
			}
			g.state = StateTransition
			g.transition = config.Millis(g.cfg.Flow.LevelCompleteDelayMS)
		case sim.PhaseGameOver:
			g.carry = g.session.Carry()
			g.state = StateGameOver
		}

	case StateTransition:
		g.transition -= g.tickDuration()
		if g.transition <= 0 {
			g.nextLevel()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) nextLevel() {
	g.session.Close()
	g.levelIndex++
	g.levelNumber++
	if g.levelIndex >= g.catalog.Len() {
		g.levelIndex = 0
		g.cycle++
	}
	g.startLevel()
}

func (g *Game) tickDuration() time.Duration {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// State returns the HUD state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Level:    g.levelNumber,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
		Paused:   g.paused,
	}
	if g.session != nil {
		st.Score = g.session.Score()
		st.Lives = g.session.Player().Lives()
		st.SessionXP = g.session.SessionXP()
	}
	return st
}

// RecordAward stores the XP granted by the reward collaborator for the
// last finished session so the HUD can show it.
func (g *Game) RecordAward(xp int) {
	g.lastAward = xp
	g.awarded += xp
}

// Abandon reports the running session as abandoned. Used when the player
// quits mid-level.
func (g *Game) Abandon() {
	if g.session != nil {
		g.session.Abandon()
		g.session.Close()
	}
}

// Session returns the current level session.
func (g *Game) Session() *sim.Session { return g.session }

// Phase returns the game state string.
func (g *Game) Phase() string { return g.state }

// Events returns the simulation events of the last tick.
func (g *Game) Events() []sim.Event { return g.lastEvents }

// Config returns the effective configuration.
func (g *Game) Config() config.BomberConfig { return g.cfg }

// Carry returns the progression carried between levels.
func (g *Game) Carry() sim.Carry {
	if g.session != nil && g.state == StatePlaying {
		return g.session.Carry()
	}
	return g.carry
}
