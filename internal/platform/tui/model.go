package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/reward"
)

// AwardMsg carries one reward result from the dispatcher.
type AwardMsg reward.Result

// awardRecorder is implemented by games that show awarded XP on the HUD.
type awardRecorder interface {
	RecordAward(xp int)
}

// abandoner is implemented by games that report an unfinished session.
type abandoner interface {
	Abandon()
}

// reporterUser is implemented by games that accept a per-instance reporter.
type reporterUser interface {
	UseReporter(r progression.Reporter)
}

// loggerUser is implemented by games that accept a per-instance logger.
type loggerUser interface {
	UseLogger(l *log.Logger)
}

// waitForAward blocks on the results channel in a command goroutine.
func waitForAward(results <-chan reward.Result) tea.Cmd {
	if results == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return nil
		}
		return AwardMsg(res)
	}
}

// Model is the Bubble Tea model for a running game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model
	hold   *holdTracker
	frame  core.InputFrame
	state  core.GameState
	awards <-chan reward.Result

	lastAward  *reward.Result
	quitting   bool
	backToMenu bool
	now        func() time.Time
}

// NewModel creates a model for the given game. Reports of the game go to
// svc.Reporter and awards are read from svc.Awards when set.
func NewModel(game registry.Game, cfg core.RuntimeConfig, svc Services) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if svc.Reporter != nil {
		if ru, ok := game.(reporterUser); ok {
			ru.UseReporter(svc.Reporter)
		}
	}
	if svc.Logger != nil {
		if lu, ok := game.(loggerUser); ok {
			lu.UseLogger(svc.Logger)
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		hold:   newHoldTracker(svc.HoldWindow),
		frame:  core.NewInputFrame(),
		awards: svc.Awards,
		now:    time.Now,
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForAward(m.awards))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Board size is fixed by the level; only the viewport changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case AwardMsg:
		res := reward.Result(msg)
		m.lastAward = &res
		if rec, ok := m.game.(awardRecorder); ok && res.Err == nil {
			rec.RecordAward(res.Award.XP)
		}
		return m, waitForAward(m.awards)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if key.Matches(msg, m.keys.Stop) {
		m.hold.Release()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch {
	case action == core.ActionQuit:
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.abandon()
		m.backToMenu = true
		return m, nil
	case action.IsDirection():
		m.hold.Press(action, m.now())
	case action != core.ActionNone:
		m.frame.Set(action)
	}
	return m, nil
}

func (m Model) abandon() {
	if a, ok := m.game.(abandoner); ok {
		a.Abandon()
	}
}

func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	m.frame.Hold(m.hold.Current(at))
	result := m.game.Step(m.frame)
	m.state = result.State
	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as text under ~/.bomber/screenshots.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".bomber", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)

	footer := dimStyle.Render(m.help.View(m.keys))
	switch {
	case m.lastAward != nil && m.lastAward.Err != nil:
		footer = errorStyle.Render("reward unavailable  ") + footer
	case m.lastAward != nil:
		footer = awardStyle.Render(fmt.Sprintf("+%d XP  ", m.lastAward.Award.XP)) + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the HUD state of the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a single game in the alternate screen.
func Run(game registry.Game, cfg core.RuntimeConfig, svc Services) error {
	p := tea.NewProgram(NewModel(game, cfg, svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
