package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/reward"
)

// Services are the collaborators of one player's terminal session.
// Every field is optional.
type Services struct {
	// Reporter receives finished session reports, usually a reward.Dispatcher.
	Reporter progression.Reporter
	// Awards delivers the reporter's results.
	Awards <-chan reward.Result

	Leaderboard reward.Leaderboard
	Profile     func(ctx context.Context) (progression.Profile, error)
	PlayerID    string

	HoldWindow time.Duration
	Logger     *log.Logger
}

type appState int

const (
	stateMenu appState = iota
	stateGame
	stateLeaderboard
)

// profileMsg delivers a refreshed profile.
type profileMsg struct {
	profile progression.Profile
	err     error
}

// AppModel runs the full flow: menu, games and leaderboard.
type AppModel struct {
	svc    Services
	config core.RuntimeConfig
	state  appState

	menu     MenuModel
	game     *Model
	board    *LeaderboardModel
	profile  *progression.Profile
	quitting bool
}

// NewAppModel creates the session flow model.
func NewAppModel(cfg core.RuntimeConfig, svc Services) AppModel {
	if svc.Logger == nil {
		svc.Logger = log.Default()
	}
	return AppModel{
		svc:    svc,
		config: cfg,
		menu:   NewMenuModel(cfg, svc.Leaderboard != nil),
	}
}

func (m AppModel) fetchProfile() tea.Cmd {
	fetch := m.svc.Profile
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p, err := fetch(ctx)
		return profileMsg{profile: p, err: err}
	}
}

// Init starts listening for awards and loads the profile.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.fetchProfile(), waitForAward(m.svc.Awards))
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		menu, _ := m.menu.Update(msg)
		m.menu = menu.(MenuModel)

	case profileMsg:
		if msg.err != nil {
			m.svc.Logger.Warn("profile unavailable", "err", msg.err)
			return m, nil
		}
		p := msg.profile
		m.profile = &p
		m.menu.profile = m.profile
		return m, nil

	case AwardMsg:
		if msg.Err == nil {
			m.menu.note = fmt.Sprintf("+%d XP for the last level", msg.Award.XP)
		}
		cmds := []tea.Cmd{waitForAward(m.svc.Awards), m.fetchProfile()}
		if m.state == stateGame && m.game != nil {
			next, _ := m.game.Update(msg)
			gm := next.(Model)
			m.game = &gm
		}
		return m, tea.Batch(cmds...)
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateLeaderboard:
		return m.updateLeaderboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.menu.selected = nil
	m.config = m.menu.Config()

	switch selected.Kind {
	case MenuItemLeaderboard:
		board := NewLeaderboardModel(m.svc.Leaderboard, m.svc.PlayerID, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		m.state = stateLeaderboard
		return m, m.board.Init()

	case MenuItemGame:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			m.svc.Logger.Error("cannot start mode", "mode", selected.GameID, "err", err)
			return m, nil
		}
		// The app owns the awards channel; the game model only gets results forwarded.
		gameSvc := m.svc
		gameSvc.Awards = nil
		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		gm := NewModel(game, cfg, gameSvc)
		m.game = &gm
		m.state = stateGame
		return m, m.game.Init()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(Model)
	m.game = &gm

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		m.state = stateMenu
		return m, m.fetchProfile()
	}
	return m, cmd
}

func (m AppModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	board := next.(LeaderboardModel)
	m.board = &board

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.board = nil
		m.state = stateMenu
		return m, nil
	}
	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.state == stateGame && m.game != nil:
		return m.game.View()
	case m.state == stateLeaderboard && m.board != nil:
		return m.board.View()
	}
	return m.menu.View()
}

// RunApp runs the menu flow in the alternate screen.
func RunApp(cfg core.RuntimeConfig, svc Services) error {
	_, err := tea.NewProgram(NewAppModel(cfg, svc), tea.WithAltScreen()).Run()
	return err
}
