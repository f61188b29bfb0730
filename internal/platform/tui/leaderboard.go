package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/reward"
)

const (
	leaderboardRefresh = 30 * time.Second
	leaderboardSize    = 10
	leaderboardTimeout = 5 * time.Second
)

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Refresh}, {k.Back, k.Quit}}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// leaderboardMsg delivers one fetch result.
type leaderboardMsg struct {
	entries []progression.LeaderboardEntry
	err     error
	at      time.Time
}

// leaderboardTickMsg triggers a periodic refresh. Ticks of an older model
// generation are ignored, which ends their refresh chain.
type leaderboardTickMsg struct {
	gen int64
}

var leaderboardGen atomic.Int64

// LeaderboardModel shows the top players by total XP.
type LeaderboardModel struct {
	source   reward.Leaderboard
	playerID string
	gen      int64

	table   table.Model
	help    help.Model
	keys    LeaderboardKeyMap
	entries []progression.LeaderboardEntry
	err     error
	updated time.Time
	loading bool

	width     int
	height    int
	quitting   bool
	goingBack  bool
	quitOnBack bool
}

// NewLeaderboardModel creates a leaderboard reading from source. The row
// of playerID is marked.
func NewLeaderboardModel(source reward.Leaderboard, playerID string, width, height int) LeaderboardModel {
	m := LeaderboardModel{
		source:   source,
		playerID: playerID,
		gen:      leaderboardGen.Add(1),
		help:     help.New(),
		keys:     DefaultLeaderboardKeyMap(),
		width:    width,
		height:   height,
		loading:  source != nil,
	}
	m.table = m.createTable()
	return m
}

func (m *LeaderboardModel) createTable() table.Model {
	nameWidth := 20
	if m.width > 70 {
		nameWidth = min(m.width-46, 32)
	}
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: nameWidth},
		{Title: "Level", Width: 7},
		{Title: "Total XP", Width: 10},
		{Title: "", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m LeaderboardModel) fetch() tea.Cmd {
	source := m.source
	if source == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
		defer cancel()
		entries, err := source.TopN(ctx, leaderboardSize)
		return leaderboardMsg{entries: entries, err: err, at: time.Now()}
	}
}

func (m LeaderboardModel) scheduleRefresh() tea.Cmd {
	gen := m.gen
	return tea.Tick(leaderboardRefresh, func(time.Time) tea.Msg {
		return leaderboardTickMsg{gen: gen}
	})
}

func (m *LeaderboardModel) setRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		marker := ""
		if e.ID == m.playerID {
			marker = "you"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.DisplayName,
			fmt.Sprintf("%d", e.Level),
			fmt.Sprintf("%d", e.TotalXP),
			marker,
		}
	}
	m.table.SetRows(rows)
}

// Init fetches the leaderboard and starts the refresh timer.
func (m LeaderboardModel) Init() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return tea.Batch(m.fetch(), m.scheduleRefresh())
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.quitOnBack {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = m.source != nil
			return m, m.fetch()
		}

	case leaderboardMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			m.updated = msg.at
			m.setRows()
		}
		return m, nil

	case leaderboardTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, tea.Batch(m.fetch(), m.scheduleRefresh())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.setRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("LEADERBOARD"), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case m.source == nil:
		content = dimStyle.Italic(true).Render("Leaderboard unavailable without storage.")
	case len(m.entries) == 0 && m.loading:
		content = dimStyle.Render("Loading...")
	case len(m.entries) == 0:
		content = dimStyle.Italic(true).Padding(2, 4).Render("No players yet.\nClear a level to get on the board!")
	default:
		content = m.table.View()
	}
	b.WriteString(boxStyle.Render(content))
	b.WriteString("\n")

	status := ""
	if !m.updated.IsZero() {
		status = "updated " + m.updated.Format("15:04:05")
	}
	if m.err != nil {
		status = errorStyle.Render("refresh failed: " + m.err.Error())
	}
	b.WriteString(dimStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Entries returns the rows currently shown.
func (m LeaderboardModel) Entries() []progression.LeaderboardEntry {
	return m.entries
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LeaderboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}

// RunLeaderboard shows the leaderboard on its own until back or quit.
func RunLeaderboard(source reward.Leaderboard, playerID string, width, height int) error {
	m := NewLeaderboardModel(source, playerID, width, height)
	m.quitOnBack = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
