package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/reward"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	frames    []core.InputFrame
	awards    []int
	abandoned int
	reporter  progression.Reporter
}

func (g *fakeGame) ID() string                         { return "fake" }
func (g *fakeGame) Title() string                      { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig)           {}
func (g *fakeGame) Render(dst *core.Screen)            { dst.DrawText(0, 0, "FAKE") }
func (g *fakeGame) State() core.GameState              { return core.GameState{} }
func (g *fakeGame) RecordAward(xp int)                 { g.awards = append(g.awards, xp) }
func (g *fakeGame) Abandon()                           { g.abandoned++ }
func (g *fakeGame) UseReporter(r progression.Reporter) { g.reporter = r }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: core.GameState{Score: len(g.frames)}}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func TestHoldTracker(t *testing.T) {
	base := time.Unix(0, 0)
	h := newHoldTracker(250 * time.Millisecond)

	tests := []struct {
		name     string
		press    core.Action
		at       time.Duration
		expected core.Action
	}{
		{"nothing held", core.ActionNone, 0, core.ActionNone},
		{"press holds", core.ActionRight, 0, core.ActionRight},
		{"inside window", core.ActionNone, 200 * time.Millisecond, core.ActionRight},
		{"repeat extends", core.ActionRight, 240 * time.Millisecond, core.ActionRight},
		{"still held after repeat", core.ActionNone, 450 * time.Millisecond, core.ActionRight},
		{"window expires", core.ActionNone, 600 * time.Millisecond, core.ActionNone},
		{"new direction", core.ActionUp, 700 * time.Millisecond, core.ActionUp},
		{"non-direction ignored", core.ActionPlaceBomb, 710 * time.Millisecond, core.ActionUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.press != core.ActionNone {
				h.Press(tt.press, base.Add(tt.at))
			}
			if got := h.Current(base.Add(tt.at)); got != tt.expected {
				t.Errorf("Current() = %v, expected %v", got, tt.expected)
			}
		})
	}

	h.Release()
	if got := h.Current(base.Add(720 * time.Millisecond)); got != core.ActionNone {
		t.Errorf("Current() after Release = %v, expected None", got)
	}
}

func TestKeyMapMapKey(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		key      string
		expected core.Action
	}{
		{"up", core.ActionUp},
		{"w", core.ActionUp},
		{"s", core.ActionDown},
		{"a", core.ActionLeft},
		{"d", core.ActionRight},
		{" ", core.ActionPlaceBomb},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"esc", core.ActionBack},
		{"q", core.ActionQuit},
		{"z", core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := km.MapKey(keyMsg(tt.key)); got != tt.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestModelTickCarriesInput(t *testing.T) {
	g := &fakeGame{}
	reporter := progression.ReporterFunc(func(progression.SessionReport) {})
	m := NewModel(g, testConfig(), Services{Reporter: reporter})
	if g.reporter == nil {
		t.Error("NewModel() did not hand the reporter to the game")
	}

	now := time.Unix(100, 0)
	m.now = func() time.Time { return now }

	next, _ := m.Update(keyMsg("d"))
	next, _ = next.Update(keyMsg(" "))
	next, _ = next.Update(TickMsg(now.Add(16 * time.Millisecond)))
	next, _ = next.Update(TickMsg(now.Add(32 * time.Millisecond)))
	next, _ = next.Update(TickMsg(now.Add(time.Second)))
	m = next.(Model)

	if len(g.frames) != 3 {
		t.Fatalf("Step() called %d times, expected 3", len(g.frames))
	}
	if g.frames[0].Held != core.ActionRight || !g.frames[0].Has(core.ActionPlaceBomb) {
		t.Errorf("first frame = %+v, expected held right with a bomb", g.frames[0])
	}
	if g.frames[1].Has(core.ActionPlaceBomb) {
		t.Error("bomb action repeated on the second frame")
	}
	if g.frames[1].Held != core.ActionRight {
		t.Errorf("second frame held = %v, expected Right", g.frames[1].Held)
	}
	if g.frames[2].Held != core.ActionNone {
		t.Errorf("held = %v after the hold window, expected None", g.frames[2].Held)
	}
	if m.State().Score != 3 {
		t.Errorf("State().Score = %d, expected 3", m.State().Score)
	}
}

func TestModelAward(t *testing.T) {
	g := &fakeGame{}
	results := make(chan reward.Result, 1)
	m := NewModel(g, testConfig(), Services{Awards: results})

	next, cmd := m.Update(AwardMsg(reward.Result{Award: reward.Award{XP: 120}}))
	m = next.(Model)
	if len(g.awards) != 1 || g.awards[0] != 120 {
		t.Errorf("awards = %v, expected [120]", g.awards)
	}
	if cmd == nil {
		t.Error("Update(AwardMsg) should keep listening for awards")
	}
	if !strings.Contains(m.View(), "+120 XP") {
		t.Error("View() does not show the award")
	}

	next, _ = m.Update(AwardMsg(reward.Result{Err: errors.New("offline")}))
	m = next.(Model)
	if len(g.awards) != 1 {
		t.Errorf("failed award was recorded: %v", g.awards)
	}
	if !strings.Contains(m.View(), "reward unavailable") {
		t.Error("View() does not report the failed award")
	}
}

func TestModelBackAbandons(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), Services{})

	next, _ := m.Update(keyMsg("esc"))
	m = next.(Model)
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false after esc")
	}
	if g.abandoned != 1 {
		t.Errorf("Abandon() called %d times, expected 1", g.abandoned)
	}

	if _, cmd := m.Update(TickMsg(time.Now())); cmd != nil {
		t.Error("tick loop kept running after leaving the game")
	}
}

type staticBoard struct {
	entries []progression.LeaderboardEntry
}

func (b staticBoard) TopN(ctx context.Context, n int) ([]progression.LeaderboardEntry, error) {
	return b.entries, nil
}

func TestLeaderboardModel(t *testing.T) {
	source := staticBoard{entries: []progression.LeaderboardEntry{
		{ID: "a", DisplayName: "alice", TotalXP: 900, Level: 8},
		{ID: "b", DisplayName: "bob", TotalXP: 300, Level: 3},
	}}
	m := NewLeaderboardModel(source, "b", 80, 24)

	msg := m.fetch()()
	next, _ := m.Update(msg)
	m = next.(LeaderboardModel)

	if len(m.Entries()) != 2 {
		t.Fatalf("Entries() = %d, expected 2", len(m.Entries()))
	}
	view := m.View()
	for _, want := range []string{"alice", "bob", "you"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	// A tick from an older leaderboard does nothing.
	if _, cmd := m.Update(leaderboardTickMsg{gen: m.gen - 1}); cmd != nil {
		t.Error("stale refresh tick scheduled another fetch")
	}
	if _, cmd := m.Update(leaderboardTickMsg{gen: m.gen}); cmd == nil {
		t.Error("refresh tick did not schedule a fetch")
	}
}

func TestPlayerID(t *testing.T) {
	if PlayerID("alice") != PlayerID("alice") {
		t.Error("PlayerID() is not stable")
	}
	if PlayerID("alice") == PlayerID("bob") {
		t.Error("PlayerID() collides for different users")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 1, '@', core.ColorBrightWhite)

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", strings.Count(out, "\n"))
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "@") {
		t.Errorf("RenderScreen() = %q, missing content", out)
	}
}
