package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if store.Path() != dbPath {
		t.Errorf("Path() = %q, expected %q", store.Path(), dbPath)
	}
}

func TestEnsureAndSavePlayer(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.LoadPlayer(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadPlayer() error = %v, expected ErrNotFound", err)
	}

	p, err := store.EnsurePlayer(ctx, "p1", "alice")
	if err != nil {
		t.Fatalf("EnsurePlayer() failed: %v", err)
	}
	if p.Level != 1 || p.MaxXP != progression.StartingMaxXP || p.TotalXP != 0 {
		t.Errorf("new profile = %+v, expected level 1 with no XP", p)
	}

	p.AddXP(250)
	claimed := time.UnixMilli(1_700_000_000_000)
	p.LastRewardClaimed = claimed
	p.Coins = 100
	if err := store.SavePlayer(ctx, p); err != nil {
		t.Fatalf("SavePlayer() failed: %v", err)
	}

	// A second ensure must not reset the stored profile.
	got, err := store.EnsurePlayer(ctx, "p1", "alice")
	if err != nil {
		t.Fatalf("EnsurePlayer() failed: %v", err)
	}
	if got.TotalXP != 250 || got.Level != p.Level || got.CurrentXP != p.CurrentXP {
		t.Errorf("EnsurePlayer() = %+v, expected %+v", got, p)
	}
	if got.Coins != 100 {
		t.Errorf("Coins = %d, expected 100", got.Coins)
	}
	if !got.LastRewardClaimed.Equal(claimed) {
		t.Errorf("LastRewardClaimed = %v, expected %v", got.LastRewardClaimed, claimed)
	}

	missing := progression.NewProfile("ghost", "ghost", time.Now())
	if err := store.SavePlayer(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("SavePlayer(missing) error = %v, expected ErrNotFound", err)
	}
}

func TestSaveSessionDuplicate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	rec := SessionRecord{SessionID: "s-1", PlayerID: "p1", Mode: "campaign", Level: 1, Difficulty: "normal", Outcome: "cleared", Score: 500}
	id, err := store.SaveSession(ctx, rec)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveSession() id = %d, expected positive", id)
	}

	if _, err := store.SaveSession(ctx, rec); !errors.Is(err, ErrDuplicate) {
		t.Errorf("second SaveSession() error = %v, expected ErrDuplicate", err)
	}
}

func TestSettleSessionAtomic(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	rec := SessionRecord{SessionID: "s-1", PlayerID: "p1", Mode: "campaign", Level: 1, Difficulty: "normal", Outcome: "cleared", AwardedXP: 300}
	p := progression.NewProfile("p1", "alice", time.Now())
	p.AddXP(300)

	// No player row yet: the update fails and the session insert is rolled back.
	if _, err := store.SettleSession(ctx, rec, p); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SettleSession() before EnsurePlayer error = %v, expected ErrNotFound", err)
	}
	recs, err := store.RecentSessions(ctx, "p1", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("RecentSessions() = %d rows after failed settle, expected 0", len(recs))
	}

	if _, err := store.EnsurePlayer(ctx, "p1", "alice"); err != nil {
		t.Fatalf("EnsurePlayer() failed: %v", err)
	}
	id, err := store.SettleSession(ctx, rec, p)
	if err != nil {
		t.Fatalf("SettleSession() retry failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SettleSession() id = %d, expected positive", id)
	}
	got, err := store.LoadPlayer(ctx, "p1")
	if err != nil {
		t.Fatalf("LoadPlayer() failed: %v", err)
	}
	if got.TotalXP != 300 {
		t.Errorf("TotalXP = %d, expected 300", got.TotalXP)
	}

	p.AddXP(300)
	if _, err := store.SettleSession(ctx, rec, p); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate SettleSession() error = %v, expected ErrDuplicate", err)
	}
	got, err = store.LoadPlayer(ctx, "p1")
	if err != nil {
		t.Fatalf("LoadPlayer() failed: %v", err)
	}
	if got.TotalXP != 300 {
		t.Errorf("TotalXP after duplicate = %d, expected 300", got.TotalXP)
	}
}

func TestRecentSessions(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	actions := []progression.GameAction{
		{Type: progression.ActionBombPlaced, At: 100},
		{Type: progression.ActionEnemyKilled, At: 2500},
	}
	data, err := progression.EncodeActions(actions)
	if err != nil {
		t.Fatalf("EncodeActions() failed: %v", err)
	}

	base := time.UnixMilli(1_700_000_000_000)
	for i, sid := range []string{"a", "b", "c"} {
		_, err := store.SaveSession(ctx, SessionRecord{
			SessionID:   sid,
			PlayerID:    "p1",
			Mode:        "campaign",
			Level:       i + 1,
			Difficulty:  "normal",
			Outcome:     "cleared",
			Score:       (i + 1) * 100,
			ActionCount: len(actions),
			Actions:     data,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveSession(%s) failed: %v", sid, err)
		}
	}
	if _, err := store.SaveSession(ctx, SessionRecord{SessionID: "other", PlayerID: "p2", Mode: "endless", Difficulty: "easy", Outcome: "failed"}); err != nil {
		t.Fatalf("SaveSession(other) failed: %v", err)
	}

	recs, err := store.RecentSessions(ctx, "p1", 2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(recs))
	}
	if recs[0].SessionID != "c" || recs[1].SessionID != "b" {
		t.Errorf("order = %s, %s, expected c, b", recs[0].SessionID, recs[1].SessionID)
	}
	if !recs[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v, expected %v", recs[0].CreatedAt, base.Add(2*time.Minute))
	}

	decoded, err := progression.DecodeActions(recs[0].Actions)
	if err != nil {
		t.Fatalf("DecodeActions() failed: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Type != progression.ActionEnemyKilled {
		t.Errorf("decoded actions = %+v", decoded)
	}
}

func TestTopPlayers(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	xp := map[string]int{"a": 50, "b": 900, "c": 300}
	for _, id := range []string{"a", "b", "c"} {
		p, err := store.EnsurePlayer(ctx, id, "user-"+id)
		if err != nil {
			t.Fatalf("EnsurePlayer() failed: %v", err)
		}
		p.AddXP(xp[id])
		if err := store.SavePlayer(ctx, p); err != nil {
			t.Fatalf("SavePlayer() failed: %v", err)
		}
	}

	top, err := store.TopPlayers(ctx, 2)
	if err != nil {
		t.Fatalf("TopPlayers() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(top))
	}
	if top[0].ID != "b" || top[1].ID != "c" {
		t.Errorf("leaderboard = %+v, expected b then c", top)
	}
	if top[0].DisplayName != "user-b" || top[0].TotalXP != 900 {
		t.Errorf("top entry = %+v", top[0])
	}

	all, err := store.TopPlayers(ctx, 0)
	if err != nil {
		t.Fatalf("TopPlayers(0) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("TopPlayers(0) returned %d entries, expected 3", len(all))
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		numbered bool
		in       string
		expected string
	}{
		{"sqlite keeps placeholders", false, "a = ? AND b = ?", "a = ? AND b = ?"},
		{"postgres numbers placeholders", true, "a = ? AND b = ?", "a = $1 AND b = $2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &sqlStore{dialect: dialect{numbered: tt.numbered}}
			if got := s.rebind(tt.in); got != tt.expected {
				t.Errorf("rebind() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.bomber/bomber.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if expected := filepath.Join(home, ".bomber", "bomber.db"); got != expected {
		t.Errorf("ExpandPath() = %q, expected %q", got, expected)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandPath() = %q, expected unchanged", got)
	}
}
