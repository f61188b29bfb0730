package reward

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openStore(t *testing.T) storage.Storage {
	t.Helper()
	store, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "reward.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// clearedReport is worth 475 XP: 285 from actions, 40 survival, 150 perfect.
func clearedReport(id string) progression.SessionReport {
	return progression.SessionReport{
		SessionID:       id,
		Level:           1,
		Difficulty:      "normal",
		Outcome:         progression.OutcomeCleared,
		Score:           600,
		DurationSeconds: 120,
		Actions: []progression.GameAction{
			{Type: progression.ActionBombPlaced, At: 1000},
			{Type: progression.ActionEnemyKilled, At: 5000},
			{Type: progression.ActionBlockDestroyed, At: 6000},
			{Type: "SPEED_HACK", At: 7000},
			{Type: progression.ActionEnemyKilled, At: -5},
			{Type: progression.ActionLevelCleared, At: 119000},
		},
	}
}

var alice = Player{ID: "p-alice", Username: "alice", Mode: "campaign"}

func TestLedgerSettle(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	l := NewLedger(store, WithLogger(quietLogger()))

	award, err := l.Settle(ctx, alice, clearedReport("s-1"))
	if err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	if award.XP != 475 {
		t.Errorf("XP = %d, expected 475", award.XP)
	}
	if award.Dropped != 2 {
		t.Errorf("Dropped = %d, expected 2", award.Dropped)
	}
	if award.LevelsGained != 4 || award.Profile.Level != 5 || award.Profile.CurrentXP != 11 {
		t.Errorf("profile = %+v (gained %d), expected level 5 with 11 XP", award.Profile, award.LevelsGained)
	}

	stored, err := store.LoadPlayer(ctx, alice.ID)
	if err != nil {
		t.Fatalf("LoadPlayer() failed: %v", err)
	}
	if stored.TotalXP != 475 {
		t.Errorf("stored TotalXP = %d, expected 475", stored.TotalXP)
	}

	recs, err := store.RecentSessions(ctx, alice.ID, 5)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recs) != 1 || recs[0].AwardedXP != 475 || recs[0].ActionCount != 4 || recs[0].Mode != "campaign" {
		t.Errorf("sessions = %+v", recs)
	}
}

func TestLedgerRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	l := NewLedger(store, WithLogger(quietLogger()))

	if _, err := l.Settle(ctx, alice, clearedReport("s-dup")); err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	_, err := l.Settle(ctx, alice, clearedReport("s-dup"))
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("second Settle() error = %v, expected ErrDuplicate", err)
	}

	p, _ := store.LoadPlayer(ctx, alice.ID)
	if p.TotalXP != 475 {
		t.Errorf("TotalXP = %d after duplicate, expected 475", p.TotalXP)
	}
}

// flakyStore fails the next n settle writes.
type flakyStore struct {
	storage.Storage
	n int
}

func (f *flakyStore) SettleSession(ctx context.Context, rec storage.SessionRecord, p progression.Profile) (int64, error) {
	if f.n > 0 {
		f.n--
		return 0, errors.New("disk full")
	}
	return f.Storage.SettleSession(ctx, rec, p)
}

func TestLedgerSettleRetryAfterWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Storage: openStore(t), n: 1}
	l := NewLedger(store, WithLogger(quietLogger()))

	if _, err := l.Settle(ctx, alice, clearedReport("s-1")); err == nil {
		t.Fatal("Settle() error = nil, expected write failure")
	}
	stored, err := store.LoadPlayer(ctx, alice.ID)
	if err != nil {
		t.Fatalf("LoadPlayer() failed: %v", err)
	}
	if stored.TotalXP != 0 {
		t.Errorf("TotalXP after failure = %d, expected 0", stored.TotalXP)
	}

	award, err := l.Settle(ctx, alice, clearedReport("s-1"))
	if err != nil {
		t.Fatalf("Settle() retry failed: %v", err)
	}
	if award.XP != 475 {
		t.Errorf("retry XP = %d, expected 475", award.XP)
	}
	stored, err = store.LoadPlayer(ctx, alice.ID)
	if err != nil {
		t.Fatalf("LoadPlayer() failed: %v", err)
	}
	if stored.TotalXP != 475 {
		t.Errorf("stored TotalXP = %d, expected 475", stored.TotalXP)
	}
}

func TestLedgerValidation(t *testing.T) {
	l := NewLedger(openStore(t), WithLogger(quietLogger()))
	tests := []struct {
		name   string
		player Player
		report progression.SessionReport
	}{
		{"missing player", Player{}, clearedReport("s-x")},
		{"missing session", alice, progression.SessionReport{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Settle(context.Background(), tt.player, tt.report); err == nil {
				t.Error("Settle() error = nil, expected an error")
			}
		})
	}
}

func TestLedgerMinGap(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(openStore(t), WithLogger(quietLogger()), WithMinGap(500*time.Millisecond))

	r := progression.SessionReport{
		SessionID:       "s-gap",
		Outcome:         progression.OutcomeFailed,
		Deaths:          1,
		DurationSeconds: 30,
		Actions: []progression.GameAction{
			{Type: progression.ActionEnemyKilled, At: 1000},
			{Type: progression.ActionEnemyKilled, At: 1100},
			{Type: progression.ActionEnemyKilled, At: 1700},
		},
	}
	award, err := l.Settle(ctx, alice, r)
	if err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	if award.XP != 60 || award.Dropped != 1 {
		t.Errorf("XP = %d, Dropped = %d, expected 60 and 1", award.XP, award.Dropped)
	}
}

func TestLedgerClaim(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000)
	l := NewLedger(openStore(t), WithLogger(quietLogger()), WithClock(func() time.Time { return now }))

	p, paid, err := l.Claim(ctx, alice)
	if err != nil {
		t.Fatalf("Claim() failed: %v", err)
	}
	if !paid || p.Coins != progression.HourlyCoins {
		t.Errorf("Claim() = %d coins, paid %v, expected %d and true", p.Coins, paid, progression.HourlyCoins)
	}

	now = now.Add(30 * time.Minute)
	if _, paid, _ := l.Claim(ctx, alice); paid {
		t.Error("second Claim() within the hour paid again")
	}

	now = now.Add(31 * time.Minute)
	p, paid, err = l.Claim(ctx, alice)
	if err != nil || !paid || p.Coins != 2*progression.HourlyCoins {
		t.Errorf("Claim() after an hour = %d coins, paid %v, err %v", p.Coins, paid, err)
	}
}
