package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/reward"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

type fixture struct {
	srv    *httptest.Server
	store  storage.Storage
	ledger *reward.Ledger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := log.New(io.Discard)
	ledger := reward.NewLedger(store, reward.WithLogger(logger))
	srv := httptest.NewServer(New(DefaultConfig(), ledger, logger).Handler())
	t.Cleanup(srv.Close)
	return fixture{srv: srv, store: store, ledger: ledger}
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s failed: %v", url, err)
		}
	}
	return resp.StatusCode
}

var bob = reward.Player{ID: "p-bob", Username: "bob", Mode: "campaign"}

func report(id string) progression.SessionReport {
	return progression.SessionReport{
		SessionID:       id,
		Level:           1,
		Outcome:         progression.OutcomeFailed,
		Deaths:          1,
		DurationSeconds: 60,
		Actions: []progression.GameAction{
			{Type: progression.ActionBombPlaced, At: 500},
			{Type: progression.ActionEnemyKilled, At: 2000},
			{Type: progression.ActionBlockDestroyed, At: 2000},
		},
	}
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	var st StatusResponse
	if code := getJSON(t, f.srv.URL+"/api/status", &st); code != http.StatusOK {
		t.Fatalf("status code = %d, expected 200", code)
	}
	if st.Status != "ok" {
		t.Errorf("Status = %q, expected ok", st.Status)
	}
}

func TestWebsocketRoundTrip(t *testing.T) {
	f := newFixture(t)
	sub, err := reward.NewRemoteSubmitter(f.srv.URL, bob)
	if err != nil {
		t.Fatalf("NewRemoteSubmitter() failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 30 + 5 action XP, 20 survival, no perfect bonus.
	award, err := sub.SubmitSession(ctx, report("s-1"))
	if err != nil {
		t.Fatalf("SubmitSession() failed: %v", err)
	}
	if award.XP != 55 {
		t.Errorf("XP = %d, expected 55", award.XP)
	}
	if award.Profile.TotalXP != 55 || award.Profile.Username != "bob" {
		t.Errorf("Profile = %+v", award.Profile)
	}

	if _, err := sub.SubmitSession(ctx, report("s-1")); err == nil {
		t.Error("duplicate SubmitSession() error = nil, expected rejection")
	}

	var p progression.Profile
	if code := getJSON(t, f.srv.URL+"/api/players/"+bob.ID, &p); code != http.StatusOK {
		t.Fatalf("player status code = %d, expected 200", code)
	}
	if p.TotalXP != 55 {
		t.Errorf("TotalXP = %d, expected 55", p.TotalXP)
	}

	var recs []storage.SessionRecord
	getJSON(t, f.srv.URL+"/api/players/"+bob.ID+"/sessions?limit=5", &recs)
	if len(recs) != 1 || recs[0].SessionID != "s-1" {
		t.Errorf("sessions = %+v, expected s-1", recs)
	}
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i, id := range []string{"x", "y", "z"} {
		p := reward.Player{ID: id, Username: "user-" + id}
		r := report("s-" + id)
		for j := 0; j < i; j++ {
			r.Actions = append(r.Actions, progression.GameAction{Type: progression.ActionEnemyKilled, At: int64(3000 + j*1000)})
		}
		if _, err := f.ledger.Settle(ctx, p, r); err != nil {
			t.Fatalf("Settle() failed: %v", err)
		}
	}

	var body reward.LeaderboardResponse
	if code := getJSON(t, f.srv.URL+"/api/leaderboard?limit=2", &body); code != http.StatusOK {
		t.Fatalf("leaderboard status code = %d, expected 200", code)
	}
	if len(body.Entries) != 2 || body.Entries[0].ID != "z" || body.Entries[1].ID != "y" {
		t.Errorf("entries = %+v, expected z then y", body.Entries)
	}

	remote, err := reward.NewRemoteLeaderboard(f.srv.URL).TopN(ctx, 10)
	if err != nil {
		t.Fatalf("TopN() failed: %v", err)
	}
	if len(remote) != 3 {
		t.Errorf("TopN() returned %d entries, expected 3", len(remote))
	}
}

func TestPlayerNotFound(t *testing.T) {
	f := newFixture(t)
	if code := getJSON(t, f.srv.URL+"/api/players/nobody", nil); code != http.StatusNotFound {
		t.Errorf("status code = %d, expected 404", code)
	}

	resp, err := http.Post(f.srv.URL+"/api/players/nobody/claim", "application/json", nil)
	if err != nil {
		t.Fatalf("POST claim failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("claim status code = %d, expected 404", resp.StatusCode)
	}
}

func TestClaim(t *testing.T) {
	f := newFixture(t)
	if _, err := f.ledger.Profile(context.Background(), bob); err != nil {
		t.Fatalf("Profile() failed: %v", err)
	}

	claim := func() ClaimResponse {
		resp, err := http.Post(f.srv.URL+"/api/players/"+bob.ID+"/claim", "application/json", nil)
		if err != nil {
			t.Fatalf("POST claim failed: %v", err)
		}
		defer resp.Body.Close()
		var c ClaimResponse
		if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
			t.Fatalf("decode claim failed: %v", err)
		}
		return c
	}

	first := claim()
	if !first.Claimed || first.Profile.Coins != progression.HourlyCoins {
		t.Errorf("first claim = %+v", first)
	}
	second := claim()
	if second.Claimed || second.NextInSeconds <= 0 {
		t.Errorf("second claim = %+v, expected refusal with a wait", second)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Post(f.srv.URL+"/api/leaderboard", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status code = %d, expected 405", resp.StatusCode)
	}
}
