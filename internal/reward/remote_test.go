package reward

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

// echoServer answers every SubmitRequest with an award of report.Score XP,
// or with an error frame when the score is negative.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req SubmitRequest
		resp := SubmitResponse{}
		if err := DecodeFrame(data, &req); err != nil {
			resp.Error = err.Error()
		} else if req.Report.Score < 0 {
			resp.Error = "negative score"
		} else {
			resp.Award = Award{
				SessionID: req.Report.SessionID,
				XP:        req.Report.Score,
				Profile:   progression.NewProfile(req.Player.ID, req.Player.Username, time.Time{}),
			}
		}
		out, _ := EncodeFrame(resp)
		_ = conn.WriteMessage(websocket.BinaryMessage, out)
	})
	mux.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "2" {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(LeaderboardResponse{
			Entries: []progression.LeaderboardEntry{
				{ID: "b", DisplayName: "bob", TotalXP: 900, Level: 9},
				{ID: "a", DisplayName: "alice", TotalXP: 100, Level: 2},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteSubmitter(t *testing.T) {
	srv := echoServer(t)
	sub, err := NewRemoteSubmitter(srv.URL, alice)
	if err != nil {
		t.Fatalf("NewRemoteSubmitter() failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	award, err := sub.SubmitSession(ctx, progression.SessionReport{SessionID: "s-1", Score: 42})
	if err != nil {
		t.Fatalf("SubmitSession() failed: %v", err)
	}
	if award.SessionID != "s-1" || award.XP != 42 {
		t.Errorf("SubmitSession() = %+v, expected s-1 with 42 XP", award)
	}
	if award.Profile.ID != alice.ID {
		t.Errorf("Profile.ID = %q, expected %q", award.Profile.ID, alice.ID)
	}

	if _, err := sub.SubmitSession(ctx, progression.SessionReport{SessionID: "s-2", Score: -1}); err == nil {
		t.Error("SubmitSession() error = nil, expected server rejection")
	}
}

func TestRemoteSubmitterUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	sub, err := NewRemoteSubmitter(srv.URL, alice)
	if err != nil {
		t.Fatalf("NewRemoteSubmitter() failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := sub.SubmitSession(ctx, progression.SessionReport{SessionID: "s"}); err == nil {
		t.Error("SubmitSession() error = nil, expected dial failure")
	}
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"http://localhost:8080", "ws://localhost:8080/ws", false},
		{"https://bomber.example/", "wss://bomber.example/ws", false},
		{"ws://host/base", "ws://host/base/ws", false},
		{"ftp://host", "", true},
		{"http://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := websocketURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("websocketURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("websocketURL() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestRemoteLeaderboard(t *testing.T) {
	srv := echoServer(t)
	lb := NewRemoteLeaderboard(srv.URL + "/")

	entries, err := lb.TopN(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopN() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].DisplayName != "bob" {
		t.Errorf("TopN() = %+v, expected bob first", entries)
	}

	if _, err := lb.TopN(context.Background(), 5); err == nil {
		t.Error("TopN() error = nil, expected bad status")
	}
}

func TestStoreLeaderboard(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	l := NewLedger(store, WithLogger(quietLogger()))
	if _, err := l.Settle(ctx, alice, clearedReport("s-lb")); err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}

	entries, err := StoreLeaderboard{Store: store}.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("TopN() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != alice.ID || entries[0].TotalXP != 475 {
		t.Errorf("TopN() = %+v", entries)
	}
}
