package reward

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// Leaderboard reads the top players by total XP.
type Leaderboard interface {
	TopN(ctx context.Context, n int) ([]progression.LeaderboardEntry, error)
}

// StoreLeaderboard reads the leaderboard from local storage.
type StoreLeaderboard struct {
	Store storage.Storage
}

// TopN returns the n best players.
func (l StoreLeaderboard) TopN(ctx context.Context, n int) ([]progression.LeaderboardEntry, error) {
	entries, err := l.Store.TopPlayers(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("reward: leaderboard: %w", err)
	}
	return entries, nil
}

// RemoteLeaderboard reads GET /api/leaderboard from a reward server.
type RemoteLeaderboard struct {
	BaseURL string
	Client  *http.Client
}

// NewRemoteLeaderboard creates a reader for the server at baseURL.
func NewRemoteLeaderboard(baseURL string) *RemoteLeaderboard {
	return &RemoteLeaderboard{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// TopN fetches the n best players.
func (l *RemoteLeaderboard) TopN(ctx context.Context, n int) ([]progression.LeaderboardEntry, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(n))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL+"/api/leaderboard?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("reward: leaderboard request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reward: leaderboard request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reward: leaderboard status %s", resp.Status)
	}
	var body LeaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("reward: leaderboard decode: %w", err)
	}
	return body.Entries, nil
}
