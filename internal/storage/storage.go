// Package storage persists player profiles and finished level sessions.
//
// Two backends share one SQL implementation: SQLite through the pure-Go
// modernc.org/sqlite driver (the default, no CGO) and PostgreSQL through
// lib/pq for a shared reward server.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

var (
	// ErrNotFound is returned when a player does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicate is returned when a session id was already recorded.
	ErrDuplicate = errors.New("storage: duplicate session")
)

// Storage is the persistence contract used by the reward ledger and the server.
type Storage interface {
	// EnsurePlayer loads the player, creating a fresh profile when missing.
	EnsurePlayer(ctx context.Context, id, username string) (progression.Profile, error)
	LoadPlayer(ctx context.Context, id string) (progression.Profile, error)
	SavePlayer(ctx context.Context, p progression.Profile) error

	// SaveSession records a finished session. A repeated session id yields ErrDuplicate.
	SaveSession(ctx context.Context, rec SessionRecord) (int64, error)
	// SettleSession records rec and saves p atomically. A repeated session id
	// yields ErrDuplicate and leaves p unsaved.
	SettleSession(ctx context.Context, rec SessionRecord, p progression.Profile) (int64, error)
	RecentSessions(ctx context.Context, playerID string, limit int) ([]SessionRecord, error)

	// TopPlayers returns the leaderboard ordered by total XP.
	TopPlayers(ctx context.Context, limit int) ([]progression.LeaderboardEntry, error)

	Close() error
}

// SessionRecord is one stored level session.
type SessionRecord struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	PlayerID     string    `json:"player_id"`
	Mode         string    `json:"mode"`
	Level        int       `json:"level"`
	Difficulty   string    `json:"difficulty"`
	Outcome      string    `json:"outcome"`
	Score        int       `json:"score"`
	Deaths       int       `json:"deaths"`
	DurationSecs float64   `json:"duration_secs"`
	AwardedXP    int       `json:"awarded_xp"`
	ActionCount  int       `json:"action_count"`
	Actions      []byte    `json:"-"` // msgpack encoded action log
	CreatedAt    time.Time `json:"created_at"`
}

// DefaultLimit is used when a query limit is not positive.
const DefaultLimit = 10

// ExpandPath resolves a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
