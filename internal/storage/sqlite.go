package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		level INTEGER NOT NULL DEFAULT 1,
		current_xp INTEGER NOT NULL DEFAULT 0,
		max_xp INTEGER NOT NULL DEFAULT 100,
		total_xp INTEGER NOT NULL DEFAULT 0,
		coins INTEGER NOT NULL DEFAULT 0,
		last_reward_ms INTEGER NOT NULL DEFAULT 0,
		created_ms INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_players_total_xp ON players(total_xp DESC);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL UNIQUE,
		player_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		level INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		outcome TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		deaths INTEGER NOT NULL DEFAULT 0,
		duration_secs REAL NOT NULL DEFAULT 0,
		awarded_xp INTEGER NOT NULL DEFAULT 0,
		action_count INTEGER NOT NULL DEFAULT 0,
		actions BLOB,
		created_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player_id, created_ms DESC);
`

// SQLiteStore is the default local backend.
type SQLiteStore struct {
	*sqlStore
	path string
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; serialize access through one connection.
	db.SetMaxOpenConns(1)

	s, err := newSQLStore(ctx, db, dialect{name: "sqlite", schema: sqliteSchema})
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{sqlStore: s, path: dbPath}, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}
