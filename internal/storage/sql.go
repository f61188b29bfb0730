package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

// dialect captures the differences between the SQL backends.
type dialect struct {
	name   string
	schema string
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
}

// sqlStore implements Storage over database/sql.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func newSQLStore(ctx context.Context, db *sql.DB, d dialect) (*sqlStore, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to %s: %w", d.name, err)
	}
	s := &sqlStore{db: db, dialect: d, now: time.Now}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

// rebind rewrites ? placeholders for dialects that number them.
func (s *sqlStore) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const playerColumns = `id, username, level, current_xp, max_xp, total_xp, coins, last_reward_ms, created_ms`

func scanProfile(row interface{ Scan(...any) error }) (progression.Profile, error) {
	var p progression.Profile
	var lastReward, created int64
	err := row.Scan(&p.ID, &p.Username, &p.Level, &p.CurrentXP, &p.MaxXP, &p.TotalXP, &p.Coins, &lastReward, &created)
	if err != nil {
		return progression.Profile{}, err
	}
	p.LastRewardClaimed = fromMillis(lastReward)
	p.CreatedAt = fromMillis(created)
	return p, nil
}

// LoadPlayer returns the player with the given id or ErrNotFound.
func (s *sqlStore) LoadPlayer(ctx context.Context, id string) (progression.Profile, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+playerColumns+` FROM players WHERE id = ?`), id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.Profile{}, ErrNotFound
	}
	if err != nil {
		return progression.Profile{}, fmt.Errorf("storage: cannot load player %s: %w", id, err)
	}
	return p, nil
}

// EnsurePlayer loads the player or inserts a new level 1 profile.
func (s *sqlStore) EnsurePlayer(ctx context.Context, id, username string) (progression.Profile, error) {
	p, err := s.LoadPlayer(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return progression.Profile{}, err
	}

	p = progression.NewProfile(id, username, s.now().UTC())
	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO players (`+playerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO NOTHING`),
		p.ID, p.Username, p.Level, p.CurrentXP, p.MaxXP, p.TotalXP, p.Coins,
		toMillis(p.LastRewardClaimed), toMillis(p.CreatedAt),
	)
	if err != nil {
		return progression.Profile{}, fmt.Errorf("storage: cannot create player %s: %w", id, err)
	}
	// Another writer may have won the insert; read back what is stored.
	return s.LoadPlayer(ctx, id)
}

// querier is the subset of *sql.DB and *sql.Tx the writes below need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SavePlayer updates a stored profile.
func (s *sqlStore) SavePlayer(ctx context.Context, p progression.Profile) error {
	return s.updatePlayer(ctx, s.db, p)
}

func (s *sqlStore) updatePlayer(ctx context.Context, q querier, p progression.Profile) error {
	res, err := q.ExecContext(ctx, s.rebind(
		`UPDATE players
		 SET username = ?, level = ?, current_xp = ?, max_xp = ?, total_xp = ?, coins = ?, last_reward_ms = ?
		 WHERE id = ?`),
		p.Username, p.Level, p.CurrentXP, p.MaxXP, p.TotalXP, p.Coins, toMillis(p.LastRewardClaimed), p.ID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save player %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot save player %s: %w", p.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveSession inserts a session record and returns its row id.
func (s *sqlStore) SaveSession(ctx context.Context, rec SessionRecord) (int64, error) {
	return s.insertSession(ctx, s.db, rec)
}

// SettleSession inserts rec and updates the player's profile in one
// transaction. Either both writes are stored or neither is.
func (s *sqlStore) SettleSession(ctx context.Context, rec SessionRecord, p progression.Profile) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.insertSession(ctx, tx, rec)
	if err != nil {
		return 0, err
	}
	if err := s.updatePlayer(ctx, tx, p); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session %s: %w", rec.SessionID, err)
	}
	return id, nil
}

func (s *sqlStore) insertSession(ctx context.Context, q querier, rec SessionRecord) (int64, error) {
	created := rec.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	var id int64
	err := q.QueryRowContext(ctx, s.rebind(
		`INSERT INTO sessions
		 (session_id, player_id, mode, level, difficulty, outcome, score, deaths, duration_secs, awarded_xp, action_count, actions, created_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (session_id) DO NOTHING
		 RETURNING id`),
		rec.SessionID, rec.PlayerID, rec.Mode, rec.Level, rec.Difficulty, rec.Outcome,
		rec.Score, rec.Deaths, rec.DurationSecs, rec.AwardedXP, rec.ActionCount, rec.Actions,
		toMillis(created),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}
	return id, nil
}

// RecentSessions returns the newest sessions of a player.
func (s *sqlStore) RecentSessions(ctx context.Context, playerID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, session_id, player_id, mode, level, difficulty, outcome, score, deaths,
		        duration_secs, awarded_xp, action_count, actions, created_ms
		 FROM sessions
		 WHERE player_id = ?
		 ORDER BY created_ms DESC, id DESC
		 LIMIT ?`),
		playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var created int64
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.PlayerID, &r.Mode, &r.Level, &r.Difficulty, &r.Outcome,
			&r.Score, &r.Deaths, &r.DurationSecs, &r.AwardedXP, &r.ActionCount, &r.Actions, &created,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session row: %w", err)
		}
		r.CreatedAt = fromMillis(created)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// TopPlayers returns players ordered by total XP, ties broken by id.
func (s *sqlStore) TopPlayers(ctx context.Context, limit int) ([]progression.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, username, total_xp, level
		 FROM players
		 ORDER BY total_xp DESC, id ASC
		 LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []progression.LeaderboardEntry
	for rows.Next() {
		var e progression.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.DisplayName, &e.TotalXP, &e.Level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan leaderboard row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

var _ Storage = (*sqlStore)(nil)
