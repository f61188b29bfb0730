package reward

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// Ledger re-derives XP from untrusted reports and persists the result.
type Ledger struct {
	store    storage.Storage
	policy   progression.Policy
	sanitize progression.SanitizeOptions
	logger   *log.Logger
	now      func() time.Time

	// Serializes read-modify-write of profiles.
	mu sync.Mutex
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithPolicy replaces the default XP policy.
func WithPolicy(p progression.Policy) LedgerOption {
	return func(l *Ledger) {
		l.policy = p
		l.sanitize.Policy = p
	}
}

// WithMinGap enables minimum spacing between XP-bearing actions of one type.
func WithMinGap(d time.Duration) LedgerOption {
	return func(l *Ledger) { l.sanitize.MinGap = d }
}

// WithLogger sets the ledger logger.
func WithLogger(logger *log.Logger) LedgerOption {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock overrides the wall clock used for hourly claims.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates a ledger over the given store.
func NewLedger(store storage.Storage, opts ...LedgerOption) *Ledger {
	policy := progression.DefaultPolicy()
	l := &Ledger{
		store:  store,
		policy: policy,
		sanitize: progression.SanitizeOptions{
			Slack:  time.Second,
			Policy: policy,
		},
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Settle sanitizes and scores a report, records the session and credits
// the XP to the player. A session id is only ever credited once.
func (l *Ledger) Settle(ctx context.Context, p Player, report progression.SessionReport) (Award, error) {
	if p.ID == "" {
		return Award{}, errors.New("reward: missing player id")
	}
	if report.SessionID == "" {
		return Award{}, errors.New("reward: missing session id")
	}

	clean, dropped := progression.Sanitize(report, l.sanitize)
	xp := progression.CalculateSessionXP(clean, l.policy)

	blob, err := progression.EncodeActions(clean.Actions)
	if err != nil {
		return Award{}, fmt.Errorf("reward: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	profile, err := l.store.EnsurePlayer(ctx, p.ID, p.Username)
	if err != nil {
		return Award{}, fmt.Errorf("reward: load player: %w", err)
	}

	// SettleSession stores the session and the credited profile together.
	gained := profile.AddXP(xp)
	_, err = l.store.SettleSession(ctx, storage.SessionRecord{
		SessionID:    clean.SessionID,
		PlayerID:     p.ID,
		Mode:         p.Mode,
		Level:        clean.Level,
		Difficulty:   clean.Difficulty,
		Outcome:      string(clean.Outcome),
		Score:        clean.Score,
		Deaths:       clean.Deaths,
		DurationSecs: clean.DurationSeconds,
		AwardedXP:    xp,
		ActionCount:  len(clean.Actions),
		Actions:      blob,
		CreatedAt:    l.now(),
	}, profile)
	if err != nil {
		return Award{}, fmt.Errorf("reward: record session %s: %w", clean.SessionID, err)
	}

	if dropped > 0 {
		l.logger.Warn("sanitizer dropped actions", "session", clean.SessionID, "player", p.ID, "dropped", dropped)
	}
	l.logger.Info("session settled",
		"session", clean.SessionID, "player", p.ID, "outcome", clean.Outcome,
		"xp", xp, "level", profile.Level, "levels_gained", gained)

	return Award{
		SessionID:    clean.SessionID,
		XP:           xp,
		LevelsGained: gained,
		Dropped:      dropped,
		Profile:      profile,
	}, nil
}

// Claim pays the hourly coin reward if it is available. It returns the
// profile and whether coins were paid.
func (l *Ledger) Claim(ctx context.Context, p Player) (progression.Profile, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	profile, err := l.store.EnsurePlayer(ctx, p.ID, p.Username)
	if err != nil {
		return progression.Profile{}, false, fmt.Errorf("reward: load player: %w", err)
	}
	if !profile.ClaimHourly(l.now()) {
		return profile, false, nil
	}
	if err := l.store.SavePlayer(ctx, profile); err != nil {
		return progression.Profile{}, false, fmt.Errorf("reward: save player: %w", err)
	}
	l.logger.Info("hourly reward claimed", "player", p.ID, "coins", profile.Coins)
	return profile, true, nil
}

// Profile returns the stored profile, creating it when missing.
func (l *Ledger) Profile(ctx context.Context, p Player) (progression.Profile, error) {
	profile, err := l.store.EnsurePlayer(ctx, p.ID, p.Username)
	if err != nil {
		return progression.Profile{}, fmt.Errorf("reward: load player: %w", err)
	}
	return profile, nil
}

// Store returns the underlying storage.
func (l *Ledger) Store() storage.Storage {
	return l.store
}
