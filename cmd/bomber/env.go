package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/reward"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

func parseLevel(s string) (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid --log-level %q: %w", s, err)
	}
	return lvl, nil
}

func newLogger(w io.Writer, prefix string) *log.Logger {
	lvl, _ := parseLevel(flagLogLevel)
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
}

// fileLogger writes to ~/.bomber/bomber.log so the alternate screen stays clean.
// The returned close function is always safe to call.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, "bomber"), func() {}
	}
	dir := filepath.Join(home, ".bomber")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, "bomber"), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "bomber.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard, "bomber"), func() {}
	}
	return newLogger(f, "bomber"), func() { f.Close() }
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

func username() string {
	if flagUser != "" {
		return flagUser
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func localPlayer(mode string) reward.Player {
	name := username()
	return reward.Player{ID: tui.PlayerID(name), Username: name, Mode: mode}
}

func openStore(ctx context.Context) (storage.Storage, error) {
	if flagPostgres != "" {
		return storage.OpenPostgres(ctx, flagPostgres)
	}
	return storage.OpenSQLite(ctx, flagDBPath)
}

func effectiveConfig() config.BomberConfig {
	cfg, err := config.LoadBomber(flagConfig)
	if err != nil {
		cfg = config.DefaultBomberConfig()
	}
	preset := config.DifficultyNormal
	if p, err := config.ParsePreset(flagDifficulty); err == nil && p != "" {
		preset = p
	}
	config.ApplyBomberPreset(&cfg, preset)
	return cfg
}

func newLedger(store storage.Storage, logger *log.Logger, opts ...reward.LedgerOption) *reward.Ledger {
	base := []reward.LedgerOption{
		reward.WithPolicy(effectiveConfig().Rewards.Policy()),
		reward.WithLogger(logger),
	}
	return reward.NewLedger(store, append(base, opts...)...)
}

// playerServices wires reporting for one player: to the remote server when
// --server is set, otherwise to the local ledger. Without storage the game
// still runs and awards nothing.
func playerServices(ctx context.Context, p reward.Player, logger *log.Logger) (tui.Services, func()) {
	svc := tui.Services{PlayerID: p.ID, Logger: logger}
	var submitter reward.Submitter
	var closers []func()

	if flagServer != "" {
		remote, err := reward.NewRemoteSubmitter(flagServer, p)
		if err != nil {
			logger.Warn("remote rewards disabled", "server", flagServer, "err", err)
		} else {
			submitter = remote
			svc.Leaderboard = reward.NewRemoteLeaderboard(flagServer)
		}
	} else {
		store, err := openStore(ctx)
		if err != nil {
			logger.Warn("storage unavailable, progress will not be saved", "err", err)
		} else {
			closers = append(closers, func() { store.Close() })
			ledger := newLedger(store, logger)
			submitter = reward.NewLocalSubmitter(ledger, p)
			svc.Leaderboard = reward.StoreLeaderboard{Store: store}
			svc.Profile = func(ctx context.Context) (progression.Profile, error) {
				return ledger.Profile(ctx, p)
			}
		}
	}

	if submitter != nil {
		d := reward.NewDispatcher(submitter, reward.DispatcherConfig{Timeout: 5 * time.Second}, logger)
		svc.Reporter = d
		svc.Awards = d.Results()
		// The dispatcher drains before storage closes.
		closers = append([]func(){d.Close}, closers...)
	}

	return svc, func() {
		for _, c := range closers {
			c()
		}
	}
}

// useFileLogging points the game logger at the log file for TUI sessions.
func useFileLogging(logger *log.Logger) {
	bomber.SetLogger(logger)
}
