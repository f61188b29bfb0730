package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/reward"
	"github.com/vovakirdan/tui-bomber/internal/server"
)

var (
	flagAddr   string
	flagMinGap time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reward server",
	Long: `Start the reward server. Clients submit finished sessions over a
websocket at /ws and read profiles and the leaderboard over HTTP.

Endpoints:
  GET  /api/status
  GET  /api/leaderboard?limit=N
  GET  /api/players/{id}
  GET  /api/players/{id}/sessions?limit=N
  POST /api/players/{id}/claim
  GET  /ws                      (websocket, msgpack frames)

Examples:
  bomber serve
  bomber serve --addr :9000 --db ./bomber.db
  bomber serve --pg postgres://bomber@localhost/bomber?sslmode=disable
  bomber serve --min-gap 50ms   # drop bursts of actions closer than 50ms`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", server.DefaultConfig().Addr, "HTTP listen address (host:port)")
	serveCmd.Flags().DurationVar(&flagMinGap, "min-gap", 0, "Minimum gap between rewarded actions (0 disables)")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "serve")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ledger := newLedger(store, logger, reward.WithMinGap(flagMinGap))

	cfg := server.DefaultConfig()
	cfg.Addr = flagAddr
	srv := server.New(cfg, ledger, logger)

	fmt.Printf("Starting reward server on %s\n", cfg.Addr)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
