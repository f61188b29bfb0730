package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/progression"
	"github.com/vovakirdan/tui-bomber/internal/reward"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own menu and game. The SSH user name is the
player name, so progress follows the user across connections. All users
share one database and leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bomber/host_key

Examples:
  bomber ssh                           # Listen on :23234
  bomber ssh --listen :2222            # Listen on port 2222
  bomber ssh --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "listen", tui.DefaultSSHServerConfig().Address, "SSH server address (host:port)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	sshCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runSSH(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "ssh")
	useFileLogging(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	ledger := newLedger(store, logger)

	services := func(playerID, username string) (tui.Services, func()) {
		p := reward.Player{ID: playerID, Username: username, Mode: "ssh"}
		d := reward.NewDispatcher(reward.NewLocalSubmitter(ledger, p), reward.DefaultDispatcherConfig(), logger)
		svc := tui.Services{
			Reporter:    d,
			Awards:      d.Results(),
			Leaderboard: reward.StoreLeaderboard{Store: store},
			Profile: func(ctx context.Context) (progression.Profile, error) {
				return ledger.Profile(ctx, p)
			},
			PlayerID: playerID,
			Logger:   logger.With("user", username),
		}
		return svc, d.Close
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	srv, err := tui.NewSSHServer(cfg, services, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting bomber SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
