package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/reward"
)

var (
	flagPlain bool
	flagTop   int
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"scores"},
	Short:   "Show the top players",
	Long: `Shows players ranked by total XP. Reads the local database, or the
reward server when --server is set.

Examples:
  bomber leaderboard
  bomber leaderboard --plain --top 20
  bomber leaderboard --server http://localhost:8080`,
	Run: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the interactive view")
	leaderboardCmd.Flags().IntVar(&flagTop, "top", 10, "Number of players to show with --plain")
}

func runLeaderboard(cmd *cobra.Command, _ []string) {
	var source reward.Leaderboard
	if flagServer != "" {
		source = reward.NewRemoteLeaderboard(flagServer)
	} else {
		store, err := openStore(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		source = reward.StoreLeaderboard{Store: store}
	}

	if !flagPlain {
		cfg := runtimeConfig()
		if err := tui.RunLeaderboard(source, tui.PlayerID(username()), cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	entries, err := source.TopN(ctx, flagTop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading leaderboard: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No players yet. Play a game to get on the board!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-5s  %s\n", "Rank", "Player", "Level", "Total XP")
	fmt.Printf("  %-4s  %-20s  %-5s  %s\n", "----", "------", "-----", "--------")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-20s  %-5d  %d\n", i+1, e.DisplayName, e.Level, e.TotalXP)
	}
}
