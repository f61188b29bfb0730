package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var flagClaim bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your level, XP and coins",
	Long: `Shows the local profile of --user (default: $USER).

With --claim, collects the hourly coin reward if it is available.

Examples:
  bomber profile
  bomber profile --claim
  bomber profile --user alice --pg postgres://bomber@localhost/bomber`,
	Run: runProfile,
}

func init() {
	profileCmd.Flags().BoolVar(&flagClaim, "claim", false, "Claim the hourly coin reward")
}

func runProfile(cmd *cobra.Command, _ []string) {
	store, err := openStore(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ledger := newLedger(store, newLogger(os.Stderr, "profile"))
	player := localPlayer("")

	p, err := ledger.Profile(cmd.Context(), player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}
	if flagClaim {
		var claimed bool
		p, claimed, err = ledger.Claim(cmd.Context(), player)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error claiming reward: %v\n", err)
			os.Exit(1)
		}
		if claimed {
			fmt.Println("Hourly reward claimed!")
		} else {
			fmt.Printf("Next reward in %s\n", p.NextClaimIn(time.Now()).Round(time.Second))
		}
		fmt.Println()
	}

	fmt.Printf("  Player    %s\n", p.Username)
	fmt.Printf("  Level     %d\n", p.Level)
	fmt.Printf("  XP        %d/%d\n", p.CurrentXP, p.MaxXP)
	fmt.Printf("  Total XP  %d\n", p.TotalXP)
	fmt.Printf("  Coins     %d\n", p.Coins)

	sessions, err := store.RecentSessions(cmd.Context(), p.ID, 5)
	if err != nil || len(sessions) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent sessions:")
	for _, s := range sessions {
		fmt.Printf("  %s  %-8s  level %-3d  %-9s  score %-6d  +%d XP\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Mode, s.Level, s.Outcome, s.Score, s.AwardedXP)
	}
}
