package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Pick a mode or open the leaderboard from a menu. Your level and
XP are shown at the top and refresh after every finished session.

Navigation:
  Up/Down or j/k  - Move selection
  Enter/Space     - Select
  Q/Ctrl+C        - Quit`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	logger, closeLog := fileLogger()
	defer closeLog()
	useFileLogging(logger)

	svc, cleanup := playerServices(cmd.Context(), localPlayer("menu"), logger)
	defer cleanup()

	if err := tui.RunApp(runtimeConfig(), svc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
