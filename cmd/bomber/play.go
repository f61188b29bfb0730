package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: campaign).

Modes:
  campaign  - Clear every level once to win
  endless   - Cycle the levels with growing enemy counts

Controls:
  Arrows/WASD  - Move (held direction keeps walking)
  X            - Stop walking
  Space/Enter  - Drop a bomb
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Back
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Difficulty options:
  easy   - Fewer, slower enemies
  normal - Default settings
  hard   - More, faster enemies
  fixed  - No per-level scaling

Examples:
  bomber play
  bomber play endless --difficulty hard
  bomber play --seed 42 --levels ./levels
  bomber play --server http://localhost:8080 --user alice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := "campaign"
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'bomber levels --modes' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()
	useFileLogging(logger)

	svc, cleanup := playerServices(cmd.Context(), localPlayer(mode), logger)
	defer cleanup()

	if err := tui.Run(game, runtimeConfig(), svc); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
