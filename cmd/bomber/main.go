// bomber is a terminal bomberman game with persistent XP progression.
//
// Usage:
//
//	bomber play [mode]       - Play a mode directly (campaign, endless)
//	bomber menu              - Start the menu to pick modes interactively
//	bomber levels            - List the level catalog
//	bomber leaderboard       - Show the top players
//	bomber profile           - Show or claim on your profile
//	bomber serve             - Start the reward server (HTTP + websocket)
//	bomber ssh               - Start the SSH server for remote play
//	bomber config            - Print the effective or default config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set sqlite path (default: ~/.bomber/bomber.db)
//	--pg <dsn>          - Use PostgreSQL instead of sqlite
//	--server <url>      - Submit sessions to a remote reward server
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPostgres   string
	flagServer     string
	flagUser       string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bomber",
	Short: "Bomber - drop bombs, clear levels, earn XP",
	Long: `Bomber is a terminal bomberman game. Clear every enemy, find the
portal and earn XP that persists across sessions.

Available commands:
  play         - Play a mode directly
  menu         - Interactive mode picker
  levels       - List the level catalog
  leaderboard  - Top players by total XP
  profile      - Your level, XP and coins
  serve        - Start the reward server
  ssh          - Start the SSH server for remote play
  config       - Print configuration

Examples:
  bomber play
  bomber play endless --difficulty hard
  bomber menu --levels ./levels
  bomber serve --addr :8080 --pg postgres://bomber@localhost/bomber
  bomber play --server http://localhost:8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := parseLevel(flagLogLevel); err != nil {
			return err
		}
		bomber.SetConfigPath(flagConfig)
		bomber.SetDifficultyPreset(flagDifficulty)
		bomber.SetLevelsDir(flagLevelsDir)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.bomber/bomber.db", "Path to sqlite database")
	pf.StringVar(&flagPostgres, "pg", "", "PostgreSQL DSN (overrides --db)")
	pf.StringVar(&flagServer, "server", "", "Remote reward server URL (e.g. http://localhost:8080)")
	pf.StringVar(&flagUser, "user", "", "Player name (default: $USER)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory of extra YAML level files")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(configCmd)
}
