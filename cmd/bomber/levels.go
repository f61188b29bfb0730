package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/games/bomber/levels"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

var flagListModes bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Shows the built-in levels followed by any YAML files found in
the --levels directory, in play order.`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagListModes, "modes", false, "List game modes instead of levels")
}

func runLevels(_ *cobra.Command, _ []string) {
	if flagListModes {
		printModes()
		return
	}

	cfg := effectiveConfig()
	catalog := levels.NewCatalog(cfg.Map.Width, cfg.Map.Height, cfg.Map.BlockDensity, newLogger(os.Stderr, "levels"))
	if flagLevelsDir != "" {
		if _, err := catalog.LoadDir(flagLevelsDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	list := catalog.List()
	if len(list) == 0 {
		fmt.Println("No levels available.")
		return
	}

	maxIDLen := 2
	for _, l := range list {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-7s  %-7s  %s\n", "#", maxIDLen, "ID", "Size", "Enemies", "Name")
	fmt.Printf("  %-3s  %-*s  %-7s  %-7s  %s\n", "-", maxIDLen, "--", "----", "-------", "----")
	for i, l := range list {
		w, h := l.Size()
		enemies := "auto"
		if l.Enemies > 0 {
			enemies = fmt.Sprint(l.Enemies)
		}
		name := l.Name
		if l.FilePath != "" {
			name += " (" + l.FilePath + ")"
		}
		fmt.Printf("  %-3d  %-*s  %-7s  %-7s  %s\n", i+1, maxIDLen, l.ID, fmt.Sprintf("%dx%d", w, h), enemies, name)
	}
}

func printModes() {
	modes := registry.List()
	maxIDLen := 2
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}
	fmt.Println()
	fmt.Println("Run 'bomber play <id>' to play a mode.")
}
