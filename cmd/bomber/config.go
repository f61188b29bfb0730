package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bomber/internal/config"
)

var flagDump bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print configuration",
	Long: `Prints the effective configuration after --config and --difficulty
are applied. With --dump, prints the embedded default YAML, which is a
good starting point for ~/.bomber/configs/bomber.yaml.

Examples:
  bomber config --dump > ~/.bomber/configs/bomber.yaml
  bomber config --difficulty hard`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDump, "dump", false, "Print the embedded default config")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDump {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}
	out, err := yaml.Marshal(effectiveConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
