package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moonrunner/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective runner configuration",
	Long: `Print the runner configuration as YAML.

Without flags the configuration is resolved the same way 'play' does:
--config, then ~/.moonrunner/configs/runner.yaml, then ./configs/runner.yaml,
then the built-in defaults. --difficulty applies a preset on top.
With --defaults the built-in file is printed verbatim, ready to copy.

Examples:
  moonrunner config --defaults > ~/.moonrunner/configs/runner.yaml
  moonrunner config --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	fixes := cfg.Sanitize()

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}

	if src := config.ResolvePath(flagConfig); src != "" {
		fmt.Printf("# source: %s\n", src)
	} else {
		fmt.Println("# source: built-in defaults")
	}
	for _, fix := range fixes {
		fmt.Printf("# adjusted: %s\n", fix)
	}
	os.Stdout.Write(data)
}
