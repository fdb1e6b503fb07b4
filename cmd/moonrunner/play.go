package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moonrunner/internal/config"
	"github.com/vovakirdan/moonrunner/internal/games/moonrunner"
	"github.com/vovakirdan/moonrunner/internal/platform/tui"
	"github.com/vovakirdan/moonrunner/internal/registry"
	"github.com/vovakirdan/moonrunner/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: moonrunner).

Games:
  moonrunner      - The run starts immediately
  moonrunner_tap  - The run starts on the first jump

Controls:
  Space/Up/W   - Jump
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Gentle start, slow ramp
  normal - The configured curve
  hard   - Fast start, steep ramp
  fixed  - No progression, stays at the starting speed and spawn interval

With --watch the config file is reloaded when it changes on disk; the new
values apply from the next run.

Examples:
  moonrunner play
  moonrunner play moonrunner_tap
  moonrunner play --difficulty hard
  moonrunner play --config ./runner.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := moonrunner.IDImmediate
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'moonrunner list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	moonrunner.SetConfigPath(flagConfig)
	moonrunner.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts := tui.GameOptions{Logger: logger}

	if flagWatch {
		path := config.ResolvePath(flagConfig)
		if path == "" {
			fmt.Fprintln(os.Stderr, "Error: --watch needs a config file; pass --config or create ~/.moonrunner/configs/runner.yaml")
			os.Exit(1)
		}
		watcher, err := config.NewWatcher(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching config: %v\n", err)
			os.Exit(1)
		}
		defer watcher.Close()

		go func() {
			for err := range watcher.Errors {
				logger.Error("config reload failed", "path", watcher.Path(), "error", err)
			}
		}()
		opts.Reloads = watcher.Events
		logger.Info("watching config", "path", watcher.Path())
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	opts.Store = store

	runErr := tui.Run(game, terminalConfig(), opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
