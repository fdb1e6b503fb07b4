// moonrunner is an endless runner on the Moon, played in the terminal.
//
// Usage:
//
//	moonrunner list              - List available games
//	moonrunner play [game]       - Play a game (default: moonrunner)
//	moonrunner menu              - Start menu to pick games interactively
//	moonrunner serve             - Start SSH server for remote play
//	moonrunner scores [game]     - Show high scores and recent runs
//	moonrunner sim               - Run headless simulations
//	moonrunner config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.moonrunner/scores.db)
//	--debug         - Write debug logs to ~/.moonrunner/debug.log
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/moonrunner/internal/core"
	"github.com/vovakirdan/moonrunner/internal/games/moonrunner"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagDebug  bool

	// Shared by play, menu and config
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "moonrunner",
	Short: "Moon Runner - an endless runner in your terminal",
	Long: `Moon Runner is a terminal endless runner. Jump over rocks and craters,
duck under meteors, and see how far you get before the Moon wins.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  sim      - Run headless simulations
  config   - Print the effective configuration

Examples:
  moonrunner play
  moonrunner play moonrunner_tap --difficulty hard
  moonrunner menu
  moonrunner serve --ssh :2222
  moonrunner sim --runs 20 --autopilot`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.moonrunner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to ~/.moonrunner/debug.log")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger in the house style.
func newLogger(w io.Writer, prefix string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// fileLogger returns a logger for interactive sessions. The alternate
// screen owns stdout, so logs go to a file and only with --debug.
// The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	if !flagDebug {
		return log.New(io.Discard), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	path := filepath.Join(home, ".moonrunner", "debug.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	l := newLogger(f, "moonrunner")
	moonrunner.SetLogger(l)
	return l, func() { f.Close() }
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
