// Package tui runs Moon Runner in the terminal with Bubble Tea: the game
// loop with fixed-rate ticks, key mapping, the colored screen renderer,
// the game menu, the scoreboard and the Wish SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/moonrunner/internal/config"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after one tick interval.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ConfigReloadMsg carries a config delivered by the file watcher.
type ConfigReloadMsg struct {
	Config config.RunnerConfig
}

// waitForReload blocks on the reload channel and turns the next config into
// a message. A nil channel yields no command.
func waitForReload(ch <-chan config.RunnerConfig) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadMsg{Config: cfg}
	}
}
