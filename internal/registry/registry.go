// Package registry keeps the game factories known to the platform.
// Game packages register themselves in init(); the CLI, the TUI and the
// SSH server look games up by id without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/moonrunner/internal/core"
)

// Game is what the platform drives. Implementations hold pure simulation
// and drawing logic; timing, input mapping and terminal output belong to
// the platform.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run. Called once at start and after every
	// game over the player restarts from.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State returns the current status for the platform.
	State() core.GameState
}

// ScoreAware is implemented by games that report their final score to a
// high-score collaborator themselves instead of leaving it to the
// platform.
type ScoreAware interface {
	SetScoreReporter(r core.ScoreReporter)
}

// RunSummary is implemented by games that can describe a finished run for
// the history table.
type RunSummary interface {
	Summary() core.RunRecord
}

// Tunable is implemented by games with selectable difficulty presets.
type Tunable interface {
	SetDifficulty(preset string)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory. It panics on duplicate ids.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered game sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
