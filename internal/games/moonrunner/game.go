// Package moonrunner implements Moon Runner, a side-scrolling endless
// runner: the player jumps over rocks and craters and dodges meteors while
// the scroll speed ramps up. The simulation lives in the runner package;
// this package supplies its physics and scene collaborators and draws the
// world onto the character screen.
package moonrunner

import (
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moonrunner/internal/config"
	"github.com/vovakirdan/moonrunner/internal/core"
	"github.com/vovakirdan/moonrunner/internal/registry"
	"github.com/vovakirdan/moonrunner/internal/runner"
)

const (
	// IDImmediate starts the run on the first tick.
	IDImmediate = "moonrunner"
	// IDTap waits for the first jump before starting.
	IDTap = "moonrunner_tap"
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path used at every Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects a preset applied on top of the loaded
// config. Unknown names clear the preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger handed to new runs.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game for Moon Runner.
type Game struct {
	id         string
	title      string
	tapToStart bool

	preset   config.DifficultyPreset
	runtime  core.RuntimeConfig
	cfg      config.RunnerConfig
	world    *World
	ctrl     *runner.Controller
	scene    *sceneState
	reporter core.ScoreReporter

	paused bool
	frame  int

	mu      sync.Mutex
	pending *config.RunnerConfig
}

// New creates a game that starts running immediately.
func New() *Game {
	return &Game{id: IDImmediate, title: "Moon Runner"}
}

// NewTapToStart creates a game that waits for the first jump.
func NewTapToStart() *Game {
	return &Game{id: IDTap, title: "Moon Runner (tap to start)", tapToStart: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// SetScoreReporter implements registry.ScoreAware.
func (g *Game) SetScoreReporter(r core.ScoreReporter) {
	g.reporter = r
	if g.ctrl == nil {
		return
	}
	g.ctrl.SetReporter(r)
	if b, ok := r.(interface{ Best() int }); ok {
		g.ctrl.SetBest(b.Best())
	}
}

// SetDifficulty selects a preset for this instance only, overriding the
// package default from the next Reset on.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// ApplyConfig queues a config to take effect at the next Reset. It is
// safe to call from another goroutine, e.g. a config watcher.
func (g *Game) ApplyConfig(cfg config.RunnerConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &cfg
}

func (g *Game) loadConfig() config.RunnerConfig {
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()

	var cfg config.RunnerConfig
	if pending != nil {
		cfg = *pending
		logger.Info("applying reloaded config")
	} else {
		loaded, err := config.LoadRunner(configPath)
		if err != nil {
			logger.Warn("config load failed, using defaults", "err", err)
		}
		cfg = loaded
	}

	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	for _, fix := range cfg.Sanitize() {
		logger.Warn("config adjusted", "fix", fix)
	}
	return cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	rng := rand.New(rand.NewSource(runtime.Seed))

	if g.ctrl == nil {
		g.scene = &sceneState{}
		g.world = NewWorld(&g.cfg)
		g.ctrl = runner.NewController(&g.cfg, g.world, rng,
			runner.WithLogger(logger),
			runner.WithScene(g.scene),
			runner.WithReporter(g.reporter),
		)
		g.world.Attach(g.ctrl.Obstacles())
		if b, ok := g.reporter.(interface{ Best() int }); ok {
			g.ctrl.SetBest(b.Best())
		}
	} else {
		g.world.Reset(&g.cfg)
		g.ctrl.SetRand(rng)
		g.ctrl.Configure(&g.cfg)
	}

	g.scene.reset()
	g.paused = false
	g.frame = 0

	if !g.tapToStart {
		g.ctrl.Start()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := g.runtime.TickSeconds()
	g.scene.step()

	if g.ctrl.State() == runner.StateGameOver {
		if g.ctrl.Cause() == runner.CauseFall {
			g.world.Sink(dt, g.cfg.Obstacles.Crater.Height)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.ctrl.State() == runner.StateRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
		if g.ctrl.State() == runner.StateNotStarted {
			g.ctrl.Start()
		}
		g.ctrl.Jump()
	}

	if g.ctrl.State() != runner.StateRunning {
		return core.StepResult{State: g.State()}
	}

	g.frame++
	g.world.Integrate(dt)
	g.world.DetectCollisions()
	g.ctrl.Tick(dt)

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	run := g.ctrl.Run()
	score := g.ctrl.Score()
	if g.ctrl.State() == runner.StateGameOver {
		score = g.ctrl.FinalScore()
	}
	return core.GameState{
		Score:    score,
		Best:     g.ctrl.Best(),
		GameOver: g.ctrl.State() == runner.StateGameOver,
		Paused:   g.paused,
		Started:  g.ctrl.State() != runner.StateNotStarted,
		Cause:    g.ctrl.Cause().String(),
		Elapsed:  run.Elapsed,
		Distance: run.Distance,
	}
}

// Summary implements registry.RunSummary.
func (g *Game) Summary() core.RunRecord {
	st := g.ctrl.Stats()
	return core.RunRecord{
		Seed:       g.runtime.Seed,
		Score:      g.State().Score,
		Elapsed:    g.ctrl.Run().Elapsed,
		Distance:   st.Distance,
		Encounters: st.Encounters,
		Cause:      g.ctrl.Cause().String(),
	}
}

// Controller exposes the run controller for tools such as the simulator.
func (g *Game) Controller() *runner.Controller {
	return g.ctrl
}

// World exposes the physics collaborator.
func (g *Game) World() *World {
	return g.world
}

func init() {
	registry.Register(IDImmediate, func() registry.Game {
		return New()
	})
	registry.Register(IDTap, func() registry.Game {
		return NewTapToStart()
	})
}
