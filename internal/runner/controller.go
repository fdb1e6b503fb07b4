package runner

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moonrunner/internal/config"
	"github.com/vovakirdan/moonrunner/internal/core"
)

// State is the run lifecycle state.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cause records what ended a run.
type Cause int

const (
	CauseNone Cause = iota
	CauseCollision
	CauseFall
)

// String returns the cause name stored with run history.
func (c Cause) String() string {
	switch c {
	case CauseCollision:
		return "collision"
	case CauseFall:
		return "fall"
	default:
		return ""
	}
}

// RunState is the per-run mutable state, advanced once per tick.
type RunState struct {
	Elapsed            float64 // Seconds since Start
	Speed              float64 // Current scroll speed
	Score              float64 // Fractional score
	ScrollProgress     float64 // Distance since the last segment boundary
	TimeSinceLastSpawn float64 // Milliseconds since the last encounter
	Distance           float64 // Total distance scrolled
	GameOver           bool
}

// Stats summarizes a run for logs and history.
type Stats struct {
	Encounters int // Patterns emitted, fallbacks included
	Fallbacks  int // Empty patterns after exhausted sampling
	Rejected   int // Rejected sampling attempts
	Spawned    int // Obstacles created
	Distance   float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Without it the controller logs to io.Discard.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScene sets the renderer collaborator.
func WithScene(s Scene) Option {
	return func(c *Controller) {
		if s != nil {
			c.scene = s
		}
	}
}

// WithReporter sets the high-score collaborator.
func WithReporter(r core.ScoreReporter) Option {
	return func(c *Controller) {
		c.reporter = r
	}
}

// Controller composes the difficulty curve, the encounter generator and the
// obstacle manager. It is driven by an external loop: Start once, Tick
// every frame, Reset between runs. Everything happens on the caller's
// goroutine.
type Controller struct {
	cfg       config.RunnerConfig
	curve     config.DifficultyCurve
	rng       Rand
	gen       *Generator
	obstacles *ObstacleManager
	physics   Physics
	scene     Scene
	reporter  core.ScoreReporter
	logger    *log.Logger

	state       State
	run         RunState
	cause       Cause
	final       int
	best        int
	spawned     int
	wasGrounded bool

	hit    EntityID
	hasHit bool
}

// NewController creates a controller in the NotStarted state and subscribes
// to the physics collaborator's collision events.
func NewController(cfg *config.RunnerConfig, physics Physics, rng Rand, opts ...Option) *Controller {
	c := &Controller{
		physics: physics,
		rng:     rng,
		scene:   NopScene{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cfg = *cfg
	c.curve = config.NewDifficultyCurve(cfg.Difficulty)
	c.gen = NewGenerator(cfg, rng)
	c.obstacles = NewObstacleManager(cfg, c.scene)

	physics.OnCollision(c.onCollision)
	c.Reset()
	return c
}

// Configure swaps the tuning and resets the run. Call it only between runs.
func (c *Controller) Configure(cfg *config.RunnerConfig) {
	c.cfg = *cfg
	c.curve = config.NewDifficultyCurve(cfg.Difficulty)
	c.gen = NewGenerator(cfg, c.rng)
	c.obstacles.Configure(cfg)
	c.Reset()
}

// SetRand replaces the random source used by the generator.
func (c *Controller) SetRand(rng Rand) {
	c.rng = rng
	c.gen.SetRand(rng)
}

// SetReporter replaces the high-score collaborator.
func (c *Controller) SetReporter(r core.ScoreReporter) {
	c.reporter = r
}

// SetBest seeds the best score shown before the first run finishes.
func (c *Controller) SetBest(best int) {
	c.best = best
}

// Start moves NotStarted to Running. It is a no-op in any other state.
func (c *Controller) Start() {
	if c.state != StateNotStarted {
		return
	}
	c.state = StateRunning
	c.wasGrounded = c.physics.IsGrounded(PlayerID)
	c.scene.PlayerCue(CueRun)
	c.logger.Debug("run started", "speed", c.run.Speed)
}

// Jump applies the jump impulse when the run is active and the player is
// grounded. It reports whether the jump was taken.
func (c *Controller) Jump() bool {
	if c.state != StateRunning || !c.physics.IsGrounded(PlayerID) {
		return false
	}
	c.physics.SetVelocity(PlayerID, 0, c.cfg.Physics.JumpVelocity)
	c.wasGrounded = false
	c.scene.PlayerCue(CueJump)
	return true
}

// Tick advances the run by dt seconds. Ticks outside the Running state and
// negative deltas are ignored.
func (c *Controller) Tick(dt float64) {
	if c.state != StateRunning || dt < 0 {
		return
	}

	r := &c.run
	r.Elapsed += dt
	r.Speed = c.curve.Speed(r.Elapsed)
	r.Score += dt * (r.Speed / 100)
	r.TimeSinceLastSpawn += dt * 1000
	r.Distance += r.Speed * dt

	r.ScrollProgress += r.Speed * dt
	seg := c.cfg.Spawn.SegmentWidth
	for seg > 0 && r.ScrollProgress >= seg {
		r.ScrollProgress -= seg
		if r.TimeSinceLastSpawn < c.curve.SpawnInterval(r.Elapsed) {
			break
		}
		r.TimeSinceLastSpawn = 0
		c.spawnEncounter()
	}

	c.obstacles.Tick(r.Speed, dt)

	playerX, _ := c.physics.Position(PlayerID)
	grounded := c.physics.IsGrounded(PlayerID)
	if grounded && !c.wasGrounded {
		c.scene.PlayerCue(CueLand)
	}
	c.wasGrounded = grounded

	if grounded {
		if o := c.obstacles.GroundHazardAt(playerX); o != nil {
			if o.Kind == KindCrater {
				c.scene.PlayerCue(CueFall)
				c.finish(CauseFall, o)
			} else {
				c.scene.PlayerCue(CueHurt)
				c.finish(CauseCollision, o)
			}
			return
		}
	}

	if c.hasHit {
		o, _ := c.obstacles.Lookup(c.hit)
		c.scene.PlayerCue(CueHurt)
		c.finish(CauseCollision, o)
	}
}

func (c *Controller) spawnEncounter() {
	spawnX := c.cfg.World.ViewportWidth + c.cfg.World.SpawnMargin
	playerX, _ := c.physics.Position(PlayerID)
	window := c.cfg.Spawn.FairnessWindow

	p := c.gen.Next(c.run.Elapsed, func() bool {
		return c.obstacles.CanPlaceAirHazard(spawnX, playerX, window)
	})
	n := c.obstacles.Spawn(p, spawnX)
	c.spawned += n

	c.logger.Debug("encounter",
		"ground", p.Ground(),
		"air", p.Air(),
		"forced", p.RequiresJump(),
		"elapsed", c.run.Elapsed,
		"spawned", n,
	)
}

// onCollision records the first contact between the player and a live
// rigid obstacle. It is resolved on the next Tick.
func (c *Controller) onCollision(a, b EntityID) {
	if c.state != StateRunning || c.hasHit {
		return
	}
	other := b
	switch PlayerID {
	case a:
	case b:
		other = a
	default:
		return
	}
	o, ok := c.obstacles.Lookup(other)
	if !ok || !o.Active || !o.IsRigid() {
		return
	}
	c.hit = other
	c.hasHit = true
}

func (c *Controller) finish(cause Cause, o *Obstacle) {
	c.state = StateGameOver
	c.run.GameOver = true
	c.cause = cause
	c.final = int(math.Floor(c.run.Score))

	if c.reporter != nil {
		c.best = c.reporter.ReportScore(c.final)
	} else if c.final > c.best {
		c.best = c.final
	}

	kind := "none"
	if o != nil {
		kind = o.Kind.String()
	}
	c.logger.Debug("game over",
		"cause", cause,
		"obstacle", kind,
		"score", c.final,
		"best", c.best,
		"elapsed", c.run.Elapsed,
	)
}

// Reset reinitializes the run state, the generator state and the obstacle
// pools, and returns to NotStarted. The best score is kept.
func (c *Controller) Reset() {
	c.run = RunState{Speed: c.curve.Speed(0)}
	c.gen.Reset()
	c.obstacles.Reset()
	c.state = StateNotStarted
	c.cause = CauseNone
	c.final = 0
	c.spawned = 0
	c.hit = 0
	c.hasHit = false
	c.wasGrounded = true
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Run returns a copy of the run state.
func (c *Controller) Run() RunState { return c.run }

// Cause returns what ended the run, CauseNone while it lasts.
func (c *Controller) Cause() Cause { return c.cause }

// FinalScore returns the floored score reported at game over.
func (c *Controller) FinalScore() int { return c.final }

// Score returns the floored current score.
func (c *Controller) Score() int { return int(math.Floor(c.run.Score)) }

// Best returns the best score known to the controller.
func (c *Controller) Best() int { return c.best }

// Obstacles returns the obstacle manager.
func (c *Controller) Obstacles() *ObstacleManager { return c.obstacles }

// Generator returns the encounter generator.
func (c *Controller) Generator() *Generator { return c.gen }

// Curve returns the difficulty curve.
func (c *Controller) Curve() config.DifficultyCurve { return c.curve }

// Config returns the active tuning.
func (c *Controller) Config() config.RunnerConfig { return c.cfg }

// Stats returns run statistics.
func (c *Controller) Stats() Stats {
	gs := c.gen.Stats()
	return Stats{
		Encounters: gs.Generated,
		Fallbacks:  gs.Fallbacks,
		Rejected:   gs.Rejected,
		Spawned:    c.spawned,
		Distance:   c.run.Distance,
	}
}
