package runner

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/moonrunner/internal/config"
)

// fakePhysics is a scripted kinematics collaborator.
type fakePhysics struct {
	x, y     float64
	grounded bool
	vy       float64
	jumps    int
	handlers []func(a, b EntityID)
}

func (f *fakePhysics) IsGrounded(EntityID) bool              { return f.grounded }
func (f *fakePhysics) Position(EntityID) (float64, float64)  { return f.x, f.y }
func (f *fakePhysics) OnCollision(fn func(a, b EntityID))    { f.handlers = append(f.handlers, fn) }
func (f *fakePhysics) SetVelocity(_ EntityID, _, vy float64) { f.vy = vy; f.jumps++ }

func (f *fakePhysics) collide(a, b EntityID) {
	for _, fn := range f.handlers {
		fn(a, b)
	}
}

// countingReporter records every reported score.
type countingReporter struct {
	scores []int
	best   int
}

func (c *countingReporter) ReportScore(final int) int {
	c.scores = append(c.scores, final)
	if final > c.best {
		c.best = final
	}
	return c.best
}

// quietConfig disables encounters and speed ramps.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Difficulty.SpeedRamp = 0
	cfg.Difficulty.SpawnIntervalRamp = 0
	cfg.Encounter.GroundChance = config.ChanceCurve{}
	cfg.Encounter.AirChance = config.ChanceCurve{}
	return cfg
}

func newTestController(cfg config.RunnerConfig, opts ...Option) (*Controller, *fakePhysics) {
	phys := &fakePhysics{x: cfg.Player.X, y: cfg.World.GroundY - cfg.Player.Height/2, grounded: true}
	c := NewController(&cfg, phys, rand.New(rand.NewSource(1)), opts...)
	return c, phys
}

func TestControllerScoreAtConstantSpeed(t *testing.T) {
	tests := []struct {
		name  string
		ticks int
		dt    float64
	}{
		{"single second", 1, 1},
		{"60 fps", 60, 1.0 / 60},
		{"uneven", 4, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(quietConfig())
			c.Start()
			for i := 0; i < tt.ticks; i++ {
				c.Tick(tt.dt)
			}
			if got := c.Run().Score; math.Abs(got-5.0) > 1e-9 {
				t.Errorf("score = %v, want 5.0", got)
			}
			if got := c.Run().Speed; got != 500 {
				t.Errorf("speed = %v, want 500", got)
			}
		})
	}
}

func TestControllerIgnoresTicksBeforeStart(t *testing.T) {
	c, _ := newTestController(quietConfig())
	c.Tick(1)
	if c.Run().Elapsed != 0 || c.State() != StateNotStarted {
		t.Errorf("tick advanced a run that never started: %+v", c.Run())
	}
	if c.Jump() {
		t.Error("jump accepted before start")
	}
}

func TestControllerJump(t *testing.T) {
	cfg := quietConfig()
	scene := &recordingScene{}
	c, phys := newTestController(cfg, WithScene(scene))
	c.Start()

	if !c.Jump() {
		t.Fatal("grounded jump rejected")
	}
	if phys.vy != cfg.Physics.JumpVelocity {
		t.Errorf("vy = %v, want %v", phys.vy, cfg.Physics.JumpVelocity)
	}

	phys.grounded = false
	if c.Jump() {
		t.Error("airborne jump accepted")
	}
	if phys.jumps != 1 {
		t.Errorf("impulses = %d, want 1", phys.jumps)
	}

	c.Tick(0.1)
	phys.grounded = true
	c.Tick(0.1)

	want := []Cue{CueRun, CueJump, CueLand}
	if len(scene.cues) != len(want) {
		t.Fatalf("cues = %v, want %v", scene.cues, want)
	}
	for i := range want {
		if scene.cues[i] != want[i] {
			t.Errorf("cue %d = %v, want %v", i, scene.cues[i], want[i])
		}
	}
}

func TestControllerCraterFall(t *testing.T) {
	cfg := quietConfig()
	cfg.Encounter.GroundChance = config.ChanceCurve{Base: 1, Max: 1}
	cfg.Encounter.GroundMix = config.GroundMix{Crater: 1}
	scene := &recordingScene{}
	rep := &countingReporter{}
	c, _ := newTestController(cfg, WithScene(scene), WithReporter(rep))
	c.Start()

	for i := 0; i < 600 && c.State() == StateRunning; i++ {
		c.Tick(1.0 / 60)
	}

	if c.State() != StateGameOver {
		t.Fatal("grounded player over a crater did not fall")
	}
	if c.Cause() != CauseFall {
		t.Errorf("cause = %v, want fall", c.Cause())
	}
	if !scene.hasCue(CueFall) {
		t.Error("no fall cue")
	}

	elapsed := c.Run().Elapsed
	c.Tick(1)
	c.Tick(1)
	if c.Run().Elapsed != elapsed {
		t.Error("ticks after game over advanced the run")
	}
	if len(rep.scores) != 1 || rep.scores[0] != c.FinalScore() {
		t.Errorf("reported %v, final %d", rep.scores, c.FinalScore())
	}
	if c.FinalScore() != int(math.Floor(c.Run().Score)) {
		t.Errorf("final = %d, score = %v", c.FinalScore(), c.Run().Score)
	}
}

func TestControllerRockUnderPlayer(t *testing.T) {
	tests := []struct {
		name     string
		hazard   GroundHazard
		grounded bool
		wantOver bool
	}{
		{"small rock grounded", GroundRockSmall, true, true},
		{"big rock grounded", GroundRockBig, true, true},
		{"small rock airborne", GroundRockSmall, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := &recordingScene{}
			rep := &countingReporter{}
			c, phys := newTestController(quietConfig(), WithScene(scene), WithReporter(rep))
			phys.grounded = tt.grounded
			c.Start()
			c.Obstacles().SpawnRock(tt.hazard, phys.x)
			c.Tick(1.0 / 60)

			if !tt.wantOver {
				if c.State() != StateRunning {
					t.Fatalf("state = %v, want running", c.State())
				}
				return
			}
			if c.State() != StateGameOver {
				t.Fatal("grounded player on a rock did not end the run")
			}
			if c.Cause() != CauseCollision {
				t.Errorf("cause = %v, want collision", c.Cause())
			}
			if !scene.hasCue(CueHurt) {
				t.Error("no hurt cue")
			}
			if scene.hasCue(CueFall) {
				t.Error("rock produced a fall cue")
			}
			if len(rep.scores) != 1 {
				t.Errorf("reported %d times, want once", len(rep.scores))
			}
		})
	}
}

func TestControllerCollision(t *testing.T) {
	cfg := quietConfig()
	scene := &recordingScene{}
	rep := &countingReporter{best: 40}
	c, phys := newTestController(cfg, WithScene(scene), WithReporter(rep))
	c.Start()
	c.Tick(0.5)

	rock := c.Obstacles().SpawnRock(GroundRockBig, 400)
	crater := c.Obstacles().SpawnCrater(500)

	// Contacts that are not player-vs-rigid are ignored.
	phys.collide(rock.ID, crater.ID)
	phys.collide(PlayerID, crater.ID)
	c.Tick(0.01)
	if c.State() != StateRunning {
		t.Fatal("non-player or crater contact ended the run")
	}

	phys.collide(rock.ID, PlayerID)
	c.Tick(0.01)

	if c.State() != StateGameOver || c.Cause() != CauseCollision {
		t.Fatalf("state = %v cause = %v", c.State(), c.Cause())
	}
	if !scene.hasCue(CueHurt) {
		t.Error("no hurt cue")
	}
	if c.Best() != 40 {
		t.Errorf("best = %d, want 40 from reporter", c.Best())
	}
	if len(rep.scores) != 1 {
		t.Errorf("reporter called %d times", len(rep.scores))
	}
}

func TestControllerResetIntegrity(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	c, phys := newTestController(cfg)
	c.Start()
	for i := 0; i < 300; i++ {
		c.Tick(1.0 / 60)
	}
	phys.grounded = true
	c.Obstacles().SpawnRock(GroundRockSmall, 700)
	c.Obstacles().SpawnMeteor(AirHigh, 700)
	phys.collide(PlayerID, c.Obstacles().Ground()[len(c.Obstacles().Ground())-1].ID)
	c.Tick(1.0 / 60)
	if c.State() != StateGameOver {
		t.Fatalf("state = %v, want game over", c.State())
	}

	c.Reset()

	r := c.Run()
	if r.Elapsed != 0 || r.Score != 0 || r.ScrollProgress != 0 || r.TimeSinceLastSpawn != 0 || r.GameOver {
		t.Errorf("run state not reset: %+v", r)
	}
	if c.Obstacles().Len() != 0 {
		t.Errorf("obstacles left: %d", c.Obstacles().Len())
	}
	if len(c.Generator().History()) != 0 {
		t.Error("generator history not cleared")
	}
	if got := c.Generator().SegmentsSinceAirHazard(); got != cfg.Spawn.AirCooldownSegments {
		t.Errorf("cooldown counter = %d, want %d", got, cfg.Spawn.AirCooldownSegments)
	}
	if c.State() != StateNotStarted || c.Cause() != CauseNone {
		t.Errorf("state = %v cause = %v", c.State(), c.Cause())
	}

	c.Start()
	c.Tick(0.1)
	if c.State() != StateRunning {
		t.Error("stale collision ended the new run")
	}
}

func TestControllerSpawnDeferral(t *testing.T) {
	// speed 500, segment 260, interval 1200ms: segment crossings every
	// 0.52s, so encounters land at crossings 3, 6, ...
	c, phys := newTestController(quietConfig())
	phys.grounded = false
	c.Start()

	tickUntil := func(seconds float64) {
		for c.Run().Elapsed < seconds-1e-9 {
			c.Tick(0.01)
		}
	}

	tickUntil(1.5)
	if n := c.Stats().Encounters; n != 0 {
		t.Fatalf("encounters at 1.5s = %d, want 0", n)
	}
	tickUntil(1.6)
	if n := c.Stats().Encounters; n != 1 {
		t.Fatalf("encounters at 1.6s = %d, want 1", n)
	}
	tickUntil(3.0)
	if n := c.Stats().Encounters; n != 1 {
		t.Fatalf("encounters at 3.0s = %d, want 1", n)
	}
	tickUntil(3.2)
	if n := c.Stats().Encounters; n != 2 {
		t.Fatalf("encounters at 3.2s = %d, want 2", n)
	}
}

func TestControllerAirborneSpacing(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Encounter.GroundChance = config.ChanceCurve{}
	cfg.Encounter.AirChance = config.ChanceCurve{Base: 1, Max: 1}
	cfg.Spawn.AirCooldownSegments = 0
	cfg.Difficulty.SpawnIntervalStart = 200
	cfg.Difficulty.SpawnIntervalMin = 100

	c, phys := newTestController(cfg)
	phys.grounded = false
	c.Start()

	window := cfg.Spawn.FairnessWindow
	meteors := 0
	for i := 0; i < 60*120; i++ {
		c.Tick(1.0 / 60)
		inWindow := 0
		for _, o := range c.Obstacles().Air() {
			if o.Box.X >= phys.x && o.Box.X <= phys.x+window {
				inWindow++
			}
		}
		if inWindow > 1 {
			t.Fatalf("tick %d: %d airborne obstacles inside the window", i, inWindow)
		}
		meteors = max(meteors, c.Obstacles().Allocated(KindMeteor))
	}
	if meteors == 0 {
		t.Fatal("no meteors spawned")
	}
	if c.Stats().Rejected == 0 {
		t.Error("expected the placement predicate to reject some candidates")
	}
}
