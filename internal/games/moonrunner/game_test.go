package moonrunner

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moonrunner/internal/config"
	"github.com/vovakirdan/moonrunner/internal/core"
	"github.com/vovakirdan/moonrunner/internal/registry"
	"github.com/vovakirdan/moonrunner/internal/runner"
)

func testRuntime(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	SetConfigPath("")
	SetDifficultyPreset("")
	g := New()
	g.Reset(testRuntime(seed))
	return g
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDImmediate, IDTap} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []core.GameState {
		g := newGame(t, 12345)
		var states []core.GameState
		for i := 0; i < 600; i++ {
			in := g.Autopilot()
			states = append(states, g.Step(in).State)
		}
		return states
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestImmediateStart(t *testing.T) {
	g := newGame(t, 1)
	if !g.State().Started {
		t.Fatal("immediate game did not start on reset")
	}
	g.Step(core.NewInputFrame())
	if g.State().Elapsed <= 0 {
		t.Error("elapsed did not advance")
	}
}

func TestTapToStart(t *testing.T) {
	SetConfigPath("")
	SetDifficultyPreset("")
	g := NewTapToStart()
	g.Reset(testRuntime(1))

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().Started || g.State().Elapsed != 0 {
		t.Fatalf("run advanced without input: %+v", g.State())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(in)

	if !g.State().Started {
		t.Fatal("jump did not start the run")
	}
	if g.World().grounded {
		t.Error("first jump should also lift the player")
	}
}

func TestJumpArc(t *testing.T) {
	g := newGame(t, 1)
	cfg := g.cfg

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(in)

	peak := 0.0
	ticks := 1
	for !g.World().grounded && ticks < 600 {
		g.World().Integrate(g.runtime.TickSeconds())
		peak = math.Max(peak, g.World().Height())
		ticks++
	}

	wantPeak := cfg.Physics.JumpVelocity * cfg.Physics.JumpVelocity / (2 * cfg.Physics.Gravity)
	if math.Abs(peak-wantPeak) > 15 {
		t.Errorf("peak = %.1f, want about %.1f", peak, wantPeak)
	}
	airtime := float64(ticks) * g.runtime.TickSeconds()
	wantAir := 2 * -cfg.Physics.JumpVelocity / cfg.Physics.Gravity
	if math.Abs(airtime-wantAir) > 0.05 {
		t.Errorf("airtime = %.3f, want about %.3f", airtime, wantAir)
	}
	if g.World().Height() != 0 {
		t.Errorf("landed at height %v", g.World().Height())
	}
}

func TestPauseFreezesRun(t *testing.T) {
	g := newGame(t, 1)
	g.Step(core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	elapsed := g.State().Elapsed

	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().Paused || g.State().Elapsed != elapsed {
		t.Fatalf("paused game advanced: %+v", g.State())
	}

	g.Step(pause)
	g.Step(core.NewInputFrame())
	if g.State().Elapsed <= elapsed {
		t.Error("unpaused game did not advance")
	}
}

func TestRunEndsAndReports(t *testing.T) {
	g := newGame(t, 99)
	rep := &core.MemoryReporter{}
	g.SetScoreReporter(rep)

	// Without jumping the first forced encounter ends the run.
	for i := 0; i < 60*60 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	st := g.State()
	if !st.GameOver {
		t.Fatal("idle player survived a minute")
	}
	if st.Cause != "collision" && st.Cause != "fall" {
		t.Errorf("cause = %q", st.Cause)
	}
	if rep.Best() != st.Score || st.Best != st.Score {
		t.Errorf("best = %d/%d, score = %d", rep.Best(), st.Best, st.Score)
	}

	sum := g.Summary()
	if sum.Seed != 99 || sum.Score != st.Score || sum.Encounters == 0 {
		t.Errorf("summary = %+v", sum)
	}

	g.Reset(testRuntime(100))
	st = g.State()
	if st.GameOver || st.Score != 0 || st.Elapsed != 0 {
		t.Errorf("state after reset = %+v", st)
	}
	if g.Controller().Obstacles().Len() != 0 {
		t.Error("obstacles survived reset")
	}
	if st.Best != rep.Best() {
		t.Errorf("best lost on reset: %d", st.Best)
	}
}

func TestAutopilotOutlivesIdle(t *testing.T) {
	idle := newGame(t, 7)
	for i := 0; i < 60*120 && !idle.State().GameOver; i++ {
		idle.Step(core.NewInputFrame())
	}

	bot := newGame(t, 7)
	for i := 0; i < 60*120 && !bot.State().GameOver; i++ {
		bot.Step(bot.Autopilot())
	}

	if bot.State().Elapsed <= idle.State().Elapsed {
		t.Errorf("autopilot survived %.1fs, idle %.1fs", bot.State().Elapsed, idle.State().Elapsed)
	}
}

func TestApplyConfigAtReset(t *testing.T) {
	g := newGame(t, 1)
	cfg := config.DefaultRunnerConfig()
	cfg.Difficulty.BaseSpeed = 300
	cfg.Difficulty.MaxSpeed = 300

	g.ApplyConfig(cfg)
	g.Step(core.NewInputFrame())
	if got := g.Controller().Run().Speed; got == 300 {
		t.Fatal("config applied mid-run")
	}

	g.Reset(testRuntime(2))
	g.Step(core.NewInputFrame())
	if got := g.Controller().Run().Speed; got != 300 {
		t.Errorf("speed after reset = %v, want 300", got)
	}
}

func TestCraterFallSinks(t *testing.T) {
	g := newGame(t, 1)
	g.Controller().Obstacles().SpawnCrater(g.cfg.Player.X)
	g.Step(core.NewInputFrame())

	if g.Controller().Cause() != runner.CauseFall {
		t.Fatalf("cause = %v, want fall", g.Controller().Cause())
	}
	if g.scene.pose() != poseFall {
		t.Errorf("pose = %v, want fall", g.scene.pose())
	}
	before := g.World().Height()
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.World().Height() >= before {
		t.Error("player did not sink into the crater")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 5)
	for i := 0; i < 200; i++ {
		g.Step(g.Autopilot())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score:") {
		t.Errorf("HUD missing: %q", screen.Row(0))
	}
	v := g.viewport(screen)
	if v.groundRow != 24-g.cfg.Render.GroundOffset {
		t.Errorf("ground row = %d", v.groundRow)
	}
	if v.row(g.cfg.World.GroundY) != v.groundRow {
		t.Errorf("ground line maps to row %d, want %d", v.row(g.cfg.World.GroundY), v.groundRow)
	}
	if v.col(g.cfg.World.ViewportWidth) != 80 {
		t.Errorf("viewport width maps to col %d", v.col(g.cfg.World.ViewportWidth))
	}
	if !strings.ContainsRune(screen.String(), PlayerHead) {
		t.Error("player not drawn")
	}

	tiny := core.NewScreen(10, 4)
	g.Render(tiny)
}

func TestPlayerPoseFollowsCues(t *testing.T) {
	g := newGame(t, 1)
	if g.scene.pose() != poseRun {
		t.Fatalf("pose at start = %v, want run", g.scene.pose())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(in)
	if g.scene.pose() != poseJump {
		t.Fatalf("pose after jump = %v, want jump", g.scene.pose())
	}

	for i := 0; i < 240 && g.scene.cue != runner.CueLand; i++ {
		g.Step(core.NewInputFrame())
		if g.State().GameOver {
			t.Fatal("run ended before landing")
		}
	}
	if g.scene.pose() != poseLand {
		t.Fatalf("pose after landing = %v, want land", g.scene.pose())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.ContainsRune(screen.String(), PlayerHead) {
		t.Error("landing pose not drawn")
	}

	for i := 0; i < landFrames; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.scene.pose() != poseRun {
		t.Errorf("pose after landing frames = %v, want run", g.scene.pose())
	}
}

func TestRockUnderPlayerHurts(t *testing.T) {
	g := newGame(t, 1)
	g.Controller().Obstacles().SpawnRock(runner.GroundRockSmall, g.cfg.Player.X)
	g.Step(core.NewInputFrame())

	if g.Controller().Cause() != runner.CauseCollision {
		t.Fatalf("cause = %v, want collision", g.Controller().Cause())
	}
	if g.scene.pose() != poseHurt {
		t.Errorf("pose = %v, want hurt", g.scene.pose())
	}
	if g.scene.hurtTicks == 0 {
		t.Error("hurt flash not started")
	}
}

func TestIncomingMeteorAlert(t *testing.T) {
	g := newGame(t, 1)
	o := g.Controller().Obstacles().SpawnMeteor(runner.AirMid, g.cfg.World.ViewportWidth+100)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	v := g.viewport(screen)
	if got := screen.Get(v.w-1, v.row(o.Box.Y)); got != AlertCh {
		t.Errorf("alert cell = %q, want %q", got, AlertCh)
	}

	g.scene.alertTicks = 0
	g.Render(screen)
	if got := screen.Get(v.w-1, v.row(o.Box.Y)); got == AlertCh {
		t.Error("alert drawn after it expired")
	}
}

func TestSceneTracksLiveObstacles(t *testing.T) {
	g := newGame(t, 3)
	for i := 0; i < 1800 && !g.State().GameOver; i++ {
		g.Step(g.Autopilot())
		if got, want := g.scene.live(), g.Controller().Obstacles().Len(); got != want {
			t.Fatalf("tick %d: scene sees %d obstacles, manager has %d", i, got, want)
		}
	}
	if g.scene.spawned == 0 {
		t.Fatal("no obstacles spawned")
	}

	g.Reset(testRuntime(4))
	if g.scene.live() != 0 || g.Controller().Obstacles().Len() != 0 {
		t.Errorf("after reset: scene %d, manager %d", g.scene.live(), g.Controller().Obstacles().Len())
	}
}

func TestDegenerateConfigFileIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("difficulty:\n  spawn_interval_min: 5000\nspawn:\n  max_attempts: 0\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	SetLogger(log.New(&buf))
	SetConfigPath(path)
	SetDifficultyPreset("")
	t.Cleanup(func() {
		SetLogger(nil)
		SetConfigPath("")
	})

	g := New()
	g.Reset(testRuntime(1))

	if g.cfg.Spawn.MaxAttempts != 1 {
		t.Errorf("max_attempts = %d, want 1", g.cfg.Spawn.MaxAttempts)
	}
	if g.cfg.Difficulty.SpawnIntervalMin != g.cfg.Difficulty.SpawnIntervalStart {
		t.Errorf("spawn_interval_min = %v, want start %v",
			g.cfg.Difficulty.SpawnIntervalMin, g.cfg.Difficulty.SpawnIntervalStart)
	}
	out := buf.String()
	if strings.Count(out, "config adjusted") < 2 {
		t.Errorf("expected both fixes logged, got:\n%s", out)
	}
}
