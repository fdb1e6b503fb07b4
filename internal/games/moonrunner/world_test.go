package moonrunner

import (
	"testing"

	"github.com/vovakirdan/moonrunner/internal/config"
	"github.com/vovakirdan/moonrunner/internal/runner"
)

func TestWorldDetectCollisions(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	w := NewWorld(&cfg)
	m := runner.NewObstacleManager(&cfg, nil)
	w.Attach(m)

	var hits [][2]runner.EntityID
	w.OnCollision(func(a, b runner.EntityID) {
		hits = append(hits, [2]runner.EntityID{a, b})
	})

	tests := []struct {
		name  string
		spawn func() *runner.Obstacle
		want  bool
	}{
		{"rock under player", func() *runner.Obstacle { return m.SpawnRock(runner.GroundRockSmall, cfg.Player.X) }, true},
		{"rock far ahead", func() *runner.Obstacle { return m.SpawnRock(runner.GroundRockBig, 500) }, false},
		{"low meteor", func() *runner.Obstacle { return m.SpawnMeteor(runner.AirLow, cfg.Player.X) }, true},
		{"high meteor", func() *runner.Obstacle { return m.SpawnMeteor(runner.AirHigh, cfg.Player.X) }, false},
		{"crater", func() *runner.Obstacle { return m.SpawnCrater(cfg.Player.X) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Reset()
			hits = nil
			o := tt.spawn()

			w.DetectCollisions()

			got := len(hits) > 0
			if got != tt.want {
				t.Fatalf("hit = %v, want %v", got, tt.want)
			}
			if got && (hits[0][0] != runner.PlayerID || hits[0][1] != o.ID) {
				t.Errorf("hit pair = %v", hits[0])
			}
		})
	}
}

func TestWorldJumpClearsSmallRock(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	w := NewWorld(&cfg)

	w.SetVelocity(runner.PlayerID, 0, cfg.Physics.JumpVelocity)
	if w.IsGrounded(runner.PlayerID) {
		t.Fatal("grounded after jump impulse")
	}
	for i := 0; i < 15; i++ {
		w.Integrate(1.0 / 60)
	}
	if w.Height() <= cfg.Obstacles.RockSmall.Height {
		t.Errorf("height after 0.25s = %.1f, want above %v", w.Height(), cfg.Obstacles.RockSmall.Height)
	}
}

func TestWorldPosition(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	w := NewWorld(&cfg)
	m := runner.NewObstacleManager(&cfg, nil)
	w.Attach(m)

	x, y := w.Position(runner.PlayerID)
	if x != cfg.Player.X || y != cfg.World.GroundY-cfg.Player.Height/2 {
		t.Errorf("player at (%v, %v)", x, y)
	}

	o := m.SpawnMeteor(runner.AirMid, 400)
	x, y = w.Position(o.ID)
	if x != 400 || y != cfg.Obstacles.Lanes.Mid {
		t.Errorf("meteor at (%v, %v)", x, y)
	}

	w.SetVelocity(o.ID, -10, -10)
	if !w.IsGrounded(runner.PlayerID) {
		t.Error("velocity on an obstacle moved the player")
	}
}
