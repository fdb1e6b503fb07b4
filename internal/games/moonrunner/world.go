package moonrunner

import (
	"github.com/vovakirdan/moonrunner/internal/config"
	"github.com/vovakirdan/moonrunner/internal/core"
	"github.com/vovakirdan/moonrunner/internal/runner"
)

// sinkSpeed is how fast the player drops into a crater after a fall,
// in world units per second.
const sinkSpeed = 240.0

// World is the kinematics and collision collaborator of the run
// controller. It integrates the player body under gravity and runs an
// AABB broad phase of the player against live rocks and meteors.
// Obstacles are kinematic: the obstacle manager moves them.
type World struct {
	cfg       config.RunnerConfig
	obstacles *runner.ObstacleManager

	x, y     float64 // Player center
	vy       float64
	grounded bool
	sunk     float64 // Depth below the ground line after a fall

	handlers []func(a, b runner.EntityID)
}

// NewWorld creates a world with the player standing on the ground.
func NewWorld(cfg *config.RunnerConfig) *World {
	w := &World{}
	w.Reset(cfg)
	return w
}

// Attach connects the obstacle manager the broad phase reads from.
func (w *World) Attach(m *runner.ObstacleManager) {
	w.obstacles = m
}

// Reset puts the player back on the ground with the given tuning.
func (w *World) Reset(cfg *config.RunnerConfig) {
	w.cfg = *cfg
	w.x = cfg.Player.X
	w.y = cfg.World.GroundY - cfg.Player.Height/2
	w.vy = 0
	w.grounded = true
	w.sunk = 0
}

// IsGrounded implements runner.Physics. Obstacles never fall, so they
// always report grounded.
func (w *World) IsGrounded(id runner.EntityID) bool {
	if id != runner.PlayerID {
		return true
	}
	return w.grounded
}

// Position implements runner.Physics.
func (w *World) Position(id runner.EntityID) (float64, float64) {
	if id == runner.PlayerID {
		return w.x, w.y
	}
	if w.obstacles != nil {
		if o, ok := w.obstacles.Lookup(id); ok {
			return o.Box.X, o.Box.Y
		}
	}
	return 0, 0
}

// SetVelocity implements runner.Physics. Only the vertical component of
// the player body is simulated; the world scrolls instead of the player.
func (w *World) SetVelocity(id runner.EntityID, _, vy float64) {
	if id != runner.PlayerID {
		return
	}
	w.vy = vy
	if vy < 0 {
		w.grounded = false
	}
}

// OnCollision implements runner.Physics.
func (w *World) OnCollision(fn func(a, b runner.EntityID)) {
	w.handlers = append(w.handlers, fn)
}

// Integrate advances the player body by dt seconds.
func (w *World) Integrate(dt float64) {
	if w.grounded {
		return
	}

	w.vy += w.cfg.Physics.Gravity * dt
	if w.vy > w.cfg.Physics.MaxFallSpeed {
		w.vy = w.cfg.Physics.MaxFallSpeed
	}
	w.y += w.vy * dt

	rest := w.cfg.World.GroundY - w.cfg.Player.Height/2
	if w.y >= rest {
		w.y = rest
		w.vy = 0
		w.grounded = true
	}
}

// DetectCollisions reports every overlap between the player and a live
// rigid obstacle to the subscribers.
func (w *World) DetectCollisions() int {
	if w.obstacles == nil {
		return 0
	}

	player := w.PlayerBox()
	hits := 0
	check := func(list []*runner.Obstacle) {
		for _, o := range list {
			if !o.Active || !o.IsRigid() || !player.Overlaps(o.Box) {
				continue
			}
			hits++
			for _, fn := range w.handlers {
				fn(runner.PlayerID, o.ID)
			}
		}
	}
	check(w.obstacles.Ground())
	check(w.obstacles.Air())
	return hits
}

// Sink lowers the player into a crater after a fall, up to maxDepth.
func (w *World) Sink(dt, maxDepth float64) {
	if w.sunk >= maxDepth {
		return
	}
	step := min(sinkSpeed*dt, maxDepth-w.sunk)
	w.sunk += step
	w.y += step
}

// PlayerBox returns the player footprint.
func (w *World) PlayerBox() core.Box {
	return core.Box{X: w.x, Y: w.y, W: w.cfg.Player.Width, H: w.cfg.Player.Height}
}

// Height returns how far the player's feet are above the ground line.
func (w *World) Height() float64 {
	return w.cfg.World.GroundY - w.PlayerBox().Bottom()
}

// Velocity returns the vertical velocity of the player.
func (w *World) Velocity() float64 {
	return w.vy
}
