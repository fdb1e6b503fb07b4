package runner

// EntityID identifies the player or an obstacle for the physics collaborator.
type EntityID int

// PlayerID is the entity id of the player body.
const PlayerID EntityID = 0

// Physics is the kinematics and collision collaborator. The core never
// integrates gravity or runs a broad phase; it only reads these signals.
type Physics interface {
	IsGrounded(id EntityID) bool
	Position(id EntityID) (x, y float64)
	SetVelocity(id EntityID, vx, vy float64)
	// OnCollision subscribes to rigid-body contacts between two entities.
	OnCollision(fn func(a, b EntityID))
}

// Cue is a semantic player-state transition for the renderer.
type Cue int

const (
	CueRun Cue = iota
	CueJump
	CueLand
	CueHurt
	CueFall
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueRun:
		return "run"
	case CueJump:
		return "jump"
	case CueLand:
		return "land"
	case CueHurt:
		return "hurt"
	case CueFall:
		return "fall"
	default:
		return "unknown"
	}
}

// Scene receives spawn/despawn notifications and player cues so that a
// renderer can maintain visual representations keyed by obstacle kind.
type Scene interface {
	ObstacleSpawned(o Obstacle)
	ObstacleDespawned(o Obstacle)
	PlayerCue(c Cue)
}

// NopScene ignores every notification.
type NopScene struct{}

func (NopScene) ObstacleSpawned(Obstacle)   {}
func (NopScene) ObstacleDespawned(Obstacle) {}
func (NopScene) PlayerCue(Cue)              {}

// Rand is the pseudo-random source used for pattern draws.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}
