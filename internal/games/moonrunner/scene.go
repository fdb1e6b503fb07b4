package moonrunner

import "github.com/vovakirdan/moonrunner/internal/runner"

// playerPose selects the player glyphs.
type playerPose int

const (
	poseRun playerPose = iota
	poseJump
	poseLand
	poseHurt
	poseFall
)

// Frame counts for the short-lived effects.
const (
	hurtFlash   = 30
	landFrames  = 6
	alertFrames = 45
)

// sceneState is the renderer side of the runner.Scene contract. Obstacles
// are drawn straight from the manager's live lists; the scene keeps the
// player cue, effect timers and the incoming-meteor alert.
type sceneState struct {
	cue       runner.Cue
	hurtTicks int
	landTicks int

	// Set when a meteor spawns off screen, cleared once it is visible.
	alertID    runner.EntityID
	alertY     float64
	alertTicks int

	spawned   int
	despawned int
}

func (s *sceneState) ObstacleSpawned(o runner.Obstacle) {
	s.spawned++
	if o.Kind == runner.KindMeteor {
		s.alertID = o.ID
		s.alertY = o.Box.Y
		s.alertTicks = alertFrames
	}
}

func (s *sceneState) ObstacleDespawned(o runner.Obstacle) {
	s.despawned++
	if s.alertTicks > 0 && o.ID == s.alertID {
		s.alertTicks = 0
	}
}

func (s *sceneState) PlayerCue(c runner.Cue) {
	s.cue = c
	switch c {
	case runner.CueHurt:
		s.hurtTicks = hurtFlash
	case runner.CueLand:
		s.landTicks = landFrames
	}
}

// live is the number of obstacles the scene believes are on the field.
func (s *sceneState) live() int {
	return s.spawned - s.despawned
}

// step advances effect timers by one frame.
func (s *sceneState) step() {
	if s.hurtTicks > 0 {
		s.hurtTicks--
	}
	if s.landTicks > 0 {
		s.landTicks--
	}
	if s.alertTicks > 0 {
		s.alertTicks--
	}
}

// pose maps the latest cue to the player pose.
func (s *sceneState) pose() playerPose {
	switch s.cue {
	case runner.CueFall:
		return poseFall
	case runner.CueHurt:
		return poseHurt
	case runner.CueJump:
		return poseJump
	case runner.CueLand:
		if s.landTicks > 0 {
			return poseLand
		}
	}
	return poseRun
}

func (s *sceneState) reset() {
	*s = sceneState{}
}
