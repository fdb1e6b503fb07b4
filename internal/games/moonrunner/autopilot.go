package moonrunner

import (
	"github.com/vovakirdan/moonrunner/internal/core"
	"github.com/vovakirdan/moonrunner/internal/runner"
)

// autopilotLead is how many seconds before contact the autopilot jumps.
const autopilotLead = 0.17

// Autopilot returns the input a simple bot would give this tick: jump when
// a jump-requiring hazard is about to reach the player. It only looks at
// the live obstacle lists and never cheats on future spawns.
func (g *Game) Autopilot() core.InputFrame {
	in := core.NewInputFrame()
	if g.ctrl.State() == runner.StateNotStarted {
		in.Set(core.ActionJump)
		return in
	}
	if g.ctrl.State() != runner.StateRunning || !g.world.grounded {
		return in
	}

	speed := g.ctrl.Run().Speed
	front := g.world.PlayerBox().Right()
	airFactor := g.cfg.Spawn.AirSpeedFactor

	threat := false
	g.ctrl.Obstacles().Each(func(o *runner.Obstacle) {
		if !o.RequiresJump {
			return
		}
		v := speed
		edge := o.Box.Left()
		switch o.Kind {
		case runner.KindMeteor:
			v *= airFactor
		case runner.KindCrater:
			// Only the player's center can drop into a crater.
			edge += g.world.PlayerBox().W / 2
		}
		lookahead := core.Span{End: v * autopilotLead}.Shift(front)
		if lookahead.Contains(edge) {
			threat = true
		}
	})
	if threat {
		in.Set(core.ActionJump)
	}
	return in
}
