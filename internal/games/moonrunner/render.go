package moonrunner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/moonrunner/internal/core"
	"github.com/vovakirdan/moonrunner/internal/runner"
)

// Visual characters for rendering
const (
	PlayerBody   = '█'
	PlayerHead   = '◉'
	PlayerLeg1   = '╱'
	PlayerLeg2   = '╲'
	PlayerTuck   = '▀'
	AlertCh      = '!'
	RockSmallCh  = '▒'
	RockBigCh    = '▓'
	MeteorCh     = '●'
	MeteorTailCh = '~'
	GroundChar   = '═'
	RegolithChar = '░'
	StarChar     = '·'
)

// viewport maps world units onto screen cells. Row 0 is the HUD; world y
// from WorldTop down to the ground line fills rows 1..groundRow.
type viewport struct {
	w, h        int
	groundRow   int
	colsPerUnit float64
	unitsPerRow float64
	worldTop    float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	w, h := dst.Width(), dst.Height()
	groundRow := max(h-g.cfg.Render.GroundOffset, 3)
	worldTop := g.cfg.Render.WorldTop
	if worldTop >= g.cfg.World.GroundY {
		worldTop = g.cfg.World.GroundY - 1
	}
	return viewport{
		w:           w,
		h:           h,
		groundRow:   groundRow,
		colsPerUnit: float64(w) / g.cfg.World.ViewportWidth,
		unitsPerRow: (g.cfg.World.GroundY - worldTop) / float64(groundRow-1),
		worldTop:    worldTop,
	}
}

// snap absorbs float error so exact boundaries land on their own cell.
const snap = 1e-6

func (v viewport) col(x float64) int {
	return int(math.Floor(x*v.colsPerUnit + snap))
}

func (v viewport) row(y float64) int {
	return 1 + int(math.Floor((y-v.worldTop)/v.unitsPerRow+snap))
}

// rect converts a world box to a screen rectangle at least one cell big.
func (v viewport) rect(b core.Box) core.Rect {
	x0, x1 := v.col(b.Left()), v.col(b.Right())
	y0, y1 := v.row(b.Top()), v.row(b.Bottom())
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := g.viewport(dst)

	g.drawSky(dst, v)
	g.drawGround(dst, v)

	for _, o := range g.ctrl.Obstacles().Craters() {
		g.drawCrater(dst, v, o)
	}
	for _, o := range g.ctrl.Obstacles().Ground() {
		g.drawRock(dst, v, o)
	}
	for _, o := range g.ctrl.Obstacles().Air() {
		g.drawMeteor(dst, v, o)
	}

	g.drawAlert(dst, v)
	g.drawPlayer(dst, v)
	g.drawHUD(dst)

	state := g.State()
	switch {
	case state.GameOver:
		sub := fmt.Sprintf("Score: %d  Best: %d", state.Score, state.Best)
		title := "GAME OVER"
		if g.ctrl.Cause() == runner.CauseFall {
			title = "LOST IN A CRATER"
		}
		g.drawCenteredMessage(dst, title, sub, "Press R to restart")
	case state.Paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case !state.Started:
		g.drawCenteredMessage(dst, "MOON RUNNER", "Press SPACE to start")
	}
}

func (g *Game) drawSky(dst *core.Screen, v viewport) {
	// Stars drift at a tenth of the scroll speed.
	offset := int(g.ctrl.Run().Distance * v.colsPerUnit / 10)
	for y := 1; y < v.groundRow-2; y += 3 {
		for x := 0; x < v.w; x++ {
			if ((x+offset)*7+y*13)%53 == 0 {
				dst.SetColored(x, y, StarChar, core.ColorDarkGray)
			}
		}
	}
}

func (g *Game) drawGround(dst *core.Screen, v viewport) {
	dst.DrawHLine(0, v.groundRow, v.w, GroundChar, core.ColorGray)
	for y := v.groundRow + 1; y < v.h; y++ {
		dst.DrawHLine(0, y, v.w, RegolithChar, core.ColorDarkGray)
	}
}

// drawCrater cuts a gap into the ground.
func (g *Game) drawCrater(dst *core.Screen, v viewport, o *runner.Obstacle) {
	r := v.rect(o.Box)
	for y := v.groundRow; y < v.h; y++ {
		dst.DrawHLine(r.X, y, r.W, ' ', core.ColorDefault)
	}
	dst.SetColored(r.X-1, v.groundRow, '╗', core.ColorGray)
	dst.SetColored(r.Right(), v.groundRow, '╔', core.ColorGray)
}

func (g *Game) drawRock(dst *core.Screen, v viewport, o *runner.Obstacle) {
	ch, color := RockSmallCh, core.ColorGray
	if o.Kind == runner.KindRockBig {
		ch, color = RockBigCh, core.ColorWhite
	}
	r := v.rect(o.Box)
	// Rocks rest on the ground line, not on top of it.
	if r.Bottom() > v.groundRow {
		r.H = max(v.groundRow-r.Y, 1)
	}
	dst.DrawRect(r, ch, color)
}

func (g *Game) drawMeteor(dst *core.Screen, v viewport, o *runner.Obstacle) {
	r := v.rect(o.Box)
	y := r.Y + r.H/2
	dst.DrawHLine(r.X, y, r.W, MeteorCh, core.ColorOrange)
	dst.DrawHLine(r.Right(), y, 3, MeteorTailCh, core.ColorYellow)
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	pose := g.scene.pose()
	if g.scene.hurtTicks > 0 && g.scene.hurtTicks%6 < 3 {
		return
	}

	r := v.rect(g.world.PlayerBox())
	if r.H < 2 {
		r.Y--
		r.H = 2
	}
	color := core.ColorCyan
	switch pose {
	case poseHurt, poseFall:
		color = core.ColorRed
	case poseLand:
		// Squash: the head drops onto the body for a few frames.
		r.Y++
		r.H--
	}

	// Head row, body rows, legs row.
	dst.DrawHLine(r.X, r.Y, r.W, ' ', color)
	dst.SetColored(r.X+r.W/2, r.Y, PlayerHead, color)
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		if y >= v.groundRow && pose == poseFall {
			break
		}
		dst.DrawHLine(r.X, y, r.W, PlayerBody, color)
	}

	legs := r.Bottom() - 1
	if legs <= r.Y {
		return
	}
	switch pose {
	case poseFall:
		if legs < v.groundRow {
			dst.SetColored(r.X+r.W/2, legs, PlayerBody, color)
		}
	case poseJump:
		dst.SetColored(r.X+1, legs, PlayerTuck, color)
		dst.SetColored(r.X+2, legs, PlayerTuck, color)
	case poseLand:
		dst.SetColored(r.X, legs, PlayerLeg1, color)
		dst.SetColored(r.Right()-1, legs, PlayerLeg2, color)
	case poseHurt:
		dst.SetColored(r.X+r.W/2-1, legs, PlayerLeg2, color)
		dst.SetColored(r.X+r.W/2+1, legs, PlayerLeg1, color)
	default:
		if (g.frame/5)%2 == 0 {
			dst.SetColored(r.X, legs, PlayerLeg1, color)
			dst.SetColored(r.Right()-1, legs, PlayerLeg2, color)
		} else {
			dst.SetColored(r.X+r.W/2-1, legs, PlayerLeg1, color)
			dst.SetColored(r.X+r.W/2+1, legs, PlayerLeg2, color)
		}
	}
}

// drawAlert marks the lane of a meteor that has spawned but is still off
// screen.
func (g *Game) drawAlert(dst *core.Screen, v viewport) {
	if g.scene.alertTicks == 0 || g.scene.alertTicks%10 >= 7 {
		return
	}
	o, ok := g.ctrl.Obstacles().Lookup(g.scene.alertID)
	if !ok || !o.Active || v.col(o.Box.Left()) < v.w {
		return
	}
	dst.SetColored(v.w-1, v.row(g.scene.alertY), AlertCh, core.ColorRed)
}

func (g *Game) drawHUD(dst *core.Screen) {
	state := g.State()
	left := fmt.Sprintf(" Score: %d  Best: %d ", state.Score, state.Best)
	dst.DrawTextColored(2, 0, left, core.ColorBrightWhite)

	run := g.ctrl.Run()
	level := core.ClampF(g.ctrl.Curve().Level(run.Elapsed)*100, 0, 100)
	right := fmt.Sprintf(" Lv: %3.0f%%  Spd: %.0f ", level, run.Speed)
	dst.DrawTextColored(dst.Width()-len(right)-2, 0, right, core.ColorYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 3 + len(lines)*2
	boxX := core.Clamp((dst.Width()-boxW)/2, 0, dst.Width())
	boxY := core.Clamp((dst.Height()-boxH)/2, 1, dst.Height())

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i*2, l)
	}
}
