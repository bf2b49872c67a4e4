package tower

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/i18n"
	"github.com/vovakirdan/bear-tower/internal/sim"
)

// Visual characters for rendering
const (
	PlatformChar   = '█'
	IceChar        = '▒'
	WallChar       = '▓'
	HazardChar     = '▲'
	EmitterChar    = '◘'
	HomingChar     = '◙'
	CarrierChar    = '▬'
	GoalChar       = '★'
	DoorChar       = '║'
	OpenDoorChar   = '┊'
	SwitchChar     = '◉'
	BulletChar     = '•'
	MissileChar    = '◆'
	PlayerChar     = '█'
	PlayerHeadChar = '▀'
	ChargeChar     = '▄'
)

// hudRows are reserved at the top (status) and bottom (controls) of the screen.
const hudRows = 2

// viewport maps the camera's world rectangle onto the playfield cells.
type viewport struct {
	cam    sim.Camera
	top    int // First playfield row
	width  int
	height int
	sx, sy float64 // World units per cell
}

func newViewport(cam sim.Camera, dst *core.Screen) viewport {
	v := viewport{
		cam:    cam,
		top:    1,
		width:  dst.Width(),
		height: dst.Height() - hudRows,
	}
	if v.width > 0 && v.height > 0 {
		v.sx = cam.Width / float64(v.width)
		v.sy = cam.Height / float64(v.height)
	}
	return v
}

// rect converts a world box to cells. Every non-empty box covers at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	p := v.cam.WorldToScreen(b.Pos())
	x0 := int(math.Floor(p.X / v.sx))
	y0 := int(math.Floor(p.Y / v.sy))
	x1 := int(math.Ceil((p.X + b.W) / v.sx))
	y1 := int(math.Ceil((p.Y + b.H) / v.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0+v.top, x1-x0, y1-y0)
}

// clip limits r to the playfield rows.
func (v viewport) clip(r core.Rect) core.Rect {
	y0 := core.Clamp(r.Y, v.top, v.top+v.height)
	y1 := core.Clamp(r.Bottom(), v.top, v.top+v.height)
	r.H = y1 - y0
	r.Y = y0
	return r
}

func (v viewport) fill(dst *core.Screen, b core.Box, ch rune, c core.Color) {
	dst.FillRect(v.clip(v.rect(b)), ch, c)
}

// Render draws the stage, the player and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < 10 || dst.Height() < hudRows+3 {
		dst.DrawText(0, 0, "too small")
		return
	}
	if g.world == nil {
		dst.DrawTextCenteredWithColor(dst.Height()/2, "stage failed to load", core.ColorBrightRed)
		if g.loadErr != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.loadErr.Error())
		}
		return
	}

	snap := g.world.Snapshot()
	v := newViewport(snap.Camera, dst)
	margin := g.cfg.Camera.CullMargin
	visible := func(b core.Box) bool { return snap.Camera.Visible(b, margin) }

	for _, pl := range snap.Platforms {
		if visible(pl.Box) {
			ch, c := platformLook(pl)
			v.fill(dst, pl.Box, ch, c)
		}
	}
	for _, d := range snap.Doors {
		if !visible(d.Box) {
			continue
		}
		if d.Open {
			v.fill(dst, d.Box, OpenDoorChar, core.ColorGray)
		} else {
			v.fill(dst, d.Box, DoorChar, core.ColorBrown)
		}
	}
	for _, s := range snap.Switches {
		if visible(s.Box) {
			v.fill(dst, s.Box, SwitchChar, switchColor(s))
		}
	}
	for _, o := range snap.Obstacles {
		if o.Active && visible(o.Box) {
			ch, c := obstacleLook(o)
			v.fill(dst, o.Box, ch, c)
		}
	}
	for _, pr := range snap.Projectiles {
		if !visible(pr.Box) {
			continue
		}
		if pr.Kind == sim.ProjectileHoming {
			v.fill(dst, pr.Box, MissileChar, core.ColorBrightMagenta)
		} else {
			v.fill(dst, pr.Box, BulletChar, core.ColorBrightYellow)
		}
	}
	if snap.Player != nil {
		g.drawPlayer(dst, v, *snap.Player)
	}

	g.drawHUD(dst, snap)
	if g.debug {
		g.drawDebug(dst, snap)
	}

	switch {
	case snap.Cleared:
		g.drawCenteredMessage(dst,
			g.text.T(i18n.Cleared, formatClock(snap.Elapsed)),
			fmt.Sprintf("R: %s  |  B: %s", g.text.T(i18n.Restart), g.text.T(i18n.ToMain)))
	case g.clock.Paused():
		g.drawCenteredMessage(dst,
			g.text.T(i18n.Paused),
			fmt.Sprintf("ESC: %s  |  R: %s  |  B: %s",
				g.text.T(i18n.Resume), g.text.T(i18n.Restart), g.text.T(i18n.ToMain)))
	}
}

func platformLook(pl sim.Platform) (rune, core.Color) {
	ch, c := PlatformChar, core.ColorGreen
	switch {
	case pl.Flavor == sim.FlavorIce:
		ch, c = IceChar, core.ColorIce
	case pl.Shape == sim.ShapeWall:
		ch, c = WallChar, core.ColorGray
	}
	if styled, ok := core.ParseColor(pl.Style); ok {
		c = styled
	}
	return ch, c
}

func obstacleLook(o sim.Obstacle) (rune, core.Color) {
	switch o.Kind {
	case sim.KindHazard:
		return HazardChar, core.ColorBrightRed
	case sim.KindEmitter:
		return EmitterChar, core.ColorOrange
	case sim.KindHomingEmitter:
		return HomingChar, core.ColorMagenta
	case sim.KindBounce:
		return bounceChar(o.Bounce.Dir), core.ColorBrightCyan
	case sim.KindCarrier:
		return CarrierChar, core.ColorBrightBlue
	case sim.KindGoal:
		return GoalChar, core.ColorBrightYellow
	}
	return '?', core.ColorDefault
}

func bounceChar(d sim.BounceDir) rune {
	switch d {
	case sim.BounceLeft:
		return '←'
	case sim.BounceUp:
		return '↑'
	case sim.BounceDown:
		return '↓'
	default:
		return '→'
	}
}

func switchColor(s sim.Switch) core.Color {
	switch {
	case s.Inert:
		return core.ColorGray
	case s.Latched:
		return core.ColorBrightGreen
	default:
		return core.ColorYellow
	}
}

// drawPlayer draws the bear and, while charging, a bar above it that fills
// with the charge ratio.
func (g *Game) drawPlayer(dst *core.Screen, v viewport, p sim.PlayerView) {
	c := core.ColorBrown
	if p.State == sim.StateHit {
		c = core.ColorBrightRed
	}
	r := v.clip(v.rect(p.Box))
	dst.FillRect(r, PlayerChar, c)
	if r.H > 1 {
		dst.FillRect(core.NewRect(r.X, r.Y, r.W, 1), PlayerHeadChar, c)
	}

	if !p.Charging || r.Y <= v.top {
		return
	}
	width := max(r.W, 3)
	filled := int(math.Round(p.ChargeRatio * float64(width)))
	barColor := core.ColorYellow
	if p.ChargeRatio >= 1 {
		barColor = core.ColorBrightGreen
	}
	x0 := r.X + (r.W-width)/2
	for i := 0; i < width; i++ {
		if i < filled {
			dst.SetWithColor(x0+i, r.Y-1, ChargeChar, barColor)
		} else {
			dst.SetWithColor(x0+i, r.Y-1, '_', core.ColorGray)
		}
	}
}

// drawHUD writes the status line and the controls line.
func (g *Game) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	label := g.title
	if snap.Segment.Name != "" {
		label = fmt.Sprintf("%s · %s", g.title, snap.Segment.Name)
	}
	status := fmt.Sprintf(" %s  %s  %s  %s ",
		label,
		g.text.T(i18n.Height, snap.MaxHeight/UnitsPerMetre),
		g.text.T(i18n.Falls, snap.Falls),
		g.text.T(i18n.Time, formatClock(snap.Elapsed)))
	dst.DrawTextWithColor(0, 0, status, core.ColorBrightWhite)

	controls := fmt.Sprintf(" %s   %s   %s   %s",
		g.text.T(i18n.ControlMove),
		g.text.T(i18n.ControlJump),
		g.text.T(i18n.ControlPause),
		g.text.T(i18n.ControlDebug))
	dst.DrawTextWithColor(0, dst.Height()-1, controls, core.ColorGray)
}

// drawDebug lists player and clock internals in the top-right corner.
func (g *Game) drawDebug(dst *core.Screen, snap sim.Snapshot) {
	lines := []string{
		fmt.Sprintf("FPS %d dt %.3f", g.clock.FPS(), g.clock.Delta()),
		fmt.Sprintf("projectiles %d", len(snap.Projectiles)),
	}
	if p := snap.Player; p != nil {
		lines = append(lines,
			fmt.Sprintf("state %s", p.State),
			fmt.Sprintf("pos %.0f, %.0f", p.Box.X, p.Box.Y),
			fmt.Sprintf("vel %.0f, %.0f", p.Vel.X, p.Vel.Y),
			fmt.Sprintf("ground %t", p.Grounded),
			fmt.Sprintf("charging %t %.0f%%", p.Charging, p.ChargeRatio*100),
		)
	}
	if snap.Segment.ID != "" {
		lines = append(lines, fmt.Sprintf("segment %s", snap.Segment.ID))
	}

	w := 0
	for _, l := range lines {
		w = max(w, core.TextWidth(l))
	}
	x := dst.Width() - w - 1
	for i, l := range lines {
		dst.DrawTextWithColor(x, 1+i, l, core.ColorBrightGreen)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(core.TextWidth(title), core.TextWidth(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle)
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
