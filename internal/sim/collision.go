package sim

import (
	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
)

// isWall classifies a platform. Explicit shapes win; untagged geometry that is
// thin and tall enough resolves as a wall.
func isWall(pl Platform, c config.TowerCollision) bool {
	switch pl.Shape {
	case ShapeWall:
		return true
	case ShapeFloor:
		return false
	}
	return pl.Box.W <= c.WallMaxWidth && pl.Box.H > c.WallMinHeight
}

// contactSlop absorbs float error when a body is re-seated against a surface.
const contactSlop = 1e-6

// landsOn reports whether a body moving down (or resting) meets the top of
// surface this tick. Contact is inclusive so a body resting exactly on the top
// edge stays supported. The previous bottom edge guards against catching the
// body from below.
func landsOn(body, surface core.Box, vy, dt, epsilon float64) bool {
	if vy < 0 || !body.OverlapsX(surface) {
		return false
	}
	if body.Bottom() < surface.Y-contactSlop || body.Y >= surface.Bottom() {
		return false
	}
	prevBottom := body.Bottom() - vy*dt
	return prevBottom <= surface.Y+epsilon
}

// blockWall pushes body out of wall horizontally if it crossed a side edge
// this tick. It reports whether the body was moved.
func blockWall(body core.Box, vx, dt float64, wall core.Box) (x float64, ok bool) {
	if !body.Overlaps(wall) {
		return body.X, false
	}
	prevRight := body.Right() - vx*dt
	prevLeft := body.X - vx*dt
	switch {
	case vx > 0 && prevRight <= wall.X+contactSlop:
		return wall.X - body.W, true
	case vx < 0 && prevLeft >= wall.Right()-contactSlop:
		return wall.Right(), true
	}
	return body.X, false
}

// pushOutOfDoor returns the x that places body flush with the side of door it
// came from. A body with no horizontal motion goes to the nearer side, unless
// it arrived over the door's top edge; then it is left where it is.
func pushOutOfDoor(body core.Box, vel core.Vec2, dt float64, door core.Box) (x float64, ok bool) {
	switch {
	case vel.X > 0:
		return door.X - body.W, true
	case vel.X < 0:
		return door.Right(), true
	}
	if prevBottom := body.Bottom() - vel.Y*dt; prevBottom <= door.Y+contactSlop {
		return body.X, false
	}
	if body.Center().X < door.Center().X {
		return door.X - body.W, true
	}
	return door.Right(), true
}

// resolve runs the collision pass in its fixed order: platforms, carriers,
// other obstacles, doors, switches, projectiles. Each stage takes its
// candidates from the spatial index around the tick's swept player box.
func (w *World) resolve(p *Player, dt float64) {
	p.Grounded = false
	p.Support = Support{}
	eps := w.cfg.Collision.LandingEpsilon
	reach := func() core.Box { return sweep(p.Box(), p.Vel, dt) }

	for _, obj := range w.index.near(reach(), tagPlatform, tagWall) {
		i := slot(obj)
		pl := &w.platforms[i]
		if obj.HasTags(tagWall) {
			if x, ok := blockWall(p.Box(), p.Vel.X, dt, pl.Box); ok {
				p.Pos.X = x
				p.Vel.X = 0
			}
			continue
		}
		if landsOn(p.Box(), pl.Box, p.Vel.Y, dt, eps) {
			p.land(pl.Box.Y, Support{Kind: SupportPlatform, Index: i})
		}
	}

	for _, obj := range w.index.near(reach(), tagCarrier) {
		i := slot(obj)
		o := &w.obstacles[i]
		if o.Active && landsOn(p.Box(), o.Box, p.Vel.Y, dt, eps) {
			p.land(o.Box.Y, Support{Kind: SupportCarrier, Index: i})
		}
	}

	for _, obj := range w.index.near(reach(), tagObstacle) {
		o := &w.obstacles[slot(obj)]
		if o.Active && p.Box().Overlaps(o.Box) {
			o.touch(w, p)
		}
	}

	for _, obj := range w.index.near(reach(), tagDoor) {
		d := &w.doors[slot(obj)]
		if !d.Blocks(p.Box()) {
			continue
		}
		if x, ok := pushOutOfDoor(p.Box(), p.Vel, dt, d.Box); ok {
			p.Pos.X = x
			p.Vel.X = 0
		}
	}

	for _, obj := range w.index.near(reach(), tagSwitch) {
		s := &w.switches[slot(obj)]
		if p.Box().Overlaps(s.Box) {
			w.pressSwitch(s)
		}
	}

	// Projectiles come and go every few ticks and stay out of the index.
	for i := range w.projectiles {
		pr := &w.projectiles[i]
		if pr.Active && pr.hits(w, p) {
			pr.consume(w, p)
		}
	}
}

// land snaps the player's feet to top and records the support.
func (p *Player) land(top float64, s Support) {
	p.Pos.Y = top - p.H
	p.Vel.Y = 0
	p.Grounded = true
	p.Support = s
}

// friction returns the horizontal multiplier for the player's current surface.
// Ice platforms use the ice setting; carriers and plain platforms without
// their own friction use the ground default.
func (w *World) friction(p *Player) float64 {
	phys := w.cfg.Physics
	if !p.Grounded {
		return phys.AirFriction
	}
	if p.Support.Kind != SupportPlatform || p.Support.Index < 0 || p.Support.Index >= len(w.platforms) {
		return phys.GroundFriction
	}
	pl := w.platforms[p.Support.Index]
	switch {
	case pl.Flavor == FlavorIce:
		return w.cfg.Obstacles.Ice.Friction
	case pl.Friction > 0:
		return pl.Friction
	default:
		return phys.GroundFriction
	}
}
