package sim

import (
	"math"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
)

// ProjectileKind discriminates projectile behaviour.
type ProjectileKind int

const (
	ProjectileLinear ProjectileKind = iota
	ProjectileHoming
)

// Projectile is a bullet or missile owned by the world.
// Inactive projectiles are removed by the end-of-tick compaction.
type Projectile struct {
	Kind    ProjectileKind
	Box     core.Box
	Vel     core.Vec2
	Heading float64 // Radians (homing only)
	Speed   float64
	Turn    float64 // Max heading change in radians per second (homing only)
	Age     float64
	Active  bool
}

// newBullet creates a linear projectile centred on center.
func newBullet(center, vel core.Vec2, size float64) Projectile {
	return Projectile{
		Kind:   ProjectileLinear,
		Box:    core.NewBox(center.X-size/2, center.Y-size/2, size, size),
		Vel:    vel,
		Speed:  vel.Len(),
		Active: true,
	}
}

// newMissile creates a homing projectile centred on center, aimed at target.
func newMissile(center, target core.Vec2, hc config.HomingConfig) Projectile {
	d := target.Sub(center)
	heading := math.Atan2(d.Y, d.X)
	return Projectile{
		Kind:    ProjectileHoming,
		Box:     core.NewBox(center.X-hc.MissileWidth/2, center.Y-hc.MissileHeight/2, hc.MissileWidth, hc.MissileHeight),
		Vel:     core.Vec2{X: math.Cos(heading) * hc.Speed, Y: math.Sin(heading) * hc.Speed},
		Heading: heading,
		Speed:   hc.Speed,
		Turn:    hc.TurnRate * math.Pi / 180,
		Active:  true,
	}
}

// update advances one projectile. It only ever clears Active, never removes.
func (pr *Projectile) update(w *World, dt float64) {
	if !pr.Active {
		return
	}
	pr.Age += dt

	switch pr.Kind {
	case ProjectileLinear:
		pr.Box = pr.Box.Translate(pr.Vel.Scale(dt))
		if !w.camera.Visible(pr.Box, w.cfg.Camera.CullMargin) {
			pr.Active = false
		}
	case ProjectileHoming:
		if w.player == nil {
			pr.Active = false
			return
		}
		if lt := w.cfg.Obstacles.Homing.Lifetime; lt > 0 && pr.Age >= lt {
			pr.Active = false
			return
		}
		pr.steer(w.player.Box().Center(), dt)
		pr.Box = pr.Box.Translate(pr.Vel.Scale(dt))
	}
}

// steer turns the heading toward target by at most Turn*dt, the short way round,
// and recomputes velocity from the heading.
func (pr *Projectile) steer(target core.Vec2, dt float64) {
	d := target.Sub(pr.Box.Center())
	want := math.Atan2(d.Y, d.X)
	diff := core.NormalizeAngle(want - pr.Heading)
	limit := pr.Turn * dt
	diff = core.ClampF(diff, -limit, limit)

	pr.Heading = core.NormalizeAngle(pr.Heading + diff)
	pr.Vel = core.Vec2{X: math.Cos(pr.Heading) * pr.Speed, Y: math.Sin(pr.Heading) * pr.Speed}
}

// hits reports whether the projectile reaches the player this tick.
func (pr *Projectile) hits(w *World, p *Player) bool {
	if pr.Kind == ProjectileHoming {
		dist := p.Box().Center().Sub(pr.Box.Center()).Len()
		return dist < w.cfg.Obstacles.Homing.ExplosionRadius
	}
	return pr.Box.Overlaps(p.Box())
}

// consume applies the projectile's effect to the player and deactivates it.
func (pr *Projectile) consume(w *World, p *Player) {
	hit := w.cfg.Player.HitDuration
	switch pr.Kind {
	case ProjectileLinear:
		p.knock(pr.Vel.Scale(w.cfg.Obstacles.Emitter.KnockbackRatio), hit)
		w.play(CueHit)
	case ProjectileHoming:
		d := p.Box().Center().Sub(pr.Box.Center())
		vel := p.Vel
		if dist := d.Len(); dist > 0 {
			vel = d.Scale(w.cfg.Obstacles.Homing.Impulse / dist)
		}
		p.knock(vel, hit)
		w.play(CueExplode)
	}
	pr.Active = false
}
