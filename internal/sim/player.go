package sim

import (
	"math"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
)

// State is the player's behaviour and animation label.
type State int

const (
	StateIdle State = iota
	StateRun
	StateRise
	StateFall
	StateHit
	StateCharging
)

var stateNames = [...]string{"idle", "run", "rise", "fall", "hit", "charging"}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// SupportKind tells what the player stands on.
type SupportKind int

const (
	SupportNone SupportKind = iota
	SupportPlatform
	SupportCarrier
)

// Support references the surface under the player by collection index.
// It is rebuilt from scratch by every collision pass.
type Support struct {
	Kind  SupportKind
	Index int
}

// Input is the held-action query the controller reads each tick.
type Input interface {
	Has(a core.Action) bool
}

// Player is the controlled character.
type Player struct {
	Pos      core.Vec2 // Top-left
	Vel      core.Vec2
	W, H     float64
	Grounded bool
	Support  Support

	Charging  bool
	Charge    float64
	ChargeCap float64

	State    State
	HitTimer float64
	Facing   float64 // 1 right, -1 left

	Frame    int
	AnimTime float64
}

// NewPlayer creates a player standing at pos.
func NewPlayer(pos core.Vec2, cfg config.TowerPlayer) *Player {
	return &Player{
		Pos:       pos,
		W:         cfg.Width,
		H:         cfg.Height,
		ChargeCap: cfg.MaxChargeTime,
		Facing:    1,
	}
}

// Box returns the player's collision box.
func (p *Player) Box() core.Box {
	return core.NewBox(p.Pos.X, p.Pos.Y, p.W, p.H)
}

// ChargeRatio returns charge progress in 0..1.
func (p *Player) ChargeRatio() float64 {
	if p.ChargeCap <= 0 {
		return 0
	}
	return core.ClampF(p.Charge/p.ChargeCap, 0, 1)
}

// Respawn puts the player at pos with all motion and timers cleared.
func (p *Player) Respawn(pos core.Vec2) {
	p.Pos = pos
	p.Vel = core.Vec2{}
	p.Grounded = false
	p.Support = Support{}
	p.Charging = false
	p.Charge = 0
	p.State = StateIdle
	p.HitTimer = 0
	p.Frame = 0
	p.AnimTime = 0
}

// knock overwrites velocity and stuns the player.
func (p *Player) knock(vel core.Vec2, duration float64) {
	p.Vel = vel
	p.State = StateHit
	p.HitTimer = duration
	p.Charging = false
	p.Charge = 0
}

// Update runs one controller tick: input, charge, physics, collision, animation.
func (p *Player) Update(dt float64, in Input, w *World) {
	cfg := w.cfg
	airborne := !p.Grounded

	if p.State == StateHit {
		p.HitTimer -= dt
		if p.HitTimer <= 0 {
			p.HitTimer = 0
			p.State = StateIdle
		}
	}

	if p.State != StateHit {
		p.handleInput(dt, in, cfg.Player, w)
	}

	p.applyPhysics(dt, airborne, w.friction(p), cfg.Physics)
	w.resolve(p, dt)
	p.animate(dt, cfg.Animation)
}

func (p *Player) handleInput(dt float64, in Input, pc config.TowerPlayer, w *World) {
	speed := pc.AirSpeed
	if p.Grounded {
		speed = pc.Speed
	}
	if p.Charging {
		speed *= pc.ChargeSpeedFactor
	}

	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	accel := speed * dt * pc.AccelScale
	if left {
		p.Vel.X -= accel
		p.Facing = -1
		if p.Grounded && !p.Charging {
			p.State = StateRun
		}
	}
	if right {
		p.Vel.X += accel
		p.Facing = 1
		if p.Grounded && !p.Charging {
			p.State = StateRun
		}
	}

	if p.Charging && math.Abs(p.Vel.X) > pc.Speed*pc.ChargeSpeedFactor {
		p.Vel.X *= pc.ChargeDamping
	}
	if !p.Grounded {
		if limit := pc.Speed * pc.AirSpeedCap; math.Abs(p.Vel.X) > limit {
			p.Vel.X = core.Sign(p.Vel.X) * limit
		}
	}

	jump := in.Has(core.ActionJump)
	switch {
	case p.Charging && !p.Grounded:
		// Walked or was pushed off the edge mid-charge.
		p.Charging = false
		p.Charge = 0
	case jump && p.Grounded:
		if !p.Charging {
			p.Charging = true
			p.Charge = 0
			p.State = StateCharging
		}
		p.Charge = math.Min(p.Charge+dt, p.ChargeCap)
	case p.Charging && !jump:
		p.jump(pc, w)
	}

	if !left && !right && p.Grounded && !p.Charging {
		p.State = StateIdle
	}
}

// jump releases the charge. Power interpolates between min and max by charge ratio.
func (p *Player) jump(pc config.TowerPlayer, w *World) {
	power := pc.MinJumpPower + (pc.MaxJumpPower-pc.MinJumpPower)*p.ChargeRatio()
	p.Vel.Y = -power
	p.Grounded = false
	p.Support = Support{}
	p.Charging = false
	p.Charge = 0
	p.State = StateRise
	w.play(CueJump)
}

// applyPhysics applies gravity (only if the tick started airborne), friction
// and integration.
func (p *Player) applyPhysics(dt float64, airborne bool, friction float64, phys config.TowerPhysics) {
	if airborne {
		p.Vel.Y = math.Min(p.Vel.Y+phys.Gravity*dt, phys.MaxFallSpeed)
	}

	p.Vel.X *= friction
	if math.Abs(p.Vel.X) < phys.StopSpeed {
		p.Vel.X = 0
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

func (p *Player) animate(dt float64, anim config.TowerAnimation) {
	if !p.Grounded && p.State != StateHit {
		if p.Vel.Y < 0 {
			p.State = StateRise
		} else if p.Vel.Y > 0 {
			p.State = StateFall
		}
	}

	clip := clipFor(p.State, anim)
	if p.Frame < clip.Start || p.Frame > clip.End {
		p.Frame = clip.Start
		p.AnimTime = 0
	}

	p.AnimTime += dt
	if p.AnimTime >= frameDuration(clip.Speed, p.Vel.X, anim.SpeedReference) {
		p.AnimTime = 0
		p.Frame++
		if p.Frame > clip.End {
			p.Frame = clip.Start
		}
	}
}

// frameDuration shortens a clip's frame time as horizontal speed grows.
func frameDuration(base, vx, reference float64) float64 {
	if reference <= 0 {
		return base
	}
	return base / (1 + math.Abs(vx)/reference)
}

func clipFor(s State, anim config.TowerAnimation) config.AnimationClip {
	switch s {
	case StateRun:
		return anim.Run
	case StateRise:
		return anim.Rise
	case StateFall:
		return anim.Fall
	case StateHit:
		return anim.Hit
	default:
		return anim.Idle
	}
}
