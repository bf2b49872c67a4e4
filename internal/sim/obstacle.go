package sim

import (
	"math"

	"github.com/vovakirdan/bear-tower/internal/core"
)

// Kind discriminates obstacle variants.
type Kind int

const (
	KindHazard        Kind = iota // Knocks the player away on touch
	KindEmitter                   // Fires linear projectiles on a timer
	KindBounce                    // Launches the player in a fixed direction
	KindCarrier                   // Moving platform
	KindHomingEmitter             // Fires homing missiles at the player
	KindGoal                      // Ends the run as cleared
	kindCount
)

var kindNames = [kindCount]string{
	KindHazard:        "hazard",
	KindEmitter:       "emitter",
	KindBounce:        "bounce",
	KindCarrier:       "carrier",
	KindHomingEmitter: "homing",
	KindGoal:          "goal",
}

// String returns the variant name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsCarrier reports whether obstacles of this kind support the player like a platform.
func (k Kind) IsCarrier() bool { return k == KindCarrier }

// BounceDir is the launch direction of a bounce pad.
type BounceDir int

const (
	BounceRight BounceDir = iota
	BounceLeft
	BounceUp
	BounceDown
)

// Vertical reports whether the pad launches along the y axis.
func (d BounceDir) Vertical() bool { return d == BounceUp || d == BounceDown }

// String returns the direction name used in segment data.
func (d BounceDir) String() string {
	switch d {
	case BounceLeft:
		return "left"
	case BounceUp:
		return "up"
	case BounceDown:
		return "down"
	default:
		return "right"
	}
}

// Axis is the travel axis of a carrier.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// HazardParams configures a hazard.
type HazardParams struct {
	Angle float64 // Knockback angle in degrees, negative is upward
	Force float64
}

// EmitterState is the timer of an emitter or homing emitter.
type EmitterState struct {
	Interval float64 // Seconds between shots
	Timer    float64
	Angle    float64 // Firing direction in degrees (linear emitters only)
}

// BounceParams configures a bounce pad.
type BounceParams struct {
	Dir   BounceDir
	Force float64
}

// CarrierState is the oscillation state of a moving platform.
type CarrierState struct {
	Start    core.Vec2
	Distance float64
	Speed    float64
	Axis     Axis
	Phase    float64 // 0..1 along the path
	Forward  bool
	Delta    core.Vec2 // Translation applied during the last update
}

// Obstacle is a tagged variant. Only the payload matching Kind is meaningful.
type Obstacle struct {
	Kind      Kind
	Box       core.Box
	Active    bool
	SegmentID string

	Hazard  HazardParams
	Emitter EmitterState
	Bounce  BounceParams
	Carrier CarrierState
}

// NewHazard creates a hazard surface.
func NewHazard(box core.Box, angle, force float64) Obstacle {
	return Obstacle{Kind: KindHazard, Box: box, Active: true, Hazard: HazardParams{Angle: angle, Force: force}}
}

// NewEmitter creates a linear emitter firing along angle (degrees, 0 is right, 90 is down).
func NewEmitter(box core.Box, angle, interval float64) Obstacle {
	return Obstacle{Kind: KindEmitter, Box: box, Active: true, Emitter: EmitterState{Interval: interval, Angle: angle}}
}

// NewHomingEmitter creates an emitter of homing missiles.
func NewHomingEmitter(box core.Box, interval float64) Obstacle {
	return Obstacle{Kind: KindHomingEmitter, Box: box, Active: true, Emitter: EmitterState{Interval: interval}}
}

// NewBounce creates a bounce pad at (x, y). Horizontal pads are length x thickness,
// vertical pads thickness x length.
func NewBounce(x, y float64, dir BounceDir, force, length, thickness float64) Obstacle {
	w, h := length, thickness
	if dir.Vertical() {
		w, h = thickness, length
	}
	return Obstacle{
		Kind:   KindBounce,
		Box:    core.NewBox(x, y, w, h),
		Active: true,
		Bounce: BounceParams{Dir: dir, Force: force},
	}
}

// NewCarrier creates a moving platform that oscillates from its start position
// along axis by distance.
func NewCarrier(box core.Box, axis Axis, distance, speed float64) Obstacle {
	return Obstacle{
		Kind:   KindCarrier,
		Box:    box,
		Active: true,
		Carrier: CarrierState{
			Start:    box.Pos(),
			Distance: distance,
			Speed:    speed,
			Axis:     axis,
			Forward:  true,
		},
	}
}

// NewGoal creates the goal marker.
func NewGoal(box core.Box) Obstacle {
	return Obstacle{Kind: KindGoal, Box: box, Active: true}
}

// behavior is the per-variant dispatch entry. Nil functions are no-ops.
type behavior struct {
	update func(o *Obstacle, w *World, dt float64)
	touch  func(o *Obstacle, w *World, p *Player)
}

var behaviors = [kindCount]behavior{
	KindHazard:        {touch: touchHazard},
	KindEmitter:       {update: updateEmitter},
	KindBounce:        {touch: touchBounce},
	KindCarrier:       {update: updateCarrier},
	KindHomingEmitter: {update: updateHomingEmitter},
	KindGoal:          {touch: touchGoal},
}

func (o *Obstacle) update(w *World, dt float64) {
	if o.Kind < 0 || o.Kind >= kindCount {
		return
	}
	if fn := behaviors[o.Kind].update; fn != nil {
		fn(o, w, dt)
	}
}

func (o *Obstacle) touch(w *World, p *Player) {
	if o.Kind < 0 || o.Kind >= kindCount {
		return
	}
	if fn := behaviors[o.Kind].touch; fn != nil {
		fn(o, w, p)
	}
}

func touchHazard(o *Obstacle, w *World, p *Player) {
	angle := o.Hazard.Angle * math.Pi / 180
	side := 1.0
	if p.Box().Center().X < o.Box.Center().X {
		side = -1
	}
	p.knock(core.Vec2{
		X: math.Cos(angle) * o.Hazard.Force * side,
		Y: math.Sin(angle) * o.Hazard.Force,
	}, w.cfg.Player.HitDuration)
	w.play(CueHit)
}

func touchBounce(o *Obstacle, w *World, p *Player) {
	bc := w.cfg.Obstacles.Bounce
	f := o.Bounce.Force
	switch o.Bounce.Dir {
	case BounceRight:
		p.Vel = core.Vec2{X: f, Y: -f * bc.Lift}
	case BounceLeft:
		p.Vel = core.Vec2{X: -f, Y: -f * bc.Lift}
	case BounceUp:
		p.Vel = core.Vec2{X: p.Vel.X * bc.Damping, Y: -f}
	case BounceDown:
		p.Vel = core.Vec2{X: p.Vel.X * bc.Damping, Y: f}
	}
	p.Grounded = false
	p.Support = Support{}
	w.play(CueBounce)
}

func touchGoal(o *Obstacle, w *World, p *Player) {
	if w.cleared {
		return
	}
	w.cleared = true
	w.logger.Info("goal reached", "elapsed", w.elapsed, "height", w.maxHeight)
	w.play(CueGoal)
}

func updateEmitter(o *Obstacle, w *World, dt float64) {
	e := &o.Emitter
	e.Timer += dt
	if e.Timer < e.Interval {
		return
	}
	e.Timer = 0

	ec := w.cfg.Obstacles.Emitter
	rad := e.Angle * math.Pi / 180
	vel := core.Vec2{X: math.Cos(rad) * ec.BulletSpeed, Y: math.Sin(rad) * ec.BulletSpeed}
	w.addProjectile(newBullet(o.Box.Center(), vel, ec.BulletSize))
	if w.camera.Visible(o.Box, 0) {
		w.play(CueFire)
	}
}

func updateHomingEmitter(o *Obstacle, w *World, dt float64) {
	e := &o.Emitter
	e.Timer += dt
	if e.Timer < e.Interval || w.player == nil {
		return
	}
	e.Timer = 0

	hc := w.cfg.Obstacles.Homing
	w.addProjectile(newMissile(o.Box.Center(), w.player.Box().Center(), hc))
	if w.camera.Visible(o.Box, 0) {
		w.play(CueMissile)
	}
}

func updateCarrier(o *Obstacle, w *World, dt float64) {
	c := &o.Carrier
	c.Delta = core.Vec2{}
	if c.Distance == 0 || c.Speed <= 0 {
		return
	}

	step := c.Speed / math.Abs(c.Distance) * dt
	if c.Forward {
		c.Phase += step
		if c.Phase >= 1 {
			c.Phase = 1
			c.Forward = false
		}
	} else {
		c.Phase -= step
		if c.Phase <= 0 {
			c.Phase = 0
			c.Forward = true
		}
	}

	prev := o.Box.Pos()
	offset := c.Distance * easeInOutSine(c.Phase)
	next := c.Start
	if c.Axis == AxisVertical {
		next.Y += offset
	} else {
		next.X += offset
	}
	o.Box.X, o.Box.Y = next.X, next.Y
	c.Delta = next.Sub(prev)
}

// easeInOutSine maps 0..1 onto 0..1 with zero slope at both ends.
func easeInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}
