// Package sim implements the tower climbing simulation: player physics, collision
// resolution and the obstacle state machine. It has no terminal or audio
// dependencies; hosts feed it a delta time and held input, read a Snapshot and
// receive sound cues through a SoundSink.
package sim

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
)

// Options carries the collaborators of a World. Zero values are replaced with
// the default logger and a silent sound sink.
type Options struct {
	Logger *log.Logger
	Sound  SoundSink
}

// World owns every simulated entity of one stage.
// It is driven from a single goroutine; Step runs to completion.
type World struct {
	cfg    config.TowerConfig
	logger *log.Logger
	sound  SoundSink

	segments    []Segment
	platforms   []Platform
	obstacles   []Obstacle
	doors       []Door
	switches    []Switch
	projectiles []Projectile
	player      *Player
	camera      Camera
	index       *spatialIndex

	spawn     core.Vec2
	floorY    float64 // Lowest world y of the stage content
	elapsed   float64
	maxHeight float64
	falls     int
	cleared   bool
}

// NewWorld builds a world from a composed layout. The layout's slices are
// copied, so one layout can seed several worlds.
func NewWorld(cfg config.TowerConfig, layout Layout, opts Options) *World {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sound == nil {
		opts.Sound = NopSound{}
	}

	w := &World{
		cfg:       cfg,
		logger:    opts.Logger,
		sound:     opts.Sound,
		segments:  append([]Segment(nil), layout.Segments...),
		platforms: append([]Platform(nil), layout.Platforms...),
		obstacles: append([]Obstacle(nil), layout.Obstacles...),
		doors:     append([]Door(nil), layout.Doors...),
		switches:  append([]Switch(nil), layout.Switches...),
		camera:    NewCamera(cfg.Camera),
		spawn:     layout.Spawn,
	}
	w.floorY = w.computeFloor()
	w.linkSwitches()
	w.index = newSpatialIndex(w)

	w.player = NewPlayer(layout.Spawn, cfg.Player)
	w.camera.Snap(w.player.Box())

	w.logger.Debug("world built",
		"segments", len(w.segments),
		"platforms", len(w.platforms),
		"obstacles", len(w.obstacles),
		"doors", len(w.doors),
		"switches", len(w.switches))
	return w
}

// computeFloor returns the lowest edge of segments and platforms.
func (w *World) computeFloor() float64 {
	floor := w.spawn.Y + w.cfg.Player.Height
	for _, s := range w.segments {
		floor = math.Max(floor, s.Origin+s.Height)
	}
	for _, pl := range w.platforms {
		floor = math.Max(floor, pl.Box.Bottom())
	}
	return floor
}

// Step advances the simulation by dt seconds. A non-positive dt freezes the world.
func (w *World) Step(dt float64, in Input) {
	if dt <= 0 {
		return
	}
	w.elapsed += dt

	for i := range w.obstacles {
		o := &w.obstacles[i]
		if !o.Active {
			continue
		}
		o.update(w, dt)
		if o.Kind.IsCarrier() {
			w.index.moveObstacle(i, o.Box)
		}
	}
	w.updateSwitches(dt)
	for i := range w.projectiles {
		w.projectiles[i].update(w, dt)
	}

	if p := w.player; p != nil {
		w.carry(p)
		p.Update(dt, in, w)
		w.checkFall(p)
		w.trackHeight(p)
	}

	w.compactProjectiles()

	if w.player != nil {
		w.camera.Follow(w.player.Box(), dt)
	}
}

// carry moves a player standing on a carrier by the carrier's last translation.
func (w *World) carry(p *Player) {
	if !p.Grounded || p.Support.Kind != SupportCarrier {
		return
	}
	i := p.Support.Index
	if i < 0 || i >= len(w.obstacles) || !w.obstacles[i].Active {
		return
	}
	p.Pos = p.Pos.Add(w.obstacles[i].Carrier.Delta)
}

// checkFall respawns a player that dropped far below the stage.
func (w *World) checkFall(p *Player) {
	if p.Pos.Y <= w.floorY+w.cfg.Stage.FallLimit {
		return
	}
	w.falls++
	w.logger.Info("player fell out of the stage", "y", p.Pos.Y, "falls", w.falls)
	p.Respawn(w.spawn)
	w.camera.Snap(p.Box())
	w.play(CueFall)
}

// trackHeight records the best climb above the spawn point.
func (w *World) trackHeight(p *Player) {
	if h := w.spawn.Y - p.Pos.Y; h > w.maxHeight {
		w.maxHeight = h
	}
}

// compactProjectiles drops inactive projectiles in one pass, keeping order.
func (w *World) compactProjectiles() {
	n := 0
	for _, pr := range w.projectiles {
		if pr.Active {
			w.projectiles[n] = pr
			n++
		}
	}
	clear(w.projectiles[n:])
	w.projectiles = w.projectiles[:n]
}

func (w *World) addProjectile(pr Projectile) {
	w.projectiles = append(w.projectiles, pr)
}

func (w *World) play(cue string) {
	w.sound.Play(cue)
}

// Player returns the player, or nil if the world has none.
func (w *World) Player() *Player { return w.player }

// RemovePlayer detaches the player. Homing emitters hold fire without one.
func (w *World) RemovePlayer() { w.player = nil }

// Camera returns the current camera.
func (w *World) Camera() Camera { return w.camera }

// Cleared reports whether the goal was reached.
func (w *World) Cleared() bool { return w.cleared }

// Elapsed returns simulated seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// MaxHeight returns the best climb above the spawn point in world units.
func (w *World) MaxHeight() float64 { return w.maxHeight }

// Falls returns how many times the player fell out and respawned.
func (w *World) Falls() int { return w.falls }

// Spawn returns the respawn position.
func (w *World) Spawn() core.Vec2 { return w.spawn }

// SegmentAt returns the segment containing world y: the one with the greatest
// origin at or above y. Segments are stacked upward, so origins decrease.
func (w *World) SegmentAt(y float64) (Segment, bool) {
	var best Segment
	found := false
	for _, s := range w.segments {
		if s.Origin <= y && (!found || s.Origin > best.Origin) {
			best, found = s, true
		}
	}
	if !found && len(w.segments) > 0 {
		// Above every origin means inside the topmost segment.
		best, found = w.segments[0], true
		for _, s := range w.segments[1:] {
			if s.Origin < best.Origin {
				best = s
			}
		}
	}
	return best, found
}
