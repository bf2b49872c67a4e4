package sim

import "github.com/vovakirdan/bear-tower/internal/core"

// PlayerView is the read-only player state handed to renderers.
type PlayerView struct {
	Box         core.Box
	Vel         core.Vec2
	State       State
	Grounded    bool
	Charging    bool
	ChargeRatio float64
	Facing      float64
	Frame       int
}

// Snapshot is a copy of the world taken after a tick. Renderers and tests
// read it without touching simulation state.
type Snapshot struct {
	Platforms   []Platform
	Obstacles   []Obstacle
	Doors       []Door
	Switches    []Switch
	Projectiles []Projectile
	Player      *PlayerView // Nil when the world has no player
	Camera      Camera
	Segment     Segment // Segment under the player
	Elapsed     float64
	MaxHeight   float64
	Falls       int
	Cleared     bool
}

// Snapshot copies the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Platforms:   append([]Platform(nil), w.platforms...),
		Obstacles:   append([]Obstacle(nil), w.obstacles...),
		Doors:       append([]Door(nil), w.doors...),
		Switches:    append([]Switch(nil), w.switches...),
		Projectiles: append([]Projectile(nil), w.projectiles...),
		Camera:      w.camera,
		Elapsed:     w.elapsed,
		MaxHeight:   w.maxHeight,
		Falls:       w.falls,
		Cleared:     w.cleared,
	}
	if p := w.player; p != nil {
		s.Player = &PlayerView{
			Box:         p.Box(),
			Vel:         p.Vel,
			State:       p.State,
			Grounded:    p.Grounded,
			Charging:    p.Charging,
			ChargeRatio: p.ChargeRatio(),
			Facing:      p.Facing,
			Frame:       p.Frame,
		}
		s.Segment, _ = w.SegmentAt(p.Pos.Y)
	}
	return s
}
