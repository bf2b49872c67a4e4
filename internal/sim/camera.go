package sim

import (
	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
)

// Camera is the world-space view window that follows the player.
type Camera struct {
	Pos         core.Vec2 // Top-left of the view in world units
	Width       float64
	Height      float64
	FollowSpeed float64
	OffsetY     float64
}

// NewCamera creates a camera from configuration.
func NewCamera(cfg config.TowerCamera) Camera {
	return Camera{
		Width:       cfg.ViewWidth,
		Height:      cfg.ViewHeight,
		FollowSpeed: cfg.FollowSpeed,
		OffsetY:     cfg.OffsetY,
	}
}

// Target returns where the camera wants to be for a subject box.
func (c Camera) Target(subject core.Box) core.Vec2 {
	return core.Vec2{
		X: subject.X - c.Width/2,
		Y: subject.Y - c.Height/2 + c.OffsetY,
	}
}

// Follow moves the camera a fraction of the way toward its target.
func (c *Camera) Follow(subject core.Box, dt float64) {
	t := core.ClampF(c.FollowSpeed*dt, 0, 1)
	c.Pos = c.Pos.Add(c.Target(subject).Sub(c.Pos).Scale(t))
}

// Snap places the camera on its target immediately.
func (c *Camera) Snap(subject core.Box) {
	c.Pos = c.Target(subject)
}

// View returns the visible world rectangle.
func (c Camera) View() core.Box {
	return core.NewBox(c.Pos.X, c.Pos.Y, c.Width, c.Height)
}

// Visible reports whether b intersects the view grown by margin on every side.
func (c Camera) Visible(b core.Box, margin float64) bool {
	v := core.NewBox(c.Pos.X-margin, c.Pos.Y-margin, c.Width+2*margin, c.Height+2*margin)
	return b.Overlaps(v)
}

// WorldToScreen converts a world point to view-relative coordinates.
func (c Camera) WorldToScreen(p core.Vec2) core.Vec2 { return p.Sub(c.Pos) }

