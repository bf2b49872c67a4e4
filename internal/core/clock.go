package core

import (
	"math"
	"time"
)

// Clock derives per-tick delta time from host timestamps.
//
// The delta is clamped to MaxDelta so a stalled host cannot produce a large,
// unstable step. While paused every tick yields a zero delta.
type Clock struct {
	MaxDelta  float64 // Upper bound for one tick, in seconds
	TimeScale float64 // Multiplier applied after clamping

	last      time.Time
	started   bool
	paused    bool
	delta     float64
	total     float64
	fps       int
	fpsStart  time.Time
	fpsFrames int
}

// NewClock creates a clock with the given delta bound and scale 1.
func NewClock(maxDelta float64) *Clock {
	return &Clock{MaxDelta: maxDelta, TimeScale: 1}
}

// Tick consumes a host timestamp and returns the delta for this tick.
// The first tick after construction or Reset yields 0.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		c.fpsStart = now
		c.delta = 0
		return 0
	}

	raw := now.Sub(c.last).Seconds()
	if raw < 0 {
		raw = 0
	}
	if c.MaxDelta > 0 {
		raw = math.Min(raw, c.MaxDelta)
	}
	c.last = now

	if c.paused {
		c.delta = 0
	} else {
		c.delta = raw * c.TimeScale
		c.total += c.delta
	}

	c.fpsFrames++
	if elapsed := now.Sub(c.fpsStart); elapsed >= time.Second {
		c.fps = int(math.Round(float64(c.fpsFrames) / elapsed.Seconds()))
		c.fpsFrames = 0
		c.fpsStart = now
	}
	return c.delta
}

// Delta returns the delta computed by the last Tick.
func (c *Clock) Delta() float64 { return c.delta }

// FPS returns the tick rate measured over the last full second.
func (c *Clock) FPS() int { return c.fps }

// Elapsed returns the total unpaused, scaled game time in seconds.
func (c *Clock) Elapsed() float64 { return c.total }

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool { return c.paused }

// SetPaused freezes or resumes the clock.
func (c *Clock) SetPaused(p bool) { c.paused = p }

// SetTimeScale sets the time multiplier. Negative values are treated as 0.
func (c *Clock) SetTimeScale(s float64) { c.TimeScale = math.Max(0, s) }

// Reset clears accumulated time and waits for a fresh first tick.
func (c *Clock) Reset() {
	c.started = false
	c.paused = false
	c.delta = 0
	c.total = 0
	c.fps = 0
	c.fpsFrames = 0
}
