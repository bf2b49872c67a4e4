package stage

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/sim"
	"github.com/vovakirdan/bear-tower/internal/stage/formats"
)

// Build resolves a catalogue stage and composes its segments in order.
// A segment that cannot be loaded is replaced by an empty one.
func (l *Loader) Build(stageID string, cfg config.TowerConfig, logger *log.Logger) (sim.Layout, formats.Stage, error) {
	if logger == nil {
		logger = l.logger()
	}
	st, err := l.Stage(stageID)
	if err != nil {
		return sim.Layout{}, formats.Stage{}, err
	}

	all, err := l.loadAll(logger)
	if err != nil {
		logger.Warn("segment scan failed, stage will be empty", "stage", stageID, "err", err)
	}
	byID := make(map[string]formats.Segment, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}

	segs := make([]formats.Segment, 0, len(st.Segments))
	for _, id := range st.Segments {
		seg, ok := byID[id]
		if !ok {
			logger.Warn("segment missing, using an empty one", "stage", stageID, "segment", id)
			seg = formats.Segment{ID: id}
		}
		segs = append(segs, seg)
	}
	return Compose(cfg, segs, logger), st, nil
}

// Compose stacks segments bottom first. The first segment's origin is world
// y=0 and each following origin sits one segment height above the previous.
// Entities are translated to world coordinates; doors and switches are
// extracted into their own collections.
func Compose(cfg config.TowerConfig, segs []formats.Segment, logger *log.Logger) sim.Layout {
	if logger == nil {
		logger = log.Default()
	}
	c := composer{
		cfg:           cfg.Effective(),
		intervalScale: cfg.Difficulty.IntervalScale,
		logger:        logger,
	}
	if c.intervalScale <= 0 {
		c.intervalScale = 1
	}

	var out sim.Layout
	out.Spawn = core.Vec2{X: c.cfg.Stage.SpawnX, Y: c.cfg.Stage.SpawnY}

	origin := 0.0
	for i, seg := range segs {
		height := seg.Height
		if height <= 0 {
			height = c.cfg.Stage.SegmentHeight
		}
		name := seg.Name
		if name == "" {
			name = seg.ID
		}
		out.Segments = append(out.Segments, sim.Segment{ID: seg.ID, Name: name, Origin: origin, Height: height})

		if i == 0 {
			start := core.Vec2{X: c.cfg.Stage.SpawnX, Y: c.cfg.Stage.SpawnY}
			if seg.Start != nil {
				start = core.Vec2{X: seg.Start.X, Y: seg.Start.Y}
			}
			out.Spawn = core.Vec2{X: start.X, Y: start.Y + origin}
		}

		for _, p := range seg.Platforms {
			out.Platforms = append(out.Platforms, c.platform(p, seg.ID, origin))
		}
		for _, o := range seg.Obstacles {
			c.obstacle(&out, o, seg.ID, origin)
		}
		origin -= height
	}

	logger.Debug("stage composed",
		"segments", len(out.Segments),
		"platforms", len(out.Platforms),
		"obstacles", len(out.Obstacles),
		"doors", len(out.Doors),
		"switches", len(out.Switches))
	return out
}

type composer struct {
	cfg           config.TowerConfig
	intervalScale float64 // Applied to intervals given in segment data
	logger        *log.Logger
}

func (c composer) platform(p formats.Platform, segID string, origin float64) sim.Platform {
	w, h := orDefault(p.Width, p.Height, c.cfg.Obstacles.Default)
	pl := sim.Platform{
		Box:       core.NewBox(p.X, p.Y+origin, w, h),
		Friction:  p.Friction,
		Shape:     sim.ParseShape(strings.ToLower(p.Shape)),
		Style:     p.Color,
		SegmentID: segID,
	}
	if t := strings.ToLower(p.Type); t == "ice" || t == "iceplatform" {
		pl.Flavor = sim.FlavorIce
	}
	if pl.Style == "" {
		pl.Style = pl.Flavor.String()
	}
	return pl
}

func (c composer) obstacle(out *sim.Layout, o formats.Obstacle, segID string, origin float64) {
	oc := c.cfg.Obstacles
	box := func(def config.Size) core.Box {
		w, h := orDefault(o.Width, o.Height, def)
		return core.NewBox(o.X, o.Y+origin, w, h)
	}

	var ob sim.Obstacle
	switch strings.ToLower(o.Type) {
	case "redplatform", "hazard":
		ob = sim.NewHazard(box(oc.Default), oc.Hazard.KnockbackAngle, positiveOr(o.Force, oc.Hazard.KnockbackForce))

	case "cannon", "emitter":
		ob = sim.NewEmitter(box(oc.Emitter.Size), emitterAngle(o.Direction), c.interval(o.Interval, oc.Emitter.FireInterval))

	case "missilecannon", "homing":
		ob = sim.NewHomingEmitter(box(oc.Homing.Size), c.interval(o.Interval, oc.Homing.FireInterval))

	case "spring", "bounce":
		ob = sim.NewBounce(o.X, o.Y+origin, bounceDir(o.Direction), positiveOr(o.Force, oc.Bounce.Force), oc.Bounce.Length, oc.Bounce.Thickness)

	case "movingplatform", "carrier":
		axis := sim.AxisHorizontal
		if strings.EqualFold(o.Direction.Name, "vertical") {
			axis = sim.AxisVertical
		}
		distance := o.Distance
		if distance == 0 {
			distance = oc.Carrier.Distance
		}
		ob = sim.NewCarrier(box(oc.Default), axis, distance, positiveOr(o.Speed, oc.Carrier.Speed))

	case "goal":
		ob = sim.NewGoal(box(oc.Goal))

	case "iceplatform", "ice":
		w, h := orDefault(o.Width, o.Height, oc.Default)
		out.Platforms = append(out.Platforms, sim.Platform{
			Box:       core.NewBox(o.X, o.Y+origin, w, h),
			Flavor:    sim.FlavorIce,
			Style:     sim.FlavorIce.String(),
			SegmentID: segID,
		})
		return

	case "switch", "button":
		s := sim.Switch{Box: box(oc.Switch), DoorID: o.DoorID, SegmentID: segID}
		if o.Timeout.Set {
			s.Timeout = sim.After(o.Timeout.Value)
		}
		out.Switches = append(out.Switches, s)
		return

	case "door":
		if o.ID == "" {
			c.logger.Warn("door without id cannot be opened", "segment", segID, "x", o.X, "y", o.Y)
		}
		out.Doors = append(out.Doors, sim.Door{ID: o.ID, Box: box(oc.Door), Open: o.InitiallyOpen, SegmentID: segID})
		return

	default:
		c.logger.Warn("unknown obstacle type skipped", "type", o.Type, "segment", segID)
		return
	}

	ob.SegmentID = segID
	out.Obstacles = append(out.Obstacles, ob)
}

// interval converts a segment interval in milliseconds to seconds, scaled by
// difficulty. Zero falls back to the configured default.
func (c composer) interval(ms, def float64) float64 {
	if ms <= 0 {
		return def
	}
	return ms / 1000 * c.intervalScale
}

// emitterAngle maps a direction to degrees: 0 right, 90 down, 180 left, 270 up.
func emitterAngle(d formats.Direction) float64 {
	if d.Numeric {
		return d.Value
	}
	switch strings.ToLower(d.Name) {
	case "left":
		return 180
	case "up":
		return 270
	case "down":
		return 90
	default:
		return 0
	}
}

// bounceDir maps a name or the signed codes 1, -1, 2, -2 (right, left, up, down).
func bounceDir(d formats.Direction) sim.BounceDir {
	if d.Numeric {
		switch d.Value {
		case -1:
			return sim.BounceLeft
		case 2:
			return sim.BounceUp
		case -2:
			return sim.BounceDown
		default:
			return sim.BounceRight
		}
	}
	switch strings.ToLower(d.Name) {
	case "left":
		return sim.BounceLeft
	case "up":
		return sim.BounceUp
	case "down":
		return sim.BounceDown
	default:
		return sim.BounceRight
	}
}

func orDefault(w, h float64, def config.Size) (float64, float64) {
	if w <= 0 {
		w = def.Width
	}
	if h <= 0 {
		h = def.Height
	}
	return w, h
}

func positiveOr(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
