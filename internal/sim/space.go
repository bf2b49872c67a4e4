package sim

import (
	"cmp"
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/bear-tower/internal/core"
)

// Space object tags. Platforms are tagged by their resolved shape so walls and
// landing surfaces can be told apart from the broad phase alone.
const (
	tagPlatform = "platform"
	tagWall     = "wall"
	tagCarrier  = "carrier"
	tagObstacle = "obstacle"
	tagDoor     = "door"
	tagSwitch   = "switch"
	tagPlayer   = "player"
)

const (
	spaceCell   = 32
	spaceMargin = 512 // Room around the content for bodies that wander off it
	bodyPad     = 1   // Grows every registered box so touching edges share a cell
)

// spatialIndex is the collision broad phase. Every collider of a world lives in
// one resolv space; Object.Data holds the collider's index in its collection.
// resolv cells start at zero, so world boxes are stored relative to origin.
type spatialIndex struct {
	space     *resolv.Space
	origin    core.Vec2
	obstacles []*resolv.Object // Parallel to World.obstacles
	query     *resolv.Object
}

// newSpatialIndex registers the world's platforms, obstacles, doors and switches.
func newSpatialIndex(w *World) *spatialIndex {
	bounds := contentBounds(w)
	cols := int(math.Ceil(bounds.W/spaceCell)) + 1
	rows := int(math.Ceil(bounds.H/spaceCell)) + 1

	ix := &spatialIndex{
		space:     resolv.NewSpace(cols*spaceCell, rows*spaceCell, spaceCell, spaceCell),
		origin:    bounds.Pos(),
		obstacles: make([]*resolv.Object, len(w.obstacles)),
	}

	for i, pl := range w.platforms {
		tag := tagPlatform
		if isWall(pl, w.cfg.Collision) {
			tag = tagWall
		}
		ix.add(pl.Box, i, tag)
	}
	for i, o := range w.obstacles {
		tag := tagObstacle
		if o.Kind.IsCarrier() {
			tag = tagCarrier
		}
		ix.obstacles[i] = ix.add(o.Box, i, tag)
	}
	for i, d := range w.doors {
		ix.add(d.Box, i, tagDoor)
	}
	for i, s := range w.switches {
		ix.add(s.Box, i, tagSwitch)
	}

	ix.query = ix.add(core.NewBox(w.spawn.X, w.spawn.Y, w.cfg.Player.Width, w.cfg.Player.Height), -1, tagPlayer)
	return ix
}

// contentBounds returns the box covering every collider, the full travel of
// each carrier and the spawn point, grown by spaceMargin.
func contentBounds(w *World) core.Box {
	minX, minY := w.spawn.X, w.spawn.Y
	maxX, maxY := w.spawn.X+w.cfg.Player.Width, w.spawn.Y+w.cfg.Player.Height
	extend := func(b core.Box) {
		minX, minY = math.Min(minX, b.X), math.Min(minY, b.Y)
		maxX, maxY = math.Max(maxX, b.Right()), math.Max(maxY, b.Bottom())
	}

	for _, pl := range w.platforms {
		extend(pl.Box)
	}
	for _, o := range w.obstacles {
		extend(o.Box)
		if o.Kind.IsCarrier() {
			end := core.Vec2{X: o.Carrier.Distance}
			if o.Carrier.Axis == AxisVertical {
				end = core.Vec2{Y: o.Carrier.Distance}
			}
			extend(core.NewBox(o.Carrier.Start.X, o.Carrier.Start.Y, o.Box.W, o.Box.H).Translate(end))
		}
	}
	for _, d := range w.doors {
		extend(d.Box)
	}
	for _, s := range w.switches {
		extend(s.Box)
	}

	return core.NewBox(minX-spaceMargin, minY-spaceMargin,
		maxX-minX+2*spaceMargin, maxY-minY+2*spaceMargin)
}

func (ix *spatialIndex) add(b core.Box, index int, tags ...string) *resolv.Object {
	obj := resolv.NewObject(0, 0, 0, 0, tags...)
	obj.Data = index
	ix.space.Add(obj)
	ix.place(obj, b)
	return obj
}

// place moves obj over b and re-registers it with the cells it now touches.
func (ix *spatialIndex) place(obj *resolv.Object, b core.Box) {
	obj.X = b.X - ix.origin.X - bodyPad
	obj.Y = b.Y - ix.origin.Y - bodyPad
	obj.W = b.W + 2*bodyPad
	obj.H = b.H + 2*bodyPad
	obj.Update()
}

// moveObstacle follows an obstacle that changed position this tick.
func (ix *spatialIndex) moveObstacle(i int, b core.Box) {
	if i >= 0 && i < len(ix.obstacles) && ix.obstacles[i] != nil {
		ix.place(ix.obstacles[i], b)
	}
}

// near returns the objects carrying any of tags that share a cell with b,
// ordered by their collection index.
func (ix *spatialIndex) near(b core.Box, tags ...string) []*resolv.Object {
	ix.place(ix.query, b)
	check := ix.query.Check(0, 0, tags...)
	if check == nil {
		return nil
	}
	objs := check.ObjectsByTags(tags...)
	slices.SortFunc(objs, func(x, y *resolv.Object) int {
		return cmp.Compare(slot(x), slot(y))
	})
	return slices.Compact(objs)
}

// slot returns the collection index stored on obj.
func slot(obj *resolv.Object) int {
	if i, ok := obj.Data.(int); ok {
		return i
	}
	return -1
}

// sweep returns the box covering b at the start and the end of a tick of
// motion at vel.
func sweep(b core.Box, vel core.Vec2, dt float64) core.Box {
	prev := b.Translate(vel.Scale(-dt))
	x, y := math.Min(b.X, prev.X), math.Min(b.Y, prev.Y)
	return core.NewBox(x, y, math.Max(b.Right(), prev.Right())-x, math.Max(b.Bottom(), prev.Bottom())-y)
}
