package sim

import "github.com/vovakirdan/bear-tower/internal/core"

// Flavor selects surface behaviour of a platform.
type Flavor int

const (
	FlavorNormal Flavor = iota
	FlavorIce           // Friction overridden by the ice setting
)

// String returns the flavor name used in segment data.
func (f Flavor) String() string {
	if f == FlavorIce {
		return "ice"
	}
	return "normal"
}

// Shape tags how a platform resolves collisions.
type Shape int

const (
	ShapeAuto  Shape = iota // Classified by proportions
	ShapeFloor              // Landing only
	ShapeWall               // Horizontal blocking only
)

// ParseShape maps segment data to a Shape. Unknown names are ShapeAuto.
func ParseShape(s string) Shape {
	switch s {
	case "floor":
		return ShapeFloor
	case "wall":
		return ShapeWall
	default:
		return ShapeAuto
	}
}

// String returns the shape name used in segment data.
func (s Shape) String() string {
	switch s {
	case ShapeFloor:
		return "floor"
	case ShapeWall:
		return "wall"
	default:
		return "auto"
	}
}

// Platform is static level geometry. It is never mutated after creation.
type Platform struct {
	Box       core.Box
	Friction  float64 // Zero means the ground default
	Flavor    Flavor
	Shape     Shape
	Style     string // Colour name for renderers
	SegmentID string
}

// Segment records where a composed map segment sits in world space.
// Origin is the world y of the segment's local y=0.
type Segment struct {
	ID     string
	Name   string
	Origin float64
	Height float64
}

// Layout is the absolute-coordinate content a World is built from.
type Layout struct {
	Segments  []Segment
	Platforms []Platform
	Obstacles []Obstacle
	Doors     []Door
	Switches  []Switch
	Spawn     core.Vec2 // Player top-left at start and after a fall
}
