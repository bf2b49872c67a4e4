// Package formats provides the segment and stage catalogue file parsers.
package formats

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Segment is one map segment in segment-local coordinates.
// Local y grows downward from the segment's origin.
type Segment struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Height    float64    `yaml:"height"`
	Start     *Point     `yaml:"start,omitempty"`
	Platforms []Platform `yaml:"platforms"`
	Obstacles []Obstacle `yaml:"obstacles"`

	// Issues lists fields that could not be decoded and were left at their
	// zero value.
	Issues []string `yaml:"-"`
}

// Point is a local position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Platform is static geometry. Type "ice" makes it slippery.
type Platform struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Type     string  `yaml:"type,omitempty"`
	Shape    string  `yaml:"shape,omitempty"` // floor, wall or empty for auto
	Friction float64 `yaml:"friction,omitempty"`
	Color    string  `yaml:"color,omitempty"`
}

// Obstacle is any non-platform entity. Which fields apply depends on Type.
type Obstacle struct {
	Type      string    `yaml:"type"`
	X         float64   `yaml:"x"`
	Y         float64   `yaml:"y"`
	Width     float64   `yaml:"width,omitempty"`
	Height    float64   `yaml:"height,omitempty"`
	Direction Direction `yaml:"direction,omitempty"`
	Interval  float64   `yaml:"interval,omitempty"` // Milliseconds
	Distance  float64   `yaml:"distance,omitempty"`
	Speed     float64   `yaml:"speed,omitempty"`
	Force     float64   `yaml:"force,omitempty"`

	// Doors and switches
	ID            string         `yaml:"id,omitempty"`
	DoorID        string         `yaml:"door_id,omitempty"`
	Timeout       OptionalNumber `yaml:"timeout,omitempty"` // Seconds; absent means permanent
	InitiallyOpen bool           `yaml:"initially_open,omitempty"`
}

// Direction is a named direction ("left", "vertical") or a number.
// Emitters read it as an angle in degrees, bounce pads as a signed code.
type Direction struct {
	Name    string
	Value   float64
	Numeric bool
}

// IsZero reports whether the direction was omitted.
func (d Direction) IsZero() bool { return d.Name == "" && !d.Numeric }

// UnmarshalYAML accepts a scalar string or number. Anything else leaves the
// direction omitted and is reported as a type error.
func (d *Direction) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*d = Direction{}
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: direction must be a name or a number", node.Line),
		}}
	}
	if v, err := strconv.ParseFloat(node.Value, 64); err == nil {
		*d = Direction{Value: v, Numeric: true}
		return nil
	}
	*d = Direction{Name: node.Value}
	return nil
}

// OptionalNumber is a number that may be absent. Set stays false when the
// field is missing or is not a number.
type OptionalNumber struct {
	Value float64
	Set   bool
}

// UnmarshalYAML decodes a number; a type error leaves n unset.
func (n *OptionalNumber) UnmarshalYAML(node *yaml.Node) error {
	var v float64
	if err := node.Decode(&v); err != nil {
		*n = OptionalNumber{}
		return err
	}
	*n = OptionalNumber{Value: v, Set: true}
	return nil
}

// Catalog lists the playable stages.
type Catalog struct {
	Stages []Stage `yaml:"stages"`
}

// Stage is an ordered stack of segment IDs, bottom first.
type Stage struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Segments []string `yaml:"segments"`
}

// ParseYAML parses a segment file. A field of the wrong type keeps its zero
// value and is listed in Issues; only malformed YAML fails the whole file.
func ParseYAML(data []byte) (Segment, error) {
	var seg Segment
	if err := yaml.Unmarshal(data, &seg); err != nil {
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			return Segment{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
		seg.Issues = te.Errors
	}
	if seg.ID == "" {
		return Segment{}, fmt.Errorf("segment has no id")
	}
	return seg, nil
}

// ParseCatalog parses a stage catalogue.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	for i, s := range c.Stages {
		if s.ID == "" {
			return Catalog{}, fmt.Errorf("stage %d has no id", i)
		}
	}
	return c, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
