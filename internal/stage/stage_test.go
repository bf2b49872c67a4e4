package stage

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/sim"
	"github.com/vovakirdan/bear-tower/internal/stage/formats"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"stages.yaml": {Data: []byte(`
stages:
  - id: two
    title: Two Floors
    segments: [low, high]
  - id: hole
    title: Missing Segment
    segments: [nope]
`)},
		"segments/low.yaml": {Data: []byte(`
id: low
name: Low
height: 3000
start: { x: 150, y: 2800 }
platforms:
  - { x: 0, y: 2900, width: 1000, height: 100 }
`)},
		"segments/high.yml": {Data: []byte(`
id: high
height: 2500
platforms:
  - { x: 0, y: 0, width: 200, height: 20 }
obstacles:
  - { type: door, id: D1, x: 400, y: 100 }
`)},
		"segments/broken.yaml": {Data: []byte("id: [oops")},
		"segments/notes.txt":    {Data: []byte("not a segment")},
	}
}

func TestLoaderLoadAll(t *testing.T) {
	l := &Loader{FS: testFS(), Logger: quietLogger()}
	ids, err := l.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() failed: %v", err)
	}
	expected := []string{"high", "low"}
	if len(ids) != len(expected) {
		t.Fatalf("ListIDs() = %v, expected %v", ids, expected)
	}
	for i := range ids {
		if ids[i] != expected[i] {
			t.Errorf("ListIDs()[%d] = %q, expected %q", i, ids[i], expected[i])
		}
	}
}

func TestLoaderLogsSkippedFiles(t *testing.T) {
	fsys := testFS()
	fsys["segments/sloppy.yaml"] = &fstest.MapFile{Data: []byte(`
id: sloppy
platforms:
  - { x: 0, y: 100, width: 300, height: 20 }
obstacles:
  - { type: cannon, x: 0, y: 0, width: wide }
`)}

	var buf bytes.Buffer
	l := &Loader{FS: fsys, Logger: log.New(&buf)}
	segs, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(segs) != 3 {
		t.Errorf("LoadAll() returned %d segments, expected 3", len(segs))
	}

	out := buf.String()
	for _, want := range []string{"segments/broken.yaml", "segments/sloppy.yaml"} {
		if !strings.Contains(out, want) {
			t.Errorf("log should name %s, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "notes.txt") {
		t.Error("files without a segment extension should be ignored silently")
	}
}

func TestLoaderStageNotFound(t *testing.T) {
	l := &Loader{FS: testFS()}
	_, err := l.Stage("ghost")
	if !errors.Is(err, ErrStageNotFound) {
		t.Errorf("Stage() error = %v, expected ErrStageNotFound", err)
	}
}

func TestBuildStacksSegments(t *testing.T) {
	l := &Loader{FS: testFS()}
	layout, st, err := l.Build("two", config.DefaultTowerConfig(), quietLogger())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if st.Title != "Two Floors" {
		t.Errorf("Title = %q, expected %q", st.Title, "Two Floors")
	}
	if len(layout.Segments) != 2 {
		t.Fatalf("got %d segments, expected 2", len(layout.Segments))
	}

	high := layout.Segments[1]
	if high.Origin != -3000 {
		t.Errorf("second segment origin = %v, expected -3000", high.Origin)
	}
	if high.Name != "high" {
		t.Errorf("unnamed segment should use its id, got %q", high.Name)
	}

	// Local (0,0) of the second segment maps to world y -3000.
	if got := layout.Platforms[1].Box.Y; got != -3000 {
		t.Errorf("high platform y = %v, expected -3000", got)
	}
	if got := layout.Doors[0].Box; got != core.NewBox(400, -2900, 40, 200) {
		t.Errorf("door box = %+v, expected default size at world coordinates", got)
	}
	if layout.Spawn != (core.Vec2{X: 150, Y: 2800}) {
		t.Errorf("Spawn = %v, expected the first segment's start", layout.Spawn)
	}
}

func TestBuildMissingSegmentDegrades(t *testing.T) {
	l := &Loader{FS: testFS()}
	layout, _, err := l.Build("hole", config.DefaultTowerConfig(), quietLogger())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if len(layout.Segments) != 1 || layout.Segments[0].Height != 3000 {
		t.Errorf("Segments = %+v, expected one empty segment of height 3000", layout.Segments)
	}
	if len(layout.Platforms) != 0 || len(layout.Obstacles) != 0 {
		t.Error("missing segment should contribute no entities")
	}
	if layout.Spawn != (core.Vec2{X: 100, Y: 500}) {
		t.Errorf("Spawn = %v, expected default (100, 500)", layout.Spawn)
	}
}

func TestComposeEntityMapping(t *testing.T) {
	seg := formats.Segment{
		ID:     "mix",
		Height: 3000,
		Platforms: []formats.Platform{
			{X: 0, Y: 100, Width: 20, Height: 1500, Shape: "Wall"},
			{X: 0, Y: 200, Type: "ice"},
		},
		Obstacles: []formats.Obstacle{
			{Type: "redPlatform", X: 10, Y: 10},
			{Type: "cannon", X: 10, Y: 10, Direction: formats.Direction{Name: "up"}, Interval: 1500},
			{Type: "cannon", X: 10, Y: 10, Direction: formats.Direction{Value: 45, Numeric: true}},
			{Type: "spring", X: 10, Y: 10, Direction: formats.Direction{Value: -2, Numeric: true}},
			{Type: "movingPlatform", X: 10, Y: 10, Direction: formats.Direction{Name: "vertical"}},
			{Type: "missileCannon", X: 10, Y: 10},
			{Type: "iceplatform", X: 500, Y: 500, Width: 300, Height: 30},
			{Type: "button", X: 10, Y: 10, DoorID: "A", Timeout: formats.OptionalNumber{Value: 3, Set: true}},
			{Type: "switch", X: 10, Y: 10, DoorID: "A"},
			{Type: "door", ID: "A", X: 10, Y: 10, InitiallyOpen: true},
			{Type: "goal", X: 10, Y: 10},
			{Type: "teleporter", X: 10, Y: 10},
		},
	}
	layout := Compose(config.DefaultTowerConfig(), []formats.Segment{seg}, quietLogger())

	if len(layout.Platforms) != 3 {
		t.Fatalf("got %d platforms, expected 3 (two declared plus the ice obstacle)", len(layout.Platforms))
	}
	if layout.Platforms[0].Shape != sim.ShapeWall {
		t.Errorf("Shape = %v, expected wall", layout.Platforms[0].Shape)
	}
	if p := layout.Platforms[1]; p.Flavor != sim.FlavorIce || p.Box.W != 64 || p.Box.H != 64 {
		t.Errorf("ice platform = %+v, expected ice flavor with default size", p)
	}
	if layout.Platforms[2].Flavor != sim.FlavorIce {
		t.Error("iceplatform obstacle should become an ice platform")
	}

	kinds := []sim.Kind{sim.KindHazard, sim.KindEmitter, sim.KindEmitter, sim.KindBounce, sim.KindCarrier, sim.KindHomingEmitter, sim.KindGoal}
	if len(layout.Obstacles) != len(kinds) {
		t.Fatalf("got %d obstacles, expected %d", len(layout.Obstacles), len(kinds))
	}
	for i, k := range kinds {
		if layout.Obstacles[i].Kind != k {
			t.Errorf("Obstacles[%d].Kind = %v, expected %v", i, layout.Obstacles[i].Kind, k)
		}
		if layout.Obstacles[i].SegmentID != "mix" {
			t.Errorf("Obstacles[%d].SegmentID = %q", i, layout.Obstacles[i].SegmentID)
		}
	}

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"hazard force", layout.Obstacles[0].Hazard.Force, 800},
		{"up cannon angle", layout.Obstacles[1].Emitter.Angle, 270},
		{"cannon interval from ms", layout.Obstacles[1].Emitter.Interval, 1.5},
		{"numeric cannon angle", layout.Obstacles[2].Emitter.Angle, 45},
		{"default cannon interval", layout.Obstacles[2].Emitter.Interval, 2},
		{"bounce force", layout.Obstacles[3].Bounce.Force, 800},
		{"carrier distance", layout.Obstacles[4].Carrier.Distance, 200},
		{"carrier speed", layout.Obstacles[4].Carrier.Speed, 100},
		{"homing interval", layout.Obstacles[5].Emitter.Interval, 3},
		{"goal width", layout.Obstacles[6].Box.W, 96},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}
	if layout.Obstacles[3].Bounce.Dir != sim.BounceDown {
		t.Errorf("bounce dir = %v, expected down", layout.Obstacles[3].Bounce.Dir)
	}
	if layout.Obstacles[4].Carrier.Axis != sim.AxisVertical {
		t.Error("carrier should travel vertically")
	}

	if len(layout.Switches) != 2 || len(layout.Doors) != 1 {
		t.Fatalf("got %d switches and %d doors, expected 2 and 1", len(layout.Switches), len(layout.Doors))
	}
	if s := layout.Switches[0]; !s.Timeout.Valid || s.Timeout.Seconds != 3 || s.Box.W != 80 || s.Box.H != 30 {
		t.Errorf("timed switch = %+v", s)
	}
	if layout.Switches[1].Timeout.Valid {
		t.Error("switch without timeout should be permanent")
	}
	if !layout.Doors[0].Open {
		t.Error("door should start open")
	}
}

func TestComposeDifficultyScalesIntervals(t *testing.T) {
	cfg := config.DefaultTowerConfig()
	config.ApplyTowerPreset(&cfg, config.DifficultyEasy)

	seg := formats.Segment{ID: "s", Obstacles: []formats.Obstacle{
		{Type: "cannon", Interval: 2000},
		{Type: "cannon"},
		{Type: "missileCannon"},
	}}
	layout := Compose(cfg, []formats.Segment{seg}, quietLogger())

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"data interval", layout.Obstacles[0].Emitter.Interval, 3},
		{"default emitter interval", layout.Obstacles[1].Emitter.Interval, 3},
		{"default homing interval", layout.Obstacles[2].Emitter.Interval, 4.5},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}
}

func TestDirectionUnmarshal(t *testing.T) {
	seg, err := formats.ParseYAML([]byte(`
id: d
obstacles:
  - { type: cannon, direction: left }
  - { type: cannon, direction: 135 }
  - { type: spring, direction: -1 }
  - { type: cannon }
`))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	tests := []struct {
		got      formats.Direction
		expected formats.Direction
	}{
		{seg.Obstacles[0].Direction, formats.Direction{Name: "left"}},
		{seg.Obstacles[1].Direction, formats.Direction{Value: 135, Numeric: true}},
		{seg.Obstacles[2].Direction, formats.Direction{Value: -1, Numeric: true}},
		{seg.Obstacles[3].Direction, formats.Direction{}},
	}
	for i, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("obstacle %d direction = %+v, expected %+v", i, tc.got, tc.expected)
		}
	}
	if !seg.Obstacles[3].Direction.IsZero() {
		t.Error("omitted direction should be zero")
	}

	if _, err := formats.ParseYAML([]byte("name: no id\n")); err == nil {
		t.Error("ParseYAML() should reject a segment without id")
	}
}

func TestEmbeddedStagesBuild(t *testing.T) {
	l := Embedded()
	c, err := l.Catalog()
	if err != nil {
		t.Fatalf("Catalog() failed: %v", err)
	}
	if len(c.Stages) == 0 {
		t.Fatal("embedded catalogue is empty")
	}

	cfg := config.DefaultTowerConfig()
	for _, st := range c.Stages {
		layout, _, err := l.Build(st.ID, cfg, quietLogger())
		if err != nil {
			t.Fatalf("Build(%q) failed: %v", st.ID, err)
		}
		if len(layout.Segments) != len(st.Segments) {
			t.Errorf("%s: %d segments, expected %d", st.ID, len(layout.Segments), len(st.Segments))
		}
		for _, seg := range layout.Segments {
			if len(seg.ID) == 0 {
				t.Errorf("%s: segment without id", st.ID)
			}
		}

		goals := 0
		for _, o := range layout.Obstacles {
			if o.Kind == sim.KindGoal {
				goals++
			}
		}
		if goals != 1 {
			t.Errorf("%s: %d goals, expected 1", st.ID, goals)
		}

		w := sim.NewWorld(cfg, layout, sim.Options{Logger: quietLogger()})
		for _, s := range w.Snapshot().Switches {
			if s.Inert {
				t.Errorf("%s: switch for door %q has no door", st.ID, s.DoorID)
			}
		}
		for i := 0; i < 120; i++ {
			w.Step(1.0/60, core.NewInputFrame())
		}
		if w.Falls() != 0 {
			t.Errorf("%s: idle player fell out of the stage", st.ID)
		}
	}
}

func TestParseYAMLKeepsValidFields(t *testing.T) {
	seg, err := formats.ParseYAML([]byte(`
id: mixed
height: 3000
start: { x: 150, y: 2800 }
platforms:
  - { x: 0, y: 2900, width: 1000, height: 100 }
  - { x: 300, y: 2500, width: 200, height: 20 }
obstacles:
  - { type: cannon, x: 40, y: 2000, width: wide }
  - { type: spring, x: 600, y: 2800, direction: [1, 2] }
  - { type: switch, x: 10, y: 10, door_id: A, timeout: soon }
`))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if len(seg.Platforms) != 2 || len(seg.Obstacles) != 3 {
		t.Fatalf("platforms=%d obstacles=%d, expected 2 and 3", len(seg.Platforms), len(seg.Obstacles))
	}
	if len(seg.Issues) != 3 {
		t.Errorf("Issues = %q, expected one per bad field", seg.Issues)
	}
	if seg.Obstacles[0].Width != 0 || seg.Obstacles[0].X != 40 {
		t.Errorf("cannon = %+v, expected width dropped and x kept", seg.Obstacles[0])
	}
	if !seg.Obstacles[1].Direction.IsZero() {
		t.Errorf("spring direction = %+v, expected omitted", seg.Obstacles[1].Direction)
	}
	if seg.Obstacles[2].Timeout.Set {
		t.Error("unreadable timeout should count as absent")
	}

	cfg := config.DefaultTowerConfig()
	layout := Compose(cfg, []formats.Segment{seg}, quietLogger())
	if len(layout.Platforms) != 2 || len(layout.Obstacles) != 2 || len(layout.Switches) != 1 {
		t.Fatalf("layout platforms=%d obstacles=%d switches=%d, expected 2, 2 and 1",
			len(layout.Platforms), len(layout.Obstacles), len(layout.Switches))
	}
	if b := layout.Obstacles[0].Box; b.W != cfg.Obstacles.Emitter.Size.Width || b.H != cfg.Obstacles.Emitter.Size.Height {
		t.Errorf("cannon size = %vx%v, expected the emitter default", b.W, b.H)
	}
	if d := layout.Obstacles[1].Bounce.Dir; d != sim.BounceRight {
		t.Errorf("spring direction = %v, expected the default %v", d, sim.BounceRight)
	}
	if layout.Switches[0].Timeout.Valid {
		t.Error("switch with an unreadable timeout should be permanent")
	}
	if layout.Spawn == (core.Vec2{X: 100, Y: 500}) {
		t.Error("spawn should come from the segment start, not the empty fallback")
	}
}
