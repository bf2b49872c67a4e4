package tower

import (
	"io"
	"math"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/registry"
	"github.com/vovakirdan/bear-tower/internal/stage"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// goalFS is a one-segment stage whose goal overlaps the spawn point.
func goalFS() fstest.MapFS {
	return fstest.MapFS{
		"stages.yaml": {Data: []byte(`
stages:
  - id: quick
    title: Quick Clear
    segments: [pad]
  - id: climb
    title: Climb
    segments: [floor]
`)},
		"segments/pad.yaml": {Data: []byte(`
id: pad
name: Pad
height: 1000
start: { x: 100, y: 100 }
platforms:
  - { x: 0, y: 173, width: 1000, height: 50, shape: floor }
obstacles:
  - { type: goal, x: 90, y: 90, width: 80, height: 100 }
`)},
		"segments/floor.yaml": {Data: []byte(`
id: floor
name: Floor
height: 1000
start: { x: 400, y: 827 }
platforms:
  - { x: 0, y: 900, width: 1920, height: 100, shape: floor }
`)},
	}
}

func newTestGame(t *testing.T, stageID string) *Game {
	t.Helper()
	env := registry.Env{
		Stages: &stage.Loader{FS: goalFS()},
		Logger: log.New(io.Discard),
	}
	g := New("test", "Test", stageID, env)
	cfg := core.DefaultConfig()
	cfg.Language = "en"
	g.Reset(cfg)
	return g
}

func TestRegistryHasTowerModes(t *testing.T) {
	for _, id := range []string{"tower", "debug"} {
		if !registry.Exists(id) {
			t.Errorf("registry.Exists(%q) = false, expected true", id)
			continue
		}
		g, err := registry.Create(id, registry.Env{Logger: log.New(io.Discard)})
		if err != nil {
			t.Fatalf("registry.Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestResetBuildsEmbeddedStage(t *testing.T) {
	g := New("tower", "Bear Tower", "tower", registry.Env{Logger: log.New(io.Discard)})
	g.Reset(core.DefaultConfig())

	snap := g.Snapshot()
	if snap.Player == nil {
		t.Fatal("Snapshot().Player = nil after Reset")
	}
	if len(snap.Platforms) == 0 {
		t.Error("embedded tower has no platforms")
	}
	if st := g.State(); st.Score != 0 || st.GameOver || st.Paused {
		t.Errorf("State() after Reset = %+v, expected zero progress", st)
	}
}

func TestStepUsesHostTime(t *testing.T) {
	g := newTestGame(t, "climb")

	g.Step(frame(), t0)
	if got := g.State().Elapsed; got != 0 {
		t.Errorf("Elapsed after first tick = %v, expected 0", got)
	}
	g.Step(frame(), t0.Add(50*time.Millisecond))
	if got := g.State().Elapsed; math.Abs(got-0.05) > 1e-9 {
		t.Errorf("Elapsed = %v, expected 0.05", got)
	}
	// A long stall is clamped to the clock's max delta.
	g.Step(frame(), t0.Add(5*time.Second))
	if got := g.State().Elapsed; math.Abs(got-0.15) > 1e-9 {
		t.Errorf("Elapsed after stall = %v, expected 0.15", got)
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := newTestGame(t, "climb")
	g.Step(frame(), t0)
	g.Step(frame(), t0.Add(20*time.Millisecond))

	g.Step(frame(core.ActionPause), t0.Add(40*time.Millisecond))
	if !g.State().Paused {
		t.Fatal("State().Paused = false after pause")
	}
	before := g.State().Elapsed
	for i := 3; i < 10; i++ {
		g.Step(frame(core.ActionRight), t0.Add(time.Duration(i)*20*time.Millisecond))
	}
	if got := g.State().Elapsed; got != before {
		t.Errorf("Elapsed while paused = %v, expected %v", got, before)
	}

	g.Step(frame(core.ActionPause), t0.Add(220*time.Millisecond))
	if g.State().Paused {
		t.Error("State().Paused = true after second pause")
	}
}

func TestRestartResetsRun(t *testing.T) {
	g := newTestGame(t, "climb")
	for i := 0; i < 20; i++ {
		g.Step(frame(core.ActionRight), t0.Add(time.Duration(i)*16*time.Millisecond))
	}
	if g.State().Elapsed == 0 {
		t.Fatal("world did not advance")
	}
	startX := g.Snapshot().Player.Box.X

	g.Step(frame(core.ActionRestart), t0.Add(time.Second))
	if got := g.State().Elapsed; got != 0 {
		t.Errorf("Elapsed after restart = %v, expected 0", got)
	}
	if got := g.Snapshot().Player.Box.X; got != 400 || got == startX {
		t.Errorf("player x after restart = %v, expected spawn 400 (was %v)", got, startX)
	}
}

func TestGoalEndsRun(t *testing.T) {
	g := newTestGame(t, "quick")
	g.Step(frame(), t0)
	g.Step(frame(), t0.Add(16*time.Millisecond))

	st := g.State()
	if !st.GameOver {
		t.Fatal("State().GameOver = false with the player inside the goal")
	}
	elapsed := st.Elapsed
	g.Step(frame(core.ActionRight), t0.Add(32*time.Millisecond))
	if got := g.State().Elapsed; got != elapsed {
		t.Errorf("cleared stage kept simulating: Elapsed %v -> %v", elapsed, got)
	}
	// Pause is ignored once cleared.
	g.Step(frame(core.ActionPause), t0.Add(48*time.Millisecond))
	if g.State().Paused {
		t.Error("cleared stage accepted pause")
	}
}

func TestDebugToggle(t *testing.T) {
	g := newTestGame(t, "climb")
	if g.Debug() {
		t.Fatal("Debug() = true, expected false by default")
	}
	g.Step(frame(core.ActionDebug), t0)
	if !g.Debug() {
		t.Error("Debug() = false after toggle")
	}
}

func TestUnknownStage(t *testing.T) {
	g := newTestGame(t, "nowhere")
	if g.Snapshot().Player != nil {
		t.Error("unknown stage built a player")
	}
	g.Step(frame(core.ActionRight), t0) // Must not panic.

	s := core.NewScreen(60, 12)
	g.Render(s)
	if !strings.Contains(s.String(), "stage failed to load") {
		t.Errorf("render of a failed stage:\n%s", s.String())
	}
}

func TestRenderHUDAndPlayer(t *testing.T) {
	g := newTestGame(t, "climb")
	g.Step(frame(core.ActionDebug), t0)

	s := core.NewScreen(80, 24)
	g.Render(s)
	out := s.String()

	for _, want := range []string{"Height 0m", "Falls 0", "Time 00:00", "FPS", "state idle"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	var player, floor bool
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.GetCell(x, y)
			if c.Color == core.ColorBrown && (c.Rune == PlayerChar || c.Rune == PlayerHeadChar) {
				player = true
			}
			if c.Rune == PlatformChar && c.Color == core.ColorGreen {
				floor = true
			}
		}
	}
	if !player {
		t.Error("player not drawn")
	}
	if !floor {
		t.Error("floor not drawn")
	}
}

func TestRenderChargeBar(t *testing.T) {
	g := newTestGame(t, "climb")
	g.Step(frame(), t0)
	for i := 1; i <= 30; i++ {
		g.Step(frame(core.ActionJump), t0.Add(time.Duration(i)*16*time.Millisecond))
	}
	if p := g.Snapshot().Player; p == nil || !p.Charging {
		t.Fatal("player is not charging after holding jump")
	}

	s := core.NewScreen(80, 24)
	g.Render(s)
	if !strings.ContainsRune(s.String(), ChargeChar) {
		t.Errorf("charge bar not drawn:\n%s", s.String())
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := newTestGame(t, "climb")
	s := core.NewScreen(5, 3)
	g.Render(s) // Must not panic.
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs     float64
		expected string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{65, "01:05"},
		{3600, "60:00"},
	}
	for _, tc := range tests {
		if got := formatClock(tc.secs); got != tc.expected {
			t.Errorf("formatClock(%v) = %q, expected %q", tc.secs, got, tc.expected)
		}
	}
}
