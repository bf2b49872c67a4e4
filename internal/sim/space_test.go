package sim

import (
	"slices"
	"testing"

	"github.com/vovakirdan/bear-tower/internal/core"
)

func slots(t *testing.T, w *World, b core.Box, tags ...string) []int {
	t.Helper()
	var got []int
	for _, obj := range w.index.near(b, tags...) {
		got = append(got, slot(obj))
	}
	return got
}

func TestSpatialIndexNear(t *testing.T) {
	w, _ := testWorld(t, Layout{
		Platforms: []Platform{
			floorPlatform(0, 500, 300, 20),
			floorPlatform(5000, 500, 300, 20),
			{Box: core.NewBox(200, -4000, 20, 4600)},
			floorPlatform(100, -3000, 300, 20),
		},
		Doors:    []Door{{ID: "D", Box: core.NewBox(150, 400, 40, 100)}},
		Switches: []Switch{{Box: core.NewBox(5100, 470, 80, 30), DoorID: "D"}},
		Spawn:    standingOn(50, 500),
	})

	tests := []struct {
		name     string
		box      core.Box
		tags     []string
		expected []int
	}{
		{"floors and walls by index", core.NewBox(180, 430, 48, 73), []string{tagPlatform, tagWall}, []int{0, 2}},
		{"walls only", core.NewBox(180, 430, 48, 73), []string{tagWall}, []int{2}},
		{"above the origin", core.NewBox(150, -3073, 48, 73), []string{tagPlatform}, []int{3}},
		{"far platform", core.NewBox(5100, 430, 48, 73), []string{tagPlatform}, []int{1}},
		{"door", core.NewBox(180, 430, 48, 73), []string{tagDoor}, []int{0}},
		{"switch elsewhere", core.NewBox(180, 430, 48, 73), []string{tagSwitch}, nil},
		{"empty sky", core.NewBox(2500, -1500, 48, 73), []string{tagPlatform, tagWall, tagDoor}, nil},
	}
	for _, tc := range tests {
		if got := slots(t, w, tc.box, tc.tags...); !slices.Equal(got, tc.expected) {
			t.Errorf("%s: near() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestSpatialIndexTouchingEdge(t *testing.T) {
	w, _ := testWorld(t, Layout{
		Platforms: []Platform{floorPlatform(0, 512, 1000, 20)},
		Spawn:     standingOn(400, 512),
	})
	if got := slots(t, w, w.Player().Box(), tagPlatform); !slices.Equal(got, []int{0}) {
		t.Errorf("near() = %v, expected the platform under a resting body", got)
	}
}

func TestSpatialIndexFollowsCarrier(t *testing.T) {
	carrier := NewCarrier(core.NewBox(0, 500, 100, 20), AxisHorizontal, 2000, 1000)
	w, _ := testWorld(t, Layout{
		Obstacles: []Obstacle{carrier},
		Spawn:     standingOn(3000, 0),
	})
	w.RemovePlayer()

	for i := 0; i < 120; i++ {
		w.Step(tick, noInput())
	}
	at := w.obstacles[0].Box
	if at.X < 1000 {
		t.Fatalf("carrier at x=%v, expected it to have travelled", at.X)
	}
	if got := slots(t, w, at, tagCarrier); !slices.Equal(got, []int{0}) {
		t.Errorf("near() at the carrier = %v, expected [0]", got)
	}
	if got := slots(t, w, carrier.Box, tagCarrier); len(got) != 0 {
		t.Errorf("near() at the start = %v, expected the carrier to have left", got)
	}
}

func TestLandingAtNegativeY(t *testing.T) {
	w, _ := testWorld(t, Layout{
		Platforms: []Platform{floorPlatform(0, -6000, 400, 20)},
		Spawn:     standingOn(100, -6000),
	})
	w.Step(tick, noInput())
	if p := w.Player(); !p.Grounded || p.Support.Index != 0 {
		t.Errorf("player at negative y should land, grounded=%v support=%+v", p.Grounded, p.Support)
	}
}

func TestSweep(t *testing.T) {
	b := sweep(core.NewBox(100, 100, 10, 10), core.Vec2{X: 10, Y: -20}, 0.5)
	expected := core.NewBox(95, 100, 15, 20)
	if b != expected {
		t.Errorf("sweep() = %+v, expected %+v", b, expected)
	}
}
