package sim

import "github.com/vovakirdan/bear-tower/internal/core"

// Timeout is an optional duration in seconds. The zero value means "absent".
type Timeout struct {
	Seconds float64
	Valid   bool
}

// After returns a present timeout.
func After(seconds float64) Timeout {
	return Timeout{Seconds: seconds, Valid: true}
}

// Door is a gate opened and closed by switches that reference its ID.
type Door struct {
	ID        string
	Box       core.Box
	Open      bool
	SegmentID string
}

// Blocks reports whether the door stops a body at b.
func (d Door) Blocks(b core.Box) bool {
	return !d.Open && d.Box.Overlaps(b)
}

// Switch latches on touch and opens the door named by DoorID.
// With a timeout it unlatches and closes the door when the countdown ends.
type Switch struct {
	Box       core.Box
	DoorID    string
	Timeout   Timeout
	Latched   bool
	Countdown float64
	Inert     bool // Set when DoorID names no door
	SegmentID string
}

// door returns the first door with the given ID, or nil.
func (w *World) door(id string) *Door {
	for i := range w.doors {
		if w.doors[i].ID == id {
			return &w.doors[i]
		}
	}
	return nil
}

// updateSwitches runs timed switch countdowns.
func (w *World) updateSwitches(dt float64) {
	for i := range w.switches {
		s := &w.switches[i]
		if s.Inert || !s.Latched || !s.Timeout.Valid {
			continue
		}
		s.Countdown -= dt
		if s.Countdown > 0 {
			continue
		}
		s.Countdown = 0
		s.Latched = false
		if d := w.door(s.DoorID); d != nil && d.Open {
			d.Open = false
			w.play(CueDoorClose)
		}
	}
}

// pressSwitch handles a touch. Latched switches ignore further touches.
func (w *World) pressSwitch(s *Switch) {
	if s.Inert || s.Latched {
		return
	}
	s.Latched = true
	if s.Timeout.Valid {
		s.Countdown = s.Timeout.Seconds
	}
	w.play(CueSwitch)
	if d := w.door(s.DoorID); d != nil && !d.Open {
		d.Open = true
		w.play(CueDoorOpen)
	}
}

// linkSwitches marks switches whose door does not exist as inert.
func (w *World) linkSwitches() {
	for i := range w.switches {
		s := &w.switches[i]
		if w.door(s.DoorID) == nil {
			s.Inert = true
			w.logger.Warn("switch references unknown door", "door", s.DoorID, "segment", s.SegmentID)
		}
	}
}
