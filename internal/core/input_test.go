package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionJump) {
		t.Error("empty frame should not hold Jump")
	}

	f.Set(ActionJump)
	f.Set(ActionLeft)
	clone := f.Clone()
	f.Clear()

	if f.Has(ActionJump) {
		t.Error("Clear() should drop held actions")
	}
	if !clone.Has(ActionJump) || !clone.Has(ActionLeft) {
		t.Error("Clone() should keep actions independently of the source")
	}

	var zero InputFrame
	if zero.Has(ActionLeft) {
		t.Error("zero frame should hold nothing")
	}
}

func TestHeldKeys(t *testing.T) {
	start := time.Unix(1000, 0)
	h := NewHeldKeys(500*time.Millisecond, 100*time.Millisecond)

	h.Press(ActionJump, start)

	tests := []struct {
		name     string
		at       time.Duration
		press    bool
		expected bool
	}{
		{"held right after press", 10 * time.Millisecond, false, true},
		{"held across repeat delay", 450 * time.Millisecond, true, true},
		{"repeat extends by short window", 520 * time.Millisecond, false, true},
		{"released after repeat window", 600 * time.Millisecond, false, false},
	}

	for _, tc := range tests {
		now := start.Add(tc.at)
		if tc.press {
			h.Press(ActionJump, now)
		}
		if got := h.Frame(now).Has(ActionJump); got != tc.expected {
			t.Errorf("%s: Has(Jump) = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestHeldKeysReleaseAndReset(t *testing.T) {
	now := time.Unix(0, 0)
	h := NewHeldKeys(time.Second, time.Second)
	h.Press(ActionLeft, now)
	h.Press(ActionRight, now)

	h.Release(ActionLeft)
	frame := h.Frame(now)
	if frame.Has(ActionLeft) || !frame.Has(ActionRight) {
		t.Errorf("after Release(Left): left=%v right=%v", frame.Has(ActionLeft), frame.Has(ActionRight))
	}

	h.Reset()
	if h.Frame(now).Has(ActionRight) {
		t.Error("Reset() should drop every action")
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" || Action(99).String() != "Unknown" {
		t.Error("Action.String() mismatch")
	}
}
