package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to query intents rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionJump           // Space - hold to charge, release to jump
	ActionPause          // P, Escape - pause/unpause
	ActionRestart        // R - restart the stage
	ActionDebug          // F3, backtick - toggle debug overlay
	ActionBack           // B - back to menu (while paused or cleared)
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionDebug:
		return "Debug"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions held during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// HeldKeys turns discrete key events into a held-key set.
//
// Terminals report key presses and auto-repeats but never releases, so an
// action counts as held until its hold window lapses without a repeat. The
// first press gets a longer window that bridges the keyboard's initial
// auto-repeat delay.
type HeldKeys struct {
	Initial time.Duration // Window after the first press
	Repeat  time.Duration // Window after each auto-repeat

	until map[Action]time.Time
}

// NewHeldKeys creates a tracker with the given hold windows.
func NewHeldKeys(initial, repeat time.Duration) *HeldKeys {
	return &HeldKeys{
		Initial: initial,
		Repeat:  repeat,
		until:   make(map[Action]time.Time),
	}
}

// Press records a key event for an action at time now.
func (h *HeldKeys) Press(a Action, now time.Time) {
	if h.until == nil {
		h.until = make(map[Action]time.Time)
	}
	window := h.Initial
	if exp, ok := h.until[a]; ok && now.Before(exp) {
		window = h.Repeat
	}
	h.until[a] = now.Add(window)
}

// Release drops an action immediately.
func (h *HeldKeys) Release(a Action) {
	delete(h.until, a)
}

// Frame returns the actions still held at time now and forgets lapsed ones.
func (h *HeldKeys) Frame(now time.Time) InputFrame {
	frame := NewInputFrame()
	for a, exp := range h.until {
		if now.Before(exp) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return frame
}

// Reset forgets all held actions.
func (h *HeldKeys) Reset() {
	for a := range h.until {
		delete(h.until, a)
	}
}
