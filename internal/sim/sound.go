package sim

// Sound cue names passed to a SoundSink.
const (
	CueJump      = "jump"
	CueHit       = "hit"
	CueBounce    = "bounce"
	CueSwitch    = "switch"
	CueDoorOpen  = "door_open"
	CueDoorClose = "door_close"
	CueFire      = "fire"
	CueMissile   = "missile"
	CueExplode   = "explode"
	CueGoal      = "goal"
	CueFall      = "fall"
)

// SoundSink receives named sound cues. Play must not block the tick.
type SoundSink interface {
	Play(cue string)
}

// NopSound discards every cue.
type NopSound struct{}

// Play implements SoundSink.
func (NopSound) Play(string) {}
