package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/bear-tower/internal/sim"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from one value to
// another over its duration.
type sweep struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate
	phase    float64
	pos      int
	total    int
}

// newSweep creates a finite tone. A constant pitch has from == to.
func newSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, wave: wave, rate: rate, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t

		var v float64
		switch s.wave {
		case WaveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		default:
			v = math.Sin(2 * math.Pi * s.phase)
		}
		samples[i][0], samples[i][1] = v, v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay multiplies a stream by exp(-rate*t) so percussive cues fade out.
type decay struct {
	streamer beep.Streamer
	k        float64 // Decay constant per second
	rate     beep.SampleRate
	pos      int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-d.k * float64(d.pos) / float64(d.rate))
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// gain scales a stream linearly. Zero or less is silent.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// CueStreamer synthesizes the effect for a sound cue. Unknown cues return nil.
func CueStreamer(cue string, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case sim.CueJump:
		return gain(newSweep(300, 700, ms(120), WaveSquare, rate), 0.25)
	case sim.CueHit:
		return gain(beep.Mix(
			&decay{streamer: newSweep(0, 0, ms(180), WaveNoise, rate), k: 18, rate: rate},
			newSweep(140, 90, ms(180), WaveSaw, rate),
		), 0.3)
	case sim.CueBounce:
		return gain(newSweep(200, 900, ms(160), WaveSine, rate), 0.4)
	case sim.CueSwitch:
		return gain(beep.Seq(
			newSweep(880, 880, ms(50), WaveSquare, rate),
			newSweep(1320, 1320, ms(70), WaveSquare, rate),
		), 0.2)
	case sim.CueDoorOpen:
		return gain(newSweep(220, 330, ms(250), WaveSaw, rate), 0.25)
	case sim.CueDoorClose:
		return gain(newSweep(330, 180, ms(250), WaveSaw, rate), 0.25)
	case sim.CueFire:
		return gain(&decay{streamer: newSweep(0, 0, ms(90), WaveNoise, rate), k: 30, rate: rate}, 0.3)
	case sim.CueMissile:
		return gain(newSweep(600, 300, ms(220), WaveSaw, rate), 0.2)
	case sim.CueExplode:
		return gain(beep.Mix(
			&decay{streamer: newSweep(0, 0, ms(450), WaveNoise, rate), k: 8, rate: rate},
			&decay{streamer: newSweep(90, 50, ms(450), WaveSine, rate), k: 6, rate: rate},
		), 0.4)
	case sim.CueGoal:
		return gain(beep.Seq(
			newSweep(523, 523, ms(120), WaveSine, rate),
			newSweep(659, 659, ms(120), WaveSine, rate),
			newSweep(784, 784, ms(120), WaveSine, rate),
			newSweep(1047, 1047, ms(300), WaveSine, rate),
		), 0.35)
	case sim.CueFall:
		return gain(newSweep(600, 150, ms(400), WaveSine, rate), 0.3)
	}
	return nil
}

// tune is an endless background loop of notes. Zero frequency is a rest.
type tune struct {
	notes []float64
	step  int // Samples per note
	rate  beep.SampleRate
	pos   int
	phase float64
}

// newTune creates the background loop.
func newTune(rate beep.SampleRate) *tune {
	return &tune{
		notes: []float64{262, 330, 392, 330, 294, 349, 440, 0, 262, 392, 523, 392, 349, 294, 262, 0},
		step:  rate.N(ms(220)),
		rate:  rate,
	}
}

func (t *tune) Stream(samples [][2]float64) (n int, ok bool) {
	cycle := len(t.notes) * t.step
	for i := range samples {
		idx := (t.pos % cycle) / t.step
		within := t.pos % t.step
		freq := t.notes[idx]

		var v float64
		if freq > 0 {
			env := 1 - float64(within)/float64(t.step)
			v = 0.12 * env * math.Sin(2*math.Pi*t.phase)
			t.phase += freq / float64(t.rate)
			t.phase -= math.Floor(t.phase)
		}
		samples[i][0], samples[i][1] = v, v
		t.pos++
	}
	return len(samples), true
}

func (t *tune) Err() error { return nil }
