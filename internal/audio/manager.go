// Package audio plays synthesized sound cues and background music through the
// beep speaker. It degrades to silence when no audio device is available.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/bear-tower/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// Manager mixes cues and the background loop. It implements sim.SoundSink;
// Play returns immediately and the speaker goroutine renders the audio.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	bgm         *beep.Ctrl
	initialized bool
	seVolume    int // 0..100
	bgmVolume   int // 0..100
	logger      *log.Logger
	played      map[string]int
}

var _ sim.SoundSink = (*Manager)(nil)

// NewManager creates a manager with volumes in 0..100.
func NewManager(logger *log.Logger, seVolume, bgmVolume int) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		mixer:     &beep.Mixer{},
		seVolume:  clampVolume(seVolume),
		bgmVolume: clampVolume(bgmVolume),
		logger:    logger,
		played:    make(map[string]int),
	}
}

// Initialize opens the speaker. A second call is a no-op.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Play queues a cue. It is a no-op when uninitialized or the effect volume is zero.
func (m *Manager) Play(cue string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.played[cue]++
	if !m.initialized || m.seVolume == 0 {
		return
	}
	s := CueStreamer(cue, sampleRate)
	if s == nil {
		m.logger.Debug("unknown sound cue", "cue", cue)
		return
	}
	speaker.Lock()
	m.mixer.Add(gain(s, float64(m.seVolume)/100))
	speaker.Unlock()
}

// Played returns how many times a cue was requested, audible or not.
func (m *Manager) Played(cue string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played[cue]
}

// StartMusic starts or resumes the background loop.
func (m *Manager) StartMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.bgmVolume == 0 {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if m.bgm != nil {
		m.bgm.Paused = false
		return
	}
	m.bgm = &beep.Ctrl{Streamer: gain(newTune(sampleRate), float64(m.bgmVolume)/100)}
	m.mixer.Add(m.bgm)
}

// StopMusic pauses the background loop.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bgm == nil {
		return
	}
	speaker.Lock()
	m.bgm.Paused = true
	speaker.Unlock()
}

// SetVolumes changes effect and music volume (0..100). Music restarts at the
// new level if it was playing.
func (m *Manager) SetVolumes(se, bgm int) {
	m.mu.Lock()
	m.seVolume = clampVolume(se)
	m.bgmVolume = clampVolume(bgm)
	playing := m.bgm != nil && m.initialized
	if playing {
		speaker.Lock()
		m.bgm.Paused = true
		m.bgm.Streamer = nil
		speaker.Unlock()
		m.bgm = nil
	}
	m.mu.Unlock()

	if playing {
		m.StartMusic()
	}
}

// Volumes returns the effect and music volume.
func (m *Manager) Volumes() (se, bgm int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seVolume, m.bgmVolume
}

// Close silences everything. The speaker stays open for reuse.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.bgm = nil
	m.initialized = false
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
