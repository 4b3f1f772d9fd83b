// Package audio plays sound effects for game signals through the beep
// speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/invasion/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// SoundFor maps a signal to its effect.
func SoundFor(s game.Signal) (Sound, bool) {
	switch s {
	case game.SignalFired:
		return SoundFire, true
	case game.SignalEnemyDestroyed:
		return SoundExplosion, true
	case game.SignalShieldHit:
		return SoundShield, true
	case game.SignalShipHit:
		return SoundShipHit, true
	case game.SignalLevelCleared:
		return SoundLevelUp, true
	case game.SignalGameOver:
		return SoundGameOver, true
	}
	return 0, false
}

// SoundManager turns game signals into sound.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool

	// play queues a streamer; replaced in tests.
	play func(beep.Streamer)
}

// NewSoundManager creates a sound manager at the given master volume.
func NewSoundManager(volume float64) *SoundManager {
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	sm.play = func(s beep.Streamer) {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
	return sm
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Handle plays one effect per distinct signal in the tick.
func (sm *SoundManager) Handle(signals []game.Signal) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	var played [SoundGameOver + 1]bool
	for _, sig := range signals {
		s, ok := SoundFor(sig)
		if !ok || played[s] {
			continue
		}
		played[s] = true
		if st := Effect(s, sampleRate, sm.volume); st != nil {
			sm.play(st)
		}
	}
}

// Cleanup silences everything that is still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
