package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// envelope applies a linear attack and release to a stream of fixed length.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// newEnvelope cuts s to duration and shapes its edges.
func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: beep.Take(rate.N(duration), s),
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// noise is white noise, used for explosions.
type noise struct {
	rng *rand.Rand
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := g.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }

// newVolume scales s by vol in [0, 1]. Zero mutes.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a shaped sine note.
func tone(rate beep.SampleRate, freq float64, duration time.Duration) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// Frequencies above Nyquist are a programming error; stay silent.
		return beep.Silence(rate.N(duration))
	}
	return newEnvelope(sine, duration, 5*time.Millisecond, duration/2, rate)
}

// Sound identifies one effect.
type Sound int

const (
	SoundFire Sound = iota
	SoundExplosion
	SoundShield
	SoundShipHit
	SoundLevelUp
	SoundGameOver
)

// Effect builds the streamer for s at the given rate and volume.
func Effect(s Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var out beep.Streamer
	switch s {
	case SoundFire:
		out = tone(rate, 880, 60*time.Millisecond)
	case SoundExplosion:
		n := &noise{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
		out = newVolume(newEnvelope(n, 150*time.Millisecond, 2*time.Millisecond, 120*time.Millisecond, rate), 0.5)
	case SoundShield:
		out = tone(rate, 220, 80*time.Millisecond)
	case SoundShipHit:
		out = beep.Seq(
			tone(rate, 440, 120*time.Millisecond),
			tone(rate, 220, 200*time.Millisecond),
		)
	case SoundLevelUp:
		out = beep.Seq(
			tone(rate, 523.25, 90*time.Millisecond),
			tone(rate, 659.25, 90*time.Millisecond),
			tone(rate, 783.99, 160*time.Millisecond),
		)
	case SoundGameOver:
		out = beep.Mix(
			newVolume(tone(rate, 110, 700*time.Millisecond), 0.7),
			newVolume(tone(rate, 164.81, 700*time.Millisecond), 0.3),
		)
	default:
		return nil
	}
	return newVolume(out, volume)
}
