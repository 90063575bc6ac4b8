package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length tone, optionally sliding to endFreq
type oscillator struct {
	freq, endFreq float64
	phase         float64
	position      int
	duration      int
	wave          WaveType
	rate          beep.SampleRate
	noise         *rand.Rand
}

// NewOscillator creates a tone that slides linearly from freq to endFreq.
func NewOscillator(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with attack/release ramps over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type tone struct {
	from, to float64
	wave     WaveType
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

// voices describes the synthesised default for every effect name.
var voices = map[string][]tone{
	"shoot": {
		{from: 880, to: 440, wave: WaveSquare, duration: 90 * time.Millisecond, attack: 2 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.35},
	},
	"hit": {
		{from: 0, to: 0, wave: WaveNoise, duration: 140 * time.Millisecond, attack: time.Millisecond, release: 120 * time.Millisecond, gain: 0.5},
		{from: 180, to: 60, wave: WaveSine, duration: 140 * time.Millisecond, attack: time.Millisecond, release: 100 * time.Millisecond, gain: 0.5},
	},
	"pickup": {
		{from: 660, to: 1320, wave: WaveSine, duration: 160 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, gain: 0.5},
	},
	"death": {
		{from: 220, to: 40, wave: WaveSaw, duration: 600 * time.Millisecond, attack: 5 * time.Millisecond, release: 400 * time.Millisecond, gain: 0.45},
		{from: 0, to: 0, wave: WaveNoise, duration: 300 * time.Millisecond, attack: time.Millisecond, release: 250 * time.Millisecond, gain: 0.2},
	},
	"shield": {
		{from: 330, to: 990, wave: WaveSine, duration: 350 * time.Millisecond, attack: 20 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.3},
		{from: 495, to: 1485, wave: WaveSine, duration: 350 * time.Millisecond, attack: 20 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.15},
	},
}

// synthesize renders the layered tones into a single streamer.
func synthesize(layers []tone, rate beep.SampleRate) beep.Streamer {
	streams := make([]beep.Streamer, 0, len(layers))
	for _, l := range layers {
		osc := NewOscillator(l.from, l.to, l.duration, l.wave, rate)
		shaped := NewEnvelope(osc, l.duration, l.attack, l.release, rate)
		streams = append(streams, newVolume(shaped, l.gain))
	}
	return beep.Mix(streams...)
}
