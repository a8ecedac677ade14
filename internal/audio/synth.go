package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSaw
)

// sample evaluates one period of the wave at phase in [0, 1).
func (w WaveType) sample(phase float64) float64 {
	switch w {
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	case WaveSaw:
		return 2 * (phase - 0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// sweep is an oscillator whose frequency glides exponentially from one
// value to another, shaped by a short linear attack and exponential decay.
type sweep struct {
	wave     WaveType
	from, to float64
	rate     beep.SampleRate
	total    int
	attack   int
	pos      int
	phase    float64
}

// NewSweep creates a finite tone gliding from one frequency to another.
func NewSweep(wave WaveType, from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		wave:   wave,
		from:   from,
		to:     to,
		rate:   rate,
		total:  max(1, rate.N(duration)),
		attack: rate.N(10 * time.Millisecond),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		progress := float64(s.pos) / float64(s.total)
		freq := s.from * math.Pow(s.to/s.from, progress)

		env := math.Exp(-5 * progress)
		if s.pos < s.attack && s.attack > 0 {
			env *= float64(s.pos) / float64(s.attack)
		}

		v := env * s.wave.sample(s.phase)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// chords is the looping background progression: C, Am, F, G.
var chords = [][]float64{
	{261.63, 329.63, 392.00},
	{220.00, 261.63, 329.63},
	{174.61, 220.00, 261.63},
	{196.00, 246.94, 293.66},
}

// musicGenerator plays the chord progression forever. Each chord rings for
// 80% of its slot with soft linear fades.
type musicGenerator struct {
	rate   beep.SampleRate
	slot   int
	ring   int
	fade   int
	pos    int
	phases [3]float64
}

// NewMusic creates the endless ambient pad.
func NewMusic(rate beep.SampleRate) beep.Streamer {
	slot := rate.N(2 * time.Second)
	return &musicGenerator{
		rate: rate,
		slot: slot,
		ring: slot * 8 / 10,
		fade: rate.N(100 * time.Millisecond),
	}
}

func (g *musicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		chord := chords[(g.pos/g.slot)%len(chords)]
		inSlot := g.pos % g.slot

		v := 0.0
		if inSlot < g.ring {
			env := 1.0
			if inSlot < g.fade {
				env = float64(inSlot) / float64(g.fade)
			} else if g.ring-inSlot < g.fade {
				env = float64(g.ring-inSlot) / float64(g.fade)
			}
			for k, freq := range chord {
				v += math.Sin(2 * math.Pi * g.phases[k])
				g.phases[k] += freq / float64(g.rate)
				g.phases[k] -= math.Floor(g.phases[k])
			}
			v *= env / float64(len(chord))
		}

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *musicGenerator) Err() error { return nil }

// Sound effect generators

// JumpSound rises then settles, a quick "boing".
func JumpSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		NewSweep(WaveSine, 200, 600, 100*time.Millisecond, rate),
		NewSweep(WaveSine, 600, 300, 100*time.Millisecond, rate),
	)
}

// LandingSound is a two-note descending chime.
func LandingSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		NewSweep(WaveTriangle, 400, 400, 70*time.Millisecond, rate),
		NewSweep(WaveTriangle, 300, 200, 80*time.Millisecond, rate),
	)
}

// GameOverSound is a falling saw tone.
func GameOverSound(rate beep.SampleRate) beep.Streamer {
	return NewSweep(WaveSaw, 300, 100, 500*time.Millisecond, rate)
}

// newVolume scales a stream linearly; zero or less is silent.
// math.Log2(0) is -Inf, so silence is handled explicitly.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
