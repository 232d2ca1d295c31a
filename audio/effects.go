package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/blockfall/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates raw audio waves for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
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
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with the given attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf, so zero volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, constants.CueAttack, constants.CueRelease, rate)
}

// Cue names a game event with its own sound
type Cue uint8

const (
	CueNone Cue = iota
	CueLand
	CueClear
	CueGameOver
)

// CreateLandSound generates a short low click for a piece locking in place
func CreateLandSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(constants.LandSoundFreq, constants.LandSoundDuration, WaveSaw, rate), constants.CueVolume)
}

// CreateClearSound generates a rising arpeggio, one note per cleared row
func CreateClearSound(rate beep.SampleRate, rows int) beep.Streamer {
	rows = max(rows, 1)
	notes := make([]beep.Streamer, 0, rows)
	for i := 0; i < rows; i++ {
		// Perfect fifth steps
		freq := constants.ClearSoundFreq * math.Pow(1.5, float64(i))
		notes = append(notes, tone(freq, constants.ClearSoundDuration, WaveSine, rate))
	}
	return newVolume(beep.Seq(notes...), constants.CueVolume)
}

// CreateGameOverSound generates three falling square notes
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	step := constants.GameOverSoundDuration / 3
	return newVolume(beep.Seq(
		tone(constants.GameOverSoundFreq*2, step, WaveSquare, rate),
		tone(constants.GameOverSoundFreq*1.5, step, WaveSquare, rate),
		tone(constants.GameOverSoundFreq, step, WaveSquare, rate),
	), constants.CueVolume)
}

// GetCueSound returns the streamer for a cue, nil for CueNone
func GetCueSound(cue Cue, rows int, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case CueLand:
		return CreateLandSound(rate)
	case CueClear:
		return CreateClearSound(rate, rows)
	case CueGameOver:
		return CreateGameOverSound(rate)
	default:
		return nil
	}
}
