package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/engine"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name     string
		out      engine.Outcome
		wantCue  Cue
		wantRows int
	}{
		{"drop is silent", engine.Outcome{Kind: engine.StepDropped}, CueNone, 0},
		{"halt is silent", engine.Outcome{Kind: engine.StepHalted}, CueNone, 0},
		{"plain landing", engine.Outcome{Kind: engine.StepSpawned}, CueLand, 0},
		{"landing with clears", engine.Outcome{Kind: engine.StepSpawned, Cleared: []int{18, 19}}, CueClear, 2},
		{"game over wins", engine.Outcome{Kind: engine.StepGameOver, Cleared: []int{19}}, CueGameOver, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, rows := cueFor(tt.out)
			assert.Equal(t, tt.wantCue, cue)
			assert.Equal(t, tt.wantRows, rows)
		})
	}
}

func TestCueLengths(t *testing.T) {
	rate := beep.SampleRate(constants.AudioSampleRate)

	assert.Equal(t, rate.N(constants.LandSoundDuration), drain(CreateLandSound(rate)))
	assert.Equal(t, 3*rate.N(constants.ClearSoundDuration), drain(CreateClearSound(rate, 3)))
	assert.Equal(t, rate.N(constants.ClearSoundDuration), drain(CreateClearSound(rate, 0)), "at least one note")
	assert.Equal(t, 3*rate.N(constants.GameOverSoundDuration/3), drain(CreateGameOverSound(rate)))
	assert.Nil(t, GetCueSound(CueNone, 0, rate))
}

func TestEnvelopeBounds(t *testing.T) {
	rate := beep.SampleRate(constants.AudioSampleRate)
	s := NewEnvelope(NewOscillator(440, constants.ClearSoundDuration, WaveSquare, rate),
		constants.ClearSoundDuration, constants.CueAttack, constants.CueRelease, rate)

	buf := make([][2]float64, rate.N(constants.ClearSoundDuration))
	n, _ := s.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Equal(t, 0.0, buf[0][0], "attack starts silent")
	for i := 0; i < n; i++ {
		assert.LessOrEqual(t, buf[i][0], 1.0)
		assert.GreaterOrEqual(t, buf[i][0], -1.0)
	}
}

// Playback calls are no-ops until the speaker is open
func TestSoundManagerUninitialized(t *testing.T) {
	sm := NewSoundManager(zerolog.Nop())
	assert.False(t, sm.IsInitialized())

	sm.PlayLand()
	sm.PlayClear(4)
	sm.PlayGameOver()
	sm.Observe(engine.Outcome{Kind: engine.StepGameOver}, engine.Snapshot{})
	sm.Cleanup()
	assert.Equal(t, 0, sm.mixer.Len())
}

func TestSoundManagerInitialize(t *testing.T) {
	sm := NewSoundManager(zerolog.Nop())
	if err := sm.Initialize(); err != nil {
		t.Skipf("no audio device: %v", err)
	}
	defer sm.Cleanup()

	require.NoError(t, sm.Initialize(), "second initialize is a no-op")
	assert.True(t, sm.IsInitialized())
	sm.PlayClear(2)

	sm.Cleanup()
	assert.False(t, sm.IsInitialized())
}
