package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestTickInterval verifies the gravity cadence matches six ticks per second
func TestTickInterval(t *testing.T) {
	assert.Equal(t, 166666666*time.Nanosecond, TickInterval)
}

// TestCueDurations verifies every audio cue has a positive, ordered length
func TestCueDurations(t *testing.T) {
	assert.Positive(t, LandSoundDuration)
	assert.Less(t, LandSoundDuration, ClearSoundDuration)
	assert.Less(t, ClearSoundDuration, GameOverSoundDuration)
	assert.Positive(t, SpeakerBufferDuration)
}

// TestPanelText verifies panel strings fit in the reserved panel width
func TestPanelText(t *testing.T) {
	for _, s := range []string{TextGameOver, TextHelp, TextQuit} {
		assert.LessOrEqual(t, len(s), PanelWidth, s)
	}
}
