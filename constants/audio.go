package constants

import "time"

// Audio Engine Settings
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// SpeakerBufferDuration is the speaker buffer length
	SpeakerBufferDuration = 100 * time.Millisecond
)

// Cue Timing
const (
	LandSoundDuration     = 40 * time.Millisecond
	ClearSoundDuration    = 180 * time.Millisecond
	GameOverSoundDuration = 900 * time.Millisecond
)

// Cue Pitch (Hz)
const (
	LandSoundFreq     = 220.0
	ClearSoundFreq    = 660.0
	GameOverSoundFreq = 110.0
)

// Cue Envelope
const (
	CueAttack  = 5 * time.Millisecond
	CueRelease = 30 * time.Millisecond
	CueVolume  = 0.25
)
