package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/engine"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// SoundManager plays short cues for landings, cleared rows and game over
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	log         zerolog.Logger
}

// NewSoundManager creates a new sound manager
func NewSoundManager(log zerolog.Logger) *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		log:   log,
	}
}

// Initialize opens the speaker and starts the shared mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.SpeakerBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug().Int("rate", int(sampleRate)).Msg("speaker initialized")
	return nil
}

// Cleanup drops queued cues; beep has no speaker close, an empty mixer is silent
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// IsInitialized reports whether the speaker is open
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayLand plays the lock click
func (sm *SoundManager) PlayLand() {
	sm.play(CueLand, 0)
}

// PlayClear plays one arpeggio note per cleared row
func (sm *SoundManager) PlayClear(rows int) {
	sm.play(CueClear, rows)
}

// PlayGameOver plays the closing phrase
func (sm *SoundManager) PlayGameOver() {
	sm.play(CueGameOver, 0)
}

// Observe maps a tick outcome to its cue
func (sm *SoundManager) Observe(out engine.Outcome, _ engine.Snapshot) {
	cue, rows := cueFor(out)
	if cue == CueNone {
		return
	}
	sm.play(cue, rows)
}

func (sm *SoundManager) play(cue Cue, rows int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := GetCueSound(cue, rows, sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// cueFor picks the sound for a tick; game over outranks clears, clears outrank a plain landing
func cueFor(out engine.Outcome) (Cue, int) {
	switch out.Kind {
	case engine.StepGameOver:
		return CueGameOver, 0
	case engine.StepSpawned:
		if n := len(out.Cleared); n > 0 {
			return CueClear, n
		}
		return CueLand, 0
	default:
		return CueNone, 0
	}
}
