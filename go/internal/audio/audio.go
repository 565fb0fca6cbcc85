package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"
)

const (
	sampleRate   = beep.SampleRate(44100)
	hitFrequency = 880
	hitDuration  = 50 * time.Millisecond
)

// Player plays short feedback tones. The zero value is silent.
type Player struct {
	enabled bool
}

// NewPlayer initializes the speaker when enabled. Initialization failure is returned
// alongside a silent player so the game can run without sound.
func NewPlayer(enabled bool) (*Player, error) {
	if !enabled {
		return &Player{}, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Player{}, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &Player{enabled: true}, nil
}

// Enabled reports whether tones are actually played
func (p *Player) Enabled() bool {
	return p != nil && p.enabled
}

// Hit plays the accepted-click tone
func (p *Player) Hit() {
	if !p.Enabled() {
		return
	}
	sine, err := generators.SineTone(sampleRate, hitFrequency)
	if err != nil {
		log.Warn().Err(err).Msg("failed to build hit tone")
		return
	}
	speaker.Play(beep.Take(sampleRate.N(hitDuration), sine))
}

// Close releases the speaker
func (p *Player) Close() {
	if !p.Enabled() {
		return
	}
	speaker.Close()
	p.enabled = false
}
