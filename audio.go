package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate     = beep.SampleRate(44100)
	chimeBaseFreq  = 880.0
	chimeFreqStep  = 55.0
	chimeMaxFreq   = 1760.0
	chimeLength    = 40 * time.Millisecond
	chimeCooldown  = 120 * time.Millisecond
	chimeThreshold = 3 // Sparkles per step before a chime sounds
)

// chime plays a short tone when a step produces a burst of sparkles.
type chime struct {
	last time.Time
}

func newChime() (*chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &chime{}, nil
}

// Sparkle sounds a tone pitched by the burst size, rate limited.
func (c *chime) Sparkle(n int) {
	if n < chimeThreshold || time.Since(c.last) < chimeCooldown {
		return
	}
	c.last = time.Now()

	freq := chimeBaseFreq + chimeFreqStep*float64(n-chimeThreshold)
	if freq > chimeMaxFreq {
		freq = chimeMaxFreq
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(chimeLength), sine))
}

func (c *chime) Close() {
	speaker.Close()
}
