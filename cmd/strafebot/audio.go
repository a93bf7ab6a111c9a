package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	cueLength  = 40 * time.Millisecond
	cueVolume  = 0.3
)

// jumpCue plays a short tone on every jump. Its pitch rises with horizontal speed.
type jumpCue struct {
	enabled bool
}

func newJumpCue() (*jumpCue, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return &jumpCue{}, err
	}
	return &jumpCue{enabled: true}, nil
}

func (c *jumpCue) play(speed float32) {
	if !c.enabled {
		return
	}
	freq := 330 + math.Min(float64(speed), 2400)/4
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(&effects.Volume{Streamer: beep.Take(sampleRate.N(cueLength), sine), Base: 2, Volume: math.Log2(cueVolume)})
}

func (c *jumpCue) close() {
	if c.enabled {
		speaker.Close()
		c.enabled = false
	}
}
