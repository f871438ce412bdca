package bell

import (
	"errors"
	"time"
)

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("bell: no compatible audio backend found")
)

// Tone shape
const (
	toneDuration         = 250 * time.Millisecond
	toneAttack           = 5 * time.Millisecond
	toneFundamentalDecay = 200 * time.Millisecond
	toneOvertoneDecay    = 120 * time.Millisecond
)

// Config controls bell synthesis and rate limiting
type Config struct {
	Volume      float64       // 0.0-1.0
	SampleRate  int           // Hz
	Channels    int           // 1 or 2, interleaved s16le
	MinInterval time.Duration // Rings closer together than this are dropped
}

// DefaultConfig returns a quiet mono bell at 44.1kHz
func DefaultConfig() Config {
	return Config{
		Volume:      0.5,
		SampleRate:  44100,
		Channels:    1,
		MinInterval: 150 * time.Millisecond,
	}
}
