package bell

import (
	"os/exec"
	"strconv"
)

// player is a CLI program that plays raw s16le PCM from stdin
type player struct {
	typ  BackendType
	name string // Also the executable looked up in PATH
	args func(rate, channels string) []string
}

// players in detection order. Each one takes the stream format on the command line,
// so the rendered tone plays as-is whatever the host defaults are
var players = []player{
	{BackendPulse, "pacat", func(rate, channels string) []string {
		return []string{"--raw", "--playback", "--format=s16le", "--rate=" + rate, "--channels=" + channels, "--latency-msec=50"}
	}},
	{BackendPipeWire, "pw-cat", func(rate, channels string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + rate, "--channels=" + channels, "-"}
	}},
	{BackendALSA, "aplay", func(rate, channels string) []string {
		return []string{"-q", "-t", "raw", "-f", "S16_LE", "-r", rate, "-c", channels}
	}},
	{BackendSoX, "play", func(rate, channels string) []string {
		return []string{"-q", "-t", "raw", "-e", "signed", "-b", "16", "-r", rate, "-c", channels, "-"}
	}},
	{BackendFFplay, "ffplay", func(rate, channels string) []string {
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-f", "s16le", "-ar", rate, "-ac", channels, "-i", "pipe:0"}
	}},
}

// DetectBackend returns the first player in PATH, configured for cfg's rate and channel count
func DetectBackend(cfg Config) (*BackendConfig, error) {
	rate := strconv.Itoa(cfg.SampleRate)
	channels := strconv.Itoa(cfg.Channels)

	for _, p := range players {
		path, err := exec.LookPath(p.name)
		if err != nil {
			continue
		}
		return &BackendConfig{
			Type: p.typ,
			Name: p.name,
			Path: path,
			Args: p.args(rate, channels),
		}, nil
	}
	return nil, ErrNoAudioBackend
}
