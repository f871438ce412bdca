package bell

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// oscillator generates a sine wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and a linear decay to the end of the stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	decayStart   int
	decay        int
	totalSamples int
}

func newEnvelope(s beep.Streamer, duration, attack, decay time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	dec := rate.N(decay)
	start := total - dec
	if start < att {
		start = att
	}
	return &envelope{
		streamer:     s,
		attack:       att,
		decayStart:   start,
		decay:        dec,
		totalSamples: total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		} else if e.position >= e.decayStart && e.decay > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.decay)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; math.Log2(0) is -Inf so zero volume is mapped to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// newTone is an A5 ding with a decaying octave overtone
func newTone(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := newOscillator(880.0, toneDuration, rate)
	fundShaped := newEnvelope(fund, toneDuration, toneAttack, toneFundamentalDecay, rate)

	over := newOscillator(1760.0, toneDuration, rate)
	overShaped := newEnvelope(over, toneDuration, toneAttack, toneOvertoneDecay, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return beep.Take(rate.N(toneDuration), newVolume(mixed, cfg.Volume))
}

// renderPCM drains s into interleaved s16le bytes; channels 1 keeps the left channel
func renderPCM(s beep.Streamer, channels int) []byte {
	var (
		out   []byte
		buf   = make([][2]float64, 512)
		frame = channels * 2
	)
	for {
		n, ok := s.Stream(buf)
		if n > 0 {
			start := len(out)
			out = append(out, make([]byte, n*frame)...)
			floatToBytes(buf[:n], out[start:], channels)
		}
		if !ok {
			return out
		}
	}
}

// softKnee is where limiting starts; above it samples approach but never reach full scale
const softKnee = 0.8

// limit compresses |v| above softKnee into (softKnee, 1)
func limit(v float64) float64 {
	switch {
	case v > softKnee:
		return softKnee + (1-softKnee)*(1-1/(1+(v-softKnee)*5))
	case v < -softKnee:
		return -limit(-v)
	}
	return v
}

// floatToBytes converts float64 frames to interleaved int16 LE bytes for the first channels channels
func floatToBytes(in [][2]float64, out []byte, channels int) {
	for i, frame := range in {
		for ch := 0; ch < channels; ch++ {
			v := limit(frame[ch])
			binary.LittleEndian.PutUint16(out[(i*channels+ch)*2:], uint16(int16(v*32767)))
		}
	}
}
