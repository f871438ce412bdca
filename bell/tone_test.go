package bell

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gopxl/beep"
)

func TestRenderPCMLength(t *testing.T) {
	cfg := DefaultConfig()
	frames := beep.SampleRate(cfg.SampleRate).N(toneDuration)

	for _, channels := range []int{1, 2} {
		pcm := renderPCM(newTone(cfg), channels)
		if want := frames * channels * 2; len(pcm) != want {
			t.Errorf("%d channels: pcm length = %d, want %d", channels, len(pcm), want)
		}
	}
}

func TestRenderPCMAudible(t *testing.T) {
	pcm := renderPCM(newTone(DefaultConfig()), 1)

	var peak int16
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int16(binary.LittleEndian.Uint16(pcm[i:]))
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	if peak < 1000 {
		t.Errorf("peak amplitude %d, expected an audible tone", peak)
	}
}

func TestRenderPCMSilentAtZeroVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 0
	for i, b := range renderPCM(newTone(cfg), 2) {
		if b != 0 {
			t.Fatalf("byte %d = %d, expected silence", i, b)
		}
	}
}

func TestEnvelopeStartsAtZero(t *testing.T) {
	rate := beep.SampleRate(44100)
	env := newEnvelope(newOscillator(440, toneDuration, rate), toneDuration, toneAttack, toneFundamentalDecay, rate)

	buf := make([][2]float64, 4)
	env.Stream(buf)
	if buf[0][0] != 0 || buf[0][1] != 0 {
		t.Errorf("first frame = %v, want silence", buf[0])
	}
}

func TestLimitCurve(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{softKnee, softKnee},
		{2.0, 0.8 + 0.2*(1-1/7.0)},
		{-2.0, -(0.8 + 0.2*(1-1/7.0))},
		{math.Inf(1), 1},
	}
	for _, tt := range tests {
		if got := limit(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("limit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Monotonic and below full scale past the knee
	prev := limit(softKnee)
	for v := softKnee + 0.1; v < 50; v += 0.1 {
		got := limit(v)
		if got <= prev || got >= 1 {
			t.Fatalf("limit(%v) = %v after %v", v, got, prev)
		}
		prev = got
	}
}

func TestFloatToBytesLimits(t *testing.T) {
	in := [][2]float64{{2.0, -2.0}, {0, 0.5}}
	out := make([]byte, len(in)*4)
	floatToBytes(in, out, 2)

	sample := func(i int) int16 { return int16(binary.LittleEndian.Uint16(out[i*2:])) }
	peakF := 0.8 + 0.2*(1-1/7.0)
	peak := int16(peakF * 32767)
	if sample(0) != peak || sample(1) != -peak {
		t.Errorf("limited samples = %d, %d, want %d, %d", sample(0), sample(1), peak, -peak)
	}
	if sample(2) != 0 {
		t.Errorf("zero sample = %d", sample(2))
	}
	if sample(3) != 16383 {
		t.Errorf("half sample = %d", sample(3))
	}
}

func TestFloatToBytesMono(t *testing.T) {
	in := [][2]float64{{0.5, -0.5}, {-0.5, 0.5}}
	out := make([]byte, len(in)*2)
	floatToBytes(in, out, 1)

	left := []int16{16383, -16383}
	for i, want := range left {
		if got := int16(binary.LittleEndian.Uint16(out[i*2:])); got != want {
			t.Errorf("frame %d = %d, want %d", i, got, want)
		}
	}
}
