package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-motion/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestSineRejectsEmpty(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Sine(440, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
	}
}

func TestPCMSine(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(44100), core.WithBitDepth(16))
	x, err := g.PCMSine(500, 0.5, 2)
	if err != nil {
		t.Fatalf("PCMSine() error = %v", err)
	}
	if len(x) != 88200 {
		t.Fatalf("len = %d, want 88200", len(x))
	}

	peak := 0
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	want := int(math.Round(0.5 * 32767))
	if peak > want || peak < want-2 {
		t.Fatalf("peak = %d, want ~%d", peak, want)
	}
}

func TestPCMSineRejectsLevel(t *testing.T) {
	g := NewGenerator()
	for _, level := range []float64{0, -0.5, 1.5} {
		if _, err := g.PCMSine(440, level, 1); err == nil {
			t.Fatalf("expected error for level %v", level)
		}
	}
}

func TestQuantizeSaturates(t *testing.T) {
	got := Quantize([]float64{0.4, -0.6, 200, -200}, 8)
	want := []int{0, -1, 127, -128}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Quantize[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMix(t *testing.T) {
	out, err := Mix([]float64{1, 2}, []float64{3, -2})
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}
	if out[0] != 4 || out[1] != 0 {
		t.Fatalf("Mix() = %v, want [4 0]", out)
	}
	if _, err := Mix([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if _, err := Mix(); err == nil {
		t.Fatal("expected error for no signals")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0, 0, 0}, 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0 for silent input", i, v)
		}
	}
	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
}
