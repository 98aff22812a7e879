package band

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-motion/dsp/signal"
	"github.com/cwbudde/algo-motion/internal/testutil"
)

const (
	testRate = 44100
	testLen  = 2 * testRate
)

func TestPassThroughReturnsCopy(t *testing.T) {
	in := testutil.PCMSine(500, testRate, 12000, 1000)
	out, err := Apply(in, testRate, PassThrough())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	testutil.RequireIntsWithin(t, out, in, 0)

	out[0] = 12345
	if in[0] == 12345 {
		t.Fatal("pass-through output aliases input")
	}
}

func TestInvalidBandRejected(t *testing.T) {
	in := testutil.PCMSine(500, testRate, 12000, 64)
	if _, err := Apply(in, testRate, BandPass(4000, 1000)); !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("Apply() error = %v, want ErrInvalidBand", err)
	}
	if _, err := New(0, LowPass(1000)); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("New() error = %v, want ErrInvalidSampleRate", err)
	}
}

func TestLowPassKeepsInBandSine(t *testing.T) {
	in := testutil.PCMSine(500, testRate, 16000, testLen)
	out, err := Apply(in, testRate, LowPass(1000))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	// Only quantisation residue above 1 kHz is removed.
	testutil.RequireIntsWithin(t, out, in, 2)
}

func TestHighPassRemovesLowSine(t *testing.T) {
	in := testutil.PCMSine(500, testRate, 16000, testLen)
	out, err := Apply(in, testRate, HighPass(4000))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	if peak := testutil.MaxAbsInt(out); peak > 1 {
		t.Fatalf("peak after high-pass = %d, want <= 1", peak)
	}
}

func TestBandPassIsolatesMiddleTone(t *testing.T) {
	const n = 44100
	low := testutil.DeterministicSine(500, testRate, 8000, n)
	mid := testutil.DeterministicSine(2000, testRate, 8000, n)
	high := testutil.DeterministicSine(6000, testRate, 8000, n)
	mix, err := signal.Mix(low, mid, high)
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}

	out, err := Apply(signal.Quantize(mix, 16), testRate, BandPass(1000, 3000))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	testutil.RequireIntsWithin(t, out, testutil.Round(mid), 2)
}

func TestNyquistEdge(t *testing.T) {
	for _, n := range []int{1000, 1024} {
		in := testutil.Alternating(1000, n)
		nyq := float64(testRate) / 2

		kept, err := Apply(in, testRate, LowPass(nyq))
		if err != nil {
			t.Fatalf("n=%d: Apply() error = %v", n, err)
		}
		testutil.RequireIntsWithin(t, kept, in, 0)

		keptHigh, err := Apply(in, testRate, HighPass(nyq))
		if err != nil {
			t.Fatalf("n=%d: Apply() error = %v", n, err)
		}
		testutil.RequireIntsWithin(t, keptHigh, in, 0)

		removed, err := Apply(in, testRate, LowPass(nyq-1))
		if err != nil {
			t.Fatalf("n=%d: Apply() error = %v", n, err)
		}
		if peak := testutil.MaxAbsInt(removed); peak != 0 {
			t.Fatalf("n=%d: Nyquist content survived low-pass below Nyquist, peak=%d", n, peak)
		}
	}
}

func TestHighPassRemovesDC(t *testing.T) {
	out, err := Apply(testutil.DC(1000, 300), testRate, HighPass(1))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if peak := testutil.MaxAbsInt(out); peak != 0 {
		t.Fatalf("DC survived high-pass, peak=%d", peak)
	}
}

func TestBackendsAgree(t *testing.T) {
	const sr, n = 4096, 4096
	a := testutil.DeterministicSine(100, sr, 9000, n)
	b := testutil.DeterministicSine(1000, sr, 9000, n)
	mix, err := signal.Mix(a, b)
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}
	in := signal.Quantize(mix, 16)

	viaAlgo, err := Apply(in, sr, LowPass(500), WithBackend(BackendAlgoFFT))
	if err != nil {
		t.Fatalf("algo-fft Apply() error = %v", err)
	}
	viaGonum, err := Apply(in, sr, LowPass(500), WithBackend(BackendGonum))
	if err != nil {
		t.Fatalf("gonum Apply() error = %v", err)
	}
	testutil.RequireIntsWithin(t, viaAlgo, viaGonum, 1)
	testutil.RequireIntsWithin(t, viaAlgo, testutil.Round(a), 2)
}

func TestAlgoFFTBackendRejectsOddLengths(t *testing.T) {
	in := testutil.PCMSine(500, testRate, 1000, 1000)
	if _, err := Apply(in, testRate, LowPass(1000), WithBackend(BackendAlgoFFT)); !errors.Is(err, ErrBackend) {
		t.Fatalf("Apply() error = %v, want ErrBackend", err)
	}
}

func TestOutputSaturates(t *testing.T) {
	// A full-scale square wave overshoots once its upper harmonics are cut.
	const n = 4096
	in := make([]int, n)
	for i := range in {
		if (i/32)%2 == 0 {
			in[i] = 32767
		} else {
			in[i] = -32767
		}
	}

	out, err := Apply(in, testRate, LowPass(8000), WithBitDepth(16))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	max, min := out[0], out[0]
	for _, v := range out {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	if max != 32767 || min != -32768 {
		t.Fatalf("range = [%d, %d], want saturation at [-32768, 32767]", min, max)
	}
}

func TestTinyInputs(t *testing.T) {
	out, err := Apply(nil, testRate, LowPass(100))
	if err != nil || len(out) != 0 {
		t.Fatalf("Apply(nil) = %v, %v", out, err)
	}

	out, err = Apply([]int{42}, testRate, LowPass(100))
	if err != nil || out[0] != 42 {
		t.Fatalf("Apply([42], low-pass) = %v, %v", out, err)
	}

	out, err = Apply([]int{42}, testRate, HighPass(100))
	if err != nil || out[0] != 0 {
		t.Fatalf("Apply([42], high-pass) = %v, %v", out, err)
	}
}

func TestInputNotModified(t *testing.T) {
	in := testutil.PCMNoise(7, 5000, 2048)
	snapshot := append([]int(nil), in...)
	if _, err := Apply(in, testRate, BandPass(200, 900)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	testutil.RequireIntsWithin(t, in, snapshot, 0)
}

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{"": BackendAuto, "auto": BackendAuto, "Algo-FFT": BackendAlgoFFT, "gonum": BackendGonum} {
		got, err := ParseBackend(in)
		if err != nil || got != want {
			t.Errorf("ParseBackend(%q) = %v, %v; want %v", in, got, err, want)
		}
		if in != "" && in != "Algo-FFT" && got.String() != in {
			t.Errorf("String() = %q, want %q", got.String(), in)
		}
	}
	if _, err := ParseBackend("fftw"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
