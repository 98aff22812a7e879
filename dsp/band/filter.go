package band

import (
	"fmt"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/spectrum"
)

// Backend selects the FFT implementation.
type Backend int

const (
	// BackendAuto uses algo-fft for power-of-two lengths and gonum otherwise.
	BackendAuto Backend = iota
	// BackendAlgoFFT forces the algo-fft complex plan. Lengths must be powers of two.
	BackendAlgoFFT
	// BackendGonum forces gonum's real FFT, which accepts any length.
	BackendGonum
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendAlgoFFT:
		return "algo-fft"
	case BackendGonum:
		return "gonum"
	default:
		return "auto"
	}
}

// ParseBackend parses "auto", "algo-fft" or "gonum".
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "algo-fft", "algofft":
		return BackendAlgoFFT, nil
	case "gonum":
		return BackendGonum, nil
	default:
		return BackendAuto, fmt.Errorf("band: unknown backend %q", s)
	}
}

type config struct {
	bitDepth int
	backend  Backend
}

// Option configures a Filter.
type Option func(*config)

// WithBitDepth sets the output saturation range. Default 16.
func WithBitDepth(bitDepth int) Option {
	return func(c *config) {
		if bitDepth >= 2 && bitDepth <= 32 {
			c.bitDepth = bitDepth
		}
	}
}

// WithBackend forces an FFT backend.
func WithBackend(b Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// Filter is a validated band filter bound to a sample rate.
// It holds no per-call state and is safe for concurrent use.
type Filter struct {
	band       Band
	sampleRate float64
	bitDepth   int
	backend    Backend
}

// New validates b and sampleRate and returns a Filter.
func New(sampleRate int, b Band, opts ...Option) (*Filter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	cfg := config{bitDepth: 16}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Filter{
		band:       b,
		sampleRate: float64(sampleRate),
		bitDepth:   cfg.bitDepth,
		backend:    cfg.backend,
	}, nil
}

// Apply is a one-shot New followed by Filter.Apply.
func Apply(samples []int, sampleRate int, b Band, opts ...Option) ([]int, error) {
	f, err := New(sampleRate, b, opts...)
	if err != nil {
		return nil, err
	}
	return f.Apply(samples)
}

// Band returns the filter band.
func (f *Filter) Band() Band { return f.band }

// Apply returns the band-limited copy of samples. The input is not modified.
func (f *Filter) Apply(samples []int) ([]int, error) {
	if f.band.IsPassThrough() {
		return core.CloneInts(samples), nil
	}

	n := len(samples)
	switch {
	case n == 0:
		return []int{}, nil
	case n == 1:
		// A single sample only has a DC bin.
		if f.keep(0, 1) {
			return core.CloneInts(samples), nil
		}
		return []int{0}, nil
	}

	backend := f.backend
	if backend == BackendAuto {
		backend = BackendGonum
		if core.IsPowerOf2(n) {
			backend = BackendAlgoFFT
		}
	}

	switch backend {
	case BackendAlgoFFT:
		return f.applyComplex(samples)
	default:
		return f.applyReal(samples)
	}
}

func (f *Filter) keep(k, n int) bool {
	return f.band.Contains(spectrum.AbsBinFrequency(k, n, f.sampleRate), spectrum.Nyquist(f.sampleRate))
}

func (f *Filter) applyComplex(samples []int) ([]int, error) {
	n := len(samples)
	if !core.IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: algo-fft needs a power of two, got %d", ErrBackend, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("band: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, n)
	for i, v := range samples {
		buf[i] = complex(float64(v), 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("band: forward FFT failed: %w", err)
	}

	for k := range buf {
		if !f.keep(k, n) {
			buf[k] = 0
		}
	}

	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("band: inverse FFT failed: %w", err)
	}

	out := make([]int, n)
	for i, c := range buf {
		out[i] = core.SaturateInt(real(c), f.bitDepth)
	}
	return out, nil
}

func (f *Filter) applyReal(samples []int) ([]int, error) {
	n := len(samples)
	x := core.IntsToFloats(nil, samples)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, x)

	// Coefficients holds bins 0..n/2, whose frequencies are already |f|.
	for k := range coeffs {
		if !f.keep(k, n) {
			coeffs[k] = 0
		}
	}

	y := fft.Sequence(x, coeffs)

	// gonum leaves the inverse unnormalised.
	scale := 1 / float64(n)
	out := make([]int, n)
	for i, v := range y {
		out[i] = core.SaturateInt(v*scale, f.bitDepth)
	}
	return out, nil
}
