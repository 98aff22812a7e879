package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SamplesFor returns the sample count covering durationSeconds at the
// generator sample rate, rounded to the nearest sample.
func (g *Generator) SamplesFor(durationSeconds float64) int {
	return int(math.Round(durationSeconds * g.cfg.SampleRate))
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// PCMSine generates an integer PCM sine lasting durationSeconds. level is
// the peak amplitude as a fraction of full scale in (0, 1].
func (g *Generator) PCMSine(freqHz, level, durationSeconds float64) ([]int, error) {
	if level <= 0 || level > 1 {
		return nil, fmt.Errorf("sine level must be in (0, 1]: %f", level)
	}
	_, max := core.IntRange(g.cfg.BitDepth)
	x, err := g.Sine(freqHz, level*float64(max), g.SamplesFor(durationSeconds))
	if err != nil {
		return nil, err
	}
	return Quantize(x, g.cfg.BitDepth), nil
}

// Quantize rounds data to integer PCM samples, saturating at the range of
// bitDepth.
func Quantize(data []float64, bitDepth int) []int {
	out := make([]int, len(data))
	for i, v := range data {
		out[i] = core.SaturateInt(v, bitDepth)
	}
	return out
}

// Mix returns the sample-wise sum of equally long signals.
func Mix(signals ...[]float64) ([]float64, error) {
	if len(signals) == 0 {
		return nil, fmt.Errorf("mix requires at least one signal")
	}
	n := len(signals[0])
	out := make([]float64, n)
	for i, s := range signals {
		if len(s) != n {
			return nil, fmt.Errorf("mix length mismatch at signal %d: %d != %d", i, len(s), n)
		}
		for j, v := range s {
			out[j] += v
		}
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
