// Command tonegen writes deterministic test tones as mono PCM WAV files.
//
// Usage:
//
//	tonegen [flags] <output.wav>
//
// Several frequencies are summed with equal amplitude so the mix peaks at
// --level of full scale. Optional white noise can be added on top.
// With --band the fraction of the written signal's energy outside that band
// is printed, which tells how much a pipeline drive with the band would
// remove.
//
// Examples:
//
//	tonegen sine500.wav
//	tonegen --freq 440,6010 --duration 2 two-tone.wav
//	tonegen --freq 100 --noise 0.01 --seed 7 --bits 24 hum.wav
//	tonegen --freq 440,6010 --band :1000 two-tone.wav
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-motion/audio/waveform"
	"github.com/cwbudde/algo-motion/dsp/band"
	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/signal"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type toneConfig struct {
	freqs    []float64
	level    float64
	duration float64
	rate     int
	bits     int
	noise    float64
	seed     int64
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		tc     toneConfig
		report band.Band
	)

	fs := pflag.NewFlagSet("tonegen", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64SliceVar(&tc.freqs, "freq", []float64{500}, "tone frequencies in Hz, comma separated")
	fs.Float64Var(&tc.level, "level", 0.5, "peak level of the tone mix as a fraction of full scale")
	fs.Float64VarP(&tc.duration, "duration", "d", 2, "duration in seconds")
	fs.IntVarP(&tc.rate, "rate", "r", 44100, "sample rate in Hz")
	fs.IntVarP(&tc.bits, "bits", "b", 16, "bit depth (8|16|24|32)")
	fs.Float64Var(&tc.noise, "noise", 0, "white noise amplitude as a fraction of full scale")
	fs.Int64Var(&tc.seed, "seed", 1, "noise seed")
	fs.Var(&bandValue{&report}, "band", "report the energy fraction outside this band (low:high)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tonegen [flags] <output.wav>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	samples, err := generate(tc)
	if err != nil {
		fmt.Fprintf(stderr, "tonegen: %v\n", err)
		return 1
	}
	if err := waveform.WriteWAV(fs.Arg(0), samples, tc.rate, tc.bits); err != nil {
		fmt.Fprintf(stderr, "tonegen: %v\n", err)
		return 1
	}

	if fs.Changed("band") {
		frac, err := band.OutsideFraction(samples, tc.rate, report)
		if err != nil {
			fmt.Fprintf(stderr, "tonegen: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "band %s: outside fraction %.6f\n", report, frac)
	}
	return 0
}

// bandValue adapts band.Band to pflag.Value.
type bandValue struct{ b *band.Band }

func (v *bandValue) String() string {
	if v.b == nil {
		return ""
	}
	return v.b.String()
}

func (v *bandValue) Set(s string) error { return v.b.UnmarshalText([]byte(s)) }

func (v *bandValue) Type() string { return "band" }

func generate(tc toneConfig) ([]int, error) {
	switch tc.bits {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", tc.bits)
	}
	if tc.rate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive: %d", tc.rate)
	}
	if len(tc.freqs) == 0 {
		return nil, errors.New("at least one frequency is required")
	}
	if tc.level <= 0 || tc.level > 1 {
		return nil, fmt.Errorf("level must be in (0, 1]: %v", tc.level)
	}
	if tc.noise < 0 || tc.noise > 1 {
		return nil, fmt.Errorf("noise must be in [0, 1]: %v", tc.noise)
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(float64(tc.rate)), core.WithBitDepth(tc.bits)},
		signal.WithSeed(tc.seed),
	)
	n := gen.SamplesFor(tc.duration)
	if n <= 0 {
		return nil, fmt.Errorf("duration %v s yields no samples", tc.duration)
	}

	_, maxInt := core.IntRange(tc.bits)
	amp := tc.level * float64(maxInt) / float64(len(tc.freqs))

	parts := make([][]float64, 0, len(tc.freqs)+1)
	for _, f := range tc.freqs {
		x, err := gen.Sine(f, amp, n)
		if err != nil {
			return nil, err
		}
		parts = append(parts, x)
	}
	if tc.noise > 0 {
		x, err := gen.WhiteNoise(tc.noise*float64(maxInt), n)
		if err != nil {
			return nil, err
		}
		parts = append(parts, x)
	}

	mixed, err := signal.Mix(parts...)
	if err != nil {
		return nil, err
	}
	return signal.Quantize(mixed, tc.bits), nil
}
