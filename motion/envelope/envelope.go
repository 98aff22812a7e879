// Package envelope reduces a PCM signal to a short sequence of normalised
// amplitude values, one per animation keyframe.
package envelope

import (
	"errors"
	"fmt"
	"math"
	"strings"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-motion/dsp/core"
)

var (
	// ErrInsufficientSamples is returned when the signal has fewer samples
	// than requested keyframes or the keyframe count is not positive.
	ErrInsufficientSamples = errors.New("envelope: insufficient samples")
	// ErrSilentSignal accompanies an all-zero envelope. It is recoverable.
	ErrSilentSignal = errors.New("envelope: silent signal")
	// ErrInvalidMode is returned for an unknown Mode.
	ErrInvalidMode = errors.New("envelope: invalid mode")
)

// Mode selects how sampled magnitudes become envelope values.
type Mode int

const (
	// ModePeak yields |x| / max|x|, in [0, 1]. Used for rotation drives.
	ModePeak Mode = iota
	// ModeCentered yields gain*|x|/fullScale - gain/2 divided by its
	// largest magnitude, in [-1, 1]. Used for position drives.
	ModeCentered
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePeak:
		return "peak"
	case ModeCentered:
		return "centered"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "peak" or "centered".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "peak":
		return ModePeak, nil
	case "centered", "centred":
		return ModeCentered, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModePeak && m != ModeCentered {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Envelope is a read-only keyframe amplitude sequence.
type Envelope struct {
	Values []float64
	Mode   Mode
}

// Len returns the keyframe count.
func (e Envelope) Len() int { return len(e.Values) }

// At returns the value for keyframe k.
func (e Envelope) At(k int) float64 { return e.Values[k] }

// IsZero reports whether every value is zero.
func (e Envelope) IsZero() bool {
	for _, v := range e.Values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Zero returns the neutral all-zero envelope of count values.
func Zero(count int, mode Mode) Envelope {
	return Envelope{Values: make([]float64, count), Mode: mode}
}

type config struct {
	gain         float64
	bitDepth     int
	silenceFloor int
}

// Option configures sampling.
type Option func(*config)

// WithGain sets the centring gain of ModeCentered. Default 1.
// Because values are normalised afterwards, the gain only moves the
// zero crossing relative to the signal level.
func WithGain(gain float64) Option {
	return func(c *config) {
		if gain > 0 && !math.IsInf(gain, 0) {
			c.gain = gain
		}
	}
}

// WithBitDepth sets the full scale used by ModeCentered. Default 16.
func WithBitDepth(bitDepth int) Option {
	return func(c *config) {
		if bitDepth >= 2 && bitDepth <= 32 {
			c.bitDepth = bitDepth
		}
	}
}

// WithSilenceFloor sets the largest |x| still treated as silence.
// Default 1, which absorbs the quantisation residue of a filtered signal.
func WithSilenceFloor(floor int) Option {
	return func(c *config) {
		if floor >= 0 {
			c.silenceFloor = floor
		}
	}
}

// Sampler samples signals with a fixed mode and configuration.
type Sampler struct {
	mode Mode
	cfg  config
}

// NewSampler returns a Sampler for mode.
func NewSampler(mode Mode, opts ...Option) (*Sampler, error) {
	if mode != ModePeak && mode != ModeCentered {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	cfg := config{gain: 1, bitDepth: 16, silenceFloor: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Sampler{mode: mode, cfg: cfg}, nil
}

// Mode returns the sampler mode.
func (s *Sampler) Mode() Mode { return s.mode }

// Sample is a one-shot NewSampler followed by Sampler.Sample.
func Sample(signal []int, count int, mode Mode, opts ...Option) (Envelope, error) {
	s, err := NewSampler(mode, opts...)
	if err != nil {
		return Envelope{}, err
	}
	return s.Sample(signal, count)
}

// Stride returns len/count, the distance between sampled indices.
func Stride(length, count int) (int, error) {
	if count <= 0 || length < count {
		return 0, fmt.Errorf("%w: %d samples for %d keyframes", ErrInsufficientSamples, length, count)
	}
	return length / count, nil
}

// Sample picks count evenly spaced samples (indices 0, stride, ...) and
// normalises them. If no sampled magnitude exceeds the silence floor it
// returns the zero envelope together with ErrSilentSignal.
func (s *Sampler) Sample(signal []int, count int) (Envelope, error) {
	stride, err := Stride(len(signal), count)
	if err != nil {
		return Envelope{}, err
	}

	mags := make([]float64, count)
	silent := true
	for k := range mags {
		x := signal[k*stride]
		if x < 0 {
			x = -x
		}
		if x > s.cfg.silenceFloor {
			silent = false
		}
		mags[k] = float64(x)
	}
	if silent {
		return Zero(count, s.mode), ErrSilentSignal
	}

	if s.mode == ModeCentered {
		g := s.cfg.gain
		vecmath.ScaleBlock(mags, mags, g/core.FullScale(s.cfg.bitDepth))
		for k := range mags {
			mags[k] -= g / 2
		}
	}

	peak := maxAbs(mags)
	if peak == 0 {
		return Zero(count, s.mode), ErrSilentSignal
	}

	values := make([]float64, count)
	for k, v := range mags {
		values[k] = v / peak
	}
	return Envelope{Values: values, Mode: s.mode}, nil
}

func maxAbs(x []float64) float64 {
	var m float64
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
