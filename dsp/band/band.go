package band

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Errors returned by band validation and filtering.
var (
	ErrInvalidBand       = errors.New("band: invalid band")
	ErrInvalidSampleRate = errors.New("band: invalid sample rate")
	ErrBackend           = errors.New("band: backend cannot transform this length")
)

// Band is a frequency range with optional lower and upper edges in Hz.
// The zero value is a pass-through.
type Band struct {
	low, high       float64
	hasLow, hasHigh bool
}

// PassThrough returns a band without edges.
func PassThrough() Band {
	return Band{}
}

// LowPass keeps |f| <= high.
func LowPass(high float64) Band {
	return Band{high: high, hasHigh: true}
}

// HighPass keeps |f| >= low.
func HighPass(low float64) Band {
	return Band{low: low, hasLow: true}
}

// BandPass keeps low <= |f| <= high.
func BandPass(low, high float64) Band {
	return Band{low: low, high: high, hasLow: true, hasHigh: true}
}

// Low returns the lower edge and whether it is set.
func (b Band) Low() (float64, bool) { return b.low, b.hasLow }

// High returns the upper edge and whether it is set.
func (b Band) High() (float64, bool) { return b.high, b.hasHigh }

// IsPassThrough reports whether neither edge is set.
func (b Band) IsPassThrough() bool { return !b.hasLow && !b.hasHigh }

// Validate checks that set edges are finite and non-negative and that
// low <= high when both are set.
func (b Band) Validate() error {
	for _, e := range []struct {
		name string
		v    float64
		set  bool
	}{{"low", b.low, b.hasLow}, {"high", b.high, b.hasHigh}} {
		if !e.set {
			continue
		}
		if math.IsNaN(e.v) || math.IsInf(e.v, 0) {
			return fmt.Errorf("%w: %s edge must be finite: %v", ErrInvalidBand, e.name, e.v)
		}
		if e.v < 0 {
			return fmt.Errorf("%w: %s edge must be >= 0: %v", ErrInvalidBand, e.name, e.v)
		}
	}
	if b.hasLow && b.hasHigh && b.low > b.high {
		return fmt.Errorf("%w: low %v > high %v", ErrInvalidBand, b.low, b.high)
	}
	return nil
}

// Contains reports whether absolute frequency f (Hz) is kept. An absent low
// edge defaults to 0, an absent high edge to nyquist. Both conditions must hold.
func (b Band) Contains(f, nyquist float64) bool {
	f = math.Abs(f)
	low, high := 0.0, nyquist
	if b.hasLow {
		low = b.low
	}
	if b.hasHigh {
		high = b.high
	}
	return low <= f && f <= high
}

// String formats the band as "low:high" with absent edges left empty.
func (b Band) String() string {
	var sb strings.Builder
	if b.hasLow {
		sb.WriteString(strconv.FormatFloat(b.low, 'g', -1, 64))
	}
	sb.WriteByte(':')
	if b.hasHigh {
		sb.WriteString(strconv.FormatFloat(b.high, 'g', -1, 64))
	}
	return sb.String()
}

// Parse reads the "low:high" form produced by String. Either side may be
// empty: ":1000" is a low-pass, "4000:" a high-pass, ":" a pass-through.
// The parsed band is validated.
func Parse(s string) (Band, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Band{}, fmt.Errorf("%w: %q is not of the form low:high", ErrInvalidBand, s)
	}

	var b Band
	if lo = strings.TrimSpace(lo); lo != "" {
		v, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return Band{}, fmt.Errorf("%w: low edge %q: %v", ErrInvalidBand, lo, err)
		}
		b.low, b.hasLow = v, true
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		v, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return Band{}, fmt.Errorf("%w: high edge %q: %v", ErrInvalidBand, hi, err)
		}
		b.high, b.hasHigh = v, true
	}

	if err := b.Validate(); err != nil {
		return Band{}, err
	}
	return b, nil
}

// MarshalText implements encoding.TextMarshaler.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Band) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
