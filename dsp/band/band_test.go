package band

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		low      float64
		hasLow   bool
		high     float64
		hasHigh  bool
		wantText string
	}{
		{in: ":1000", high: 1000, hasHigh: true, wantText: ":1000"},
		{in: "4000:", low: 4000, hasLow: true, wantText: "4000:"},
		{in: ":", wantText: ":"},
		{in: " 200 : 800.5 ", low: 200, hasLow: true, high: 800.5, hasHigh: true, wantText: "200:800.5"},
		{in: "0:0", hasLow: true, hasHigh: true, wantText: "0:0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			low, hasLow := b.Low()
			high, hasHigh := b.High()
			if low != tt.low || hasLow != tt.hasLow || high != tt.high || hasHigh != tt.hasHigh {
				t.Fatalf("Parse(%q) = %+v", tt.in, b)
			}
			if b.String() != tt.wantText {
				t.Fatalf("String() = %q, want %q", b.String(), tt.wantText)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "1000", "abc:", ":x", "5:1", "-1:", ":-3", "NaN:", ":Inf"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidBand) {
			t.Fatalf("Parse(%q) error = %v, want ErrInvalidBand", in, err)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	in := BandPass(100, 2000)
	text, err := in.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	var out Band
	if err := out.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if out != in {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
	if err := out.UnmarshalText([]byte("9:1")); err == nil {
		t.Fatal("expected error for inverted band")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		b    Band
		ok   bool
	}{
		{name: "pass-through", b: PassThrough(), ok: true},
		{name: "low-pass", b: LowPass(1000), ok: true},
		{name: "high-pass", b: HighPass(4000), ok: true},
		{name: "equal edges", b: BandPass(500, 500), ok: true},
		{name: "inverted", b: BandPass(3000, 1000)},
		{name: "negative low", b: HighPass(-1)},
		{name: "nan high", b: LowPass(math.NaN())},
		{name: "inf low", b: HighPass(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidBand) {
				t.Fatalf("Validate() error = %v, want ErrInvalidBand", err)
			}
		})
	}
}

func TestContainsCombinesBothEdges(t *testing.T) {
	const nyq = 22050
	b := BandPass(1000, 3000)
	tests := []struct {
		f    float64
		want bool
	}{
		{f: 0, want: false},
		{f: 999.9, want: false},
		{f: 1000, want: true},
		{f: 2000, want: true},
		{f: -2000, want: true},
		{f: 3000, want: true},
		{f: 3000.1, want: false},
		{f: nyq, want: false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.f, nyq); got != tt.want {
			t.Fatalf("Contains(%v) = %v, want %v", tt.f, got, tt.want)
		}
	}

	if !LowPass(1000).Contains(0, nyq) || LowPass(1000).Contains(1001, nyq) {
		t.Fatal("low-pass edges wrong")
	}
	if HighPass(4000).Contains(3999, nyq) || !HighPass(4000).Contains(nyq, nyq) {
		t.Fatal("high-pass edges wrong")
	}
	if !PassThrough().Contains(nyq, nyq) {
		t.Fatal("pass-through must keep Nyquist")
	}
}
