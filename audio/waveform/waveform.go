package waveform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Errors wrapped by DecodeError.
var (
	ErrUnsupportedFormat   = errors.New("waveform: unsupported format")
	ErrUnsupportedChannels = errors.New("waveform: unsupported channel layout")
	ErrInvalidSampleRate   = errors.New("waveform: invalid sample rate")
	ErrNoSamples           = errors.New("waveform: no samples")
)

// Format is an audio container format.
type Format string

// Supported formats.
const (
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
	FormatMP3  Format = "mp3"
)

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".flac":
		return FormatFLAC, nil
	case ".mp3":
		return FormatMP3, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecodeError reports a file that could not be turned into a waveform.
type DecodeError struct {
	Path   string
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("waveform: decode %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("waveform: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Reduction describes how a multi-channel source became one channel.
type Reduction struct {
	Mixdown bool
	Channel int
}

// String returns "mixdown" or "channel N".
func (r Reduction) String() string {
	if r.Mixdown {
		return "mixdown"
	}
	return fmt.Sprintf("channel %d", r.Channel)
}

// Waveform is a decoded single-channel signal. Channels is the channel
// count of the source before reduction. Treat it as read-only once returned.
type Waveform struct {
	Samples    []int
	SampleRate int
	BitDepth   int
	Channels   int
	Duration   float64 // seconds
	Path       string
	Format     Format
	Reduction  Reduction
}

// Len returns the number of samples.
func (w *Waveform) Len() int { return len(w.Samples) }

type config struct {
	reduction Reduction
}

// Option configures channel reduction.
type Option func(*config)

// WithChannel selects a single source channel (0-based).
func WithChannel(ch int) Option {
	return func(c *config) {
		c.reduction = Reduction{Channel: ch}
	}
}

// WithMixdown averages all source channels.
func WithMixdown() Option {
	return func(c *config) {
		c.reduction = Reduction{Mixdown: true}
	}
}

func applyOptions(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Load opens path, decodes it according to its extension and reduces it
// to one channel.
func Load(path string, opts ...Option) (*Waveform, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Format: format, Err: err}
	}
	defer f.Close()

	w, err := Decode(f, format, opts...)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	w.Path = path
	return w, nil
}

// Decode reads a complete stream of the given format from r.
func Decode(r io.ReadSeeker, format Format, opts ...Option) (*Waveform, error) {
	cfg := applyOptions(opts)

	var (
		pcm *interleaved
		err error
	)
	switch format {
	case FormatWAV:
		pcm, err = decodeWAV(r)
	case FormatFLAC:
		pcm, err = decodeFLAC(r)
	case FormatMP3:
		pcm, err = decodeMP3(r)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err == nil {
		err = pcm.validate()
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	samples, err := pcm.reduce(cfg.reduction)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	return &Waveform{
		Samples:    samples,
		SampleRate: pcm.sampleRate,
		BitDepth:   pcm.bitDepth,
		Channels:   pcm.channels,
		Duration:   float64(len(samples)) / float64(pcm.sampleRate),
		Format:     format,
		Reduction:  cfg.reduction,
	}, nil
}

// interleaved is decoder output before channel reduction.
type interleaved struct {
	data       []int
	channels   int
	sampleRate int
	bitDepth   int
}

func (p *interleaved) validate() error {
	if p.channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, p.channels)
	}
	if p.sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, p.sampleRate)
	}
	if len(p.data) < p.channels {
		return ErrNoSamples
	}
	return nil
}

func (p *interleaved) frames() int { return len(p.data) / p.channels }

func (p *interleaved) reduce(r Reduction) ([]int, error) {
	n := p.frames()
	out := make([]int, n)

	if r.Mixdown {
		for i := range out {
			sum := 0
			for ch := 0; ch < p.channels; ch++ {
				sum += p.data[i*p.channels+ch]
			}
			out[i] = sum / p.channels
		}
		return out, nil
	}

	if r.Channel < 0 || r.Channel >= p.channels {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrUnsupportedChannels, r.Channel, p.channels)
	}
	for i := range out {
		out[i] = p.data[i*p.channels+r.Channel]
	}
	return out, nil
}
