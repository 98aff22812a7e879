package waveform

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

func decodeWAV(r io.ReadSeeker) (*interleaved, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read PCM: %w", err)
	}
	if buf.Format == nil {
		return nil, errors.New("missing WAV format chunk")
	}

	// 8-bit WAV samples are unsigned.
	if dec.BitDepth == 8 {
		for i := range buf.Data {
			buf.Data[i] -= 128
		}
	}

	return &interleaved{
		data:       buf.Data,
		channels:   buf.Format.NumChannels,
		sampleRate: buf.Format.SampleRate,
		bitDepth:   int(dec.BitDepth),
	}, nil
}

// WriteWAV writes mono samples as a PCM WAV file.
func WriteWAV(path string, samples []int, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("waveform: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("waveform: close %s: %w", path, cerr)
		}
	}()

	return EncodeWAV(f, samples, sampleRate, bitDepth)
}

// EncodeWAV writes mono samples as a PCM WAV stream.
func EncodeWAV(w io.WriteSeeker, samples []int, sampleRate, bitDepth int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	if bitDepth == 8 {
		shifted := make([]int, len(samples))
		for i, v := range samples {
			shifted[i] = v + 128
		}
		samples = shifted
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("waveform: encode WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("waveform: finalize WAV: %w", err)
	}
	return nil
}
