package waveform

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

func decodeFLAC(r io.Reader) (*interleaved, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("open FLAC stream: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	pcm := &interleaved{
		channels:   channels,
		sampleRate: int(info.SampleRate),
		bitDepth:   int(info.BitsPerSample),
	}
	if channels <= 0 {
		return pcm, nil
	}
	if info.NSamples > 0 {
		pcm.data = make([]int, 0, int(info.NSamples)*channels)
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse FLAC frame: %w", err)
		}
		if len(frame.Subframes) != channels {
			return nil, fmt.Errorf("%w: frame has %d subframes, stream %d",
				ErrUnsupportedChannels, len(frame.Subframes), channels)
		}

		for i := 0; i < int(frame.BlockSize); i++ {
			for _, sub := range frame.Subframes {
				pcm.data = append(pcm.data, int(sub.Samples[i]))
			}
		}
	}

	return pcm, nil
}
