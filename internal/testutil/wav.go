package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes one integer slice per channel as an interleaved PCM WAV
// file in t.TempDir and returns its path. All channels must be equally long.
func WriteWAV(t *testing.T, name string, sampleRate, bitDepth int, channels ...[]int) string {
	t.Helper()
	if len(channels) == 0 {
		t.Fatal("WriteWAV needs at least one channel")
	}

	frames := len(channels[0])
	data := make([]int, 0, frames*len(channels))
	for i := 0; i < frames; i++ {
		for ch, c := range channels {
			if len(c) != frames {
				t.Fatalf("channel %d has %d frames, want %d", ch, len(c), frames)
			}
			data = append(data, c[i])
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, len(channels), 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finalize %s: %v", path, err)
	}
	return path
}
