package core

// ProcessorConfig defines the PCM format shared by generators and filters.
type ProcessorConfig struct {
	SampleRate float64
	BitDepth   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns CD-style defaults: 44.1 kHz, 16-bit.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		BitDepth:   16,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBitDepth sets the integer sample depth.
func WithBitDepth(bitDepth int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if bitDepth >= 2 && bitDepth <= 32 {
			cfg.BitDepth = bitDepth
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
