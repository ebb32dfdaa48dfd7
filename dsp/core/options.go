package core

// ProcessorConfig defines the acquisition settings shared by analysis stages.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the optical sensor defaults: 100 Hz sampling
// and 1024-sample analysis blocks (about 10.24 s).
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 100,
		BlockSize:  1024,
	}
}

// WithSampleRate sets the acquisition sample rate in Hz.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the analysis block size in samples.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
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

// Duration returns the block length in seconds.
func (c ProcessorConfig) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.BlockSize) / c.SampleRate
}
