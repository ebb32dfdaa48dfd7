package ppg

import (
	"github.com/cwbudde/algo-ppg/dsp/fft"
	"github.com/cwbudde/algo-ppg/dsp/spectrum"
	"github.com/cwbudde/algo-ppg/dsp/window"
)

// Config holds estimator parameters.
type Config struct {
	SampleRate     float64
	SegmentSamples int
	Band           spectrum.Band
	Window         window.Type
	NewBackend     fft.NewBackendFunc
}

// Option configures an Estimator.
type Option func(*Config)

// DefaultConfig returns the sensor defaults: 100 Hz, 1024 samples,
// 0.5–3.0 Hz passband, Hann window and a table-driven radix-2 FFT.
func DefaultConfig() Config {
	return Config{
		SampleRate:     SamplesPerSecond,
		SegmentSamples: SegmentSamples,
		Band:           spectrum.Band{MinHz: MinFreqHz, MaxHz: MaxFreqHz},
		Window:         window.TypeHann,
		NewBackend:     fft.NewRadix2,
	}
}

// WithSampleRate sets the acquisition rate in Hz.
func WithSampleRate(fs float64) Option {
	return func(c *Config) {
		c.SampleRate = fs
	}
}

// WithSegmentSamples sets the block length; it must be a power of two.
func WithSegmentSamples(n int) Option {
	return func(c *Config) {
		c.SegmentSamples = n
	}
}

// WithBand sets the passband in Hz.
func WithBand(minHz, maxHz float64) Option {
	return func(c *Config) {
		c.Band = spectrum.Band{MinHz: minHz, MaxHz: maxHz}
	}
}

// WithWindow selects the taper applied before the transform.
func WithWindow(t window.Type) Option {
	return func(c *Config) {
		c.Window = t
	}
}

// WithBackend selects the FFT implementation.
func WithBackend(newBackend fft.NewBackendFunc) Option {
	return func(c *Config) {
		if newBackend != nil {
			c.NewBackend = newBackend
		}
	}
}

// WithIncrementalTwiddles uses the radix-2 FFT with per-butterfly twiddle
// rotation instead of a twiddle table.
func WithIncrementalTwiddles() Option {
	return WithBackend(fft.NewRadix2Incremental)
}
