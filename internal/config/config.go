// Package config loads ppgrate settings from defaults, an optional YAML file,
// PPG_* environment variables and command line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ppg/dsp/fft"
	"github.com/cwbudde/algo-ppg/dsp/window"
	"github.com/cwbudde/algo-ppg/ppg"
	"github.com/cwbudde/algo-ppg/ppg/acquire"
)

// EnvPrefix prefixes every environment variable, e.g. PPG_ESTIMATOR_SAMPLE_RATE.
const EnvPrefix = "PPG"

// Backend names accepted by estimator.backend.
const (
	BackendRadix2            = "radix2"
	BackendRadix2Incremental = "radix2-incremental"
	BackendAlgoFFT           = "algofft"
)

// Output formats accepted by output_format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Debug        bool   `mapstructure:"debug"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	Estimator EstimatorConfig `mapstructure:"estimator"`
	Input     InputConfig     `mapstructure:"input"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

// EstimatorConfig selects the spectral estimator parameters.
type EstimatorConfig struct {
	SampleRate     float64 `mapstructure:"sample_rate"`
	SegmentSamples int     `mapstructure:"segment_samples"`
	MinHz          float64 `mapstructure:"min_hz"`
	MaxHz          float64 `mapstructure:"max_hz"`
	Window         string  `mapstructure:"window"`
	Backend        string  `mapstructure:"backend"`
}

// InputConfig names where samples come from. Serial wins over File; an
// empty File or "-" reads standard input.
type InputConfig struct {
	File   string `mapstructure:"file"`
	Serial string `mapstructure:"serial"`
	Baud   int    `mapstructure:"baud"`
}

// PipelineConfig controls segment assembly.
type PipelineConfig struct {
	Hop       int    `mapstructure:"hop"`
	QueueSize int    `mapstructure:"queue_size"`
	Overflow  string `mapstructure:"overflow"`
}

// SimulatorConfig describes the synthetic source.
type SimulatorConfig struct {
	BPM      float64 `mapstructure:"bpm"`
	DC       float64 `mapstructure:"dc"`
	AC       float64 `mapstructure:"ac"`
	Noise    float64 `mapstructure:"noise"`
	Wander   float64 `mapstructure:"wander"`
	WanderHz float64 `mapstructure:"wander_hz"`
	RedRatio float64 `mapstructure:"red_ratio"`
	Samples  int     `mapstructure:"samples"`
	Realtime bool    `mapstructure:"realtime"`
	Seed     int64   `mapstructure:"seed"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", FormatTable)

	v.SetDefault("estimator.sample_rate", ppg.SamplesPerSecond)
	v.SetDefault("estimator.segment_samples", ppg.SegmentSamples)
	v.SetDefault("estimator.min_hz", ppg.MinFreqHz)
	v.SetDefault("estimator.max_hz", ppg.MaxFreqHz)
	v.SetDefault("estimator.window", window.TypeHann.String())
	v.SetDefault("estimator.backend", BackendRadix2)

	v.SetDefault("input.file", "")
	v.SetDefault("input.serial", "")
	v.SetDefault("input.baud", acquire.DefaultBaud)

	pc := acquire.DefaultPipelineConfig()
	v.SetDefault("pipeline.hop", 0)
	v.SetDefault("pipeline.queue_size", pc.QueueSize)
	v.SetDefault("pipeline.overflow", pc.Overflow.String())

	sc := acquire.DefaultSimulatorConfig()
	v.SetDefault("simulator.bpm", sc.BPM)
	v.SetDefault("simulator.dc", sc.DC)
	v.SetDefault("simulator.ac", sc.AC)
	v.SetDefault("simulator.noise", sc.Noise)
	v.SetDefault("simulator.wander", sc.Wander)
	v.SetDefault("simulator.wander_hz", sc.WanderHz)
	v.SetDefault("simulator.red_ratio", sc.RedRatio)
	v.SetDefault("simulator.samples", 3000)
	v.SetDefault("simulator.realtime", false)
	v.SetDefault("simulator.seed", sc.Seed)
}

// Load reads file (when non-empty) into v and decodes the merged settings.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that the libraries cannot check on their own.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: output format %q", ErrInvalid, c.OutputFormat)
	}
	if _, err := c.Estimator.Options(); err != nil {
		return err
	}
	if _, err := acquire.ParseOverflowPolicy(c.Pipeline.Overflow); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Pipeline.Hop < 0 || c.Pipeline.Hop > c.Estimator.SegmentSamples {
		return fmt.Errorf("%w: hop %d outside 0..%d", ErrInvalid, c.Pipeline.Hop, c.Estimator.SegmentSamples)
	}
	return nil
}

// Options translates the estimator settings into ppg options.
func (e EstimatorConfig) Options() ([]ppg.Option, error) {
	wt, err := window.ParseType(e.Window)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	opts := []ppg.Option{
		ppg.WithSampleRate(e.SampleRate),
		ppg.WithSegmentSamples(e.SegmentSamples),
		ppg.WithBand(e.MinHz, e.MaxHz),
		ppg.WithWindow(wt),
	}

	switch e.Backend {
	case "", BackendRadix2:
	case BackendRadix2Incremental:
		opts = append(opts, ppg.WithIncrementalTwiddles())
	case BackendAlgoFFT:
		opts = append(opts, ppg.WithBackend(fft.NewAlgoFFTBackend))
	default:
		return nil, fmt.Errorf("%w: fft backend %q", ErrInvalid, e.Backend)
	}

	return opts, nil
}

// NewEstimator builds the configured estimator.
func (e EstimatorConfig) NewEstimator() (*ppg.Estimator, error) {
	opts, err := e.Options()
	if err != nil {
		return nil, err
	}
	return ppg.NewEstimator(opts...)
}

// AcquirePipeline returns the acquisition settings for the configured
// segment length.
func (c *Config) AcquirePipeline(logger *zap.Logger) (acquire.PipelineConfig, error) {
	policy, err := acquire.ParseOverflowPolicy(c.Pipeline.Overflow)
	if err != nil {
		return acquire.PipelineConfig{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return acquire.PipelineConfig{
		SegmentSamples: c.Estimator.SegmentSamples,
		Hop:            c.Pipeline.Hop,
		QueueSize:      c.Pipeline.QueueSize,
		Overflow:       policy,
		Logger:         logger,
	}, nil
}

// AcquireSimulator returns the simulator settings at the configured sample
// rate.
func (c *Config) AcquireSimulator() acquire.SimulatorConfig {
	s := c.Simulator
	return acquire.SimulatorConfig{
		SampleRate: c.Estimator.SampleRate,
		BPM:        s.BPM,
		DC:         s.DC,
		AC:         s.AC,
		Noise:      s.Noise,
		Wander:     s.Wander,
		WanderHz:   s.WanderHz,
		RedRatio:   s.RedRatio,
		Samples:    s.Samples,
		Realtime:   s.Realtime,
		Seed:       s.Seed,
	}
}
