package acquire

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/cwbudde/algo-ppg/dsp/core"
	"github.com/cwbudde/algo-ppg/dsp/signal"
	"github.com/cwbudde/algo-ppg/ppg"
)

// SimulatorConfig describes a synthetic pulse.
type SimulatorConfig struct {
	SampleRate float64
	BPM        float64
	// DC is the infrared baseline in counts; AC is its pulsatile swing.
	DC float64
	AC float64
	// Noise is the amplitude of additive white noise in counts.
	Noise float64
	// Wander is the amplitude of a slow sinusoidal baseline drift at
	// WanderHz, as caused by respiration or sensor pressure.
	Wander   float64
	WanderHz float64
	// RedRatio scales the infrared trace into the red channel.
	RedRatio float64
	// Samples stops the source after this many samples; 0 runs forever.
	Samples int
	// Realtime paces Next at the sample rate.
	Realtime bool
	Seed     int64
}

// DefaultSimulatorConfig returns a 72 bpm pulse at the sensor rate.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		SampleRate: ppg.SamplesPerSecond,
		BPM:        72,
		DC:         50000,
		AC:         1000,
		Noise:      50,
		WanderHz:   0.25,
		RedRatio:   0.6,
		Seed:       1,
	}
}

const simulatorBlock = 256

// Simulator is a deterministic Source of synthetic PPG samples.
type Simulator struct {
	cfg    SimulatorConfig
	gen    *signal.Generator
	block  []float64
	pos    int
	idx    int
	ticker *time.Ticker
}

// NewSimulator returns a Simulator for cfg.
func NewSimulator(cfg SimulatorConfig) (*Simulator, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("simulator sample rate must be > 0: %v", cfg.SampleRate)
	}
	if cfg.BPM <= 0 {
		return nil, fmt.Errorf("simulator bpm must be > 0: %v", cfg.BPM)
	}
	if cfg.Noise < 0 {
		return nil, fmt.Errorf("simulator noise must be >= 0: %v", cfg.Noise)
	}
	if cfg.Wander < 0 || cfg.WanderHz < 0 {
		return nil, fmt.Errorf("simulator wander must be >= 0: %v at %v Hz", cfg.Wander, cfg.WanderHz)
	}

	return &Simulator{
		cfg: cfg,
		gen: signal.NewGenerator(core.WithSampleRate(cfg.SampleRate)),
	}, nil
}

// Next returns the next synthetic sample.
func (s *Simulator) Next(ctx context.Context) (ppg.Sample, error) {
	if err := ctx.Err(); err != nil {
		return ppg.Sample{}, err
	}
	if s.cfg.Samples > 0 && s.idx >= s.cfg.Samples {
		return ppg.Sample{}, io.EOF
	}

	if s.cfg.Realtime {
		if s.ticker == nil {
			s.ticker = time.NewTicker(time.Duration(float64(time.Second) / s.cfg.SampleRate))
		}
		select {
		case <-ctx.Done():
			return ppg.Sample{}, ctx.Err()
		case <-s.ticker.C:
		}
	}

	if s.pos >= len(s.block) {
		if err := s.refill(); err != nil {
			return ppg.Sample{}, err
		}
	}

	v := s.block[s.pos]
	s.pos++
	s.idx++

	return ppg.Sample{
		IR:  int(math.Round(v)),
		Red: int(math.Round(v * s.cfg.RedRatio)),
	}, nil
}

func (s *Simulator) refill() error {
	block, err := s.gen.PulseFrom(s.cfg.BPM, s.cfg.DC, s.cfg.AC, s.idx, simulatorBlock)
	if err != nil {
		return err
	}

	if s.cfg.Wander > 0 && s.cfg.WanderHz > 0 {
		phase := 2 * math.Pi * s.cfg.WanderHz * float64(s.idx) / s.cfg.SampleRate
		wander, err := s.gen.SinePhase(s.cfg.WanderHz, s.cfg.Wander, phase, simulatorBlock)
		if err != nil {
			return err
		}
		signal.Add(block, wander)
	}

	if s.cfg.Noise > 0 {
		// A fresh seed per block keeps the noise deterministic without
		// repeating it.
		seed := s.cfg.Seed + int64(s.idx/simulatorBlock)
		noiseGen := signal.NewGeneratorWithOptions(
			[]core.ProcessorOption{core.WithSampleRate(s.cfg.SampleRate)},
			signal.WithSeed(seed),
		)
		noise, err := noiseGen.WhiteNoise(s.cfg.Noise, simulatorBlock)
		if err != nil {
			return err
		}
		signal.Add(block, noise)
	}

	s.block = block
	s.pos = 0

	return nil
}

// Close stops the pacing ticker.
func (s *Simulator) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	return nil
}
