package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ppg/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SinePhase generates amplitude*sin(2*pi*f*t + phase).
func (g *Generator) SinePhase(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if err := g.validate("sine", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("noise", samples); err != nil {
		return nil, err
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// PulseFrom generates a photoplethysmogram-like waveform at bpm beats per
// minute: a DC level plus a pulsatile component of peak-to-peak size ac,
// shaped as a systolic peak followed by a smaller dicrotic wave. The first
// output sample is sample index start of the waveform, so consecutive blocks
// join without a phase jump.
func (g *Generator) PulseFrom(bpm, dc, ac float64, start, samples int) ([]float64, error) {
	if err := g.validate("pulse", samples); err != nil {
		return nil, err
	}
	if bpm <= 0 {
		return nil, fmt.Errorf("pulse rate must be > 0: %f", bpm)
	}

	out := make([]float64, samples)
	cycleHz := bpm / 60
	for i := range out {
		t := float64(start+i) / g.cfg.SampleRate
		_, phase := math.Modf(t * cycleHz)
		out[i] = dc + ac*pulseShape(phase)
	}
	return out, nil
}

// pulseShape returns the normalized (0..1) pulse contour at phase in [0, 1).
func pulseShape(phase float64) float64 {
	systolic := gauss(phase, 0.2, 0.07)
	dicrotic := 0.4 * gauss(phase, 0.55, 0.09)
	return systolic + dicrotic
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

// Add sums src into dst element-wise over the shorter length.
func Add(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

func (g *Generator) validate(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", kind, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", kind, g.cfg.SampleRate)
	}
	return nil
}
