package ppg

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-ppg/dsp/core"
	"github.com/cwbudde/algo-ppg/dsp/spectrum"
	"github.com/cwbudde/algo-ppg/dsp/window"
)

// Estimator finds the dominant heart-rate frequency of a segment. Its
// configuration is immutable, so one Estimator may serve many goroutines
// that each bring their own Workspace.
type Estimator struct {
	cfg        Config
	coeffs     []float64
	correction float64
	binHz      float64
	lo, hi     int
	bandOK     bool

	mu     sync.Mutex
	shared *Workspace
}

// NewEstimator returns an Estimator configured by opts on top of DefaultConfig.
func NewEstimator(opts ...Option) (*Estimator, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	meta := window.Info(cfg.Window)
	if meta.AmplitudeCorrection == 0 {
		return nil, fmt.Errorf("%w: unknown window type %d", ErrConfig, cfg.Window)
	}

	n := cfg.SegmentSamples
	lo, hi, ok := cfg.Band.Bins(cfg.SampleRate, n)

	return &Estimator{
		cfg:        cfg,
		coeffs:     window.Generate(cfg.Window, n),
		correction: meta.AmplitudeCorrection,
		binHz:      spectrum.BinHz(cfg.SampleRate, n),
		lo:         lo,
		hi:         hi,
		bandOK:     ok,
	}, nil
}

func validateConfig(cfg Config) error {
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrConfig, cfg.SampleRate)
	}
	if cfg.SegmentSamples < 2 || !core.IsPowerOfTwo(cfg.SegmentSamples) {
		return fmt.Errorf("%w: segment samples must be a power of two >= 2: %d", ErrConfig, cfg.SegmentSamples)
	}
	if err := cfg.Band.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if cfg.NewBackend == nil {
		return fmt.Errorf("%w: missing fft backend", ErrConfig)
	}
	return nil
}

// Config returns the estimator configuration.
func (e *Estimator) Config() Config {
	return e.cfg
}

// BinHz returns the frequency resolution fs/N.
func (e *Estimator) BinHz() float64 {
	return e.binHz
}

// BandBins returns the inclusive bin range searched for the peak and whether
// it is non-empty.
func (e *Estimator) BandBins() (lo, hi int, ok bool) {
	return e.lo, e.hi, e.bandOK
}

// Estimate analyzes seg using ws as scratch memory.
//
// A segment of the wrong length yields ErrSegmentLength. Otherwise the error
// is nil and Result.Status reports whether a peak was found; HeartRateHz is
// always bin*fs/N with the bin inside the passband, or 0.
func (e *Estimator) Estimate(ws *Workspace, seg Segment) (Result, error) {
	n := e.cfg.SegmentSamples

	if len(seg) != n {
		return failed(StatusInvalidInput), fmt.Errorf("%w: got %d samples, want %d", ErrSegmentLength, len(seg), n)
	}
	if ws == nil || ws.n != n {
		return failed(StatusInvalidInput), ErrWorkspace
	}

	if err := e.detrendAndWindow(ws, seg); err != nil {
		return failed(StatusInvalidInput), fmt.Errorf("ppg: window: %w", err)
	}

	if err := ws.backend.Forward(ws.x); err != nil {
		return failed(StatusInvalidInput), fmt.Errorf("ppg: fft: %w", err)
	}

	if err := spectrum.NormalizedPower(ws.power, ws.x, e.correction, ws.re, ws.im); err != nil {
		return failed(StatusInvalidInput), fmt.Errorf("ppg: power spectrum: %w", err)
	}

	if !e.bandOK {
		return failed(StatusEmptyBand), nil
	}

	bin, power := spectrum.PeakInRange(ws.power, e.lo, e.hi)
	if bin == 0 {
		return failed(StatusNoPeak), nil
	}

	return Result{
		HeartRateHz: float64(bin) * e.binHz,
		SpO2:        math.NaN(),
		Status:      StatusOK,
		PeakBin:     bin,
		PeakPower:   power,
	}, nil
}

// detrendAndWindow fills ws.x with the mean-free, windowed infrared channel
// and a zero imaginary part.
func (e *Estimator) detrendAndWindow(ws *Workspace, seg Segment) error {
	for i, s := range seg {
		ws.buf[i] = float64(s.IR)
	}

	window.RemoveMean(ws.buf)
	if err := window.ApplyCoefficientsInPlace(ws.buf, e.coeffs); err != nil {
		return err
	}

	for i, v := range ws.buf {
		ws.x[i] = complex(v, 0)
	}
	return nil
}

// DominantFrequency returns the heart-rate frequency of seg in Hz, or 0 when
// no peak is found or the segment is rejected. Calls are serialized on a
// private workspace.
func (e *Estimator) DominantFrequency(seg Segment) float64 {
	res, err := e.estimateShared(seg)
	if err != nil {
		return 0
	}
	return res.HeartRateHz
}

func (e *Estimator) estimateShared(seg Segment) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.shared == nil {
		ws, err := e.NewWorkspace()
		if err != nil {
			return failed(StatusInvalidInput), err
		}
		e.shared = ws
	}

	return e.Estimate(e.shared, seg)
}

var defaultEstimator = sync.OnceValues(func() (*Estimator, error) {
	return NewEstimator()
})

// Estimate analyzes seg with the default configuration.
func Estimate(seg Segment) (Result, error) {
	est, err := defaultEstimator()
	if err != nil {
		return failed(StatusInvalidInput), err
	}
	return est.estimateShared(seg)
}
