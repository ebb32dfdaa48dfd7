package ppg

import (
	"fmt"

	"github.com/cwbudde/algo-ppg/dsp/fft"
	"github.com/cwbudde/algo-ppg/dsp/spectrum"
)

// Workspace is the scratch memory for one estimate at a time. It is not safe
// for concurrent use; buffers are reused by every call that receives it.
type Workspace struct {
	n       int
	backend fft.Backend
	buf     []float64
	x       []complex128
	power   []float64
	re, im  []float64
}

// NewWorkspace allocates scratch memory sized for e.
func (e *Estimator) NewWorkspace() (*Workspace, error) {
	backend, err := e.cfg.NewBackend(e.cfg.SegmentSamples)
	if err != nil {
		return nil, fmt.Errorf("%w: fft backend: %w", ErrConfig, err)
	}
	if backend.Len() != e.cfg.SegmentSamples {
		return nil, fmt.Errorf("%w: fft backend size %d, want %d", ErrConfig, backend.Len(), e.cfg.SegmentSamples)
	}

	n := e.cfg.SegmentSamples
	bins := spectrum.OneSidedLen(n)

	return &Workspace{
		n:       n,
		backend: backend,
		buf:     make([]float64, n),
		x:       make([]complex128, n),
		power:   make([]float64, bins),
		re:      make([]float64, bins),
		im:      make([]float64, bins),
	}, nil
}

// Power returns the normalized one-sided power spectrum of the last estimate.
// The slice is overwritten by the next call using this workspace.
func (w *Workspace) Power() []float64 {
	return w.power
}
