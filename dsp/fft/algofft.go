package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// AlgoFFT runs the transform through the algo-fft library. It keeps an
// output scratch buffer, so one AlgoFFT must not be shared between goroutines.
type AlgoFFT struct {
	n       int
	plan    *algofft.Plan[complex128]
	scratch []complex128
}

// NewAlgoFFT returns an algo-fft backed transform of size n.
func NewAlgoFFT(n int) (*AlgoFFT, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("algo-fft plan: %w", err)
	}

	return &AlgoFFT{
		n:       n,
		plan:    plan,
		scratch: make([]complex128, n),
	}, nil
}

// NewAlgoFFTBackend is a NewBackendFunc for AlgoFFT.
func NewAlgoFFTBackend(n int) (Backend, error) {
	a, err := NewAlgoFFT(n)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Len returns the transform size.
func (a *AlgoFFT) Len() int { return a.n }

// Forward replaces x with its discrete Fourier transform.
func (a *AlgoFFT) Forward(x []complex128) error {
	if len(x) != a.n {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(x), a.n)
	}

	if err := a.plan.Forward(a.scratch, x); err != nil {
		return fmt.Errorf("algo-fft forward: %w", err)
	}

	copy(x, a.scratch)

	return nil
}
