package fft

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ppg/dsp/core"
)

// Backend transforms a complex block in place.
type Backend interface {
	Len() int
	Forward(x []complex128) error
}

// NewBackendFunc constructs a Backend for a given size.
type NewBackendFunc func(n int) (Backend, error)

// Option configures a Plan.
type Option func(*Plan)

// WithIncrementalTwiddles makes the plan rotate the twiddle factor by
// (cos Δθ, sin Δθ) after every butterfly instead of reading a table.
func WithIncrementalTwiddles() Option {
	return func(p *Plan) {
		p.incremental = true
	}
}

// Plan holds the precomputed state for a radix-2 transform of one size.
// A Plan is read-only after construction and may be shared between goroutines
// as long as each goroutine transforms its own buffer.
type Plan struct {
	n           int
	logN        int
	incremental bool
	rev         []int
	twiddles    []complex128
}

// NewPlan returns a radix-2 plan for size n.
func NewPlan(n int, opts ...Option) (*Plan, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}

	p := &Plan{
		n:    n,
		logN: core.Log2(n),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	p.rev = make([]int, n)
	for i := range p.rev {
		p.rev[i] = BitReverse(i, p.logN)
	}

	if !p.incremental {
		// W_n^k for k < n/2; stage m reads every (n/m)-th entry.
		p.twiddles = make([]complex128, n/2)
		for k := range p.twiddles {
			theta := -2 * math.Pi * float64(k) / float64(n)
			p.twiddles[k] = complex(math.Cos(theta), math.Sin(theta))
		}
	}

	return p, nil
}

// NewRadix2 is a NewBackendFunc for table-driven plans.
func NewRadix2(n int) (Backend, error) {
	p, err := NewPlan(n)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewRadix2Incremental is a NewBackendFunc for plans that rotate twiddles
// incrementally.
func NewRadix2Incremental(n int) (Backend, error) {
	p, err := NewPlan(n, WithIncrementalTwiddles())
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Len returns the transform size.
func (p *Plan) Len() int { return p.n }

// Forward replaces x with its discrete Fourier transform.
func (p *Plan) Forward(x []complex128) error {
	if len(x) != p.n {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(x), p.n)
	}

	for i, j := range p.rev {
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	if p.incremental {
		p.butterfliesIncremental(x)
	} else {
		p.butterfliesTable(x)
	}

	return nil
}

func (p *Plan) butterfliesTable(x []complex128) {
	n := p.n
	for s := 1; s <= p.logN; s++ {
		m := 1 << s
		m2 := m >> 1
		stride := n / m

		for k := 0; k < n; k += m {
			for j := 0; j < m2; j++ {
				u := x[k+j]
				t := p.twiddles[j*stride] * x[k+j+m2]
				x[k+j] = u + t
				x[k+j+m2] = u - t
			}
		}
	}
}

func (p *Plan) butterfliesIncremental(x []complex128) {
	n := p.n
	for s := 1; s <= p.logN; s++ {
		m := 1 << s
		m2 := m >> 1
		step := -2 * math.Pi / float64(m)
		rot := complex(math.Cos(step), math.Sin(step))

		for k := 0; k < n; k += m {
			w := complex(1, 0)
			for j := 0; j < m2; j++ {
				u := x[k+j]
				t := w * x[k+j+m2]
				x[k+j] = u + t
				x[k+j+m2] = u - t
				w *= rot
			}
		}
	}
}

// BitReverse returns idx with its low bits reversed.
func BitReverse(idx, bits int) int {
	rev := 0
	for b := 0; b < bits; b++ {
		rev = (rev << 1) | (idx & 1)
		idx >>= 1
	}
	return rev
}

// Permute applies the bit-reversal permutation to x in place. Each pair is
// swapped exactly once, so applying Permute twice restores the input.
func Permute(x []complex128) error {
	if err := validateSize(len(x)); err != nil {
		return err
	}

	bits := core.Log2(len(x))
	for i := range x {
		j := BitReverse(i, bits)
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	return nil
}
