package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// OneSidedLen returns the number of non-negative frequency bins, N/2+1,
// for an N-point transform.
func OneSidedLen(n int) int {
	if n <= 0 {
		return 0
	}
	return n/2 + 1
}

// Split copies the real and imaginary parts of in into re and im.
func Split(re, im []float64, in []complex128) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// NormalizedPower writes the one-sided normalized power spectrum of an
// N-point transform into dst:
//
//	dst[k] = ((re[k]/N)^2 + (im[k]/N)^2) * correction^2,  k = 0..N/2
//
// correction is the window amplitude correction (2 for Hann), squared here
// because the result is a power. re and im are caller-provided scratch of at
// least N/2+1 elements; nothing is allocated.
func NormalizedPower(dst []float64, x []complex128, correction float64, re, im []float64) error {
	n := len(x)
	bins := OneSidedLen(n)

	if bins == 0 {
		return fmt.Errorf("normalized power requires a non-empty spectrum")
	}
	if len(dst) < bins || len(re) < bins || len(im) < bins {
		return fmt.Errorf("normalized power buffers must hold %d bins: dst=%d re=%d im=%d",
			bins, len(dst), len(re), len(im))
	}

	dst, re, im = dst[:bins], re[:bins], im[:bins]
	Split(re, im, x[:bins])

	// Scaling each part by correction/N before squaring equals scaling the
	// power by (correction/N)^2.
	scale := correction / float64(n)
	vecmath.ScaleBlockInPlace(re, scale)
	vecmath.ScaleBlockInPlace(im, scale)
	vecmath.Power(dst, re, im)

	return nil
}
